package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// Renderer writes attendance sheets as PDF documents.
type Renderer struct {
	Style Style
	// Now stamps the document creation date; time.Now when nil.
	Now func() time.Time
}

// NewRenderer returns a renderer using DefaultStyle.
func NewRenderer() *Renderer {
	return &Renderer{Style: DefaultStyle()}
}

// Render writes the attendance sheet of a group to w.
func (r *Renderer) Render(w io.Writer, groupName string, attendees []string) error {
	sheet, err := Layout(groupName, attendees)
	if err != nil {
		return err
	}
	pdf, err := r.draw(sheet)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// Save renders the sheet into dir under FileName(groupName) and returns the
// written path.
func (r *Renderer) Save(dir, groupName string, attendees []string) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, groupName, attendees); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(groupName))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func (r *Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// draw paints the sheet. Rows that do not fit on the current page move to a
// new page, which starts with the header row again.
func (r *Renderer) draw(sheet *Sheet) (*fpdf.Fpdf, error) {
	s := r.Style

	pdf := fpdf.New("P", "mm", s.PageSize, "")
	pdf.SetMargins(s.MarginLeft, s.MarginTop, s.MarginRight)
	pdf.SetAutoPageBreak(false, s.MarginBottom)
	pdf.SetCellMargin(0)
	pdf.SetTitle(sheet.Title, true)
	pdf.SetCreator("emargement", false)
	pdf.SetCreationDate(r.now())

	pdf.AddPage()

	pdf.SetFont(s.FontFamily, "B", s.TitleFontSize)
	pdf.SetTextColor(s.BodyText.R, s.BodyText.G, s.BodyText.B)
	pdf.Text(s.TitleX, s.TitleY, encode(sheet.Title))

	pdf.SetLineWidth(s.LineWidth)
	pdf.SetDrawColor(s.LineColor.R, s.LineColor.G, s.LineColor.B)

	_, pageHeight := pdf.GetPageSize()
	limit := pageHeight - s.MarginBottom

	y := s.TableTop
	y += r.drawRow(pdf, sheet.Header, y, true)
	for _, row := range sheet.Rows {
		h := r.rowHeight(pdf, row)
		if y+h > limit {
			pdf.AddPage()
			y = s.MarginTop
			y += r.drawRow(pdf, sheet.Header, y, true)
		}
		y += r.drawRow(pdf, row, y, false)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return pdf, nil
}

// drawRow paints one row at y and returns its height.
func (r *Renderer) drawRow(pdf *fpdf.Fpdf, row Row, y float64, header bool) float64 {
	s := r.Style
	h := r.rowHeight(pdf, row)
	lh := s.lineHeight()

	x := s.MarginLeft
	for i, w := range s.columnWidths() {
		cell := row[i]

		style := "D"
		if header {
			pdf.SetFillColor(s.HeaderFill.R, s.HeaderFill.G, s.HeaderFill.B)
			pdf.SetTextColor(s.HeaderText.R, s.HeaderText.G, s.HeaderText.B)
			style = "FD"
		} else {
			pdf.SetTextColor(s.BodyText.R, s.BodyText.G, s.BodyText.B)
		}
		pdf.Rect(x, y, w, h, style)

		r.setFont(pdf, cell)
		lines := wrap(pdf, encode(cell.Text), w-2*s.CellPadding)
		top := y + (h-float64(len(lines))*lh)/2
		for j, line := range lines {
			pdf.SetXY(x+s.CellPadding, top+float64(j)*lh)
			pdf.CellFormat(w-2*s.CellPadding, lh, line, "", 0, string(cell.Align)+"M", false, 0, "")
		}
		x += w
	}
	return h
}

// rowHeight is the height of the tallest cell of the row, padding included.
func (r *Renderer) rowHeight(pdf *fpdf.Fpdf, row Row) float64 {
	s := r.Style
	lines := 1
	for i, w := range s.columnWidths() {
		r.setFont(pdf, row[i])
		if n := len(wrap(pdf, encode(row[i].Text), w-2*s.CellPadding)); n > lines {
			lines = n
		}
	}
	return float64(lines)*s.lineHeight() + 2*s.CellPadding
}

func (r *Renderer) setFont(pdf *fpdf.Fpdf, cell Cell) {
	style := ""
	if cell.Bold {
		style = "B"
	}
	pdf.SetFont(r.Style.FontFamily, style, r.Style.FontSize)
}

// encode converts text to Windows-1252, the encoding of the core PDF fonts.
// Runes outside the code page become '?'.
func encode(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, b)
		} else {
			out = append(out, '?')
		}
	}
	return string(out)
}

// wrap splits single-byte encoded text into lines no wider than width using
// the current font. Words longer than a line are broken. It always returns at
// least one line.
func wrap(pdf *fpdf.Fpdf, text string, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if pdf.GetStringWidth(candidate) <= width {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		for pdf.GetStringWidth(word) > width && len(word) > 1 {
			cut := len(word) - 1
			for cut > 1 && pdf.GetStringWidth(word[:cut]) > width {
				cut--
			}
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		current = word
	}
	return append(lines, current)
}
