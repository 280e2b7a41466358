package render

// Color is an RGB color, 0-255 per channel.
type Color struct {
	R, G, B int
}

// Style holds the page geometry and table styling, in millimetres and points.
type Style struct {
	PageSize   string
	FontFamily string

	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64 // top of the table on continuation pages
	MarginBottom float64

	TitleX        float64
	TitleY        float64 // baseline of the title
	TitleFontSize float64

	TableTop         float64
	FontSize         float64
	LineHeightFactor float64
	CellPadding      float64
	LineWidth        float64
	LineColor        Color

	HeaderFill Color
	HeaderText Color
	BodyText   Color

	NameColumnWidth     float64
	PresenceColumnWidth float64
}

// DefaultStyle returns the A4 attendance sheet style: green header band, name
// column about 2.5 times wider than the presence column.
func DefaultStyle() Style {
	return Style{
		PageSize:   "A4",
		FontFamily: "Helvetica",

		MarginLeft:   14,
		MarginRight:  14,
		MarginTop:    14,
		MarginBottom: 14,

		TitleX:        14,
		TitleY:        22,
		TitleFontSize: 18,

		TableTop:         30,
		FontSize:         12,
		LineHeightFactor: 1.15,
		CellPadding:      5,
		LineWidth:        0.1,
		LineColor:        Color{0, 0, 0},

		HeaderFill: Color{0x2B, 0xB6, 0x73},
		HeaderText: Color{255, 255, 255},
		BodyText:   Color{0, 0, 0},

		NameColumnWidth:     130,
		PresenceColumnWidth: 50,
	}
}

// columnWidths returns the widths of the name and presence columns.
func (s Style) columnWidths() [2]float64 {
	return [2]float64{s.NameColumnWidth, s.PresenceColumnWidth}
}

// lineHeight converts the font size from points to a line height in millimetres.
func (s Style) lineHeight() float64 {
	return s.FontSize * 25.4 / 72 * s.LineHeightFactor
}
