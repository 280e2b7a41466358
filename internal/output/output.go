package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ukaji3/emargement-go/pkg/emargement/preview"
	"github.com/ukaji3/emargement-go/pkg/emargement/upload"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Loading(name string) {
	fmt.Fprintf(f.w, "⏳ Lecture de %s...\n", name)
}

func (f *Formatter) Notification(n upload.Notification) {
	if n.Severity == upload.SeverityError {
		f.Error(n.Message)
		return
	}
	f.Success(n.Message)
}

func (f *Formatter) Preview(groupName string, entries []preview.Entry) {
	fmt.Fprintf(f.w, "\nAperçu de la Fiche d'Émargement\n")
	fmt.Fprintf(f.w, "Nom de la RCI : %s\n\n", groupName)

	tw := tabwriter.NewWriter(f.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tNom de l'Élève\tPrésence")
	for i, e := range entries {
		mark := "[ ]"
		if e.Present {
			mark = "[x]"
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", i+1, e.Name, mark)
	}
	tw.Flush()
	fmt.Fprintln(f.w)
}

func (f *Formatter) Exported(path string) {
	fmt.Fprintf(f.w, "📄 PDF enregistré : %s\n", path)
}

func (f *Formatter) Inspect(file, sheet string, rows int, bounds string) {
	fmt.Fprintf(f.w, "📁 %s\n", file)
	fmt.Fprintf(f.w, "  Feuille : %s\n", sheet)
	fmt.Fprintf(f.w, "  Lignes  : %d\n", rows)
	if bounds == "" {
		bounds = "(vide)"
	}
	fmt.Fprintf(f.w, "  Données : %s\n", bounds)
}

func (f *Formatter) SessionHelp() {
	fmt.Fprint(f.w, `Commandes :
  drop <fichier> [fichier...]  déposer un fichier Excel (.xlsx, .xls)
  toggle <nom>                 cocher / décocher la présence d'un élève
  export                       générer le PDF d'émargement
  close                        fermer la notification
  clickaway                    cliquer en dehors de la notification
  show                         afficher l'aperçu
  help                         afficher cette aide
  quit                         quitter
`)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}
