package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/emargement-go/internal/output"
	"github.com/ukaji3/emargement-go/pkg/emargement/parser"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input.xlsx>",
		Short: "Describe the first worksheet of an Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			table, err := parser.ReadWorkbook(f, args[0], parser.ReadOptions{MaxBytes: cfg.MaxUploadBytes})
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			bounds := ""
			if b, ok := parser.DataBounds(table); ok {
				bounds = fmt.Sprintf("%s (%d cellules)", b.Range(), b.NonEmpty)
			}
			output.NewFormatter(cmd.OutOrStdout()).Inspect(filepath.Base(args[0]), table.Sheet, table.Len(), bounds)
			return nil
		},
	}
}
