package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/emargement-go/internal/output"
	"github.com/ukaji3/emargement-go/pkg/emargement"
	"github.com/ukaji3/emargement-go/pkg/emargement/render"
	"github.com/ukaji3/emargement-go/pkg/emargement/upload"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <input.xlsx>",
		Short: "Write the PDF attendance sheet of an Excel roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := emargement.ExtractFile(args[0], extractOptions())
			if err != nil {
				return err
			}

			path, err := render.NewRenderer().Save(cfg.OutputDir, roster.GroupName(), roster.Attendees())
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			logger.Info("attendance sheet written", "group", roster.GroupName(), "attendees", roster.Len(), "path", path)

			out := output.NewFormatter(cmd.OutOrStdout())
			out.Success(upload.MsgExported)
			out.Exported(path)
			return nil
		},
	}
}
