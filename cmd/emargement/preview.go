package main

import (
	"github.com/spf13/cobra"
	"github.com/ukaji3/emargement-go/internal/output"
	"github.com/ukaji3/emargement-go/pkg/emargement"
	"github.com/ukaji3/emargement-go/pkg/emargement/preview"
)

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <input.xlsx>",
		Short: "Show the roster read from an Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := emargement.ExtractFile(args[0], extractOptions())
			if err != nil {
				return err
			}
			logger.Debug("roster extracted", "file", args[0], "group", roster.GroupName(), "attendees", roster.Len())

			output.NewFormatter(cmd.OutOrStdout()).Preview(roster.GroupName(), preview.New(roster).Entries())
			return nil
		},
	}
}
