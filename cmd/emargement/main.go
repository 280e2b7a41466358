// Package main provides the CLI entry point for emargement.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/emargement-go/internal/config"
	"github.com/ukaji3/emargement-go/internal/logging"
	"github.com/ukaji3/emargement-go/internal/output"
	"github.com/ukaji3/emargement-go/internal/version"
	"github.com/ukaji3/emargement-go/pkg/emargement"
)

var (
	outputDir string
	logLevel  string

	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		output.NewFormatter(os.Stderr).Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "emargement",
		Short: "Build attendance sheets from Excel rosters",
		Long: `emargement reads a roster from an Excel file (group name in A2, one
attendee per row from A4), previews it and exports a PDF attendance sheet.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Directory for exported PDFs (default: output_dir from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: log_level from config)")

	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newSessionCmd())

	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if outputDir != "" {
		c.OutputDir = outputDir
	}
	if logLevel != "" {
		c.LogLevel = logLevel
		if err := c.Validate(); err != nil {
			return err
		}
	}

	cfg = c
	logger = logging.Setup(c.LogLevel)
	return nil
}

func extractOptions() emargement.Options {
	opts := emargement.DefaultOptions()
	opts.MaxBytes = cfg.MaxUploadBytes
	return opts
}
