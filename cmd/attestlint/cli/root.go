// Package cli implements the attestlint command-line interface using Cobra.
package cli

import (
	"errors"

	"github.com/majorcontext/attestlint/internal/config"
	"github.com/majorcontext/attestlint/internal/log"
	"github.com/majorcontext/attestlint/internal/ui"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "attestlint <file|->",
	Short: "Check the structure of a custodian balance attestation",
	Long: `attestlint checks that an attestation JSON document has every field
downstream signature verification needs, with the right types and sizes.

It does not verify signatures or hashes. Byte arrays are only checked for
length and byte range.

Pass "-" to read the document from standard input.`,
	Example: `  attestlint attestation.json
  echo '{"attestation": {...}}' | attestlint -`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobal()
		if err != nil {
			ui.Warnf("using default settings: %v", err)
			cfg = config.DefaultGlobalConfig()
		}

		ui.SetColorMode(cfg.Output.Color)

		if err := log.Init(log.Options{
			Verbose:       verbose,
			JSONFormat:    jsonOut,
			DebugDir:      cfg.Debug.LogDir,
			RetentionDays: cfg.Debug.RetentionDays,
			Stderr:        cmd.ErrOrStderr(),
		}); err != nil {
			// Not fatal; stderr logging is still set up.
			ui.Warnf("failed to initialize debug logging: %v", err)
		}
		return nil
	},
	RunE: runValidate,
}

// Execute runs the root command and reports any failure on stderr.
// Validation failures have already been printed as a report.
func Execute() error {
	err := rootCmd.Execute()
	log.Close()
	if err != nil && !errors.Is(err, errValidationFailed) {
		ui.Error(err.Error())
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
}
