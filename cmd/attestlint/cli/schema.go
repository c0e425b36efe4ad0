package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/majorcontext/attestlint/internal/attestation"
	"github.com/majorcontext/attestlint/internal/ui"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the attestation fields that are checked",
	Long: `Print the required members of the "attestation" object in the order
they are checked, with the JSON types each one accepts.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	fields := attestation.Fields()
	out := cmd.OutOrStdout()

	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(fields)
	}

	ui.Section(out, fmt.Sprintf("Attestation schema (top-level key %q)", attestation.RootKey))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tTYPE\tEXPECTED")
	for _, f := range fields {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, strings.Join(f.KindNames(), "|"), f.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Byte arrays (x, y, r, s, message_hash) hold exactly %d integers in 0-255.\n", attestation.DigestSize)
	return nil
}
