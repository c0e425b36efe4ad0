package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/majorcontext/attestlint/internal/attestation"
	"github.com/majorcontext/attestlint/internal/jsonvalue"
	"github.com/majorcontext/attestlint/internal/log"
	"github.com/majorcontext/attestlint/internal/ui"
	"github.com/spf13/cobra"
)

// maxInputSize caps how much of the input is read. Attestations are a few
// kilobytes.
const maxInputSize = 4 << 20

const stdinArg = "-"

var (
	errNoInput          = errors.New("no input specified")
	errValidationFailed = errors.New("attestation failed validation")
)

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Usage()
		return errNoInput
	}
	source := args[0]
	logger := log.With("source", source)

	data, err := readInput(cmd, source)
	if err != nil {
		return err
	}
	logger.Debug("read attestation document", "bytes", len(data))

	doc, err := jsonvalue.Parse(data)
	if err != nil {
		logger.Debug("decode failed", "error", err)
		return fmt.Errorf("invalid JSON: %w", err)
	}

	report := attestation.Check(doc)
	logger.Info("validated attestation", "valid", report.Valid, "errors", len(report.Errors))

	out := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	} else {
		printReport(out, report)
	}

	if !report.Valid {
		return errValidationFailed
	}
	return nil
}

// readInput reads the whole document from a file or, for "-", from the
// command's standard input.
func readInput(cmd *cobra.Command, source string) ([]byte, error) {
	var r io.Reader
	if source == stdinArg {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(source)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("file not found: %s", source)
			}
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", displayName(source), err)
	}
	if len(data) > maxInputSize {
		return nil, fmt.Errorf("reading %s: input exceeds %d bytes", displayName(source), maxInputSize)
	}
	return data, nil
}

func displayName(source string) string {
	if source == stdinArg {
		return "standard input"
	}
	return source
}

func printReport(w io.Writer, report *attestation.Report) {
	if !report.Valid {
		fmt.Fprintf(w, "%s Validation failed with the following errors:\n\n", ui.FailTag())
		ui.Numbered(w, report.Errors)
		return
	}

	fmt.Fprintf(w, "%s Attestation structure is valid\n\n", ui.OKTag())
	fmt.Fprintln(w, "Structure matches expected format:")
	ui.Check(w, "All required fields present")
	ui.Check(w, "Field types correct")
	ui.Check(w, "Integer fields within range")
	ui.Check(w, fmt.Sprintf("Array lengths correct (%d bytes for x, y, r, s, message_hash)", attestation.DigestSize))
	ui.Check(w, "account_id_hash format valid")
}
