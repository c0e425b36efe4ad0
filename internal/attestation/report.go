package attestation

import "github.com/majorcontext/attestlint/internal/jsonvalue"

// Report is the outcome of checking a single document.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Check validates doc and wraps the result in a Report.
func Check(doc jsonvalue.Value) *Report {
	errs := Validate(doc)
	if errs == nil {
		errs = []string{}
	}
	return &Report{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
