// Package validate checks structural invariants of TAP documents.
//
// Check never fails or panics: every document, including empty and
// malformed ones, gets a Result, and every check runs so a caller sees
// all problems at once.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/signadot/go-tap/ir"
)

// Result is the outcome of validating one document.
type Result struct {
	Valid   bool
	Reasons []string
}

// Err folds the reasons into one error value, nil when valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	var err error
	for _, reason := range r.Reasons {
		err = multierr.Append(err, errors.New(reason))
	}
	return err
}

// Check validates the document: plan presence, plan count against the
// case count, ordinal contiguity, and bail-out state.  A skip-all plan
// with zero cases is valid.  A document with neither plan nor cases is
// invalid, with the ambiguity called out rather than resolved.
func Check(d *ir.Document) Result {
	var reasons []string
	if d.Plan == nil {
		if len(d.Cases) == 0 {
			reasons = append(reasons,
				"no plan and no test cases: an empty run cannot be told apart from one that never started")
		} else {
			reasons = append(reasons, "no plan")
		}
	} else if !(d.Plan.SkipAll() && len(d.Cases) == 0) {
		if got, want := len(d.Cases), d.Plan.Count(); got != want {
			reasons = append(reasons,
				fmt.Sprintf("plan declares %d tests, document has %d", want, got))
		}
	}
	for i, tc := range d.Cases {
		if tc.Num != i+1 {
			reasons = append(reasons,
				fmt.Sprintf("test in position %d is numbered %d", i+1, tc.Num))
		}
	}
	if d.BailedOut() {
		if r := d.Bailout.Reason; r != "" {
			reasons = append(reasons, "bailed out: "+r)
		} else {
			reasons = append(reasons, "bailed out")
		}
	}
	return Result{Valid: len(reasons) == 0, Reasons: reasons}
}

// Summary renders a harness-style one-look outcome for the document.
func Summary(d *ir.Document) string {
	if d.BailedOut() {
		if r := d.Bailout.Reason; r != "" {
			return "Bailed out: " + r
		}
		return "Bailed out"
	}
	if d.Plan != nil && d.Plan.SkipAll() && len(d.Cases) == 0 {
		if r := d.Plan.SkipReason; r != "" {
			return "All tests skipped: " + r
		}
		return "All tests skipped."
	}
	var failed []string
	for _, tc := range d.Cases {
		if !tc.Passed() {
			failed = append(failed, strconv.Itoa(tc.Num))
		}
	}
	if len(failed) == 0 {
		if res := Check(d); !res.Valid {
			return "Invalid: " + strings.Join(res.Reasons, "; ")
		}
		return "All tests successful."
	}
	total := max(d.Len(), d.ActualLen())
	pct := float64(total-len(failed)) / float64(total) * 100
	return fmt.Sprintf("FAILED tests %s\nFailed %d/%d tests, %.2f%% okay.",
		strings.Join(failed, ", "), len(failed), total, pct)
}
