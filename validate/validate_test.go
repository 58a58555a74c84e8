package validate

import (
	"strings"
	"testing"

	"github.com/signadot/go-tap/ir"
	"github.com/signadot/go-tap/token"
)

func doc(plan *ir.Plan, cases ...*ir.TestCase) *ir.Document {
	d := ir.NewDocument()
	d.Plan = plan
	d.Cases = cases
	return d
}

func okCase(num int) *ir.TestCase {
	return &ir.TestCase{Num: num, OK: true}
}

func TestCheckValid(t *testing.T) {
	d := doc(&ir.Plan{First: 1, Last: 2}, okCase(1), okCase(2))
	res := Check(d)
	if !res.Valid || len(res.Reasons) != 0 {
		t.Errorf("result = %+v, want valid", res)
	}
	if res.Err() != nil {
		t.Errorf("Err() = %v on a valid document", res.Err())
	}
}

func TestCheckSkipAll(t *testing.T) {
	// a skip-all plan with zero cases is valid
	d := doc(&ir.Plan{First: 1, Last: 0, SkipReason: "no tests to run"})
	if res := Check(d); !res.Valid {
		t.Errorf("skip-all plan invalid: %v", res.Reasons)
	}
}

func TestCheckEmptyNoPlan(t *testing.T) {
	// zero cases and no plan is invalid but well-formed, with the
	// ambiguity surfaced
	res := Check(doc(nil))
	if res.Valid {
		t.Fatalf("planless empty document validated")
	}
	if len(res.Reasons) != 1 || !strings.Contains(res.Reasons[0], "cannot be told apart") {
		t.Errorf("reasons = %v", res.Reasons)
	}
	if res.Err() == nil {
		t.Errorf("Err() = nil on an invalid document")
	}
}

func TestCheckAllProblemsReported(t *testing.T) {
	// no short-circuiting: plan mismatch, bad numbering, and
	// bail-out all surface at once
	d := doc(&ir.Plan{First: 1, Last: 5}, okCase(1), okCase(3))
	d.Bailout = &ir.Bailout{Reason: "oom"}
	res := Check(d)
	if res.Valid {
		t.Fatalf("validated")
	}
	if len(res.Reasons) != 3 {
		t.Errorf("got %d reasons, want 3: %v", len(res.Reasons), res.Reasons)
	}
}

func TestCheckTotality(t *testing.T) {
	// never panics, always answers
	docs := []*ir.Document{
		ir.NewDocument(),
		doc(nil, okCase(0)),
		doc(&ir.Plan{First: 5, Last: 2}),
		doc(&ir.Plan{First: 1, Last: 1}),
		{Version: 13, Bailout: &ir.Bailout{}},
	}
	for i, d := range docs {
		res := Check(d)
		if res.Valid && len(res.Reasons) != 0 {
			t.Errorf("doc %d: inconsistent result %+v", i, res)
		}
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		d    *ir.Document
		want string
	}{
		{
			name: "all pass",
			d:    doc(&ir.Plan{First: 1, Last: 1}, okCase(1)),
			want: "All tests successful.",
		},
		{
			name: "skip all",
			d:    doc(&ir.Plan{First: 1, Last: 0, SkipReason: "no tty"}),
			want: "All tests skipped: no tty",
		},
		{
			name: "bailed",
			d:    &ir.Document{Bailout: &ir.Bailout{Reason: "oom"}},
			want: "Bailed out: oom",
		},
		{
			name: "failures",
			d: doc(&ir.Plan{First: 1, Last: 4},
				okCase(1),
				&ir.TestCase{Num: 2},
				okCase(3),
				&ir.TestCase{Num: 4}),
			want: "FAILED tests 2, 4\nFailed 2/4 tests, 50.00% okay.",
		},
		{
			name: "failing todo counts as pass",
			d: doc(&ir.Plan{First: 1, Last: 1},
				&ir.TestCase{Num: 1, Directive: token.Todo}),
			want: "All tests successful.",
		},
	}
	for _, tt := range tests {
		if got := Summary(tt.d); got != tt.want {
			t.Errorf("%s: Summary = %q, want %q", tt.name, got, tt.want)
		}
	}
}
