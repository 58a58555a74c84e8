// Package filter selects test cases from a document by predicate.
//
// Predicates are expr-lang expressions evaluated once per test case
// against an environment exposing the case's fields, for example
//
//	!ok && directive != "TODO"
//	num > 10 || description matches "auth"
//
// The selection is a new document; the input is never modified.
package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/go-tap/ir"
)

// Predicate is a compiled case predicate, safe for concurrent use.
type Predicate struct {
	src  string
	prog *vm.Program
}

// Env is the expression environment of one test case.
type Env struct {
	Num         int            `expr:"num"`
	OK          bool           `expr:"ok"`
	Description string         `expr:"description"`
	Directive   string         `expr:"directive"`
	Reason      string         `expr:"reason"`
	Passed      bool           `expr:"passed"`
	Todo        bool           `expr:"todo"`
	Skipped     bool           `expr:"skipped"`
	HasDiag     bool           `expr:"has_diag"`
	Diag        map[string]any `expr:"diag"`
}

// Compile compiles a case predicate.  The expression must evaluate to
// a boolean.
func Compile(src string) (*Predicate, error) {
	prog, err := expr.Compile(src,
		expr.Env(Env{}),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compiling predicate %q: %w", src, err)
	}
	return &Predicate{src: src, prog: prog}, nil
}

func (p *Predicate) String() string {
	return p.src
}

// Match evaluates the predicate against one test case.
func (p *Predicate) Match(tc *ir.TestCase) (bool, error) {
	res, err := expr.Run(p.prog, caseEnv(tc))
	if err != nil {
		return false, fmt.Errorf("evaluating %q on test %d: %w", p.src, tc.Num, err)
	}
	return res.(bool), nil
}

func caseEnv(tc *ir.TestCase) Env {
	return Env{
		Num:         tc.Num,
		OK:          tc.OK,
		Description: tc.Description,
		Directive:   tc.Directive.String(),
		Reason:      tc.Reason,
		Passed:      tc.Passed(),
		Todo:        tc.Todo(),
		Skipped:     tc.Skipped(),
		HasDiag:     tc.HasDiag(),
		Diag:        tc.Diag,
	}
}

// Select produces a new document holding clones of the cases matching
// the predicate, renumbered 1..n under a fresh plan.  The document's
// version, bail-out, and free-floating comments carry over; warnings
// do not, since they refer to lines of the unfiltered text.
func Select(d *ir.Document, p *Predicate) (*ir.Document, error) {
	res := ir.NewDocument()
	res.Version = d.Version
	res.Bailout = d.Bailout.Clone()
	if d.Comments != nil {
		res.Comments = append([]ir.Comment{}, d.Comments...)
	}
	num := 1
	for _, tc := range d.Cases {
		ok, err := p.Match(tc)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		c := tc.Clone()
		c.Num = num
		num++
		res.Cases = append(res.Cases, c)
	}
	res.Plan = &ir.Plan{First: 1, Last: num - 1}
	if num == 1 {
		res.Plan.Skip = true
		res.Plan.SkipReason = "no tests matched " + p.src
	}
	return res, nil
}

// SelectString compiles src and selects with it.
func SelectString(d *ir.Document, src string) (*ir.Document, error) {
	p, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return Select(d, p)
}
