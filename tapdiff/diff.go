// Package tapdiff compares two TAP documents.
//
// The comparison is semantic, position by position: outcome,
// description, directive, and diagnostic changes per case, plus plan,
// version, and bail-out changes at the document level.  Changed text
// fields additionally carry a character-level diff so long
// descriptions and diagnostic blocks read as edits rather than as a
// remove/add pair.
package tapdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/go-tap/ir"
)

// ChangeKind says what a Change is about.
type ChangeKind int

const (
	VersionChange ChangeKind = iota
	PlanChange
	BailoutChange
	CaseAdded
	CaseRemoved
	OutcomeChange
	DescriptionChange
	DirectiveChange
	DiagChange
)

func (k ChangeKind) String() string {
	s, ok := map[ChangeKind]string{
		VersionChange:     "version",
		PlanChange:        "plan",
		BailoutChange:     "bailout",
		CaseAdded:         "case added",
		CaseRemoved:       "case removed",
		OutcomeChange:     "outcome",
		DescriptionChange: "description",
		DirectiveChange:   "directive",
		DiagChange:        "diagnostics",
	}[k]
	if ok {
		return s
	}
	return "<unknown change kind>"
}

// Change is one difference between the documents.  Num is the case
// ordinal for case-level changes and 0 for document-level ones.
type Change struct {
	Kind     ChangeKind
	Num      int
	From, To string
}

func (c *Change) String() string {
	where := ""
	if c.Num != 0 {
		where = fmt.Sprintf(" at test %d", c.Num)
	}
	switch c.Kind {
	case CaseAdded:
		return fmt.Sprintf("%s%s: %s", c.Kind, where, c.To)
	case CaseRemoved:
		return fmt.Sprintf("%s%s: %s", c.Kind, where, c.From)
	}
	return fmt.Sprintf("%s%s: %s", c.Kind, where, inlineDiff(c.From, c.To))
}

// Report is the set of changes from one document to another, in
// document order.
type Report struct {
	Changes []*Change
}

// Empty reports whether the documents compared semantically equal.
func (r *Report) Empty() bool {
	return len(r.Changes) == 0
}

func (r *Report) String() string {
	lines := make([]string, len(r.Changes))
	for i, c := range r.Changes {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}

// Diff compares from and to.  Neither input is modified.
func Diff(from, to *ir.Document) *Report {
	r := &Report{}
	if from.Version != to.Version {
		r.add(VersionChange, 0, fmt.Sprint(from.Version), fmt.Sprint(to.Version))
	}
	if pa, pb := planText(from.Plan), planText(to.Plan); pa != pb {
		r.add(PlanChange, 0, pa, pb)
	}
	if ba, bb := bailoutText(from.Bailout), bailoutText(to.Bailout); ba != bb {
		r.add(BailoutChange, 0, ba, bb)
	}
	n := max(len(from.Cases), len(to.Cases))
	for i := 0; i < n; i++ {
		switch {
		case i >= len(from.Cases):
			r.add(CaseAdded, i+1, "", caseText(to.Cases[i]))
		case i >= len(to.Cases):
			r.add(CaseRemoved, i+1, caseText(from.Cases[i]), "")
		default:
			r.diffCase(i+1, from.Cases[i], to.Cases[i])
		}
	}
	return r
}

func (r *Report) add(kind ChangeKind, num int, from, to string) {
	r.Changes = append(r.Changes, &Change{Kind: kind, Num: num, From: from, To: to})
}

func (r *Report) diffCase(num int, a, b *ir.TestCase) {
	if a.OK != b.OK {
		r.add(OutcomeChange, num, outcomeText(a.OK), outcomeText(b.OK))
	}
	if a.Description != b.Description {
		r.add(DescriptionChange, num, a.Description, b.Description)
	}
	if da, db := directiveText(a), directiveText(b); da != db {
		r.add(DirectiveChange, num, da, db)
	}
	if da, db := diagText(a), diagText(b); da != db {
		r.add(DiagChange, num, da, db)
	}
}

func outcomeText(ok bool) string {
	if ok {
		return "ok"
	}
	return "not ok"
}

func caseText(tc *ir.TestCase) string {
	s := outcomeText(tc.OK)
	if tc.Description != "" {
		s += " " + tc.Description
	}
	if d := directiveText(tc); d != "" {
		s += " # " + d
	}
	return s
}

func directiveText(tc *ir.TestCase) string {
	s := tc.Directive.String()
	if s != "" && tc.Reason != "" {
		s += " " + tc.Reason
	}
	return s
}

func diagText(tc *ir.TestCase) string {
	return strings.Join(tc.DiagRaw, "\n")
}

func planText(p *ir.Plan) string {
	if p == nil {
		return "(none)"
	}
	s := fmt.Sprintf("%d..%d", p.First, p.Last)
	if p.Skip || p.SkipReason != "" {
		s += " # SKIP"
		if p.SkipReason != "" {
			s += " " + p.SkipReason
		}
	}
	return s
}

func bailoutText(b *ir.Bailout) string {
	if b == nil {
		return "(none)"
	}
	if b.Reason == "" {
		return "Bail out!"
	}
	return "Bail out! " + b.Reason
}

// inlineDiff renders a character-level edit from a to b, deletions in
// [-...-] and insertions in {+...+}, falling back to "a -> b" when the
// texts share too little for an edit view to help.
func inlineDiff(a, b string) string {
	if a == "" || b == "" {
		return fmt.Sprintf("%q -> %q", a, b)
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(a, b, strings.Contains(a, "\n") && strings.Contains(b, "\n"))
	dmp.DiffCleanupSemantic(diffs)
	changed := 0
	for _, d := range diffs {
		if d.Type != diffpatch.DiffEqual {
			changed += len(d.Text)
		}
	}
	if changed > min(len(a), len(b)) {
		return fmt.Sprintf("%q -> %q", a, b)
	}
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}
