// Package encode renders ir documents as canonical TAP text.
package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/signadot/go-tap/ir"
	"github.com/signadot/go-tap/token"
)

type EncState struct {
	diagYAML bool

	Color func(ColorAttr, string) string
}

// Encode writes the document as TAP text: version line when above the
// default, plan, test lines in order each followed by its comments and
// diagnostic block, bail-out, and free-floating comments last.  The
// output parses back to a semantically equal document.
func Encode(d *ir.Document, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	lw := &lineWriter{w: w}
	if d.Version > ir.DefaultVersion {
		lw.writeln(es.paint(VersionColor, fmt.Sprintf("TAP version %d", d.Version)))
	}
	if d.Plan != nil {
		lw.writeln(es.paint(PlanColor, planLine(d.Plan)))
	}
	for _, tc := range d.Cases {
		es.testCase(lw, tc)
	}
	if d.Bailout != nil {
		es.bailout(lw, d.Bailout)
	}
	if len(d.Comments) > 0 {
		if lw.wrote {
			lw.writeln("")
		}
		for _, c := range d.Comments {
			lw.writeln(es.paint(CommentColor, "# "+c.Text))
		}
	}
	return lw.err
}

// String renders the document to a string.
func String(d *ir.Document, opts ...EncodeOption) (string, error) {
	var b strings.Builder
	if err := Encode(d, &b, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MustString is String, panicking on error.  Encoding to a builder
// only fails on un-renderable diagnostics.
func MustString(d *ir.Document, opts ...EncodeOption) string {
	s, err := String(d, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func planLine(p *ir.Plan) string {
	line := fmt.Sprintf("%d..%d", p.First, p.Last)
	if p.Skip || p.SkipReason != "" {
		line += " # SKIP"
		if p.SkipReason != "" {
			line += " " + p.SkipReason
		}
	}
	return line
}

func (es *EncState) testCase(lw *lineWriter, tc *ir.TestCase) {
	var b strings.Builder
	if tc.OK {
		b.WriteString(es.paint(OKColor, "ok"))
	} else {
		b.WriteString(es.paint(NotOKColor, "not ok"))
	}
	fmt.Fprintf(&b, " %d", tc.Num)
	if tc.Description != "" {
		// The dash separator makes the classifier's strip its own
		// inverse: a description that itself starts with "- " comes
		// back intact on reparse.
		b.WriteString(" - " + token.EscapeDescription(tc.Description))
	}
	if tc.Directive != token.NoDirective {
		dir := " # " + tc.Directive.String()
		if tc.Reason != "" {
			dir += " " + tc.Reason
		}
		b.WriteString(es.paint(DirectiveColor, dir))
	}
	lw.writeln(b.String())

	for _, c := range tc.Comments {
		lw.writeln(es.paint(CommentColor, "# "+c))
	}
	es.diag(lw, tc)
}

func (es *EncState) diag(lw *lineWriter, tc *ir.TestCase) {
	if !tc.HasDiag() {
		return
	}
	lines := tc.DiagRaw
	if tc.Diag != nil && (es.diagYAML || len(lines) == 0) {
		if ml, err := marshalDiag(tc.Diag); err == nil && len(ml) > 0 {
			lines = ml
		}
	}
	if len(lines) == 0 {
		return
	}
	lw.writeln(es.paint(DiagColor, "  ---"))
	for _, l := range lines {
		if l == "" {
			lw.writeln("")
			continue
		}
		lw.writeln(es.paint(DiagColor, "  "+l))
	}
	lw.writeln(es.paint(DiagColor, "  ..."))
}

func (es *EncState) bailout(lw *lineWriter, b *ir.Bailout) {
	line := "Bail out!"
	if b.Reason != "" {
		line += " " + b.Reason
	}
	lw.writeln(es.paint(BailOutColor, line))
	for _, l := range b.Data {
		lw.writeln(l)
	}
}

func (es *EncState) paint(a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(a, s)
}

func marshalDiag(m map[string]any) ([]string, error) {
	b, err := yaml.Marshal(m)
	if err != nil {
		return nil, err
	}
	s := strings.TrimRight(string(b), "\n")
	if s == "" {
		return nil, nil
	}
	return strings.Split(s, "\n"), nil
}

type lineWriter struct {
	w     io.Writer
	err   error
	wrote bool
}

func (lw *lineWriter) writeln(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, s+"\n")
	lw.wrote = true
}
