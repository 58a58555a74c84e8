// Package parse consumes TAP text into ir documents.
package parse

import (
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/signadot/go-tap/debug"
	"github.com/signadot/go-tap/ir"
	"github.com/signadot/go-tap/token"
)

// Parse consumes a full TAP text body into a Document in a single
// line-by-line pass.  In the default lenient mode structural rule
// violations are recorded as warnings on the document and parsing
// continues; with Strict the first violation aborts with a
// position-carrying error.  Unrecognized lines never fail a parse:
// they are preserved as opaque comments so that nothing is dropped.
func Parse(d []byte, opts ...ParseOption) (*ir.Document, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	p := &parser{
		opts:    pOpts,
		doc:     ir.NewDocument(),
		nextNum: 1,
	}
	lines := strings.Split(string(d), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for _, raw := range lines {
		if err := p.line(strings.TrimRight(raw, "\r")); err != nil {
			return nil, err
		}
	}
	if p.inDiag {
		if err := p.violation(ir.ErrUnterminatedBlock, p.diagStart, ""); err != nil {
			return nil, err
		}
		p.closeDiag()
	}
	if debug.Parse() {
		debug.Logf("parsed %d cases, %d warnings\n", len(p.doc.Cases), len(p.doc.Warnings))
	}
	return p.doc, nil
}

// ParseString is Parse on a string.
func ParseString(s string, opts ...ParseOption) (*ir.Document, error) {
	return Parse([]byte(s), opts...)
}

type parser struct {
	opts *parseOpts
	doc  *ir.Document

	lineno   int
	sawInput bool
	planned  bool
	bailed   bool
	nextNum  int
	cur      *ir.TestCase

	inDiag    bool
	diagFor   *ir.TestCase
	diagLines []string
	diagStart int
}

func (p *parser) line(raw string) error {
	p.lineno++
	if p.inDiag {
		return p.diagLine(raw)
	}
	return p.dispatch(token.Classify(raw))
}

func (p *parser) dispatch(lin *token.Line) error {
	if lin.Kind != token.LBlank {
		defer func() { p.sawInput = true }()
	}
	if p.bailed {
		return p.afterBailout(lin)
	}
	switch lin.Kind {
	case token.LBlank:
		// a blank line ends the preceding case's comment region
		p.cur = nil
	case token.LComment:
		p.comment(lin.Text)
	case token.LVersion:
		return p.version(lin)
	case token.LPlan:
		return p.plan(lin)
	case token.LTest:
		return p.test(lin)
	case token.LBailOut:
		p.doc.Bailout = &ir.Bailout{Reason: lin.Bailout}
		p.bailed = true
		p.cur = nil
	case token.LDiagStart:
		p.inDiag = true
		p.diagFor = p.cur
		p.diagLines = nil
		p.diagStart = p.lineno
	case token.LDiagEnd:
		// stray end marker, keep it
		p.comment(lin.Raw)
	case token.LUnknown:
		if lin.Lookalike != token.NoLookalike {
			err := newLookalikeErr(lin.Lookalike)
			if verr := p.violation(err, p.lineno, lin.Raw); verr != nil {
				return verr
			}
		}
		p.comment(lin.Raw)
	}
	return nil
}

// afterBailout handles lines following a bail-out: test-case parsing
// has terminated, comments are still collected, and everything else
// attaches to the bail-out's data.
func (p *parser) afterBailout(lin *token.Line) error {
	switch lin.Kind {
	case token.LBlank:
	case token.LComment:
		p.comment(lin.Text)
	default:
		p.doc.Bailout.Data = append(p.doc.Bailout.Data, lin.Raw)
	}
	return nil
}

func (p *parser) version(lin *token.Line) error {
	if p.sawInput {
		err := p.violation(ir.ErrMalformedDocument, p.lineno, lin.Raw)
		if err != nil {
			return err
		}
		p.comment(lin.Raw)
		return nil
	}
	if lin.Version < 13 {
		// the version directive only exists from TAP 13 on
		err := p.violation(ir.ErrMalformedDocument, p.lineno, lin.Raw)
		if err != nil {
			return err
		}
		p.comment(lin.Raw)
		return nil
	}
	p.doc.Version = lin.Version
	return nil
}

func (p *parser) plan(lin *token.Line) error {
	if p.planned {
		err := p.violation(ir.ErrDuplicatePlan, p.lineno, lin.Raw)
		if err != nil {
			return err
		}
		// first plan wins
		p.comment(lin.Raw)
		return nil
	}
	p.doc.Plan = &ir.Plan{
		First:      lin.First,
		Last:       lin.Last,
		Skip:       lin.Skip,
		SkipReason: lin.SkipReason,
	}
	p.planned = true
	if lin.Text != "" {
		p.comment(lin.Text)
	}
	return nil
}

func (p *parser) test(lin *token.Line) error {
	num := lin.Num
	if !lin.HasNum {
		num = p.nextNum
	}
	tc := &ir.TestCase{
		Num:         num,
		OK:          lin.OK,
		Description: lin.Description,
		Directive:   lin.Directive,
		Reason:      lin.Reason,
	}
	if num != p.nextNum {
		// flag, never renumber
		if err := p.violation(ir.ErrOutOfOrderNumbering, p.lineno, lin.Raw); err != nil {
			return err
		}
	}
	p.nextNum = num + 1
	p.doc.Cases = append(p.doc.Cases, tc)
	p.cur = tc
	return nil
}

func (p *parser) comment(text string) {
	if !p.bailed && p.cur != nil {
		p.cur.Comments = append(p.cur.Comments, text)
		return
	}
	p.doc.Comments = append(p.doc.Comments, ir.Comment{Text: text})
}

// diagLine runs while a diagnostic block is open.  The block closes
// cleanly on its end marker; an unindented line starting a new
// structural construct also terminates it, with an unterminated-block
// violation, and is then processed normally.  Everything else is block
// content.
func (p *parser) diagLine(raw string) error {
	if strings.TrimSpace(raw) == "..." {
		p.closeDiag()
		return nil
	}
	if len(raw) > 0 && raw[0] != ' ' && raw[0] != '\t' {
		lin := token.Classify(raw)
		switch lin.Kind {
		case token.LTest, token.LPlan, token.LBailOut, token.LVersion:
			if err := p.violation(ir.ErrUnterminatedBlock, p.diagStart, ""); err != nil {
				return err
			}
			p.closeDiag()
			return p.dispatch(lin)
		}
	}
	p.diagLines = append(p.diagLines, raw)
	return nil
}

func (p *parser) closeDiag() {
	lines := dedent(p.diagLines)
	if p.diagFor != nil {
		p.diagFor.DiagRaw = lines
		if m := decodeDiag(lines); m != nil {
			p.diagFor.Diag = m
		} else if debug.Parse() {
			debug.Logf("diag block at line %d is not a YAML mapping\n", p.diagStart)
		}
	} else {
		for _, l := range lines {
			p.doc.Comments = append(p.doc.Comments, ir.Comment{Text: l})
		}
	}
	p.inDiag = false
	p.diagFor = nil
	p.diagLines = nil
}

func (p *parser) violation(err error, line int, text string) error {
	le := ir.NewLineErr(err, line, text)
	if p.opts.strict {
		return le
	}
	p.doc.Warnings = append(p.doc.Warnings, le)
	if debug.Parse() {
		debug.Logf("warn: %s\n", le.Error())
	}
	return nil
}

func decodeDiag(lines []string) map[string]any {
	if len(lines) == 0 {
		return nil
	}
	m := map[string]any{}
	if err := yaml.Unmarshal([]byte(strings.Join(lines, "\n")+"\n"), &m); err != nil {
		return nil
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// dedent strips the longest common whitespace prefix of the non-empty
// lines, so block content reads the same at any block indentation.
func dedent(lines []string) []string {
	prefix := ""
	first := true
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		ind := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if first {
			prefix = ind
			first = false
			continue
		}
		prefix = commonPrefix(prefix, ind)
	}
	if prefix == "" {
		return lines
	}
	res := make([]string, len(lines))
	for i, l := range lines {
		res[i] = strings.TrimPrefix(l, prefix)
	}
	return res
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
