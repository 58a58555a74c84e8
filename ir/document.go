package ir

import (
	"github.com/signadot/go-tap/token"
)

// DefaultVersion is the TAP version assumed when a document carries no
// version line.  YAML diagnostic blocks are a version 13 feature.
const DefaultVersion = 12

// Document is a parsed TAP test run.
type Document struct {
	Version  int         `json:"version"`
	Cases    []*TestCase `json:"cases,omitempty"`
	Plan     *Plan       `json:"plan,omitempty"`
	Bailout  *Bailout    `json:"bailout,omitempty"`
	Comments []Comment   `json:"comments,omitempty"`
	Warnings []*LineErr  `json:"warnings,omitempty"`
}

func NewDocument() *Document {
	return &Document{Version: DefaultVersion}
}

// TestCase is a single test line together with its attached comments
// and diagnostic block.
type TestCase struct {
	Num         int             `json:"num"`
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	Directive   token.Directive `json:"directive,omitempty"`
	Reason      string          `json:"reason,omitempty"`

	// Diag holds the decoded YAML diagnostic block, nil when the
	// block is absent or not valid YAML.  DiagRaw always holds the
	// dedented block lines as read, so nothing is lost to a decode
	// failure.
	Diag    map[string]any `json:"diag,omitempty"`
	DiagRaw []string       `json:"diagRaw,omitempty"`

	Comments []string `json:"comments,omitempty"`
}

// Todo reports whether the case carries a TODO directive.
func (tc *TestCase) Todo() bool { return tc.Directive == token.Todo }

// Skipped reports whether the case carries a SKIP directive.
func (tc *TestCase) Skipped() bool { return tc.Directive == token.Skip }

// Passed reports whether the case counts as a success: an ok outcome,
// a skipped case, or a failing case marked TODO.
func (tc *TestCase) Passed() bool {
	if tc.Skipped() {
		return true
	}
	if tc.Todo() {
		return true
	}
	return tc.OK
}

// HasDiag reports whether the case carries any diagnostic block
// content, decoded or raw.
func (tc *TestCase) HasDiag() bool {
	return len(tc.Diag) > 0 || len(tc.DiagRaw) > 0
}

// Plan declares the expected test count, usually 1..N.  A plan of 1..0
// or one carrying a skip reason declares a skip-all run.
type Plan struct {
	First      int    `json:"first"`
	Last       int    `json:"last"`
	Skip       bool   `json:"skip,omitempty"`
	SkipReason string `json:"skipReason,omitempty"`
}

// Count is the number of tests the plan declares.
func (p *Plan) Count() int {
	if p.Last < p.First {
		return 0
	}
	return p.Last - p.First + 1
}

// SkipAll reports whether the plan declares that no tests run.
func (p *Plan) SkipAll() bool {
	return p.Last < p.First || p.Skip || p.SkipReason != ""
}

// Bailout is an early-termination signal.  Data collects the non-test
// lines following the bail-out line.
type Bailout struct {
	Reason string   `json:"reason,omitempty"`
	Data   []string `json:"data,omitempty"`
}

// Comment is a free-floating comment not attached to a test case.
// Source is the index of the input document a merge took it from; it
// is 0 for parsed documents and is not part of the text representation.
type Comment struct {
	Text   string `json:"text"`
	Source int    `json:"source,omitempty"`
}

// BailedOut reports whether the document recorded a bail-out.
func (d *Document) BailedOut() bool { return d.Bailout != nil }

// HasDiag reports whether any case carries a diagnostic block.
func (d *Document) HasDiag() bool {
	for _, tc := range d.Cases {
		if tc.HasDiag() {
			return true
		}
	}
	return false
}

func (tc *TestCase) Clone() *TestCase {
	res := &TestCase{
		Num:         tc.Num,
		OK:          tc.OK,
		Description: tc.Description,
		Directive:   tc.Directive,
		Reason:      tc.Reason,
	}
	if tc.Diag != nil {
		res.Diag = cloneMap(tc.Diag)
	}
	if tc.DiagRaw != nil {
		res.DiagRaw = append([]string{}, tc.DiagRaw...)
	}
	if tc.Comments != nil {
		res.Comments = append([]string{}, tc.Comments...)
	}
	return res
}

func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	res := *p
	return &res
}

func (b *Bailout) Clone() *Bailout {
	if b == nil {
		return nil
	}
	res := &Bailout{Reason: b.Reason}
	if b.Data != nil {
		res.Data = append([]string{}, b.Data...)
	}
	return res
}

func (d *Document) Clone() *Document {
	res := &Document{
		Version: d.Version,
		Plan:    d.Plan.Clone(),
		Bailout: d.Bailout.Clone(),
	}
	if d.Cases != nil {
		res.Cases = make([]*TestCase, len(d.Cases))
		for i, tc := range d.Cases {
			res.Cases[i] = tc.Clone()
		}
	}
	if d.Comments != nil {
		res.Comments = append([]Comment{}, d.Comments...)
	}
	if d.Warnings != nil {
		res.Warnings = make([]*LineErr, len(d.Warnings))
		for i, w := range d.Warnings {
			res.Warnings[i] = &LineErr{Err: w.Err, Line: w.Line, Text: w.Text}
		}
	}
	return res
}

func cloneMap(m map[string]any) map[string]any {
	res := make(map[string]any, len(m))
	for k, v := range m {
		res[k] = cloneAny(v)
	}
	return res
}

func cloneAny(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneMap(x)
	case []any:
		res := make([]any, len(x))
		for i, e := range x {
			res[i] = cloneAny(e)
		}
		return res
	default:
		return v
	}
}
