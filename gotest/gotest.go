// Package gotest converts "go test -json" event streams to TAP
// documents.
//
// Each completed Go test becomes one test case, in completion order; a
// package that fails without reporting any test (a build failure or a
// panic outside tests) becomes a failing case of its own so the
// failure is never silently dropped.  Skipped tests carry a SKIP
// directive.  Failing tests carry a diagnostic block with the package,
// elapsed time, and captured output.
package gotest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/signadot/go-tap/ir"
	"github.com/signadot/go-tap/token"
)

type testEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

type convertOpts struct {
	verbose bool
}

type ConvertOption func(*convertOpts)

// Verbose attaches diagnostic blocks to passing tests too, not only
// failing ones.
func Verbose() ConvertOption {
	return func(o *convertOpts) { o.verbose = true }
}

type testState struct {
	pkg     string
	name    string
	action  string
	elapsed float64
	output  strings.Builder
}

type pkgState struct {
	name     string
	output   strings.Builder
	reported bool
}

// Convert reads go test -json events from r and builds a TAP document.
// Unparseable input lines become free-floating comments, never an
// error: a converter that dies on a stray stderr line in the stream is
// useless in practice.
func Convert(r io.Reader, opts ...ConvertOption) (*ir.Document, error) {
	cOpts := &convertOpts{}
	for _, f := range opts {
		f(cOpts)
	}
	c := &converter{
		opts: cOpts,
		doc:  ir.NewDocument(),
		pkgs: map[string]*pkgState{},
		live: map[string]*testState{},
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		c.event(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading go test events: %w", err)
	}
	c.finish()
	return c.doc, nil
}

type converter struct {
	opts *convertOpts
	doc  *ir.Document
	pkgs map[string]*pkgState
	live map[string]*testState
	num  int
}

func (c *converter) event(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	ev := &testEvent{}
	if err := json.Unmarshal([]byte(line), ev); err != nil {
		c.doc.Comments = append(c.doc.Comments, ir.Comment{Text: "unparseable: " + line})
		return
	}

	pkg := c.pkgs[ev.Package]
	if pkg == nil {
		pkg = &pkgState{name: ev.Package}
		c.pkgs[ev.Package] = pkg
	}

	if ev.Test == "" {
		switch ev.Action {
		case "output":
			pkg.output.WriteString(ev.Output)
		case "fail":
			if !pkg.reported {
				c.packageFailure(pkg, ev.Elapsed)
			}
		}
		return
	}

	key := ev.Package + "/" + ev.Test
	ts := c.live[key]
	if ts == nil {
		ts = &testState{pkg: ev.Package, name: ev.Test}
		c.live[key] = ts
	}
	switch ev.Action {
	case "output":
		ts.output.WriteString(ev.Output)
	case "pass", "fail", "skip":
		ts.action = ev.Action
		ts.elapsed = ev.Elapsed
		pkg.reported = true
		c.emit(ts)
		delete(c.live, key)
	}
}

func (c *converter) emit(ts *testState) {
	c.num++
	tc := &ir.TestCase{
		Num:         c.num,
		OK:          ts.action != "fail",
		Description: ts.pkg + "." + ts.name,
	}
	if ts.action == "skip" {
		tc.Directive = token.Skip
	}
	if ts.action == "fail" || c.opts.verbose {
		tc.Diag = map[string]any{
			"package": ts.pkg,
			"elapsed": ts.elapsed,
		}
		if out := strings.TrimRight(ts.output.String(), "\n"); out != "" {
			tc.Diag["output"] = out
		}
	}
	c.doc.Cases = append(c.doc.Cases, tc)
}

// packageFailure reports a package that failed without completing any
// test, such as a build error.
func (c *converter) packageFailure(pkg *pkgState, elapsed float64) {
	c.num++
	tc := &ir.TestCase{
		Num:         c.num,
		OK:          false,
		Description: pkg.name,
		Diag: map[string]any{
			"package": pkg.name,
			"elapsed": elapsed,
		},
	}
	if out := strings.TrimRight(pkg.output.String(), "\n"); out != "" {
		tc.Diag["output"] = out
	}
	c.doc.Cases = append(c.doc.Cases, tc)
}

// finish closes out tests the stream left running, marks the document
// version, and plans the run.
func (c *converter) finish() {
	// a test with output but no terminal action means the run was
	// cut short
	keys := make([]string, 0, len(c.live))
	for key := range c.live {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		ts := c.live[key]
		if ts.action != "" {
			continue
		}
		ts.action = "fail"
		ts.output.WriteString("test did not complete\n")
		c.emit(ts)
	}
	if c.doc.HasDiag() {
		c.doc.Version = 13
	}
	c.doc.Plan = &ir.Plan{First: 1, Last: c.num}
	if c.num == 0 {
		c.doc.Plan.Skip = true
		c.doc.Plan.SkipReason = "no tests to run"
	}
}
