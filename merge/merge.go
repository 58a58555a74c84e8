// Package merge combines TAP documents into one renumbered document.
package merge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/go-tap/debug"
	"github.com/signadot/go-tap/ir"
)

var (
	// ErrInsufficientInputs marks a merge of fewer than two documents.
	ErrInsufficientInputs = errors.New("insufficient inputs")

	// ErrBailedOutInput marks a merge input in a bailed-out state.
	ErrBailedOutInput = errors.New("bailed out input")
)

// Merge concatenates the inputs' test cases in input order, renumbered
// 1..total, under a fresh 1..total plan.  Original ordinals are
// positional, not identifying, and are discarded.  Free-floating
// comments carry their source-document index.  The result's version is
// the maximum among the included inputs, at least 13 when any included
// case carries a diagnostic block.
//
// A bailed-out input fails the merge by default.  With
// ContinueOnBailout the first bail-out is propagated into the result
// and later inputs are left out.  Merging zero total cases produces an
// explicit skip-all 1..0 plan rather than an absent one.
//
// Inputs are read-only: the result owns fresh clones, so callers may
// reuse input documents afterwards.
func Merge(docs []*ir.Document, opts ...MergeOption) (*ir.Document, error) {
	mOpts := &mergeOpts{}
	for _, f := range opts {
		f(mOpts)
	}
	if len(docs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 documents, got %d",
			ErrInsufficientInputs, len(docs))
	}
	included := docs
	for i, d := range docs {
		if !d.BailedOut() {
			continue
		}
		if !mOpts.continueOnBailout {
			return nil, fmt.Errorf("%w: document %d bailed out%s",
				ErrBailedOutInput, i, reasonSuffix(d.Bailout.Reason))
		}
		included = docs[:i+1]
		break
	}

	res := ir.NewDocument()
	num := 1
	for i, d := range included {
		if d.Version > res.Version {
			res.Version = d.Version
		}
		if d.HasDiag() && res.Version < 13 {
			res.Version = 13
		}
		for _, tc := range d.Cases {
			c := tc.Clone()
			c.Num = num
			num++
			res.Cases = append(res.Cases, c)
		}
		for _, c := range d.Comments {
			res.Comments = append(res.Comments, ir.Comment{Text: c.Text, Source: i})
		}
		if d.BailedOut() {
			res.Bailout = d.Bailout.Clone()
		}
	}
	total := num - 1
	res.Plan = &ir.Plan{First: 1, Last: total}
	if total == 0 {
		res.Plan.Skip = true
		res.Plan.SkipReason = joinSkipReasons(included)
	}
	if debug.Merge() {
		debug.Logf("merged %d of %d documents into %d cases\n",
			len(included), len(docs), total)
	}
	return res, nil
}

// joinSkipReasons collects the distinct skip reasons of the included
// plans, in input order.
func joinSkipReasons(docs []*ir.Document) string {
	var reasons []string
	seen := map[string]bool{}
	for _, d := range docs {
		if d.Plan == nil || d.Plan.SkipReason == "" {
			continue
		}
		if seen[d.Plan.SkipReason] {
			continue
		}
		seen[d.Plan.SkipReason] = true
		reasons = append(reasons, d.Plan.SkipReason)
	}
	return strings.Join(reasons, "; ")
}

func reasonSuffix(reason string) string {
	if reason == "" {
		return ""
	}
	return ": " + reason
}
