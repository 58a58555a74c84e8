// Package ir provides the document model for TAP test runs.
//
// # Overview
//
// The ir package defines the core data structures representing a parsed
// TAP document: an ordered sequence of test cases, an optional plan, an
// optional bail-out, and free-floating comments.  All TAP input
// (whether parsed from text, converted from another format, or built
// programmatically) is represented as an ir.Document.
//
// The model is a plain recursive structure readily representable in
// JSON and YAML, which makes it useful for manipulating test runs in
// contexts that lack TAP parsing and encoding support.  It contains no
// position information; positions live only on the warnings a lenient
// parse records.
//
// # Document States
//
// A Document is in one of three states, none of which is stored:
//
//   - open: no plan seen, or plan seen but the case count does not yet
//     satisfy it
//   - closed: plan present and satisfied
//   - bailed out: terminated early, remaining planned cases not run
//
// Validity is a derived property; the validate package recomputes it
// from the current contents on every call.
//
// # Ownership
//
// Each Document owns its TestCases, Plan, and Bailout exclusively.
// Merging produces a new Document with freshly cloned, renumbered
// cases; input documents are never aliased or mutated, so callers can
// reuse them after a merge.
//
// # Plans
//
// A nil Plan means "plan not yet known".  This is distinct from a plan
// of 1..0, which declares zero tests (a skip-all run), and the two must
// never be conflated: a document with no plan is invalid, a document
// with a 1..0 plan and zero cases is valid.
package ir
