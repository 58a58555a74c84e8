package ir

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument covers structural rule violations that do
	// not have a more specific sentinel, such as a version line after
	// the first line or a near miss of the line grammar.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrDuplicatePlan marks a second plan line.
	ErrDuplicatePlan = errors.New("duplicate plan")

	// ErrOutOfOrderNumbering marks a test ordinal that repeats or
	// goes backward.
	ErrOutOfOrderNumbering = errors.New("out of order numbering")

	// ErrUnterminatedBlock marks a diagnostic block closed by
	// something other than its end marker.
	ErrUnterminatedBlock = errors.New("unterminated diagnostic block")
)

// LineErr ties one of the sentinel errors above to the line that
// triggered it.  In strict mode the parser returns it; in lenient mode
// it accumulates on Document.Warnings.
type LineErr struct {
	Err  error
	Line int
	Text string
}

func NewLineErr(err error, line int, text string) *LineErr {
	return &LineErr{Err: err, Line: line, Text: text}
}

func (e *LineErr) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s at line %d", e.Err, e.Line)
	}
	return fmt.Sprintf("%s at line %d: %q", e.Err, e.Line, e.Text)
}

func (e *LineErr) Unwrap() error {
	return e.Err
}

type lineErrJSON struct {
	Err  string `json:"error"`
	Line int    `json:"line"`
	Text string `json:"text,omitempty"`
}

func (e *LineErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineErrJSON{
		Err:  e.Err.Error(),
		Line: e.Line,
		Text: e.Text,
	})
}

func (e *LineErr) UnmarshalJSON(d []byte) error {
	tmp := &lineErrJSON{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	e.Line = tmp.Line
	e.Text = tmp.Text
	e.Err = matchSentinel(tmp.Err)
	return nil
}

// matchSentinel recovers the sentinel identity of an error message that
// went through JSON, so errors.Is keeps working on decoded documents.
func matchSentinel(msg string) error {
	for _, s := range []error{
		ErrMalformedDocument,
		ErrDuplicatePlan,
		ErrOutOfOrderNumbering,
		ErrUnterminatedBlock,
	} {
		if msg == s.Error() {
			return s
		}
	}
	return errors.New(msg)
}
