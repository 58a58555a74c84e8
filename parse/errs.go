package parse

import (
	"fmt"

	"github.com/signadot/go-tap/ir"
	"github.com/signadot/go-tap/token"
)

var (
	ErrMalformedDocument   = ir.ErrMalformedDocument
	ErrDuplicatePlan       = ir.ErrDuplicatePlan
	ErrOutOfOrderNumbering = ir.ErrOutOfOrderNumbering
	ErrUnterminatedBlock   = ir.ErrUnterminatedBlock
)

func newLookalikeErr(l token.Lookalike) error {
	return fmt.Errorf("%w: looks like a %s line", ir.ErrMalformedDocument, l)
}
