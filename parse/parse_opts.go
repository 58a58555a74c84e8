package parse

type parseOpts struct {
	strict bool
}

type ParseOption func(*parseOpts)

// Strict makes structural violations abort the parse instead of
// accumulating as warnings.
func Strict() ParseOption {
	return func(o *parseOpts) { o.strict = true }
}

// Lenient restores the default warn-and-continue behavior.
func Lenient() ParseOption {
	return func(o *parseOpts) { o.strict = false }
}
