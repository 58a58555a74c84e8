package merge

type mergeOpts struct {
	continueOnBailout bool
}

type MergeOption func(*mergeOpts)

// ContinueOnBailout makes a bailed-out input non-fatal: the merge
// includes inputs up to and including the first bailed-out one,
// carries its bail-out into the result, and leaves later inputs out.
func ContinueOnBailout() MergeOption {
	return func(o *mergeOpts) { o.continueOnBailout = true }
}
