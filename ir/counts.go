package ir

// Len is the declared length of the document: the plan count when a
// plan is present, otherwise the number of parsed cases.
func (d *Document) Len() int {
	if d.Plan != nil {
		return d.Plan.Count()
	}
	return len(d.Cases)
}

// ActualLen is the number of parsed cases, regardless of plan.
func (d *Document) ActualLen() int {
	return len(d.Cases)
}

// Range returns the declared ordinal bounds, (1, 0) for an empty
// planless document.
func (d *Document) Range() (first, last int) {
	if d.Plan != nil {
		return d.Plan.First, d.Plan.Last
	}
	return 1, len(d.Cases)
}

// Case returns the test case with ordinal num, or nil.
func (d *Document) Case(num int) *TestCase {
	// ordinals are positional in well-formed documents
	if num >= 1 && num <= len(d.Cases) && d.Cases[num-1].Num == num {
		return d.Cases[num-1]
	}
	for _, tc := range d.Cases {
		if tc.Num == num {
			return tc
		}
	}
	return nil
}

func (d *Document) PassedLen() int {
	n := 0
	for _, tc := range d.Cases {
		if tc.Passed() {
			n++
		}
	}
	return n
}

func (d *Document) FailedLen() int {
	n := 0
	for _, tc := range d.Cases {
		if !tc.Passed() {
			n++
		}
	}
	return n
}

func (d *Document) TodoLen() int {
	n := 0
	for _, tc := range d.Cases {
		if tc.Todo() {
			n++
		}
	}
	return n
}

func (d *Document) SkipLen() int {
	n := 0
	for _, tc := range d.Cases {
		if tc.Skipped() {
			n++
		}
	}
	return n
}

// AllOK reports whether every case passed and the run did not bail out.
func (d *Document) AllOK() bool {
	if d.BailedOut() {
		return false
	}
	for _, tc := range d.Cases {
		if !tc.Passed() {
			return false
		}
	}
	return true
}
