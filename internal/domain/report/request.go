package report

// Request is one item of a batch. Only the input matching Kind is read.
type Request struct {
	Kind    Kind
	Sales   *SalesInput
	Staff   *StaffInput
	Cellsum *CellsumInput
}

// Result is the outcome of one batch item. Bundle is nil when Err is set.
type Result struct {
	Index  int
	Kind   Kind
	Bundle any
	Err    error
}

// Valid reports whether k names a known report kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSales, KindStaff, KindCellsum:
		return true
	}
	return false
}
