package ingest

// Option configures how a workbook is read.
type Option func(*options)

type options struct {
	sheetIndex int
	sheetName  string
}

// WithSheetIndex selects the sheet by position; the default is the first one.
func WithSheetIndex(i int) Option {
	return func(o *options) {
		if i >= 0 {
			o.sheetIndex = i
		}
	}
}

// WithSheetName selects the sheet by name and overrides WithSheetIndex.
func WithSheetName(name string) Option {
	return func(o *options) {
		o.sheetName = name
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
