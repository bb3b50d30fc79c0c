package model

// Row is one data row of an uploaded spreadsheet, keyed by header name.
// Cell values arrive as strings; numeric and date typing is inferred per-use.
type Row map[string]string

// Dataset is the raw tabular form of one uploaded file: the header row plus
// every data row. Header uniqueness is not guaranteed by the upstream file.
type Dataset struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Get returns the cell under the given header, trimmed lookup is the
// caller's job; missing headers read as empty.
func (r Row) Get(header string) string {
	if r == nil {
		return ""
	}
	return r[header]
}
