package model

import "time"

// SourceResult records how one dataset participated in a reconciliation run.
// Status is merged/skipped/missing.
type SourceResult struct {
	Role        DatasetRole `json:"role"`
	FileID      string      `json:"fileId,omitempty"`
	FileName    string      `json:"fileName,omitempty"`
	Status      string      `json:"status"`
	Reason      string      `json:"reason,omitempty"`
	RowsRead    int         `json:"rowsRead"`
	RowsEmitted int         `json:"rowsEmitted"`
	DateColumns int         `json:"dateColumns"`
}

// ReconcileReport carries the diagnostic counters of one run. Degradations
// are recorded here, never raised as errors.
type ReconcileReport struct {
	Sources       []SourceResult `json:"sources"`
	Records       int            `json:"records"`
	DuplicateRows int            `json:"duplicateRows"` // candidates discarded by first-wins dedup
	BlankSiteRows int            `json:"blankSiteRows"`
	UndatedRows   int            `json:"undatedRows"`
	Duration      time.Duration  `json:"duration"`
}
