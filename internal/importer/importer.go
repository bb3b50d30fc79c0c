package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"gridops/internal/model"
	"gridops/internal/store"
)

// Importer turns an uploaded spreadsheet into a stored dataset.
type Importer struct {
	store *store.Store
}

// NewImporter creates an importer over the given upload storage.
func NewImporter(s *store.Store) *Importer {
	return &Importer{store: s}
}

// Options describe one upload.
type Options struct {
	Filename   string // original filename, drives format detection
	UploadType string // declared dataset role, may be empty
	Reader     io.Reader
}

// ProgressEvent is one step of an import. Type is start/info/done/error.
type ProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Import parses and stores the upload, streaming progress events. The
// channel is closed when the import finishes; a "done" event carries the
// stored FileInfo, an "error" event ends a failed import.
func (i *Importer) Import(opts Options) <-chan ProgressEvent {
	progress := make(chan ProgressEvent, 16)
	go func() {
		defer close(progress)
		i.doImport(opts, progress)
	}()
	return progress
}

// ImportSync is Import drained to its final result, for callers that do not
// stream progress.
func (i *Importer) ImportSync(opts Options) (model.FileInfo, error) {
	var last ProgressEvent
	for event := range i.Import(opts) {
		last = event
	}
	if last.Type == "error" {
		return model.FileInfo{}, fmt.Errorf("import failed: %s", last.Message)
	}
	info, ok := last.Data.(model.FileInfo)
	if !ok {
		return model.FileInfo{}, fmt.Errorf("import finished without a result")
	}
	return info, nil
}

func (i *Importer) doImport(opts Options, progress chan<- ProgressEvent) {
	emit(progress, "start", fmt.Sprintf("importing %s", opts.Filename), nil)

	ds, err := parseUpload(opts.Filename, opts.Reader)
	if err != nil {
		emit(progress, "error", err.Error(), nil)
		return
	}
	emit(progress, "info", fmt.Sprintf("parsed %d rows, %d columns", len(ds.Rows), len(ds.Headers)), nil)

	now := time.Now()
	info := model.FileInfo{
		ID:         uuid.NewString(),
		Name:       opts.Filename,
		UploadType: opts.UploadType,
		RowCount:   len(ds.Rows),
		UploadedAt: now,
		CreatedAt:  now,
	}
	if err := i.store.SaveDataset(info, ds); err != nil {
		emit(progress, "error", err.Error(), nil)
		return
	}

	emit(progress, "done", "import complete", info)
}

func emit(progress chan<- ProgressEvent, typ, msg string, data interface{}) {
	progress <- ProgressEvent{Type: typ, Message: msg, Data: data, Timestamp: time.Now()}
}

// parseUpload reads the first sheet of an .xlsx upload, or a .csv, into a
// dataset. The first non-empty row is the header row; trailing cells missing
// from short rows read as empty.
func parseUpload(filename string, r io.Reader) (model.Dataset, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return parseExcel(r)
	case ".csv":
		return parseCSV(r)
	default:
		return model.Dataset{}, fmt.Errorf("unsupported file type: %s", filename)
	}
}

func parseExcel(r io.Reader) (model.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return model.Dataset{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return tabulate(rows), nil
}

func parseCSV(r io.Reader) (model.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read csv: %w", err)
	}
	return tabulate(rows), nil
}

// tabulate converts raw sheet rows into headers + keyed rows, skipping
// leading blank rows before the header.
func tabulate(raw [][]string) model.Dataset {
	start := 0
	for start < len(raw) && blankRow(raw[start]) {
		start++
	}
	if start >= len(raw) {
		return model.Dataset{}
	}

	headers := raw[start]
	ds := model.Dataset{Headers: headers}
	for _, cells := range raw[start+1:] {
		if blankRow(cells) {
			continue
		}
		row := make(model.Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(cells) {
				row[header] = cells[i]
			} else {
				row[header] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
