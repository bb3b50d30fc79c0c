package importer

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"gridops/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "gridops.db"))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, cells := range rows {
		for j, cell := range cells {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellStr(sheet, name, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestImportSync_Excel(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	buf := buildWorkbook(t, [][]string{
		{"SITE CODE", "DEVICE STATUS"},
		{"S1", "ONLINE"},
		{"S2", "OFFLINE"},
	})

	info, err := NewImporter(s).ImportSync(Options{
		Filename:   "device_status.xlsx",
		UploadType: "device_status",
		Reader:     buf,
	})
	if err != nil {
		t.Fatalf("ImportSync failed: %v", err)
	}
	if info.ID == "" || info.RowCount != 2 {
		t.Fatalf("file info wrong: %+v", info)
	}

	ds, err := s.GetDataset(info.ID)
	if err != nil {
		t.Fatalf("GetDataset failed: %v", err)
	}
	if len(ds.Rows) != 2 || ds.Rows[0].Get("SITE CODE") != "S1" {
		t.Fatalf("stored dataset wrong: %+v", ds)
	}
}

func TestImportSync_CSV(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	csv := "SITE CODE,DEVICE STATUS\nS1,ONLINE\n\nS2,OFFLINE\n"

	info, err := NewImporter(s).ImportSync(Options{
		Filename: "tracker.csv",
		Reader:   strings.NewReader(csv),
	})
	if err != nil {
		t.Fatalf("ImportSync failed: %v", err)
	}
	if info.RowCount != 2 {
		t.Fatalf("blank rows should be dropped: %+v", info)
	}
}

func TestImportSync_UnsupportedType(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := NewImporter(s).ImportSync(Options{
		Filename: "notes.txt",
		Reader:   strings.NewReader("hello"),
	})
	if err == nil {
		t.Fatal("expected error for unsupported file type")
	}
}

func TestImport_ProgressEvents(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	buf := buildWorkbook(t, [][]string{{"SITE CODE"}, {"S1"}})

	var types []string
	for event := range NewImporter(s).Import(Options{Filename: "f.xlsx", Reader: buf}) {
		types = append(types, event.Type)
	}
	if len(types) < 3 || types[0] != "start" || types[len(types)-1] != "done" {
		t.Fatalf("event sequence wrong: %v", types)
	}
}

func TestTabulate_ShortRowsReadEmpty(t *testing.T) {
	t.Parallel()

	ds := tabulate([][]string{
		{"SITE CODE", "DEVICE STATUS"},
		{"S1"},
	})
	if len(ds.Rows) != 1 {
		t.Fatalf("rows = %d", len(ds.Rows))
	}
	if got := ds.Rows[0].Get("DEVICE STATUS"); got != "" {
		t.Fatalf("missing trailing cell should read empty, got %q", got)
	}
}

func TestTabulate_LeadingBlankRowsSkipped(t *testing.T) {
	t.Parallel()

	ds := tabulate([][]string{
		{"", ""},
		{"SITE CODE"},
		{"S1"},
	})
	if len(ds.Headers) != 1 || ds.Headers[0] != "SITE CODE" {
		t.Fatalf("header detection wrong: %+v", ds)
	}
}
