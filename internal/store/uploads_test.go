package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gridops/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "gridops.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetDataset(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	ds := model.Dataset{
		Headers: []string{"SITE CODE", "DEVICE STATUS"},
		Rows: []model.Row{
			{"SITE CODE": "S1", "DEVICE STATUS": "ONLINE"},
			{"SITE CODE": "S2", "DEVICE STATUS": "OFFLINE"},
		},
	}
	info := model.FileInfo{
		ID:         "u-1",
		Name:       "device_status_nov.xlsx",
		UploadType: "device_status",
		UploadedAt: time.Date(2025, 11, 17, 10, 0, 0, 0, time.UTC),
		CreatedAt:  time.Date(2025, 11, 17, 10, 0, 0, 0, time.UTC),
	}

	if err := s.SaveDataset(info, ds); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}

	got, err := s.GetDataset("u-1")
	if err != nil {
		t.Fatalf("GetDataset failed: %v", err)
	}
	if len(got.Headers) != 2 || got.Headers[0] != "SITE CODE" {
		t.Errorf("headers round trip wrong: %v", got.Headers)
	}
	if len(got.Rows) != 2 || got.Rows[1].Get("DEVICE STATUS") != "OFFLINE" {
		t.Errorf("rows round trip wrong: %v", got.Rows)
	}
}

func TestListFiles_NewestFirst(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	older := model.FileInfo{ID: "u-old", Name: "old.xlsx", UploadedAt: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), CreatedAt: time.Now()}
	newer := model.FileInfo{ID: "u-new", Name: "new.xlsx", UploadedAt: time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC), CreatedAt: time.Now()}
	for _, info := range []model.FileInfo{older, newer} {
		if err := s.SaveDataset(info, model.Dataset{}); err != nil {
			t.Fatalf("SaveDataset(%s) failed: %v", info.ID, err)
		}
	}

	files, err := s.ListFiles()
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(files) != 2 || files[0].ID != "u-new" {
		t.Fatalf("ordering wrong: %+v", files)
	}
}

func TestGetDataset_NotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if _, err := s.GetDataset("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteUpload(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	info := model.FileInfo{ID: "u-1", Name: "x.xlsx", UploadedAt: time.Now(), CreatedAt: time.Now()}
	if err := s.SaveDataset(info, model.Dataset{}); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}

	if err := s.DeleteUpload("u-1"); err != nil {
		t.Fatalf("DeleteUpload failed: %v", err)
	}
	if err := s.DeleteUpload("u-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}
}
