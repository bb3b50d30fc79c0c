package source

import (
	"testing"
	"time"

	"gridops/internal/model"
)

func at(day int) time.Time {
	return time.Date(2025, 11, day, 0, 0, 0, 0, time.UTC)
}

func TestSelectLatest_ByName(t *testing.T) {
	t.Parallel()

	files := []model.FileInfo{
		{ID: "a", Name: "Device_Status_Oct.xlsx", UploadedAt: at(1)},
		{ID: "b", Name: "DEVICE STATUS NOV.xlsx", UploadedAt: at(17)},
		{ID: "c", Name: "rtu-tracker.xlsx", UploadedAt: at(20)},
	}

	got, ok := SelectLatest(files, model.DatasetDeviceStatus)
	if !ok || got.ID != "b" {
		t.Fatalf("want latest device-status file b, got %+v ok=%v", got, ok)
	}

	got, ok = SelectLatest(files, model.DatasetRTUTracker)
	if !ok || got.ID != "c" {
		t.Fatalf("want rtu tracker c, got %+v ok=%v", got, ok)
	}
}

func TestSelectLatest_UploadTypeWins(t *testing.T) {
	t.Parallel()

	files := []model.FileInfo{
		{ID: "a", Name: "export (3).xlsx", UploadType: "online_offline", UploadedAt: at(2)},
		{ID: "b", Name: "online offline old.xlsx", UploadedAt: at(25)},
		// declared type contradicts the name; declaration wins
		{ID: "c", Name: "online list.xlsx", UploadType: "rtu_tracker", UploadedAt: at(28)},
	}

	got, ok := SelectLatest(files, model.DatasetOnlineOffline)
	if !ok || got.ID != "b" {
		t.Fatalf("got %+v ok=%v", got, ok)
	}
	got, ok = SelectLatest(files, model.DatasetRTUTracker)
	if !ok || got.ID != "c" {
		t.Fatalf("got %+v ok=%v", got, ok)
	}
}

func TestSelectLatest_CreatedAtFallbackAndTies(t *testing.T) {
	t.Parallel()

	files := []model.FileInfo{
		{ID: "z", Name: "device status.xlsx", CreatedAt: at(3)},
		{ID: "a", Name: "device status copy.xlsx", CreatedAt: at(3)},
	}
	got, ok := SelectLatest(files, model.DatasetDeviceStatus)
	if !ok || got.ID != "a" {
		t.Fatalf("tie should break deterministically by id, got %+v", got)
	}
}

func TestSelectLatest_NoCandidates(t *testing.T) {
	t.Parallel()

	files := []model.FileInfo{{ID: "a", Name: "inspection photos.xlsx", UploadedAt: at(1)}}
	if _, ok := SelectLatest(files, model.DatasetOnlineOffline); ok {
		t.Fatal("expected no candidate")
	}
}
