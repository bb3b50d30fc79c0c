package model

import "time"

// DatasetRole identifies which uploaded file a reconciliation run needs.
type DatasetRole string

const (
	DatasetDeviceStatus  DatasetRole = "device_status"  // primary device-status export
	DatasetOnlineOffline DatasetRole = "online_offline" // per-date online/offline snapshot
	DatasetRTUTracker    DatasetRole = "rtu_tracker"    // RTU tracker sheet
)

// FileInfo is the stored metadata of one uploaded dataset.
type FileInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	UploadType string    `json:"uploadType,omitempty"`
	RowCount   int       `json:"rowCount"`
	UploadedAt time.Time `json:"uploadedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// When returns the timestamp used for most-recent-upload selection.
func (f FileInfo) When() time.Time {
	if !f.UploadedAt.IsZero() {
		return f.UploadedAt
	}
	return f.CreatedAt
}
