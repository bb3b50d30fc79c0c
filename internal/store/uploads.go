package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"gridops/internal/model"
)

// ErrNotFound is returned when the requested upload does not exist.
var ErrNotFound = errors.New("upload not found")

// SaveDataset stores one uploaded dataset with its metadata.
func (s *Store) SaveDataset(info model.FileInfo, ds model.Dataset) error {
	headersJSON, err := json.Marshal(ds.Headers)
	if err != nil {
		return fmt.Errorf("failed to encode headers: %w", err)
	}
	rowsJSON, err := json.Marshal(ds.Rows)
	if err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO uploads (id, name, upload_type, row_count, headers_json, rows_json, uploaded_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		info.ID, info.Name, info.UploadType, len(ds.Rows),
		string(headersJSON), string(rowsJSON), info.UploadedAt, info.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert upload %s: %w", info.ID, err)
	}
	return nil
}

// ListFiles returns the metadata of every stored upload, newest first.
func (s *Store) ListFiles() ([]model.FileInfo, error) {
	rows, err := s.db.Query(`
		SELECT id, name, upload_type, row_count, uploaded_at, created_at
		FROM uploads ORDER BY uploaded_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer rows.Close()

	var files []model.FileInfo
	for rows.Next() {
		var f model.FileInfo
		if err := rows.Scan(&f.ID, &f.Name, &f.UploadType, &f.RowCount, &f.UploadedAt, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload row: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// GetDataset fetches the raw dataset of one upload by id.
func (s *Store) GetDataset(id string) (model.Dataset, error) {
	var headersJSON, rowsJSON string
	err := s.db.QueryRow(`SELECT headers_json, rows_json FROM uploads WHERE id = ?`, id).
		Scan(&headersJSON, &rowsJSON)
	if err == sql.ErrNoRows {
		return model.Dataset{}, ErrNotFound
	}
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to load upload %s: %w", id, err)
	}

	var ds model.Dataset
	if err := json.Unmarshal([]byte(headersJSON), &ds.Headers); err != nil {
		return model.Dataset{}, fmt.Errorf("failed to decode headers of %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(rowsJSON), &ds.Rows); err != nil {
		return model.Dataset{}, fmt.Errorf("failed to decode rows of %s: %w", id, err)
	}
	return ds, nil
}

// DeleteUpload removes one stored upload.
func (s *Store) DeleteUpload(id string) error {
	res, err := s.db.Exec(`DELETE FROM uploads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete upload %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
