package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/propcap"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ propcap.CaptureStore = (*CaptureService)(nil)

// CaptureService implements propcap.CaptureStore using SQLite. Captures
// accumulate append-only; an identical capture (same source and payload
// hash) is rejected with ECONFLICT so repeated runs against an unchanged
// page do not grow the dataset.
type CaptureService struct {
	db *DB
}

// NewCaptureService creates a new CaptureService.
func NewCaptureService(db *DB) *CaptureService {
	return &CaptureService{db: db}
}

// contentHash computes xxHash of the extracted record with capture timestamps
// zeroed, so re-capturing an unchanged page hashes to the same value.
func contentHash(capture *propcap.Capture) (string, error) {
	prop := *capture.Property
	prop.LastUpdated = ""
	data, err := json.Marshal(&prop)
	if err != nil {
		return "", err
	}
	h := xxhash.Sum64(data)
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, h)
	return hex.EncodeToString(b), nil
}

// SaveCapture appends a capture to the dataset.
func (s *CaptureService) SaveCapture(ctx context.Context, capture *propcap.Capture) (*propcap.SavedCapture, error) {
	if capture == nil || capture.Property == nil {
		return nil, propcap.Errorf(propcap.EINVALID, "capture required")
	}

	payload, err := json.Marshal(capture)
	if err != nil {
		return nil, err
	}

	hash, err := contentHash(capture)
	if err != nil {
		return nil, err
	}

	saved := &propcap.SavedCapture{
		ID:          uuid.New().String(),
		Source:      capture.Source,
		ContentHash: hash,
		SavedAt:     time.Now().UTC().Format(time.RFC3339),
		Capture:     capture,
	}

	var name, dataSource string
	if capture.Property.Name != nil {
		name = *capture.Property.Name
	}
	if capture.Property.DataSource != nil {
		dataSource = *capture.Property.DataSource
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO captures (id, source, data_source, name, content_hash, scraped_at, saved_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, saved.ID, saved.Source, dataSource, name, saved.ContentHash, capture.ScrapedAt, saved.SavedAt, string(payload))

	if err != nil {
		if isUniqueViolation(err) {
			return nil, propcap.Errorf(propcap.ECONFLICT, "identical capture already saved for %s", capture.Source)
		}
		return nil, err
	}

	return saved, nil
}

// FindCaptures retrieves saved captures matching the filter, newest first.
func (s *CaptureService) FindCaptures(ctx context.Context, filter propcap.CaptureFilter) ([]*propcap.SavedCapture, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source, content_hash, saved_at, payload FROM captures WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}

	query.WriteString(" ORDER BY saved_at DESC, id")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query.WriteString(" LIMIT -1")
		}
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*propcap.SavedCapture
	for rows.Next() {
		saved, err := scanSavedCapture(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	return out, rows.Err()
}

func scanSavedCapture(rows *sql.Rows) (*propcap.SavedCapture, error) {
	var saved propcap.SavedCapture
	var payload string

	if err := rows.Scan(&saved.ID, &saved.Source, &saved.ContentHash, &saved.SavedAt, &payload); err != nil {
		return nil, err
	}

	var capture propcap.Capture
	if err := json.Unmarshal([]byte(payload), &capture); err != nil {
		return nil, err
	}
	saved.Capture = &capture

	return &saved, nil
}

// isUniqueViolation reports whether err is the unique-index violation raised
// for a duplicate source/content_hash pair.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
