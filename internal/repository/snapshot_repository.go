package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/daterange"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
)

// SnapshotRepository stores the latest pre-calculated report per client.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshot replaces the stored snapshot of s.ClientID with s.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, s model.ReportSnapshot) error {
	summary, err := json.Marshal(s.Summary)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot summary: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO report_snapshot (id, client_id, start_date, end_date, currency, summary, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET
			id = excluded.id,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			currency = excluded.currency,
			summary = excluded.summary,
			calculated_at = excluded.calculated_at
	`, s.ID, s.ClientID, s.Range.Start.String(), s.Range.End.String(), s.Currency, string(summary), FormatTime(s.CalculatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert report snapshot: %w", err)
	}
	return nil
}

// GetSnapshot retrieves the latest snapshot for a client.
// Returns apperrors.ErrSnapshotNotFound if none has been calculated yet.
func (r *SnapshotRepository) GetSnapshot(ctx context.Context, clientID string) (model.ReportSnapshot, error) {
	var s model.ReportSnapshot
	var startStr, endStr, summary, calculatedAtStr string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, start_date, end_date, currency, summary, calculated_at
		FROM report_snapshot
		WHERE client_id = ?
	`, clientID).Scan(&s.ID, &s.ClientID, &startStr, &endStr, &s.Currency, &summary, &calculatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ReportSnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return s, fmt.Errorf("failed to scan report_snapshot table results: %w", err)
	}

	if s.Range.Start, err = daterange.ParseDate(startStr); err != nil {
		return s, err
	}
	if s.Range.End, err = daterange.ParseDate(endStr); err != nil {
		return s, err
	}
	if s.CalculatedAt, err = ParseTime(calculatedAtStr); err != nil {
		return s, err
	}
	if err := json.Unmarshal([]byte(summary), &s.Summary); err != nil {
		return s, fmt.Errorf("failed to decode snapshot summary: %w", err)
	}

	return s, nil
}
