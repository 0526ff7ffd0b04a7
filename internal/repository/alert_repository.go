package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/secure"
)

// AlertRepository provides data access methods for the alert table.
// Resolution notes are sealed before they are written and opened when read,
// so the free text an analyst writes never sits in the database in clear.
type AlertRepository struct {
	db     *sql.DB
	sealer *secure.Sealer
}

// NewAlertRepository creates a new AlertRepository with the provided database connection and sealer.
func NewAlertRepository(db *sql.DB, sealer *secure.Sealer) *AlertRepository {
	return &AlertRepository{db: db, sealer: sealer}
}

const alertColumns = `id, client_id, transaction_id, rule, severity, status, created_at, resolved_at, resolved_by, resolution`

// GetAlerts retrieves the alerts matching filter, newest first.
// Returns an empty slice if nothing matches.
func (r *AlertRepository) GetAlerts(ctx context.Context, filter model.AlertFilter) ([]model.Alert, error) {
	var where whereClause
	if filter.ClientID != "" {
		where.add("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		where.add("status = ?", filter.Status)
	}
	if filter.Severity != "" {
		where.add("severity = ?", filter.Severity)
	}
	if filter.From != nil {
		where.add("created_at >= ?", FormatTime(*filter.From))
	}
	if filter.To != nil {
		where.add("created_at <= ?", FormatTime(*filter.To))
	}

	query := `SELECT ` + alertColumns + ` FROM alert` + where.String() + ` ORDER BY created_at DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alert table: %w", err)
	}
	defer rows.Close()

	alerts := []model.Alert{}
	for rows.Next() {
		a, err := r.scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alert table: %w", err)
	}

	return alerts, nil
}

// GetAlert retrieves a single alert by its ID.
// Returns apperrors.ErrAlertNotFound if no alert matches.
func (r *AlertRepository) GetAlert(ctx context.Context, id string) (model.Alert, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+alertColumns+` FROM alert WHERE id = ?`, id)
	a, err := r.scanAlert(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Alert{}, apperrors.ErrAlertNotFound
	}
	return a, err
}

// InsertAlert stores a new alert.
func (r *AlertRepository) InsertAlert(ctx context.Context, a model.Alert) error {
	resolvedAt, resolvedBy, resolution, err := r.resolutionArgs(a)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO alert (id, client_id, transaction_id, rule, severity, status, created_at, resolved_at, resolved_by, resolution)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.ClientID, a.TransactionID, a.Rule, a.Severity, a.Status, FormatTime(a.CreatedAt), resolvedAt, resolvedBy, resolution)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: alert %s", apperrors.ErrDuplicateEntry, a.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// CompareAndSwapStatus writes the status and resolution fields of next, but only
// if the stored alert still has status expected. Exactly one of several
// concurrent writers starting from the same status wins.
//
// Returns apperrors.ErrAlertNotFound if the alert does not exist and
// apperrors.ErrStaleAlert if its status has moved on since it was read.
func (r *AlertRepository) CompareAndSwapStatus(ctx context.Context, next model.Alert, expected model.AlertStatus) error {
	resolvedAt, resolvedBy, resolution, err := r.resolutionArgs(next)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE alert
		SET status = ?, resolved_at = ?, resolved_by = ?, resolution = ?
		WHERE id = ? AND status = ?
	`, next.Status, resolvedAt, resolvedBy, resolution, next.ID, expected)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 1 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM alert WHERE id = ?`, next.ID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrAlertNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check alert: %w", err)
	}
	return fmt.Errorf("%w: alert %s is no longer %s", apperrors.ErrStaleAlert, next.ID, expected)
}

func (r *AlertRepository) resolutionArgs(a model.Alert) (resolvedAt, resolvedBy, resolution sql.NullString, err error) {
	if a.ResolvedAt != nil {
		resolvedAt = nullString(FormatTime(*a.ResolvedAt))
	}
	if a.ResolvedBy != nil {
		resolvedBy = nullString(*a.ResolvedBy)
	}
	if a.Resolution != nil {
		sealed, err := r.sealer.Seal(*a.Resolution)
		if err != nil {
			return resolvedAt, resolvedBy, resolution, err
		}
		resolution = nullString(sealed)
	}
	return resolvedAt, resolvedBy, resolution, nil
}

func (r *AlertRepository) scanAlert(row rowScanner) (model.Alert, error) {
	var a model.Alert
	var createdAtStr string
	var resolvedAtStr, resolvedBy, resolution sql.NullString

	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.TransactionID,
		&a.Rule,
		&a.Severity,
		&a.Status,
		&createdAtStr,
		&resolvedAtStr,
		&resolvedBy,
		&resolution,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return a, err
	}
	if err != nil {
		return a, fmt.Errorf("failed to scan alert table results: %w", err)
	}

	a.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return a, err
	}

	// Resolution fields are nullable
	if resolvedAtStr.Valid {
		at, err := ParseTime(resolvedAtStr.String)
		if err != nil {
			return a, err
		}
		a.ResolvedAt = &at
	}
	if resolvedBy.Valid {
		by := resolvedBy.String
		a.ResolvedBy = &by
	}
	if resolution.Valid {
		text, err := r.sealer.Open(resolution.String)
		if err != nil {
			return a, fmt.Errorf("failed to open resolution of alert %s: %w", a.ID, err)
		}
		a.Resolution = &text
	}

	return a, nil
}
