package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
)

// ClientRepository provides data access methods for the client table.
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new ClientRepository with the provided database connection.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, name, country, risk_level, kyc_status, created_at`

// GetClients retrieves every client ordered by name.
// Returns an empty slice if no clients exist.
func (r *ClientRepository) GetClients(ctx context.Context) ([]model.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+clientColumns+` FROM client ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query client table: %w", err)
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client table: %w", err)
	}

	return clients, nil
}

// GetClientIDs retrieves the IDs of every client.
func (r *ClientRepository) GetClientIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM client ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query client table: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan client id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetClient retrieves a single client by ID.
// Returns apperrors.ErrClientNotFound if no client matches.
func (r *ClientRepository) GetClient(ctx context.Context, id string) (model.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM client WHERE id = ?`, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, apperrors.ErrClientNotFound
	}
	return c, err
}

// InsertClient stores a new client.
func (r *ClientRepository) InsertClient(ctx context.Context, c model.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO client (id, name, country, risk_level, kyc_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Country, c.RiskLevel, c.KYCStatus, FormatTime(c.CreatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: client %s", apperrors.ErrDuplicateEntry, c.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (model.Client, error) {
	var c model.Client
	var createdAtStr string
	err := row.Scan(&c.ID, &c.Name, &c.Country, &c.RiskLevel, &c.KYCStatus, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return c, err
	}
	if err != nil {
		return c, fmt.Errorf("failed to scan client table results: %w", err)
	}
	c.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return c, err
	}
	return c, nil
}
