package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// It handles retrieving and querying client transactions within specified time windows.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, client_id, type, amount, currency, counterparty_id, timestamp`

// GetTransactions retrieves the transactions matching filter, newest first.
//
// Parameters:
//   - filter.ClientID: restricts to one client when set
//   - filter.From, filter.To: inclusive instant bounds when set
//
// Returns an empty slice if nothing matches.
func (r *TransactionRepository) GetTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	var where whereClause
	if filter.ClientID != "" {
		where.add("client_id = ?", filter.ClientID)
	}
	if filter.From != nil {
		where.add("timestamp >= ?", FormatTime(*filter.From))
	}
	if filter.To != nil {
		where.add("timestamp <= ?", FormatTime(*filter.To))
	}

	query := `SELECT ` + transactionColumns + ` FROM "transaction"` + where.String() + ` ORDER BY timestamp DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound if no transaction matches.
func (r *TransactionRepository) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM "transaction" WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	return t, err
}

// InsertTransaction stores a new transaction. The amount is stored as exact decimal text.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t model.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO "transaction" (id, client_id, type, amount, currency, counterparty_id, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.ClientID, t.Type, t.Amount.String(), t.Currency, nullString(t.CounterpartyID), FormatTime(t.Timestamp))
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicateEntry, t.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var counterparty sql.NullString
	var timestampStr string

	err := row.Scan(&t.ID, &t.ClientID, &t.Type, &t.Amount, &t.Currency, &counterparty, &timestampStr)
	if errors.Is(err, sql.ErrNoRows) {
		return t, err
	}
	if err != nil {
		return t, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	// CounterpartyID is nullable
	if counterparty.Valid {
		t.CounterpartyID = counterparty.String
	}

	t.Timestamp, err = ParseTime(timestampStr)
	if err != nil {
		return t, err
	}
	return t, nil
}
