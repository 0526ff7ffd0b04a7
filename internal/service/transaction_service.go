package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/request"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/daterange"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/repository"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction-related business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	clientRepo      *repository.ClientRepository
	loc             *time.Location
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
// loc is the locale calendar dates in listing filters are interpreted in.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	clientRepo *repository.ClientRepository,
	loc *time.Location,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		clientRepo:      clientRepo,
		loc:             locationOrUTC(loc),
	}
}

// TransactionQuery selects transactions for a listing. Both dates zero means
// no date filter; otherwise the pair is normalized like a report range.
type TransactionQuery struct {
	ClientID string
	Start    daterange.Date
	End      daterange.Date
}

// GetTransactions retrieves the transactions matching q, newest first.
// Returns apperrors.ErrInvalidRange if the dates cannot be normalized and
// apperrors.ErrClientNotFound for an unknown client.
func (s *TransactionService) GetTransactions(ctx context.Context, q TransactionQuery) ([]model.Transaction, error) {
	filter := model.TransactionFilter{ClientID: q.ClientID}

	if q.ClientID != "" {
		if _, err := s.clientRepo.GetClient(ctx, q.ClientID); err != nil {
			return nil, err
		}
	}

	if !q.Start.IsZero() || !q.End.IsZero() {
		r, err := daterange.Normalize(q.Start, q.End, daterange.Today(s.loc))
		if err != nil {
			return nil, err
		}
		from, to := r.Bounds(s.loc)
		filter.From, filter.To = &from, &to
	}

	return s.transactionRepo.GetTransactions(ctx, filter)
}

// GetTransaction retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound if the transaction does not exist.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(ctx, transactionID)
}

// CreateTransaction records a new transaction for an existing client.
// A transfer must name another existing client as its counterparty.
// An absent timestamp means now.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (model.Transaction, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}

	timestamp := now()
	if req.Timestamp != "" {
		timestamp, err = time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("invalid timestamp: %w", err)
		}
		timestamp = timestamp.UTC()
	}

	transaction := model.Transaction{
		ID:             newID(),
		ClientID:       req.ClientID,
		Type:           model.TransactionType(req.Type),
		Amount:         amount,
		Currency:       req.Currency,
		CounterpartyID: req.CounterpartyID,
		Timestamp:      timestamp,
	}
	if err := transaction.Validate(); err != nil {
		return model.Transaction{}, err
	}

	if _, err := s.clientRepo.GetClient(ctx, req.ClientID); err != nil {
		return model.Transaction{}, err
	}
	if transaction.Type == model.TransactionTransfer {
		if transaction.CounterpartyID == transaction.ClientID {
			return model.Transaction{}, fmt.Errorf("%w: transfer to its own client", apperrors.ErrCounterpartyMismatch)
		}
		if _, err := s.clientRepo.GetClient(ctx, transaction.CounterpartyID); err != nil {
			return model.Transaction{}, err
		}
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}
