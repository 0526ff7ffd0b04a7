package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/request"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/lifecycle"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/logging"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/repository"
	"go.uber.org/zap"
)

// AlertService handles alert triage: listing, creation and lifecycle transitions.
type AlertService struct {
	alertRepo       *repository.AlertRepository
	transactionRepo *repository.TransactionRepository
	logger          *zap.Logger
}

// NewAlertService creates a new AlertService with the provided repository dependencies.
func NewAlertService(
	alertRepo *repository.AlertRepository,
	transactionRepo *repository.TransactionRepository,
	logger *zap.Logger,
) *AlertService {
	return &AlertService{
		alertRepo:       alertRepo,
		transactionRepo: transactionRepo,
		logger:          logging.OrNop(logger),
	}
}

// GetAlerts retrieves the alerts matching filter, newest first.
func (s *AlertService) GetAlerts(ctx context.Context, filter model.AlertFilter) ([]model.Alert, error) {
	return s.alertRepo.GetAlerts(ctx, filter)
}

// GetAlert retrieves a single alert by its ID.
// Returns apperrors.ErrAlertNotFound if the alert does not exist.
func (s *AlertService) GetAlert(ctx context.Context, alertID string) (model.Alert, error) {
	return s.alertRepo.GetAlert(ctx, alertID)
}

// CreateAlert raises a new alert against an existing transaction of the client.
// Returns apperrors.ErrTransactionNotFound if the transaction does not exist and
// apperrors.ErrInvalidInput if it belongs to another client.
func (s *AlertService) CreateAlert(ctx context.Context, req request.CreateAlertRequest) (model.Alert, error) {
	tx, err := s.transactionRepo.GetTransaction(ctx, req.TransactionID)
	if err != nil {
		return model.Alert{}, err
	}
	if tx.ClientID != req.ClientID {
		return model.Alert{}, fmt.Errorf("%w: transaction %s does not belong to client %s", apperrors.ErrInvalidInput, tx.ID, req.ClientID)
	}

	alert := model.Alert{
		ID:            newID(),
		ClientID:      req.ClientID,
		TransactionID: req.TransactionID,
		Rule:          req.Rule,
		Severity:      model.Severity(req.Severity),
		Status:        model.AlertNew,
		CreatedAt:     now(),
	}

	if err := s.alertRepo.InsertAlert(ctx, alert); err != nil {
		return model.Alert{}, fmt.Errorf("failed to create alert: %w", err)
	}

	s.logger.Info("alert raised",
		zap.String("alert_id", alert.ID),
		zap.String("client_id", alert.ClientID),
		zap.String("rule", alert.Rule),
		zap.String("severity", string(alert.Severity)),
	)

	return alert, nil
}

// StartAnalysis moves a New alert into analysis.
//
// Returns apperrors.ErrIllegalTransition if the alert is not New and
// apperrors.ErrStaleAlert if another caller moved it first.
func (s *AlertService) StartAnalysis(ctx context.Context, alertID string) (model.Alert, error) {
	return s.transition(ctx, alertID, model.AlertInAnalysis, lifecycle.StartAnalysis)
}

// Resolve closes an alert that is in analysis, recording who resolved it and why.
//
// Returns apperrors.ErrIllegalTransition if the alert is not in analysis,
// apperrors.ErrInvalidInput if resolvedBy or resolution is blank, and
// apperrors.ErrStaleAlert if another caller moved it first.
func (s *AlertService) Resolve(ctx context.Context, alertID, resolvedBy, resolution string) (model.Alert, error) {
	return s.transition(ctx, alertID, model.AlertResolved, func(a model.Alert) (model.Alert, error) {
		return lifecycle.Resolve(a, resolvedBy, resolution, now())
	})
}

// transition loads the alert, applies step, persists the proposal with a
// compare-and-swap on the status it was loaded with, and re-reads the stored
// record. Conflicts are reported, never retried.
func (s *AlertService) transition(
	ctx context.Context,
	alertID string,
	to model.AlertStatus,
	step func(model.Alert) (model.Alert, error),
) (model.Alert, error) {
	current, err := s.alertRepo.GetAlert(ctx, alertID)
	if err != nil {
		return model.Alert{}, err
	}

	next, err := step(current)
	if err != nil {
		AlertTransitions.WithLabelValues(string(to), "rejected").Inc()
		return model.Alert{}, err
	}

	if err := s.alertRepo.CompareAndSwapStatus(ctx, next, current.Status); err != nil {
		if errors.Is(err, apperrors.ErrStaleAlert) {
			AlertTransitions.WithLabelValues(string(to), "conflict").Inc()
			s.logger.Warn("alert transition lost a concurrent update",
				zap.String("alert_id", alertID),
				zap.String("from", string(current.Status)),
				zap.String("to", string(to)),
			)
		}
		return model.Alert{}, err
	}

	stored, err := s.alertRepo.GetAlert(ctx, alertID)
	if err != nil {
		return model.Alert{}, fmt.Errorf("failed to reload alert after transition: %w", err)
	}

	AlertTransitions.WithLabelValues(string(to), "applied").Inc()
	s.logger.Info("alert transitioned",
		zap.String("alert_id", alertID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(stored.Status)),
	)

	return stored, nil
}
