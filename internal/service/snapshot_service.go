package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/logging"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/repository"
	"go.uber.org/zap"
)

// SnapshotService pre-calculates the default-window report of every client so
// the dashboard landing page does not aggregate on each load.
type SnapshotService struct {
	clientRepo    *repository.ClientRepository
	snapshotRepo  *repository.SnapshotRepository
	reportService *ReportService
	logger        *zap.Logger
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	clientRepo *repository.ClientRepository,
	snapshotRepo *repository.SnapshotRepository,
	reportService *ReportService,
	logger *zap.Logger,
) *SnapshotService {
	return &SnapshotService{
		clientRepo:    clientRepo,
		snapshotRepo:  snapshotRepo,
		reportService: reportService,
		logger:        logging.OrNop(logger),
	}
}

// RefreshAll recalculates the snapshot of every client. A failing client does
// not stop the others; all failures are returned joined.
func (s *SnapshotService) RefreshAll(ctx context.Context) error {
	clientIDs, err := s.clientRepo.GetClientIDs(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range clientIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Refresh(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}

	s.logger.Info("report snapshots refreshed",
		zap.Int("clients", len(clientIDs)),
		zap.Int("failed", len(errs)),
	)

	return errors.Join(errs...)
}

// Refresh recalculates and stores the snapshot of one client.
func (s *SnapshotService) Refresh(ctx context.Context, clientID string) (model.ReportSnapshot, error) {
	summary, err := s.reportService.ClientReport(ctx, clientID, ReportRequest{})
	if err != nil {
		SnapshotRefreshes.WithLabelValues("failed").Inc()
		s.logger.Error("report snapshot failed", zap.String("client_id", clientID), zap.Error(err))
		return model.ReportSnapshot{}, fmt.Errorf("snapshot of client %s: %w", clientID, err)
	}

	snapshot := model.ReportSnapshot{
		ID:           newID(),
		ClientID:     clientID,
		Range:        summary.Range,
		Currency:     summary.Currency,
		Summary:      summary,
		CalculatedAt: now(),
	}

	if err := s.snapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		SnapshotRefreshes.WithLabelValues("failed").Inc()
		return model.ReportSnapshot{}, fmt.Errorf("snapshot of client %s: %w", clientID, err)
	}

	SnapshotRefreshes.WithLabelValues("stored").Inc()
	return snapshot, nil
}

// GetSnapshot returns the latest stored snapshot of a client.
// Returns apperrors.ErrClientNotFound for an unknown client and
// apperrors.ErrSnapshotNotFound if none has been calculated yet.
func (s *SnapshotService) GetSnapshot(ctx context.Context, clientID string) (model.ReportSnapshot, error) {
	if _, err := s.clientRepo.GetClient(ctx, clientID); err != nil {
		return model.ReportSnapshot{}, err
	}
	return s.snapshotRepo.GetSnapshot(ctx, clientID)
}
