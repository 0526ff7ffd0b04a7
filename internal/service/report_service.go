package service

import (
	"context"
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/daterange"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/report"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ReportService builds report summaries: it normalizes the requested window,
// fetches the raw records and hands them to the aggregator.
type ReportService struct {
	transactionRepo *repository.TransactionRepository
	alertRepo       *repository.AlertRepository
	clientRepo      *repository.ClientRepository
	loc             *time.Location
}

// NewReportService creates a new ReportService with the provided repository dependencies.
// loc is the caller locale that decides which calendar day an instant falls on.
func NewReportService(
	transactionRepo *repository.TransactionRepository,
	alertRepo *repository.AlertRepository,
	clientRepo *repository.ClientRepository,
	loc *time.Location,
) *ReportService {
	return &ReportService{
		transactionRepo: transactionRepo,
		alertRepo:       alertRepo,
		clientRepo:      clientRepo,
		loc:             locationOrUTC(loc),
	}
}

// ReportRequest describes one report. ClientID empty means every client.
// Zero dates take their defaults; Currency is the analyst's current selection
// and may be replaced when no transaction in the window uses it.
type ReportRequest struct {
	ClientID string
	Start    daterange.Date
	End      daterange.Date
	Currency string
}

// ClientReport builds the report of one client.
// Returns apperrors.ErrClientNotFound for an unknown client.
func (s *ReportService) ClientReport(ctx context.Context, clientID string, req ReportRequest) (model.ReportSummary, error) {
	if _, err := s.clientRepo.GetClient(ctx, clientID); err != nil {
		return model.ReportSummary{}, err
	}
	req.ClientID = clientID
	return s.BuildReport(ctx, req)
}

// GlobalReport builds the report across every client.
func (s *ReportService) GlobalReport(ctx context.Context, req ReportRequest) (model.ReportSummary, error) {
	req.ClientID = ""
	return s.BuildReport(ctx, req)
}

// BuildReport normalizes the window, loads transactions and alerts concurrently,
// resolves the display currency and aggregates.
//
// Returns apperrors.ErrInvalidRange when the window cannot be normalized.
func (s *ReportService) BuildReport(ctx context.Context, req ReportRequest) (model.ReportSummary, error) {
	today := daterange.Today(s.loc)

	r, err := daterange.Normalize(req.Start, req.End, today)
	if err != nil {
		return model.ReportSummary{}, err
	}
	from, to := r.Bounds(s.loc)

	var transactions []model.Transaction
	var alerts []model.Alert

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.GetTransactions(gctx, model.TransactionFilter{
			ClientID: req.ClientID,
			From:     &from,
			To:       &to,
		})
		return err
	})
	g.Go(func() error {
		var err error
		alerts, err = s.alertRepo.GetAlerts(gctx, model.AlertFilter{
			ClientID: req.ClientID,
			From:     &from,
			To:       &to,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return model.ReportSummary{}, err
	}

	discovered := report.Currencies(report.FilterTransactions(transactions, r, s.loc))

	return report.Aggregate(report.Input{
		Transactions: transactions,
		Alerts:       alerts,
		Range:        r,
		Currency:     report.ResolveCurrency(req.Currency, discovered),
		Today:        today,
		Location:     s.loc,
	})
}
