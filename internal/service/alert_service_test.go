package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/request"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/testutil"
)

// TestAlertService_Lifecycle tests StartAnalysis and Resolve end to end.
//
// WHY: The triage flow is the core of the alert queue. Each step must load the
// stored alert, apply the transition, persist it and hand back the stored
// record with the audit fields an auditor will later read.
func TestAlertService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("new alert is analysed then resolved", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAlertService(t, db)
		client := testutil.NewClient().Build(t, db)
		tx := testutil.NewTransaction(client.ID).Build(t, db)
		alert := testutil.NewAlert(client.ID, tx.ID).Build(t, db)

		// Execute
		analysed, err := svc.StartAnalysis(ctx, alert.ID)
		if err != nil {
			t.Fatalf("StartAnalysis() returned unexpected error: %v", err)
		}
		resolved, err := svc.Resolve(ctx, alert.ID, "Alice", "cleared")
		if err != nil {
			t.Fatalf("Resolve() returned unexpected error: %v", err)
		}

		// Assert
		if analysed.Status != model.AlertInAnalysis {
			t.Errorf("Expected in_analysis, got %s", analysed.Status)
		}
		if resolved.Status != model.AlertResolved {
			t.Errorf("Expected resolved, got %s", resolved.Status)
		}
		if resolved.ResolvedBy == nil || *resolved.ResolvedBy != "Alice" {
			t.Errorf("Expected resolvedBy Alice, got %v", resolved.ResolvedBy)
		}
		if resolved.Resolution == nil || *resolved.Resolution != "cleared" {
			t.Errorf("Expected resolution cleared, got %v", resolved.Resolution)
		}
		if resolved.ResolvedAt == nil || resolved.ResolvedAt.Before(alert.CreatedAt) {
			t.Errorf("Expected resolvedAt after creation, got %v", resolved.ResolvedAt)
		}
		if !resolved.CreatedAt.Equal(alert.CreatedAt) {
			t.Errorf("Expected createdAt unchanged, got %s", resolved.CreatedAt)
		}
	})

	t.Run("start analysis twice is illegal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAlertService(t, db)
		client := testutil.NewClient().Build(t, db)
		tx := testutil.NewTransaction(client.ID).Build(t, db)
		alert := testutil.NewAlert(client.ID, tx.ID).InAnalysis().Build(t, db)

		_, err := svc.StartAnalysis(ctx, alert.ID)
		if !errors.Is(err, apperrors.ErrIllegalTransition) {
			t.Errorf("Expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("resolve checks status before input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAlertService(t, db)
		client := testutil.NewClient().Build(t, db)
		tx := testutil.NewTransaction(client.ID).Build(t, db)
		alert := testutil.NewAlert(client.ID, tx.ID).Build(t, db)

		_, err := svc.Resolve(ctx, alert.ID, "", "")
		if !errors.Is(err, apperrors.ErrIllegalTransition) {
			t.Errorf("Expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("blank resolution leaves the alert untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAlertService(t, db)
		client := testutil.NewClient().Build(t, db)
		tx := testutil.NewTransaction(client.ID).Build(t, db)
		alert := testutil.NewAlert(client.ID, tx.ID).InAnalysis().Build(t, db)

		_, err := svc.Resolve(ctx, alert.ID, "Alice", "   ")
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("Expected ErrInvalidInput, got %v", err)
		}

		stored, err := svc.GetAlert(ctx, alert.ID)
		if err != nil {
			t.Fatalf("GetAlert() returned unexpected error: %v", err)
		}
		if stored.Status != model.AlertInAnalysis || stored.ResolvedAt != nil {
			t.Errorf("Expected alert unchanged, got %+v", stored)
		}
	})

	t.Run("unknown alert", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAlertService(t, db)

		_, err := svc.StartAnalysis(ctx, testutil.MakeID())
		if !errors.Is(err, apperrors.ErrAlertNotFound) {
			t.Errorf("Expected ErrAlertNotFound, got %v", err)
		}
	})
}

// TestAlertService_ConcurrentStartAnalysis tests two analysts picking up the same alert.
//
// WHY: Two analysts clicking "start analysis" at once must not both believe
// they own the alert. Exactly one call may succeed; the other must see a
// conflict, either as a stale write or because the alert had already moved.
func TestAlertService_ConcurrentStartAnalysis(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAlertService(t, db)
	client := testutil.NewClient().Build(t, db)
	tx := testutil.NewTransaction(client.ID).Build(t, db)
	alert := testutil.NewAlert(client.ID, tx.ID).Build(t, db)

	const callers = 4
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.StartAnalysis(ctx, alert.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, apperrors.ErrStaleAlert), errors.Is(err, apperrors.ErrIllegalTransition):
		default:
			t.Errorf("Unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("Expected exactly 1 successful transition, got %d", wins)
	}
}

// TestAlertService_CreateAlert tests raising alerts against transactions.
//
// WHY: An alert pointing at another client's transaction would show up in the
// wrong client's report. Creation must reject that and always start in New.
func TestAlertService_CreateAlert(t *testing.T) {
	ctx := context.Background()

	t.Run("creates new alert", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAlertService(t, db)
		client := testutil.NewClient().Build(t, db)
		tx := testutil.NewTransaction(client.ID).Build(t, db)

		alert, err := svc.CreateAlert(ctx, request.CreateAlertRequest{
			ClientID:      client.ID,
			TransactionID: tx.ID,
			Rule:          "Structuring",
			Severity:      "critical",
		})
		if err != nil {
			t.Fatalf("CreateAlert() returned unexpected error: %v", err)
		}

		if alert.Status != model.AlertNew {
			t.Errorf("Expected status new, got %s", alert.Status)
		}
		if alert.Severity != model.SeverityCritical {
			t.Errorf("Expected severity critical, got %s", alert.Severity)
		}

		stored, err := svc.GetAlert(ctx, alert.ID)
		if err != nil {
			t.Fatalf("GetAlert() returned unexpected error: %v", err)
		}
		if stored.Rule != "Structuring" {
			t.Errorf("Expected rule Structuring, got %s", stored.Rule)
		}
	})

	t.Run("rejects transaction of another client", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAlertService(t, db)
		owner := testutil.NewClient().Build(t, db)
		other := testutil.NewClient().Build(t, db)
		tx := testutil.NewTransaction(owner.ID).Build(t, db)

		_, err := svc.CreateAlert(ctx, request.CreateAlertRequest{
			ClientID: other.ID, TransactionID: tx.ID, Rule: "Structuring", Severity: "low",
		})
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAlertService(t, db)
		client := testutil.NewClient().Build(t, db)

		_, err := svc.CreateAlert(ctx, request.CreateAlertRequest{
			ClientID: client.ID, TransactionID: testutil.MakeID(), Rule: "Structuring", Severity: "low",
		})
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

// TestAlertService_GetAlerts tests filtered listings.
//
// WHY: The triage queue is usually filtered to new alerts of one severity.
func TestAlertService_GetAlerts(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAlertService(t, db)
	client := testutil.NewClient().Build(t, db)
	tx := testutil.NewTransaction(client.ID).Build(t, db)

	testutil.NewAlert(client.ID, tx.ID).WithSeverity(model.SeverityCritical).Build(t, db)
	testutil.NewAlert(client.ID, tx.ID).WithSeverity(model.SeverityCritical).Resolved("Bob", "ok").Build(t, db)

	alerts, err := svc.GetAlerts(ctx, model.AlertFilter{Status: model.AlertNew, Severity: model.SeverityCritical})
	if err != nil {
		t.Fatalf("GetAlerts() returned unexpected error: %v", err)
	}
	if len(alerts) != 1 {
		t.Errorf("Expected 1 alert, got %d", len(alerts))
	}
}
