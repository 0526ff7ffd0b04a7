package testutil

import (
	"database/sql"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/repository"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/secure"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/service"
	"github.com/google/uuid"
)

var (
	sealerOnce sync.Once
	sealer     *secure.Sealer
	sealerErr  error
)

// TestSealer returns a sealer shared by every repository a test builds, so
// alerts written by the builders can be read back by the services.
func TestSealer(t *testing.T) *secure.Sealer {
	t.Helper()

	sealerOnce.Do(func() {
		key, err := secure.GenerateKey()
		if err != nil {
			sealerErr = err
			return
		}
		sealer, sealerErr = secure.NewSealer(key)
	})
	if sealerErr != nil {
		t.Fatalf("Failed to create test sealer: %v", sealerErr)
	}
	return sealer
}

func NewAlertRepository(t *testing.T, db *sql.DB) *repository.AlertRepository {
	t.Helper()
	return repository.NewAlertRepository(db, TestSealer(t))
}

func NewTestClientService(t *testing.T, db *sql.DB) *service.ClientService {
	t.Helper()

	return service.NewClientService(
		repository.NewClientRepository(db),
	)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewClientRepository(db),
		time.UTC,
	)
}

func NewTestAlertService(t *testing.T, db *sql.DB) *service.AlertService {
	t.Helper()

	return service.NewAlertService(
		NewAlertRepository(t, db),
		repository.NewTransactionRepository(db),
		nil,
	)
}

// NewTestReportService creates a ReportService that reads calendar days in loc.
func NewTestReportService(t *testing.T, db *sql.DB, loc *time.Location) *service.ReportService {
	t.Helper()

	return service.NewReportService(
		repository.NewTransactionRepository(db),
		NewAlertRepository(t, db),
		repository.NewClientRepository(db),
		loc,
	)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	clientRepo := repository.NewClientRepository(db)

	return service.NewSnapshotService(
		clientRepo,
		repository.NewSnapshotRepository(db),
		NewTestReportService(t, db, time.UTC),
		nil,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeClientName generates a unique client name for testing.
//
// Example usage:
//
//	name := testutil.MakeClientName("Acme Ltda")
//	// Returns: "Acme Ltda ABC123"
func MakeClientName(base string) string {
	if base == "" {
		base = "Client"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// Common test constants

var (
	// CommonCountries contains common ISO 3166 alpha-2 client countries
	CommonCountries = []string{"BR", "US", "DE", "FR", "GB", "CH", "PT"}
)

// RandomCountry returns a random country from CommonCountries.
func RandomCountry() string {
	//nolint:gosec // G404: Using math/rand for test data generation is acceptable
	return CommonCountries[rand.Intn(len(CommonCountries))]
}

// Date returns midnight UTC of the given day, for readable fixtures.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
