package model

import (
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/daterange"
	"github.com/shopspring/decimal"
)

// TypeTotals aggregates the transactions of one type.
// Average is Total/Count, or zero when Count is zero.
type TypeTotals struct {
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

// SeverityCount is one non-empty severity bucket.
type SeverityCount struct {
	Severity Severity `json:"severity"`
	Count    int      `json:"count"`
}

// ReportSummary is the derived view an analyst sees for a date range and currency.
// It is recomputed on demand and never persisted as canonical data.
//
// TotalsByType, GrandTotal and NetFlow cover only transactions in Currency, while
// TotalsByCurrency covers every currency in the range. AlertsBySeverity is
// ordered Critical, High, Medium, Low and omits empty buckets.
type ReportSummary struct {
	Range            daterange.Range                `json:"range"`
	Currency         string                         `json:"currency"`
	Currencies       []string                       `json:"currencies"`
	TotalsByType     map[TransactionType]TypeTotals `json:"totalsByType"`
	TotalsByCurrency map[string]decimal.Decimal     `json:"totalsByCurrency"`
	GrandTotal       decimal.Decimal                `json:"grandTotal"`
	NetFlow          decimal.Decimal                `json:"netFlow"`
	Transactions     []Transaction                  `json:"transactions"`
	AlertsBySeverity []SeverityCount                `json:"alertsBySeverity"`
}

// ReportSnapshot is a pre-calculated summary of a client's default window,
// refreshed by the scheduler for fast dashboard loads.
type ReportSnapshot struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"clientId"`
	Range        daterange.Range `json:"range"`
	Currency     string          `json:"currency"`
	Summary      ReportSummary   `json:"summary"`
	CalculatedAt time.Time       `json:"calculatedAt"`
}
