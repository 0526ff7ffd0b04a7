// Package report reduces transactions and alerts into the summary figures of
// a compliance report. Everything here is pure: no I/O, no shared state, and
// the same input always yields the same summary.
package report

import (
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/daterange"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
	"github.com/shopspring/decimal"
)

// Input is everything a report needs. Range must already be normalized;
// Today is the day it was validated against. Location is the caller's
// locale for day comparisons; nil means UTC.
type Input struct {
	Transactions []model.Transaction
	Alerts       []model.Alert
	Range        daterange.Range
	Currency     string
	Today        daterange.Date
	Location     *time.Location
}

// Aggregate builds the ReportSummary for in. It fails only when the range is
// invalid, in which case the caller skipped daterange.Normalize.
//
// Input slices are never reordered: the currency-filtered transactions keep
// the order they were passed in.
func Aggregate(in Input) (model.ReportSummary, error) {
	if err := daterange.Validate(in.Range, in.Today); err != nil {
		return model.ReportSummary{}, err
	}

	inRange := FilterTransactions(in.Transactions, in.Range, in.Location)
	subset := FilterByCurrency(inRange, in.Currency)
	byType := TotalsByType(subset)

	grand := decimal.Zero
	for _, t := range model.TransactionTypes {
		grand = grand.Add(byType[t].Total)
	}

	return model.ReportSummary{
		Range:            in.Range,
		Currency:         in.Currency,
		Currencies:       Currencies(inRange),
		TotalsByType:     byType,
		TotalsByCurrency: TotalsByCurrency(inRange),
		GrandTotal:       grand,
		NetFlow:          NetFlow(byType),
		Transactions:     subset,
		AlertsBySeverity: AlertsBySeverity(FilterAlerts(in.Alerts, in.Range, in.Location)),
	}, nil
}

// FilterTransactions keeps the transactions whose timestamp falls on a day in r.
func FilterTransactions(txs []model.Transaction, r daterange.Range, loc *time.Location) []model.Transaction {
	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if r.Contains(tx.Timestamp, loc) {
			out = append(out, tx)
		}
	}
	return out
}

// FilterAlerts keeps the alerts created on a day in r.
func FilterAlerts(alerts []model.Alert, r daterange.Range, loc *time.Location) []model.Alert {
	out := make([]model.Alert, 0, len(alerts))
	for _, a := range alerts {
		if r.Contains(a.CreatedAt, loc) {
			out = append(out, a)
		}
	}
	return out
}

// FilterByCurrency keeps the transactions denominated in currency.
func FilterByCurrency(txs []model.Transaction, currency string) []model.Transaction {
	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Currency == currency {
			out = append(out, tx)
		}
	}
	return out
}

// Currencies returns the distinct currencies of txs in first-seen order.
func Currencies(txs []model.Transaction) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, tx := range txs {
		if !seen[tx.Currency] {
			seen[tx.Currency] = true
			out = append(out, tx.Currency)
		}
	}
	return out
}

// ResolveCurrency applies the selection policy for a display currency: keep
// selected if it was discovered, otherwise fall back to the first discovered
// currency. With nothing discovered, selected is returned unchanged.
//
// The selection itself is session state owned by the caller.
func ResolveCurrency(selected string, discovered []string) string {
	for _, c := range discovered {
		if c == selected {
			return selected
		}
	}
	if len(discovered) > 0 {
		return discovered[0]
	}
	return selected
}

// TotalsByCurrency sums amounts per currency.
func TotalsByCurrency(txs []model.Transaction) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		out[tx.Currency] = out[tx.Currency].Add(tx.Amount)
	}
	return out
}

// TotalsByType counts, sums and averages txs per transaction type.
// All known types are present in the result, zero-valued when absent from txs.
func TotalsByType(txs []model.Transaction) map[model.TransactionType]model.TypeTotals {
	out := make(map[model.TransactionType]model.TypeTotals, len(model.TransactionTypes))
	for _, t := range model.TransactionTypes {
		out[t] = model.TypeTotals{Total: decimal.Zero, Average: decimal.Zero}
	}

	for _, tx := range txs {
		tt, ok := out[tx.Type]
		if !ok {
			continue
		}
		tt.Count++
		tt.Total = tt.Total.Add(tx.Amount)
		out[tx.Type] = tt
	}

	for t, tt := range out {
		if tt.Count > 0 {
			tt.Average = tt.Total.Div(decimal.NewFromInt(int64(tt.Count)))
			out[t] = tt
		}
	}
	return out
}

// NetFlow is what the account gained over the window: deposits minus
// withdrawals and outgoing transfers.
func NetFlow(byType map[model.TransactionType]model.TypeTotals) decimal.Decimal {
	return byType[model.TransactionDeposit].Total.
		Sub(byType[model.TransactionWithdrawal].Total).
		Sub(byType[model.TransactionTransfer].Total)
}

// AlertsBySeverity counts alerts per severity, most urgent first, skipping empty buckets.
func AlertsBySeverity(alerts []model.Alert) []model.SeverityCount {
	counts := make(map[model.Severity]int, len(model.Severities))
	for _, a := range alerts {
		counts[a.Severity]++
	}

	out := make([]model.SeverityCount, 0, len(model.Severities))
	for _, s := range model.Severities {
		if n := counts[s]; n > 0 {
			out = append(out, model.SeverityCount{Severity: s, Count: n})
		}
	}
	return out
}
