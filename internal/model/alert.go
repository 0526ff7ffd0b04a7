package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
)

// Severity ranks how urgently an alert needs an analyst.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists every severity in display order, most urgent first.
var Severities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ParseSeverity accepts any casing of a known severity name.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if !sev.Valid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return sev, nil
}

// AlertStatus is the lifecycle position of an alert.
type AlertStatus string

const (
	AlertNew        AlertStatus = "new"
	AlertInAnalysis AlertStatus = "in_analysis"
	AlertResolved   AlertStatus = "resolved"
)

// Valid reports whether s is one of the known statuses.
func (s AlertStatus) Valid() bool {
	switch s {
	case AlertNew, AlertInAnalysis, AlertResolved:
		return true
	}
	return false
}

// ParseAlertStatus accepts any casing of a known status name.
func ParseAlertStatus(s string) (AlertStatus, error) {
	st := AlertStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("invalid alert status: %s", s)
	}
	return st, nil
}

// Alert is a compliance finding raised by a detection rule against one transaction.
// ResolvedAt, ResolvedBy and Resolution are nil until the alert is resolved,
// and are always set together.
type Alert struct {
	ID            string      `json:"id"`
	ClientID      string      `json:"clientId"`
	TransactionID string      `json:"transactionId"`
	Rule          string      `json:"rule"`
	Severity      Severity    `json:"severity"`
	Status        AlertStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	ResolvedAt    *time.Time  `json:"resolvedAt"`
	ResolvedBy    *string     `json:"resolvedBy"`
	Resolution    *string     `json:"resolution"`
}

// Validate checks that the resolution audit fields agree with the status.
func (a Alert) Validate() error {
	if !a.Severity.Valid() {
		return fmt.Errorf("invalid severity: %s", a.Severity)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("invalid alert status: %s", a.Status)
	}
	set := 0
	for _, present := range []bool{a.ResolvedAt != nil, a.ResolvedBy != nil, a.Resolution != nil} {
		if present {
			set++
		}
	}
	resolved := a.Status == AlertResolved
	if (resolved && set != 3) || (!resolved && set != 0) {
		return apperrors.ErrInconsistentResolution
	}
	return nil
}

// AlertFilter narrows alert listings. Zero fields are ignored.
type AlertFilter struct {
	ClientID string
	Status   AlertStatus
	Severity Severity
	From     *time.Time
	To       *time.Time
}
