// Package lifecycle governs how a compliance alert moves from detection to
// resolution.
//
// An alert goes New -> InAnalysis -> Resolved, never skipping a state and
// never moving backwards. Transitions are pure: they take an Alert by value
// and return the proposed next value, leaving the argument untouched. The
// caller persists the result with a compare-and-swap on the previous status
// and re-reads it before treating it as canonical.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
)

// Next returns the only status reachable from s, and false for the terminal status.
func Next(s model.AlertStatus) (model.AlertStatus, bool) {
	switch s {
	case model.AlertNew:
		return model.AlertInAnalysis, true
	case model.AlertInAnalysis:
		return model.AlertResolved, true
	}
	return "", false
}

// CanTransition reports whether an alert in from may move to to.
func CanTransition(from, to model.AlertStatus) bool {
	next, ok := Next(from)
	return ok && next == to
}

// StartAnalysis moves a New alert into analysis.
func StartAnalysis(a model.Alert) (model.Alert, error) {
	if !CanTransition(a.Status, model.AlertInAnalysis) {
		return model.Alert{}, illegal(a, model.AlertInAnalysis)
	}

	next := a
	next.Status = model.AlertInAnalysis
	return next, nil
}

// Resolve closes an alert that is in analysis, stamping who resolved it,
// why, and when. resolvedBy and resolution must both be non-blank; an
// anonymous resolution is rejected rather than stored without an actor.
func Resolve(a model.Alert, resolvedBy, resolution string, now time.Time) (model.Alert, error) {
	if !CanTransition(a.Status, model.AlertResolved) {
		return model.Alert{}, illegal(a, model.AlertResolved)
	}

	resolvedBy = strings.TrimSpace(resolvedBy)
	resolution = strings.TrimSpace(resolution)
	if resolvedBy == "" {
		return model.Alert{}, fmt.Errorf("%w: resolvedBy is required", apperrors.ErrInvalidInput)
	}
	if resolution == "" {
		return model.Alert{}, fmt.Errorf("%w: resolution is required", apperrors.ErrInvalidInput)
	}

	next := a
	next.Status = model.AlertResolved
	next.ResolvedAt = &now
	next.ResolvedBy = &resolvedBy
	next.Resolution = &resolution
	return next, nil
}

func illegal(a model.Alert, to model.AlertStatus) error {
	return fmt.Errorf("%w: alert %s is %s, cannot move to %s", apperrors.ErrIllegalTransition, a.ID, a.Status, to)
}
