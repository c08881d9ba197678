package member

import (
	"time"

	"pulsefit/internal/shared/dates"
)

// EffectiveStatus is the membership state computed live from dates, as
// opposed to the persisted label.
type EffectiveStatus string

const (
	EffectiveActive      EffectiveStatus = "Active"
	EffectiveExpired     EffectiveStatus = "Expired"
	EffectiveGracePeriod EffectiveStatus = "GracePeriod"
)

// EvaluationConfig holds the two independent windows around the expiry
// instant: the grace window after it and the expiring-soon window before it.
type EvaluationConfig struct {
	GraceDays        int
	ExpiringSoonDays int
}

// DefaultEvaluationConfig mirrors the configured production defaults.
var DefaultEvaluationConfig = EvaluationConfig{
	GraceDays:        3,
	ExpiringSoonDays: 7,
}

// MembershipStatus is the evaluator output consumed by the access gate, the
// sweep and the dashboards.
type MembershipStatus struct {
	IsValid         bool            `json:"is_valid"`
	Status          EffectiveStatus `json:"status"`
	DaysRemaining   int             `json:"days_remaining"`
	IsInGracePeriod bool            `json:"is_in_grace_period"`
	GraceDaysLeft   int             `json:"grace_days_left"`
	ExpiringSoon    bool            `json:"expiring_soon"`
}

// EvaluateMembership computes the effective membership state from the
// subscription end date alone. The persisted status label is deliberately not
// an input: it can lag reality between sweep runs, and every consumer that
// needs correctness recomputes from the end date.
func EvaluateMembership(endDate, now time.Time, cfg EvaluationConfig) MembershipStatus {
	if !endDate.Before(now) {
		daysRemaining := dates.DaysBetween(now, endDate)
		if daysRemaining < 1 {
			// A still-valid membership never reports zero days left.
			daysRemaining = 1
		}
		return MembershipStatus{
			IsValid:       true,
			Status:        EffectiveActive,
			DaysRemaining: daysRemaining,
			ExpiringSoon:  daysRemaining <= cfg.ExpiringSoonDays,
		}
	}

	daysPast := dates.DaysBetween(endDate, now)
	if daysPast <= cfg.GraceDays {
		return MembershipStatus{
			IsValid:         true,
			Status:          EffectiveGracePeriod,
			DaysRemaining:   -daysPast,
			IsInGracePeriod: true,
			GraceDaysLeft:   cfg.GraceDays - daysPast,
		}
	}

	return MembershipStatus{
		IsValid:       false,
		Status:        EffectiveExpired,
		DaysRemaining: -daysPast,
	}
}
