package member

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pulsefit/internal/shared/biztime"
)

// Status is the persisted membership label. It is a cache kept approximately
// fresh by the expiry sweep; consumers needing correctness must go through
// EvaluateMembership instead of branching on this field.
type Status string

const (
	StatusActive  Status = "Active"
	StatusExpired Status = "Expired"
)

// ValidStatuses enumerates the persistable labels.
var ValidStatuses = map[Status]bool{
	StatusActive:  true,
	StatusExpired: true,
}

// Member is the billing/access aggregate for one gym member.
type Member struct {
	id                uint
	memberID          string
	name              string
	phone             string
	email             string
	planID            string
	planName          string
	subscriptionStart time.Time
	subscriptionEnd   time.Time
	status            Status
	totalPaid         decimal.Decimal
	lastExpiryNotice  *time.Time
	userID            *uint
	metadata          map[string]interface{}
	createdAt         time.Time
	updatedAt         time.Time
}

// NewMember creates a member record for enrollment or import. Subscription
// dates are normalized to 12:00 UTC. The initial status is classified by the
// caller (an imported row whose end date already passed is created Expired).
func NewMember(memberID, name, phone, email string, planID, planName string, start, end time.Time, status Status) (*Member, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, fmt.Errorf("member ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, fmt.Errorf("phone is required")
	}
	if end.Before(start) {
		return nil, fmt.Errorf("subscription end date must be after start date")
	}
	if !ValidStatuses[status] {
		return nil, fmt.Errorf("invalid member status: %s", status)
	}

	now := biztime.NowUTC()
	return &Member{
		memberID:          memberID,
		name:              strings.TrimSpace(name),
		phone:             strings.TrimSpace(phone),
		email:             strings.TrimSpace(email),
		planID:            planID,
		planName:          planName,
		subscriptionStart: biztime.NoonUTC(start),
		subscriptionEnd:   biztime.NoonUTC(end),
		status:            status,
		totalPaid:         decimal.Zero,
		metadata:          make(map[string]interface{}),
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructMember rebuilds a member from persistence.
func ReconstructMember(
	id uint,
	memberID, name, phone, email string,
	planID, planName string,
	start, end time.Time,
	status Status,
	totalPaid decimal.Decimal,
	lastExpiryNotice *time.Time,
	userID *uint,
	metadata map[string]interface{},
	createdAt, updatedAt time.Time,
) (*Member, error) {
	if id == 0 {
		return nil, fmt.Errorf("member ID cannot be zero")
	}
	if memberID == "" {
		return nil, fmt.Errorf("member ID is required")
	}
	if !ValidStatuses[status] {
		return nil, fmt.Errorf("invalid member status: %s", status)
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Member{
		id:                id,
		memberID:          memberID,
		name:              name,
		phone:             phone,
		email:             email,
		planID:            planID,
		planName:          planName,
		subscriptionStart: start,
		subscriptionEnd:   end,
		status:            status,
		totalPaid:         totalPaid,
		lastExpiryNotice:  lastExpiryNotice,
		userID:            userID,
		metadata:          metadata,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (m *Member) ID() uint                     { return m.id }
func (m *Member) MemberID() string             { return m.memberID }
func (m *Member) Name() string                 { return m.name }
func (m *Member) Phone() string                { return m.phone }
func (m *Member) Email() string                { return m.email }
func (m *Member) PlanID() string               { return m.planID }
func (m *Member) PlanName() string             { return m.planName }
func (m *Member) SubscriptionStart() time.Time { return m.subscriptionStart }
func (m *Member) SubscriptionEnd() time.Time   { return m.subscriptionEnd }
func (m *Member) Status() Status               { return m.status }
func (m *Member) TotalPaid() decimal.Decimal   { return m.totalPaid }
func (m *Member) LastExpiryNotice() *time.Time { return m.lastExpiryNotice }
func (m *Member) UserID() *uint                { return m.userID }
func (m *Member) Metadata() map[string]interface{} { return m.metadata }
func (m *Member) CreatedAt() time.Time         { return m.createdAt }
func (m *Member) UpdatedAt() time.Time         { return m.updatedAt }

// SetID sets the database ID (persistence layer use only).
func (m *Member) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("member ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("member ID cannot be zero")
	}
	m.id = id
	return nil
}

// Renew extends the subscription by durationDays. A still-active membership
// is extended from its current end date so no paid-for time is lost; a lapsed
// one restarts from now with no retroactive credit for the lapsed days.
func (m *Member) Renew(planID, planName string, durationDays int, amount decimal.Decimal, now time.Time) error {
	if durationDays <= 0 {
		return fmt.Errorf("plan duration must be positive")
	}
	if amount.IsNegative() {
		return fmt.Errorf("renewal amount cannot be negative")
	}

	baseline := m.subscriptionEnd
	if baseline.Before(now) {
		baseline = biztime.NoonUTC(now)
	}
	newEnd := baseline.AddDate(0, 0, durationDays)

	m.planID = planID
	m.planName = planName
	m.subscriptionStart = baseline
	m.subscriptionEnd = newEnd
	m.status = StatusActive
	m.totalPaid = m.totalPaid.Add(amount)
	m.updatedAt = biztime.NowUTC()

	return nil
}

// RecordPayment adds a completed payment amount to the running total.
func (m *Member) RecordPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("payment amount must be positive")
	}
	m.totalPaid = m.totalPaid.Add(amount)
	m.updatedAt = biztime.NowUTC()
	return nil
}

// MarkAsExpired flips the persisted label. Only the expiry sweep calls this;
// display paths derive state from the end date.
func (m *Member) MarkAsExpired() error {
	if m.status == StatusExpired {
		return nil
	}
	m.status = StatusExpired
	m.updatedAt = biztime.NowUTC()
	return nil
}

// IsExpired reports whether the subscription end date has passed.
func (m *Member) IsExpired(now time.Time) bool {
	return m.subscriptionEnd.Before(now)
}

// StampExpiryNotice records that a renewal reminder was sent, making the
// sweep idempotent across repeated triggers within the cooldown.
func (m *Member) StampExpiryNotice(at time.Time) {
	t := at
	m.lastExpiryNotice = &t
	m.updatedAt = biztime.NowUTC()
}

// NotifiedWithin reports whether a reminder was already sent inside the
// cooldown window ending at now.
func (m *Member) NotifiedWithin(cooldown time.Duration, now time.Time) bool {
	if m.lastExpiryNotice == nil {
		return false
	}
	return now.Sub(*m.lastExpiryNotice) < cooldown
}

// UpdateContact mutates the contact attributes.
func (m *Member) UpdateContact(name, phone, email string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("phone is required")
	}
	m.name = strings.TrimSpace(name)
	m.phone = strings.TrimSpace(phone)
	m.email = strings.TrimSpace(email)
	m.updatedAt = biztime.NowUTC()
	return nil
}

// LinkUser attaches the login account created for this member.
func (m *Member) LinkUser(userID uint) {
	m.userID = &userID
	m.updatedAt = biztime.NowUTC()
}
