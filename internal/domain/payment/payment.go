package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pulsefit/internal/domain/payment/valueobjects"
	"pulsefit/internal/shared/biztime"
	"pulsefit/internal/shared/id"
)

// Payment is one immutable row in the payment ledger. Member name and plan
// name are denormalized at write time so the ledger stays readable after the
// member or plan record changes or is deleted.
type Payment struct {
	id         uint
	sid        string
	memberID   uint
	memberName string
	planID     string
	planName   string
	amount     decimal.Decimal
	method     valueobjects.PaymentMethod
	status     valueobjects.PaymentStatus
	paidAt     time.Time
	notes      string
	createdAt  time.Time
}

// NewPayment creates a ledger entry. The short ID is generated here so the
// caller can reference the payment before it is persisted.
func NewPayment(
	memberID uint,
	memberName, planID, planName string,
	amount decimal.Decimal,
	method valueobjects.PaymentMethod,
	status valueobjects.PaymentStatus,
	paidAt time.Time,
	notes string,
) (*Payment, error) {
	if memberID == 0 {
		return nil, fmt.Errorf("member ID is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("invalid payment method: %s", method)
	}
	if paidAt.IsZero() {
		paidAt = biztime.NowUTC()
	}

	sid, err := id.GenerateWithPrefix(id.PrefixPayment, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment ID: %w", err)
	}

	return &Payment{
		sid:        sid,
		memberID:   memberID,
		memberName: strings.TrimSpace(memberName),
		planID:     planID,
		planName:   planName,
		amount:     amount,
		method:     method,
		status:     status,
		paidAt:     paidAt.UTC(),
		notes:      notes,
		createdAt:  biztime.NowUTC(),
	}, nil
}

// ReconstructPayment rebuilds a ledger entry from persistence.
func ReconstructPayment(
	dbID uint,
	sid string,
	memberID uint,
	memberName, planID, planName string,
	amount decimal.Decimal,
	method valueobjects.PaymentMethod,
	status valueobjects.PaymentStatus,
	paidAt time.Time,
	notes string,
	createdAt time.Time,
) (*Payment, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("payment SID is required")
	}
	return &Payment{
		id:         dbID,
		sid:        sid,
		memberID:   memberID,
		memberName: memberName,
		planID:     planID,
		planName:   planName,
		amount:     amount,
		method:     method,
		status:     status,
		paidAt:     paidAt,
		notes:      notes,
		createdAt:  createdAt,
	}, nil
}

func (p *Payment) ID() uint                           { return p.id }
func (p *Payment) SID() string                        { return p.sid }
func (p *Payment) MemberID() uint                     { return p.memberID }
func (p *Payment) MemberName() string                 { return p.memberName }
func (p *Payment) PlanID() string                     { return p.planID }
func (p *Payment) PlanName() string                   { return p.planName }
func (p *Payment) Amount() decimal.Decimal            { return p.amount }
func (p *Payment) Method() valueobjects.PaymentMethod { return p.method }
func (p *Payment) Status() valueobjects.PaymentStatus { return p.status }
func (p *Payment) PaidAt() time.Time                  { return p.paidAt }
func (p *Payment) Notes() string                      { return p.notes }
func (p *Payment) CreatedAt() time.Time               { return p.createdAt }

// SetID sets the database ID (persistence layer use only).
func (p *Payment) SetID(dbID uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.id = dbID
	return nil
}
