package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pulsefit/internal/shared/biztime"
	"pulsefit/internal/shared/id"
)

// Plan is a purchasable subscription product. Description holds markdown
// authored by staff; it is sanitized and rendered at the presentation edge,
// never here.
type Plan struct {
	id           uint
	sid          string
	name         string
	description  string
	durationDays int
	price        decimal.Decimal
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPlan creates a plan with a generated short ID.
func NewPlan(name, description string, durationDays int, price decimal.Decimal) (*Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if durationDays <= 0 {
		return nil, fmt.Errorf("plan duration must be positive")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("plan price cannot be negative")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixPlan, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan ID: %w", err)
	}

	now := biztime.NowUTC()
	return &Plan{
		sid:          sid,
		name:         name,
		description:  description,
		durationDays: durationDays,
		price:        price,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructPlan rebuilds a plan from persistence.
func ReconstructPlan(
	dbID uint,
	sid, name, description string,
	durationDays int,
	price decimal.Decimal,
	active bool,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("plan SID is required")
	}
	return &Plan{
		id:           dbID,
		sid:          sid,
		name:         name,
		description:  description,
		durationDays: durationDays,
		price:        price,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *Plan) ID() uint               { return p.id }
func (p *Plan) SID() string            { return p.sid }
func (p *Plan) Name() string           { return p.name }
func (p *Plan) Description() string    { return p.description }
func (p *Plan) DurationDays() int      { return p.durationDays }
func (p *Plan) Price() decimal.Decimal { return p.price }
func (p *Plan) IsActive() bool         { return p.active }
func (p *Plan) CreatedAt() time.Time   { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time   { return p.updatedAt }

// SetID sets the database ID (persistence layer use only).
func (p *Plan) SetID(dbID uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = dbID
	return nil
}

// Update mutates the editable attributes. Duration changes only affect future
// renewals; running subscriptions keep the end date they were sold with.
func (p *Plan) Update(name, description string, durationDays int, price decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("plan name is required")
	}
	if durationDays <= 0 {
		return fmt.Errorf("plan duration must be positive")
	}
	if price.IsNegative() {
		return fmt.Errorf("plan price cannot be negative")
	}
	p.name = name
	p.description = description
	p.durationDays = durationDays
	p.price = price
	p.updatedAt = biztime.NowUTC()
	return nil
}

// Activate makes the plan sellable again.
func (p *Plan) Activate() {
	p.active = true
	p.updatedAt = biztime.NowUTC()
}

// Deactivate retires the plan from sale without breaking members still on it.
func (p *Plan) Deactivate() {
	p.active = false
	p.updatedAt = biztime.NowUTC()
}
