package plan

import "context"

// PlanRepository is the persistence port for plans.
// Lookup methods return (nil, nil) when no record matches.
type PlanRepository interface {
	Create(ctx context.Context, p *Plan) error
	Update(ctx context.Context, p *Plan) error
	Delete(ctx context.Context, dbID uint) error

	GetBySID(ctx context.Context, sid string) (*Plan, error)

	// GetByName does a case-insensitive exact match; the bulk import uses
	// it to resolve free-text plan labels from spreadsheets.
	GetByName(ctx context.Context, name string) (*Plan, error)

	List(ctx context.Context, includeInactive bool) ([]*Plan, error)
}
