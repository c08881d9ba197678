package member

import (
	"context"
	"time"
)

// MemberFilter narrows list queries. Search matches member ID, name or phone.
type MemberFilter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// MemberRepository is the persistence port for the member aggregate.
// Lookup methods return (nil, nil) when no record matches.
type MemberRepository interface {
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id uint) error

	GetByID(ctx context.Context, id uint) (*Member, error)
	GetByMemberID(ctx context.Context, memberID string) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	GetByUserID(ctx context.Context, userID uint) (*Member, error)
	ExistsByMemberID(ctx context.Context, memberID string) (bool, error)

	List(ctx context.Context, filter MemberFilter) ([]*Member, int64, error)

	// ListByPersistedStatus pages through members by their cached status
	// label; the expiry sweep uses it to find candidates cheaply.
	ListByPersistedStatus(ctx context.Context, status Status, limit, offset int) ([]*Member, error)

	CountByPersistedStatus(ctx context.Context, status Status) (int64, error)
	CountEndingBetween(ctx context.Context, from, to time.Time) (int64, error)
}
