package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentFilter narrows ledger list queries.
type PaymentFilter struct {
	MemberID *uint
	Status   string
	Method   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// PaymentRepository is the persistence port for the payment ledger.
// Lookup methods return (nil, nil) when no record matches.
type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error

	GetBySID(ctx context.Context, sid string) (*Payment, error)
	ListByMemberID(ctx context.Context, memberID uint) ([]*Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]*Payment, int64, error)

	// BulkDelete removes ledger entries by SID and returns how many rows
	// were actually deleted. Member totals are not touched: the ledger is
	// an audit trail and totals reconciliation is a separate concern.
	BulkDelete(ctx context.Context, sids []string) (int64, error)

	SumCompletedByMemberID(ctx context.Context, memberID uint) (decimal.Decimal, error)
	TotalCompletedSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
}
