package valueobjects

import "fmt"

// PaymentStatus is the settlement state of a ledger entry. Only completed
// payments count toward a member's running total.
type PaymentStatus string

const (
	StatusCompleted PaymentStatus = "completed"
	StatusPending   PaymentStatus = "pending"
	StatusFailed    PaymentStatus = "failed"
)

var validStatuses = map[PaymentStatus]bool{
	StatusCompleted: true,
	StatusPending:   true,
	StatusFailed:    true,
}

// ParsePaymentStatus validates and converts a raw string.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	s := PaymentStatus(raw)
	if !validStatuses[s] {
		return "", fmt.Errorf("invalid payment status: %s", raw)
	}
	return s, nil
}

func (s PaymentStatus) String() string { return string(s) }

func (s PaymentStatus) IsCompleted() bool { return s == StatusCompleted }
