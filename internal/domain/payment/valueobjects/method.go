package valueobjects

import "fmt"

// PaymentMethod is how a payment was collected at the front desk or online.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
	MethodOnline   PaymentMethod = "online"
)

var validMethods = map[PaymentMethod]bool{
	MethodCash:     true,
	MethodCard:     true,
	MethodTransfer: true,
	MethodOnline:   true,
}

// ParsePaymentMethod validates and converts a raw string.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	m := PaymentMethod(raw)
	if !validMethods[m] {
		return "", fmt.Errorf("invalid payment method: %s", raw)
	}
	return m, nil
}

func (m PaymentMethod) String() string { return string(m) }

func (m PaymentMethod) IsValid() bool { return validMethods[m] }
