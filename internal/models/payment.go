package models

import "time"

// PaymentMethod enumerates how a payment was handed over.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodTransfer PaymentMethod = "transfer"
	MethodCheck    PaymentMethod = "check"
	MethodOther    PaymentMethod = "other"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCheck, MethodOther:
		return true
	}
	return false
}

// PaymentRecord is one entry in a server's global payment ledger.
// Records are append-only and never mutated after creation.
type PaymentRecord struct {
	ID        string        `json:"id"`
	ServerID  string        `json:"serverId"`
	Amount    float64       `json:"amount"`
	Remaining float64       `json:"remaining"` // balance snapshot after this payment
	Method    PaymentMethod `json:"method"`
	Note      string        `json:"note"`
	CreatedAt time.Time     `json:"createdAt"`
}
