package models

import "time"

// LedgerEntry is one immutable row of the payment ledger. Exactly one entry
// exists per settled order; order_id carries a uniqueness constraint.
type LedgerEntry struct {
	ID          int       `json:"id"`
	RollNumber  string    `json:"roll_number"`
	StudentName string    `json:"student_name"`
	OrderID     string    `json:"order_id"`
	PaymentID   string    `json:"payment_id"`
	Amount      float64   `json:"amount"` // rupees, converted from the order's paise
	Currency    string    `json:"currency"`
	Course      string    `json:"course"`
	Receipt     string    `json:"receipt,omitempty"`
	PaymentDate time.Time `json:"payment_date"`
}
