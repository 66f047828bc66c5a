package models

import "time"

// Course represents an academic course offered by the institution
type Course struct {
	ID          int       `json:"id"`
	Level       string    `json:"level"`
	Branch      string    `json:"branch"`
	HonsSubject string    `json:"hons_subject,omitempty"`
	Fee         float64   `json:"fee"`
	IsActive    int       `json:"is_active"` // 0 = inactive, 1 = active
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Selection builds the pending course slot a student carries into checkout.
func (c *Course) Selection() CourseSelection {
	return CourseSelection{
		Level:         c.Level,
		Branch:        c.Branch,
		HonsSubject:   c.HonsSubject,
		Amount:        c.Fee,
		PaymentStatus: CoursePaymentPending,
	}
}
