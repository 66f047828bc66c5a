package models

import (
	"encoding/json"
	"time"
)

// Course payment status values stored inside a student's course selection.
const (
	CoursePaymentPending = "pending"
	CoursePaymentPaid    = "paid"
)

// CourseSelection is the course slot on a student record. Before payment it
// holds the pending choice; after settlement PaymentStatus is "paid" and the
// selection is immutable through the normal flow.
type CourseSelection struct {
	Level         string  `json:"level"`
	Branch        string  `json:"branch"`
	HonsSubject   string  `json:"honsSubject,omitempty"`
	Amount        float64 `json:"amount"`
	PaymentStatus string  `json:"paymentStatus"`
}

// Paid reports whether this selection has already been settled.
func (c *CourseSelection) Paid() bool {
	return c != nil && c.PaymentStatus == CoursePaymentPaid
}

// Student represents a registered applicant, keyed by roll number.
type Student struct {
	ID             int              `json:"id"`
	RollNumber     string           `json:"roll_number"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Education      string           `json:"education"`
	SelectedCourse *CourseSelection `json:"selected_course,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// StudentResponse is the structured response for API responses
type StudentResponse struct {
	ID             int              `json:"id"`
	RollNumber     string           `json:"roll_number"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Education      string           `json:"education"`
	SelectedCourse *CourseSelection `json:"selected_course,omitempty"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

// ToResponse converts Student to StudentResponse with formatted timestamps
func (s *Student) ToResponse() StudentResponse {
	return StudentResponse{
		ID:             s.ID,
		RollNumber:     s.RollNumber,
		Name:           s.Name,
		Email:          s.Email,
		Phone:          s.Phone,
		Education:      s.Education,
		SelectedCourse: s.SelectedCourse,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}
}

// DecodeCourseSelection parses the JSONB column value of selected_course.
// A nil or empty value yields a nil selection.
func DecodeCourseSelection(raw []byte) (*CourseSelection, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var sel CourseSelection
	if err := json.Unmarshal(raw, &sel); err != nil {
		return nil, err
	}
	return &sel, nil
}
