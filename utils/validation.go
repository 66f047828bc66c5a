package utils

import (
	"fmt"
	"regexp"
)

// Validation regex patterns
var (
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	PhoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	RollRegex  = regexp.MustCompile(`^[A-Za-z0-9\-/]{3,30}$`)
)

// MaxNameLength bounds student names.
const MaxNameLength = 100

// ValidateEmail checks if email format is valid
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePhone checks if phone is in E.164 format
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone is required")
	}
	if !PhoneRegex.MatchString(phone) {
		return fmt.Errorf("invalid phone format (use E.164 format, e.g., +919876543210)")
	}
	return nil
}

// ValidateName checks if name meets requirements
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("name must be less than %d characters", MaxNameLength)
	}
	return nil
}

// ValidateRollNumber checks the roll number shape (letters, digits, - and /)
func ValidateRollNumber(roll string) error {
	if roll == "" {
		return fmt.Errorf("roll number is required")
	}
	if !RollRegex.MatchString(roll) {
		return fmt.Errorf("invalid roll number format")
	}
	return nil
}
