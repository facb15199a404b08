package validator

import "time"

// RegistrationCreateRequest is the public registration payload. UniqueID is
// optional: when absent the server generates the ticket reference itself.
type RegistrationCreateRequest struct {
	FullName   string     `json:"fullName" validate:"required,min=2,max=100"`
	RollNumber string     `json:"rollNumber" validate:"required,roll_number"`
	Email      string     `json:"email" validate:"required,email"`
	Phone      string     `json:"phone" validate:"required,min=7,max=15"`
	University string     `json:"university" validate:"required,max=120"`
	Gender     string     `json:"gender" validate:"required,oneof=Male Female Other"`
	UniqueID   string     `json:"uniqueId" validate:"omitempty,ticket_id"`
	Timestamp  *time.Time `json:"timestamp"`
}

// AdminLoginRequest carries dashboard credentials.
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
