package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/iotlab-kiit/registration-service/internal/models"
)

var (
	// ErrDuplicateEmail is returned by Insert when the email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateUniqueID is returned by Insert on a ticket ID collision.
	ErrDuplicateUniqueID = errors.New("unique id already exists")
	// ErrNotFound is returned when no record matches the lookup key.
	ErrNotFound = errors.New("registration not found")
)

// RegistrationUpdate is a partial update. Nil fields are left untouched;
// ClearApproval unsets approvedAt and approvedBy.
type RegistrationUpdate struct {
	IsPaid        *bool
	Role          *models.UserRole
	ApprovedAt    *time.Time
	ApprovedBy    *string
	ClearApproval bool
	IsIDCard      *bool
	IsFood        *bool
}

// RegistrationRepository is the narrow record-store surface the workflows
// use. Updates are single-document writes with last-write-wins semantics;
// there is deliberately no optimistic locking (see DESIGN.md).
type RegistrationRepository interface {
	// Insert persists a new record, filling server-assigned timestamps.
	// Fails with ErrDuplicateEmail or ErrDuplicateUniqueID on unique-index
	// violations.
	Insert(ctx context.Context, reg *models.Registration) (*models.Registration, error)

	// FindByEmail returns the record for a (lowercased) email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.Registration, error)

	// FindByRollNumber returns the record for a roll number, or ErrNotFound.
	// Roll number is the external key all admin mutations use.
	FindByRollNumber(ctx context.Context, roll string) (*models.Registration, error)

	// FindAll returns every record, newest first by creation time. When
	// fields is non-empty the result is projected to those bson fields.
	FindAll(ctx context.Context, fields ...string) ([]*models.Registration, error)

	// Update applies a partial update to the record with the given roll
	// number and returns the updated record, or ErrNotFound.
	Update(ctx context.Context, roll string, patch RegistrationUpdate) (*models.Registration, error)
}

// Repository aggregates the store surface plus lifecycle operations.
type Repository interface {
	Registration() RegistrationRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
