package services

import (
	"context"
	"time"

	"github.com/iotlab-kiit/registration-service/internal/models"
	"github.com/iotlab-kiit/registration-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type RegisterRequest = validator.RegistrationCreateRequest

type RegisterResponse struct {
	UniqueID       string `json:"uniqueId"`
	RegistrationID string `json:"registrationId"`
}

// UserSummary is the updated-record view returned by admin mutations.
type UserSummary struct {
	RollNumber string          `json:"rollNumber"`
	IsPaid     bool            `json:"isPaid"`
	Role       models.UserRole `json:"role"`
	ApprovedAt *time.Time      `json:"approvedAt,omitempty"`
	ApprovedBy *string         `json:"approvedBy,omitempty"`
}

// DashboardResponse is the participants view: the flat snapshot plus the
// two derived buckets.
type DashboardResponse struct {
	Users        []*models.Registration `json:"users"`
	Participants []*models.Registration `json:"participants"`
	Approved     []*models.Registration `json:"approved"`
	Total        int                    `json:"total"`
}

// OrganizerBoardResponse is the organizers view.
type OrganizerBoardResponse struct {
	Users    []*models.Registration `json:"users"`
	Pending  []*models.Registration `json:"pending"`
	Approved []*models.Registration `json:"approved"`
	Total    int                    `json:"total"`
}

// ===== SERVICE INTERFACES =====

// Notifier is the external email/contact side effect. Implementations must
// be safe for use from a goroutine; errors are logged, never propagated.
type Notifier interface {
	AddContact(ctx context.Context, reg *models.Registration) error
	SendConfirmation(ctx context.Context, reg *models.Registration) error
}

type RegistrationService interface {
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
}

type AdminService interface {
	ListUsers(ctx context.Context, query string) (*DashboardResponse, error)
	ListOrganizers(ctx context.Context, query string) (*OrganizerBoardResponse, error)

	ApproveParticipant(ctx context.Context, roll, actingAdmin string) (*UserSummary, error)
	RemoveParticipant(ctx context.Context, roll string) (*UserSummary, error)
	ApproveOrganizer(ctx context.Context, roll, actingAdmin string) (*UserSummary, error)
	RemoveOrganizer(ctx context.Context, roll string) (*UserSummary, error)
}

type ExportService interface {
	ExportUsers(ctx context.Context) ([]byte, error)
}

// ServiceManager aggregates the services for handler wiring.
type ServiceManager interface {
	Registration() RegistrationService
	Admin() AdminService
	Export() ExportService
}
