package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/iotlab-kiit/registration-service/internal/models"
	"github.com/iotlab-kiit/registration-service/internal/repositories"
	"github.com/iotlab-kiit/registration-service/internal/uniqueid"
	"github.com/iotlab-kiit/registration-service/internal/utils"
	"github.com/iotlab-kiit/registration-service/internal/validator"
)

// ticketRetries bounds regeneration attempts when a server-generated
// ticket ID collides with an existing record.
const ticketRetries = 3

// notifyTimeout bounds the fire-and-forget Brevo calls after the
// registration response is already decided.
const notifyTimeout = 30 * time.Second

type registrationService struct {
	repo      repositories.RegistrationRepository
	notifier  Notifier
	validator *validator.Validator
	logger    utils.Logger

	generateID func() string

	// notifyWG tracks in-flight notifier goroutines; tests wait on it.
	notifyWG sync.WaitGroup
}

func NewRegistrationService(
	repo repositories.RegistrationRepository,
	notifier Notifier,
	v *validator.Validator,
	logger utils.Logger,
) RegistrationService {
	return &registrationService{
		repo:       repo,
		notifier:   notifier,
		validator:  v,
		logger:     logger,
		generateID: uniqueid.Generate,
	}
}

func (s *registrationService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != nil {
		timestamp = req.Timestamp.UTC()
	}

	clientSuppliedID := req.UniqueID != ""
	ticketID := req.UniqueID
	if !clientSuppliedID {
		ticketID = s.generateID()
	}

	reg := &models.Registration{
		FullName:   strings.TrimSpace(req.FullName),
		RollNumber: strings.TrimSpace(req.RollNumber),
		Email:      email,
		Phone:      strings.TrimSpace(req.Phone),
		University: strings.TrimSpace(req.University),
		Gender:     models.Gender(req.Gender),
		Timestamp:  timestamp,
		IsPaid:     false,
		Role:       models.RoleStudent,
	}

	var stored *models.Registration
	for attempt := 0; ; attempt++ {
		reg.UniqueID = ticketID
		stored, err = s.repo.Insert(ctx, reg)
		if err == nil {
			break
		}
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, repositories.ErrDuplicateUniqueID) {
			// A collision on a server-generated ID is recoverable: draw a
			// fresh one. A client-supplied ID gets no retry.
			if !clientSuppliedID && attempt < ticketRetries-1 {
				ticketID = s.generateID()
				continue
			}
			return nil, ErrTicketTaken
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	s.notify(stored)

	return &RegisterResponse{
		UniqueID:       stored.UniqueID,
		RegistrationID: stored.ID.Hex(),
	}, nil
}

// notify fires the contact upsert and confirmation email without holding up
// the registration response. Failures are logged and swallowed.
func (s *registrationService) notify(reg *models.Registration) {
	s.notifyWG.Add(1)
	go func() {
		defer s.notifyWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.AddContact(ctx, reg); err != nil {
			s.logger.Warn("brevo contact upsert failed",
				"email", reg.Email, "error", err)
		}
		if err := s.notifier.SendConfirmation(ctx, reg); err != nil {
			s.logger.Warn("confirmation email failed",
				"email", reg.Email, "unique_id", reg.UniqueID, "error", err)
		}
	}()
}
