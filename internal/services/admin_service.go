package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iotlab-kiit/registration-service/internal/cache"
	"github.com/iotlab-kiit/registration-service/internal/models"
	"github.com/iotlab-kiit/registration-service/internal/repositories"
	"github.com/iotlab-kiit/registration-service/internal/utils"
)

const listingCacheKey = "users"

// adminService implements the approval/removal workflow and the derived
// dashboard listings. Mutations are last-write-wins single-document
// updates; two admins approving the same roll both succeed.
type adminService struct {
	repo   repositories.RegistrationRepository
	cache  *cache.CacheHelper
	logger utils.Logger
}

func NewAdminService(
	repo repositories.RegistrationRepository,
	cacheHelper *cache.CacheHelper,
	logger utils.Logger,
) AdminService {
	return &adminService{
		repo:   repo,
		cache:  cacheHelper,
		logger: logger,
	}
}

func (s *adminService) ListUsers(ctx context.Context, query string) (*DashboardResponse, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	matched := FilterRegistrations(snapshot, query)
	participants, approved := PartitionParticipants(matched)

	return &DashboardResponse{
		Users:        matched,
		Participants: participants,
		Approved:     approved,
		Total:        len(matched),
	}, nil
}

func (s *adminService) ListOrganizers(ctx context.Context, query string) (*OrganizerBoardResponse, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	matched := FilterRegistrations(snapshot, query)
	pending, approved := PartitionOrganizers(matched)

	return &OrganizerBoardResponse{
		Users:    matched,
		Pending:  pending,
		Approved: approved,
		Total:    len(matched),
	}, nil
}

// snapshot returns the full record set, newest first, via the short-TTL
// listing cache when available.
func (s *adminService) snapshot(ctx context.Context) ([]*models.Registration, error) {
	var cached []*models.Registration
	if err := s.cache.Get(ctx, listingCacheKey, &cached); err == nil {
		return cached, nil
	}

	regs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch registrations: %w", err)
	}

	if err := s.cache.Set(ctx, listingCacheKey, regs, cache.DashboardCacheConfig.TTL); err != nil {
		s.logger.Warn("listing cache write failed", "error", err)
	}
	return regs, nil
}

func (s *adminService) ApproveParticipant(ctx context.Context, roll, actingAdmin string) (*UserSummary, error) {
	if _, err := s.lookup(ctx, roll); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	paid := true
	return s.apply(ctx, roll, repositories.RegistrationUpdate{
		IsPaid:     &paid,
		ApprovedAt: &now,
		ApprovedBy: &actingAdmin,
	})
}

func (s *adminService) RemoveParticipant(ctx context.Context, roll string) (*UserSummary, error) {
	reg, err := s.lookup(ctx, roll)
	if err != nil {
		return nil, err
	}
	// Organizers must be demoted through the organizer path, never through
	// the generic participant removal.
	if reg.Role == models.RoleOrganizer {
		return nil, fmt.Errorf("%w: cannot remove organizer role users from participants list", ErrForbidden)
	}

	paid := false
	return s.apply(ctx, roll, repositories.RegistrationUpdate{
		IsPaid:        &paid,
		ClearApproval: true,
	})
}

func (s *adminService) ApproveOrganizer(ctx context.Context, roll, actingAdmin string) (*UserSummary, error) {
	if _, err := s.lookup(ctx, roll); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	paid := true
	role := models.RoleOrganizer
	return s.apply(ctx, roll, repositories.RegistrationUpdate{
		IsPaid:     &paid,
		Role:       &role,
		ApprovedAt: &now,
		ApprovedBy: &actingAdmin,
	})
}

func (s *adminService) RemoveOrganizer(ctx context.Context, roll string) (*UserSummary, error) {
	if _, err := s.lookup(ctx, roll); err != nil {
		return nil, err
	}

	paid := false
	role := models.RoleStudent
	return s.apply(ctx, roll, repositories.RegistrationUpdate{
		IsPaid:        &paid,
		Role:          &role,
		ClearApproval: true,
	})
}

func (s *adminService) lookup(ctx context.Context, roll string) (*models.Registration, error) {
	reg, err := s.repo.FindByRollNumber(ctx, roll)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup registration: %w", err)
	}
	return reg, nil
}

func (s *adminService) apply(ctx context.Context, roll string, patch repositories.RegistrationUpdate) (*UserSummary, error) {
	updated, err := s.repo.Update(ctx, roll, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update registration: %w", err)
	}

	if err := s.cache.Delete(ctx, listingCacheKey); err != nil {
		s.logger.Warn("listing cache invalidation failed", "error", err)
	}

	return &UserSummary{
		RollNumber: updated.RollNumber,
		IsPaid:     updated.IsPaid,
		Role:       updated.Role,
		ApprovedAt: updated.ApprovedAt,
		ApprovedBy: updated.ApprovedBy,
	}, nil
}
