// Package memory provides an in-memory RegistrationRepository used by the
// service and handler tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iotlab-kiit/registration-service/internal/models"
	"github.com/iotlab-kiit/registration-service/internal/repositories"
)

// RegistrationMemory mirrors the Mongo repository's contract, including its
// duplicate-key and not-found error mapping.
type RegistrationMemory struct {
	mu      sync.Mutex
	records []*models.Registration

	// InsertHook, when set, runs before each insert and may return an error
	// to simulate store failures (e.g. forced uniqueId collisions).
	InsertHook func(reg *models.Registration) error
}

func NewRegistrationMemory() *RegistrationMemory {
	return &RegistrationMemory{}
}

func (r *RegistrationMemory) Insert(_ context.Context, reg *models.Registration) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.InsertHook != nil {
		if err := r.InsertHook(reg); err != nil {
			return nil, err
		}
	}

	for _, existing := range r.records {
		if existing.Email == reg.Email {
			return nil, repositories.ErrDuplicateEmail
		}
		if existing.UniqueID == reg.UniqueID {
			return nil, repositories.ErrDuplicateUniqueID
		}
	}

	now := time.Now().UTC()
	stored := *reg
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.records = append(r.records, &stored)

	out := stored
	return &out, nil
}

func (r *RegistrationMemory) FindByEmail(_ context.Context, email string) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.Email == strings.ToLower(email) {
			out := *existing
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *RegistrationMemory) FindByRollNumber(_ context.Context, roll string) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.RollNumber == roll {
			out := *existing
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *RegistrationMemory) FindAll(_ context.Context, _ ...string) ([]*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Registration, 0, len(r.records))
	for _, existing := range r.records {
		clone := *existing
		out = append(out, &clone)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *RegistrationMemory) Update(_ context.Context, roll string, patch repositories.RegistrationUpdate) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.RollNumber != roll {
			continue
		}
		if patch.IsPaid != nil {
			existing.IsPaid = *patch.IsPaid
		}
		if patch.Role != nil {
			existing.Role = *patch.Role
		}
		if patch.ApprovedAt != nil {
			at := *patch.ApprovedAt
			existing.ApprovedAt = &at
		}
		if patch.ApprovedBy != nil {
			by := *patch.ApprovedBy
			existing.ApprovedBy = &by
		}
		if patch.ClearApproval {
			existing.ApprovedAt = nil
			existing.ApprovedBy = nil
		}
		if patch.IsIDCard != nil {
			existing.IsIDCard = *patch.IsIDCard
		}
		if patch.IsFood != nil {
			existing.IsFood = *patch.IsFood
		}
		existing.UpdatedAt = time.Now().UTC()

		out := *existing
		return &out, nil
	}
	return nil, repositories.ErrNotFound
}

// Count returns the number of stored records.
func (r *RegistrationMemory) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
