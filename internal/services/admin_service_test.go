package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/iotlab-kiit/registration-service/internal/cache"
	"github.com/iotlab-kiit/registration-service/internal/models"
	"github.com/iotlab-kiit/registration-service/internal/repositories/memory"
)

func seedRegistration(t *testing.T, repo *memory.RegistrationMemory, roll, name, email string) *models.Registration {
	t.Helper()
	stored, err := repo.Insert(context.Background(), &models.Registration{
		FullName:   name,
		RollNumber: roll,
		Email:      email,
		Phone:      "9876543210",
		University: "KIIT University",
		Gender:     models.GenderMale,
		UniqueID:   roll[:2] + roll[len(roll)-2:],
		Timestamp:  time.Now().UTC(),
		Role:       models.RoleStudent,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", roll, err)
	}
	return stored
}

func newTestAdminService(repo *memory.RegistrationMemory) AdminService {
	return NewAdminService(repo, cache.NewCacheHelper(nil, cache.DashboardCacheConfig.Prefix), testLogger())
}

func TestApproveParticipant(t *testing.T) {
	repo := memory.NewRegistrationMemory()
	seedRegistration(t, repo, "21051001", "John Doe", "john@example.com")
	svc := newTestAdminService(repo)

	summary, err := svc.ApproveParticipant(context.Background(), "21051001", "admin")
	if err != nil {
		t.Fatalf("ApproveParticipant() error = %v", err)
	}
	if !summary.IsPaid {
		t.Error("summary not marked paid")
	}
	if summary.ApprovedAt == nil {
		t.Error("summary missing approval time")
	}
	if summary.ApprovedBy == nil || *summary.ApprovedBy != "admin" {
		t.Errorf("ApprovedBy = %v, want admin", summary.ApprovedBy)
	}

	stored, err := repo.FindByRollNumber(context.Background(), "21051001")
	if err != nil {
		t.Fatal(err)
	}
	if !stored.IsPaid || stored.ApprovedAt == nil {
		t.Error("approval not persisted")
	}
}

func TestApproveThenRemoveParticipantResetsApproval(t *testing.T) {
	repo := memory.NewRegistrationMemory()
	seedRegistration(t, repo, "21051001", "John Doe", "john@example.com")
	svc := newTestAdminService(repo)

	if _, err := svc.ApproveParticipant(context.Background(), "21051001", "admin"); err != nil {
		t.Fatalf("ApproveParticipant() error = %v", err)
	}
	summary, err := svc.RemoveParticipant(context.Background(), "21051001")
	if err != nil {
		t.Fatalf("RemoveParticipant() error = %v", err)
	}

	if summary.IsPaid {
		t.Error("summary still paid after removal")
	}
	if summary.ApprovedAt != nil || summary.ApprovedBy != nil {
		t.Error("approval fields survive removal")
	}

	stored, err := repo.FindByRollNumber(context.Background(), "21051001")
	if err != nil {
		t.Fatal(err)
	}
	if stored.IsPaid || stored.ApprovedAt != nil || stored.ApprovedBy != nil {
		t.Error("removal not persisted")
	}
}

func TestRemoveParticipantRefusesOrganizer(t *testing.T) {
	repo := memory.NewRegistrationMemory()
	seedRegistration(t, repo, "21051001", "John Doe", "john@example.com")
	svc := newTestAdminService(repo)

	if _, err := svc.ApproveOrganizer(context.Background(), "21051001", "admin"); err != nil {
		t.Fatalf("ApproveOrganizer() error = %v", err)
	}

	_, err := svc.RemoveParticipant(context.Background(), "21051001")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("RemoveParticipant() error = %v, want ErrForbidden", err)
	}

	// The refused removal must leave the record untouched.
	stored, lookupErr := repo.FindByRollNumber(context.Background(), "21051001")
	if lookupErr != nil {
		t.Fatal(lookupErr)
	}
	if !stored.IsPaid || stored.Role != models.RoleOrganizer {
		t.Error("refused removal modified the record")
	}
}

func TestAdminMutationsUnknownRoll(t *testing.T) {
	repo := memory.NewRegistrationMemory()
	svc := newTestAdminService(repo)
	ctx := context.Background()

	calls := []struct {
		name string
		call func() error
	}{
		{"ApproveParticipant", func() error { _, err := svc.ApproveParticipant(ctx, "nope", "admin"); return err }},
		{"RemoveParticipant", func() error { _, err := svc.RemoveParticipant(ctx, "nope"); return err }},
		{"ApproveOrganizer", func() error { _, err := svc.ApproveOrganizer(ctx, "nope", "admin"); return err }},
		{"RemoveOrganizer", func() error { _, err := svc.RemoveOrganizer(ctx, "nope"); return err }},
	}
	for _, tc := range calls {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestOrganizerRoleRoundtrip(t *testing.T) {
	repo := memory.NewRegistrationMemory()
	seedRegistration(t, repo, "21051001", "John Doe", "john@example.com")
	svc := newTestAdminService(repo)
	ctx := context.Background()

	summary, err := svc.ApproveOrganizer(ctx, "21051001", "head-admin")
	if err != nil {
		t.Fatalf("ApproveOrganizer() error = %v", err)
	}
	if summary.Role != models.RoleOrganizer || !summary.IsPaid {
		t.Errorf("after grant: role=%q paid=%v, want ORGANIZER paid", summary.Role, summary.IsPaid)
	}

	summary, err = svc.RemoveOrganizer(ctx, "21051001")
	if err != nil {
		t.Fatalf("RemoveOrganizer() error = %v", err)
	}
	if summary.Role != models.RoleStudent || summary.IsPaid {
		t.Errorf("after revoke: role=%q paid=%v, want STUDENT unpaid", summary.Role, summary.IsPaid)
	}
	if summary.ApprovedAt != nil {
		t.Error("approval stamp survives revoke")
	}
}

func TestListUsersBucketsAndSearch(t *testing.T) {
	repo := memory.NewRegistrationMemory()
	seedRegistration(t, repo, "21051001", "John Doe", "john@example.com")
	seedRegistration(t, repo, "21051002", "Johnny Appleseed", "appleseed@example.com")
	seedRegistration(t, repo, "21051003", "Mary Jane", "mary@example.com")
	svc := newTestAdminService(repo)
	ctx := context.Background()

	if _, err := svc.ApproveParticipant(ctx, "21051003", "admin"); err != nil {
		t.Fatalf("ApproveParticipant() error = %v", err)
	}

	resp, err := svc.ListUsers(ctx, "")
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if resp.Total != 3 || len(resp.Users) != 3 {
		t.Errorf("Total = %d, Users = %d, want 3 each", resp.Total, len(resp.Users))
	}
	if len(resp.Participants) != 2 || len(resp.Approved) != 1 {
		t.Errorf("buckets = (%d, %d), want (2, 1)", len(resp.Participants), len(resp.Approved))
	}

	resp, err = svc.ListUsers(ctx, "john")
	if err != nil {
		t.Fatalf("ListUsers(john) error = %v", err)
	}
	if len(resp.Users) != 2 {
		t.Errorf("search matched %d users, want 2", len(resp.Users))
	}
	for _, u := range resp.Users {
		if u.RollNumber == "21051003" {
			t.Error("search for john matched Mary Jane")
		}
	}
}

func TestListOrganizersBuckets(t *testing.T) {
	repo := memory.NewRegistrationMemory()
	seedRegistration(t, repo, "21051001", "Pending Person", "pending@example.com")
	seedRegistration(t, repo, "21051002", "Head Organizer", "organizer@example.com")
	svc := newTestAdminService(repo)
	ctx := context.Background()

	if _, err := svc.ApproveOrganizer(ctx, "21051002", "admin"); err != nil {
		t.Fatalf("ApproveOrganizer() error = %v", err)
	}

	resp, err := svc.ListOrganizers(ctx, "")
	if err != nil {
		t.Fatalf("ListOrganizers() error = %v", err)
	}
	if len(resp.Pending) != 1 || resp.Pending[0].RollNumber != "21051001" {
		t.Errorf("pending = %v", rollsOf(resp.Pending))
	}
	if len(resp.Approved) != 1 || resp.Approved[0].RollNumber != "21051002" {
		t.Errorf("approved = %v", rollsOf(resp.Approved))
	}
}

func TestListingCacheInvalidatedByMutation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := memory.NewRegistrationMemory()
	seedRegistration(t, repo, "21051001", "John Doe", "john@example.com")
	svc := NewAdminService(repo, cache.NewCacheHelper(client, cache.DashboardCacheConfig.Prefix), testLogger())
	ctx := context.Background()

	if _, err := svc.ListUsers(ctx, ""); err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if !mr.Exists("dashboard:users") {
		t.Fatal("listing snapshot not cached")
	}

	if _, err := svc.ApproveParticipant(ctx, "21051001", "admin"); err != nil {
		t.Fatalf("ApproveParticipant() error = %v", err)
	}
	if mr.Exists("dashboard:users") {
		t.Error("mutation left the cached snapshot in place")
	}

	// The next listing reflects the mutation.
	resp, err := svc.ListUsers(ctx, "")
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(resp.Approved) != 1 {
		t.Errorf("approved bucket = %d, want 1", len(resp.Approved))
	}
}
