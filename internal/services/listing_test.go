package services

import (
	"testing"
	"time"

	"github.com/iotlab-kiit/registration-service/internal/models"
)

func reg(roll, name, email string) *models.Registration {
	return &models.Registration{
		RollNumber: roll,
		FullName:   name,
		Email:      email,
		Timestamp:  time.Now().UTC(),
	}
}

func rollsOf(regs []*models.Registration) []string {
	out := make([]string, 0, len(regs))
	for _, r := range regs {
		out = append(out, r.RollNumber)
	}
	return out
}

func sameRolls(got []*models.Registration, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, r := range got {
		if r.RollNumber != want[i] {
			return false
		}
	}
	return true
}

func TestFilterRegistrations(t *testing.T) {
	all := []*models.Registration{
		reg("21051001", "John Doe", "john@example.com"),
		reg("21051002", "Johnny Appleseed", "appleseed@example.com"),
		reg("21051003", "Mary Jane", "mary@example.com"),
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns everything", "", []string{"21051001", "21051002", "21051003"}},
		{"name match is case insensitive", "john", []string{"21051001", "21051002"}},
		{"roll number substring", "1003", []string{"21051003"}},
		{"email substring", "appleseed@", []string{"21051002"}},
		{"no match", "zebra", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRegistrations(all, tt.query)
			if !sameRolls(got, tt.want) {
				t.Errorf("FilterRegistrations(%q) = %v, want %v", tt.query, rollsOf(got), tt.want)
			}
		})
	}
}

func TestFilterRegistrationsDoesNotAliasInput(t *testing.T) {
	all := []*models.Registration{
		reg("A1", "Alice", "alice@example.com"),
		reg("B2", "Bob", "bob@example.com"),
	}

	got := FilterRegistrations(all, "")
	got[0] = got[1]
	if all[0].RollNumber != "A1" {
		t.Error("empty-query result shares backing array with input")
	}
}

func TestPartitionParticipants(t *testing.T) {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	t1 := base.Add(1 * time.Hour)
	t2 := base.Add(2 * time.Hour)

	r1 := reg("R1", "Unpaid One", "r1@example.com")
	r1.Timestamp = base

	r2 := reg("R2", "Paid Early", "r2@example.com")
	r2.IsPaid = true
	r2.ApprovedAt = &t1

	r3 := reg("R3", "Paid Late", "r3@example.com")
	r3.IsPaid = true
	r3.ApprovedAt = &t2

	participants, approved := PartitionParticipants([]*models.Registration{r1, r2, r3})

	if !sameRolls(participants, []string{"R1"}) {
		t.Errorf("participants = %v, want [R1]", rollsOf(participants))
	}
	// Approved sorts by approval time, newest first.
	if !sameRolls(approved, []string{"R3", "R2"}) {
		t.Errorf("approved = %v, want [R3 R2]", rollsOf(approved))
	}
}

func TestPartitionParticipantsOrdersUnpaidByTimestamp(t *testing.T) {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	older := reg("OLD", "Older", "old@example.com")
	older.Timestamp = base
	newer := reg("NEW", "Newer", "new@example.com")
	newer.Timestamp = base.Add(time.Hour)

	participants, _ := PartitionParticipants([]*models.Registration{older, newer})
	if !sameRolls(participants, []string{"NEW", "OLD"}) {
		t.Errorf("participants = %v, want [NEW OLD]", rollsOf(participants))
	}
}

func TestPartitionParticipantsPaidWithoutApprovalTimeSinksLast(t *testing.T) {
	when := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	stamped := reg("S1", "Stamped", "s1@example.com")
	stamped.IsPaid = true
	stamped.ApprovedAt = &when

	unstamped := reg("S2", "Unstamped", "s2@example.com")
	unstamped.IsPaid = true

	_, approved := PartitionParticipants([]*models.Registration{unstamped, stamped})
	if !sameRolls(approved, []string{"S1", "S2"}) {
		t.Errorf("approved = %v, want [S1 S2]", rollsOf(approved))
	}
}

func TestPartitionOrganizers(t *testing.T) {
	when := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	pendingReg := reg("P1", "Pending", "p1@example.com")

	paidStudent := reg("P2", "Paid Student", "p2@example.com")
	paidStudent.IsPaid = true
	paidStudent.Role = models.RoleStudent
	paidStudent.ApprovedAt = &when

	organizer := reg("P3", "Organizer", "p3@example.com")
	organizer.IsPaid = true
	organizer.Role = models.RoleOrganizer
	organizer.ApprovedAt = &when

	pending, approved := PartitionOrganizers([]*models.Registration{pendingReg, paidStudent, organizer})

	if !sameRolls(pending, []string{"P1"}) {
		t.Errorf("pending = %v, want [P1]", rollsOf(pending))
	}
	// A paid STUDENT is not an approved organizer.
	if !sameRolls(approved, []string{"P3"}) {
		t.Errorf("approved = %v, want [P3]", rollsOf(approved))
	}
}
