package services

import (
	"sort"
	"strings"

	"github.com/iotlab-kiit/registration-service/internal/models"
)

// Status derivation over an already-fetched snapshot. Pure: the input slice
// and its records are never mutated; every call re-derives from scratch.

// FilterRegistrations returns the records whose roll number, full name or
// email contains the query, case-insensitively. An empty query matches
// everything.
func FilterRegistrations(regs []*models.Registration, query string) []*models.Registration {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]*models.Registration(nil), regs...)
	}

	var out []*models.Registration
	for _, reg := range regs {
		haystack := strings.ToLower(reg.RollNumber + " " + reg.FullName + " " + reg.Email)
		if strings.Contains(haystack, query) {
			out = append(out, reg)
		}
	}
	return out
}

// PartitionParticipants splits a snapshot into the dashboard buckets:
// participants (unpaid, newest registration first) and approved (paid,
// latest approval first).
func PartitionParticipants(regs []*models.Registration) (participants, approved []*models.Registration) {
	for _, reg := range regs {
		if reg.IsPaid {
			approved = append(approved, reg)
		} else {
			participants = append(participants, reg)
		}
	}
	sortByTimestampDesc(participants)
	sortByApprovedAtDesc(approved)
	return participants, approved
}

// PartitionOrganizers splits a snapshot into the organizer buckets: pending
// (unpaid, eligible for "make organizer") and approved organizers (paid
// with the ORGANIZER role).
func PartitionOrganizers(regs []*models.Registration) (pending, approved []*models.Registration) {
	for _, reg := range regs {
		switch {
		case reg.IsPaid && reg.Role == models.RoleOrganizer:
			approved = append(approved, reg)
		case !reg.IsPaid:
			pending = append(pending, reg)
		}
	}
	sortByTimestampDesc(pending)
	sortByApprovedAtDesc(approved)
	return pending, approved
}

func sortByTimestampDesc(regs []*models.Registration) {
	sort.SliceStable(regs, func(i, j int) bool {
		return regs[i].Timestamp.After(regs[j].Timestamp)
	})
}

func sortByApprovedAtDesc(regs []*models.Registration) {
	sort.SliceStable(regs, func(i, j int) bool {
		// Records missing an approval stamp sink to the end.
		if regs[i].ApprovedAt == nil {
			return false
		}
		if regs[j].ApprovedAt == nil {
			return true
		}
		return regs[i].ApprovedAt.After(*regs[j].ApprovedAt)
	})
}
