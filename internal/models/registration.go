package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleStudent   UserRole = "STUDENT"
	RoleAdmin     UserRole = "ADMIN"
	RoleOrganizer UserRole = "ORGANIZER"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Registration is one person's event registration. Email and UniqueID carry
// unique indexes in the store; UniqueID is the 4-character ticket reference
// quoted during offline payment.
type Registration struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"fullName" json:"fullName"`
	RollNumber string             `bson:"rollNumber" json:"rollNumber"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	University string             `bson:"university" json:"university"`
	Gender     Gender             `bson:"gender" json:"gender"`
	UniqueID   string             `bson:"uniqueId" json:"uniqueId"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`

	IsPaid   bool `bson:"isPaid" json:"isPaid"`
	IsIDCard bool `bson:"isIDCard" json:"isIDCard"`
	IsFood   bool `bson:"isFood" json:"isFood"`

	Role UserRole `bson:"role" json:"role"`

	ApprovedAt *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	ApprovedBy *string    `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (Registration) CollectionName() string {
	return "registrations"
}
