package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iotlab-kiit/registration-service/internal/models"
	"github.com/iotlab-kiit/registration-service/internal/repositories"
)

// RegistrationMongo implements RegistrationRepository on a MongoDB
// collection with unique indexes on email and uniqueId.
type RegistrationMongo struct {
	collection *mongo.Collection
}

func NewRegistrationMongo(db *mongo.Database) *RegistrationMongo {
	return &RegistrationMongo{
		collection: db.Collection(models.Registration{}.CollectionName()),
	}
}

// EnsureIndexes creates the unique indexes the insert contract relies on.
func (r *RegistrationMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_1"),
		},
		{
			Keys:    bson.D{{Key: "uniqueId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniqueId_1"),
		},
		{
			Keys:    bson.D{{Key: "rollNumber", Value: 1}},
			Options: options.Index().SetName("rollNumber_1"),
		},
	})
	if err != nil {
		return fmt.Errorf("create registration indexes: %w", err)
	}
	return nil
}

func (r *RegistrationMongo) Insert(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
	now := time.Now().UTC()
	stored := *reg
	stored.CreatedAt = now
	stored.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, &stored)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyError(err)
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid
	}
	return &stored, nil
}

func (r *RegistrationMongo) FindByEmail(ctx context.Context, email string) (*models.Registration, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *RegistrationMongo) FindByRollNumber(ctx context.Context, roll string) (*models.Registration, error) {
	return r.findOne(ctx, bson.M{"rollNumber": roll})
}

func (r *RegistrationMongo) findOne(ctx context.Context, filter bson.M) (*models.Registration, error) {
	var reg models.Registration
	err := r.collection.FindOne(ctx, filter).Decode(&reg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return &reg, nil
}

func (r *RegistrationMongo) FindAll(ctx context.Context, fields ...string) ([]*models.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if len(fields) > 0 {
		projection := bson.M{}
		for _, field := range fields {
			projection[field] = 1
		}
		opts = opts.SetProjection(projection)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var regs []*models.Registration
	if err := cursor.All(ctx, &regs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}
	return regs, nil
}

func (r *RegistrationMongo) Update(ctx context.Context, roll string, patch repositories.RegistrationUpdate) (*models.Registration, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.IsPaid != nil {
		set["isPaid"] = *patch.IsPaid
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.ApprovedAt != nil {
		set["approvedAt"] = *patch.ApprovedAt
	}
	if patch.ApprovedBy != nil {
		set["approvedBy"] = *patch.ApprovedBy
	}
	if patch.IsIDCard != nil {
		set["isIDCard"] = *patch.IsIDCard
	}
	if patch.IsFood != nil {
		set["isFood"] = *patch.IsFood
	}

	update := bson.M{"$set": set}
	if patch.ClearApproval {
		update["$unset"] = bson.M{"approvedAt": "", "approvedBy": ""}
	}

	var updated models.Registration
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"rollNumber": roll},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("update registration: %w", err)
	}
	return &updated, nil
}

// duplicateKeyError maps a Mongo duplicate-key write error to the offending
// unique index.
func duplicateKeyError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "uniqueId") {
		return repositories.ErrDuplicateUniqueID
	}
	if strings.Contains(msg, "email") {
		return repositories.ErrDuplicateEmail
	}
	return fmt.Errorf("duplicate key: %w", err)
}
