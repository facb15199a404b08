package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/iotlab-kiit/registration-service/internal/repositories"
)

// MongoRepository implements the aggregate Repository interface over a
// single MongoDB database.
type MongoRepository struct {
	db           *mongo.Database
	registration *RegistrationMongo
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		db:           db,
		registration: NewRegistrationMongo(db),
	}
}

// Initialize creates indexes. Called once at startup.
func (r *MongoRepository) Initialize(ctx context.Context) error {
	return r.registration.EnsureIndexes(ctx)
}

func (r *MongoRepository) Registration() repositories.RegistrationRepository {
	return r.registration
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}

func (r *MongoRepository) Close(ctx context.Context) error {
	return r.db.Client().Disconnect(ctx)
}
