package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	doctorserrors "docportal/internal/doctors/errors"
	"docportal/pkg/config"
	mongodb "docportal/pkg/db/mongo"
	"docportal/pkg/model"
)

const (
	CollectionName = "doctors"
)

type DoctorRepository interface {
	Insert(ctx context.Context, doctor *model.Doctor) error
	FindAll(ctx context.Context) ([]*model.Doctor, error)
	Delete(ctx context.Context, id string) error
}

type mongoDoctorRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDoctorRepository(cfg *config.Config) DoctorRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDoctorRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoDoctorRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoDoctorRepository) Insert(ctx context.Context, doctor *model.Doctor) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoWriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, doctor)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return doctorserrors.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert doctor: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		doctor.ID = oid.Hex()
	}
	return nil
}

func (r *mongoDoctorRepository) FindAll(ctx context.Context) ([]*model.Doctor, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoReadTimeout)
	defer cancel()

	var doctors []*model.Doctor
	err := mongodb.WithReadRetry(ctx, func() error {
		cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)

		doctors = nil
		return cursor.All(ctx, &doctors)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find doctors: %w", err)
	}

	return doctors, nil
}

func (r *mongoDoctorRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoWriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", doctorserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	if result.DeletedCount == 0 {
		return doctorserrors.ErrNotFound
	}

	return nil
}
