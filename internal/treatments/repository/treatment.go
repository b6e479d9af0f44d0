package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"docportal/pkg/config"
	mongodb "docportal/pkg/db/mongo"
	"docportal/pkg/model"
)

const (
	CollectionName = "treatments"
)

type TreatmentRepository interface {
	FindAll(ctx context.Context) ([]*model.Treatment, error)
	FindNames(ctx context.Context) ([]*model.TreatmentName, error)
}

type mongoTreatmentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTreatmentRepository(cfg *config.Config) TreatmentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTreatmentRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoTreatmentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoTreatmentRepository) FindAll(ctx context.Context) ([]*model.Treatment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoReadTimeout)
	defer cancel()

	var treatments []*model.Treatment
	err := mongodb.WithReadRetry(ctx, func() error {
		cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)

		treatments = nil
		return cursor.All(ctx, &treatments)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find treatments: %w", err)
	}

	return treatments, nil
}

func (r *mongoTreatmentRepository) FindNames(ctx context.Context) ([]*model.TreatmentName, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoReadTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"name": 1, "_id": 0}).
		SetSort(bson.D{{Key: "name", Value: 1}})

	var names []*model.TreatmentName
	err := mongodb.WithReadRetry(ctx, func() error {
		cursor, err := r.collection.Find(ctx, bson.M{}, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)

		names = nil
		return cursor.All(ctx, &names)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find treatment names: %w", err)
	}

	return names, nil
}
