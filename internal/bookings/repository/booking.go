package repository

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

	bookingserrors "docportal/internal/bookings/errors"
	"docportal/pkg/config"
	mongodb "docportal/pkg/db/mongo"
	"docportal/pkg/model"
)

const (
	CollectionName = "bookings"

	// Unique index names; duplicate-key errors are classified by which index
	// rejected the write.
	IndexOwnerDateTreatment = "uniq_owner_date_treatment"
	IndexTreatmentDateSlot  = "uniq_treatment_date_slot"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]*model.Booking, error)
	FindByDate(ctx context.Context, date string) ([]*model.Booking, error)
	MarkPaid(ctx context.Context, id string, transactionID string) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction: a SessionContext cannot be wrapped without breaking
// transaction semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// Create inserts the booking. Conflicts are enforced by the collection's
// unique indexes, not by a pre-read, so concurrent requests for the same slot
// race at the storage layer and exactly one wins.
func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoWriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if conflictErr := classifyDuplicate(err); conflictErr != nil {
			return conflictErr
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

// classifyDuplicate maps a duplicate-key rejection onto a sentinel error by
// the index that fired. Returns nil for anything else.
func classifyDuplicate(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return nil
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, writeErr := range we.WriteErrors {
			if strings.Contains(writeErr.Message, IndexTreatmentDateSlot) {
				return bookingserrors.ErrSlotTaken
			}
			if strings.Contains(writeErr.Message, IndexOwnerDateTreatment) {
				return bookingserrors.ErrDuplicateBooking
			}
		}
	}

	return bookingserrors.ErrDuplicateBooking
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *mongoBookingRepository) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"appointmentDate": date})
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "appointmentDate", Value: 1},
		{Key: "created_at", Value: 1},
	})

	var bookings []*model.Booking
	err := mongodb.WithReadRetry(ctx, func() error {
		cursor, err := r.collection.Find(ctx, filter, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)

		bookings = nil
		return cursor.All(ctx, &bookings)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}

	return bookings, nil
}

// MarkPaid sets paid and records the settlement transaction ID. Runs inside
// the settlement transaction when called with a SessionContext.
func (r *mongoBookingRepository) MarkPaid(ctx context.Context, id string, transactionID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoWriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"paid":          true,
			"transactionId": transactionID,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to mark booking paid: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}
