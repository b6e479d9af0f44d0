package service

import (
	"context"
	"errors"

	govalidator "github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "docportal/internal/bookings/errors"
	"docportal/internal/payments/repository"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/events"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

// IntentCreator mints provider payment intents. Satisfied by the Stripe
// client.
type IntentCreator interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
}

// BookingSettler is the slice of the bookings repository settlement needs.
type BookingSettler interface {
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	MarkPaid(ctx context.Context, id string, transactionID string) error
}

type PaymentService interface {
	CreateIntent(ctx context.Context, req *model.PaymentIntentRequest) (*model.PaymentIntent, error)
	Record(ctx context.Context, payment *model.Payment) error
}

type paymentService struct {
	repo      repository.PaymentRepository
	bookings  BookingSettler
	intents   IntentCreator
	publisher events.Publisher
	validate  *govalidator.Validate
	cfg       *config.Config
}

func NewPaymentService(
	repo repository.PaymentRepository,
	bookings BookingSettler,
	intents IntentCreator,
	publisher events.Publisher,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		repo:      repo,
		bookings:  bookings,
		intents:   intents,
		publisher: publisher,
		validate:  govalidator.New(),
		cfg:       cfg,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, req *model.PaymentIntentRequest) (*model.PaymentIntent, error) {
	if req.Price <= 0 {
		return nil, apperrors.InvalidInput("price must be positive")
	}

	secret, err := s.intents.CreateIntent(ctx, req.Price)
	if err != nil {
		s.cfg.Log.Error("Failed to create payment intent", "price", req.Price, "error", err)
		return nil, apperrors.Unavailable("Payment provider")
	}

	return &model.PaymentIntent{ClientSecret: secret}, nil
}

// Record stores the settled payment and marks the booking paid in one
// transaction: either both land or neither does.
func (s *paymentService) Record(ctx context.Context, payment *model.Payment) error {
	payment.Email = sanitizer.NormalizeEmail(payment.Email)
	if err := s.validate.Struct(payment); err != nil {
		s.cfg.Log.Warn("Payment validation failed", "error", err)
		return apperrors.Validation("Payment validation failed", map[string]any{"error": err.Error()})
	}

	booking, err := s.bookings.FindByID(ctx, payment.BookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", payment.BookingID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to retrieve booking", err)
	}
	if booking.Paid {
		return apperrors.Conflict("Booking is already paid")
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Insert(sessCtx, payment); err != nil {
			return apperrors.Internal("Failed to record payment", err)
		}
		if err := s.bookings.MarkPaid(sessCtx, payment.BookingID, payment.TransactionID); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", payment.BookingID)
			}
			return apperrors.Internal("Failed to settle booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to settle payment", "booking_id", payment.BookingID, "error", err)
		return err
	}

	s.cfg.Log.Info("Payment settled successfully",
		"id", payment.ID,
		"booking_id", payment.BookingID,
		"transaction_id", payment.TransactionID,
	)

	s.publishSettled(ctx, payment)
	return nil
}

// publishSettled emits payment.settled. Best-effort: the settlement already
// committed.
func (s *paymentService) publishSettled(ctx context.Context, payment *model.Payment) {
	event, err := events.NewEvent(events.TypePaymentSettled, payment.BookingID, events.PaymentSettled{
		BookingID:     payment.BookingID,
		TransactionID: payment.TransactionID,
		Email:         payment.Email,
		Price:         payment.Price,
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to build payment.settled event", "booking_id", payment.BookingID, "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish payment.settled event", "booking_id", payment.BookingID, "error", err)
	}
}
