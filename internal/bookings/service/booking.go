package service

import (
	"context"
	"errors"
	"fmt"

	bookingserrors "docportal/internal/bookings/errors"
	"docportal/internal/bookings/repository"
	"docportal/internal/bookings/validator"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/events"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*model.BookingResult, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByEmail(ctx context.Context, email string, requester string) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create accepts or declines a booking. Conflicts with existing bookings are
// not errors: the returned result carries Acknowledged=false and a reason the
// caller can show verbatim.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.BookingResult, error) {
	s.sanitize(booking)
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	booking.Paid = false
	booking.TransactionID = ""

	err := s.repo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicateBooking) {
			return &model.BookingResult{
				Acknowledged: false,
				Message:      fmt.Sprintf("You already have a booking on %s", booking.AppointmentDate),
			}, nil
		}
		if errors.Is(err, bookingserrors.ErrSlotTaken) {
			return &model.BookingResult{
				Acknowledged: false,
				Message:      fmt.Sprintf("The %s slot on %s is no longer available", booking.Slot, booking.AppointmentDate),
			}, nil
		}
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"treatment", booking.Treatment,
		"appointment_date", booking.AppointmentDate,
		"slot", booking.Slot,
	)

	s.publishCreated(ctx, booking)

	return &model.BookingResult{
		Acknowledged: true,
		Booking:      booking,
	}, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

// ListByEmail returns the bookings owned by email. The requester is the
// verified identity of the caller; asking for someone else's bookings is
// forbidden regardless of credential validity.
func (s *bookingService) ListByEmail(ctx context.Context, email string, requester string) ([]*model.Booking, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("email query parameter is required")
	}
	if sanitizer.NormalizeEmail(email) != sanitizer.NormalizeEmail(requester) {
		return nil, apperrors.Forbidden("forbidden access")
	}

	bookings, err := s.repo.FindByEmail(ctx, sanitizer.NormalizeEmail(email))
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by email", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.Treatment = sanitizer.TrimAndNormalize(b.Treatment)
	b.AppointmentDate = sanitizer.TrimAndNormalize(b.AppointmentDate)
	b.Slot = sanitizer.TrimAndNormalize(b.Slot)
	b.Email = sanitizer.NormalizeEmail(b.Email)
	b.PatientName = sanitizer.NormalizeName(b.PatientName)
}

// publishCreated emits booking.created. Delivery is best-effort: a publish
// failure is logged and the booking stands.
func (s *bookingService) publishCreated(ctx context.Context, booking *model.Booking) {
	event, err := events.NewEvent(events.TypeBookingCreated, booking.ID, events.BookingCreated{
		BookingID:       booking.ID,
		Treatment:       booking.Treatment,
		AppointmentDate: booking.AppointmentDate,
		Email:           booking.Email,
		Slot:            booking.Slot,
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to build booking.created event", "id", booking.ID, "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking.created event", "id", booking.ID, "error", err)
	}
}
