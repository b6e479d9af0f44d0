package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	bookingserrors "docportal/internal/bookings/errors"
	"docportal/internal/bookings/validator"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/events"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockBookingRepository struct {
	createFunc      func(ctx context.Context, booking *model.Booking) error
	findByIDFunc    func(ctx context.Context, id string) (*model.Booking, error)
	findByEmailFunc func(ctx context.Context, email string) ([]*model.Booking, error)
	findByDateFunc  func(ctx context.Context, date string) ([]*model.Booking, error)
	markPaidFunc    func(ctx context.Context, id string, transactionID string) error
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "65f000000000000000000001"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	if m.findByDateFunc != nil {
		return m.findByDateFunc(ctx, date)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) MarkPaid(ctx context.Context, id string, transactionID string) error {
	if m.markPaidFunc != nil {
		return m.markPaidFunc(ctx, id, transactionID)
	}
	return nil
}

type capturingPublisher struct {
	events []events.Event
	err    error
}

func (p *capturingPublisher) Publish(_ context.Context, event events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newService(repo *mockBookingRepository, pub events.Publisher) BookingService {
	cfg := testConfig()
	return NewBookingService(repo, validator.NewBookingValidator(cfg.Log), pub, cfg)
}

func validBooking() *model.Booking {
	return &model.Booking{
		Treatment:       "Cavity Filling",
		AppointmentDate: "2024-01-05",
		Email:           "patient@example.com",
		Slot:            "10AM",
		PatientName:     "Jane Roe",
		Price:           120,
	}
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_Accepted(t *testing.T) {
	pub := &capturingPublisher{}
	svc := newService(&mockBookingRepository{}, pub)

	result, err := svc.Create(context.Background(), validBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Acknowledged {
		t.Errorf("expected acknowledged result, got message %q", result.Message)
	}
	if result.Booking == nil || result.Booking.ID == "" {
		t.Error("accepted result must carry the stored booking with its ID")
	}
	if len(pub.events) != 1 || pub.events[0].Type != events.TypeBookingCreated {
		t.Errorf("expected one booking.created event, got %v", pub.events)
	}
}

func TestCreate_DuplicateForOwner(t *testing.T) {
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			return bookingserrors.ErrDuplicateBooking
		},
	}
	pub := &capturingPublisher{}
	svc := newService(repo, pub)

	result, err := svc.Create(context.Background(), validBooking())
	if err != nil {
		t.Fatalf("a declined booking is not an error, got: %v", err)
	}
	if result.Acknowledged {
		t.Fatal("expected acknowledged=false")
	}
	want := "You already have a booking on 2024-01-05"
	if result.Message != want {
		t.Errorf("message = %q, want %q", result.Message, want)
	}
	if len(pub.events) != 0 {
		t.Error("declined booking must not publish an event")
	}
}

func TestCreate_SlotTaken(t *testing.T) {
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			return bookingserrors.ErrSlotTaken
		},
	}
	svc := newService(repo, &capturingPublisher{})

	result, err := svc.Create(context.Background(), validBooking())
	if err != nil {
		t.Fatalf("a declined booking is not an error, got: %v", err)
	}
	if result.Acknowledged {
		t.Fatal("expected acknowledged=false")
	}
	if !strings.Contains(result.Message, "10AM") || !strings.Contains(result.Message, "2024-01-05") {
		t.Errorf("message %q should name the slot and date", result.Message)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := newService(&mockBookingRepository{}, &capturingPublisher{})

	booking := validBooking()
	booking.Email = "not-an-email"

	_, err := svc.Create(context.Background(), booking)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeValidation)
	}
}

func TestCreate_NormalizesInput(t *testing.T) {
	var stored *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			stored = booking
			return nil
		},
	}
	svc := newService(repo, &capturingPublisher{})

	booking := validBooking()
	booking.Email = "  Patient@Example.COM "
	booking.Treatment = "  Cavity   Filling "

	if _, err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Email != "patient@example.com" {
		t.Errorf("email not normalized: %q", stored.Email)
	}
	if stored.Treatment != "Cavity Filling" {
		t.Errorf("treatment not normalized: %q", stored.Treatment)
	}
}

func TestCreate_IgnoresClientPaidFlags(t *testing.T) {
	var stored *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			stored = booking
			return nil
		},
	}
	svc := newService(repo, &capturingPublisher{})

	booking := validBooking()
	booking.Paid = true
	booking.TransactionID = "txn_forged"

	if _, err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Paid || stored.TransactionID != "" {
		t.Error("client-supplied settlement fields must be cleared on create")
	}
}

func TestCreate_PublishFailureDoesNotFailBooking(t *testing.T) {
	svc := newService(&mockBookingRepository{}, &capturingPublisher{err: errors.New("broker down")})

	result, err := svc.Create(context.Background(), validBooking())
	if err != nil {
		t.Fatalf("publish failure must not fail the booking, got: %v", err)
	}
	if !result.Acknowledged {
		t.Error("expected acknowledged result")
	}
}

// ────────────────────────────────────────────────
// Reads
// ────────────────────────────────────────────────

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(&mockBookingRepository{}, &capturingPublisher{})

	_, err := svc.GetByID(context.Background(), "65f000000000000000000099")
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeNotFound)
	}
}

func TestGetByID_InvalidID(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, bookingserrors.ErrInvalidID
		},
	}
	svc := newService(repo, &capturingPublisher{})

	_, err := svc.GetByID(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeInvalidInput)
	}
}

func TestListByEmail_OwnerOnly(t *testing.T) {
	repo := &mockBookingRepository{
		findByEmailFunc: func(ctx context.Context, email string) ([]*model.Booking, error) {
			return []*model.Booking{{Email: email}}, nil
		},
	}
	svc := newService(repo, &capturingPublisher{})

	// Same identity, case-insensitive.
	bookings, err := svc.ListByEmail(context.Background(), "Patient@Example.com", "patient@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 1 {
		t.Errorf("expected 1 booking, got %d", len(bookings))
	}

	// Different identity.
	_, err = svc.ListByEmail(context.Background(), "victim@example.com", "attacker@example.com")
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeForbidden {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeForbidden)
	}
}

func TestListByEmail_EmptyEmail(t *testing.T) {
	svc := newService(&mockBookingRepository{}, &capturingPublisher{})

	_, err := svc.ListByEmail(context.Background(), "", "patient@example.com")
	if err == nil {
		t.Fatal("expected error for empty email")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeInvalidInput)
	}
}
