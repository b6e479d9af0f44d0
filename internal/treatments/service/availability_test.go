package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockTreatmentRepository struct {
	findAllFunc   func(ctx context.Context) ([]*model.Treatment, error)
	findNamesFunc func(ctx context.Context) ([]*model.TreatmentName, error)
}

func (m *mockTreatmentRepository) FindAll(ctx context.Context) ([]*model.Treatment, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Treatment{}, nil
}

func (m *mockTreatmentRepository) FindNames(ctx context.Context) ([]*model.TreatmentName, error) {
	if m.findNamesFunc != nil {
		return m.findNamesFunc(ctx)
	}
	return []*model.TreatmentName{}, nil
}

type mockBookingFinder struct {
	findByDateFunc func(ctx context.Context, date string) ([]*model.Booking, error)
}

func (m *mockBookingFinder) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	if m.findByDateFunc != nil {
		return m.findByDateFunc(ctx, date)
	}
	return []*model.Booking{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func cavityFilling() *model.Treatment {
	return &model.Treatment{
		Name:  "Cavity Filling",
		Slots: []string{"9AM", "10AM", "11AM"},
		Price: 120,
	}
}

// ────────────────────────────────────────────────
// ComputeAvailability
// ────────────────────────────────────────────────

func TestComputeAvailability_RemovesBookedSlot(t *testing.T) {
	treatments := []*model.Treatment{cavityFilling()}
	bookings := []*model.Booking{
		{Treatment: "Cavity Filling", AppointmentDate: "2024-01-05", Slot: "10AM"},
	}

	got := ComputeAvailability("2024-01-05", treatments, bookings)

	if len(got) != 1 {
		t.Fatalf("expected 1 treatment, got %d", len(got))
	}
	want := []string{"9AM", "11AM"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Errorf("slots = %v, want %v", got[0].Slots, want)
	}
}

func TestComputeAvailability_NeverReturnsReservedSlots(t *testing.T) {
	treatments := []*model.Treatment{cavityFilling()}
	bookings := []*model.Booking{
		{Treatment: "Cavity Filling", AppointmentDate: "2024-01-05", Slot: "9AM"},
		{Treatment: "Cavity Filling", AppointmentDate: "2024-01-05", Slot: "10AM"},
		{Treatment: "Cavity Filling", AppointmentDate: "2024-01-05", Slot: "11AM"},
	}

	got := ComputeAvailability("2024-01-05", treatments, bookings)

	if len(got[0].Slots) != 0 {
		t.Errorf("fully booked treatment should have no slots, got %v", got[0].Slots)
	}
}

func TestComputeAvailability_OtherDateIgnored(t *testing.T) {
	treatments := []*model.Treatment{cavityFilling()}
	bookings := []*model.Booking{
		{Treatment: "Cavity Filling", AppointmentDate: "2024-01-06", Slot: "10AM"},
	}

	got := ComputeAvailability("2024-01-05", treatments, bookings)

	want := []string{"9AM", "10AM", "11AM"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Errorf("bookings on another date must not reduce slots, got %v", got[0].Slots)
	}
}

func TestComputeAvailability_OtherTreatmentIgnored(t *testing.T) {
	treatments := []*model.Treatment{cavityFilling()}
	bookings := []*model.Booking{
		{Treatment: "Teeth Cleaning", AppointmentDate: "2024-01-05", Slot: "10AM"},
	}

	got := ComputeAvailability("2024-01-05", treatments, bookings)

	want := []string{"9AM", "10AM", "11AM"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Errorf("bookings of another treatment must not reduce slots, got %v", got[0].Slots)
	}
}

func TestComputeAvailability_PreservesOrder(t *testing.T) {
	treatments := []*model.Treatment{
		{
			Name:  "Teeth Whitening",
			Slots: []string{"8AM", "9AM", "10AM", "2PM", "3PM"},
		},
	}
	bookings := []*model.Booking{
		{Treatment: "Teeth Whitening", AppointmentDate: "2024-01-05", Slot: "9AM"},
		{Treatment: "Teeth Whitening", AppointmentDate: "2024-01-05", Slot: "2PM"},
	}

	got := ComputeAvailability("2024-01-05", treatments, bookings)

	want := []string{"8AM", "10AM", "3PM"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Errorf("slots = %v, want %v (original relative order)", got[0].Slots, want)
	}
}

func TestComputeAvailability_PureAndIdempotent(t *testing.T) {
	treatments := []*model.Treatment{cavityFilling()}
	bookings := []*model.Booking{
		{Treatment: "Cavity Filling", AppointmentDate: "2024-01-05", Slot: "10AM"},
	}

	first := ComputeAvailability("2024-01-05", treatments, bookings)
	second := ComputeAvailability("2024-01-05", treatments, bookings)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield identical output")
	}

	// Inputs must not be mutated.
	want := []string{"9AM", "10AM", "11AM"}
	if !reflect.DeepEqual(treatments[0].Slots, want) {
		t.Errorf("input treatment mutated: slots = %v, want %v", treatments[0].Slots, want)
	}
}

func TestComputeAvailability_EmptyDateMatchesEmptyDateBookingsOnly(t *testing.T) {
	treatments := []*model.Treatment{cavityFilling()}
	bookings := []*model.Booking{
		{Treatment: "Cavity Filling", AppointmentDate: "", Slot: "9AM"},
		{Treatment: "Cavity Filling", AppointmentDate: "2024-01-05", Slot: "10AM"},
	}

	got := ComputeAvailability("", treatments, bookings)

	want := []string{"10AM", "11AM"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Errorf("empty date must match only empty-dated bookings, got %v", got[0].Slots)
	}
}

// ────────────────────────────────────────────────
// ListForDate
// ────────────────────────────────────────────────

func TestListForDate_FiltersBookedSlots(t *testing.T) {
	repo := &mockTreatmentRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Treatment, error) {
			return []*model.Treatment{cavityFilling()}, nil
		},
	}
	bookings := &mockBookingFinder{
		findByDateFunc: func(ctx context.Context, date string) ([]*model.Booking, error) {
			return []*model.Booking{
				{Treatment: "Cavity Filling", AppointmentDate: date, Slot: "10AM"},
			}, nil
		},
	}

	svc := NewTreatmentService(repo, bookings, testConfig())

	got, err := svc.ListForDate(context.Background(), "2024-01-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"9AM", "11AM"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Errorf("slots = %v, want %v", got[0].Slots, want)
	}
}

func TestListForDate_EmptyDateRejected(t *testing.T) {
	svc := NewTreatmentService(&mockTreatmentRepository{}, &mockBookingFinder{}, testConfig())

	_, err := svc.ListForDate(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for empty date")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeInvalidInput)
	}
}

func TestListForDate_RepositoryFailure(t *testing.T) {
	repo := &mockTreatmentRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Treatment, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := NewTreatmentService(repo, &mockBookingFinder{}, testConfig())

	_, err := svc.ListForDate(context.Background(), "2024-01-05")
	if err == nil {
		t.Fatal("expected error when the catalog read fails")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInternal {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeInternal)
	}
}

func TestListSpecialties(t *testing.T) {
	repo := &mockTreatmentRepository{
		findNamesFunc: func(ctx context.Context) ([]*model.TreatmentName, error) {
			return []*model.TreatmentName{{Name: "Cavity Filling"}, {Name: "Teeth Cleaning"}}, nil
		},
	}
	svc := NewTreatmentService(repo, &mockBookingFinder{}, testConfig())

	names, err := svc.ListSpecialties(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("expected 2 names, got %d", len(names))
	}
}
