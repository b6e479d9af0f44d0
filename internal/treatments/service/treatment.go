package service

import (
	"context"
	"sync"

	"docportal/internal/treatments/repository"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
)

// BookingFinder is the slice of the bookings repository this service needs:
// the reserved slots for a given appointment date.
type BookingFinder interface {
	FindByDate(ctx context.Context, date string) ([]*model.Booking, error)
}

type TreatmentService interface {
	ListForDate(ctx context.Context, date string) ([]*model.Treatment, error)
	ListSpecialties(ctx context.Context) ([]*model.TreatmentName, error)
}

type treatmentService struct {
	repo     repository.TreatmentRepository
	bookings BookingFinder
	cfg      *config.Config
}

func NewTreatmentService(
	repo repository.TreatmentRepository,
	bookings BookingFinder,
	cfg *config.Config,
) TreatmentService {
	return &treatmentService{
		repo:     repo,
		bookings: bookings,
		cfg:      cfg,
	}
}

// ListForDate returns the treatment catalog with each treatment's slots
// reduced to the ones still bookable on date. The two reads run concurrently
// and are not snapshot-isolated: a booking committed in between may or may
// not be reflected, so the result is a best-effort view, not a reservation.
func (s *treatmentService) ListForDate(ctx context.Context, date string) ([]*model.Treatment, error) {
	if date == "" {
		return nil, apperrors.InvalidInput("date query parameter is required")
	}

	var treatments []*model.Treatment
	var booked []*model.Booking
	var errTreatments, errBookings error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		treatments, errTreatments = s.repo.FindAll(ctx)
		if errTreatments != nil {
			s.cfg.Log.Error("Failed to list treatments", "error", errTreatments)
			errTreatments = apperrors.Internal("Failed to retrieve treatments", errTreatments)
		}
	}()

	go func() {
		defer wg.Done()
		booked, errBookings = s.bookings.FindByDate(ctx, date)
		if errBookings != nil {
			s.cfg.Log.Error("Failed to list bookings for date", "date", date, "error", errBookings)
			errBookings = apperrors.Internal("Failed to retrieve bookings", errBookings)
		}
	}()

	wg.Wait()
	if errTreatments != nil {
		return nil, errTreatments
	}
	if errBookings != nil {
		return nil, errBookings
	}

	return ComputeAvailability(date, treatments, booked), nil
}

func (s *treatmentService) ListSpecialties(ctx context.Context) ([]*model.TreatmentName, error) {
	names, err := s.repo.FindNames(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list treatment specialties", "error", err)
		return nil, apperrors.Internal("Failed to retrieve treatment specialties", err)
	}
	return names, nil
}

// ComputeAvailability subtracts already-reserved slots from each treatment's
// slot catalog. Pure: inputs are not mutated and the result depends only on
// the arguments. Bookings are matched by exact appointmentDate equality, then
// by treatment name; surviving slots keep their original relative order.
func ComputeAvailability(date string, treatments []*model.Treatment, bookings []*model.Booking) []*model.Treatment {
	reserved := make(map[string]map[string]struct{})
	for _, b := range bookings {
		if b.AppointmentDate != date {
			continue
		}
		slots, ok := reserved[b.Treatment]
		if !ok {
			slots = make(map[string]struct{})
			reserved[b.Treatment] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	out := make([]*model.Treatment, 0, len(treatments))
	for _, t := range treatments {
		filtered := *t
		if taken, ok := reserved[t.Name]; ok && len(taken) > 0 {
			remaining := make([]string, 0, len(t.Slots))
			for _, slot := range t.Slots {
				if _, booked := taken[slot]; !booked {
					remaining = append(remaining, slot)
				}
			}
			filtered.Slots = remaining
		}
		out = append(out, &filtered)
	}

	return out
}
