package service

import (
	"context"
	"errors"
	"fmt"

	govalidator "github.com/go-playground/validator/v10"

	doctorserrors "docportal/internal/doctors/errors"
	"docportal/internal/doctors/repository"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

// SpecialtyCatalog is the slice of the treatments repository this service
// needs: the set of valid specialty names.
type SpecialtyCatalog interface {
	FindNames(ctx context.Context) ([]*model.TreatmentName, error)
}

type DoctorService interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	List(ctx context.Context) ([]*model.Doctor, error)
	Delete(ctx context.Context, id string) error
}

type doctorService struct {
	repo        repository.DoctorRepository
	specialties SpecialtyCatalog
	validate    *govalidator.Validate
	cfg         *config.Config
}

func NewDoctorService(repo repository.DoctorRepository, specialties SpecialtyCatalog, cfg *config.Config) DoctorService {
	return &doctorService{
		repo:        repo,
		specialties: specialties,
		validate:    govalidator.New(),
		cfg:         cfg,
	}
}

// Create registers a doctor. The specialty must name an existing treatment so
// the public directory never advertises services the clinic does not offer.
func (s *doctorService) Create(ctx context.Context, doctor *model.Doctor) error {
	doctor.Name = sanitizer.NormalizeName(doctor.Name)
	doctor.Email = sanitizer.NormalizeEmail(doctor.Email)
	doctor.Specialty = sanitizer.TrimAndNormalize(doctor.Specialty)

	if err := s.validate.Struct(doctor); err != nil {
		s.cfg.Log.Warn("Doctor validation failed", "error", err)
		return apperrors.Validation("Doctor validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.verifySpecialty(ctx, doctor.Specialty); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, doctor); err != nil {
		if errors.Is(err, doctorserrors.ErrDuplicateEmail) {
			return apperrors.Conflict("Doctor with this email already exists")
		}
		s.cfg.Log.Error("Failed to create doctor", "error", err)
		return apperrors.Internal("Failed to create doctor", err)
	}

	s.cfg.Log.Info("Doctor created successfully",
		"id", doctor.ID,
		"specialty", doctor.Specialty,
	)
	return nil
}

func (s *doctorService) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list doctors", "error", err)
		return nil, apperrors.Internal("Failed to retrieve doctors", err)
	}
	return doctors, nil
}

func (s *doctorService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Doctor ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, doctorserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Doctor", id)
		}
		if errors.Is(err, doctorserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid doctor ID format")
		}
		s.cfg.Log.Error("Failed to delete doctor", "id", id, "error", err)
		return apperrors.Internal("Failed to delete doctor", err)
	}

	s.cfg.Log.Info("Doctor deleted successfully", "id", id)
	return nil
}

func (s *doctorService) verifySpecialty(ctx context.Context, specialty string) error {
	names, err := s.specialties.FindNames(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load specialty catalog", "error", err)
		return apperrors.Internal("Failed to verify specialty", err)
	}

	want := sanitizer.NormalizeNameForComparison(specialty)
	for _, name := range names {
		if sanitizer.NormalizeNameForComparison(name.Name) == want {
			return nil
		}
	}

	return apperrors.Validation(
		fmt.Sprintf("Specialty %q does not match any offered treatment", specialty),
		map[string]any{"specialty": specialty},
	)
}
