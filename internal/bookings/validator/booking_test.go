package validator

import (
	"strings"
	"testing"

	"docportal/pkg/logger"
	"docportal/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func validBooking() *model.Booking {
	return &model.Booking{
		Treatment:       "Cavity Filling",
		AppointmentDate: "2024-01-05",
		Email:           "patient@example.com",
		Slot:            "10.00 AM - 10.30 AM",
		PatientName:     "Jane Roe",
		Price:           120,
	}
}

func TestValidate_ValidBooking(t *testing.T) {
	v := newTestValidator()

	if err := v.Validate(validBooking()); err != nil {
		t.Errorf("valid booking rejected: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name   string
		mutate func(*model.Booking)
		field  string
	}{
		{"missing treatment", func(b *model.Booking) { b.Treatment = "" }, "Treatment"},
		{"missing date", func(b *model.Booking) { b.AppointmentDate = "" }, "AppointmentDate"},
		{"missing email", func(b *model.Booking) { b.Email = "" }, "Email"},
		{"missing slot", func(b *model.Booking) { b.Slot = "" }, "Slot"},
		{"bad email", func(b *model.Booking) { b.Email = "not-an-email" }, "Email"},
		{"negative price", func(b *model.Booking) { b.Price = -1 }, "Price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := v.Validate(b)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention field %s", err.Error(), tt.field)
			}
		})
	}
}

func TestValidate_SlotLabels(t *testing.T) {
	v := newTestValidator()

	valid := []string{"9AM", "10AM", "8 PM", "10.00 AM - 10.30 AM", "8:00 PM", "11.00 AM-11.30 AM"}
	for _, slot := range valid {
		b := validBooking()
		b.Slot = slot
		if err := v.Validate(b); err != nil {
			t.Errorf("slot %q rejected: %v", slot, err)
		}
	}

	invalid := []string{"morning", "10", "AM", "25PM x", "10.00 AM -"}
	for _, slot := range invalid {
		b := validBooking()
		b.Slot = slot
		if err := v.Validate(b); err == nil {
			t.Errorf("slot %q accepted, want rejection", slot)
		}
	}
}
