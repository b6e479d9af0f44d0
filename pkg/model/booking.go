package model

import (
	"time"
)

// Booking reserves one slot of one treatment for one user on one date.
// AppointmentDate is compared by exact string equality everywhere; callers
// must use the same representation they booked with.
type Booking struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Treatment       string    `json:"treatment" bson:"treatment" validate:"required,min=2,max=100"`
	AppointmentDate string    `json:"appointmentDate" bson:"appointmentDate" validate:"required,min=4,max=40"`
	Email           string    `json:"email" bson:"email" validate:"required,email"`
	Slot            string    `json:"slot" bson:"slot" validate:"required,slot_label"`
	PatientName     string    `json:"patientName,omitempty" bson:"patientName,omitempty" validate:"omitempty,max=100"`
	Price           float64   `json:"price,omitempty" bson:"price,omitempty" validate:"gte=0"`
	Paid            bool      `json:"paid" bson:"paid"`
	TransactionID   string    `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty" bson:"created_at,omitempty" validate:"omitempty"`
}

// BookingResult is the wire shape of a create-booking response. Conflicts are
// not hard errors: Acknowledged=false carries a human-readable reason.
type BookingResult struct {
	Acknowledged bool     `json:"acknowledged"`
	Message      string   `json:"message,omitempty"`
	Booking      *Booking `json:"booking,omitempty"`
}
