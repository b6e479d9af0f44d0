package model

import "time"

// Payment is the stored record of a settled transaction. Recording one also
// settles the referenced booking (paid=true, transactionId) in the same
// logical unit.
type Payment struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BookingID     string    `json:"bookingId" bson:"bookingId" validate:"required,mongodb"`
	Email         string    `json:"email" bson:"email" validate:"required,email"`
	Price         float64   `json:"price" bson:"price" validate:"gte=0"`
	TransactionID string    `json:"transactionId" bson:"transactionId" validate:"required"`
	CreatedAt     time.Time `json:"created_at,omitempty" bson:"created_at,omitempty" validate:"omitempty"`
}

// PaymentIntent is the response of the payment-intent operation: the opaque
// client-side handle minted by the payment provider.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentIntentRequest carries the price in major units, matching the
// booking's price field.
type PaymentIntentRequest struct {
	Price float64 `json:"price"`
}
