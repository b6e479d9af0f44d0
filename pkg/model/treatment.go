package model

// Treatment is a bookable service offering. Name is the display key that
// bookings reference; Slots is the ordered catalog of time-slot labels.
type Treatment struct {
	ID    string   `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name  string   `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Slots []string `json:"slots" bson:"slots" validate:"required,min=1,dive,required"`
	Price float64  `json:"price" bson:"price" validate:"gte=0"`
}

// TreatmentName is the projection used by the specialties listing.
type TreatmentName struct {
	Name string `json:"name" bson:"name"`
}
