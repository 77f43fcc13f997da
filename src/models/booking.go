package models

import (
	"time"

	"hbs/src/types"
)

// Booking reserves one unit of a Room for a half-open
// [check_in, check_out) window. Only confirmed bookings count
// against room capacity.
type Booking struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	ReferenceCode string              `json:"reference_code,omitempty"`
	UserID        uint                `json:"user_id,omitempty"`
	RoomID        uint                `json:"room_id,omitempty"`
	GuestName     string              `json:"guest_name,omitempty"`
	GuestEmail    string              `json:"guest_email,omitempty"`
	GuestPhone    string              `json:"guest_phone,omitempty"`
	GuestCountry  string              `json:"guest_country,omitempty"`
	CheckIn       time.Time           `json:"check_in,omitempty"`
	CheckOut      time.Time           `json:"check_out,omitempty"`
	Guests        int                 `json:"guests,omitempty"`
	Nights        int                 `json:"nights,omitempty"`
	Amount        float64             `json:"amount,omitempty"`
	Currency      string              `json:"currency,omitempty"`
	PaymentIntent string              `json:"payment_intent,omitempty"`
	PaymentStatus string              `json:"payment_status,omitempty"`
	Status        types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`

	Room *Room `gorm:"foreignKey:room_id" json:"room,omitempty"`
	User *User `gorm:"foreignKey:user_id" json:"user,omitempty"`

	types.Timestamps
}
