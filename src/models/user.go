package models

import "hbs/src/types"

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `json:"name,omitempty"`
	Email        string         `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string         `json:"-"`
	Role         types.UserRole `gorm:"default:'guest'" json:"role,omitempty"`

	Bookings []*Booking `json:"bookings,omitempty"`

	types.Timestamps
}
