package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELED  BookingStatus = "cancelled"
)

type UserRole string

const (
	ROLE_GUEST UserRole = "guest"
	ROLE_STAFF UserRole = "staff"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CustomerInfo struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Country string `json:"country,omitempty"`
}

type CreateRoomRequestBody struct {
	RoomType      string   `form:"roomType" binding:"required"`
	Beds          *int     `form:"beds" binding:"required"`
	Capacity      *int     `form:"capacity" binding:"required"`
	Price         *float64 `form:"price" binding:"required"`
	Description   string   `form:"description,omitempty"`
	TotalCapacity *int     `form:"totalCapacity,omitempty"`
}

type UpdateRoomRequestBody struct {
	RoomType      *string  `form:"roomType,omitempty"`
	Beds          *int     `form:"beds,omitempty"`
	Capacity      *int     `form:"capacity,omitempty"`
	Price         *float64 `form:"price,omitempty"`
	Description   *string  `form:"description,omitempty"`
	TotalCapacity *int     `form:"totalCapacity,omitempty"`
}

type CreatePaymentIntentRequestBody struct {
	Amount       float64      `json:"amount" binding:"required,gt=0"`
	RoomID       string       `json:"roomId" binding:"required"`
	CustomerInfo CustomerInfo `json:"customerInfo" binding:"required"`
	CheckIn      *string      `json:"checkIn,omitempty" binding:"omitempty,staydate"`
	CheckOut     *string      `json:"checkOut,omitempty" binding:"omitempty,staydate,gtdate=CheckIn"`
}

type ConfirmBookingRequestBody struct {
	PaymentIntentID string       `json:"paymentIntentId" binding:"required"`
	RoomID          string       `json:"roomId" binding:"required"`
	CheckIn         string       `json:"checkIn" binding:"required,staydate"`
	CheckOut        string       `json:"checkOut" binding:"required,staydate,gtdate=CheckIn"`
	Guests          int          `json:"guests" binding:"required,gt=0"`
	CustomerInfo    CustomerInfo `json:"customerInfo" binding:"required"`
	TotalAmount     float64      `json:"totalAmount" binding:"required,gt=0"`
	UserID          uint         `json:"userId" binding:"required"`
}

type RegisterUserRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ContactRequestBody struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message" binding:"required"`
}

type CreateFeedbackRequestBody struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type RoomListItem struct {
	ID             uint      `json:"id"`
	RoomType       string    `json:"room_type"`
	Slug           string    `json:"slug"`
	Beds           int       `json:"beds"`
	Capacity       int       `json:"capacity"`
	Price          float64   `json:"price"`
	Description    string    `json:"description,omitempty"`
	Images         []string  `json:"images"`
	TotalCapacity  int       `json:"total_capacity"`
	AvailableUnits int       `json:"available_units"`
	CreatedAt      time.Time `json:"created_at"`
}
