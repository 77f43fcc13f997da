package common

import (
	"context"
	"errors"
	"time"

	"hbs/src/models"
	"hbs/src/types"

	"gorm.io/gorm"
)

// Ledger is the durable store of Booking records. Deleting a record
// is the sole cancellation mechanism; a deleted booking no longer
// counts against capacity.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) Insert(ctx context.Context, booking *models.Booking) error {
	if booking.RoomID == 0 || booking.UserID == 0 {
		return NewValidationError("booking requires room and user references")
	}
	if booking.CheckIn.IsZero() || booking.CheckOut.IsZero() || !booking.CheckOut.After(booking.CheckIn) {
		return NewValidationError("booking requires a valid stay window")
	}
	if booking.Guests < 1 || booking.Nights < 1 {
		return NewValidationError("booking requires guest and night counts")
	}
	if booking.GuestName == "" || booking.GuestEmail == "" {
		return NewValidationError("booking requires guest contact details")
	}
	if booking.PaymentIntent == "" || booking.Amount <= 0 {
		return NewValidationError("booking requires a payment reference and amount")
	}
	if err := l.db.WithContext(ctx).Create(booking).Error; err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

func (l *Ledger) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := l.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Preload("Room").
		First(&booking).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Err: err}
	}
	return &booking, nil
}

func (l *Ledger) FindByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := l.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(&models.Booking{UserID: userID}).
		Preload("Room").
		Order("created_at DESC").
		Find(&bookings).
		Error; err != nil {
		return nil, &StorageError{Err: err}
	}
	return bookings, nil
}

func (l *Ledger) FindAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := l.db.WithContext(ctx).
		Model(&models.Booking{}).
		Preload("Room").
		Order("created_at DESC").
		Find(&bookings).
		Error; err != nil {
		return nil, &StorageError{Err: err}
	}
	return bookings, nil
}

func (l *Ledger) Delete(ctx context.Context, id uint) error {
	booking, err := l.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := l.db.WithContext(ctx).Delete(&models.Booking{}, booking.ID).Error; err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

// CountOverlapping counts confirmed bookings whose stay overlaps the
// half-open window [checkIn, checkOut). Touching dates, e.g. one
// stay's checkout equal to another's check-in, do not overlap.
func (l *Ledger) CountOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (int, error) {
	var count int64
	if err := l.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status = ?", types.BOOKING_CONFIRMED).
		Where("check_in < ?", checkOut).
		Where("check_out > ?", checkIn).
		Count(&count).
		Error; err != nil {
		return 0, &StorageError{Err: err}
	}
	return int(count), nil
}
