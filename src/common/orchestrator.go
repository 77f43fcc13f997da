package common

import (
	"context"
	"time"

	"hbs/src/models"
	"hbs/src/types"

	"github.com/google/uuid"
)

const PaymentStatusSucceeded = "succeeded"

const DefaultCurrency = "usd"

// PaymentIntent is the provider-side handle for a prospective stay.
// Until confirmation the pending stay exists only inside the
// provider; nothing is persisted locally.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

// PaymentProvider issues payment intents and reports their status.
// Minor-unit currency conversion is the provider's concern.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

type RoomSource interface {
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
}

type BookingStore interface {
	Insert(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
	Delete(ctx context.Context, id uint) error
}

type AvailabilityChecker interface {
	Remaining(ctx context.Context, room *models.Room, checkIn, checkOut *time.Time) (int, error)
}

// Orchestrator moves a prospective stay from quote to confirmed, or
// to cancelled. Provider calls are never retried internally: a
// failure propagates and the caller re-attempts the whole quote step.
type Orchestrator struct {
	rooms        RoomSource
	ledger       BookingStore
	availability AvailabilityChecker
	payments     PaymentProvider
	notify       func(booking *models.Booking)
}

func NewOrchestrator(rooms RoomSource, ledger BookingStore, availability AvailabilityChecker, payments PaymentProvider) *Orchestrator {
	return &Orchestrator{
		rooms:        rooms,
		ledger:       ledger,
		availability: availability,
		payments:     payments,
	}
}

// OnConfirm registers a hook run in its own goroutine after a booking
// is confirmed. Used for the confirmation email; failures there never
// fail the booking.
func (o *Orchestrator) OnConfirm(fn func(booking *models.Booking)) {
	o.notify = fn
}

// CreatePaymentIntent is the admission-control gate: when dates are
// supplied the availability check runs here, and nowhere else. No
// local state is written.
func (o *Orchestrator) CreatePaymentIntent(ctx context.Context, body *types.CreatePaymentIntentRequestBody) (*PaymentIntent, error) {
	roomID, err := ParseID(body.RoomID)
	if err != nil {
		return nil, err
	}
	room, err := o.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	checkIn, checkOut, err := parseWindow(body.CheckIn, body.CheckOut)
	if err != nil {
		return nil, err
	}
	if checkIn != nil && checkOut != nil {
		remaining, err := o.availability.Remaining(ctx, room, checkIn, checkOut)
		if err != nil {
			return nil, err
		}
		if remaining < 1 {
			return nil, ErrSoldOut
		}
	}

	metadata := map[string]string{
		"roomId":     body.RoomID,
		"guestEmail": body.CustomerInfo.Email,
	}
	if body.CheckIn != nil {
		metadata["checkIn"] = *body.CheckIn
	}
	if body.CheckOut != nil {
		metadata["checkOut"] = *body.CheckOut
	}
	intent, err := o.payments.CreateIntent(ctx, body.Amount, DefaultCurrency, metadata)
	if err != nil {
		return nil, &PaymentProviderError{Err: err}
	}
	return intent, nil
}

// ConfirmBooking trusts the provider, not the client: the intent must
// report succeeded before anything is written. The availability gate
// is not re-run here; the check happened at intent creation.
func (o *Orchestrator) ConfirmBooking(ctx context.Context, body *types.ConfirmBookingRequestBody) (*models.Booking, error) {
	roomID, err := ParseID(body.RoomID)
	if err != nil {
		return nil, err
	}
	checkIn, err := ParseDate(body.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := ParseDate(body.CheckOut)
	if err != nil {
		return nil, err
	}
	if !checkOut.After(checkIn) {
		return nil, NewValidationError("checkOut must be after checkIn")
	}

	intent, err := o.payments.RetrieveIntent(ctx, body.PaymentIntentID)
	if err != nil {
		return nil, &PaymentProviderError{Err: err}
	}
	if intent.Status != PaymentStatusSucceeded {
		return nil, ErrPaymentNotComplete
	}

	booking := &models.Booking{
		ReferenceCode: uuid.NewString(),
		UserID:        body.UserID,
		RoomID:        roomID,
		GuestName:     body.CustomerInfo.Name,
		GuestEmail:    body.CustomerInfo.Email,
		GuestPhone:    body.CustomerInfo.Phone,
		GuestCountry:  body.CustomerInfo.Country,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        body.Guests,
		Nights:        Nights(checkIn, checkOut),
		Amount:        body.TotalAmount,
		Currency:      DefaultCurrency,
		PaymentIntent: intent.ID,
		PaymentStatus: intent.Status,
		Status:        types.BOOKING_CONFIRMED,
	}
	if err := o.ledger.Insert(ctx, booking); err != nil {
		return nil, err
	}
	if o.notify != nil {
		go o.notify(booking)
	}
	return booking, nil
}

// CancelBooking deletes the ledger record outright; capacity is
// restored implicitly. Refunds are a manual process against the
// provider.
func (o *Orchestrator) CancelBooking(ctx context.Context, id uint) error {
	return o.ledger.Delete(ctx, id)
}

func (o *Orchestrator) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return o.ledger.FindByID(ctx, id)
}

func (o *Orchestrator) GetUserBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	return o.ledger.FindByUser(ctx, userID)
}

func (o *Orchestrator) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	return o.ledger.FindAll(ctx)
}

// parseWindow requires both ends to apply a date filter; a single
// supplied date is treated as no filter, matching the listing view.
func parseWindow(checkIn, checkOut *string) (*time.Time, *time.Time, error) {
	if checkIn == nil || checkOut == nil {
		return nil, nil, nil
	}
	in, err := ParseDate(*checkIn)
	if err != nil {
		return nil, nil, err
	}
	out, err := ParseDate(*checkOut)
	if err != nil {
		return nil, nil, err
	}
	if !out.After(in) {
		return nil, nil, NewValidationError("checkOut must be after checkIn")
	}
	return &in, &out, nil
}
