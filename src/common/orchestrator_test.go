package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"hbs/src/models"
	"hbs/src/types"

	"github.com/stretchr/testify/assert"
)

type roomSourceMock struct {
	getFn func(ctx context.Context, id uint) (*models.Room, error)
}

func (m *roomSourceMock) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	return m.getFn(ctx, id)
}

type providerMock struct {
	createFn   func(ctx context.Context, amount float64, currency string, metadata map[string]string) (*PaymentIntent, error)
	retrieveFn func(ctx context.Context, id string) (*PaymentIntent, error)
}

func (m *providerMock) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	return m.createFn(ctx, amount, currency, metadata)
}

func (m *providerMock) RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	return m.retrieveFn(ctx, id)
}

// memoryLedger backs the orchestrator and the availability
// calculator with an in-memory booking list.
type memoryLedger struct {
	nextID   uint
	bookings []*models.Booking
}

func (m *memoryLedger) Insert(ctx context.Context, booking *models.Booking) error {
	m.nextID++
	booking.ID = m.nextID
	m.bookings = append(m.bookings, booking)
	return nil
}

func (m *memoryLedger) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	for _, b := range m.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryLedger) FindByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memoryLedger) FindAll(ctx context.Context) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memoryLedger) Delete(ctx context.Context, id uint) error {
	for i, b := range m.bookings {
		if b.ID == id {
			m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memoryLedger) CountOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (int, error) {
	count := 0
	for _, b := range m.bookings {
		if b.RoomID != roomID || b.Status != types.BOOKING_CONFIRMED {
			continue
		}
		if b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn) {
			count++
		}
	}
	return count, nil
}

func succeededProvider() *providerMock {
	return &providerMock{
		createFn: func(ctx context.Context, amount float64, currency string, metadata map[string]string) (*PaymentIntent, error) {
			return &PaymentIntent{ID: "pi_test", ClientSecret: "cs_test", Status: PaymentStatusSucceeded}, nil
		},
		retrieveFn: func(ctx context.Context, id string) (*PaymentIntent, error) {
			return &PaymentIntent{ID: id, Status: PaymentStatusSucceeded}, nil
		},
	}
}

func fixedRoom(totalCapacity int) *roomSourceMock {
	return &roomSourceMock{
		getFn: func(ctx context.Context, id uint) (*models.Room, error) {
			if id != 1 {
				return nil, ErrNotFound
			}
			return &models.Room{ID: 1, RoomType: "Suite", TotalCapacity: totalCapacity}, nil
		},
	}
}

func newTestOrchestrator(rooms RoomSource, ledger *memoryLedger, payments PaymentProvider) *Orchestrator {
	return NewOrchestrator(rooms, ledger, NewAvailability(ledger), payments)
}

func strPtr(s string) *string {
	return &s
}

func intentBody(roomID string, checkIn, checkOut *string) *types.CreatePaymentIntentRequestBody {
	return &types.CreatePaymentIntentRequestBody{
		Amount: 450,
		RoomID: roomID,
		CustomerInfo: types.CustomerInfo{
			Name:  "Ada Guest",
			Email: "ada@example.com",
		},
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}
}

func confirmBody(roomID, checkIn, checkOut string) *types.ConfirmBookingRequestBody {
	return &types.ConfirmBookingRequestBody{
		PaymentIntentID: "pi_test",
		RoomID:          roomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          2,
		CustomerInfo: types.CustomerInfo{
			Name:  "Ada Guest",
			Email: "ada@example.com",
		},
		TotalAmount: 450,
		UserID:      7,
	}
}

func TestCreatePaymentIntentInvalidRoomID(t *testing.T) {
	o := newTestOrchestrator(fixedRoom(1), &memoryLedger{}, succeededProvider())
	_, err := o.CreatePaymentIntent(context.Background(), intentBody("not-an-id", nil, nil))
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestCreatePaymentIntentRoomNotFound(t *testing.T) {
	o := newTestOrchestrator(fixedRoom(1), &memoryLedger{}, succeededProvider())
	_, err := o.CreatePaymentIntent(context.Background(), intentBody("99", nil, nil))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePaymentIntentGateBlocksOversell(t *testing.T) {
	ledger := &memoryLedger{}
	o := newTestOrchestrator(fixedRoom(1), ledger, succeededProvider())

	_, err := o.ConfirmBooking(context.Background(), confirmBody("1", "2024-06-01", "2024-06-05"))
	assert.Nil(t, err)

	_, err = o.CreatePaymentIntent(context.Background(), intentBody("1", strPtr("2024-06-02"), strPtr("2024-06-06")))
	assert.ErrorIs(t, err, ErrSoldOut)

	// touching window: checkout of the existing stay equals the new check-in
	intent, err := o.CreatePaymentIntent(context.Background(), intentBody("1", strPtr("2024-06-05"), strPtr("2024-06-08")))
	assert.Nil(t, err)
	assert.Equal(t, "pi_test", intent.ID)
	assert.Equal(t, "cs_test", intent.ClientSecret)
}

func TestCreatePaymentIntentNoDatesSkipsGate(t *testing.T) {
	ledger := &memoryLedger{}
	o := newTestOrchestrator(fixedRoom(1), ledger, succeededProvider())

	_, err := o.ConfirmBooking(context.Background(), confirmBody("1", "2024-06-01", "2024-06-05"))
	assert.Nil(t, err)

	_, err = o.CreatePaymentIntent(context.Background(), intentBody("1", nil, nil))
	assert.Nil(t, err)
}

func TestCreatePaymentIntentProviderError(t *testing.T) {
	payments := succeededProvider()
	payments.createFn = func(ctx context.Context, amount float64, currency string, metadata map[string]string) (*PaymentIntent, error) {
		return nil, errors.New("connection reset")
	}
	o := newTestOrchestrator(fixedRoom(1), &memoryLedger{}, payments)

	_, err := o.CreatePaymentIntent(context.Background(), intentBody("1", nil, nil))
	var providerErr *PaymentProviderError
	assert.ErrorAs(t, err, &providerErr)
}

func TestConfirmBookingRequiresProviderSuccess(t *testing.T) {
	payments := succeededProvider()
	payments.retrieveFn = func(ctx context.Context, id string) (*PaymentIntent, error) {
		return &PaymentIntent{ID: id, Status: "requires_payment_method"}, nil
	}
	ledger := &memoryLedger{}
	o := newTestOrchestrator(fixedRoom(1), ledger, payments)

	_, err := o.ConfirmBooking(context.Background(), confirmBody("1", "2024-06-01", "2024-06-05"))
	assert.ErrorIs(t, err, ErrPaymentNotComplete)
	assert.Empty(t, ledger.bookings)
}

func TestConfirmBookingDerivesNights(t *testing.T) {
	ledger := &memoryLedger{}
	o := newTestOrchestrator(fixedRoom(1), ledger, succeededProvider())

	booking, err := o.ConfirmBooking(context.Background(), confirmBody("1", "2024-06-01", "2024-06-04"))
	assert.Nil(t, err)
	assert.Equal(t, 3, booking.Nights)
	assert.Equal(t, types.BOOKING_CONFIRMED, booking.Status)
	assert.NotEmpty(t, booking.ReferenceCode)
	assert.Equal(t, "pi_test", booking.PaymentIntent)
}

func TestConfirmBookingRejectsInvertedWindow(t *testing.T) {
	o := newTestOrchestrator(fixedRoom(1), &memoryLedger{}, succeededProvider())
	_, err := o.ConfirmBooking(context.Background(), confirmBody("1", "2024-06-05", "2024-06-01"))
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCancelBookingNotFound(t *testing.T) {
	o := newTestOrchestrator(fixedRoom(1), &memoryLedger{}, succeededProvider())
	err := o.CancelBooking(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingLifecycle(t *testing.T) {
	ledger := &memoryLedger{}
	availability := NewAvailability(ledger)
	o := newTestOrchestrator(fixedRoom(2), ledger, succeededProvider())
	room := &models.Room{ID: 1, TotalCapacity: 2}
	ctx := context.Background()

	bookingX, err := o.ConfirmBooking(ctx, confirmBody("1", "2024-06-01", "2024-06-05"))
	assert.Nil(t, err)
	_, err = o.ConfirmBooking(ctx, confirmBody("1", "2024-06-02", "2024-06-06"))
	assert.Nil(t, err)

	in := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)
	units, err := availability.AvailableUnits(ctx, room, &in, &out)
	assert.Nil(t, err)
	assert.Equal(t, 0, units)

	_, err = o.CreatePaymentIntent(ctx, intentBody("1", strPtr("2024-06-03"), strPtr("2024-06-04")))
	assert.ErrorIs(t, err, ErrSoldOut)

	err = o.CancelBooking(ctx, bookingX.ID)
	assert.Nil(t, err)

	in = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	out = time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
	units, err = availability.AvailableUnits(ctx, room, &in, &out)
	assert.Nil(t, err)
	assert.Equal(t, 1, units)

	_, err = o.CreatePaymentIntent(ctx, intentBody("1", strPtr("2024-06-03"), strPtr("2024-06-04")))
	assert.Nil(t, err)
	bookingZ, err := o.ConfirmBooking(ctx, confirmBody("1", "2024-06-03", "2024-06-04"))
	assert.Nil(t, err)
	assert.NotZero(t, bookingZ.ID)
}
