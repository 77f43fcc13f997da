package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"hbs/src/models"

	"github.com/stretchr/testify/assert"
)

type overlapCounterMock struct {
	countFn func(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (int, error)
}

func (m *overlapCounterMock) CountOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (int, error) {
	return m.countFn(ctx, roomID, checkIn, checkOut)
}

func fixedCount(n int) *overlapCounterMock {
	return &overlapCounterMock{
		countFn: func(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (int, error) {
			return n, nil
		},
	}
}

func window() (*time.Time, *time.Time) {
	in := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	return &in, &out
}

func TestRemainingWithoutDates(t *testing.T) {
	a := NewAvailability(fixedCount(99))
	room := &models.Room{ID: 1, TotalCapacity: 3}

	remaining, err := a.Remaining(context.Background(), room, nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, remaining)
}

func TestRemainingSubtractsOverlap(t *testing.T) {
	a := NewAvailability(fixedCount(2))
	room := &models.Room{ID: 1, TotalCapacity: 3}
	in, out := window()

	remaining, err := a.Remaining(context.Background(), room, in, out)
	assert.Nil(t, err)
	assert.Equal(t, 1, remaining)
}

func TestRemainingCanGoNegative(t *testing.T) {
	a := NewAvailability(fixedCount(5))
	room := &models.Room{ID: 1, TotalCapacity: 3}
	in, out := window()

	remaining, err := a.Remaining(context.Background(), room, in, out)
	assert.Nil(t, err)
	assert.Equal(t, -2, remaining)
}

func TestAvailableUnitsFlooredAtZero(t *testing.T) {
	a := NewAvailability(fixedCount(5))
	room := &models.Room{ID: 1, TotalCapacity: 3}
	in, out := window()

	units, err := a.AvailableUnits(context.Background(), room, in, out)
	assert.Nil(t, err)
	assert.Equal(t, 0, units)
}

func TestAvailabilityPropagatesLedgerError(t *testing.T) {
	a := NewAvailability(&overlapCounterMock{
		countFn: func(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (int, error) {
			return 0, errors.New("connection refused")
		},
	})
	room := &models.Room{ID: 1, TotalCapacity: 3}
	in, out := window()

	_, err := a.AvailableUnits(context.Background(), room, in, out)
	assert.NotNil(t, err)
}
