package common

import (
	"context"
	"time"

	"hbs/src/models"
)

type OverlapCounter interface {
	CountOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (int, error)
}

// Availability derives an available-unit count from total capacity
// and the ledger's overlap count. No side effects; safe to call
// concurrently for many rooms.
type Availability struct {
	ledger OverlapCounter
}

func NewAvailability(ledger OverlapCounter) *Availability {
	return &Availability{ledger: ledger}
}

// Remaining returns totalCapacity minus the overlapping confirmed
// count, unfloored. Callers gate on Remaining < 1 so that a
// negative-capacity edge state still reads as sold out. Absent dates
// mean no filter and return the full capacity.
func (a *Availability) Remaining(ctx context.Context, room *models.Room, checkIn, checkOut *time.Time) (int, error) {
	if checkIn == nil || checkOut == nil {
		return room.TotalCapacity, nil
	}
	overlapping, err := a.ledger.CountOverlapping(ctx, room.ID, *checkIn, *checkOut)
	if err != nil {
		return 0, err
	}
	return room.TotalCapacity - overlapping, nil
}

// AvailableUnits is Remaining floored at zero, for display.
func (a *Availability) AvailableUnits(ctx context.Context, room *models.Room, checkIn, checkOut *time.Time) (int, error) {
	remaining, err := a.Remaining(ctx, room, checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}
