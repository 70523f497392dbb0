// Package reservation validates seat input against a hall and toggles
// reservations.  Every error it returns is recoverable: the caller is
// expected to ask for another seat.
package reservation

import (
	"strings"

	"github.com/iliyamo/cinema-hall-console/internal/model"
)

// Action tells which way a toggle went.
type Action int

const (
	// Reserved means an open seat became reserved.
	Reserved Action = iota + 1
	// Canceled means a reserved seat was released.
	Canceled
)

// String returns the message shown to the user.
func (a Action) String() string {
	switch a {
	case Reserved:
		return "Seat reserved."
	case Canceled:
		return "Reservation canceled."
	}
	return "unknown action"
}

// Result describes a completed toggle.
type Result struct {
	Seat   model.SeatID
	Action Action
}

// Engine is stateless; the zero value is ready to use.
type Engine struct{}

// Resolve parses raw and checks that the seat exists in hall.
// It returns model.ErrMalformedSeat or model.ErrSeatOutOfRange.
func (Engine) Resolve(hall *model.Hall, raw string) (model.SeatID, error) {
	id, err := model.ParseSeatID(strings.TrimSpace(raw))
	if err != nil {
		return model.SeatID{}, err
	}
	if !hall.SeatExists(id) {
		return model.SeatID{}, model.ErrSeatOutOfRange
	}
	return id, nil
}

// Toggle resolves raw and flips the seat's reservation.  The hall is
// left untouched when an error is returned.
func (e Engine) Toggle(hall *model.Hall, raw string) (Result, error) {
	id, err := e.Resolve(hall, raw)
	if err != nil {
		return Result{}, err
	}
	if hall.Toggle(id) {
		return Result{Seat: id, Action: Reserved}, nil
	}
	return Result{Seat: id, Action: Canceled}, nil
}
