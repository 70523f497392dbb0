package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// Hall size limits. Columns are addressed by a single letter, so the
// width can never exceed the alphabet.
const (
	MaxWidth  = 26
	MaxHeight = 30
)

var (
	// ErrInvalidWidth is returned when a hall width is outside [1, MaxWidth].
	ErrInvalidWidth = fmt.Errorf("width must be between 1 and %d", MaxWidth)
	// ErrInvalidHeight is returned when a hall height is outside [1, MaxHeight].
	ErrInvalidHeight = fmt.Errorf("height must be between 1 and %d", MaxHeight)
	// ErrSeatOutOfRange is returned for a well-formed seat id that does
	// not fall inside the hall grid.
	ErrSeatOutOfRange = errors.New("seat is outside the hall")
)

// Hall represents one cinema hall: a Width x Height seat grid plus the
// set of reserved seats.  Columns are lettered a..z from the left and
// rows are numbered from 1 at the top.
//
// Reserved seats keep the order in which they were reserved so that
// the persisted file stays diff-friendly.  Every reserved seat is
// guaranteed to lie inside the grid.
type Hall struct {
	Width  int
	Height int
	seats  []SeatID
}

// NewHall returns an empty hall of the given size.
func NewHall(width, height int) (*Hall, error) {
	if width < 1 || width > MaxWidth {
		return nil, ErrInvalidWidth
	}
	if height < 1 || height > MaxHeight {
		return nil, ErrInvalidHeight
	}
	return &Hall{Width: width, Height: height}, nil
}

// RestoreHall rebuilds a hall from persisted state.  Seat ids are
// canonicalized and duplicates dropped; any seat that cannot be parsed
// or lies outside the grid fails the whole hall.
func RestoreHall(width, height int, reserved []string) (*Hall, error) {
	h, err := NewHall(width, height)
	if err != nil {
		return nil, err
	}
	for _, raw := range reserved {
		id, err := ParseSeatID(raw)
		if err != nil {
			return nil, fmt.Errorf("seat %q: %w", raw, err)
		}
		if !h.SeatExists(id) {
			return nil, fmt.Errorf("seat %q: %w", raw, ErrSeatOutOfRange)
		}
		if !h.IsReserved(id) {
			h.seats = append(h.seats, id)
		}
	}
	return h, nil
}

// SeatExists reports whether id addresses a seat inside the grid.
func (h *Hall) SeatExists(id SeatID) bool {
	return id.Col >= 1 && id.Col <= h.Width && id.Row >= 1 && id.Row <= h.Height
}

// IsReserved reports whether id is currently reserved.
func (h *Hall) IsReserved(id SeatID) bool {
	return slices.Contains(h.seats, id)
}

// Toggle flips the reservation state of id and reports whether the
// seat is reserved afterwards.  Callers must check SeatExists first.
func (h *Hall) Toggle(id SeatID) bool {
	if i := slices.Index(h.seats, id); i >= 0 {
		h.seats = slices.Delete(h.seats, i, i+1)
		return false
	}
	h.seats = append(h.seats, id)
	return true
}

// Reserved returns a copy of the reserved seats in reservation order.
func (h *Hall) Reserved() []SeatID {
	return slices.Clone(h.seats)
}

// ReservedCount returns the number of reserved seats.
func (h *Hall) ReservedCount() int { return len(h.seats) }

// TotalSeats returns the number of addressable seats.
func (h *Hall) TotalSeats() int { return h.Width * h.Height }

// hallJSON is the persisted shape of a hall.  The property names match
// the data files written by earlier versions of the tool.
type hallJSON struct {
	Width         int      `json:"Width"`
	Height        int      `json:"Height"`
	ReservedSeats []string `json:"ReservedSeats"`
}

// MarshalJSON implements json.Marshaler.
func (h *Hall) MarshalJSON() ([]byte, error) {
	return json.Marshal(hallJSON{
		Width:         h.Width,
		Height:        h.Height,
		ReservedSeats: h.ReservedStrings(),
	})
}

// UnmarshalJSON implements json.Unmarshaler and validates the hall.
func (h *Hall) UnmarshalJSON(data []byte) error {
	var doc hallJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	restored, err := RestoreHall(doc.Width, doc.Height, doc.ReservedSeats)
	if err != nil {
		return err
	}
	*h = *restored
	return nil
}

// ReservedStrings returns the canonical string form of each reserved seat.
func (h *Hall) ReservedStrings() []string {
	out := make([]string, 0, len(h.seats))
	for _, id := range h.seats {
		out = append(out, id.String())
	}
	return out
}
