package model

import (
	"errors"
	"strconv"
)

// ErrMalformedSeat is returned when a seat id does not match
// <letter><row>, e.g. "a1" or "J30".
var ErrMalformedSeat = errors.New("seat must be a letter followed by a row number (e.g. a1)")

// SeatID addresses one seat: Col is the 1-based column (a=1 .. z=26)
// and Row is the 1-based row.
type SeatID struct {
	Col int
	Row int
}

// String returns the canonical form: lowercase letter then row.
func (s SeatID) String() string {
	return ColumnLetter(s.Col) + strconv.Itoa(s.Row)
}

// ParseSeatID parses a seat id.  The letter is case-insensitive and
// the row must be a decimal number in [1, MaxHeight] with nothing after it.
// Whether the seat exists in a particular hall is checked separately.
func ParseSeatID(raw string) (SeatID, error) {
	if len(raw) < 2 || len(raw) > 3 {
		return SeatID{}, ErrMalformedSeat
	}
	col := ColumnIndex(rune(raw[0]))
	if col == 0 {
		return SeatID{}, ErrMalformedSeat
	}
	digits := raw[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return SeatID{}, ErrMalformedSeat
		}
	}
	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 || row > MaxHeight {
		return SeatID{}, ErrMalformedSeat
	}
	return SeatID{Col: col, Row: row}, nil
}

// ColumnLetter maps a 1-based column index to its lowercase letter.
// Out-of-range indices yield "?".
func ColumnLetter(col int) string {
	if col < 1 || col > MaxWidth {
		return "?"
	}
	return string(rune('a' + col - 1))
}

// ColumnIndex maps a column letter (either case) to its 1-based index,
// or 0 if r is not an ASCII letter.
func ColumnIndex(r rune) int {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 1
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 1
	}
	return 0
}
