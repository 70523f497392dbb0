// Package render draws a hall as a text grid.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/iliyamo/cinema-hall-console/internal/model"
)

const (
	labelWidth = 3
	aisle      = " "
)

// Renderer turns a hall into a grid of seat glyphs.  Without colour
// the output contains no escape codes and depends only on hall state.
type Renderer struct {
	ReservedGlyph string
	OpenGlyph     string

	reserved *color.Color
	open     *color.Color
}

// New returns a renderer using X for reserved seats (red) and # for
// open seats (green).
func New(useColor bool) *Renderer {
	r := &Renderer{
		ReservedGlyph: "X",
		OpenGlyph:     "#",
		reserved:      color.New(color.FgRed),
		open:          color.New(color.FgGreen),
	}
	// fatih/color otherwise decides from the global NoColor, which
	// looks at os.Stdout rather than where we actually write.
	if useColor {
		r.reserved.EnableColor()
		r.open.EnableColor()
	} else {
		r.reserved.DisableColor()
		r.open.DisableColor()
	}
	return r
}

// Draw returns the grid: one line per row, then a footer of column
// letters.  A one-space aisle follows column width/2.
func (r *Renderer) Draw(h *model.Hall) string {
	var b strings.Builder
	for row := 1; row <= h.Height; row++ {
		fmt.Fprintf(&b, "%-*d", labelWidth, row)
		for col := 1; col <= h.Width; col++ {
			if col > 1 {
				b.WriteString(r.gap(h.Width, col))
			}
			b.WriteString(r.glyph(h.IsReserved(model.SeatID{Col: col, Row: row})))
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", labelWidth))
	for col := 1; col <= h.Width; col++ {
		if col > 1 {
			b.WriteString(r.gap(h.Width, col))
		}
		b.WriteString(model.ColumnLetter(col))
	}
	b.WriteByte('\n')
	return b.String()
}

// Fprint writes Draw(h) to w.
func (r *Renderer) Fprint(w io.Writer, h *model.Hall) error {
	_, err := io.WriteString(w, r.Draw(h))
	return err
}

// gap is the separator written before column col.
func (r *Renderer) gap(width, col int) string {
	if col-1 == width/2 {
		return " " + aisle
	}
	return " "
}

func (r *Renderer) glyph(reserved bool) string {
	if reserved {
		if r.reserved == nil {
			return r.ReservedGlyph
		}
		return r.reserved.Sprint(r.ReservedGlyph)
	}
	if r.open == nil {
		return r.OpenGlyph
	}
	return r.open.Sprint(r.OpenGlyph)
}

// Summary formats the one-line description used in hall listings.
func Summary(name string, h *model.Hall) string {
	return fmt.Sprintf("%s [%dx%d] - %d total seats, %d reserved",
		name, h.Width, h.Height, h.TotalSeats(), h.ReservedCount())
}
