package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrEmptyName is returned when a hall name is blank.
	ErrEmptyName = errors.New("hall name must not be empty")
	// ErrDuplicateName is returned when a hall name is already taken.
	ErrDuplicateName = errors.New("a hall with this name already exists")
	// ErrHallNotFound is returned when a hall lookup fails.
	ErrHallNotFound = errors.New("hall not found")
)

// Collection maps hall names to halls and remembers insertion order,
// which is the order halls are listed and persisted in.
type Collection struct {
	names []string
	halls map[string]*Hall
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{halls: make(map[string]*Hall)}
}

// Len returns the number of halls.
func (c *Collection) Len() int { return len(c.names) }

// Names returns hall names in insertion order.
func (c *Collection) Names() []string { return slices.Clone(c.names) }

// Has reports whether a hall called name exists.
func (c *Collection) Has(name string) bool {
	_, ok := c.halls[name]
	return ok
}

// Get returns the hall called name.
func (c *Collection) Get(name string) (*Hall, error) {
	h, ok := c.halls[name]
	if !ok {
		return nil, ErrHallNotFound
	}
	return h, nil
}

// Add inserts a new hall.  Names are unique and must contain
// something other than whitespace.
func (c *Collection) Add(name string, h *Hall) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if c.Has(name) {
		return ErrDuplicateName
	}
	c.names = append(c.names, name)
	c.halls[name] = h
	return nil
}

// Remove deletes the hall called name, keeping the order of the rest.
func (c *Collection) Remove(name string) error {
	i := slices.Index(c.names, name)
	if i < 0 {
		return ErrHallNotFound
	}
	c.names = slices.Delete(c.names, i, i+1)
	delete(c.halls, name)
	return nil
}

// Each calls fn for every hall in order.
func (c *Collection) Each(fn func(name string, h *Hall)) {
	for _, name := range c.names {
		fn(name, c.halls[name])
	}
}

// Equal reports whether both collections hold the same halls, in the
// same order, with the same reserved seats.
func (c *Collection) Equal(o *Collection) bool {
	if !slices.Equal(c.names, o.names) {
		return false
	}
	for _, name := range c.names {
		a, b := c.halls[name], o.halls[name]
		if a.Width != b.Width || a.Height != b.Height || !slices.Equal(a.seats, b.seats) {
			return false
		}
	}
	return true
}

// MarshalJSON writes the collection as a JSON object keyed by hall
// name, in insertion order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := c.halls[name].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("hall %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keyed by hall name, keeping the
// order of keys.  A JSON null yields an empty collection.  A repeated
// name keeps its first position and the last value.
func (c *Collection) UnmarshalJSON(data []byte) error {
	*c = *NewCollection()
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object of halls, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		h := new(Hall)
		if err := dec.Decode(h); err != nil {
			return fmt.Errorf("hall %q: %w", name, err)
		}
		if c.Has(name) {
			c.halls[name] = h
			continue
		}
		if err := c.Add(name, h); err != nil {
			return fmt.Errorf("hall %q: %w", name, err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
