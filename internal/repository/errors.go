// Package repository loads and saves the whole hall collection.  Every
// store works on complete snapshots: Load returns everything that was
// last saved and Save replaces it wholesale.  Stores assume they are
// the only writer.
package repository

import (
	"context"
	"errors"

	"github.com/iliyamo/cinema-hall-console/internal/model"
)

// ErrCorrupt is returned by Load when persisted data exists but cannot
// be decoded into a valid collection.  Callers should stop rather than
// start over with an empty collection, which would overwrite the data
// on the next save.
var ErrCorrupt = errors.New("corrupt hall data")

// HallStore persists the hall collection.  A store with nothing saved
// yet loads as an empty collection.
type HallStore interface {
	Load(ctx context.Context) (*model.Collection, error)
	Save(ctx context.Context, halls *model.Collection) error
	Close() error
}
