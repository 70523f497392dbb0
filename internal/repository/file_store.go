package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iliyamo/cinema-hall-console/internal/model"
)

// FileStore keeps the collection in a single indented JSON file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path.  The file is created on
// the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the file.  A missing or empty file is an empty collection.
func (s *FileStore) Load(_ context.Context) (*model.Collection, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewCollection(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return model.NewCollection(), nil
	}
	halls, err := decodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return halls, nil
}

// Save overwrites the file with the full collection.  The data goes to
// a temporary file in the same directory first and is then renamed
// over the old one, so a crash mid-write leaves the previous snapshot.
// An existing file keeps its permissions; a new one gets 0644.
func (s *FileStore) Save(_ context.Context, halls *model.Collection) error {
	data, err := encodeSnapshot(halls, true)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(s.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace %s: %w", s.Path, err)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

// encodeSnapshot is shared by the file and redis stores.
func encodeSnapshot(halls *model.Collection, indent bool) ([]byte, error) {
	data, err := json.Marshal(halls)
	if err != nil {
		return nil, fmt.Errorf("marshal halls: %w", err)
	}
	if !indent {
		return data, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("indent halls: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func decodeSnapshot(data []byte) (*model.Collection, error) {
	halls := model.NewCollection()
	if err := json.Unmarshal(data, halls); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return halls, nil
}
