package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-hall-console/internal/config"
	"github.com/iliyamo/cinema-hall-console/internal/database"
	"github.com/iliyamo/cinema-hall-console/internal/model"
)

func sampleHalls(t *testing.T) *model.Collection {
	t.Helper()
	c := model.NewCollection()
	a, err := model.RestoreHall(10, 10, []string{"a1", "j10"})
	require.NoError(t, err)
	require.NoError(t, c.Add("Hall A", a))
	b, err := model.RestoreHall(26, 30, []string{"z30", "m2", "b5"})
	require.NoError(t, err)
	require.NoError(t, c.Add("Big \"quoted\" hall", b))
	empty, err := model.NewHall(1, 1)
	require.NoError(t, err)
	require.NoError(t, c.Add("Tiny", empty))
	return c
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	want := sampleHalls(t)

	require.NoError(t, s.Save(ctx, want))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
	assert.Equal(t, want.Names(), got.Names())

	// saving again overwrites rather than appends
	require.NoError(t, want.Remove("Tiny"))
	require.NoError(t, s.Save(ctx, want))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hall A", "Big \"quoted\" hall"}, got.Names())
}

func TestFileStoreFormat(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	c := model.NewCollection()
	h, err := model.RestoreHall(10, 10, []string{"a1", "j10"})
	require.NoError(t, err)
	require.NoError(t, c.Add("Hall A", h))
	require.NoError(t, NewFileStore(path).Save(ctx, c))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{
  "Hall A": {
    "Width": 10,
    "Height": 10,
    "ReservedSeats": [
      "a1",
      "j10"
    ]
  }
}
`, string(data))
}

func TestFileStoreKeepsFileMode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.json")
	require.NoError(t, NewFileStore(fresh).Save(ctx, sampleHalls(t)))
	info, err := os.Stat(fresh)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	private := filepath.Join(dir, "private.json")
	require.NoError(t, os.WriteFile(private, []byte("{}"), 0o600))
	require.NoError(t, os.Chmod(private, 0o600))
	require.NoError(t, NewFileStore(private).Save(ctx, sampleHalls(t)))
	info, err = os.Stat(private)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreMissingAndEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	got, err := NewFileStore(filepath.Join(dir, "nope.json")).Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, got.Len())

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	got, err = NewFileStore(empty).Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, got.Len())

	null := filepath.Join(dir, "null.json")
	require.NoError(t, os.WriteFile(null, []byte("null"), 0o644))
	got, err = NewFileStore(null).Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, got.Len())
}

func TestFileStoreCorrupt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	for name, body := range map[string]string{
		"garbage.json":  "{not json",
		"array.json":    `["Hall A"]`,
		"range.json":    `{"Hall A":{"Width":10,"Height":10,"ReservedSeats":["k1"]}}`,
		"size.json":     `{"Hall A":{"Width":99,"Height":10}}`,
		"trailing.json": `{"Hall A":{"Width":1,"Height":1}} {}`,
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := NewFileStore(path).Load(ctx)
		assert.ErrorIs(t, err, ErrCorrupt, name)
	}
}

func TestFileStoreLoadsLegacyFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "data.json")
	legacy := `{
  "Main": {
    "Width": 4,
    "Height": 4,
    "ReservedSeats": ["A1", "d4", "a1"]
  }
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))
	got, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	h, err := got.Get("Main")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "d4"}, h.ReservedStrings())
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, err := OpenSQLStore(ctx, database.DriverSQLite, filepath.Join(t.TempDir(), "cinema.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, got.Len())

	want := sampleHalls(t)
	require.NoError(t, s.Save(ctx, want))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	require.NoError(t, want.Remove("Hall A"))
	require.NoError(t, s.Save(ctx, want))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Big \"quoted\" hall", "Tiny"}, got.Names())

	require.NoError(t, s.Save(ctx, model.NewCollection()))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, got.Len())
}

func TestSQLiteStoreCorruptRow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, err := OpenSQLStore(ctx, database.DriverSQLite, filepath.Join(t.TempDir(), "cinema.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.db.ExecContext(ctx, `INSERT INTO cinema_halls (position, name, width, height, reserved_seats) VALUES (0, 'x', 3, 3, '["z9"]')`)
	require.NoError(t, err)
	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestSQLiteStoreKeepsNamesDifferingInCase(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, err := OpenSQLStore(ctx, database.DriverSQLite, filepath.Join(t.TempDir(), "cinema.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	long := strings.Repeat("n", 300)
	want := model.NewCollection()
	for _, name := range []string{"Hall A", "hall a", long} {
		h, err := model.NewHall(2, 2)
		require.NoError(t, err)
		require.NoError(t, want.Add(name, h))
	}
	require.NoError(t, s.Save(ctx, want))
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hall A", "hall a", long}, got.Names())
}

func TestHallSchemaKeysOnPosition(t *testing.T) {
	t.Parallel()
	for _, driver := range []string{database.DriverSQLite, database.DriverMySQL, database.DriverPostgres} {
		schema := hallSchema(driver)
		assert.Contains(t, schema, "position       INT  NOT NULL PRIMARY KEY", driver)
		assert.NotContains(t, schema, "VARCHAR", driver)
		assert.Equal(t, 1, strings.Count(schema, "PRIMARY KEY"), driver)
	}
	assert.Contains(t, hallSchema(database.DriverMySQL), "name           LONGTEXT NOT NULL")
}

func TestPlaceholders(t *testing.T) {
	t.Parallel()
	pg := &SQLStore{driver: database.DriverPostgres}
	q, args, err := pg.insertAll(sampleHalls(t))
	require.NoError(t, err)
	assert.Contains(t, q, "($1, $2, $3, $4, $5), ($6, $7, $8, $9, $10)")
	assert.Len(t, args, 15)

	my := &SQLStore{driver: database.DriverMySQL}
	q, _, err = my.insertAll(sampleHalls(t))
	require.NoError(t, err)
	assert.Contains(t, q, "(?, ?, ?, ?, ?), (?, ?, ?, ?, ?)")
}

func TestOpenDefaultsToFileStore(t *testing.T) {
	t.Parallel()
	s, err := Open(context.Background(), config.Config{Store: config.StoreFile, DataFile: "halls.json"})
	require.NoError(t, err)
	fs, ok := s.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, "halls.json", fs.Path)
}

func TestOpenRedisUnreachable(t *testing.T) {
	t.Parallel()
	_, err := Open(context.Background(), config.Config{
		Store: config.StoreRedis,
		Redis: config.RedisConfig{Addr: "127.0.0.1:1", Key: "cinema:halls"},
	})
	assert.Error(t, err)
}
