package repository // repository holds data access logic for halls

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-hall-console/internal/database"
	"github.com/iliyamo/cinema-hall-console/internal/model"
)

// hallSchema returns the CREATE TABLE statement for driver.  Rows are
// keyed by position: hall names are unique in the collection, but MySQL's
// default collation would fold "Hall A" and "hall a" into one key.
func hallSchema(driver string) string {
	nameType := "TEXT"
	if driver == database.DriverMySQL {
		nameType = "LONGTEXT"
	}
	return `CREATE TABLE IF NOT EXISTS cinema_halls (
	position       INT  NOT NULL PRIMARY KEY,
	name           ` + nameType + ` NOT NULL,
	width          INT  NOT NULL,
	height         INT  NOT NULL,
	reserved_seats TEXT NOT NULL
)`
}

// SQLStore keeps one row per hall.  reserved_seats holds the JSON array
// of seat ids and position keeps the collection order.
type SQLStore struct {
	db     *sql.DB // db is the underlying database connection
	driver string  // driver selects the placeholder style
}

// NewSQLStore wraps db and creates the halls table if needed.
func NewSQLStore(ctx context.Context, db *sql.DB, driver string) (*SQLStore, error) {
	s := &SQLStore{db: db, driver: driver}
	if _, err := db.ExecContext(ctx, hallSchema(driver)); err != nil {
		return nil, fmt.Errorf("create cinema_halls: %w", err)
	}
	return s, nil
}

// OpenSQLStore opens a connection with database.Open and wraps it.
func OpenSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	db, err := database.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	s, err := NewSQLStore(ctx, db, driver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Load reads every hall ordered by position.  Rows that fail
// validation are reported as ErrCorrupt.
func (s *SQLStore) Load(ctx context.Context) (*model.Collection, error) {
	const q = `SELECT name, width, height, reserved_seats FROM cinema_halls ORDER BY position`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := model.NewCollection()
	for rows.Next() {
		var (
			name          string
			width, height int
			seatsJSON     string
		)
		if err := rows.Scan(&name, &width, &height, &seatsJSON); err != nil {
			return nil, err
		}
		var seats []string
		if err := json.Unmarshal([]byte(seatsJSON), &seats); err != nil {
			return nil, fmt.Errorf("%w: hall %q: %v", ErrCorrupt, name, err)
		}
		h, err := model.RestoreHall(width, height, seats)
		if err != nil {
			return nil, fmt.Errorf("%w: hall %q: %v", ErrCorrupt, name, err)
		}
		if err := halls.Add(name, h); err != nil {
			return nil, fmt.Errorf("%w: hall %q: %v", ErrCorrupt, name, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return halls, nil
}

// Save replaces the table contents with halls in one transaction.
func (s *SQLStore) Save(ctx context.Context, halls *model.Collection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cinema_halls`); err != nil {
		return fmt.Errorf("clear cinema_halls: %w", err)
	}
	if halls.Len() > 0 {
		query, args, err := s.insertAll(halls)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert cinema_halls: %w", err)
		}
	}
	return tx.Commit()
}

// Close closes the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// insertAll builds a single multi-row INSERT for the collection.
func (s *SQLStore) insertAll(halls *model.Collection) (string, []any, error) {
	var (
		b       strings.Builder
		args    = make([]any, 0, halls.Len()*5)
		pos     int
		seatErr error
	)
	b.WriteString(`INSERT INTO cinema_halls (position, name, width, height, reserved_seats) VALUES `)
	halls.Each(func(name string, h *model.Hall) {
		if seatErr != nil {
			return
		}
		seats, err := json.Marshal(h.ReservedStrings())
		if err != nil {
			seatErr = fmt.Errorf("hall %q: %w", name, err)
			return
		}
		if pos > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for i := 0; i < 5; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(s.placeholder(len(args) + i + 1))
		}
		b.WriteString(")")
		args = append(args, pos, name, h.Width, h.Height, string(seats))
		pos++
	})
	if seatErr != nil {
		return "", nil, seatErr
	}
	return b.String(), args, nil
}

// placeholder returns the n-th (1-based) bind parameter for the driver.
func (s *SQLStore) placeholder(n int) string {
	if s.driver == database.DriverPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}
