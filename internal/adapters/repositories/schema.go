package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects the placeholder style for the SQL driver in use.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case DialectSQLite:
		return DialectSQLite, nil
	case DialectPostgres, "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unknown sql dialect %q (want sqlite or postgres)", s)
	}
}

// rebind rewrites "?" placeholders into "$n" form for Postgres.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Initialize the database schema. The DDL is shared by SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		location_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL
	);
	`

	createPackagesQuery := `
	CREATE TABLE IF NOT EXISTS packages (
		package_id INTEGER PRIMARY KEY,
		location_id INTEGER NOT NULL REFERENCES locations(location_id),
		address TEXT NOT NULL,
		deadline TEXT NOT NULL,
		weight_kg DOUBLE PRECISION NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'at_hub'
	);
	`

	// Only the lower triangle is stored: from_location > to_location.
	createDistancesQuery := `
	CREATE TABLE IF NOT EXISTS distances (
		from_location INTEGER NOT NULL REFERENCES locations(location_id),
		to_location INTEGER NOT NULL REFERENCES locations(location_id),
		miles DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (from_location, to_location)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_packages_location
	ON packages(location_id);
	`

	statements := []string{
		createLocationsQuery,
		createPackagesQuery,
		createDistancesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
