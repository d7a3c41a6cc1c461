package repositories

import (
	"context"
	"database/sql"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/platform/obs"
	"errors"
	"fmt"
)

// SQL-backed implementation of the PackageRepository and DistanceMatrixSource
// ports. The same queries serve SQLite and Postgres; only placeholders differ.
type SQLRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLRepository(db *sql.DB, dialect Dialect) *SQLRepository {
	return &SQLRepository{DB: db, Dialect: dialect}
}

// Return all packages stored in the database, ordered by id.
func (s *SQLRepository) ListPackages(ctx context.Context) (_ []*domain.Package, err error) {
	defer obs.Time(ctx, "repositories.ListPackages")(&err)

	if s.DB == nil {
		return nil, errors.New("sql repository: DB is nil")
	}

	query := `
	SELECT
		package_id,
		location_id,
		address,
		deadline,
		weight_kg,
		notes,
		status
	FROM packages
	ORDER BY package_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list packages: query packages table: %w", err)
	}
	defer rows.Close()

	packages := make([]*domain.Package, 0, 64)
	for rows.Next() {
		var (
			id, loc                         int
			address, deadline, notes, state string
			weight                          float64
		)
		if err := rows.Scan(&id, &loc, &address, &deadline, &weight, &notes, &state); err != nil {
			return nil, fmt.Errorf("list packages: scan row: %w", err)
		}

		pkg, err := toDomain(id, loc, address, deadline, weight, notes, state)
		if err != nil {
			return nil, fmt.Errorf("list packages: %w", err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list packages: row iteration: %w", err)
	}

	return packages, nil
}

// Assemble the square distance matrix from the stored lower triangle.
// Every location pair must be present.
func (s *SQLRepository) LoadDistanceMatrix(ctx context.Context) (_ *domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "repositories.LoadDistanceMatrix")(&err)

	if s.DB == nil {
		return nil, errors.New("sql repository: DB is nil")
	}

	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations;`).Scan(&n); err != nil {
		return nil, fmt.Errorf("load distance matrix: count locations: %w", err)
	}
	if n == 0 {
		return nil, errors.New("load distance matrix: no locations seeded")
	}

	lower := make([][]float64, n)
	filled := make([][]bool, n)
	for i := range lower {
		lower[i] = make([]float64, i+1)
		filled[i] = make([]bool, i+1)
		filled[i][i] = true
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT from_location, to_location, miles
	FROM distances;
	`)
	if err != nil {
		return nil, fmt.Errorf("load distance matrix: query distances table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var from, to int
		var miles float64
		if err := rows.Scan(&from, &to, &miles); err != nil {
			return nil, fmt.Errorf("load distance matrix: scan row: %w", err)
		}
		if from < to {
			from, to = to, from
		}
		if to < 0 || from >= n {
			return nil, fmt.Errorf("load distance matrix: pair %d -> %d outside %d locations", from, to, n)
		}
		lower[from][to] = miles
		filled[from][to] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load distance matrix: row iteration: %w", err)
	}

	for i := range filled {
		for j, ok := range filled[i] {
			if !ok {
				return nil, fmt.Errorf("load distance matrix: missing distance %d -> %d", i, j)
			}
		}
	}

	m, err := domain.NewDistanceMatrixFromLowerTriangle(lower)
	if err != nil {
		return nil, fmt.Errorf("load distance matrix: %w", err)
	}
	return m, nil
}
