package repositories

import (
	"database/sql"
	"delivery-planner/internal/domain"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type LocationSeed struct {
	LocationID int    `json:"location_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
}

type PackageSeed struct {
	PackageID  int     `json:"package_id"`
	LocationID int     `json:"location_id"`
	Address    string  `json:"address"`
	Deadline   string  `json:"deadline"`
	WeightKg   float64 `json:"weight_kg"`
	Notes      string  `json:"notes"`
	Status     string  `json:"status"`
}

// Dataset is the JSON seed layout: locations, the lower-triangular distance
// table (row i holds i+1 entries, diagonal included) and the package list.
type Dataset struct {
	Locations []LocationSeed `json:"locations"`
	Distances [][]float64    `json:"distances"`
	Packages  []PackageSeed  `json:"packages"`
}

// Read and validate a dataset from a JSON file.
func LoadDataset(jsonPath string) (*Dataset, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: read %q: %w", jsonPath, err)
	}

	var ds Dataset
	if err := json.Unmarshal(bytes, &ds); err != nil {
		return nil, fmt.Errorf("load dataset: parse json: %w", err)
	}

	if err := ds.validate(); err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return &ds, nil
}

func (ds *Dataset) validate() error {
	for i, loc := range ds.Locations {
		if loc.LocationID != i {
			return fmt.Errorf("location at index %d has id %d: ids must run 0..n-1 in order", i, loc.LocationID)
		}
	}

	if len(ds.Distances) != len(ds.Locations) {
		return fmt.Errorf("distance table has %d rows for %d locations", len(ds.Distances), len(ds.Locations))
	}
	if _, err := domain.NewDistanceMatrixFromLowerTriangle(ds.Distances); err != nil {
		return err
	}

	seen := make(map[int]struct{}, len(ds.Packages))
	for i, p := range ds.Packages {
		if p.PackageID <= 0 {
			return fmt.Errorf("invalid package_id at index %d: %d", i+1, p.PackageID)
		}
		if _, dup := seen[p.PackageID]; dup {
			return fmt.Errorf("duplicate package_id %d at index %d", p.PackageID, i+1)
		}
		seen[p.PackageID] = struct{}{}

		if p.LocationID < 0 || p.LocationID >= len(ds.Locations) {
			return fmt.Errorf("package_id=%d: unknown location_id %d", p.PackageID, p.LocationID)
		}
		if _, err := domain.ParseDeadline(p.Deadline); err != nil {
			return fmt.Errorf("package_id=%d: %w", p.PackageID, err)
		}
		if _, err := domain.ParseStatus(p.Status); err != nil {
			return fmt.Errorf("package_id=%d: %w", p.PackageID, err)
		}
	}
	return nil
}

// Matrix builds the square distance matrix from the seeded lower triangle.
func (ds *Dataset) Matrix() (*domain.DistanceMatrix, error) {
	return domain.NewDistanceMatrixFromLowerTriangle(ds.Distances)
}

// DomainPackages converts seed rows into domain packages. Constraints are left
// empty; the rule set's markers fill them in at planning time.
func (ds *Dataset) DomainPackages() ([]domain.Package, error) {
	out := make([]domain.Package, 0, len(ds.Packages))
	for _, p := range ds.Packages {
		pkg, err := toDomain(p.PackageID, p.LocationID, p.Address, p.Deadline, p.WeightKg, p.Notes, p.Status)
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		out = append(out, *pkg)
	}
	return out, nil
}

func toDomain(id, locationID int, address, deadline string, weight float64, notes, status string) (*domain.Package, error) {
	d, err := domain.ParseDeadline(deadline)
	if err != nil {
		return nil, fmt.Errorf("package_id=%d: %w", id, err)
	}
	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("package_id=%d: %w", id, err)
	}
	return &domain.Package{
		PackageID:  id,
		LocationID: locationID,
		Address:    strings.TrimSpace(address),
		Deadline:   d,
		WeightKg:   weight,
		Notes:      strings.TrimSpace(notes),
		Status:     st,
	}, nil
}

// Populate the database with a JSON dataset. Rows are upserted, so seeding
// twice leaves a single copy of every record.
func SeedFromJSON(db *sql.DB, dialect Dialect, jsonPath string) error {
	ds, err := LoadDataset(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return Seed(db, dialect, ds)
}

func Seed(db *sql.DB, dialect Dialect, ds *Dataset) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	locStmt, err := tx.Prepare(dialect.rebind(`
	INSERT INTO locations (location_id, name, address)
	VALUES (?, ?, ?)
	ON CONFLICT (location_id) DO UPDATE
	SET name = excluded.name,
		address = excluded.address;
	`))
	if err != nil {
		return fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer locStmt.Close()

	for _, l := range ds.Locations {
		if _, err := locStmt.Exec(l.LocationID, strings.TrimSpace(l.Name), strings.TrimSpace(l.Address)); err != nil {
			return fmt.Errorf("seed locations: insert location_id=%d: %w", l.LocationID, err)
		}
	}

	distStmt, err := tx.Prepare(dialect.rebind(`
	INSERT INTO distances (from_location, to_location, miles)
	VALUES (?, ?, ?)
	ON CONFLICT (from_location, to_location) DO UPDATE
	SET miles = excluded.miles;
	`))
	if err != nil {
		return fmt.Errorf("seed distances: prepare insert: %w", err)
	}
	defer distStmt.Close()

	for i, row := range ds.Distances {
		for j := 0; j < i; j++ {
			if _, err := distStmt.Exec(i, j, row[j]); err != nil {
				return fmt.Errorf("seed distances: insert %d -> %d: %w", i, j, err)
			}
		}
	}

	pkgStmt, err := tx.Prepare(dialect.rebind(`
	INSERT INTO packages (package_id, location_id, address, deadline, weight_kg, notes, status)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (package_id) DO UPDATE
	SET location_id = excluded.location_id,
		address = excluded.address,
		deadline = excluded.deadline,
		weight_kg = excluded.weight_kg,
		notes = excluded.notes,
		status = excluded.status;
	`))
	if err != nil {
		return fmt.Errorf("seed packages: prepare insert: %w", err)
	}
	defer pkgStmt.Close()

	for _, p := range ds.Packages {
		pkg, err := toDomain(p.PackageID, p.LocationID, p.Address, p.Deadline, p.WeightKg, p.Notes, p.Status)
		if err != nil {
			return fmt.Errorf("seed packages: %w", err)
		}
		_, err = pkgStmt.Exec(
			pkg.PackageID, pkg.LocationID, pkg.Address, pkg.Deadline.String(),
			pkg.WeightKg, pkg.Notes, pkg.Status.String(),
		)
		if err != nil {
			return fmt.Errorf("seed packages: insert package_id=%d: %w", p.PackageID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
