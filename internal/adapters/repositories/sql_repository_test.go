package repositories

import (
	"context"
	"database/sql"
	"delivery-planner/internal/domain"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every pooled connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(db))
	return db
}

func testDataset() *Dataset {
	return &Dataset{
		Locations: []LocationSeed{
			{LocationID: 0, Name: "Hub", Address: "4001 South 700 East"},
			{LocationID: 1, Name: "Library", Address: "2530 S 500 E"},
			{LocationID: 2, Name: "City Hall", Address: "2600 Taylorsville Blvd"},
		},
		Distances: [][]float64{
			{0},
			{3.5, 0},
			{7.2, 4.1, 0},
		},
		Packages: []PackageSeed{
			{PackageID: 2, LocationID: 2, Address: " 2600 Taylorsville Blvd ", Deadline: "EOD", WeightKg: 44, Status: "at_hub"},
			{PackageID: 1, LocationID: 1, Address: "2530 S 500 E", Deadline: "10:30 AM", WeightKg: 21, Notes: "Can only be on truck 2"},
		},
	}
}

func TestSeedAndListPackages(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(db, DialectSQLite, testDataset()))

	repo := NewSQLRepository(db, DialectSQLite)
	pkgs, err := repo.ListPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 2)

	assert.Equal(t, 1, pkgs[0].PackageID)
	assert.Equal(t, 1, pkgs[0].LocationID)
	assert.Equal(t, "10:30 AM", pkgs[0].Deadline.String())
	assert.Equal(t, "Can only be on truck 2", pkgs[0].Notes)
	assert.Equal(t, domain.StatusAtHub, pkgs[0].Status)
	// Notes are stored verbatim; constraint parsing happens at planning time.
	assert.False(t, pkgs[0].Constraints.Pinned())

	assert.Equal(t, 2, pkgs[1].PackageID)
	assert.Equal(t, "2600 Taylorsville Blvd", pkgs[1].Address)
	assert.False(t, pkgs[1].Deadline.IsConcrete())
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ds := testDataset()
	require.NoError(t, Seed(db, DialectSQLite, ds))

	ds.Packages[0].WeightKg = 10
	require.NoError(t, Seed(db, DialectSQLite, ds))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM packages;`).Scan(&n))
	assert.Equal(t, 2, n)

	var weight float64
	require.NoError(t, db.QueryRow(`SELECT weight_kg FROM packages WHERE package_id = 2;`).Scan(&weight))
	assert.Equal(t, 10.0, weight)
}

func TestLoadDistanceMatrix(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(db, DialectSQLite, testDataset()))

	repo := NewSQLRepository(db, DialectSQLite)
	m, err := repo.LoadDistanceMatrix(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, m.Size())
	assert.True(t, m.IsSymmetric())
	assert.Equal(t, 3.5, m.Distance(0, 1))
	assert.Equal(t, 3.5, m.Distance(1, 0))
	assert.Equal(t, 4.1, m.Distance(2, 1))
	assert.Equal(t, 0.0, m.Distance(2, 2))
}

func TestLoadDistanceMatrix_MissingPair(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(db, DialectSQLite, testDataset()))

	_, err := db.Exec(`DELETE FROM distances WHERE from_location = 2 AND to_location = 0;`)
	require.NoError(t, err)

	repo := NewSQLRepository(db, DialectSQLite)
	_, err = repo.LoadDistanceMatrix(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing distance 2 -> 0")
}

func TestLoadDistanceMatrix_Empty(t *testing.T) {
	db := openTestDB(t)

	repo := NewSQLRepository(db, DialectSQLite)
	_, err := repo.LoadDistanceMatrix(context.Background())
	require.Error(t, err)
}

func TestLoadDataset(t *testing.T) {
	t.Run("bundled seed file", func(t *testing.T) {
		ds, err := LoadDataset(filepath.Join("..", "..", "..", "data", "seeds", "packages.json"))
		require.NoError(t, err)

		pkgs, err := ds.DomainPackages()
		require.NoError(t, err)
		assert.Len(t, pkgs, 40)

		m, err := ds.Matrix()
		require.NoError(t, err)
		assert.Equal(t, len(ds.Locations), m.Size())
	})

	cases := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"ragged triangle", `{"locations":[{"location_id":0},{"location_id":1}],"distances":[[0],[1,2,0]],"packages":[]}`},
		{"row count mismatch", `{"locations":[{"location_id":0}],"distances":[[0],[1,0]],"packages":[]}`},
		{"location ids out of order", `{"locations":[{"location_id":1}],"distances":[[0]],"packages":[]}`},
		{"duplicate package", `{"locations":[{"location_id":0}],"distances":[[0]],"packages":[{"package_id":1,"location_id":0},{"package_id":1,"location_id":0}]}`},
		{"unknown location", `{"locations":[{"location_id":0}],"distances":[[0]],"packages":[{"package_id":1,"location_id":4}]}`},
		{"bad deadline", `{"locations":[{"location_id":0}],"distances":[[0]],"packages":[{"package_id":1,"location_id":0,"deadline":"noonish"}]}`},
		{"non-positive id", `{"locations":[{"location_id":0}],"distances":[[0]],"packages":[{"package_id":0,"location_id":0}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o644))

			_, err := LoadDataset(path)
			assert.Error(t, err)
		})
	}
}

func TestSeedFromJSON(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedFromJSON(db, DialectSQLite, filepath.Join("..", "..", "..", "data", "seeds", "packages.json")))

	repo := NewSQLRepository(db, DialectSQLite)
	pkgs, err := repo.ListPackages(context.Background())
	require.NoError(t, err)
	assert.Len(t, pkgs, 40)

	m, err := repo.LoadDistanceMatrix(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 27, m.Size())
}

func TestDialectRebind(t *testing.T) {
	q := `INSERT INTO t (a, b) VALUES (?, ?);`
	assert.Equal(t, q, DialectSQLite.rebind(q))
	assert.Equal(t, `INSERT INTO t (a, b) VALUES ($1, $2);`, DialectPostgres.rebind(q))

	d, err := ParseDialect("PGX")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d)

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}

func TestMemoryPackageRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryPackageRepository([]domain.Package{
		{PackageID: 2, LocationID: 1},
		{PackageID: 1, LocationID: 2, Constraints: domain.Constraints{CoShipsWith: []int{2}}},
	})

	first, err := repo.ListPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, first[0].PackageID)

	first[0].LocationID = 9
	first[0].Constraints.CoShipsWith[0] = 7

	second, err := repo.ListPackages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second[0].LocationID)
	assert.Equal(t, []int{2}, second[0].Constraints.CoShipsWith)
}
