package domain_test

import (
	"delivery-planner/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageStore(t *testing.T) {
	t.Run("get returns the stored pointer", func(t *testing.T) {
		s := domain.NewPackageStore(2)
		p := &domain.Package{PackageID: 7, LocationID: 3}
		require.NoError(t, s.Put(p))

		got, err := s.Get(7)
		require.NoError(t, err)
		assert.Same(t, p, got)

		got.Status = domain.StatusDelivered
		again, _ := s.Get(7)
		assert.Equal(t, domain.StatusDelivered, again.Status)
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		s := domain.NewPackageStore(0)
		_, err := s.Get(42)
		require.ErrorIs(t, err, domain.ErrPackageNotFound)

		var nf *domain.PackageNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, 42, nf.PackageID)
	})

	t.Run("rejects invalid and duplicate ids", func(t *testing.T) {
		s := domain.NewPackageStore(1)
		require.ErrorIs(t, s.Put(&domain.Package{PackageID: 0}), domain.ErrInvalidValue)
		require.ErrorIs(t, s.Put(nil), domain.ErrInvalidValue)
		require.NoError(t, s.Put(&domain.Package{PackageID: 1}))
		require.ErrorIs(t, s.Put(&domain.Package{PackageID: 1}), domain.ErrInvalidValue)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("ids are ascending", func(t *testing.T) {
		s, err := domain.StoreFrom([]*domain.Package{{PackageID: 9}, {PackageID: 2}, {PackageID: 5}})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 5, 9}, s.IDs())
	})
}

func TestDistanceMatrix(t *testing.T) {
	t.Run("lower triangle is mirrored", func(t *testing.T) {
		m, err := domain.NewDistanceMatrixFromLowerTriangle([][]float64{
			{0},
			{7.2, 0},
			{3.8, 7.1, 0},
		})
		require.NoError(t, err)

		assert.Equal(t, 3, m.Size())
		assert.InDelta(t, 7.1, m.Distance(1, 2), 1e-9)
		assert.InDelta(t, 7.1, m.Distance(2, 1), 1e-9)
		assert.Zero(t, m.Distance(2, 2))
		assert.True(t, m.IsSymmetric())
		assert.InDelta(t, 3.8+7.1, m.PathDistance([]int{0, 2, 1}), 1e-9)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := domain.NewDistanceMatrix(nil)
		require.ErrorIs(t, err, domain.ErrInvalidValue)

		_, err = domain.NewDistanceMatrix([][]float64{{0, 1}, {1}})
		require.ErrorIs(t, err, domain.ErrInvalidValue)

		_, err = domain.NewDistanceMatrix([][]float64{{0, -1}, {-1, 0}})
		require.ErrorIs(t, err, domain.ErrInvalidValue)

		_, err = domain.NewDistanceMatrix([][]float64{{1, 1}, {1, 0}})
		require.ErrorIs(t, err, domain.ErrInvalidValue)

		_, err = domain.NewDistanceMatrixFromLowerTriangle([][]float64{{0}, {1, 2, 3}})
		require.ErrorIs(t, err, domain.ErrInvalidValue)
	})

	t.Run("asymmetric data is reported, not rejected", func(t *testing.T) {
		m, err := domain.NewDistanceMatrix([][]float64{{0, 1}, {2, 0}})
		require.NoError(t, err)
		assert.False(t, m.IsSymmetric())
	})

	t.Run("contains checks bounds", func(t *testing.T) {
		m, err := domain.NewDistanceMatrix([][]float64{{0, 1}, {1, 0}})
		require.NoError(t, err)
		assert.True(t, m.Contains(1))
		assert.False(t, m.Contains(2))
		assert.False(t, m.Contains(-1))
	})
}

func TestDeadline(t *testing.T) {
	t.Run("end of day forms", func(t *testing.T) {
		for _, in := range []string{"EOD", "eod", "", "  "} {
			d, err := domain.ParseDeadline(in)
			require.NoError(t, err, in)
			assert.False(t, d.IsConcrete(), in)
			assert.Equal(t, "EOD", d.String())
		}
	})

	t.Run("concrete times", func(t *testing.T) {
		cases := map[string]time.Duration{
			"10:30 AM": 10*time.Hour + 30*time.Minute,
			"9:00 am":  9 * time.Hour,
			"10:30AM":  10*time.Hour + 30*time.Minute,
			"17:15":    17*time.Hour + 15*time.Minute,
		}
		for in, want := range cases {
			d, err := domain.ParseDeadline(in)
			require.NoError(t, err, in)
			assert.True(t, d.IsConcrete(), in)
			assert.Equal(t, want, d.Offset(), in)
		}
	})

	t.Run("string and text round trip", func(t *testing.T) {
		d, err := domain.ParseDeadline("9:00 AM")
		require.NoError(t, err)
		assert.Equal(t, "9:00 AM", d.String())

		var back domain.Deadline
		require.NoError(t, back.UnmarshalText([]byte(d.String())))
		assert.Equal(t, d, back)
	})

	t.Run("on a given day", func(t *testing.T) {
		day := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
		d, _ := domain.At(10, 30)
		assert.Equal(t, time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC), d.On(day))
		assert.Equal(t, time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC), domain.EndOfDay().On(day))
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := domain.ParseDeadline("noon-ish")
		require.ErrorIs(t, err, domain.ErrInvalidValue)
		_, err = domain.At(24, 0)
		require.ErrorIs(t, err, domain.ErrInvalidValue)
	})
}

func TestParseStatus(t *testing.T) {
	s, err := domain.ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAtHub, s)

	s, err = domain.ParseStatus("En Route")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEnRoute, s)

	_, err = domain.ParseStatus("lost")
	require.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestFleet(t *testing.T) {
	f, err := domain.NewFleet(3, 16, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Size())
	assert.Equal(t, 48, f.Remaining())

	tr, err := f.Truck(2)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.TruckID)
	assert.Equal(t, []int{0}, tr.Route)

	_, err = f.Truck(4)
	require.ErrorIs(t, err, domain.ErrTruckNotFound)
	_, err = f.Truck(0)
	require.ErrorIs(t, err, domain.ErrTruckNotFound)

	_, err = domain.NewFleet(0, 16, 0)
	require.ErrorIs(t, err, domain.ErrInvalidValue)
	_, err = domain.NewFleet(1, 0, 0)
	require.ErrorIs(t, err, domain.ErrInvalidValue)
}
