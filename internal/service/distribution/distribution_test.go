package distribution

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/kvstore"
	"github.com/atsdairy/dashboard/internal/store"
)

func newTestService(t *testing.T, kv kvstore.Store) *Service {
	t.Helper()
	routes := store.New[models.Route](models.Route.Validate)
	svc, err := NewService(context.Background(), routes, kv, nil)
	require.NoError(t, err)
	return svc
}

func validRoute(day string) models.Route {
	return models.Route{
		RouteID: "ZONE001",
		Zone:    "North",
		Driver:  "Prakash",
		Day:     day,
		Status:  "Active",
	}
}

func TestTalliesCoverFullUniverse(t *testing.T) {
	kv, err := kvstore.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	svc := newTestService(t, kv)

	tallies := svc.Tallies()
	assert.Len(t, tallies.ByDay, len(models.Weekdays), "zero counts included")
	assert.Len(t, tallies.ByReason, len(models.RouteRemovalReasons))
	assert.Equal(t, 0, tallies.ByDay["Monday"])
}

func TestAddBumpsDayTally(t *testing.T) {
	kv, err := kvstore.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	svc := newTestService(t, kv)
	ctx := context.Background()

	_, errs, err := svc.Add(ctx, validRoute("Tuesday"))
	require.NoError(t, err)
	assert.True(t, errs.OK())

	assert.Equal(t, 1, svc.Tallies().ByDay["Tuesday"])
	assert.Equal(t, 1, svc.Routes().Len())
}

func TestAddInvalidRouteLeavesTalliesAlone(t *testing.T) {
	kv, err := kvstore.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	svc := newTestService(t, kv)

	bad := validRoute("Tuesday")
	bad.RouteID = "bad-id"
	_, errs, err := svc.Add(context.Background(), bad)
	assert.ErrorIs(t, err, store.ErrInvalid)
	assert.NotEmpty(t, errs["routeId"])
	assert.Equal(t, 0, svc.Tallies().ByDay["Tuesday"])
}

func TestRemoveBumpsReasonTally(t *testing.T) {
	kv, err := kvstore.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	svc := newTestService(t, kv)
	ctx := context.Background()

	_, _, err = svc.Add(ctx, validRoute("Friday"))
	require.NoError(t, err)

	removed, err := svc.Remove(ctx, 0, "Vehicle Breakdown")
	require.NoError(t, err)
	assert.Equal(t, "ZONE001", removed.RouteID)
	assert.Equal(t, 1, svc.Tallies().ByReason["Vehicle Breakdown"])
	assert.Equal(t, 0, svc.Routes().Len())
}

func TestRemoveIgnoresUnknownReason(t *testing.T) {
	kv, err := kvstore.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	svc := newTestService(t, kv)
	ctx := context.Background()

	_, _, err = svc.Add(ctx, validRoute("Friday"))
	require.NoError(t, err)

	_, err = svc.Remove(ctx, 0, "Aliens")
	require.NoError(t, err)
	for reason, n := range svc.Tallies().ByReason {
		assert.Zero(t, n, "reason %q should stay untallied", reason)
	}
}

func TestConcurrentAddsKeepTalliesConsistent(t *testing.T) {
	kv, err := kvstore.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	svc := newTestService(t, kv)
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, _, err := svc.Add(ctx, validRoute("Tuesday"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, svc.Tallies().ByDay["Tuesday"])
	assert.Equal(t, workers, svc.Routes().Len())
}

func TestTalliesSurviveRestart(t *testing.T) {
	kv, err := kvstore.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	first := newTestService(t, kv)
	_, _, err = first.Add(ctx, validRoute("Sunday"))
	require.NoError(t, err)
	_, err = first.Remove(ctx, 0, "Weather")
	require.NoError(t, err)

	// A fresh service over the same storage rehydrates the counters.
	second := newTestService(t, kv)
	tallies := second.Tallies()
	assert.Equal(t, 1, tallies.ByDay["Sunday"])
	assert.Equal(t, 1, tallies.ByReason["Weather"])
}
