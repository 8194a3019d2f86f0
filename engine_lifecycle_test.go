package bucketeer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/bucketeer/source"
	bctesting "github.com/arloliu/bucketeer/testing"
	"github.com/arloliu/bucketeer/types"
)

type flakySource struct {
	mu   sync.Mutex
	defs []types.ExperimentDefinition
	err  error
}

func (s *flakySource) ListExperiments(_ /* ctx */ context.Context) ([]types.ExperimentDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	return s.defs, nil
}

func (s *flakySource) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func TestStartWithoutSource(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.Start(context.Background())
	require.ErrorIs(t, err, ErrCatalogSourceRequired)
}

func TestStopBeforeStart(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.Stop(context.Background())
	require.ErrorIs(t, err, ErrNotStarted)
}

func TestStartLoadsInitialCatalog(t *testing.T) {
	src := source.NewStatic([]types.ExperimentDefinition{twoVariantExperiment()})
	eng := newTestEngine(t, WithSource(src))

	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	defer func() { require.NoError(t, eng.Stop(ctx)) }()

	_, ok := eng.GetAssignment("org-1", "", "user-42", "checkout-button")
	require.True(t, ok)

	require.ErrorIs(t, eng.Start(ctx), ErrAlreadyStarted)
}

func TestStartFailsOnInitialLoadError(t *testing.T) {
	src := &flakySource{err: errors.New("catalog service down")}
	eng := newTestEngine(t, WithSource(src))

	err := eng.Start(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrAlreadyStarted)

	// A failed Start leaves the engine stoppable only after a successful one.
	require.ErrorIs(t, eng.Stop(context.Background()), ErrNotStarted)
}

func TestRefreshPicksUpCatalogChanges(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := source.NewStatic([]types.ExperimentDefinition{twoVariantExperiment()})
	eng := newTestEngine(t, WithSource(src), WithClock(clock))

	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	defer func() { _ = eng.Stop(ctx) }()

	// Wait for the refresh loop to arm its ticker before advancing.
	clock.BlockUntil(1)

	next := twoVariantExperiment()
	next.ID = "exp-002"
	next.Key = "free-shipping-banner"
	src.Update([]types.ExperimentDefinition{next})

	clock.Advance(eng.cfg.RefreshInterval)

	require.Eventually(t, func() bool {
		_, ok := eng.GetAssignment("org-1", "", "user-42", "free-shipping-banner")
		return ok
	}, 2*time.Second, 10*time.Millisecond, "refreshed catalog never became visible")

	// The old key was replaced wholesale.
	_, ok := eng.GetAssignment("org-1", "", "user-42", "checkout-button")
	require.False(t, ok)
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	rec := bctesting.NewRecordingMetrics()
	clock := clockwork.NewFakeClock()
	src := &flakySource{defs: []types.ExperimentDefinition{twoVariantExperiment()}}
	eng := newTestEngine(t, WithSource(src), WithClock(clock), WithMetrics(rec))

	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	defer func() { _ = eng.Stop(ctx) }()

	clock.BlockUntil(1)
	src.fail(errors.New("catalog service down"))
	clock.Advance(eng.cfg.RefreshInterval)

	require.Eventually(t, func() bool {
		return rec.CatalogReloadFailures() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	// Prior snapshot still serves.
	_, ok := eng.GetAssignment("org-1", "", "user-42", "checkout-button")
	require.True(t, ok)
}

func TestStopDrainsRefreshLoop(t *testing.T) {
	src := source.NewStatic([]types.ExperimentDefinition{twoVariantExperiment()})
	eng := newTestEngine(t, WithSource(src))

	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	require.NoError(t, eng.Stop(ctx))

	// Stopped engines still serve their last catalog snapshot.
	_, ok := eng.GetAssignment("org-1", "", "user-42", "checkout-button")
	require.True(t, ok)

	require.ErrorIs(t, eng.Stop(ctx), ErrNotStarted)

	// Restart is allowed after a clean stop.
	require.NoError(t, eng.Start(ctx))
	require.NoError(t, eng.Stop(ctx))
}
