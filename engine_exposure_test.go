package bucketeer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bucketeer/ledger"
	bctesting "github.com/arloliu/bucketeer/testing"
	"github.com/arloliu/bucketeer/types"
)

type failingLedger struct {
	err   error
	calls int
}

func (l *failingLedger) MarkSeen(_ /* ctx */ context.Context, _, _, _ string) (bool, error) {
	l.calls++

	return false, l.err
}

func TestRecordExposureWithoutLedger(t *testing.T) {
	rec := bctesting.NewRecordingMetrics()
	eng := newTestEngine(t, WithMetrics(rec))
	require.NoError(t, eng.LoadExperiments([]types.ExperimentDefinition{twoVariantExperiment()}))

	ctx := context.Background()

	first, ok := eng.RecordExposure(ctx, "org-1", "", "user-42", "checkout-button", "checkout-page")
	require.True(t, ok)
	require.False(t, first.Deduplicated)
	require.Equal(t, "checkout-page", first.Surface)
	require.NotEmpty(t, first.VariantKey)

	// No ledger configured means every call emits.
	second, ok := eng.RecordExposure(ctx, "org-1", "", "user-42", "checkout-button", "checkout-page")
	require.True(t, ok)
	require.False(t, second.Deduplicated)

	require.Equal(t, 2, rec.Exposures("checkout-button", first.VariantKey, "checkout-page"))
}

func TestRecordExposureDeduplicates(t *testing.T) {
	rec := bctesting.NewRecordingMetrics()
	eng := newTestEngine(t, WithMetrics(rec), WithLedger(ledger.NewMemory()))
	require.NoError(t, eng.LoadExperiments([]types.ExperimentDefinition{twoVariantExperiment()}))

	ctx := context.Background()

	first, ok := eng.RecordExposure(ctx, "org-1", "", "user-42", "checkout-button", "checkout-page")
	require.True(t, ok)
	require.False(t, first.Deduplicated)

	second, ok := eng.RecordExposure(ctx, "org-1", "", "user-42", "checkout-button", "checkout-page")
	require.True(t, ok)
	require.True(t, second.Deduplicated)
	require.Equal(t, first.VariantKey, second.VariantKey)

	// A different surface is a distinct tuple.
	other, ok := eng.RecordExposure(ctx, "org-1", "", "user-42", "checkout-button", "email-banner")
	require.True(t, ok)
	require.False(t, other.Deduplicated)

	require.Equal(t, 1, rec.Exposures("checkout-button", first.VariantKey, "checkout-page"))
	require.Equal(t, 1, rec.Exposures("checkout-button", first.VariantKey, "email-banner"))
	require.Equal(t, 1, rec.ExposuresDeduplicated("checkout-button", "checkout-page"))
}

func TestRecordExposureLedgerFailOpen(t *testing.T) {
	rec := bctesting.NewRecordingMetrics()
	fl := &failingLedger{err: errors.New("kv store unreachable")}
	eng := newTestEngine(t, WithMetrics(rec), WithLedger(fl))
	require.NoError(t, eng.LoadExperiments([]types.ExperimentDefinition{twoVariantExperiment()}))

	ctx := context.Background()

	// Ledger failures degrade to recording without dedup instead of
	// blocking the exposure.
	result, ok := eng.RecordExposure(ctx, "org-1", "", "user-42", "checkout-button", "checkout-page")
	require.True(t, ok)
	require.False(t, result.Deduplicated)
	require.Equal(t, 1, fl.calls)
	require.Equal(t, 1, rec.TotalExposures())
}

func TestRecordExposureNoAssignment(t *testing.T) {
	rec := bctesting.NewRecordingMetrics()
	eng := newTestEngine(t, WithMetrics(rec))

	exp := twoVariantExperiment()
	exp.Status = types.StatusPaused
	require.NoError(t, eng.LoadExperiments([]types.ExperimentDefinition{exp}))

	ctx := context.Background()

	t.Run("unknown experiment", func(t *testing.T) {
		_, ok := eng.RecordExposure(ctx, "org-1", "", "user-42", "no-such-experiment", "checkout-page")
		require.False(t, ok)
	})

	t.Run("inactive experiment", func(t *testing.T) {
		_, ok := eng.RecordExposure(ctx, "org-1", "", "user-42", "checkout-button", "checkout-page")
		require.False(t, ok)
	})

	require.Equal(t, 0, rec.TotalExposures())
}

func TestRecordExposureCreatesAssignment(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.LoadExperiments([]types.ExperimentDefinition{twoVariantExperiment()}))

	// Exposure on a never-before-seen subject assigns first, then records.
	result, ok := eng.RecordExposure(context.Background(), "org-1", "", "user-99", "checkout-button", "checkout-page")
	require.True(t, ok)
	require.True(t, result.IsNew)

	a, ok := eng.GetAssignment("org-1", "", "user-99", "checkout-button")
	require.True(t, ok)
	require.False(t, a.IsNew)
	require.Equal(t, result.VariantKey, a.VariantKey)
}
