package strategy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bucketeer/internal/hash"
	"github.com/arloliu/bucketeer/types"
)

func fiftyFifty() types.ExperimentDefinition {
	return types.ExperimentDefinition{
		ID:         "exp-1",
		Key:        "checkout-button",
		Status:     types.StatusRunning,
		HashSalt:   "v1",
		Allocation: 100,
		Variants: []types.Variant{
			{ID: "var-1", Key: "control", Weight: 50},
			{ID: "var-2", Key: "treatment", Weight: 50},
		},
	}
}

func TestWeightedHash_Deterministic(t *testing.T) {
	s := NewWeightedHash()
	exp := fiftyFifty()

	first, ok := s.Select(exp, "user-42")
	require.True(t, ok)

	for range 1000 {
		v, ok := s.Select(exp, "user-42")

		require.True(t, ok)
		require.Equal(t, first, v)
	}
}

func TestWeightedHash_ZeroVariants(t *testing.T) {
	s := NewWeightedHash()
	exp := fiftyFifty()
	exp.Variants = nil

	_, ok := s.Select(exp, "user-42")

	require.False(t, ok)
}

func TestWeightedHash_ZeroAllocationExcludesEveryone(t *testing.T) {
	s := NewWeightedHash()
	exp := fiftyFifty()
	exp.Allocation = 0

	for i := range 1000 {
		_, ok := s.Select(exp, fmt.Sprintf("user-%d", i))

		require.False(t, ok)
	}
}

func TestWeightedHash_FullAllocationIncludesEveryone(t *testing.T) {
	s := NewWeightedHash()
	exp := fiftyFifty()

	for i := range 1000 {
		_, ok := s.Select(exp, fmt.Sprintf("user-%d", i))

		require.True(t, ok)
	}
}

func TestWeightedHash_PartialAllocationExcludesSome(t *testing.T) {
	s := NewWeightedHash()
	exp := fiftyFifty()
	exp.Allocation = 50

	included, excluded := 0, 0
	for i := range 1000 {
		if _, ok := s.Select(exp, fmt.Sprintf("user-%d", i)); ok {
			included++
		} else {
			excluded++
		}
	}

	require.Positive(t, included)
	require.Positive(t, excluded)
}

func TestWeightedHash_AllocationIndependence(t *testing.T) {
	// Ramping allocation from 100 down to 50 may drop subjects, but it must
	// never change the variant of a subject who remains allocated.
	s := NewWeightedHash()
	full := fiftyFifty()
	ramped := fiftyFifty()
	ramped.Allocation = 50

	checked := 0
	for i := range 2000 {
		subject := fmt.Sprintf("user-%d", i)

		rampedVariant, ok := s.Select(ramped, subject)
		if !ok {
			continue
		}

		fullVariant, fullOK := s.Select(full, subject)
		require.True(t, fullOK)
		require.Equal(t, fullVariant, rampedVariant, "subject %q", subject)
		checked++
	}

	require.Positive(t, checked)
}

func TestWeightedHash_UnderweightedFallsBackToFirstVariant(t *testing.T) {
	// Weights {30, 30} sum to 60: subjects whose variant bucket lands at 60
	// or above must still get a variant, specifically the first one.
	s := NewWeightedHash()
	exp := fiftyFifty()
	exp.Variants[0].Weight = 30
	exp.Variants[1].Weight = 30

	sawFallback := false
	for i := range 1000 {
		subject := fmt.Sprintf("user-%d", i)

		v, ok := s.Select(exp, subject)
		require.True(t, ok, "underweighted catalog must never drop traffic")

		bucket := hash.Mod100(subject + ":" + exp.Key + ":" + exp.HashSalt)
		if bucket >= 60 {
			require.Equal(t, exp.Variants[0], v, "subject %q bucket %d", subject, bucket)
			sawFallback = true
		}
	}

	require.True(t, sawFallback, "expected some subjects past the cumulative weight")
}

func TestWeightedHash_ZeroWeightVariantNeverSelected(t *testing.T) {
	s := NewWeightedHash()
	exp := fiftyFifty()
	exp.Variants = []types.Variant{
		{ID: "var-1", Key: "control", Weight: 0},
		{ID: "var-2", Key: "treatment", Weight: 100},
	}

	for i := range 1000 {
		v, ok := s.Select(exp, fmt.Sprintf("user-%d", i))

		require.True(t, ok)
		require.Equal(t, "treatment", v.Key)
	}
}

func TestWeightedHash_SaltChangesReshuffle(t *testing.T) {
	// Different salts must bucket the same population differently; this is
	// what keeps experiments statistically independent of each other.
	s := NewWeightedHash()
	expA := fiftyFifty()
	expB := fiftyFifty()
	expB.HashSalt = "v2"

	diverged := 0
	for i := range 1000 {
		subject := fmt.Sprintf("user-%d", i)
		va, okA := s.Select(expA, subject)
		vb, okB := s.Select(expB, subject)
		require.True(t, okA)
		require.True(t, okB)

		if va.Key != vb.Key {
			diverged++
		}
	}

	// Two independent 50/50 splits should disagree on roughly half the
	// population.
	require.Greater(t, diverged, 300)
	require.Less(t, diverged, 700)
}
