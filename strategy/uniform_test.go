package strategy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUniform_Deterministic(t *testing.T) {
	s := NewUniform()
	exp := fiftyFifty()

	first, ok := s.Select(exp, "user-42")
	require.True(t, ok)

	for range 100 {
		v, ok := s.Select(exp, "user-42")

		require.True(t, ok)
		require.Equal(t, first, v)
	}
}

func TestUniform_ZeroVariants(t *testing.T) {
	s := NewUniform()
	exp := fiftyFifty()
	exp.Variants = nil

	_, ok := s.Select(exp, "user-42")

	require.False(t, ok)
}

func TestUniform_RespectsAllocationGate(t *testing.T) {
	s := NewUniform()
	weighted := NewWeightedHash()
	exp := fiftyFifty()
	exp.Allocation = 50

	// Both strategies share the allocation gate, so they must agree on who
	// participates even when they disagree on the variant.
	for i := range 1000 {
		subject := fmt.Sprintf("user-%d", i)
		_, uniformOK := s.Select(exp, subject)
		_, weightedOK := weighted.Select(exp, subject)

		require.Equal(t, weightedOK, uniformOK, "subject %q", subject)
	}
}
