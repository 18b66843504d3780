package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeInterestRate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		amount   int64
		duration int
		want     int
	}{
		{"floor", 10_000, 3, 3},
		{"short small loan", 50_000, 6, 3},
		{"medium amount bump", 150_000, 6, 4},
		{"large amount bump", 300_000, 6, 5},
		{"boundary 100000 not bumped", 100_000, 6, 3},
		{"boundary 250000 single bump", 250_000, 6, 4},
		{"duration over 6", 50_000, 7, 4},
		{"duration over 12", 50_000, 13, 5},
		{"duration over 24", 50_000, 25, 6},
		{"documented example", 300_000, 30, 8},
		{"second documented example", 120_000, 13, 6},
		{"both bumps at max", 500_000, 36, 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ComputeInterestRate(tc.amount, tc.duration))
		})
	}
}

func TestComputeInterestRateStaysBounded(t *testing.T) {
	t.Parallel()

	for amount := int64(AmountMin); amount <= AmountMax; amount += 10_000 {
		for duration := DurationMinMonths; duration <= DurationMaxMonths; duration++ {
			rate := ComputeInterestRate(amount, duration)
			require.GreaterOrEqual(t, rate, RateBase, "amount=%d duration=%d", amount, duration)
			require.LessOrEqual(t, rate, RateCap, "amount=%d duration=%d", amount, duration)
		}
	}
}

func TestComputeInterestRateTotalForDegenerateInputs(t *testing.T) {
	t.Parallel()

	require.Equal(t, 3, ComputeInterestRate(0, 0))
	require.Equal(t, 8, ComputeInterestRate(1_000_000_000, 1000))
}
