package domain

// Interest rate policy bounds.
const (
	RateBase = 3
	RateCap  = 10
)

// ComputeInterestRate maps loan amount and duration to a bounded annual
// interest rate percentage. Pure and total for amount >= 0 and duration >= 0.
//
// The result is computed once at submission and persisted with the record;
// later policy changes never retroactively alter stored applications.
func ComputeInterestRate(amount int64, durationMonths int) int {
	rate := RateBase

	// Larger amounts carry more risk.
	switch {
	case amount > 250_000:
		rate += 2
	case amount > 100_000:
		rate += 1
	}

	// Longer durations carry more risk.
	switch {
	case durationMonths > 24:
		rate += 3
	case durationMonths > 12:
		rate += 2
	case durationMonths > 6:
		rate += 1
	}

	return min(rate, RateCap)
}
