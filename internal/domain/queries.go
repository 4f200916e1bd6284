package domain

import "strconv"

const (
	// MinQueries is the lowest number of worlds a multi-query request returns.
	MinQueries = 1
	// MaxQueries is the highest number of worlds a multi-query request returns.
	MaxQueries = 500
)

// ClampQueries parses the "queries" request parameter. A missing or
// non-numeric value yields MinQueries; values are clamped to
// [MinQueries, MaxQueries].
func ClampQueries(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < MinQueries {
		return MinQueries
	}
	if n > MaxQueries {
		return MaxQueries
	}
	return n
}
