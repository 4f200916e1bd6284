package domain

import (
	"math/rand/v2"
)

// WorldRowCount is the number of rows seeded into the world table.
// Random ids and random numbers are both drawn from [1, WorldRowCount].
const WorldRowCount = 10000

// World is a benchmark row with an integer primary key and one mutable
// random number. Rows pre-exist in storage; the application only reads
// them and rewrites RandomNumber.
type World struct {
	ID           int32 `json:"id"`
	RandomNumber int32 `json:"randomNumber"`
}

// Clone returns a copy of the world that shares no memory with w.
func (w *World) Clone() *World {
	if w == nil {
		return nil
	}
	c := *w
	return &c
}

// RandomSource yields values in [1, WorldRowCount]. Handlers take one as a
// dependency so tests can make id and number selection deterministic.
type RandomSource func() int32

// RandomWorldNumber returns a uniformly distributed value in [1, WorldRowCount].
// It is used both as a world id and as a new random number.
func RandomWorldNumber() int32 {
	return rand.Int32N(WorldRowCount) + 1
}
