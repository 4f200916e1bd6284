package memory

import "github.com/phrazzld/worldbench/internal/domain"

// Seed returns worlds 1 through n, each with a random number drawn from
// next. A nil next uses domain.RandomWorldNumber.
func Seed(n int, next domain.RandomSource) []*domain.World {
	if next == nil {
		next = domain.RandomWorldNumber
	}
	worlds := make([]*domain.World, n)
	for i := range worlds {
		worlds[i] = &domain.World{ID: int32(i + 1), RandomNumber: next()}
	}
	return worlds
}

// DefaultFortunes returns the twelve fortunes the benchmark database is
// seeded with, in id order.
func DefaultFortunes() []*domain.Fortune {
	messages := []string{
		"fortune: No such file or directory",
		"A computer scientist is someone who fixes things that aren't broken.",
		"After enough decimal places, nobody gives a damn.",
		"A bad random number generator: 1, 1, 1, 1, 1, 4.33e+67, 1, 1, 1",
		"A computer program does what you tell it to do, not what you want it to do.",
		"Emacs is a nice operating system, but I prefer UNIX. — Tom Christaensen",
		"Any program that runs right is obsolete.",
		"A list is only as strong as its weakest link. — Donald Knuth",
		"Feature: A bug with seniority.",
		"Computers make very fast, very accurate mistakes.",
		`<script>alert("This should not be displayed in a browser alert box.");</script>`,
		"フレームワークのベンチマーク",
	}
	fortunes := make([]*domain.Fortune, len(messages))
	for i, m := range messages {
		fortunes[i] = &domain.Fortune{ID: int32(i + 1), Message: m}
	}
	return fortunes
}
