package domain

import "testing"

func TestRandomWorldNumberInRange(t *testing.T) {
	t.Parallel()

	for i := 0; i < 10000; i++ {
		n := RandomWorldNumber()
		if n < 1 || n > WorldRowCount {
			t.Fatalf("RandomWorldNumber() = %d, want value in [1, %d]", n, WorldRowCount)
		}
	}
}

func TestWorldClone(t *testing.T) {
	t.Parallel()

	w := &World{ID: 7, RandomNumber: 70}
	c := w.Clone()
	if c == w {
		t.Fatal("Clone() returned the same pointer")
	}
	c.RandomNumber = 1
	if w.RandomNumber != 70 {
		t.Errorf("mutating clone changed original: got %d", w.RandomNumber)
	}

	var nilWorld *World
	if nilWorld.Clone() != nil {
		t.Error("Clone() of nil world should be nil")
	}
}
