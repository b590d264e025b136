package moveorder_test

import (
	"testing"

	"chess-engine/goosemg"
	"chess-engine/moveorder"
)

func move(from, to goosemg.Square) goosemg.Move {
	return goosemg.NewMove(from, to, goosemg.WhitePawn, goosemg.NoPiece, goosemg.NoPiece, goosemg.FlagNone)
}

func TestHistoriesFailHighRecordsKillerAndCountermove(t *testing.T) {
	h := moveorder.NewHistories()
	prev := move(12, 28) // e2e4
	m := move(52, 36)    // e7e5, say

	h.FailHigh(goosemg.Black, m, prev, 4, 3)

	if !h.IsKiller(m, 3) {
		t.Errorf("expected %s to be recorded as a killer at ply 3", m.String())
	}
	if got := h.Countermove(prev); got != m {
		t.Errorf("Countermove(prev) = %s, want %s", got.String(), m.String())
	}
	if score := h.Killer(0, 3); score != m {
		t.Errorf("Killer(0, 3) = %s, want %s", score.String(), m.String())
	}
}

func TestHistoriesKillerInsertionDeduplicatesAndShifts(t *testing.T) {
	h := moveorder.NewHistories()
	m1 := move(8, 16)
	m2 := move(9, 17)
	m3 := move(10, 18)

	h.FailHigh(goosemg.White, m1, 0, 1, 5)
	h.FailHigh(goosemg.White, m2, 0, 1, 5)
	h.FailHigh(goosemg.White, m3, 0, 1, 5)

	if got := h.Killer(0, 5); got != m3 {
		t.Errorf("Killer(0,5) = %s, want most recent %s", got.String(), m3.String())
	}
	if got := h.Killer(1, 5); got != m2 {
		t.Errorf("Killer(1,5) = %s, want %s", got.String(), m2.String())
	}
	if got := h.Killer(2, 5); got != m1 {
		t.Errorf("Killer(2,5) = %s, want %s", got.String(), m1.String())
	}

	// Re-recording an existing killer moves it to slot 0 without duplicating it.
	h.FailHigh(goosemg.White, m2, 0, 1, 5)
	if got := h.Killer(0, 5); got != m2 {
		t.Errorf("after re-fail-high, Killer(0,5) = %s, want %s", got.String(), m2.String())
	}
	seen := 0
	for i := 0; i < moveorder.NumKillers; i++ {
		if h.Killer(i, 5) == m2 {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("move %s appears %d times among killer slots, want exactly 1", m2.String(), seen)
	}
}

func TestHistoriesClearResetsAllTables(t *testing.T) {
	h := moveorder.NewHistories()
	m := move(1, 2)
	h.FailHigh(goosemg.White, m, 0, 3, 0)
	if !h.IsKiller(m, 0) {
		t.Fatalf("setup: expected killer to be recorded")
	}
	h.Clear()
	if h.IsKiller(m, 0) {
		t.Errorf("IsKiller still true after Clear")
	}
	if got := h.Countermove(0); got != 0 {
		t.Errorf("Countermove still set after Clear: %s", got.String())
	}
}

func TestHistoriesOutOfRangeAccessorsAreSafe(t *testing.T) {
	h := moveorder.NewHistories()
	if got := h.Killer(0, -1); got != 0 {
		t.Errorf("Killer with negative ply should return the zero Move, got %s", got.String())
	}
	if got := h.Killer(99, 0); got != 0 {
		t.Errorf("Killer with out-of-range index should return the zero Move, got %s", got.String())
	}
}
