package goosemg_test

import (
	"testing"

	"chess-engine/goosemg"
)

func TestGenerateMovesInto_NoAlloc(t *testing.T) {
	b, err := goosemg.ParseFEN(goosemg.FENStartPos)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]goosemg.Move, 0, 256)
	allocs := testing.AllocsPerRun(100, func() {
		buf = b.GenerateMovesInto(buf)
		if len(buf) != 20 {
			t.Fatalf("expected 20 moves, got %d", len(buf))
		}
		buf = buf[:0]
	})
	if allocs != 0 {
		t.Fatalf("expected 0 allocs, got %f", allocs)
	}
}

func TestGeneratePseudoMovesInto_NoAlloc(t *testing.T) {
	b, err := goosemg.ParseFEN(goosemg.FENStartPos)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]goosemg.Move, 0, 256)
	allocs := testing.AllocsPerRun(100, func() {
		buf = b.GeneratePseudoMovesInto(buf)
		if len(buf) != 20 {
			t.Fatalf("expected 20 pseudo moves, got %d", len(buf))
		}
		buf = buf[:0]
	})
	if allocs != 0 {
		t.Fatalf("expected 0 allocs, got %f", allocs)
	}
}

func TestGenerateCapturesInto_NoAlloc(t *testing.T) {
	// En passant position has exactly 1 capture available.
	fen := "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]goosemg.Move, 0, 256)
	allocs := testing.AllocsPerRun(100, func() {
		buf = b.GenerateCapturesInto(buf)
		if len(buf) != 1 {
			t.Fatalf("expected 1 capture (EP), got %d", len(buf))
		}
		buf = buf[:0]
	})
	if allocs != 0 {
		t.Fatalf("expected 0 allocs, got %f", allocs)
	}
}

func TestGenerateQuietsInto_NoAlloc(t *testing.T) {
	b, err := goosemg.ParseFEN(goosemg.FENStartPos)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]goosemg.Move, 0, 256)
	allocs := testing.AllocsPerRun(100, func() {
		buf = b.GenerateQuietsInto(buf)
		if len(buf) != 20 {
			t.Fatalf("expected 20 quiet moves in initial position, got %d", len(buf))
		}
		buf = buf[:0]
	})
	if allocs != 0 {
		t.Fatalf("expected 0 allocs, got %f", allocs)
	}
}
