package goosemg_test

import (
	"testing"

	myengine "chess-engine/goosemg"
)

func mustMove(t *testing.T, b *myengine.Board, s string) myengine.Move {
	t.Helper()
	m, err := myengine.ParseMove(b, s)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", s, err)
	}
	return m
}

func TestPositionFiftyMoveDraw(t *testing.T) {
	b, err := myengine.ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 99 60")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos := myengine.NewPosition(b)
	if pos.IsDraw(false) {
		t.Fatalf("IsDraw true before the 100th halfmove is reached")
	}
	if !pos.MakeMove(mustMove(t, pos.Board(), "e1e2"), false) {
		t.Fatalf("MakeMove rejected a legal king move")
	}
	if !pos.IsDraw(false) {
		t.Errorf("expected 50-move draw once halfmove clock reaches 100")
	}
}

func TestPositionRepetitionDraw(t *testing.T) {
	b, err := myengine.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos := myengine.NewPosition(b)

	shuffle := []string{"e1d1", "e8d8", "d1e1", "d8e8"}
	for round := 0; round < 3; round++ {
		for _, s := range shuffle {
			if !pos.MakeMove(mustMove(t, pos.Board(), s), false) {
				t.Fatalf("MakeMove(%q) rejected as illegal", s)
			}
		}
	}
	if !pos.IsDraw(false) {
		t.Errorf("expected threefold repetition draw after the position recurred twice")
	}
}

func TestPositionUnmakeRestoresBoard(t *testing.T) {
	b, err := myengine.ParseFEN(myengine.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos := myengine.NewPosition(b)
	startHash := pos.Hash()

	if !pos.MakeMove(mustMove(t, pos.Board(), "e2e4"), false) {
		t.Fatalf("MakeMove rejected e2e4")
	}
	if pos.Hash() == startHash {
		t.Fatalf("hash unchanged after a move was made")
	}
	pos.Unmake()
	if pos.Hash() != startHash {
		t.Errorf("Unmake did not restore the original hash: got %x want %x", pos.Hash(), startHash)
	}
	if pos.Ply() != 0 {
		t.Errorf("Ply() = %d after unwinding to the root, want 0", pos.Ply())
	}
}

func TestPositionPushRootBoardsRejectsEmpty(t *testing.T) {
	b, err := myengine.ParseFEN(myengine.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos := myengine.NewPosition(b)
	if err := pos.PushRootBoards(); err == nil {
		t.Errorf("PushRootBoards with no boards should return an error")
	}
}
