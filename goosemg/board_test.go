package goosemg_test

import (
	"testing"

	myengine "chess-engine/goosemg"
)

func TestFENAndValidate(t *testing.T) {
	b, err := myengine.ParseFEN(myengine.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !b.Validate() {
		t.Fatalf("board invariants invalid after FEN parse")
	}

	if b.PieceAt(0) != myengine.WhiteRook { // a1
		t.Errorf("expected a1 WhiteRook, got %v", b.PieceAt(0))
	}
	if b.PieceAt(4) != myengine.WhiteKing { // e1
		t.Errorf("expected e1 WhiteKing, got %v", b.PieceAt(4))
	}
	if b.PieceAt(56) != myengine.BlackRook { // a8
		t.Errorf("expected a8 BlackRook, got %v", b.PieceAt(56))
	}
	if b.PieceAt(60) != myengine.BlackKing { // e8
		t.Errorf("expected e8 BlackKing, got %v", b.PieceAt(60))
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		myengine.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 b - - 3 12",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
	}
	for _, fen := range fens {
		b, err := myengine.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := b.ToFEN(); got != fen {
			t.Errorf("round trip mismatch: in=%q out=%q", fen, got)
		}
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"not a fen at all",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR z KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XYkq - 0 1",
	}
	for _, fen := range bad {
		if _, err := myengine.ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q): expected error, got nil", fen)
		}
	}
}

func TestParseFENClampsFullmoveNumber(t *testing.T) {
	b, err := myengine.ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got := b.ToFEN(); got != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1" {
		t.Errorf("fullmove number not clamped to 1: %q", got)
	}
}

func TestBoardMovePieceUpdates(t *testing.T) {
	b, err := myengine.ParseFEN(myengine.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	startKey := b.ComputeZobrist()
	if startKey != b.ComputeZobrist() {
		t.Fatalf("zobrist mismatch on initial compute")
	}

	from := myengine.Square(1*8 + 4) // e2
	to := myengine.Square(3*8 + 4)   // e4
	if b.PieceAt(from) != myengine.WhitePawn {
		t.Fatalf("expected WhitePawn at e2 before move")
	}
	if b.PieceAt(to) != myengine.NoPiece {
		t.Fatalf("expected empty e4 before move")
	}

	b.MovePiece(from, to)
	if !b.Validate() {
		t.Fatalf("board invariants invalid after MovePiece")
	}
	if b.PieceAt(from) != myengine.NoPiece || b.PieceAt(to) != myengine.WhitePawn {
		t.Fatalf("piece locations not updated correctly after MovePiece")
	}
}

func TestValidateTracksMaterialPhaseAndCheckers(t *testing.T) {
	b, err := myengine.ParseFEN(myengine.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6"}
	for _, mstr := range moves {
		m, err := myengine.ParseMove(b, mstr)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", mstr, err)
		}
		if ok, _ := b.MakeMove(m); !ok {
			t.Fatalf("MakeMove(%q) rejected as illegal", mstr)
		}
		if !b.Validate() {
			t.Fatalf("board invariants invalid after %q", mstr)
		}
	}
	if b.Checkers() != 0 {
		t.Errorf("expected no checkers in a quiet opening position, got %#x", b.Checkers())
	}

	checkBoard, err := myengine.ParseFEN("4k3/8/8/8/8/4R3/8/4K3 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !checkBoard.Validate() {
		t.Fatalf("board invariants invalid for check position")
	}
	if checkBoard.Checkers() == 0 {
		t.Errorf("expected black king in check from the rook on e3, checkers bitboard is empty")
	}
}
