package goosemg_test

import (
	"testing"

	myengine "chess-engine/goosemg"
)

func TestGenerateCapturesAndQuietsPartitionMoves(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	b, err := myengine.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	all := b.GenerateMoves()
	captures := b.GenerateCaptures()
	quiets := b.GenerateQuiets()

	if len(captures)+len(quiets) != len(all) {
		t.Fatalf("captures(%d)+quiets(%d) != all(%d)", len(captures), len(quiets), len(all))
	}
	for _, m := range captures {
		if m.CapturedPiece() == myengine.NoPiece && m.Flags() != myengine.FlagEnPassant {
			t.Errorf("capture list contains non-capturing move %s", m.String())
		}
	}
	for _, m := range quiets {
		if m.CapturedPiece() != myengine.NoPiece || m.Flags() == myengine.FlagEnPassant {
			t.Errorf("quiet list contains capturing move %s", m.String())
		}
	}
}

func TestLegalAcceptsGeneratedMoves(t *testing.T) {
	b, err := myengine.ParseFEN(myengine.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	for _, m := range b.GenerateMoves() {
		if !b.Legal(m) {
			t.Errorf("Legal() rejected generated move %s", m.String())
		}
	}
}

func TestLegalRejectsReservedSentinels(t *testing.T) {
	b, err := myengine.ParseFEN(myengine.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if b.Legal(myengine.MoveInvalid1) {
		t.Errorf("Legal() accepted MoveInvalid1")
	}
	if b.Legal(myengine.MoveInvalid2) {
		t.Errorf("Legal() accepted MoveInvalid2")
	}
}

func TestLegalRejectsMismatchedOriginPiece(t *testing.T) {
	b, err := myengine.ParseFEN(myengine.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	// Claim a knight moves from e2 (actually holds a pawn).
	from := myengine.Square(12)
	to := myengine.Square(28)
	bogus := myengine.NewMove(from, to, myengine.WhiteKnight, myengine.NoPiece, myengine.NoPiece, myengine.FlagNone)
	if b.Legal(bogus) {
		t.Errorf("Legal() accepted a move whose piece does not match the origin square")
	}
}

func TestLegalRejectsMoveThatLeavesKingInCheck(t *testing.T) {
	// White king on e1 with a knight on e2 blocking the black rook's check
	// along the e-file; moving the knight off that file exposes the king.
	b, err := myengine.ParseFEN("4r2k/8/8/8/8/8/4N3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := myengine.ParseMove(b, "e2f4")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if b.Legal(m) {
		t.Errorf("Legal() accepted a move that leaves the king in check")
	}
}

func TestSeeWinningAndLosingCaptures(t *testing.T) {
	// White rook can take a defended pawn on e5; the black knight on d7
	// recaptures. Losing the exchange: rook (50) for pawn (10), then the
	// knight stands: 10*(10-50) = -400.
	b, err := myengine.ParseFEN("4k3/3n4/8/4p3/8/8/8/4RK2 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := myengine.ParseMove(b, "e1e5")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if got := b.See(m, 0); got != -400 {
		t.Errorf("See() = %d, want -400 for a losing rook-for-pawn exchange", got)
	}

	// White pawn takes an undefended knight: strictly winning, 10*30 = 300.
	b2, err := myengine.ParseFEN("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m2, err := myengine.ParseMove(b2, "e4d5")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if got := b2.See(m2, 0); got != 300 {
		t.Errorf("See() = %d, want 300 for a free knight capture", got)
	}
}

func TestSeeQueenTakesDefendedPawn(t *testing.T) {
	// Queen captures a pawn defended by a knight: see(move, 0) =
	// 10 * (10 - 90) = -800, the documented worked example.
	b, err := myengine.ParseFEN("4k3/3n4/8/4p3/8/8/8/4QK2 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := myengine.ParseMove(b, "e1e5")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if got := b.See(m, 0); got != -800 {
		t.Errorf("See() = %d, want -800", got)
	}
}

func TestPerftInitialPosition(t *testing.T) {
	b, err := myengine.ParseFEN(myengine.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got := myengine.Perft(b, 1); got != 20 {
		t.Fatalf("perft depth1: got %d want %d", got, 20)
	}
	if got := myengine.Perft(b, 2); got != 400 {
		t.Fatalf("perft depth2: got %d want %d", got, 400)
	}
	if got := myengine.Perft(b, 3); got != 8902 {
		t.Fatalf("perft depth3: got %d want %d", got, 8902)
	}
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	b, err := myengine.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got := myengine.Perft(b, 1); got != 48 {
		t.Fatalf("Kiwipete depth1: got %d want %d", got, 48)
	}
	if got := myengine.Perft(b, 2); got != 2039 {
		t.Fatalf("Kiwipete depth2: got %d want %d", got, 2039)
	}
}

func TestPerftEnPassantPosition(t *testing.T) {
	fen := "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"
	b, err := myengine.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got := myengine.Perft(b, 1); got != 5 {
		t.Fatalf("EP depth1: got %d want %d", got, 5)
	}
	if got := myengine.Perft(b, 2); got != 19 {
		t.Fatalf("EP depth2: got %d want %d", got, 19)
	}
}

func TestPerftPromotionPosition(t *testing.T) {
	fen := "1n5k/P7/8/8/8/8/8/7K w - - 0 1"
	b, err := myengine.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got := myengine.Perft(b, 1); got != 11 {
		t.Fatalf("Promotion depth1: got %d want %d", got, 11)
	}
}

func TestPerftParallelMatchesSerial(t *testing.T) {
	b, err := myengine.ParseFEN(myengine.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	want := myengine.Perft(b, 3)
	got, err := myengine.PerftParallel(b, 3)
	if err != nil {
		t.Fatalf("PerftParallel: %v", err)
	}
	if got != want {
		t.Fatalf("PerftParallel depth3: got %d want %d", got, want)
	}
}
