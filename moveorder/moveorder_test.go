package moveorder_test

import (
	"testing"

	"chess-engine/goosemg"
	"chess-engine/moveorder"
)

func mustParse(t *testing.T, fen string) *goosemg.Board {
	t.Helper()
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func drain(mo *moveorder.MoveOrder) []goosemg.Move {
	var out []goosemg.Move
	for {
		m, ok := mo.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

func TestMoveOrderYieldsEveryLegalMoveExactlyOnce(t *testing.T) {
	b := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	mo := moveorder.New(b, nil, 0, 0, 0, 1, false)

	got := drain(mo)
	want := b.GenerateMoves()
	if len(got) != len(want) {
		t.Fatalf("MoveOrder yielded %d moves, GenerateMoves found %d", len(got), len(want))
	}

	seen := make(map[goosemg.Move]int, len(got))
	for _, m := range got {
		seen[m]++
	}
	for _, m := range want {
		if seen[m] != 1 {
			t.Errorf("move %s yielded %d times, want exactly 1", m.String(), seen[m])
		}
	}
}

func TestMoveOrderHashMoveComesFirst(t *testing.T) {
	b := mustParse(t, goosemg.FENStartPos)
	moves := b.GenerateMoves()
	var hashMove goosemg.Move
	for _, m := range moves {
		if m.String() == "e2e4" {
			hashMove = m
			break
		}
	}
	if hashMove == 0 {
		t.Fatalf("e2e4 not found among generated moves")
	}

	mo := moveorder.New(b, nil, hashMove, 0, 0, 1, false)
	first, ok := mo.Next()
	if !ok {
		t.Fatalf("MoveOrder produced no moves")
	}
	if first != hashMove {
		t.Errorf("first move was %s, want hash move %s", first.String(), hashMove.String())
	}
}

func TestMoveOrderCapturesBeforeQuiets(t *testing.T) {
	b := mustParse(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	mo := moveorder.New(b, nil, 0, 0, 0, 1, false)

	var sawQuiet bool
	for {
		m, ok := mo.Next()
		if !ok {
			break
		}
		isCapture := m.CapturedPiece() != goosemg.NoPiece || m.Flags() == goosemg.FlagEnPassant
		if isCapture && sawQuiet {
			t.Fatalf("capture %s yielded after a quiet move", m.String())
		}
		if !isCapture {
			sawQuiet = true
		}
	}
}

func TestMoveOrderStalemateYieldsNoMoves(t *testing.T) {
	// Classic K+Q vs K stalemate: Black to move, not in check, no legal moves.
	b := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	mo := moveorder.New(b, nil, 0, 0, 0, 1, false)
	got := drain(mo)
	if len(got) != 0 {
		t.Fatalf("expected no legal moves in stalemate, got %d: %v", len(got), got)
	}
}

func TestMoveOrderQuiescenceStopsAfterCapturesWhenNotInCheck(t *testing.T) {
	b := mustParse(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	mo := moveorder.New(b, nil, 0, 0, 0, 1, true)

	got := drain(mo)
	for _, m := range got {
		isCapture := m.CapturedPiece() != goosemg.NoPiece || m.Flags() == goosemg.FlagEnPassant
		if !isCapture {
			t.Errorf("quiescence cursor yielded quiet move %s while not in check", m.String())
		}
	}
	if len(got) == 0 {
		t.Fatalf("expected at least the exd5 capture, got none")
	}
}

func TestMoveOrderQuiescenceContinuesToQuietsWhenInCheck(t *testing.T) {
	// White king in check from the rook on e8; no capture resolves the
	// check, so quiescence must still walk quiet king moves to escape it.
	b := mustParse(t, "4r3/8/8/8/8/8/8/4K3 w - - 0 1")
	mo := moveorder.New(b, nil, 0, 0, 0, 1, true)

	got := drain(mo)
	if len(got) == 0 {
		t.Fatalf("expected quiet king moves out of check, got none")
	}
	for _, m := range got {
		if !b.Legal(m) {
			t.Errorf("yielded illegal move %s", m.String())
		}
	}
}
