package goosemg

import (
	"errors"
	"strings"
)

// Startpos constant.
const Startpos = FENStartPos

// FEN parser that panics on invalid input.
func ParseFen(fen string) Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return *b
}

// ToFen exposes the camel-case variant expected by existing engine code.
func (b *Board) ToFen() string { return b.ToFEN() }

// Apply plays a move and returns an undo closure
func (b *Board) Apply(m Move) func() {
	ok, st := b.MakeMove(m)
	if !ok {
		panic("goosemg.Apply: illegal move applied")
	}
	return func() { b.UnmakeMove(m, st) }
}

// ApplyNullMove performs a null move and returns the corresponding undo closure.
func (b *Board) ApplyNullMove() func() {
	st := b.MakeNullMove()
	return func() { b.UnmakeNullMove(st) }
}

// OurKingInCheck reports whether the side to move has its king in check.
func (b *Board) OurKingInCheck() bool { return b.InCheck(b.sideToMove) }

// IsCapture reports whether the given move captures a piece (including en passant).
func IsCapture(m Move, b *Board) bool {
	toBB := uint64(1) << uint(m.To())
	if toBB&b.AllOccupancy() != 0 {
		return true
	}
	if b.enPassantSquare == NoSquare {
		return false
	}
	fromBB := uint64(1) << uint(m.From())
	originIsPawn := (fromBB & (b.pawns[0] | b.pawns[1])) != 0
	epBB := uint64(1) << uint(b.enPassantSquare)
	return originIsPawn && (toBB&epBB) != 0
}

// ParseMove converts a UCI move string (e2e4, e7e8q, 0000) into a fully
// resolved Move against the given board: the moved/captured piece fields,
// en-passant and castle flags, and the promotion piece's color are all
// filled in from the board rather than left blank or hardcoded to White,
// since movegen and makemove both read those fields directly.
func ParseMove(b *Board, movestr string) (Move, error) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if movestr == "0000" {
		return 0, nil
	}
	if len(movestr) < 4 || len(movestr) > 5 {
		return 0, errors.New("invalid move length")
	}
	fromIdx, err := algebraicToIndex(movestr[0:2])
	if err != nil {
		return 0, err
	}
	toIdx, err := algebraicToIndex(movestr[2:4])
	if err != nil {
		return 0, err
	}
	from, to := Square(fromIdx), Square(toIdx)

	moved := b.PieceAt(from)
	if moved == NoPiece {
		return 0, errors.New("no piece on origin square")
	}
	us := colorOf(moved)

	var promo Piece
	if len(movestr) == 5 {
		var pt PieceType
		switch movestr[4] {
		case 'q':
			pt = PieceTypeQueen
		case 'r':
			pt = PieceTypeRook
		case 'b':
			pt = PieceTypeBishop
		case 'n':
			pt = PieceTypeKnight
		default:
			return 0, errors.New("invalid promotion piece")
		}
		promo = PieceFromType(us, pt)
	}

	var flag uint8 = FlagNone
	captured := b.PieceAt(to)
	if moved.Type() == PieceTypePawn && captured == NoPiece && to == b.enPassantSquare {
		flag = FlagEnPassant
	} else if moved.Type() == PieceTypeKing && abs(int(to)-int(from)) == 2 {
		flag = FlagCastle
	}

	return NewMove(from, to, moved, captured, promo, flag), nil
}

func algebraicToIndex(alg string) (int, error) {
	if len(alg) != 2 {
		return 0, errors.New("invalid algebraic square length")
	}
	file := alg[0]
	rank := alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, errors.New("invalid algebraic square")
	}
	return int(file-'a') + int(rank-'1')*8, nil
}
