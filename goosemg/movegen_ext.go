package goosemg

// Bitboard-returning attacker queries, legality verification, and static
// exchange evaluation. Reuses the ray tables and sliding-attack helpers
// already built for move generation and check detection.

// attackersTo returns the bitboard of all of by's pieces that attack sq
// given the supplied occupancy. Unlike isSquareAttackedWithOcc, this
// collects every attacker instead of stopping at the first one found, so
// it can back both the cached checkers bitboard (invariant 7) and SEE's
// attacker re-scan after each capture.
func (b *Board) attackersTo(sq Square, occ uint64, by Color) uint64 {
	if sq == NoSquare {
		return 0
	}
	s := int(sq)
	byIdx := int(by)

	var attackers uint64
	if by == White {
		attackers |= pawnAttacks[Black][s] & b.pawns[byIdx]
	} else {
		attackers |= pawnAttacks[White][s] & b.pawns[byIdx]
	}
	attackers |= knightMoves[s] & b.knights[byIdx]
	attackers |= kingMoves[s] & b.kings[byIdx]

	rq := b.rooks[byIdx] | b.queens[byIdx]
	bq := b.bishops[byIdx] | b.queens[byIdx]
	attackers |= rookAttacks(s, occ) & rq
	attackers |= bishopAttacks(s, occ) & bq
	return attackers
}

// Legal reports whether m is a structurally sound, currently-legal move
// for the side to move: matching piece on the origin square, consistent
// capture/en-passant/castle/promotion flags, correct geometry for the
// moving piece, and no resulting check against the mover's own king.
func (b *Board) Legal(m Move) bool {
	from := m.From()
	to := m.To()
	if from == to {
		return false
	}
	if m.Flags() == flagReserved {
		return false
	}

	us := b.sideToMove
	them := 1 - us
	moved := m.MovedPiece()
	if moved == NoPiece || colorOf(moved) != us {
		return false
	}
	if b.pieces[int(from)] != moved {
		return false
	}

	target := b.pieces[int(to)]
	flag := m.Flags()
	captured := m.CapturedPiece()

	if flag == FlagEnPassant {
		if moved.Type() != PieceTypePawn || to != b.enPassantSquare {
			return false
		}
		var capSq Square
		if us == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		if b.pieces[int(capSq)] != PieceFromType(them, PieceTypePawn) {
			return false
		}
		if target != NoPiece {
			return false
		}
	} else {
		if target != captured {
			return false
		}
		if captured != NoPiece && colorOf(captured) != them {
			return false
		}
	}

	if flag == FlagCastle {
		if moved.Type() != PieceTypeKing {
			return false
		}
	} else if m.PromotionPiece() != NoPiece && moved.Type() != PieceTypePawn {
		return false
	}

	occ := b.AllOccupancy()
	var geometryOK bool
	switch moved.Type() {
	case PieceTypePawn:
		geometryOK = b.legalPawnGeometry(m, us, flag)
	case PieceTypeKnight:
		geometryOK = knightMoves[int(from)]&bb(to) != 0
	case PieceTypeBishop:
		geometryOK = bishopAttacks(int(from), occ)&bb(to) != 0
	case PieceTypeRook:
		geometryOK = rookAttacks(int(from), occ)&bb(to) != 0
	case PieceTypeQueen:
		geometryOK = (rookAttacks(int(from), occ)|bishopAttacks(int(from), occ))&bb(to) != 0
	case PieceTypeKing:
		if flag == FlagCastle {
			geometryOK = b.legalCastleGeometry(m, us)
		} else {
			geometryOK = kingMoves[int(from)]&bb(to) != 0
		}
	}
	if !geometryOK {
		return false
	}

	ok, st := b.MakeMove(m)
	if !ok {
		return false
	}
	b.UnmakeMove(m, st)
	return true
}

// legalPawnGeometry checks a pawn move's shape (single/double push, diagonal
// capture) without regard to check safety, which Legal verifies separately.
func (b *Board) legalPawnGeometry(m Move, us Color, flag uint8) bool {
	from := int(m.From())
	to := int(m.To())
	capturing := flag == FlagEnPassant || m.CapturedPiece() != NoPiece
	if capturing {
		return pawnAttacks[us][from]&bb(Square(to)) != 0
	}

	occ := b.AllOccupancy()
	var dir, startRank int
	if us == White {
		dir, startRank = 8, 1
	} else {
		dir, startRank = -8, 6
	}
	if to == from+dir {
		return occ&bb(Square(to)) == 0
	}
	if from/8 == startRank && to == from+2*dir {
		mid := from + dir
		return occ&bb(Square(mid)) == 0 && occ&bb(Square(to)) == 0
	}
	return false
}

// legalCastleGeometry checks that the castling path is clear and that
// neither the king's start, transit, nor destination square is attacked.
func (b *Board) legalCastleGeometry(m Move, us Color) bool {
	from := m.From()
	to := m.To()
	occ := b.AllOccupancy()
	them := 1 - us

	clear := func(squares ...Square) bool {
		var mask uint64
		for _, s := range squares {
			mask |= bb(s)
		}
		return occ&mask == 0
	}
	safe := func(squares ...Square) bool {
		for _, s := range squares {
			if b.attackersTo(s, occ, them) != 0 {
				return false
			}
		}
		return true
	}

	if us == White {
		if from != 4 {
			return false
		}
		switch to {
		case 6:
			return b.castlingRights&CastlingWhiteK != 0 && clear(5, 6) && safe(4, 5, 6)
		case 2:
			return b.castlingRights&CastlingWhiteQ != 0 && clear(1, 2, 3) && safe(4, 3, 2)
		}
		return false
	}
	if from != 60 {
		return false
	}
	switch to {
	case 62:
		return b.castlingRights&CastlingBlackK != 0 && clear(61, 62) && safe(60, 61, 62)
	case 58:
		return b.castlingRights&CastlingBlackQ != 0 && clear(57, 58, 59) && safe(60, 59, 58)
	}
	return false
}

// SEE piece values, in centipawn tenths as the original engine scores them
// (pawn=10 ... king=1000). Distinct from MoveOrder's MVV-LVA table, which
// breaks the bishop/knight tie differently.
var seeValue = [7]int{
	PieceTypeNone:   0,
	PieceTypePawn:   10,
	PieceTypeKnight: 30,
	PieceTypeBishop: 30,
	PieceTypeRook:   50,
	PieceTypeQueen:  90,
	PieceTypeKing:   1000,
}

// leastValuableAttacker returns the type and bitboard-of-one of the
// cheapest piece in attackers belonging to c, trying pawn, knight,
// bishop, rook, queen, king in that order. Returns PieceTypeNone and an
// empty bitboard if c has no attacker in the set.
func (b *Board) leastValuableAttacker(attackers uint64, c Color) (PieceType, uint64) {
	ci := int(c)
	switch {
	case attackers&b.pawns[ci] != 0:
		return PieceTypePawn, attackers & b.pawns[ci]
	case attackers&b.knights[ci] != 0:
		return PieceTypeKnight, attackers & b.knights[ci]
	case attackers&b.bishops[ci] != 0:
		return PieceTypeBishop, attackers & b.bishops[ci]
	case attackers&b.rooks[ci] != 0:
		return PieceTypeRook, attackers & b.rooks[ci]
	case attackers&b.queens[ci] != 0:
		return PieceTypeQueen, attackers & b.queens[ci]
	case attackers&b.kings[ci] != 0:
		return PieceTypeKing, attackers & b.kings[ci]
	default:
		return PieceTypeNone, 0
	}
}

// See performs static exchange evaluation on m: a swap-list walk of the
// capture sequence on m's destination square, alternating recaptures with
// the least valuable attacker on each side. It returns 10x the net material
// swing in seeValue units (so a losing exchange comes back negative rather
// than merely failing a threshold check), seeding the walk with threshold
// as gain's initial offset so a caller can fold a pruning cutoff straight
// into the score instead of comparing afterward. Mirrors the source
// engine's see(): gain starts at the victim's value minus threshold/10, and
// each subsequent attacker's value is added with alternating sign, pruning
// the moment the side to move is already ahead (they would simply decline
// the recapture).
func (b *Board) See(m Move, threshold int) int {
	target := m.To()

	lastAttacker := m.MovedPiece().Type()
	victim := m.CapturedPiece().Type()
	if m.Flags() == FlagEnPassant {
		victim = PieceTypePawn
	}
	gain := seeValue[victim] - threshold/10

	occupied := b.AllOccupancy() &^ bb(m.From())
	sideToMove := 1 - b.sideToMove
	color := -1

	attackers := b.attackersTo(target, occupied, sideToMove) & occupied
	for attackers != 0 {
		if color*gain > 0 {
			return 10 * gain
		}

		pt, pcBB := b.leastValuableAttacker(attackers, sideToMove)
		gain += color * seeValue[lastAttacker]
		lastAttacker = pt
		occupied &^= uint64(1) << uint(popLSB(&pcBB))
		sideToMove = 1 - sideToMove
		color = -color

		attackers = b.attackersTo(target, occupied, sideToMove) & occupied
	}

	return 10 * gain
}
