package moveorder

import (
	"sort"

	"chess-engine/goosemg"
)

// stage names one state of the move-ordering cursor's finite-state
// machine. Moves are produced in this order: the hash move, then captures
// (best first), then a countermove and killer slots if still untried and
// quiet, then the remaining quiets (best first). A quiescence cursor stops
// at stageCapturesEnd instead of continuing to the countermove/killer/quiet
// stages, unless the side to move is in check.
type stage int

const (
	stageHash stage = iota
	stageCapturesInit
	stageCaptures
	stageCapturesEnd
	stageCountermove
	stageKillers
	stageQuietInit
	stageQuiet
	stageDone
)

// mvvLvaValue scores captures by victim value minus attacker value
// (most valuable victim, least valuable attacker first). Distinct from
// Board.See's own piece-value table: here bishop outranks knight to break
// the tie in the attacker's favour, matching this lineage's capture
// ordering.
var mvvLvaValue = [7]int{
	goosemg.PieceTypeNone:   0,
	goosemg.PieceTypePawn:   10,
	goosemg.PieceTypeKnight: 30,
	goosemg.PieceTypeBishop: 31,
	goosemg.PieceTypeRook:   50,
	goosemg.PieceTypeQueen:  90,
	goosemg.PieceTypeKing:   1000,
}

func captureScore(m goosemg.Move) int32 {
	to := m.CapturedPiece().Type()
	if m.Flags() == goosemg.FlagEnPassant {
		to = goosemg.PieceTypePawn
	}
	from := m.MovedPiece().Type()
	return int32(mvvLvaValue[to] - mvvLvaValue[from])
}

type scoredMove struct {
	move  goosemg.Move
	score int32
}

func sortDescending(moves []scoredMove) {
	sort.SliceStable(moves, func(i, j int) bool { return moves[i].score > moves[j].score })
}

// MoveOrder is a single-use cursor over one position's legal moves in
// staged order. Create a fresh one per node; it holds no state that
// outlives a single move-ordering pass.
type MoveOrder struct {
	b    *goosemg.Board
	h    *Histories
	hash goosemg.Move
	prev goosemg.Move
	ply  int
	depth int

	stage stage
	tried map[goosemg.Move]bool

	captures []scoredMove
	quiets   []scoredMove
	idx      int

	countermove goosemg.Move
	killerIdx   int

	quiescence bool
}

// New builds a MoveOrder for b. hashMove is the transposition-table move
// for this position (zero Move if none); prevMove is the move played to
// reach b (zero Move at the root, used to look up a countermove); ply is
// the search ply (indexes the killer table); depth scales the quiet-move
// score cutoff linearly (quiets scoring at or below -3000*depth are dropped).
// quiescence restricts the cursor to captures when the side to move is
// not in check: quiescence search only wants to resolve captures, not
// walk the full quiet-move list, unless it must find a way out of check.
func New(b *goosemg.Board, h *Histories, hashMove, prevMove goosemg.Move, ply, depth int, quiescence bool) *MoveOrder {
	mo := &MoveOrder{
		b:          b,
		h:          h,
		prev:       prevMove,
		ply:        ply,
		depth:      depth,
		stage:      stageHash,
		tried:      make(map[goosemg.Move]bool, 8),
		quiescence: quiescence,
	}
	if hashMove != 0 && b.Legal(hashMove) {
		mo.hash = hashMove
	}
	if h != nil {
		if cm := h.Countermove(prevMove); cm != 0 {
			mo.countermove = cm
		}
	}
	return mo
}

// Next returns the next move in staged order and true, or the zero Move
// and false once the cursor is exhausted. No move is yielded twice. A
// quiescence cursor whose side to move is not in check stops after the
// captures, and quiets under the history cutoff are never yielded.
func (mo *MoveOrder) Next() (goosemg.Move, bool) {
	for {
		switch mo.stage {
		case stageHash:
			mo.stage = stageCapturesInit
			if mo.hash != 0 {
				mo.tried[mo.hash] = true
				return mo.hash, true
			}

		case stageCapturesInit:
			mo.initCaptures()
			mo.idx = 0
			mo.stage = stageCaptures

		case stageCaptures:
			if m, ok := mo.nextFrom(mo.captures); ok {
				return m, true
			}
			mo.idx = 0
			mo.stage = stageCapturesEnd

		case stageCapturesEnd:
			mo.stage = stageCountermove
			if mo.quiescence && !mo.b.InCheck(mo.b.SideToMove()) {
				mo.stage = stageDone
			}

		case stageCountermove:
			mo.stage = stageKillers
			if mo.countermove != 0 && !mo.tried[mo.countermove] && mo.quietAndLegal(mo.countermove) {
				mo.tried[mo.countermove] = true
				return mo.countermove, true
			}

		case stageKillers:
			if mo.h != nil {
				for mo.killerIdx < NumKillers {
					k := mo.h.Killer(mo.killerIdx, mo.ply)
					mo.killerIdx++
					if k == 0 || mo.tried[k] {
						continue
					}
					if mo.quietAndLegal(k) {
						mo.tried[k] = true
						return k, true
					}
				}
			}
			mo.stage = stageQuietInit

		case stageQuietInit:
			mo.initQuiets()
			mo.idx = 0
			mo.stage = stageQuiet

		case stageQuiet:
			if m, ok := mo.nextFrom(mo.quiets); ok {
				return m, true
			}
			mo.stage = stageDone

		case stageDone:
			return 0, false
		}
	}
}

// nextFrom scans list from mo.idx, skipping already-tried moves, and
// returns the next untried one.
func (mo *MoveOrder) nextFrom(list []scoredMove) (goosemg.Move, bool) {
	for mo.idx < len(list) {
		m := list[mo.idx].move
		mo.idx++
		if mo.tried[m] {
			continue
		}
		mo.tried[m] = true
		return m, true
	}
	return 0, false
}

func (mo *MoveOrder) initCaptures() {
	moves := mo.b.GenerateCaptures()
	mo.captures = mo.captures[:0]
	for _, m := range moves {
		mo.captures = append(mo.captures, scoredMove{move: m, score: captureScore(m)})
	}
	sortDescending(mo.captures)
}

// initQuiets generates quiet moves and drops any scoring at or below
// -3000*depth, the same low-history cutoff the source engine applies
// before sorting the rest by history score.
func (mo *MoveOrder) initQuiets() {
	moves := mo.b.GenerateQuiets()
	threshold := int32(-3000 * mo.depth)
	mo.quiets = mo.quiets[:0]
	for _, m := range moves {
		score := mo.h.quietScore(mo.b.SideToMove(), m)
		if score <= threshold {
			continue
		}
		mo.quiets = append(mo.quiets, scoredMove{move: m, score: score})
	}
	sortDescending(mo.quiets)
}

// quietAndLegal reports whether m is a legal, non-capturing move in the
// current position — the countermove and killer tables can hold moves
// that no longer apply once the position has changed.
func (mo *MoveOrder) quietAndLegal(m goosemg.Move) bool {
	if m.CapturedPiece() != goosemg.NoPiece || m.Flags() == goosemg.FlagEnPassant {
		return false
	}
	return mo.b.Legal(m)
}
