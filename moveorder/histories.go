// Package moveorder implements the staged move-ordering cursor that feeds
// a search: hash move, then MVV-LVA-scored captures, then a countermove
// and killer slots, then history-scored quiets. Histories holds the
// tables the cursor scores and reorders quiets with, carried across the
// whole search rather than per-node.
package moveorder

import "chess-engine/goosemg"

// NumKillers is the number of killer-move slots kept per ply.
const NumKillers = 3

// maxPly bounds the fixed-size per-ply killer table.
const maxPly = 128

// Histories accumulates move-ordering statistics across a search: a
// butterfly table (by side, from, to), a piece-type/to-square table, a
// countermove table keyed by the previous move, and per-ply killer slots.
type Histories struct {
	killers      [NumKillers][maxPly]goosemg.Move
	butterfly    [2][64][64]int32
	pieceTo      [7][64]int32
	countermoves [64][64]goosemg.Move
}

// NewHistories returns a zeroed Histories, ready for a fresh search.
func NewHistories() *Histories { return &Histories{} }

// Clear resets every table to zero, for a new search from scratch.
func (h *Histories) Clear() { *h = Histories{} }

// IsKiller reports whether m is already one of ply's killer moves.
func (h *Histories) IsKiller(m goosemg.Move, ply int) bool {
	if ply < 0 || ply >= maxPly {
		return false
	}
	for i := 0; i < NumKillers; i++ {
		if h.killers[i][ply] == m {
			return true
		}
	}
	return false
}

// Killer returns the i'th killer move recorded for ply, or the zero Move
// if there is none.
func (h *Histories) Killer(i, ply int) goosemg.Move {
	if ply < 0 || ply >= maxPly || i < 0 || i >= NumKillers {
		return 0
	}
	return h.killers[i][ply]
}

// Countermove returns the move previously recorded as a good reply to
// prev, or the zero Move if none has been recorded.
func (h *Histories) Countermove(prev goosemg.Move) goosemg.Move {
	return h.countermoves[int(prev.From())][int(prev.To())]
}

// FailHigh records that move caused a beta cutoff at depth and ply, with
// prev the move played immediately before it (the zero Move if move is a
// root move). It bumps the butterfly and piece-to-square history tables by
// depth^2, records move as prev's countermove, and inserts move into ply's
// killer slots (moving existing killers down, deduplicating if move is
// already a killer there).
func (h *Histories) FailHigh(turn goosemg.Color, move, prev goosemg.Move, depth, ply int) {
	bonus := int32(depth * depth)
	from, to := int(move.From()), int(move.To())
	h.butterfly[int(turn)][from][to] += bonus
	h.pieceTo[move.MovedPiece().Type()][to] += bonus

	if prev != 0 {
		h.countermoves[int(prev.From())][int(prev.To())] = move
	}
	h.insertKiller(move, ply)
}

func (h *Histories) insertKiller(move goosemg.Move, ply int) {
	if ply < 0 || ply >= maxPly {
		return
	}
	// Shift down only the slots in front of move's old slot (all of them if
	// move is new), so move lands in slot 0 exactly once.
	last := NumKillers - 1
	for i := 0; i < NumKillers; i++ {
		if h.killers[i][ply] == move {
			last = i
			break
		}
	}
	for i := last; i > 0; i-- {
		h.killers[i][ply] = h.killers[i-1][ply]
	}
	h.killers[0][ply] = move
}

func (h *Histories) butterflyScore(turn goosemg.Color, move goosemg.Move) int32 {
	return h.butterfly[int(turn)][int(move.From())][int(move.To())]
}

func (h *Histories) pieceTypeScore(move goosemg.Move) int32 {
	return h.pieceTo[move.MovedPiece().Type()][int(move.To())]
}

// quietScore combines the butterfly and piece-to-square contributions,
// the ordering key for the QUIET stage.
func (h *Histories) quietScore(turn goosemg.Color, move goosemg.Move) int32 {
	if h == nil {
		return 0
	}
	return h.butterflyScore(turn, move) + h.pieceTypeScore(move)
}
