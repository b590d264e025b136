package goosemg

import "fmt"

// MaxDepth is the most root boards PushRootBoards will accept in one call.
// Position.MakeMove and MakeNullMove do not check it. Mirrors
// the fixed-size max-depth arrays the search side of this lineage keeps
// for killers and low-ply history; exported so a caller assembling game
// history before search begins can size its own buffers against it.
const MaxDepth = 1024

// MoveInfo records one entry of a Position's move stack: the move played
// (zero value for a null move), whether it was a search extension, and
// whether it was a null move rather than a real one.
type MoveInfo struct {
	Move     Move
	Extended bool
	IsNull   bool
}

// Position is a search-facing wrapper around a stack of full Board
// snapshots, one per ply reached from the root. Unlike Board's own
// undo-record make/unmake, Position keeps every visited position around so
// it can answer repetition and 50-move questions over the whole game
// history, the way this lineage's search does.
type Position struct {
	boards     []*Board
	infos      []MoveInfo
	extensions int
}

// NewPosition creates a Position rooted at b. b is copied; later mutation
// of the caller's board does not affect the Position.
func NewPosition(b *Board) *Position {
	root := *b
	return &Position{boards: []*Board{&root}}
}

// PushRootBoards replaces the position's root history with boards, in
// order from oldest to current. Used to seed repetition detection with
// game history a Position wasn't present for (e.g. moves played before the
// engine received the "position" command). Returns an error if boards is
// empty or exceeds the maximum depth this Position can track.
func (p *Position) PushRootBoards(boards ...*Board) error {
	if len(boards) == 0 {
		return fmt.Errorf("goosemg: PushRootBoards requires at least one board")
	}
	if len(boards) > MaxDepth {
		return fmt.Errorf("goosemg: %d root boards exceeds max depth %d", len(boards), MaxDepth)
	}
	fresh := make([]*Board, len(boards))
	for i, b := range boards {
		copied := *b
		fresh[i] = &copied
	}
	p.boards = fresh
	p.infos = p.infos[:0]
	p.extensions = 0
	return nil
}

// Board returns the current (top-of-stack) position.
func (p *Position) Board() *Board { return p.boards[len(p.boards)-1] }

// Hash returns the current position's Zobrist hash.
func (p *Position) Hash() uint64 { return p.Board().Hash() }

// Ply returns the number of moves made since the root (or since the last
// PushRootBoards call).
func (p *Position) Ply() int { return len(p.infos) }

// MakeMove plays m against a copy of the current board and pushes the
// resulting position onto the stack. extended marks the move as a search
// extension for callers tracking extension budgets. Returns false, leaving
// the Position unchanged, if m is illegal.
func (p *Position) MakeMove(m Move, extended bool) bool {
	next := *p.Board()
	ok, _ := next.MakeMove(m)
	if !ok {
		return false
	}
	p.boards = append(p.boards, &next)
	p.infos = append(p.infos, MoveInfo{Move: m, Extended: extended})
	if extended {
		p.extensions++
	}
	return true
}

// MakeNullMove pushes a null-move position onto the stack.
func (p *Position) MakeNullMove() {
	next := *p.Board()
	next.MakeNullMove()
	p.boards = append(p.boards, &next)
	p.infos = append(p.infos, MoveInfo{IsNull: true})
}

// Unmake pops the most recent move (real or null) off the stack, restoring
// the Position to what it was before that move was made. Panics if there
// is nothing to unmake.
func (p *Position) Unmake() {
	n := len(p.infos)
	if n == 0 {
		panic("goosemg: Position.Unmake with empty move stack")
	}
	if p.infos[n-1].Extended {
		p.extensions--
	}
	p.infos = p.infos[:n-1]
	p.boards = p.boards[:len(p.boards)-1]
}

// Extensions returns the number of search extensions currently applied
// along the path from the root to the current position.
func (p *Position) Extensions() int { return p.extensions }

// LastMove returns the most recently played move and whether it was a
// null move; ok is false if the position is at the root.
func (p *Position) LastMove() (info MoveInfo, ok bool) {
	if len(p.infos) == 0 {
		return MoveInfo{}, false
	}
	return p.infos[len(p.infos)-1], true
}

// IsDraw reports whether the current position is a draw by the 50-move
// rule or by repetition, walking back over the same-side-to-move boards
// inside the halfmove-clock window (only when that window spans at least
// 8 plies). If unique is true, a single earlier repeat of the current hash
// (two total occurrences of the same side-to-move position) is enough;
// otherwise two earlier repeats (three total occurrences) are required
// (matching the search-time "avoid repeating" vs. root-time
// "this position already recurred" distinction).
func (p *Position) IsDraw(unique bool) bool {
	cur := p.Board()
	if cur.HalfmoveClock() >= 100 {
		return true
	}

	curPos := len(p.boards) - 1
	nMoves := cur.HalfmoveClock()
	if curPos+1 < nMoves {
		nMoves = curPos + 1
	}
	minPos := curPos - nMoves + 1

	if nMoves >= 8 {
		pos1 := curPos - 4
		for pos1 >= minPos {
			if cur.Hash() == p.boards[pos1].Hash() {
				if unique {
					return true
				}
				pos2 := pos1 - 4
				for pos2 >= minPos {
					if cur.Hash() == p.boards[pos2].Hash() {
						return true
					}
					pos2 -= 2
				}
			}
			pos1 -= 2
		}
	}
	return false
}
