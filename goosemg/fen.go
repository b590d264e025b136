package goosemg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Sentinel errors returned by ParseFEN, so callers at the protocol boundary
// can errors.Is against a specific malformed-field case instead of matching
// on message text.
var (
	ErrMalformedFEN     = errors.New("goosemg: malformed FEN")
	ErrBadPieceChar     = errors.New("goosemg: unrecognized FEN piece character")
	ErrBadCastlingChar  = errors.New("goosemg: invalid FEN castling rights character")
	ErrBadEnPassant     = errors.New("goosemg: invalid FEN en-passant square")
	ErrBadMoveClock     = errors.New("goosemg: invalid FEN move clock")
)

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// charFromPiece converts a Piece constant to its FEN character representation.
func charFromPiece(p Piece) rune {
	switch p {
	case WhitePawn:
		return 'P'
	case WhiteKnight:
		return 'N'
	case WhiteBishop:
		return 'B'
	case WhiteRook:
		return 'R'
	case WhiteQueen:
		return 'Q'
	case WhiteKing:
		return 'K'
	case BlackPawn:
		return 'p'
	case BlackKnight:
		return 'n'
	case BlackBishop:
		return 'b'
	case BlackRook:
		return 'r'
	case BlackQueen:
		return 'q'
	case BlackKing:
		return 'k'
	default:
		return '?' // should not happen for valid pieces
	}
}

// ParseFEN parses a FEN string and returns a new Board set up to that position.
// Returns an error if the FEN is invalid or cannot be parsed; never panics.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Split(strings.TrimSpace(fen), " ")
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: not enough fields", ErrMalformedFEN)
	}

	board := &Board{}
	board.enPassantSquare = NoSquare

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: incorrect number of ranks", ErrMalformedFEN)
	}

	for i, rankStr := range ranks {
		if len(rankStr) == 0 {
			return nil, fmt.Errorf("%w: empty rank description", ErrMalformedFEN)
		}
		rankIndex := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
			} else {
				piece := pieceFromChar(ch)
				if piece == NoPiece {
					return nil, fmt.Errorf("%w: %q", ErrBadPieceChar, ch)
				}
				if file >= 8 {
					return nil, fmt.Errorf("%w: too many squares in rank", ErrMalformedFEN)
				}
				sq := Square(rankIndex*8 + file)
				board.addPiece(sq, piece)
				file++
			}
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank does not have 8 columns", ErrMalformedFEN)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		board.sideToMove = White
	case "b":
		board.sideToMove = Black
	default:
		return nil, fmt.Errorf("%w: side to move must be 'w' or 'b'", ErrMalformedFEN)
	}

	// 3. Castling rights
	board.castlingRights = 0
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				board.castlingRights |= CastlingWhiteK
			case 'Q':
				board.castlingRights |= CastlingWhiteQ
			case 'k':
				board.castlingRights |= CastlingBlackK
			case 'q':
				board.castlingRights |= CastlingBlackQ
			default:
				return nil, fmt.Errorf("%w: %q", ErrBadCastlingChar, ch)
			}
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		if len(fields[3]) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrBadEnPassant, fields[3])
		}
		fileChar := fields[3][0]
		rankChar := fields[3][1]
		if fileChar < 'a' || fileChar > 'h' || rankChar < '1' || rankChar > '8' {
			return nil, fmt.Errorf("%w: %q out of range", ErrBadEnPassant, fields[3])
		}
		file := int(fileChar - 'a')
		rank := int(rankChar - '1')
		board.enPassantSquare = Square(rank*8 + file)
		board.zobristKey ^= zobristEnPassant[file]
	} else {
		board.enPassantSquare = NoSquare
	}

	// 5. Halfmove clock (lenient: absent defaults to 0)
	if len(fields) > 4 {
		halfmove, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("%w: halfmove clock %q", ErrBadMoveClock, fields[4])
		}
		board.halfmoveClock = halfmove
	}

	// 6. Fullmove number (lenient: absent defaults to 1, always clamped to >= 1)
	board.fullmoveNumber = 1
	if len(fields) > 5 {
		fullmove, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("%w: fullmove number %q", ErrBadMoveClock, fields[5])
		}
		board.fullmoveNumber = fullmove
	}
	if board.fullmoveNumber < 1 {
		board.fullmoveNumber = 1
	}

	if board.sideToMove == Black {
		board.zobristKey ^= zobristSide
	}
	board.zobristKey ^= zobristCastle[int(board.castlingRights)]

	board.recomputePSQPhase()
	board.updateCheckers()
	return board, nil
}

// ToFEN produces the FEN string representation of the board's current state.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			sq := rank*8 + file
			p := b.pieces[sq]
			if p == NoPiece {
				emptyCount++
			} else {
				if emptyCount > 0 {
					sb.WriteByte('0' + byte(emptyCount))
					emptyCount = 0
				}
				sb.WriteRune(charFromPiece(p))
			}
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	// 3. Castling rights
	if b.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if b.castlingRights&CastlingWhiteK != 0 {
			sb.WriteByte('K')
		}
		if b.castlingRights&CastlingWhiteQ != 0 {
			sb.WriteByte('Q')
		}
		if b.castlingRights&CastlingBlackK != 0 {
			sb.WriteByte('k')
		}
		if b.castlingRights&CastlingBlackQ != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')

	// 4. En passant square
	if b.enPassantSquare != NoSquare {
		file := b.enPassantSquare % 8
		rank := b.enPassantSquare / 8
		sb.WriteByte('a' + byte(file))
		sb.WriteByte('1' + byte(rank))
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')

	// 5. Halfmove clock
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')

	// 6. Fullmove number
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
