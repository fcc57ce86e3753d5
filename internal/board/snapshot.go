package board

import (
	"fmt"
	"strings"
)

// StartSnapshot is the 64-character snapshot of the standard starting
// position, in index order (a8..h8, a7..h7, ..., a1..h1).
const StartSnapshot = "rnbqkbnrpppppppp................................PPPPPPPPRNBQKBNR"

// Snapshot renders the position as the 64-character board encoding used by
// the ledger and the opening book: one character per square in index
// order, uppercase for White, lowercase for Black, '.' for empty.
func (p *Position) Snapshot() string {
	var sb strings.Builder
	sb.Grow(64)
	for sq := Square(0); sq < 64; sq++ {
		sb.WriteString(p.squares[sq].String())
	}
	return sb.String()
}

// ParseSnapshot builds a Position from a 64-character board encoding. Side
// to move, castling rights, and en-passant state are not recoverable from
// the snapshot alone, so the position starts with White to move, full
// castling rights, and no en-passant target — the caller (ledger replay,
// book lookup) is responsible for overriding these when they matter.
func ParseSnapshot(snapshot string) (*Position, error) {
	if len(snapshot) != 64 {
		return nil, fmt.Errorf("invalid snapshot: want 64 characters, got %d", len(snapshot))
	}

	pos := &Position{
		SideToMove:      White,
		EnPassantTarget: NoSquare,
		EnPassantVictim: NoSquare,
	}

	for i := 0; i < 64; i++ {
		c := snapshot[i]
		if c == '.' {
			pos.squares[i] = NoPiece
			continue
		}
		piece := PieceFromChar(c)
		if piece == NoPiece {
			return nil, fmt.Errorf("invalid snapshot character %q at index %d", c, i)
		}
		pos.setPiece(piece, Square(i))
	}

	if len(pos.pieceSquares[WhiteKing]) != 1 {
		return nil, fmt.Errorf("snapshot must contain exactly one white king, got %d", len(pos.pieceSquares[WhiteKing]))
	}
	if len(pos.pieceSquares[BlackKing]) != 1 {
		return nil, fmt.Errorf("snapshot must contain exactly one black king, got %d", len(pos.pieceSquares[BlackKing]))
	}

	return pos, nil
}
