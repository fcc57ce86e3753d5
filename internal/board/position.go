package board

import "fmt"

// CastlingRights tracks whether each king or original-square rook has ever
// moved. Every flag is monotonic: it may flip false→true but never back —
// matching §3.1's invariant that castling rights only ever tighten.
type CastlingRights struct {
	WhiteKingMoved  bool
	BlackKingMoved  bool
	WhiteARookMoved bool // a1 rook
	WhiteHRookMoved bool // h1 rook
	BlackARookMoved bool // a8 rook
	BlackHRookMoved bool // h8 rook
}

// CanCastleKingSide reports whether the given color still has the rights
// (king and h-rook both untouched) to castle kingside. It does not check
// board occupancy or attacked squares — see Position.genCastling.
func (cr CastlingRights) CanCastleKingSide(c Color) bool {
	if c == White {
		return !cr.WhiteKingMoved && !cr.WhiteHRookMoved
	}
	return !cr.BlackKingMoved && !cr.BlackHRookMoved
}

// CanCastleQueenSide reports the analogous right on the a-side.
func (cr CastlingRights) CanCastleQueenSide(c Color) bool {
	if c == White {
		return !cr.WhiteKingMoved && !cr.WhiteARookMoved
	}
	return !cr.BlackKingMoved && !cr.BlackARookMoved
}

// Position is a complete, self-contained chess position: the 64-square
// board, side to move, castling rights, en-passant state, and a per-piece
// index kept consistent with the board on every mutation (§3.1).
type Position struct {
	squares [64]Piece

	// pieceSquares[p] holds the unordered set of squares occupied by piece p,
	// indexed by the Piece encoding (0..11). Kept in lockstep with squares.
	pieceSquares [12][]Square

	SideToMove Color
	Rights     CastlingRights

	// EnPassantTarget is the empty square a capturing pawn would move to;
	// EnPassantVictim is the pawn that capture would remove. Both are
	// NoSquare, or both are set, for exactly one ply after a double push.
	EnPassantTarget Square
	EnPassantVictim Square
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, err := ParseSnapshot(StartSnapshot)
	if err != nil {
		panic(err) // StartSnapshot is a compile-time constant; must parse.
	}
	return pos
}

// Copy returns an independent deep copy. The search layer copies a position
// before every speculative move application (§5) rather than mutating and
// unwinding in place.
func (p *Position) Copy() *Position {
	cp := &Position{
		squares:         p.squares,
		SideToMove:      p.SideToMove,
		Rights:          p.Rights,
		EnPassantTarget: p.EnPassantTarget,
		EnPassantVictim: p.EnPassantVictim,
	}
	for i, sqs := range p.pieceSquares {
		if len(sqs) == 0 {
			continue
		}
		cp.pieceSquares[i] = append([]Square(nil), sqs...)
	}
	return cp
}

// PieceAt returns the piece occupying sq, or NoPiece if it is empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.squares[sq]
}

// IsEmpty reports whether sq holds no piece.
func (p *Position) IsEmpty(sq Square) bool {
	return p.squares[sq] == NoPiece
}

// Squares returns the squares occupied by the given piece. The caller must
// not mutate the returned slice.
func (p *Position) Squares(piece Piece) []Square {
	return p.pieceSquares[piece]
}

// KingSquare returns the square of the king of color c.
func (p *Position) KingSquare(c Color) Square {
	sqs := p.pieceSquares[NewPiece(King, c)]
	if len(sqs) == 0 {
		return NoSquare
	}
	return sqs[0]
}

// setPiece places piece on sq and records it in the piece index. sq must be
// empty.
func (p *Position) setPiece(piece Piece, sq Square) {
	p.squares[sq] = piece
	p.pieceSquares[piece] = append(p.pieceSquares[piece], sq)
}

// removePiece clears sq and drops it from the piece index. Returns the
// piece that was there, or NoPiece.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.squares[sq]
	if piece == NoPiece {
		return NoPiece
	}
	p.squares[sq] = NoPiece
	p.pieceSquares[piece] = removeSquare(p.pieceSquares[piece], sq)
	return piece
}

// movePiece relocates whatever piece sits on from to the (assumed empty)
// square to, updating the index.
func (p *Position) movePiece(from, to Square) {
	piece := p.squares[from]
	p.squares[from] = NoPiece
	p.squares[to] = piece
	sqs := p.pieceSquares[piece]
	for i, sq := range sqs {
		if sq == from {
			sqs[i] = to
			break
		}
	}
}

func removeSquare(sqs []Square, target Square) []Square {
	for i, sq := range sqs {
		if sq == target {
			return append(sqs[:i], sqs[i+1:]...)
		}
	}
	return sqs
}

// Material returns the white-minus-black material balance in centipawns,
// excluding kings.
func (p *Position) Material() int {
	score := 0
	for _, piece := range AllPieces {
		if piece.Type() == King {
			continue
		}
		count := len(p.pieceSquares[piece])
		if piece.Color() == White {
			score += count * piece.Value()
		} else {
			score -= count * piece.Value()
		}
	}
	return score
}

// String renders an ASCII board for debugging.
func (p *Position) String() string {
	s := "\n"
	for internalRank := 0; internalRank < 8; internalRank++ {
		s += fmt.Sprintf("%d  ", 8-internalRank)
		for file := 0; file < 8; file++ {
			s += p.squares[NewSquare(file, internalRank)].String() + " "
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("En passant target: %s\n", p.EnPassantTarget)
	return s
}
