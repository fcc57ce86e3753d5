package board

import (
	"fmt"
	"strings"
)

// MakeMove applies m to p using whichever mutation primitive matches its
// encoding — the shared entry point used by SAN conversion, the ledger, and
// the UCI harness once a move is already known to be legal.
func (p *Position) MakeMove(m Move) {
	p.applyAny(m)
}

// ToSAN converts a move to Standard Algebraic Notation, including
// disambiguation and the check/checkmate suffix.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from := m.From()
	to := m.To()
	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return m.String()
	}

	if m.IsCastling() {
		s := "O-O"
		if to < from {
			s = "O-O-O"
		}
		return s + checkSuffix(pos, m)
	}

	pt := piece.Type()
	var sb strings.Builder

	if pt != Pawn {
		sb.WriteByte("PNBRQK"[pt])
		sb.WriteString(disambiguation(pos, m, pt))
	}

	if m.IsCapture(pos) {
		if pt == Pawn {
			sb.WriteByte('a' + byte(from.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(to.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte("PNBRQK"[m.Promotion()])
	}

	sb.WriteString(checkSuffix(pos, m))
	return sb.String()
}

// checkSuffix plays m on a copy of pos and reports the "+"/"#" suffix.
func checkSuffix(pos *Position, m Move) string {
	cp := pos.Copy()
	cp.MakeMove(m)
	switch {
	case cp.IsCheckmate():
		return "#"
	case cp.InCheck():
		return "+"
	default:
		return ""
	}
}

// disambiguation returns the file, rank, or full-square qualifier needed to
// distinguish m from other legal moves of the same piece type to the same
// destination — honoring the full rule (file first, then rank, then both)
// rather than stopping at the first ambiguous candidate found.
func disambiguation(pos *Position, m Move, pt PieceType) string {
	from := m.From()
	to := m.To()

	var others []Square
	legal := pos.LegalMoves()
	for i := 0; i < legal.Len(); i++ {
		other := legal.Get(i)
		if other.To() != to || other.From() == from {
			continue
		}
		if pos.PieceAt(other.From()).Type() != pt {
			continue
		}
		others = append(others, other.From())
	}
	if len(others) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range others {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.ChessRank() == from.ChessRank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + from.File()))
	}
	if !sameRank {
		return string(rune('0' + from.ChessRank()))
	}
	return from.String()
}

// ParseSAN parses a SAN string against pos and returns the matching legal
// move, resolving disambiguators by file, rank, or both as given.
func ParseSAN(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "+")
	s = strings.TrimSuffix(s, "#")

	castle := NoMove
	if s == "O-O" || s == "0-0" {
		castle = NewCastling(E1, G1)
		if pos.SideToMove == Black {
			castle = NewCastling(E8, G8)
		}
	}
	if s == "O-O-O" || s == "0-0-0" {
		castle = NewCastling(E1, C1)
		if pos.SideToMove == Black {
			castle = NewCastling(E8, C8)
		}
	}
	if castle != NoMove {
		if !pos.LegalMoves().Contains(castle) {
			return NoMove, fmt.Errorf("castling %q is not legal in this position", s)
		}
		return castle, nil
	}

	promoPiece := NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 {
		switch s[idx+1] {
		case 'N':
			promoPiece = Knight
		case 'B':
			promoPiece = Bishop
		case 'R':
			promoPiece = Rook
		case 'Q':
			promoPiece = Queen
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("invalid SAN move: %q", s)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, err
	}
	s = s[:len(s)-2]

	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			disambigFile = int(c - 'a')
		case c >= '1' && c <= '8':
			disambigRank = int(c - '1') // chess rank, 0-indexed from rank 1
		}
	}

	moves := pos.LegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.To() != dest {
			continue
		}
		from := m.From()
		if pos.PieceAt(from).Type() != pt {
			continue
		}
		if disambigFile >= 0 && from.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && from.ChessRank() != disambigRank+1 {
			continue
		}
		if isCapture && !m.IsCapture(pos) {
			continue
		}
		if promoPiece != NoPieceType && (!m.IsPromotion() || m.Promotion() != promoPiece) {
			continue
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("no legal move matches SAN %q (destination %s)", s, dest)
}

// MovesToSAN renders a sequence of moves played from pos as SAN strings.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()
	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.MakeMove(m)
	}
	return result
}
