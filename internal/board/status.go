package board

// IsCheckmate reports whether the side to move is in check with no legal
// move available.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && p.LegalMoves().Len() == 0
}

// IsStalemate reports whether the side to move is not in check but has no
// legal move available.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && p.LegalMoves().Len() == 0
}
