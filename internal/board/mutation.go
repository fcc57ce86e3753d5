package board

// ApplyMove mutates p by playing a normal (non-castling, non-promotion) move
// from from to to, which may be a pawn push, a capture, or an en-passant
// capture. Legality is not checked here — callers filter for legality before
// applying (§4.2, §5).
func (p *Position) ApplyMove(from, to Square) {
	us := p.SideToMove
	prevEPTarget := p.EnPassantTarget
	prevEPVictim := p.EnPassantVictim
	p.EnPassantTarget = NoSquare
	p.EnPassantVictim = NoSquare

	moving := p.squares[from]
	pt := moving.Type()

	p.updateCastlingRights(from, us)

	switch {
	case pt == Pawn && prevEPTarget != NoSquare && to == prevEPTarget:
		p.removePiece(prevEPVictim)
	case !p.IsEmpty(to):
		p.removePiece(to)
	}

	if pt == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		mid := Square((int(from) + int(to)) / 2)
		p.EnPassantTarget = mid
		p.EnPassantVictim = to
	}

	p.movePiece(from, to)
	p.SideToMove = us.Other()
}

// ApplyPromotion mutates p by moving the pawn on from to to and replacing it
// with a piece of promoType and the moving side's color. Any piece standing
// on to is captured first.
func (p *Position) ApplyPromotion(from, to Square, promoType PieceType) {
	us := p.SideToMove
	p.EnPassantTarget = NoSquare
	p.EnPassantVictim = NoSquare

	p.updateCastlingRights(from, us)

	if !p.IsEmpty(to) {
		p.removePiece(to)
	}
	p.removePiece(from)
	p.setPiece(NewPiece(promoType, us), to)

	p.SideToMove = us.Other()
}

// ApplyCastling mutates p by moving the king from kingFrom to kingTo and its
// castling rook from rookFrom to rookTo in the same ply. Neither square
// involved can hold a capture — the generator only offers castling through
// and onto empty squares (§4.3).
func (p *Position) ApplyCastling(kingFrom, kingTo, rookFrom, rookTo Square) {
	us := p.SideToMove
	p.EnPassantTarget = NoSquare
	p.EnPassantVictim = NoSquare

	p.updateCastlingRights(kingFrom, us)
	p.updateCastlingRights(rookFrom, us)

	p.movePiece(kingFrom, kingTo)
	p.movePiece(rookFrom, rookTo)

	p.SideToMove = us.Other()
}

// updateCastlingRights records that the piece on from has moved, tightening
// whichever right that implies. Rights only ever tighten (§3.1 invariant 4):
// a rook captured in place, rather than moved, never reaches this function,
// but genCastling re-checks rook presence on the home square directly,
// so a captured rook still can't be castled with even though its flag never
// flips.
func (p *Position) updateCastlingRights(from Square, us Color) {
	switch from {
	case E1:
		p.Rights.WhiteKingMoved = true
	case E8:
		p.Rights.BlackKingMoved = true
	case A1:
		p.Rights.WhiteARookMoved = true
	case H1:
		p.Rights.WhiteHRookMoved = true
	case A8:
		p.Rights.BlackARookMoved = true
	case H8:
		p.Rights.BlackHRookMoved = true
	}
}
