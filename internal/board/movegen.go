package board

// LegalMoves returns every legal move available to the side to move.
// Generation is pseudo-legal first, then filtered by copying the position,
// applying the candidate, and rejecting it if the mover's own king ends up
// attacked (§4.3, §5) — no bitboard pin/check machinery, just brute force.
func (p *Position) LegalMoves() *MoveList {
	pseudo := p.pseudoMoves()
	legal := NewMoveList()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if p.isLegal(m) {
			legal.Add(m)
		}
	}
	return legal
}

// LegalMovesFor returns the destination squares a legal move could send the
// piece on sq to. Used by the UI/ledger layer to answer "where can this
// piece go" without re-deriving full move objects.
func (p *Position) LegalMovesFor(sq Square) []Square {
	all := p.LegalMoves()
	var dests []Square
	for i := 0; i < all.Len(); i++ {
		m := all.Get(i)
		if m.From() == sq {
			dests = append(dests, m.To())
		}
	}
	return dests
}

// PseudoMovesFor returns the destination squares reachable by the piece on
// sq under pure movement rules, without filtering for legality — the
// pseudo_moves(P, q) the evaluation layer's mobility and trapped-piece
// terms weigh (§4.5.5, §4.5.11).
func (p *Position) PseudoMovesFor(sq Square) []Square {
	src := p
	if c := p.squares[sq].Color(); c != NoColor && c != p.SideToMove {
		src = p.Copy()
		src.SideToMove = c
		src.EnPassantTarget, src.EnPassantVictim = NoSquare, NoSquare
	}
	all := src.pseudoMoves()
	var dests []Square
	for i := 0; i < all.Len(); i++ {
		m := all.Get(i)
		if m.From() == sq {
			dests = append(dests, m.To())
		}
	}
	return dests
}

// isLegal reports whether playing m leaves the mover's own king safe.
func (p *Position) isLegal(m Move) bool {
	us := p.SideToMove
	cp := p.Copy()
	cp.applyAny(m)
	return !cp.IsKingAttacked(us)
}

// applyAny dispatches m to the appropriate mutation primitive.
func (p *Position) applyAny(m Move) {
	switch {
	case m.IsCastling():
		kingFrom, kingTo := m.From(), m.To()
		rookFrom, rookTo := castlingRookSquares(kingFrom, kingTo)
		p.ApplyCastling(kingFrom, kingTo, rookFrom, rookTo)
	case m.IsPromotion():
		p.ApplyPromotion(m.From(), m.To(), m.Promotion())
	default:
		p.ApplyMove(m.From(), m.To())
	}
}

// castlingRookSquares returns the rook's home and destination squares for a
// king move encoded as castling.
func castlingRookSquares(kingFrom, kingTo Square) (rookFrom, rookTo Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	return NoSquare, NoSquare
}

// pseudoMoves generates every move for the side to move that respects piece
// movement rules and board occupancy, without checking whether it leaves the
// mover's own king in check.
func (p *Position) pseudoMoves() *MoveList {
	ml := NewMoveList()
	us := p.SideToMove
	for _, piece := range AllPieces {
		if piece.Color() != us {
			continue
		}
		squares := p.pieceSquares[piece]
		for _, from := range squares {
			switch piece.Type() {
			case Pawn:
				p.genPawnMoves(ml, from, us)
			case Knight:
				p.genOffsetMoves(ml, from, us, knightOffsets)
			case Bishop:
				p.genSlidingMoves(ml, from, us, diagonalDirs)
			case Rook:
				p.genSlidingMoves(ml, from, us, orthogonalDirs)
			case Queen:
				p.genSlidingMoves(ml, from, us, orthogonalDirs)
				p.genSlidingMoves(ml, from, us, diagonalDirs)
			case King:
				p.genKingMoves(ml, from, us)
			}
		}
	}
	p.genCastling(ml, us)
	return ml
}

// genSlidingMoves walks each ray in dirs from from until it meets a piece or
// the edge of the board, adding a quiet move or a single capture.
func (p *Position) genSlidingMoves(ml *MoveList, from Square, us Color, dirs [4][2]int) {
	for _, d := range dirs {
		cur := from
		for {
			next, ok := offsetSquare(cur, d[0], d[1])
			if !ok {
				break
			}
			cur = next
			target := p.squares[cur]
			if target == NoPiece {
				ml.Add(NewMove(from, cur))
				continue
			}
			if target.Color() != us {
				ml.Add(NewMove(from, cur))
			}
			break
		}
	}
}

// genKingMoves adds a move for each of the king's eight adjacent offsets
// that lands on the board, is not occupied by a friendly piece, and does
// not land adjacent to the enemy king. Attack detection already treats the
// enemy king as an attacker via kingAttacker, so the self-check filter
// alone would catch this too, but the generator excludes it directly as
// well so both paths agree.
func (p *Position) genKingMoves(ml *MoveList, from Square, us Color) {
	for _, d := range kingOffsets {
		to, ok := offsetSquare(from, d[0], d[1])
		if !ok {
			continue
		}
		target := p.squares[to]
		if target != NoPiece && target.Color() == us {
			continue
		}
		if p.kingsAdjacent(to, us) {
			continue
		}
		ml.Add(NewMove(from, to))
	}
}

// genOffsetMoves adds a move for each offset in offsets that lands on the
// board and is not occupied by a friendly piece — used by the knight.
func (p *Position) genOffsetMoves(ml *MoveList, from Square, us Color, offsets [8][2]int) {
	for _, d := range offsets {
		to, ok := offsetSquare(from, d[0], d[1])
		if !ok {
			continue
		}
		target := p.squares[to]
		if target != NoPiece && target.Color() == us {
			continue
		}
		ml.Add(NewMove(from, to))
	}
}

// genPawnMoves adds single/double pushes, diagonal captures, en-passant, and
// promotions for the pawn on from.
func (p *Position) genPawnMoves(ml *MoveList, from Square, us Color) {
	dir := -1 // White advances toward rank 8, i.e. decreasing internal rank
	startRank := 6
	promoRank := 0
	if us == Black {
		dir = 1
		startRank = 1
		promoRank = 7
	}

	one, ok := offsetSquare(from, 0, dir)
	if ok && p.IsEmpty(one) {
		p.addPawnAdvance(ml, from, one, promoRank)
		if from.Rank() == startRank {
			two, ok2 := offsetSquare(from, 0, 2*dir)
			if ok2 && p.IsEmpty(two) {
				ml.Add(NewMove(from, two))
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := offsetSquare(from, df, dir)
		if !ok {
			continue
		}
		if to == p.EnPassantTarget {
			ml.Add(NewEnPassant(from, to))
			continue
		}
		target := p.squares[to]
		if target != NoPiece && target.Color() != us {
			p.addPawnAdvance(ml, from, to, promoRank)
		}
	}
}

// addPawnAdvance adds a promotion move for each promotable piece type if to
// lands on the far rank, otherwise a plain pawn move.
func (p *Position) addPawnAdvance(ml *MoveList, from, to Square, promoRank int) {
	if to.Rank() == promoRank {
		for _, promo := range [4]PieceType{Queen, Rook, Bishop, Knight} {
			ml.Add(NewPromotion(from, to, promo))
		}
		return
	}
	ml.Add(NewMove(from, to))
}

// genCastling adds kingside/queenside castling moves for us when the rights
// flags allow it, the squares between king and rook are empty, the king is
// not currently in check, does not pass through an attacked square, and the
// rook is still physically present on its home square — the last check
// catches a rook captured in place, which never flips its moved flag (see
// updateCastlingRights).
func (p *Position) genCastling(ml *MoveList, us Color) {
	kingSq := p.KingSquare(us)
	if kingSq == NoSquare || p.IsSquareAttacked(kingSq, us.Other()) {
		return
	}

	var homeRank Square
	var kingHome Square
	if us == White {
		homeRank, kingHome = 56, E1
	} else {
		homeRank, kingHome = 0, E8
	}
	if kingSq != kingHome {
		return
	}

	if p.Rights.CanCastleKingSide(us) && p.rookPresent(homeRank+7, us) {
		f, g := homeRank+5, homeRank+6
		if p.IsEmpty(f) && p.IsEmpty(g) &&
			!p.IsSquareAttacked(f, us.Other()) && !p.IsSquareAttacked(g, us.Other()) {
			ml.Add(NewCastling(kingSq, g))
		}
	}

	if p.Rights.CanCastleQueenSide(us) && p.rookPresent(homeRank, us) {
		b, c, d := homeRank+1, homeRank+2, homeRank+3
		if p.IsEmpty(b) && p.IsEmpty(c) && p.IsEmpty(d) &&
			!p.IsSquareAttacked(c, us.Other()) && !p.IsSquareAttacked(d, us.Other()) {
			ml.Add(NewCastling(kingSq, c))
		}
	}
}

// rookPresent reports whether a rook of color us still stands on sq.
func (p *Position) rookPresent(sq Square, us Color) bool {
	piece := p.squares[sq]
	return piece.Type() == Rook && piece.Color() == us
}
