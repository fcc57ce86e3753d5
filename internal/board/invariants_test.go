package board

import "testing"

// TestLegalMovesStayInPseudoMoves checks invariant 6: legal moves are
// always a subset of pseudo-moves, for every reachable position visited
// along a short perft walk from the start.
func TestLegalMovesStayInPseudoMoves(t *testing.T) {
	pos := NewPosition()
	walkAndCheckSubset(t, pos, 3)
}

func walkAndCheckSubset(t *testing.T, p *Position, depth int) {
	t.Helper()
	pseudo := p.pseudoMoves()
	legal := p.LegalMoves()
	for i := 0; i < legal.Len(); i++ {
		if !pseudo.Contains(legal.Get(i)) {
			t.Fatalf("legal move %v not found among pseudo-moves", legal.Get(i))
		}
	}
	if depth == 0 {
		return
	}
	for i := 0; i < legal.Len(); i++ {
		cp := p.Copy()
		cp.applyAny(legal.Get(i))
		walkAndCheckSubset(t, cp, depth-1)
	}
}

// TestApplyMovePreservesOwnKingSafety checks invariant 3: every move in
// legal_moves leaves the mover's own king unattacked after application.
func TestApplyMovePreservesOwnKingSafety(t *testing.T) {
	pos := NewPosition()
	moves := pos.LegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		us := pos.SideToMove
		cp := pos.Copy()
		cp.applyAny(m)
		if cp.IsKingAttacked(us) {
			t.Errorf("move %v leaves %s king attacked", m, us)
		}
	}
}

// TestCastlingRightsMonotonic checks invariant 4 across a short legal game:
// once a rights flag is set it never clears.
func TestCastlingRightsMonotonic(t *testing.T) {
	pos := NewPosition()
	prev := pos.Rights
	playSAN(t, pos, "Nf3", "Nc6", "e4", "e5", "Bc4", "Bc5", "O-O")
	cur := pos.Rights
	if prev.WhiteKingMoved && !cur.WhiteKingMoved {
		t.Fatal("WhiteKingMoved flipped false")
	}
	if !cur.WhiteKingMoved {
		t.Error("expected WhiteKingMoved to be set after O-O")
	}
	if !cur.WhiteHRookMoved {
		t.Error("expected WhiteHRookMoved to be set after O-O")
	}
}

// TestEnPassantSetOnlyAfterDoublePush checks invariant 5.
func TestEnPassantSetOnlyAfterDoublePush(t *testing.T) {
	pos := NewPosition()
	if pos.EnPassantTarget != NoSquare {
		t.Fatal("fresh position should have no en-passant target")
	}
	playSAN(t, pos, "e4")
	if pos.EnPassantTarget == NoSquare {
		t.Fatal("expected en-passant target after a double pawn push")
	}
	playSAN(t, pos, "Nc6")
	if pos.EnPassantTarget != NoSquare {
		t.Fatal("en-passant target should clear after the following ply")
	}
}

// TestFoolsMate covers scenario S2.
func TestFoolsMate(t *testing.T) {
	pos := NewPosition()
	playSAN(t, pos, "f3", "e5", "g4")
	if pos.IsCheckmate() || pos.IsStalemate() {
		t.Fatal("position should be normal after white's third move")
	}
	playSAN(t, pos, "Qh4")
	if !pos.IsCheckmate() {
		t.Fatal("expected checkmate after Qh4#")
	}
	if pos.SideToMove != White {
		t.Fatal("white should be the side to move (and the side mated)")
	}
}

// TestCastlingAvailableAfterDevelopment covers scenario S3.
func TestCastlingAvailableAfterDevelopment(t *testing.T) {
	pos := NewPosition()
	playSAN(t, pos, "Nf3", "Nc6", "e4", "e5", "Bc4", "Bc5")
	dests := pos.LegalMovesFor(E1)
	found := false
	for _, d := range dests {
		if d == G1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected e1 king to have g1 among legal destinations (castling), got %v", dests)
	}
}

// TestEnPassantCapture covers scenario S4.
func TestEnPassantCapture(t *testing.T) {
	pos := NewPosition()
	playSAN(t, pos, "e4", "Nf6", "e5", "d5")
	if pos.EnPassantTarget != NewSquareFromChessRank(3, 6) { // d6
		t.Fatalf("expected en-passant target d6, got %v", pos.EnPassantTarget)
	}
	e5 := NewSquareFromChessRank(4, 5)
	d5 := NewSquareFromChessRank(3, 5)
	d6 := NewSquareFromChessRank(3, 6)

	dests := pos.LegalMovesFor(e5)
	found := false
	for _, d := range dests {
		if d == d6 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected e5 pawn to have d6 among legal destinations, got %v", dests)
	}

	m := NewEnPassant(e5, d6)
	pos.MakeMove(m)
	if !pos.IsEmpty(e5) || !pos.IsEmpty(d5) {
		t.Error("en-passant capture should empty both e5 and d5")
	}
	if pos.PieceAt(d6) != WhitePawn {
		t.Error("en-passant capture should place the white pawn on d6")
	}
}

// playSAN applies a sequence of SAN moves in order, failing the test on any
// parse or illegal-move error.
func playSAN(t *testing.T, pos *Position, sans ...string) {
	t.Helper()
	for _, s := range sans {
		m, err := ParseSAN(s, pos)
		if err != nil {
			t.Fatalf("ParseSAN(%q): %v", s, err)
		}
		pos.MakeMove(m)
	}
}
