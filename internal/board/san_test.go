package board

import "testing"

// TestApplyPromotion covers §4.2's promotion path directly: the pawn is
// replaced by the chosen piece, removed from the pawn index, and added to
// the promoted piece's index.
func TestApplyPromotion(t *testing.T) {
	// White pawn one step from promotion, nothing else on the board but
	// both kings (required by the snapshot parser's invariant check).
	snapshot := "........" +
		"P......." +
		"........" +
		"........" +
		"........" +
		"........" +
		"........" +
		"k.....K."
	pos, err := ParseSnapshot(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	pos.SideToMove = White

	from := NewSquareFromChessRank(0, 7) // a7
	to := NewSquareFromChessRank(0, 8)    // a8
	pos.ApplyPromotion(from, to, Queen)

	if pos.PieceAt(to) != WhiteQueen {
		t.Fatalf("expected a white queen on %v, got %v", to, pos.PieceAt(to))
	}
	if !pos.IsEmpty(from) {
		t.Fatalf("expected %v to be empty after promotion", from)
	}
	if len(pos.Squares(WhitePawn)) != 0 {
		t.Fatalf("expected no white pawns left, got %d", len(pos.Squares(WhitePawn)))
	}
	if len(pos.Squares(WhiteQueen)) != 1 {
		t.Fatalf("expected exactly one white queen, got %d", len(pos.Squares(WhiteQueen)))
	}
	if pos.SideToMove != Black {
		t.Fatal("promotion should toggle the side to move")
	}
}

// TestPromotionGeneratesAllFourPieces covers §4.3's promotion enumeration:
// a pawn reaching the last rank offers queen, rook, bishop, and knight.
func TestPromotionGeneratesAllFourPieces(t *testing.T) {
	snapshot := "........" +
		"P......." +
		"........" +
		"........" +
		"........" +
		"........" +
		"........" +
		"k.....K."
	pos, err := ParseSnapshot(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	pos.SideToMove = White

	from := NewSquareFromChessRank(0, 7) // a7
	to := NewSquareFromChessRank(0, 8)    // a8

	legal := pos.LegalMoves()
	seen := map[PieceType]bool{}
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From() == from && m.To() == to && m.IsPromotion() {
			seen[m.Promotion()] = true
		}
	}
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if !seen[pt] {
			t.Errorf("expected a promotion move to %v, none found", pt)
		}
	}
}

// TestSANRoundTripNonAmbiguous covers testable property 7 for the common,
// unambiguous case: encode a move to SAN, reparse it, and recover the same
// (from, to).
func TestSANRoundTripNonAmbiguous(t *testing.T) {
	pos := NewPosition()
	legal := pos.LegalMoves()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		san := m.ToSAN(pos)
		got, err := ParseSAN(san, pos)
		if err != nil {
			t.Fatalf("ParseSAN(%q) after ToSAN: %v", san, err)
		}
		if got.From() != m.From() || got.To() != m.To() {
			t.Errorf("round trip mismatch for %v: SAN %q reparsed to %v", m, san, got)
		}
	}
}

// TestSANDisambiguatesByFile covers §9's disambiguation redesign: two
// knights that can reach the same square must both carry a file qualifier
// in their SAN encoding.
func TestSANDisambiguatesByFile(t *testing.T) {
	// Knights on c3 and g3 both reach e4 (not a real game position, just a
	// disambiguation fixture).
	snapshot := "k......." +
		"........" +
		"........" +
		"........" +
		"........" +
		"..N...N." +
		"........" +
		"......K."
	pos, err := ParseSnapshot(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	pos.SideToMove = White

	c3 := NewSquareFromChessRank(2, 3)
	e4 := NewSquareFromChessRank(4, 4)

	m := NewMove(c3, e4)
	san := m.ToSAN(pos)
	if san != "Nce4" {
		t.Errorf("expected file-disambiguated SAN \"Nce4\", got %q", san)
	}

	got, err := ParseSAN(san, pos)
	if err != nil {
		t.Fatalf("ParseSAN(%q): %v", san, err)
	}
	if got.From() != c3 || got.To() != e4 {
		t.Errorf("expected disambiguated SAN to resolve to c3-e4, got %v-%v", got.From(), got.To())
	}
}

// TestCastlingSANRoundTrip covers castling's special SAN form.
func TestCastlingSANRoundTrip(t *testing.T) {
	pos := NewPosition()
	playSAN(t, pos, "Nf3", "Nc6", "e4", "e5", "Bc4", "Bc5")

	m := NewCastling(E1, G1)
	san := m.ToSAN(pos)
	if san != "O-O" {
		t.Fatalf("expected O-O, got %q", san)
	}
	got, err := ParseSAN(san, pos)
	if err != nil {
		t.Fatalf("ParseSAN(%q): %v", san, err)
	}
	if got.From() != E1 || got.To() != G1 {
		t.Errorf("expected castling to resolve to e1-g1, got %v-%v", got.From(), got.To())
	}
}
