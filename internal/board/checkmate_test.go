package board

import "testing"

func TestCheckmate(t *testing.T) {
	// White: Ka1, Ra8. Black: Kh8, pawns on g7/h7 boxing the king in.
	// Black to move, already mated on the back rank.
	snapshot := "R......k" +
		"......pp" +
		"........" +
		"........" +
		"........" +
		"........" +
		"........" +
		"K......."
	pos, err := ParseSnapshot(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	pos.SideToMove = Black

	t.Log(pos)
	moves := pos.LegalMoves()
	t.Log("Black legal moves:", moves.Len())
	if !pos.InCheck() {
		t.Fatal("expected black king to be in check")
	}
	if !pos.IsCheckmate() {
		t.Error("expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("checkmate position must not also report stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king can simply capture the undefended rook giving check.
	snapshot := "......Rk" +
		"........" +
		"........" +
		"........" +
		"........" +
		"........" +
		"........" +
		"K......."
	pos, err := ParseSnapshot(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	pos.SideToMove = Black

	t.Log(pos)
	moves := pos.LegalMoves()
	t.Log("Black legal moves:", moves.Len())
	if pos.IsCheckmate() {
		t.Error("expected NOT checkmate but got true")
	}
}

func TestStalemate(t *testing.T) {
	// Black king boxed into a8 by White Kc7/Qb6: every adjacent square is
	// covered, the king is not in check, and there is no other piece to move.
	snapshot := "k......." +
		"..K....." +
		".Q......" +
		"........" +
		"........" +
		"........" +
		"........" +
		"........"
	pos, err := ParseSnapshot(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	pos.SideToMove = Black
	pos.Rights = CastlingRights{WhiteKingMoved: true, BlackKingMoved: true}

	if pos.InCheck() {
		t.Fatal("setup error: king should not be in check")
	}
	if !pos.IsStalemate() {
		t.Errorf("expected stalemate, legal moves = %d", pos.LegalMoves().Len())
	}
}
