package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/book"
	"github.com/hailam/chessplay/internal/engine"
	"github.com/hailam/chessplay/internal/storage"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	dir := t.TempDir()
	ledger, err := storage.OpenLedgerAt(dir + "/db")
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })

	eng := engine.NewEngine()
	eng.SetDifficulty(engine.Easy)
	return New(ledger, nil, eng)
}

func playSAN(t *testing.T, g *Game, san string) {
	t.Helper()
	m, err := board.ParseSAN(san, g.Position())
	require.NoError(t, err)
	require.NoError(t, g.Play(m))
}

func TestFoolsMateReachesCheckmate(t *testing.T) {
	g := newTestGame(t)

	playSAN(t, g, "f3")
	playSAN(t, g, "e5")
	playSAN(t, g, "g4")

	require.Equal(t, StatusNormal, g.Status(), "no check or mate yet after white's third move")

	playSAN(t, g, "Qh4")

	require.Equal(t, StatusCheckmate, g.Status())
	winner, ok := g.Winner()
	require.True(t, ok)
	require.Equal(t, board.Black, winner)
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	g := newTestGame(t)
	illegal := board.NewMove(board.NewSquareFromChessRank(4, 2), board.NewSquareFromChessRank(4, 5))
	err := g.Play(illegal)
	require.ErrorIs(t, err, errIllegalMove)
}

func TestPlayRejectsMovesAfterTerminal(t *testing.T) {
	g := newTestGame(t)
	playSAN(t, g, "f3")
	playSAN(t, g, "e5")
	playSAN(t, g, "g4")
	playSAN(t, g, "Qh4")
	require.Equal(t, StatusCheckmate, g.Status())

	m, err := board.ParseMove("a2a3", g.Position())
	require.NoError(t, err)
	err = g.Play(m)
	require.ErrorIs(t, err, errTerminal)
}

func TestStatusPrecedenceRepetitionOverCheck(t *testing.T) {
	dir := t.TempDir()
	ledger, err := storage.OpenLedgerAt(dir + "/db")
	require.NoError(t, err)
	defer ledger.Close()

	eng := engine.NewEngine()
	g := New(ledger, nil, eng)

	// White's king steps out to f2 and Black's queen checks it from h4. The
	// king and queen then shuffle (Ke3 Qe7 Kf2 Qh4+) until the checking
	// position, White to move and in check, has been reached a third time.
	moves := []string{
		"f3", "e5", "Kf2", "Qh4+",
		"Ke3", "Qe7", "Kf2", "Qh4+",
		"Ke3", "Qe7", "Kf2", "Qh4+",
	}
	for _, san := range moves {
		playSAN(t, g, san)
	}

	require.True(t, g.Position().InCheck())
	require.Equal(t, StatusRepetitionDraw, g.Status())
}

func TestSuggestFallsBackToSearchWhenBookEmpty(t *testing.T) {
	g := newTestGame(t)
	m, _, ok := g.Suggest()
	require.True(t, ok)
	require.True(t, g.Position().LegalMoves().Contains(m))
}

func TestSuggestUsesBookAtStartPosition(t *testing.T) {
	lib := book.NewLibrary(mustLoadBook(t, `{"book": {"": {"best_moves": ["e4", "d4"]}}}`))
	lib.SetRand(rand.New(rand.NewSource(7)))

	dir := t.TempDir()
	ledger, err := storage.OpenLedgerAt(dir + "/db")
	require.NoError(t, err)
	defer ledger.Close()

	g := New(ledger, lib, engine.NewEngine())
	m, score, ok := g.Suggest()
	require.True(t, ok)
	require.Equal(t, 0, score, "book suggestions carry no search score")

	san := m.ToSAN(g.Position())
	require.True(t, san == "e4" || san == "d4")
}

func mustLoadBook(t *testing.T, doc string) *book.Book {
	t.Helper()
	b, err := book.LoadReader(strings.NewReader(doc))
	require.NoError(t, err)
	return b
}
