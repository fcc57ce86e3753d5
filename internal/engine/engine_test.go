package engine

import (
	"testing"

	"github.com/hailam/chessplay/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineDefaultsToMedium(t *testing.T) {
	eng := NewEngine()
	assert.Equal(t, Medium, eng.difficulty)
	assert.Equal(t, DefaultDepth, eng.Depth())
}

func TestSetDifficultyChangesDepth(t *testing.T) {
	eng := NewEngine()
	eng.SetDifficulty(Easy)
	assert.Equal(t, 2, eng.Depth())
	eng.SetDifficulty(Hard)
	assert.Equal(t, 5, eng.Depth())
}

func TestBestMoveFromStartingPosition(t *testing.T) {
	eng := NewEngine()
	eng.SetDifficulty(Easy)
	pos := board.NewPosition()

	move, _ := eng.BestMove(pos)
	require.NotEqual(t, board.NoMove, move, "expected a legal move from the starting position")

	legal := pos.LegalMoves()
	require.True(t, legal.Contains(move), "BestMove returned an illegal move")
	assert.Greater(t, eng.Nodes(), uint64(0))
}

func TestBestMoveFindsMateInOne(t *testing.T) {
	// Back-rank mate: black king boxed in by its own pawns on g7/h7, white
	// rook one file-slide away from delivering mate on the back rank.
	snap := ".......k" +
		"......pp" +
		"........" +
		"........" +
		"........" +
		"........" +
		"R......." +
		"....K..."
	pos, err := board.ParseSnapshot(snap)
	require.NoError(t, err)
	pos.SideToMove = board.White

	eng := NewEngine()
	eng.SetDifficulty(Easy)
	move, score := eng.BestMove(pos)
	require.NotEqual(t, board.NoMove, move)

	cp := pos.Copy()
	cp.MakeMove(move)
	assert.True(t, cp.IsCheckmate(), "expected engine to find a mating move")
	assert.Greater(t, score, MateScore-100)
}

func TestPerftStartingPositionDepthOne(t *testing.T) {
	eng := NewEngine()
	pos := board.NewPosition()
	assert.Equal(t, uint64(20), eng.Perft(pos, 1))
}

func TestPerftStartingPositionDepthTwo(t *testing.T) {
	eng := NewEngine()
	pos := board.NewPosition()
	assert.Equal(t, uint64(400), eng.Perft(pos, 2))
}

func TestEvaluateStartingPositionIsBalanced(t *testing.T) {
	eng := NewEngine()
	pos := board.NewPosition()
	assert.Equal(t, 0, eng.Evaluate(pos), "symmetric starting position should evaluate to 0 for the side to move")
}

func TestScoreToString(t *testing.T) {
	assert.Equal(t, "1.00", ScoreToString(100))
	assert.Equal(t, "-1.00", ScoreToString(-100))
	assert.Equal(t, "Mate in 1", ScoreToString(MateScore))
	assert.Equal(t, "Mated in 1", ScoreToString(-MateScore))
}
