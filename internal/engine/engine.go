package engine

import (
	"log"

	"github.com/hailam/chessplay/internal/board"
)

// Difficulty selects the fixed search depth the engine plays at. It is a
// coarse strength dial rather than a time budget: there is no time
// manager to hand a budget to, so difficulty maps directly to depth.
type Difficulty int

const (
	Easy   Difficulty = iota // depth 2
	Medium                   // depth 3, the search package's default depth
	Hard                     // depth 5
)

var difficultyDepth = map[Difficulty]int{
	Easy:   2,
	Medium: DefaultDepth,
	Hard:   5,
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Engine wraps a Searcher with a configurable depth. It holds no
// transposition table, no worker pool, and no learned evaluation network —
// the search runs single-threaded to completion on the caller's goroutine,
// so it is trivially invocable from a background worker without the core
// coordinating any threads itself.
type Engine struct {
	searcher   *Searcher
	difficulty Difficulty
}

// NewEngine returns a ready Engine at the default (Medium) difficulty.
func NewEngine() *Engine {
	return &Engine{
		searcher:   NewSearcher(),
		difficulty: Medium,
	}
}

// SetDifficulty changes the fixed search depth used by BestMove.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Depth returns the ply depth the engine currently searches to.
func (e *Engine) Depth() int {
	return difficultyDepth[e.difficulty]
}

// BestMove runs the fixed-depth alpha-beta search and returns the move the
// search layer selects, or board.NoMove if the position has no legal move.
func (e *Engine) BestMove(pos *board.Position) (board.Move, int) {
	move, score := e.searcher.BestMove(pos, e.Depth())
	if move == board.NoMove {
		log.Printf("[engine] no legal move for %s to move", pos.SideToMove)
	}
	return move, score
}

// Nodes returns the number of positions visited by the most recent BestMove
// call, exposed for diagnostics.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}

// Evaluate returns the static evaluation of pos, independent of any
// search.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// Perft counts leaf nodes reachable in exactly depth plies — a move
// generator correctness cross-check, not part of play itself.
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		cp := pos.Copy()
		cp.MakeMove(moves.Get(i))
		nodes += e.Perft(cp, depth-1)
	}
	return nodes
}

// ScoreToString renders a centipawn/mate score the way a UCI "info"
// response would: "Mate in N", "Mated in N", or signed pawns with two
// decimal places.
func ScoreToString(score int) string {
	if score > MateScore-100 {
		mateIn := (MateScore-score)/2 + 1
		return "Mate in " + itoa(mateIn)
	}
	if score < -MateScore+100 {
		mateIn := (MateScore+score)/2 + 1
		return "Mated in " + itoa(mateIn)
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	pawns := score / 100
	centipawns := score % 100
	frac := itoa(centipawns)
	if centipawns < 10 {
		frac = "0" + frac
	}
	return sign + itoa(pawns) + "." + frac
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	s := ""
	for n > 0 {
		s = string('0'+byte(n%10)) + s
		n /= 10
	}
	return s
}
