package engine

import "github.com/hailam/chessplay/internal/board"

// Infinity bounds alpha-beta; MateScore anchors a forced-mate evaluation
// well above any achievable material score.
const (
	Infinity  = 1 << 30
	MateScore = 25000
)

// DefaultDepth is the fixed search depth D used when the caller does not
// override it (§4.6).
const DefaultDepth = 3

// Searcher runs a pure alpha-beta minimax search over a fixed depth. It
// holds no transposition table, no move-ordering heuristics beyond
// generator order, and no quiescence extension — the search explores
// exactly the tree §4.6 describes.
type Searcher struct {
	nodes uint64
}

// NewSearcher returns a ready Searcher.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Nodes returns the number of positions visited during the last BestMove call.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// BestMove implements the best_move(position, white_to_move) contract: it
// enumerates the mover's legal moves, recurses one ply into minimax for
// each, and selects the maximizing move for White or the minimizing move
// for Black. Returns board.NoMove with a score of 0 if no legal move
// exists.
func (s *Searcher) BestMove(pos *board.Position, depth int) (board.Move, int) {
	s.nodes = 0
	moves := pos.LegalMoves()
	if moves.Len() == 0 {
		return board.NoMove, 0
	}

	whiteToMove := pos.SideToMove == board.White
	best := board.NoMove
	bestScore := -Infinity
	if !whiteToMove {
		bestScore = Infinity
	}

	alpha, beta := -Infinity, Infinity
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		cp := pos.Copy()
		cp.MakeMove(m)

		score := s.minimax(cp, depth-1, !whiteToMove, alpha, beta)

		if whiteToMove {
			if best == board.NoMove || score > bestScore {
				bestScore = score
				best = m
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if best == board.NoMove || score < bestScore {
				bestScore = score
				best = m
			}
			if score < beta {
				beta = score
			}
		}
	}

	return best, bestScore
}

// minimax returns the absolute, White-perspective score of position at the
// given depth. The score is never re-signed by side to move on the way
// back up — only the maximizing/minimizing choice at each node depends on
// whose turn it is. This is the corrected sign convention from §9: the
// reference instead calls evaluate() with the mover's own sign at every
// leaf, which double-signs odd-ply leaves under a non-negamax min/max
// selector. Preserving that bug would make deeper search actively avoid
// good moves at odd depths, so this implementation passes the absolute
// score up instead (see DESIGN.md).
func (s *Searcher) minimax(pos *board.Position, depth int, whiteToMove bool, alpha, beta int) int {
	s.nodes++

	moves := pos.LegalMoves()
	if moves.Len() == 0 {
		if !pos.InCheck() {
			return 0 // stalemate: a draw, not a material-driven score
		}
		// Checkmate: the side to move (pos.SideToMove) has been mated. Score
		// it as extreme in the mated side's disfavor, biased by remaining
		// depth so a mate found with more depth left (i.e. fewer plies from
		// the root) scores more extreme than one found deeper in the tree —
		// the absolute-score analogue of the teacher's "-MateScore + ply".
		if pos.SideToMove == board.White {
			return -(MateScore + depth)
		}
		return MateScore + depth
	}
	if depth == 0 {
		return absoluteEvaluate(pos)
	}

	if whiteToMove {
		best := -Infinity
		for i := 0; i < moves.Len(); i++ {
			cp := pos.Copy()
			cp.MakeMove(moves.Get(i))
			score := s.minimax(cp, depth-1, false, alpha, beta)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := Infinity
	for i := 0; i < moves.Len(); i++ {
		cp := pos.Copy()
		cp.MakeMove(moves.Get(i))
		score := s.minimax(cp, depth-1, true, alpha, beta)
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha {
			break
		}
	}
	return best
}

// absoluteEvaluate returns Evaluate's score re-expressed from White's
// perspective, undoing the side-to-move signing Evaluate applies for its
// own contract (§4.5's final line).
func absoluteEvaluate(pos *board.Position) int {
	score := Evaluate(pos)
	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}
