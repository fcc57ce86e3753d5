// Package game wires the board, search, opening book, and history ledger
// together into the top-level control loop: consult the book, fall back to
// search, classify the resulting position, and freeze on any terminal
// status.
package game

import (
	"log"
	"strings"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/book"
	"github.com/hailam/chessplay/internal/engine"
	"github.com/hailam/chessplay/internal/storage"
)

// Status is the reported game state, in precedence order:
// repetition > checkmate > stalemate > fifty-move > check > normal.
type Status int

const (
	StatusNormal Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
	StatusFiftyMoveDraw
	StatusRepetitionDraw
)

// String renders the status the way a UCI "info string" or CLI prompt
// would.
func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusFiftyMoveDraw:
		return "fifty_move_draw"
	case StatusRepetitionDraw:
		return "repetition_draw"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether s freezes the position: no further moves are
// accepted once reached.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCheckmate, StatusStalemate, StatusFiftyMoveDraw, StatusRepetitionDraw:
		return true
	default:
		return false
	}
}

// Game holds one position's worth of mutable state: the board, the
// ledger backing the draw rules, the opening book, and the search engine,
// plus the algebraic sequence needed to key book lookups.
type Game struct {
	pos      *board.Position
	ledger   *storage.Ledger
	books    *book.Library
	eng      *engine.Engine
	sequence []string
	ply      int
	terminal bool
}

// New starts a game from the standard starting position. ledger and books
// may be nil — a nil ledger disables draw detection (treated as "no draw")
// and a nil/empty book library makes Suggest fall straight through to search.
func New(ledger *storage.Ledger, books *book.Library, eng *engine.Engine) *Game {
	return &Game{
		pos:    board.NewPosition(),
		ledger: ledger,
		books:  books,
		eng:    eng,
	}
}

// Position returns the current position. Callers must not mutate it
// directly; use Play.
func (g *Game) Position() *board.Position {
	return g.pos
}

// Ply returns the number of half-moves played so far.
func (g *Game) Ply() int {
	return g.ply
}

// Sequence returns the algebraic move sequence played so far, space
// separated, check/mate marks stripped — the key the opening book resolves
// against.
func (g *Game) Sequence() string {
	return strings.Join(g.sequence, " ")
}

// Suggest returns the engine's choice for the current position: the book's
// suggestion if the opening phase and the book have one, the search's best
// move otherwise. The returned bool is false only when neither source
// produces a legal move — the position has none.
func (g *Game) Suggest() (board.Move, int, bool) {
	if g.books != nil {
		if m, ok := g.books.Suggest(g.pos, g.Sequence(), g.ply); ok {
			return m, 0, true
		}
	}
	m, score := g.eng.BestMove(g.pos)
	if m == board.NoMove {
		return board.NoMove, 0, false
	}
	return m, score, true
}

// Play applies m to the game, provided the position is not already
// terminal and m is legal. It appends the resulting snapshot to the
// ledger (logging, not failing, on a ledger error) and records the move's
// algebraic form before the position changes underneath it.
func (g *Game) Play(m board.Move) error {
	if g.terminal {
		return errTerminal
	}
	legal := g.pos.LegalMoves()
	if !legal.Contains(m) {
		return errIllegalMove
	}

	san := m.ToSAN(g.pos)
	g.pos.MakeMove(m)
	g.sequence = append(g.sequence, stripSuffix(san))
	g.ply++

	if g.ledger != nil {
		if err := g.ledger.Append(g.pos.Snapshot()); err != nil {
			log.Printf("[game] ledger append failed: %v", err)
		}
	}

	if g.Status().IsTerminal() {
		g.terminal = true
	}
	return nil
}

// Status classifies the current position by precedence:
// repetition > checkmate > stalemate > fifty-move > check > normal. Ledger
// read failures are logged and treated as "not a draw," never as a fatal
// error.
func (g *Game) Status() Status {
	if g.ledger != nil {
		if draw, err := g.ledger.IsRepetitionDraw(); err != nil {
			log.Printf("[game] repetition check failed: %v", err)
		} else if draw {
			return StatusRepetitionDraw
		}
	}

	if g.pos.IsCheckmate() {
		return StatusCheckmate
	}
	if g.pos.IsStalemate() {
		return StatusStalemate
	}

	if g.ledger != nil {
		if draw, err := g.ledger.IsFiftyMoveDraw(); err != nil {
			log.Printf("[game] fifty-move check failed: %v", err)
		} else if draw {
			return StatusFiftyMoveDraw
		}
	}

	if g.pos.InCheck() {
		return StatusCheck
	}
	return StatusNormal
}

// Winner returns the side that delivered checkmate, or false if the game
// has not ended in checkmate (draws and in-progress games have no winner).
func (g *Game) Winner() (board.Color, bool) {
	if g.Status() != StatusCheckmate {
		return board.White, false
	}
	return g.pos.SideToMove.Other(), true
}

// stripSuffix removes the trailing check/mate marks SAN carries — the book
// and ledger key on the bare move token.
func stripSuffix(san string) string {
	san = strings.TrimSuffix(san, "#")
	san = strings.TrimSuffix(san, "+")
	return san
}
