// Package uci implements a minimal Universal Chess Interface handler over
// the engine package: "position"/"go" only understand a fixed-depth
// alpha-beta search, since transposition tables, iterative deepening, and
// time management are out of scope for the engine underneath it.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/engine"
)

// UCI implements the subset of the protocol the engine can actually back:
// handshake, position setup from startpos plus coordinate moves, a
// depth-bound "go", and the debug "d"/"perft" commands.
type UCI struct {
	engine   *engine.Engine
	position *board.Position

	searching  bool
	searchDone chan struct{}
}

// New creates a UCI handler wrapping eng.
func New(eng *engine.Engine) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewPosition(),
	}
}

// Run reads commands from stdin until EOF or "quit".
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleStop()
			os.Exit(0)
		case "d":
			fmt.Println(u.position.String())
		case "perft":
			u.handlePerft(args)
		}
	}
}

// handleUCI responds to the "uci" command with engine identification and
// an advertised Difficulty option. There is no "setoption" handler, so the
// option is not applied: searches use the engine's own difficulty.
func (u *UCI) handleUCI() {
	fmt.Println("id name ChessPlay")
	fmt.Println("id author ChessPlay")
	fmt.Println()
	fmt.Println("option name Difficulty type combo default Medium var Easy var Medium var Hard")
	fmt.Println("uciok")
}

// handleNewGame resets the tracked position for a fresh game.
func (u *UCI) handleNewGame() {
	u.position = board.NewPosition()
}

// handlePosition understands "position startpos [moves ...]". There is no
// FEN parser in the board package, so "position fen ..." is rejected with
// an info string rather than silently misbehaving.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 || args[0] != "startpos" {
		fmt.Fprintln(os.Stderr, "info string only 'position startpos' is supported")
		return
	}

	u.position = board.NewPosition()
	moveStart := len(args)
	for i, a := range args {
		if a == "moves" {
			moveStart = i + 1
			break
		}
	}

	for _, moveStr := range args[moveStart:] {
		m, err := board.ParseMove(moveStr, u.position)
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid move %s: %v\n", moveStr, err)
			return
		}
		u.position.MakeMove(m)
	}
}

// handleGo runs a fixed-depth search and prints "bestmove". Only the
// "depth" option is honored; time-control options are accepted and
// ignored, since the engine has no time manager.
func (u *UCI) handleGo(args []string) {
	depth := u.engine.Depth()
	for i := 0; i < len(args); i++ {
		if args[i] == "depth" && i+1 < len(args) {
			if d, err := strconv.Atoi(args[i+1]); err == nil && d > 0 {
				depth = d
			}
			i++
		}
	}

	pos := u.position.Copy()
	u.searching = true
	u.searchDone = make(chan struct{})

	go func() {
		defer close(u.searchDone)
		start := time.Now()
		searcher := engine.NewSearcher()
		move, score := searcher.BestMove(pos, depth)
		elapsed := time.Since(start)
		u.searching = false

		if move == board.NoMove {
			fmt.Println("bestmove 0000")
			return
		}

		nodes := searcher.Nodes()
		nps := uint64(0)
		if elapsed > 0 {
			nps = uint64(float64(nodes) / elapsed.Seconds())
		}
		fmt.Printf("info depth %d score cp %d nodes %d time %d nps %d\n",
			depth, score, nodes, elapsed.Milliseconds(), nps)
		fmt.Printf("bestmove %s\n", move.String())
	}()
}

// handleStop blocks until the in-flight search finishes. The search has no
// cooperative cancellation signal, so "stop" just waits rather than
// aborting early.
func (u *UCI) handleStop() {
	if u.searching && u.searchDone != nil {
		<-u.searchDone
	}
}

// handlePerft runs a perft node count from the current position and
// reports timing, a standalone move-generator correctness check.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			depth = d
		}
	}

	start := time.Now()
	nodes := u.engine.Perft(u.position, depth)
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
