// Command chessplay-play is a text REPL over the game package: it plays a
// single session against the engine, persisting every position to the
// BadgerDB-backed ledger and consulting the opening book while the game is
// young.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/book"
	"github.com/hailam/chessplay/internal/engine"
	"github.com/hailam/chessplay/internal/game"
	"github.com/hailam/chessplay/internal/storage"
)

var (
	booksDir   = flag.String("books", "", "directory of opening-book JSON files (optional)")
	difficulty = flag.String("difficulty", "medium", "easy, medium, or hard")
)

func main() {
	flag.Parse()

	ledger, err := storage.OpenLedger()
	if err != nil {
		log.Fatalf("opening ledger: %v", err)
	}
	defer ledger.Close()

	var lib *book.Library
	if *booksDir != "" {
		lib, err = book.LoadLibraryDir(*booksDir)
		if err != nil {
			log.Printf("opening book disabled: %v", err)
			lib = nil
		}
	}

	eng := engine.NewEngine()
	eng.SetDifficulty(parseDifficulty(*difficulty))

	g := game.New(ledger, lib, eng)

	fmt.Println("chessplay-play — enter moves in algebraic notation (e.g. e4, Nf3, O-O), or \"quit\"")
	fmt.Println(g.Position().String())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		status := g.Status()
		fmt.Printf("status: %s\n", status)
		if status.IsTerminal() {
			if winner, ok := g.Winner(); ok {
				fmt.Printf("%s wins by checkmate\n", winner)
			} else {
				fmt.Println("game drawn")
			}
			return
		}

		if g.Position().SideToMove == board.White {
			fmt.Print("your move> ")
			if !scanner.Scan() {
				return
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "quit" {
				return
			}
			m, err := board.ParseSAN(input, g.Position())
			if err != nil {
				fmt.Printf("invalid move: %v\n", err)
				continue
			}
			if err := g.Play(m); err != nil {
				fmt.Printf("illegal move: %v\n", err)
				continue
			}
		} else {
			m, score, ok := g.Suggest()
			if !ok {
				fmt.Println("engine has no move")
				return
			}
			san := m.ToSAN(g.Position())
			if err := g.Play(m); err != nil {
				log.Fatalf("engine produced an illegal move: %v", err)
			}
			fmt.Printf("engine plays %s (%s)\n", san, engine.ScoreToString(score))
		}

		fmt.Println(g.Position().String())
	}
}

func parseDifficulty(s string) engine.Difficulty {
	switch strings.ToLower(s) {
	case "easy":
		return engine.Easy
	case "hard":
		return engine.Hard
	default:
		return engine.Medium
	}
}
