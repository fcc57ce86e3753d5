// Package book implements the opening book consulted by the search layer
// while a game is still in its opening phase (§4.7).
package book

import (
	"encoding/json"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hailam/chessplay/internal/board"
)

// DefaultOpeningPlies is the default opening-phase cutoff: the book is
// consulted only while the ledger holds at most this many half-moves.
const DefaultOpeningPlies = 20

// Line is one book entry: the recommended next moves after reaching the
// sequence it is keyed by.
type Line struct {
	BestMoves []string `json:"best_moves"`
}

// Book is a single named opening book: a JSON document mapping a
// space-separated move sequence to the moves it recommends next.
type Book struct {
	OpeningName string          `json:"opening_name"`
	Description string          `json:"description"`
	ECOCode     string          `json:"eco_code"`
	MainLine    string          `json:"main_line"`
	Lines       map[string]Line `json:"book"`
}

// Load reads a single book from a JSON file.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader reads a single book from a JSON document.
func LoadReader(r io.Reader) (*Book, error) {
	var b Book
	dec := json.NewDecoder(r)
	if err := dec.Decode(&b); err != nil {
		return nil, err
	}
	if b.Lines == nil {
		b.Lines = make(map[string]Line)
	}
	return &b, nil
}

// Library is a set of named books, consulted together during book
// resolution (§4.7): every book whose key set contains the current move
// sequence contributes its recommended moves, and moves endorsed by more
// books rank higher.
type Library struct {
	books        []*Book
	rng          *rand.Rand
	openingPlies int
}

// NewLibrary builds a Library over the given books, with the default
// opening-phase cutoff and a time-seeded RNG.
func NewLibrary(books ...*Book) *Library {
	return &Library{
		books:        books,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		openingPlies: DefaultOpeningPlies,
	}
}

// LoadLibraryDir loads every *.json file in dir as a book. A file that
// fails to parse is skipped rather than failing the whole load, matching
// §7's "opening-book I/O failure disables the book, not the engine."
func LoadLibraryDir(dir string) (*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var books []*Book
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		b, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		books = append(books, b)
	}
	return NewLibrary(books...), nil
}

// SetRand replaces the library's RNG — the opening book's suggestion is
// the engine's one source of non-determinism, and tests must be able to
// seed or replace it (§9).
func (l *Library) SetRand(r *rand.Rand) {
	l.rng = r
}

// SetOpeningPlies overrides the default opening-phase ply cutoff.
func (l *Library) SetOpeningPlies(n int) {
	l.openingPlies = n
}

// Size returns the number of loaded books.
func (l *Library) Size() int {
	if l == nil {
		return 0
	}
	return len(l.books)
}

// Suggest implements §4.7's resolution algorithm: given the position and
// the algebraic move sequence played to reach it (space-separated, check
// and mate marks already stripped), it returns a legal move drawn from the
// union of every contributing book's recommendation, or false if the book
// has nothing to offer (wrong phase, unknown sequence, or every candidate
// token failed to resolve).
func (l *Library) Suggest(pos *board.Position, sequence string, ply int) (board.Move, bool) {
	if l == nil || len(l.books) == 0 {
		return board.NoMove, false
	}
	if ply > l.openingPlies {
		return board.NoMove, false
	}

	if strings.TrimSpace(sequence) == "" {
		return l.pickAndResolve(pos, []string{"e4", "d4"})
	}

	endorsements := make(map[string]int)
	for _, b := range l.books {
		line, ok := b.Lines[sequence]
		if !ok {
			continue
		}
		for _, token := range line.BestMoves {
			endorsements[token]++
		}
	}
	if len(endorsements) == 0 {
		return board.NoMove, false
	}

	best := 0
	for _, n := range endorsements {
		if n > best {
			best = n
		}
	}
	var candidates []string
	for token, n := range endorsements {
		if n == best {
			candidates = append(candidates, token)
		}
	}
	sort.Strings(candidates) // stable iteration order before the random pick

	return l.pickAndResolve(pos, candidates)
}

// pickAndResolve shuffles through candidates starting from a random index,
// returning the first one that parses to a legal move against pos and
// silently dropping any that don't (§7: unknown algebraic token during
// book resolution is swallowed, not fatal).
func (l *Library) pickAndResolve(pos *board.Position, candidates []string) (board.Move, bool) {
	if len(candidates) == 0 {
		return board.NoMove, false
	}
	start := l.rng.Intn(len(candidates))
	for i := 0; i < len(candidates); i++ {
		token := candidates[(start+i)%len(candidates)]
		m, err := board.ParseSAN(token, pos)
		if err != nil {
			continue
		}
		return m, true
	}
	return board.NoMove, false
}
