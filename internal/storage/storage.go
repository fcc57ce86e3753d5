// Package storage persists the history ledger (§3.3, L7): an append-only
// sequence of board snapshots, backed by BadgerDB, consulted read-only by
// the threefold-repetition and fifty-move-rule status checks.
package storage

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const ledgerPrefix = "ledger:"

// fiftyMoveWindow is how many trailing ledger entries the fifty-move-rule
// proxy inspects (§4.4, §9): the reference approximates "no capture and no
// pawn move in 50 half-moves" as "total piece count unchanged for 50
// consecutive entries."
const fiftyMoveWindow = 50

// repetitionThreshold is how many times a snapshot must recur for the
// position to be reported as a repetition draw (§4.4).
const repetitionThreshold = 3

// Ledger is the append-only, BadgerDB-backed store of board snapshots
// (§3.3). Entries are keyed by a monotonically increasing sequence number
// so iteration recovers insertion order.
type Ledger struct {
	db   *badger.DB
	next uint64
}

// OpenLedger opens (or creates) the ledger database in the platform data
// directory.
func OpenLedger() (*Ledger, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenLedgerAt(dbDir)
}

// OpenLedgerAt opens (or creates) the ledger database at an explicit path —
// used by tests to avoid touching the real data directory.
func OpenLedgerAt(dir string) (*Ledger, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	l := &Ledger{db: db}
	if err := l.loadNext(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

// loadNext scans existing keys to recover the next sequence number, so a
// process restart resumes appending after the last persisted entry.
func (l *Ledger) loadNext() error {
	return l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(ledgerPrefix)
		var maxSeq uint64
		found := false
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			seq := seqFromKey(it.Item().Key())
			if !found || seq > maxSeq {
				maxSeq = seq
				found = true
			}
		}
		if found {
			l.next = maxSeq + 1
		}
		return nil
	})
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Append persists snapshot as the next ledger entry. Blank snapshots are
// rejected as a precondition violation (§7): the ledger never stores an
// entry it cannot later replay.
func (l *Ledger) Append(snapshot string) error {
	if len(snapshot) != 64 {
		return fmt.Errorf("storage: snapshot must be 64 characters, got %d", len(snapshot))
	}
	seq := l.next
	err := l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(seqKey(seq), []byte(snapshot))
	})
	if err != nil {
		return err
	}
	l.next = seq + 1
	return nil
}

// Len returns the number of entries appended so far.
func (l *Ledger) Len() int {
	return int(l.next)
}

// Snapshots returns every persisted snapshot in append order. Intended for
// replay and for rebuilding the algebraic move sequence the opening book
// keys on; not used on the hot search path.
func (l *Ledger) Snapshots() ([]string, error) {
	out := make([]string, 0, l.next)
	err := l.db.View(func(txn *badger.Txn) error {
		for seq := uint64(0); seq < l.next; seq++ {
			item, err := txn.Get(seqKey(seq))
			if err != nil {
				return err
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			out = append(out, string(val))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IsRepetitionDraw reports whether the most recently appended snapshot has
// now appeared at least three times across the whole ledger (§4.4). A
// ledger read failure defaults to false, logged by the caller, per §7's
// "ledger I/O failure" policy — it never manufactures a draw.
func (l *Ledger) IsRepetitionDraw() (bool, error) {
	snaps, err := l.Snapshots()
	if err != nil {
		return false, err
	}
	if len(snaps) == 0 {
		return false, nil
	}
	current := snaps[len(snaps)-1]
	count := 0
	for _, s := range snaps {
		if s == current {
			count++
		}
	}
	return count >= repetitionThreshold, nil
}

// IsFiftyMoveDraw reports whether the last fiftyMoveWindow ledger entries
// all carry the same total piece count (§4.4, §9's documented proxy for
// the real fifty-move rule).
func (l *Ledger) IsFiftyMoveDraw() (bool, error) {
	snaps, err := l.Snapshots()
	if err != nil {
		return false, err
	}
	if len(snaps) < fiftyMoveWindow {
		return false, nil
	}
	window := snaps[len(snaps)-fiftyMoveWindow:]
	first := pieceCount(window[0])
	for _, s := range window[1:] {
		if pieceCount(s) != first {
			return false, nil
		}
	}
	return true, nil
}

func pieceCount(snapshot string) int {
	n := 0
	for i := 0; i < len(snapshot); i++ {
		if snapshot[i] != '.' {
			n++
		}
	}
	return n
}

func seqKey(seq uint64) []byte {
	key := make([]byte, len(ledgerPrefix)+8)
	copy(key, ledgerPrefix)
	binary.BigEndian.PutUint64(key[len(ledgerPrefix):], seq)
	return key
}

func seqFromKey(key []byte) uint64 {
	trimmed := strings.TrimPrefix(string(key), ledgerPrefix)
	if len(trimmed) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64([]byte(trimmed))
}
