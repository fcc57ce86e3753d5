package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	dir := t.TempDir()
	l, err := OpenLedgerAt(filepath.Join(dir, "db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func snapshotWithPieces(n int) string {
	s := strings.Repeat("P", n) + strings.Repeat(".", 64-n)
	return s
}

func TestAppendRejectsWrongLength(t *testing.T) {
	l := openTestLedger(t)
	err := l.Append("too short")
	require.Error(t, err)
}

func TestAppendAndSnapshotsRoundTrip(t *testing.T) {
	l := openTestLedger(t)
	require.NoError(t, l.Append(snapshotWithPieces(32)))
	require.NoError(t, l.Append(snapshotWithPieces(31)))

	snaps, err := l.Snapshots()
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.Equal(t, snapshotWithPieces(32), snaps[0])
	require.Equal(t, snapshotWithPieces(31), snaps[1])
	require.Equal(t, 2, l.Len())
}

func TestLedgerSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	dbDir := filepath.Join(dir, "db")

	l, err := OpenLedgerAt(dbDir)
	require.NoError(t, err)
	require.NoError(t, l.Append(snapshotWithPieces(32)))
	require.NoError(t, l.Close())

	reopened, err := OpenLedgerAt(dbDir)
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, 1, reopened.Len())
	require.NoError(t, reopened.Append(snapshotWithPieces(30)))
	require.Equal(t, 2, reopened.Len())
}

func TestIsRepetitionDrawRequiresThreeOccurrences(t *testing.T) {
	l := openTestLedger(t)
	snap := snapshotWithPieces(32)

	require.NoError(t, l.Append(snap))
	draw, err := l.IsRepetitionDraw()
	require.NoError(t, err)
	require.False(t, draw)

	require.NoError(t, l.Append(snapshotWithPieces(31)))
	require.NoError(t, l.Append(snap))
	draw, err = l.IsRepetitionDraw()
	require.NoError(t, err)
	require.False(t, draw, "same position appearing twice is not yet a repetition")

	require.NoError(t, l.Append(snapshotWithPieces(31)))
	require.NoError(t, l.Append(snap))
	draw, err = l.IsRepetitionDraw()
	require.NoError(t, err)
	require.True(t, draw, "same position appearing a third time should be a repetition draw")
}

func TestIsFiftyMoveDrawRequiresStablePieceCount(t *testing.T) {
	l := openTestLedger(t)
	for i := 0; i < fiftyMoveWindow-1; i++ {
		require.NoError(t, l.Append(snapshotWithPieces(32)))
	}
	draw, err := l.IsFiftyMoveDraw()
	require.NoError(t, err)
	require.False(t, draw, "window not yet full")

	require.NoError(t, l.Append(snapshotWithPieces(32)))
	draw, err = l.IsFiftyMoveDraw()
	require.NoError(t, err)
	require.True(t, draw)
}

func TestIsFiftyMoveDrawResetsOnCapture(t *testing.T) {
	l := openTestLedger(t)
	for i := 0; i < fiftyMoveWindow; i++ {
		require.NoError(t, l.Append(snapshotWithPieces(32)))
	}
	require.NoError(t, l.Append(snapshotWithPieces(31)))

	draw, err := l.IsFiftyMoveDraw()
	require.NoError(t, err)
	require.False(t, draw, "a capture within the trailing window should reset the count")
}

func TestDataPaths(t *testing.T) {
	dataDir, err := GetDataDir()
	require.NoError(t, err)
	require.NotEmpty(t, dataDir)

	_, err = os.Stat(dataDir)
	require.False(t, os.IsNotExist(err), "data directory was not created: %s", dataDir)
}
