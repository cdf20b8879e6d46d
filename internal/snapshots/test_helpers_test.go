package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/preston-bernstein/teams-api/internal/domain/teams"
)

func sampleDocument(names ...string) teams.Document {
	doc := teams.NewDocument(1)
	for _, n := range names {
		doc.Teams = append(doc.Teams, teams.Team{ID: doc.Mint(), Name: n, League: "L"})
	}
	return doc
}

func writerAt(t *testing.T, dir string, retention int, now time.Time) *Writer {
	t.Helper()
	w := NewWriter(dir, retention)
	w.now = func() time.Time { return now }
	return w
}

func writeSnapshot(t *testing.T, w *Writer, doc teams.Document) {
	t.Helper()
	if err := w.WriteTeamsSnapshot(doc); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(TeamSnapshotPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
