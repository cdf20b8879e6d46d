package snapshots

import (
	"errors"
	"fmt"
	"os"

	"github.com/preston-bernstein/teams-api/internal/domain/teams"
	"github.com/preston-bernstein/teams-api/internal/timeutil"
)

// ErrNoSnapshot reports that no snapshot has been written yet.
var ErrNoSnapshot = errors.New("no snapshot available")

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadTeams reads the snapshot for the given date (YYYY-MM-DD).
func (s *FSStore) LoadTeams(date string) (teams.Document, error) {
	if s == nil {
		return teams.Document{}, errors.New("snapshot store not configured")
	}
	if !timeutil.IsDate(date) {
		return teams.Document{}, fmt.Errorf("invalid snapshot date %q", date)
	}
	data, err := os.ReadFile(TeamSnapshotPath(s.basePath, date))
	if err != nil {
		return teams.Document{}, err
	}
	return teams.DecodeDocument(data)
}

// Latest returns the most recent snapshot and its date.
func (s *FSStore) Latest() (teams.Document, string, error) {
	if s == nil {
		return teams.Document{}, "", errors.New("snapshot store not configured")
	}
	dates, err := listDates(s.basePath)
	if err != nil {
		return teams.Document{}, "", err
	}
	if len(dates) == 0 {
		return teams.Document{}, "", ErrNoSnapshot
	}
	date := dates[len(dates)-1]
	doc, err := s.LoadTeams(date)
	return doc, date, err
}
