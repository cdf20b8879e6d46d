package snapshots

import (
	"fmt"
	"path/filepath"
)

const (
	teamsDir     = "teams"
	manifestFile = "manifest.json"
)

// TeamSnapshotPath builds the path to a teams snapshot for a given date.
func TeamSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, teamsDir, fmt.Sprintf("%s.json", date))
}

// ManifestPath returns the manifest location under basePath.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
