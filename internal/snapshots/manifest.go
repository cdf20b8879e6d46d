package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest tracks snapshot metadata.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Retention   Retention `json:"retention"`
	Teams       TeamsMeta `json:"teams"`
}

type Retention struct {
	TeamsDays int `json:"teamsDays"`
}

type TeamsMeta struct {
	Dates       []string  `json:"dates"`
	LastWritten time.Time `json:"lastWritten"`
	TeamCount   int       `json:"teamCount"`
}

func defaultManifest(retentionDays int, now time.Time) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: now.UTC(),
		Retention: Retention{
			TeamsDays: retentionDays,
		},
		Teams: TeamsMeta{
			Dates: []string{},
		},
	}
}

// ReadManifest loads the manifest under basePath.
func ReadManifest(basePath string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(ManifestPath(basePath))
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(data, &m)
	return m, err
}

func readManifest(basePath string, retentionDays int, now time.Time) (Manifest, error) {
	m, err := ReadManifest(basePath)
	if err != nil {
		return defaultManifest(retentionDays, now), err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.GeneratedAt = now.UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(basePath), data)
}
