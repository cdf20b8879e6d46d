package testutil

import (
	"github.com/preston-bernstein/teams-api/internal/domain/teams"
)

// SampleInput returns a valid create/update payload for the given name.
func SampleInput(name string) teams.Input {
	return teams.Input{
		Name:    teams.Text(name),
		League:  "Premier League",
		Country: "England",
		Founded: teams.YearOf(1900),
		Stadium: "Home Ground",
	}
}

// SampleDocument builds a document holding one valid team per name, with
// ids minted from 1.
func SampleDocument(names ...string) teams.Document {
	doc := teams.NewDocument(1)
	for _, n := range names {
		doc.Teams = append(doc.Teams, SampleInput(n).Normalize().NewTeam(doc.Mint()))
	}
	return doc
}
