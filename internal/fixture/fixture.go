// Package fixture holds the teams written to a fresh store so a local
// instance has something to page through.
package fixture

import "github.com/preston-bernstein/teams-api/internal/domain/teams"

// Teams returns a deterministic set of example clubs in insertion order.
func Teams() []teams.Draft {
	return []teams.Draft{
		club("Arsenal", "Premier League", "England", 1886, "Emirates Stadium"),
		club("Liverpool", "Premier League", "England", 1892, "Anfield"),
		club("Manchester United", "Premier League", "England", 1878, "Old Trafford"),
		club("Celtic", "Scottish Premiership", "Scotland", 1887, "Celtic Park"),
		club("Real Madrid", "La Liga", "Spain", 1902, "Santiago Bernabeu"),
		club("FC Barcelona", "La Liga", "Spain", 1899, "Spotify Camp Nou"),
		club("Bayern Munich", "Bundesliga", "Germany", 1900, "Allianz Arena"),
		club("Borussia Dortmund", "Bundesliga", "Germany", 1909, "Signal Iduna Park"),
		club("Juventus", "Serie A", "Italy", 1897, "Allianz Stadium"),
		club("AC Milan", "Serie A", "Italy", 1899, "San Siro"),
		club("Ajax", "Eredivisie", "Netherlands", 1900, "Johan Cruijff ArenA"),
		club("Benfica", "Primeira Liga", "Portugal", 1904, "Estadio da Luz"),
	}
}

func club(name, league, country string, founded int, stadium string) teams.Draft {
	return teams.Draft{
		Name:         name,
		League:       league,
		Country:      country,
		Founded:      founded,
		FoundedValid: true,
		Stadium:      stadium,
	}
}
