package config

import "strings"

// TeamCatalog is the lookup table of known NFL franchise names. Parsers take
// it as a dependency instead of embedding their own literal lists.
type TeamCatalog []string

// DefaultTeamCatalog returns the current 32 NFL franchises.
func DefaultTeamCatalog() TeamCatalog {
	return TeamCatalog{
		"Arizona Cardinals", "Atlanta Falcons", "Baltimore Ravens",
		"Buffalo Bills", "Carolina Panthers", "Chicago Bears",
		"Cincinnati Bengals", "Cleveland Browns", "Dallas Cowboys",
		"Denver Broncos", "Detroit Lions", "Green Bay Packers",
		"Houston Texans", "Indianapolis Colts", "Jacksonville Jaguars",
		"Kansas City Chiefs", "Las Vegas Raiders", "Los Angeles Chargers",
		"Los Angeles Rams", "Miami Dolphins", "Minnesota Vikings",
		"New England Patriots", "New Orleans Saints", "New York Giants",
		"New York Jets", "Philadelphia Eagles", "Pittsburgh Steelers",
		"San Francisco 49ers", "Seattle Seahawks", "Tampa Bay Buccaneers",
		"Tennessee Titans", "Washington Commanders",
	}
}

// MatchPrefix returns the catalog entry that the given text starts with.
// Sources often concatenate the franchise name with a city or abbreviation
// ("New Orleans SaintsNO"); the longest-prefix match recovers the clean name.
func (tc TeamCatalog) MatchPrefix(text string) (string, bool) {
	best := ""
	for _, team := range tc {
		if strings.HasPrefix(text, team) && len(team) > len(best) {
			best = team
		}
	}
	return best, best != ""
}
