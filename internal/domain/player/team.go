package player

import "strings"

var teams = map[string]struct{}{
	"ARI": {}, "ATL": {}, "BAL": {}, "BUF": {}, "CAR": {}, "CHI": {}, "CIN": {}, "CLE": {},
	"DAL": {}, "DEN": {}, "DET": {}, "GB": {}, "HOU": {}, "IND": {}, "JAX": {}, "KC": {},
	"LAC": {}, "LAR": {}, "LV": {}, "MIA": {}, "MIN": {}, "NE": {}, "NO": {}, "NYG": {},
	"NYJ": {}, "PHI": {}, "PIT": {}, "SEA": {}, "SF": {}, "TB": {}, "TEN": {}, "WAS": {},
}

// Historical codes and the spellings used by different data providers.
var teamAliases = map[string]string{
	"JAC": "JAX",
	"LA":  "LAR",
	"STL": "LAR",
	"WSH": "WAS",
	"OAK": "LV",
	"LVR": "LV",
	"SD":  "LAC",
	"ARZ": "ARI",
	"BLT": "BAL",
	"CLV": "CLE",
	"HST": "HOU",
	"GNB": "GB",
	"KAN": "KC",
	"NWE": "NE",
	"NOR": "NO",
	"SFO": "SF",
	"TAM": "TB",
}

// NormalizeTeam maps a provider team code onto the current franchise code.
// Free agents and unknown codes resolve to nil.
func NormalizeTeam(raw string) *string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" || code == "FA" {
		return nil
	}
	if alias, ok := teamAliases[code]; ok {
		code = alias
	}
	if _, ok := teams[code]; !ok {
		return nil
	}
	return &code
}

func IsKnownTeam(code string) bool {
	_, ok := teams[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}
