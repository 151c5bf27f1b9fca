package fieldmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fantasy-projections/internal/domain/player"
	"github.com/riskibarqy/fantasy-projections/internal/domain/projection"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
)

// ErrMapping marks a single record that cannot be tied to a player.
var ErrMapping = errors.New("mapping error")

// Record is the canonical, source-independent shape of one upstream row.
type Record struct {
	Player player.Player
	Stats  projection.Stats
}

type vocabulary struct {
	// names lists candidate columns in priority order.
	names      []string
	teams      []string
	positions  []string
	externalID []string
	statuses   []string
	stats      map[string][]string
	derive     func(source.RawRecord, *projection.Stats)
}

var vocabularies = map[source.Name]vocabulary{
	source.NameNFLVerse: {
		names:      []string{"player_display_name", "player_name"},
		teams:      []string{"recent_team", "team"},
		positions:  []string{"position"},
		externalID: []string{"player_id"},
		statuses:   []string{"status"},
		stats: map[string][]string{
			projection.StatPassYds:    {"passing_yards"},
			projection.StatPassCmp:    {"completions"},
			projection.StatPassAtt:    {"attempts"},
			projection.StatPassTDs:    {"passing_tds"},
			projection.StatPassInts:   {"interceptions"},
			projection.StatRushYds:    {"rushing_yards"},
			projection.StatRushAtt:    {"carries"},
			projection.StatRushTDs:    {"rushing_tds"},
			projection.StatReceptions: {"receptions"},
			projection.StatRecYds:     {"receiving_yards"},
			projection.StatRecTDs:     {"receiving_tds"},
			projection.StatTargets:    {"targets"},
			projection.StatFumbles:    {"fumbles_lost"},
		},
		derive: deriveNFLVerseFumbles,
	},
	source.NameFFDP: {
		names:     []string{"Player", "player", "player_name", "name"},
		teams:     []string{"Tm", "team"},
		positions: []string{"Pos", "pos", "position"},
		statuses:  []string{"Status", "status"},
		stats: map[string][]string{
			projection.StatPassYds:    {"PassYds", "pass_yds"},
			projection.StatPassAtt:    {"PassAtt", "pass_att"},
			projection.StatPassCmp:    {"PassCmp", "pass_cmp"},
			projection.StatPassTDs:    {"PassTD", "pass_td"},
			projection.StatPassInts:   {"Int", "pass_int"},
			projection.StatRushYds:    {"RushYds", "rush_yds"},
			projection.StatRushAtt:    {"RushAtt", "rush_att"},
			projection.StatRushTDs:    {"RushTD", "rush_td"},
			projection.StatReceptions: {"Rec", "rec"},
			projection.StatRecYds:     {"RecYds", "rec_yds"},
			projection.StatRecTDs:     {"RecTD", "rec_td"},
			projection.StatTargets:    {"Tgt", "targets"},
			projection.StatFumbles:    {"FL", "fumbles", "fumbles_lost"},
		},
	},
}

var nflverseFumbleColumns = []string{"rushing_fumbles_lost", "receiving_fumbles_lost", "sack_fumbles_lost"}

// StatColumns returns every upstream column that feeds a canonical stat.
func StatColumns(name source.Name) []string {
	vocab, ok := vocabularies[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(vocab.stats)+len(nflverseFumbleColumns))
	for _, canonical := range projection.StatNames {
		out = append(out, vocab.stats[canonical]...)
	}
	if name == source.NameNFLVerse {
		out = append(out, nflverseFumbleColumns...)
	}
	return out
}

// PlayerColumns returns the columns that can carry the player's name.
func PlayerColumns(name source.Name) []string {
	return append([]string(nil), vocabularies[name].names...)
}

// Map normalizes one raw record. It only fails when the record has no
// usable name or position.
func Map(name source.Name, raw source.RawRecord) (Record, error) {
	if reason, bad := raw.Malformed(); bad {
		return Record{}, fmt.Errorf("%w: unreadable row: %s", ErrMapping, reason)
	}
	vocab, ok := vocabularies[name]
	if !ok {
		return Record{}, fmt.Errorf("%w: unknown source %q", ErrMapping, name)
	}

	playerName := strings.Join(strings.Fields(first(raw, vocab.names)), " ")
	if playerName == "" {
		return Record{}, fmt.Errorf("%w: missing player name", ErrMapping)
	}

	rawPos := first(raw, vocab.positions)
	if strings.TrimSpace(rawPos) == "" {
		return Record{}, fmt.Errorf("%w: missing position for %s", ErrMapping, playerName)
	}
	pos, ok := player.NormalizePosition(rawPos)
	if !ok {
		return Record{}, fmt.Errorf("%w: unsupported position %q for %s", ErrMapping, rawPos, playerName)
	}

	rec := Record{
		Player: player.Player{
			ExternalID: strings.TrimSpace(first(raw, vocab.externalID)),
			Name:       playerName,
			Team:       player.NormalizeTeam(first(raw, vocab.teams)),
			Position:   pos,
			Status:     player.NormalizeStatus(first(raw, vocab.statuses)),
		},
	}

	for canonical, columns := range vocab.stats {
		if v := ToDecimal(firstPresent(raw, columns)); v != nil {
			// Names come from projection.StatNames, Set cannot fail here.
			_ = rec.Stats.Set(canonical, v)
		}
	}
	if vocab.derive != nil {
		vocab.derive(raw, &rec.Stats)
	}

	return rec, nil
}

// nflverse splits lost fumbles by play type. Sum them when no combined
// column was provided.
func deriveNFLVerseFumbles(raw source.RawRecord, stats *projection.Stats) {
	if stats.Fumbles != nil {
		return
	}
	var (
		total decimal.Decimal
		seen  bool
	)
	for _, col := range nflverseFumbleColumns {
		if v := ToDecimal(raw[col]); v != nil {
			total = total.Add(*v)
			seen = true
		}
	}
	if seen {
		stats.Fumbles = &total
	}
}

func first(raw source.RawRecord, columns []string) string {
	for _, col := range columns {
		if v := strings.TrimSpace(raw[col]); v != "" {
			return v
		}
	}
	return ""
}

func firstPresent(raw source.RawRecord, columns []string) any {
	for _, col := range columns {
		if v, ok := raw[col]; ok && ToDecimal(v) != nil {
			return v
		}
	}
	return nil
}
