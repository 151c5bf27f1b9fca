package player

import (
	"fmt"
	"strings"
	"time"
)

// Position is one of the fantasy-relevant NFL roster slots.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDST Position = "DST"
)

var AllPositions = map[Position]struct{}{
	PositionQB:  {},
	PositionRB:  {},
	PositionWR:  {},
	PositionTE:  {},
	PositionK:   {},
	PositionDST: {},
}

var positionAliases = map[string]Position{
	"D/ST": PositionDST,
	"DEF":  PositionDST,
	"D":    PositionDST,
	"PK":   PositionK,
	"HB":   PositionRB,
	"FB":   PositionRB,
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Outcome reports what an upsert did to the stored row.
type Outcome string

const (
	OutcomeInserted  Outcome = "inserted"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
)

// Player is the canonical athlete shared across every source. Players are
// matched on (NameKey, Position) because no universal external id exists.
type Player struct {
	ID         string
	ExternalID string
	Name       string
	Team       *string
	Position   Position
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p Player) NameKey() string {
	return NormalizeName(p.Name)
}

func (p Player) TeamCode() string {
	if p.Team == nil {
		return ""
	}
	return *p.Team
}

func (p Player) Validate() error {
	if NormalizeName(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	return nil
}

// NormalizeName trims, collapses inner whitespace and lower-cases a name so
// "Mike Evans" and " mike  evans " share one key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func NormalizePosition(raw string) (Position, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", false
	}
	if _, ok := AllPositions[Position(code)]; ok {
		return Position(code), true
	}
	if pos, ok := positionAliases[code]; ok {
		return pos, true
	}
	return "", false
}

func ParsePosition(raw string) (Position, error) {
	pos, ok := NormalizePosition(raw)
	if !ok {
		return "", fmt.Errorf("invalid player position: %q", raw)
	}
	return pos, nil
}

// SamePlayer reports whether both rows resolve to the same natural key.
func SamePlayer(a, b Player) bool {
	return a.Position == b.Position && a.NameKey() == b.NameKey()
}

// TeamChanged reports whether incoming carries a team that differs from
// the stored one. An unset incoming team never clears a known team.
func TeamChanged(stored *string, incoming *string) bool {
	if incoming == nil {
		return false
	}
	return stored == nil || *stored != *incoming
}

var statusAliases = map[string]Status{
	"active":   StatusActive,
	"act":      StatusActive,
	"inactive": StatusInactive,
	"ina":      StatusInactive,
	"res":      StatusInactive,
	"ret":      StatusInactive,
	"cut":      StatusInactive,
}

// NormalizeStatus maps a feed roster status onto Status. Unknown or blank
// values return "" so they never overwrite a stored status.
func NormalizeStatus(raw string) Status {
	return statusAliases[strings.ToLower(strings.TrimSpace(raw))]
}

// StatusChanged reports whether incoming carries a status that differs from
// the stored one. An unset incoming status never changes the stored one.
func StatusChanged(stored, incoming Status) bool {
	return incoming != "" && incoming != stored
}

// Changed reports whether reconciling incoming onto stored alters any
// column an upsert may overwrite.
func Changed(stored, incoming Player) bool {
	return TeamChanged(stored.Team, incoming.Team) || StatusChanged(stored.Status, incoming.Status)
}
