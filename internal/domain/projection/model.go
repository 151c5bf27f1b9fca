package projection

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fantasy-projections/internal/domain/player"
	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
)

// Canonical stat names shared by the field mapper, storage and the API.
const (
	StatPassAtt    = "pass_att"
	StatPassCmp    = "pass_cmp"
	StatPassYds    = "pass_yds"
	StatPassTDs    = "pass_tds"
	StatPassInts   = "pass_ints"
	StatRushAtt    = "rush_att"
	StatRushYds    = "rush_yds"
	StatRushTDs    = "rush_tds"
	StatReceptions = "receptions"
	StatRecYds     = "rec_yds"
	StatRecTDs     = "rec_tds"
	StatTargets    = "targets"
	StatFumbles    = "fumbles"
)

// StatNames lists the canonical vocabulary in storage column order.
var StatNames = []string{
	StatPassAtt, StatPassCmp, StatPassYds, StatPassTDs, StatPassInts,
	StatRushAtt, StatRushYds, StatRushTDs,
	StatReceptions, StatRecYds, StatRecTDs, StatTargets,
	StatFumbles,
}

// Stats is the canonical stat vector. A nil field is unset, which is
// structurally different from an explicit zero.
type Stats struct {
	PassAtt    *decimal.Decimal
	PassCmp    *decimal.Decimal
	PassYds    *decimal.Decimal
	PassTDs    *decimal.Decimal
	PassInts   *decimal.Decimal
	RushAtt    *decimal.Decimal
	RushYds    *decimal.Decimal
	RushTDs    *decimal.Decimal
	Receptions *decimal.Decimal
	RecYds     *decimal.Decimal
	RecTDs     *decimal.Decimal
	Targets    *decimal.Decimal
	Fumbles    *decimal.Decimal
}

func (s *Stats) field(name string) **decimal.Decimal {
	switch name {
	case StatPassAtt:
		return &s.PassAtt
	case StatPassCmp:
		return &s.PassCmp
	case StatPassYds:
		return &s.PassYds
	case StatPassTDs:
		return &s.PassTDs
	case StatPassInts:
		return &s.PassInts
	case StatRushAtt:
		return &s.RushAtt
	case StatRushYds:
		return &s.RushYds
	case StatRushTDs:
		return &s.RushTDs
	case StatReceptions:
		return &s.Receptions
	case StatRecYds:
		return &s.RecYds
	case StatRecTDs:
		return &s.RecTDs
	case StatTargets:
		return &s.Targets
	case StatFumbles:
		return &s.Fumbles
	default:
		return nil
	}
}

// Set assigns a canonical stat. Unknown names are reported as an error.
func (s *Stats) Set(name string, value *decimal.Decimal) error {
	ptr := s.field(name)
	if ptr == nil {
		return fmt.Errorf("unknown stat %q", name)
	}
	*ptr = value
	return nil
}

func (s Stats) Get(name string) *decimal.Decimal {
	ptr := s.field(name)
	if ptr == nil {
		return nil
	}
	return *ptr
}

// OrZero returns the stat value, treating unset as zero.
func (s Stats) OrZero(name string) decimal.Decimal {
	if v := s.Get(name); v != nil {
		return *v
	}
	return decimal.Zero
}

// Values returns the set stats keyed by canonical name.
func (s Stats) Values() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(StatNames))
	for _, name := range StatNames {
		if v := s.Get(name); v != nil {
			out[name] = *v
		}
	}
	return out
}

func (s Stats) IsEmpty() bool {
	for _, name := range StatNames {
		if s.Get(name) != nil {
			return false
		}
	}
	return true
}

// Equal compares two vectors field by field, unset only equals unset.
func (s Stats) Equal(other Stats) bool {
	for _, name := range StatNames {
		a, b := s.Get(name), other.Get(name)
		if (a == nil) != (b == nil) {
			return false
		}
		if a != nil && !a.Equal(*b) {
			return false
		}
	}
	return true
}

// Outcome reports whether an upsert created or replaced the row.
type Outcome string

const (
	OutcomeInserted Outcome = "inserted"
	OutcomeUpdated  Outcome = "updated"
)

// Projection holds one player's stat line for (season, week, source).
type Projection struct {
	ID        string
	PlayerID  string
	Season    int
	Week      int
	Source    source.Name
	Stats     Stats
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Projection) Validate() error {
	if p.PlayerID == "" {
		return fmt.Errorf("projection player id is required")
	}
	if p.Season <= 0 {
		return fmt.Errorf("projection season must be greater than zero")
	}
	if p.Week <= 0 {
		return fmt.Errorf("projection week must be greater than zero")
	}
	if p.Source == "" {
		return fmt.Errorf("projection source is required")
	}
	return nil
}

// WithPlayer is a projection joined with its player, as read by queries.
type WithPlayer struct {
	Projection Projection
	Player     player.Player
}

type ListFilter struct {
	Season   int
	Week     int
	Source   source.Name
	Position player.Position
	Team     string
}

// AvailabilityEntry counts stored rows for one (season, week, source).
type AvailabilityEntry struct {
	Season int
	Week   int
	Source source.Name
	Count  int
}
