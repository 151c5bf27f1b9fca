package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable covers every adapter-level failure: nothing published for
// the requested week, transport errors and bodies that cannot be parsed.
var ErrUnavailable = errors.New("source unavailable")

// Name identifies one upstream. The set is closed.
type Name string

const (
	NameNFLVerse Name = "nflverse"
	NameFFDP     Name = "ffdp"
)

const (
	AliasPrimary = "primary"
	AliasBackup  = "backup"
)

var AllNames = []Name{NameNFLVerse, NameFFDP}

func (n Name) String() string {
	return string(n)
}

// ParseName accepts a source name or the primary/backup aliases.
func ParseName(raw string) (Name, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(NameNFLVerse), AliasPrimary:
		return NameNFLVerse, nil
	case string(NameFFDP), AliasBackup:
		return NameFFDP, nil
	default:
		return "", fmt.Errorf("unknown source %q", raw)
	}
}

// RawRecord is one upstream row keyed by the upstream's own column names.
// Empty cells are absent.
type RawRecord map[string]string

// malformedKey cannot collide with a CSV header, which is trimmed text.
const malformedKey = "\x00malformed"

// MalformedRecord stands in for an upstream row that could not be read.
// It travels with the good rows so the import can report it per record.
func MalformedRecord(reason string) RawRecord {
	return RawRecord{malformedKey: reason}
}

// Malformed returns the read error of a placeholder built by
// MalformedRecord.
func (r RawRecord) Malformed() (string, bool) {
	reason, ok := r[malformedKey]
	return reason, ok
}

// CountUsable counts the records that are not malformed placeholders.
func CountUsable(records []RawRecord) int {
	n := 0
	for _, r := range records {
		if _, bad := r.Malformed(); !bad {
			n++
		}
	}
	return n
}

// Adapter fetches raw rows for one (season, week) from a single upstream.
// Implementations apply a bounded timeout and never retry.
type Adapter interface {
	Name() Name
	Fetch(ctx context.Context, season, week int) ([]RawRecord, error)
	Probe(ctx context.Context) error
}

// Status is the availability report for one adapter.
type Status struct {
	Name      Name
	Role      string
	Available bool
	Error     string
}
