package timezone

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// LocalLayout is the wall-clock layout accepted on input and produced on
// output. It deliberately carries no offset; the zone is always explicit.
const LocalLayout = "2006-01-02T15:04:05"

// ErrUnknownTimezone is returned for zone names the IANA database does not
// recognize.
var ErrUnknownTimezone = errors.New("unknown timezone")

// Common abbreviations accepted as shorthand for full IANA names.
var aliases = map[string]string{
	"IST":  "Asia/Kolkata",
	"UTC":  "UTC",
	"EST":  "America/New_York",
	"PST":  "America/Los_Angeles",
	"GMT":  "Europe/London",
	"CET":  "Europe/Paris",
	"JST":  "Asia/Tokyo",
	"AEST": "Australia/Sydney",
}

var (
	locMu    sync.RWMutex
	locCache = map[string]*time.Location{}
)

// LoadLocation resolves a zone name (or supported abbreviation) to a
// time.Location, caching loaded zones.
func LoadLocation(name string) (*time.Location, error) {
	if full, ok := aliases[name]; ok {
		name = full
	}

	locMu.RLock()
	loc, ok := locCache[name]
	locMu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}

	locMu.Lock()
	locCache[name] = loc
	locMu.Unlock()
	return loc, nil
}

// Validate reports whether name is a recognized zone.
func Validate(name string) error {
	_, err := LoadLocation(name)
	return err
}

// ToAbsolute interprets a local datetime string as wall-clock time in the
// given zone and returns the corresponding absolute instant in UTC. Inputs
// carrying an explicit offset (RFC 3339) are honored as-is.
func ToAbsolute(local string, zone string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, local); err == nil {
		return t.UTC(), nil
	}

	loc, err := LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(LocalLayout, local, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse local datetime %q: %w", local, err)
	}
	return t.UTC(), nil
}

// ToLocal projects an absolute instant into the given zone, returning the
// wall-clock representation. The offset in effect at that instant (not at
// conversion time) applies, so DST transitions are handled correctly.
func ToLocal(instant time.Time, zone string) (time.Time, error) {
	loc, err := LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}
	return instant.In(loc), nil
}

// Display is the rendered form of an instant in a specific zone.
type Display struct {
	DateTime  string `json:"datetime"`
	Timezone  string `json:"timezone"`
	UTCOffset string `json:"utc_offset"`
	Timestamp int64  `json:"timestamp"`
}

// Describe renders an absolute instant for the given zone.
func Describe(instant time.Time, zone string) (*Display, error) {
	local, err := ToLocal(instant, zone)
	if err != nil {
		return nil, err
	}
	return &Display{
		DateTime:  local.Format(LocalLayout),
		Timezone:  local.Location().String(),
		UTCOffset: local.Format("-0700"),
		Timestamp: local.Unix(),
	}, nil
}
