// Package zone holds the presentation helpers: pure functions mapping an
// IANA timezone identifier and an instant to the strings and
// classifications shown next to each buddy.
//
// Timezone rules come from Go's time package. The binary embeds
// time/tzdata, so lookups work on hosts without a zoneinfo tree.
package zone

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid is returned for identifiers the timezone database rejects.
var ErrInvalid = errors.New("invalid timezone")

// Load resolves tz to a location. Empty and "Local" are rejected: a
// buddy's zone must not depend on the machine showing it. Names that
// Supported never lists (posix/, right/, Factory, ...) are rejected too.
func Load(tz string) (*time.Location, error) {
	if tz == "" || strings.EqualFold(tz, "local") || isSkipped(tz) {
		return nil, fmt.Errorf("%w: %q", ErrInvalid, tz)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalid, tz, err)
	}
	return loc, nil
}

// DisplayName turns "America/New_York" into "America/New York".
func DisplayName(tz string) string {
	return strings.ReplaceAll(tz, "_", " ")
}

// Hour returns the hour of day (0-23) at now in tz.
func Hour(tz string, now time.Time) (int, error) {
	loc, err := Load(tz)
	if err != nil {
		return 0, err
	}
	return now.In(loc).Hour(), nil
}

// CurrentTime formats now in tz as "3:04 PM", or "15:04" when use24h.
func CurrentTime(tz string, now time.Time, use24h bool) (string, error) {
	loc, err := Load(tz)
	if err != nil {
		return "", err
	}
	return FormatClock(now.In(loc), use24h), nil
}

// FormatClock formats t's wall clock hour and minute.
func FormatClock(t time.Time, use24h bool) string {
	if use24h {
		return t.Format("15:04")
	}
	return t.Format("3:04 PM")
}

// Offset returns tz's UTC offset at now, e.g. "UTC+05:30" or "UTC-04:00".
func Offset(tz string, now time.Time) (string, error) {
	loc, err := Load(tz)
	if err != nil {
		return "", err
	}
	_, secs := now.In(loc).Zone()
	return FormatOffset(secs), nil
}

// FormatOffset renders an offset in seconds east of UTC.
func FormatOffset(secs int) string {
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	mins := secs / 60
	return fmt.Sprintf("UTC%c%02d:%02d", sign, mins/60, mins%60)
}

// Info bundles everything the views show for one timezone.
type Info struct {
	Zone      string `json:"zone"`
	ZoneName  string `json:"zone_name"`
	LocalTime string `json:"local_time"`
	Offset    string `json:"offset"`
	Hour      int    `json:"hour"`
	Bucket    Bucket `json:"bucket"`
	Tooltip   string `json:"tooltip"`
	Color     Color  `json:"color"`
	Icon      Icon   `json:"icon"`
}

// Describe computes Info for tz at now.
func Describe(tz string, now time.Time, use24h bool) (Info, error) {
	loc, err := Load(tz)
	if err != nil {
		return Info{}, err
	}

	local := now.In(loc)
	_, secs := local.Zone()
	b := Classify(local.Hour())

	return Info{
		Zone:      tz,
		ZoneName:  DisplayName(tz),
		LocalTime: FormatClock(local, use24h),
		Offset:    FormatOffset(secs),
		Hour:      local.Hour(),
		Bucket:    b,
		Tooltip:   b.Tooltip(),
		Color:     b.Color(),
		Icon:      b.Icon(),
	}, nil
}
