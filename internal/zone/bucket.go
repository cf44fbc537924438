package zone

import "time"

// Bucket classifies an hour of day by how reachable someone probably is.
type Bucket string

const (
	SleepingEarly Bucket = "sleeping_early" // 05:00-07:59
	BusyEarly     Bucket = "busy_early"     // 08:00-08:59
	GoodTime      Bucket = "good_time"      // 09:00-18:59
	BusyLate      Bucket = "busy_late"      // 19:00-22:59
	SleepingLate  Bucket = "sleeping_late"  // 23:00-04:59
)

// Buckets lists every bucket in day order.
var Buckets = []Bucket{SleepingEarly, BusyEarly, GoodTime, BusyLate, SleepingLate}

// Color is the tag color shown with a buddy's local time.
type Color string

const (
	Red    Color = "red"
	Yellow Color = "yellow"
	Green  Color = "green"
)

// Icon names the glyph shown with a buddy's local time.
type Icon string

const (
	Moon  Icon = "moon"
	Clock Icon = "clock"
	Sun   Icon = "sun"
)

// Classify maps an hour (0-23) to its bucket. Any hour outside the four
// daytime ranges is SleepingLate, so the buckets cover every hour.
func Classify(hour int) Bucket {
	switch {
	case hour >= 5 && hour <= 7:
		return SleepingEarly
	case hour == 8:
		return BusyEarly
	case hour >= 9 && hour <= 18:
		return GoodTime
	case hour >= 19 && hour <= 22:
		return BusyLate
	default:
		return SleepingLate
	}
}

// Tooltip is the friendly sentence for b.
func (b Bucket) Tooltip() string {
	switch b {
	case SleepingEarly:
		return "It's early, they might be sleeping"
	case BusyEarly:
		return "It's early, they might be busy"
	case GoodTime:
		return "It's a good time to reach out"
	case BusyLate:
		return "It's getting late, they might be busy"
	default:
		return "It's late, they might be sleeping"
	}
}

func (b Bucket) Color() Color {
	switch b {
	case GoodTime:
		return Green
	case BusyEarly, BusyLate:
		return Yellow
	default:
		return Red
	}
}

func (b Bucket) Icon() Icon {
	switch b {
	case GoodTime:
		return Sun
	case BusyEarly, BusyLate:
		return Clock
	default:
		return Moon
	}
}

// Glyph is the terminal rendering of i.
func (i Icon) Glyph() string {
	switch i {
	case Sun:
		return "☀"
	case Clock:
		return "◷"
	default:
		return "☾"
	}
}

// Tooltip returns the tooltip for tz at now.
func Tooltip(tz string, now time.Time) (string, error) {
	h, err := Hour(tz, now)
	if err != nil {
		return "", err
	}
	return Classify(h).Tooltip(), nil
}

// ColorFor returns the tag color for tz at now.
func ColorFor(tz string, now time.Time) (Color, error) {
	h, err := Hour(tz, now)
	if err != nil {
		return "", err
	}
	return Classify(h).Color(), nil
}

// IconFor returns the icon for tz at now.
func IconFor(tz string, now time.Time) (Icon, error) {
	h, err := Hour(tz, now)
	if err != nil {
		return "", err
	}
	return Classify(h).Icon(), nil
}
