package zone

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	winterNoon = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	summerNoon = time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)
)

func TestClassifyCoversEveryHour(t *testing.T) {
	counts := make(map[Bucket]int)
	for h := 0; h < 24; h++ {
		b := Classify(h)
		assert.Contains(t, Buckets, b, "hour %d", h)
		counts[b]++
	}

	assert.Equal(t, 3, counts[SleepingEarly])
	assert.Equal(t, 1, counts[BusyEarly])
	assert.Equal(t, 10, counts[GoodTime])
	assert.Equal(t, 4, counts[BusyLate])
	assert.Equal(t, 6, counts[SleepingLate])
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		hour int
		want Bucket
	}{
		{0, SleepingLate},
		{4, SleepingLate},
		{5, SleepingEarly},
		{7, SleepingEarly},
		{8, BusyEarly},
		{9, GoodTime},
		{18, GoodTime},
		{19, BusyLate},
		{22, BusyLate},
		{23, SleepingLate},
	}

	for _, tt := range tests {
		if got := Classify(tt.hour); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestBucketPresentation(t *testing.T) {
	assert.Equal(t, "It's early, they might be sleeping", SleepingEarly.Tooltip())
	assert.Equal(t, "It's early, they might be busy", BusyEarly.Tooltip())
	assert.Equal(t, "It's a good time to reach out", GoodTime.Tooltip())
	assert.Equal(t, "It's getting late, they might be busy", BusyLate.Tooltip())
	assert.Equal(t, "It's late, they might be sleeping", SleepingLate.Tooltip())

	assert.Equal(t, Green, GoodTime.Color())
	assert.Equal(t, Yellow, BusyLate.Color())
	assert.Equal(t, Red, SleepingEarly.Color())
	assert.Equal(t, Sun, GoodTime.Icon())
	assert.Equal(t, Clock, BusyEarly.Icon())
	assert.Equal(t, Moon, SleepingLate.Icon())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "America/New York", DisplayName("America/New_York"))
	assert.Equal(t, "America/Argentina/Rio Gallegos", DisplayName("America/Argentina/Rio_Gallegos"))
	assert.Equal(t, "UTC", DisplayName("UTC"))
}

func TestCurrentTime(t *testing.T) {
	got, err := CurrentTime("Asia/Kolkata", winterNoon, false)
	require.NoError(t, err)
	assert.Equal(t, "5:30 PM", got)

	got, err = CurrentTime("Asia/Kolkata", winterNoon, true)
	require.NoError(t, err)
	assert.Equal(t, "17:30", got)

	got, err = CurrentTime("America/New_York", winterNoon, true)
	require.NoError(t, err)
	assert.Equal(t, "07:00", got)
}

func TestOffset(t *testing.T) {
	tests := []struct {
		tz   string
		now  time.Time
		want string
	}{
		{"Asia/Kolkata", winterNoon, "UTC+05:30"},
		{"America/New_York", winterNoon, "UTC-05:00"},
		{"America/New_York", summerNoon, "UTC-04:00"},
		{"Europe/London", winterNoon, "UTC+00:00"},
		{"Asia/Kathmandu", winterNoon, "UTC+05:45"},
	}

	for _, tt := range tests {
		got, err := Offset(tt.tz, tt.now)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.tz)
	}
}

func TestHelpersFollowDaylightSaving(t *testing.T) {
	tip, err := Tooltip("America/New_York", winterNoon)
	require.NoError(t, err)
	assert.Equal(t, SleepingEarly.Tooltip(), tip)

	tip, err = Tooltip("America/New_York", summerNoon)
	require.NoError(t, err)
	assert.Equal(t, BusyEarly.Tooltip(), tip)

	c, err := ColorFor("Europe/Berlin", winterNoon)
	require.NoError(t, err)
	assert.Equal(t, Green, c)

	i, err := IconFor("Asia/Tokyo", winterNoon) // 21:00
	require.NoError(t, err)
	assert.Equal(t, Clock, i)
}

func TestDescribe(t *testing.T) {
	info, err := Describe("America/Los_Angeles", winterNoon, false)
	require.NoError(t, err)

	assert.Equal(t, Info{
		Zone:      "America/Los_Angeles",
		ZoneName:  "America/Los Angeles",
		LocalTime: "4:00 AM",
		Offset:    "UTC-08:00",
		Hour:      4,
		Bucket:    SleepingLate,
		Tooltip:   "It's late, they might be sleeping",
		Color:     Red,
		Icon:      Moon,
	}, info)
}

func TestInvalidTimezone(t *testing.T) {
	for _, tz := range []string{"", "Local", "Mars/Olympus_Mons"} {
		_, err := Describe(tz, winterNoon, false)
		assert.True(t, errors.Is(err, ErrInvalid), "tz %q: %v", tz, err)

		_, err = Offset(tz, winterNoon)
		assert.Error(t, err)
	}
}

func TestLoadRejectsSkippedTrees(t *testing.T) {
	for _, tz := range []string{"right/UTC", "posix/Europe/London", "posixrules", "Factory", "localtime"} {
		_, err := Load(tz)
		assert.True(t, errors.Is(err, ErrInvalid), "tz %q: %v", tz, err)
	}

	_, err := Load("Europe/London")
	assert.NoError(t, err)
}

func TestSupported(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := "/usr/share/zoneinfo"
	for _, name := range []string{
		"Europe/Berlin",
		"America/New_York",
		"America/Argentina/Buenos_Aires",
		"UTC",
		"zone.tab",
		"tzdata.zi",
		"posixrules",
		"posix/Europe/Berlin",
		"right/UTC",
		"Mars/Olympus_Mons",
	} {
		require.NoError(t, afero.WriteFile(fsys, root+"/"+name, []byte("TZif"), 0o644))
	}

	zones, err := Supported(fsys, root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"America/Argentina/Buenos_Aires",
		"America/New_York",
		"Europe/Berlin",
		"UTC",
	}, zones)
}

func TestSupportedMissingRoot(t *testing.T) {
	_, err := Supported(afero.NewMemMapFs(), DefaultZoneInfoDir)
	require.Error(t, err)
}
