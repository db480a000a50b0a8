package timetext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTwelveHour(t *testing.T) {
	c, ok := ParseClock("10:00 AM")
	require.True(t, ok)
	assert.Equal(t, Clock{Hour: 10}, c)

	c, ok = ParseClock("12:30 am")
	require.True(t, ok)
	assert.Equal(t, Clock{Hour: 0, Minute: 30}, c)

	c, ok = ParseClock("12:00 PM")
	require.True(t, ok)
	assert.Equal(t, Clock{Hour: 12}, c)

	c, ok = ParseClock("9:15 pm")
	require.True(t, ok)
	assert.Equal(t, Clock{Hour: 21, Minute: 15}, c)
}

func TestParseClockTwentyFourHour(t *testing.T) {
	c, ok := ParseClock("14:00")
	require.True(t, ok)
	assert.Equal(t, Clock{Hour: 14}, c)

	c, ok = ParseClock("0:05")
	require.True(t, ok)
	assert.Equal(t, Clock{Minute: 5}, c)
}

func TestParseClockRejectsGarbage(t *testing.T) {
	cases := []string{"", "TBD", "25:00", "10:61", "13:00 PM", "0:00 AM", "noonish", "10am"}
	for _, raw := range cases {
		_, ok := ParseClock(raw)
		assert.Falsef(t, ok, "expected %q to be rejected", raw)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	cases := map[string]string{
		"9:00 am":  "9:00 AM",
		"09:05 AM": "9:05 AM",
		"12:00 pm": "12:00 PM",
		"12:00 am": "12:00 AM",
		"11:45 PM": "11:45 PM",
	}
	for raw, want := range cases {
		c, ok := ParseClock(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, c.Format(Layout12))
	}
}

func TestFormatTwentyFourHourZeroPads(t *testing.T) {
	c, ok := ParseClock("9:05 AM")
	require.True(t, ok)
	assert.Equal(t, "09:05", c.Format(Layout24))

	midnight := Clock{}
	assert.Equal(t, "00:00", midnight.Format(Layout24))
	assert.Equal(t, "12:00 AM", midnight.Format(Layout12))
}

func TestParseDurationText(t *testing.T) {
	assert.Equal(t, 120, ParseDurationText("2h"))
	assert.Equal(t, 30, ParseDurationText("30m"))
	assert.Equal(t, 90, ParseDurationText("1.5h"))
	assert.Equal(t, 150, ParseDurationText("2h 30m"))
	assert.Equal(t, 0, ParseDurationText("all day"))
	assert.Equal(t, 0, ParseDurationText(""))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1.5h", FormatMinutes(90))
	assert.Equal(t, "2h 15m", FormatMinutes(135))
}

func TestOverlapsSymmetry(t *testing.T) {
	cases := [][4]int{
		{600, 720, 660, 720},
		{0, 60, 30, 90},
		{100, 200, 300, 400},
	}
	for _, c := range cases {
		assert.Equal(t,
			Overlaps(c[0], c[1], c[2], c[3]),
			Overlaps(c[2], c[3], c[0], c[1]),
		)
	}
}

func TestOverlapsTouchingBoundaries(t *testing.T) {
	// 10:00-11:00 vs 11:00-12:00
	assert.False(t, Overlaps(600, 660, 660, 720))
	assert.True(t, Overlaps(600, 720, 660, 720))
}

func TestAddMinutesWrapsAtMidnight(t *testing.T) {
	c := AddMinutes(Clock{Hour: 23, Minute: 30}, 45)
	assert.Equal(t, Clock{Hour: 0, Minute: 15}, c)

	c = AddMinutes(Clock{Hour: 1}, -90)
	assert.Equal(t, Clock{Hour: 23, Minute: 30}, c)
}

func TestFindGaps(t *testing.T) {
	spans := []Span{
		{Start: 840, End: 900},  // 14:00-15:00
		{Start: 540, End: 600},  // 09:00-10:00
		{Start: 620, End: 680},  // 10:20-11:20
	}

	gaps := FindGaps(spans, 60)
	require.Len(t, gaps, 1)
	assert.Equal(t, Gap{Start: 680, End: 840, Minutes: 160}, gaps[0])

	// threshold below the 20 minute gap picks up both stretches
	gaps = FindGaps(spans, 15)
	require.Len(t, gaps, 2)
	assert.Equal(t, 20, gaps[0].Minutes)
}

func TestFindGapsTooFewSpans(t *testing.T) {
	assert.Nil(t, FindGaps([]Span{{Start: 0, End: 60}}, 10))
	assert.Nil(t, FindGaps(nil, 10))
}

func TestScheduled(t *testing.T) {
	assert.True(t, Scheduled("10:00 AM"))
	assert.False(t, Scheduled(""))
	assert.False(t, Scheduled("TBD"))
	assert.False(t, Scheduled(" tbd "))
}
