package schooltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func TestDateOfTruncatesToMidnight(t *testing.T) {
	at := time.Date(2026, 3, 2, 23, 59, 59, 0, ist)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, ist), DateOf(at, ist))

	justAfter := time.Date(2026, 3, 3, 0, 0, 1, 0, ist)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, ist), DateOf(justAfter, ist))
}

func TestDateOfConvertsTimezoneFirst(t *testing.T) {
	// 2026-03-02 20:00 UTC = 2026-03-03 01:30 IST → hari kalender 03-03
	at := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, ist), DateOf(at, ist))
}

func TestDayWindowHalfOpen(t *testing.T) {
	at := time.Date(2026, 3, 2, 12, 0, 0, 0, ist)
	start, end := DayWindow(at, ist)

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, ist), start)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, ist), end)

	lastSecond := time.Date(2026, 3, 2, 23, 59, 59, 0, ist)
	assert.True(t, lastSecond.Before(end))
}

func TestWeekStartIsSunday(t *testing.T) {
	// 2026-03-04 = Rabu → minggu dimulai Minggu 2026-03-01
	wed := time.Date(2026, 3, 4, 15, 0, 0, 0, ist)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, ist), WeekStart(wed, ist))

	// Minggu adalah awal minggunya sendiri
	sun := time.Date(2026, 3, 1, 9, 0, 0, 0, ist)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, ist), WeekStart(sun, ist))
}

func TestMonthStart(t *testing.T) {
	at := time.Date(2026, 3, 15, 9, 0, 0, 0, ist)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, ist), MonthStart(at, ist))
}

func TestFormatters(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 5, 7, 0, ist)
	assert.Equal(t, "09:05:07", FormatClock(at, ist))
	assert.Equal(t, "2026-03-02", FormatDate(at, ist))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-02", ist)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, ist), d)

	_, err = ParseDate("02-03-2026", ist)
	assert.Error(t, err)

	_, err = ParseDate("not-a-date", ist)
	assert.Error(t, err)
}
