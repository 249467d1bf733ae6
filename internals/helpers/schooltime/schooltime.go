// file: internals/helpers/schooltime/schooltime.go
package schooltime

import "time"

// Semua dedup presensi memakai "hari kalender" sekolah:
// interval setengah-terbuka [00:00, 00:00 besok) di timezone sekolah.

// DateOf memotong t ke tengah malam hari kalender di loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DayWindow mengembalikan [start, end) hari kalender yang memuat t.
func DayWindow(t time.Time, loc *time.Location) (start, end time.Time) {
	start = DateOf(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// WeekStart: hari Minggu 00:00 dari minggu yang memuat t.
// (mengikuti konvensi startOf('week') di sumber data lama)
func WeekStart(t time.Time, loc *time.Location) time.Time {
	d := DateOf(t, loc)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// MonthStart: tanggal 1 pukul 00:00 dari bulan yang memuat t.
func MonthStart(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, loc)
}

// FormatClock: "HH:MM:SS" di timezone sekolah.
func FormatClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04:05")
}

// FormatDate: "YYYY-MM-DD" di timezone sekolah.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// ParseDate membaca "YYYY-MM-DD" sebagai tengah malam di loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}
