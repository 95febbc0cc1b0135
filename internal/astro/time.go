package astro

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// MinYear and MaxYear bound the proleptic Gregorian years accepted by
	// TimeFromCalendar and NewTime.
	MinYear = -9999
	MaxYear = 9999

	// J2000 is the Julian Date of 2000-01-01 12:00 UT.
	J2000 = 2451545.0

	secondsPerDay = 86400.0
	millisPerDay  = 86400000.0

	// j2000UnixMillis is J2000 expressed as Unix milliseconds.
	j2000UnixMillis = 946728000000

	// maxAbsDays comfortably covers MinYear..MaxYear around J2000.
	maxAbsDays = 5e6
)

// Time is an instant on two scales: UT (Earth rotation) and TT (uniform
// dynamical time), both in days since J2000. TT is derived from UT through
// DeltaT. Time is an immutable value.
type Time struct {
	UT float64 // days since J2000, universal time
	TT float64 // days since J2000, terrestrial time
}

// NewTime builds a Time from UT days since J2000.
func NewTime(ut float64) (Time, error) {
	if err := checkFinite("ut", ut); err != nil {
		return Time{}, err
	}
	if math.Abs(ut) > maxAbsDays {
		return Time{}, fmt.Errorf("%w: ut %.3f is outside years %d..%d", ErrInvalidDate, ut, MinYear, MaxYear)
	}
	t := fromUT(ut)
	if y := t.Go().Year(); y < MinYear || y > MaxYear {
		return Time{}, fmt.Errorf("%w: year %d is outside %d..%d", ErrInvalidDate, y, MinYear, MaxYear)
	}
	return t, nil
}

// MustTime is NewTime for constants known to be valid. It panics on error.
func MustTime(ut float64) Time {
	t, err := NewTime(ut)
	if err != nil {
		panic(err)
	}
	return t
}

func fromUT(ut float64) Time {
	return Time{UT: ut, TT: ut + DeltaT(ut)/secondsPerDay}
}

// TimeFromCalendar builds a Time from a proleptic Gregorian UTC date.
func TimeFromCalendar(year, month, day, hour, minute int, second float64) (Time, error) {
	if year < MinYear || year > MaxYear {
		return Time{}, fmt.Errorf("%w: year %d outside %d..%d", ErrInvalidDate, year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return Time{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > daysIn(year, month) {
		return Time{}, fmt.Errorf("%w: day %d of %04d-%02d", ErrInvalidDate, day, year, month)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("%w: time of day %02d:%02d", ErrInvalidDate, hour, minute)
	}
	if math.IsNaN(second) || second < 0 || second >= 60 {
		return Time{}, fmt.Errorf("%w: second %v", ErrInvalidDate, second)
	}

	// Whole days and the fraction are kept apart so that the fraction
	// does not lose bits against a large Julian Date.
	midnight := julian.CalendarGregorianToJD(year, month, float64(day))
	ut := (midnight - J2000) + (float64(hour)*3600+float64(minute)*60+second)/secondsPerDay
	return fromUT(ut), nil
}

// TimeFromGo converts a time.Time to a Time.
func TimeFromGo(t time.Time) (Time, error) {
	ms := t.UnixMilli() - j2000UnixMillis
	sub := float64(t.Nanosecond()%int(time.Millisecond)) / 1e6
	return NewTime((float64(ms) + sub) / millisPerDay)
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddDays returns t shifted by days of UT. TT is recomputed. days must be
// finite; offsets that are computed or supplied by callers go through Add.
func (t Time) AddDays(days float64) Time {
	return fromUT(t.UT + days)
}

// Add returns t shifted by days of UT, failing with ErrInvalidArgument for
// a non-finite shift and ErrInvalidDate when the result leaves the
// supported years.
func (t Time) Add(days float64) (Time, error) {
	if err := checkFinite("day offset", days); err != nil {
		return Time{}, err
	}
	return NewTime(t.UT + days)
}

// Sub returns t − u in days of UT.
func (t Time) Sub(u Time) float64 {
	return t.UT - u.UT
}

// Before reports whether t is earlier than u.
func (t Time) Before(u Time) bool {
	return t.UT < u.UT
}

// After reports whether t is later than u.
func (t Time) After(u Time) bool {
	return t.UT > u.UT
}

// Equal reports whether t and u are the same instant.
func (t Time) Equal(u Time) bool {
	return t.UT == u.UT
}

// JD returns the Julian Date on the UT scale.
func (t Time) JD() float64 {
	return t.UT + J2000
}

// JDE returns the Julian Ephemeris Date (TT scale).
func (t Time) JDE() float64 {
	return t.TT + J2000
}

// Centuries returns Julian centuries of TT since J2000.
func (t Time) Centuries() float64 {
	return t.TT / 36525
}

// CalendarTime is a broken-down proleptic Gregorian UTC date.
type CalendarTime struct {
	Year, Month, Day int
	Hour, Minute     int
	Second           float64 // rounded to the millisecond
}

// Calendar converts t back to a calendar date. Seconds are rounded to the
// nearest millisecond, carrying into minutes, hours and days as needed.
func (t Time) Calendar() CalendarTime {
	g := t.Go()
	return CalendarTime{
		Year:   g.Year(),
		Month:  int(g.Month()),
		Day:    g.Day(),
		Hour:   g.Hour(),
		Minute: g.Minute(),
		Second: float64(g.Second()) + float64(g.Nanosecond()/int(time.Millisecond))/1000,
	}
}

// Go converts t to a UTC time.Time at millisecond resolution.
func (t Time) Go() time.Time {
	ms := int64(math.Round(t.UT * millisPerDay))
	return time.UnixMilli(j2000UnixMillis + ms).UTC()
}

// String formats t as an ISO 8601 UTC timestamp with milliseconds.
func (t Time) String() string {
	return t.Go().Format("2006-01-02T15:04:05.000Z")
}
