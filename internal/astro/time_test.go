package astro

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestTimeFromCalendar(t *testing.T) {
	tm, err := TimeFromCalendar(2018, 12, 2, 18, 30, 12.543)
	if err != nil {
		t.Fatalf("TimeFromCalendar() error = %v", err)
	}
	if math.Abs(tm.UT-6910.270978506945) > 1e-12 {
		t.Errorf("UT = %.15f, want 6910.270978506945", tm.UT)
	}
	if math.Abs(tm.TT-6910.271800214368) > 1e-9 {
		t.Errorf("TT = %.15f, want 6910.271800214368", tm.TT)
	}
	if got := tm.String(); got != "2018-12-02T18:30:12.543Z" {
		t.Errorf("String() = %q", got)
	}
}

func TestTimeFromCalendar_J2000(t *testing.T) {
	tm, err := TimeFromCalendar(2000, 1, 1, 12, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if tm.UT != 0 {
		t.Errorf("UT at J2000 = %v, want 0", tm.UT)
	}
	if math.Abs(tm.JD()-J2000) > 1e-9 {
		t.Errorf("JD() = %v, want %v", tm.JD(), J2000)
	}
	// ΔT near 2000 is a little over a minute.
	if dt := (tm.TT - tm.UT) * 86400; dt < 63 || dt > 65 {
		t.Errorf("TT-UT at J2000 = %.2fs, want ~63.8s", dt)
	}
}

func TestCalendarRoundTrip(t *testing.T) {
	tests := []CalendarTime{
		{Year: 2000, Month: 1, Day: 1, Hour: 12},
		{Year: 1970, Month: 1, Day: 1},
		{Year: 2024, Month: 2, Day: 29, Hour: 23, Minute: 59, Second: 59.999},
		{Year: 1582, Month: 10, Day: 10, Hour: 6, Minute: 7, Second: 8.25},
		{Year: 1, Month: 1, Day: 1},
		{Year: 0, Month: 3, Day: 1, Hour: 1},
		{Year: -1, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59},
		{Year: -4712, Month: 1, Day: 1, Hour: 12},
		{Year: -9999, Month: 1, Day: 1},
		{Year: 9999, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59.999},
		{Year: 2100, Month: 2, Day: 28, Hour: 18, Minute: 45, Second: 30.5},
	}

	for _, want := range tests {
		tm, err := TimeFromCalendar(want.Year, want.Month, want.Day, want.Hour, want.Minute, want.Second)
		if err != nil {
			t.Errorf("TimeFromCalendar(%+v) error = %v", want, err)
			continue
		}
		got := tm.Calendar()
		if got.Year != want.Year || got.Month != want.Month || got.Day != want.Day ||
			got.Hour != want.Hour || got.Minute != want.Minute || math.Abs(got.Second-want.Second) > 1e-9 {
			t.Errorf("Calendar() = %+v, want %+v", got, want)
		}
	}
}

func TestCalendarCarriesRoundedSeconds(t *testing.T) {
	tm, err := TimeFromCalendar(2020, 12, 31, 23, 59, 59.9996)
	if err != nil {
		t.Fatal(err)
	}
	got := tm.Calendar()
	want := CalendarTime{Year: 2021, Month: 1, Day: 1}
	if got != want {
		t.Errorf("Calendar() = %+v, want %+v", got, want)
	}
}

func TestTimeFromCalendar_Invalid(t *testing.T) {
	tests := []struct {
		name                         string
		year, month, day, hour, min int
		sec                          float64
	}{
		{"year too late", 10000, 1, 1, 0, 0, 0},
		{"year too early", -10000, 1, 1, 0, 0, 0},
		{"month zero", 2020, 0, 1, 0, 0, 0},
		{"month 13", 2020, 13, 1, 0, 0, 0},
		{"february 30", 2020, 2, 30, 0, 0, 0},
		{"february 29 non leap", 2019, 2, 29, 0, 0, 0},
		{"hour 24", 2020, 1, 1, 24, 0, 0},
		{"minute 60", 2020, 1, 1, 0, 60, 0},
		{"second 60", 2020, 1, 1, 0, 0, 60},
		{"negative second", 2020, 1, 1, 0, 0, -1},
		{"NaN second", 2020, 1, 1, 0, 0, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TimeFromCalendar(tt.year, tt.month, tt.day, tt.hour, tt.min, tt.sec)
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("TimeFromCalendar() error = %v, want ErrInvalidDate", err)
			}
		})
	}
}

func TestNewTime_Invalid(t *testing.T) {
	for _, ut := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := NewTime(ut); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewTime(%v) error = %v, want ErrInvalidArgument", ut, err)
		}
	}
	for _, ut := range []float64{1e7, -1e7, 3.7e6} {
		if _, err := NewTime(ut); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("NewTime(%v) error = %v, want ErrInvalidDate", ut, err)
		}
	}
}

func TestTimeFromGo(t *testing.T) {
	g := time.Date(2019, 6, 21, 15, 54, 14, 0, time.UTC)
	tm, err := TimeFromGo(g)
	if err != nil {
		t.Fatal(err)
	}
	if !tm.Go().Equal(g) {
		t.Errorf("Go() = %v, want %v", tm.Go(), g)
	}

	ref, err := TimeFromCalendar(2019, 6, 21, 15, 54, 14)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(ref.UT-tm.UT) > 1e-11 {
		t.Errorf("TimeFromGo UT = %v, TimeFromCalendar UT = %v", tm.UT, ref.UT)
	}
}

func TestAddDays(t *testing.T) {
	start := MustTime(0)
	later := start.AddDays(36525)
	if later.Sub(start) != 36525 {
		t.Errorf("Sub() = %v, want 36525", later.Sub(start))
	}
	if !later.After(start) || !start.Before(later) {
		t.Error("ordering helpers disagree with AddDays")
	}
	if later.TT-later.UT <= start.TT-start.UT {
		t.Error("ΔT should grow over the 21st century")
	}
}

func TestAdd(t *testing.T) {
	start := MustTime(0)
	got, err := start.Add(1.5)
	if err != nil {
		t.Fatal(err)
	}
	if got != start.AddDays(1.5) {
		t.Errorf("Add(1.5) = %v, want %v", got, start.AddDays(1.5))
	}

	for _, days := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := start.Add(days); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Add(%v) error = %v, want ErrInvalidArgument", days, err)
		}
	}
	if _, err := start.Add(1e7); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Add(1e7) error = %v, want ErrInvalidDate", err)
	}
}

func TestDeltaT(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		min, max float64
	}{
		{"1900", 1900, -4, 0},
		{"1950", 1950, 28, 30},
		{"2000", 2000, 63, 65},
		{"1700", 1700, 8, 10},
		{"1000", 1000, 1500, 1650},
		{"-500", -500, 16000, 18000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, err := TimeFromCalendar(tt.year, 7, 1, 0, 0, 0)
			if err != nil {
				t.Fatal(err)
			}
			if dt := DeltaT(tm.UT); dt < tt.min || dt > tt.max {
				t.Errorf("DeltaT(%d) = %v, want [%v, %v]", tt.year, dt, tt.min, tt.max)
			}
		})
	}
}
