package domain

import (
	"testing"
	"time"
)

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"19:00:00", false},
		{"06:00:00", false},
		{"23:59:59", false},
		{"24:00:00", true},
		{"12:60:00", true},
		{"not-a-time", true},
	}
	for _, c := range cases {
		ct, err := ParseClockTime(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClockTime(%q): expected error, got %+v", c.in, ct)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClockTime(%q): unexpected error %v", c.in, err)
		}
	}
}

func TestClockTimeOnDate(t *testing.T) {
	ct, err := ParseClockTime("19:30:00")
	if err != nil {
		t.Fatal(err)
	}
	ref := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	got := ct.OnDate(ref, time.UTC)
	want := time.Date(2026, 3, 15, 19, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("OnDate = %v, want %v", got, want)
	}
}

func TestTransitionWindowsTileNoOverlap(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	w := TransitionWindows{
		SunriseStart: base.Add(6 * time.Hour),
		SunriseEnd:   base.Add(7 * time.Hour),
		SunsetStart:  base.Add(19 * time.Hour),
		SunsetEnd:    base.Add(20 * time.Hour),
	}
	got, adjusted := w.Tile()
	if adjusted {
		t.Errorf("expected no adjustment for well-ordered windows")
	}
	if got != w {
		t.Errorf("Tile should be identity on well-ordered windows, got %+v", got)
	}
}

func TestTransitionWindowsTileClampsOverlap(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	// A pathological short-day config: sunrise window runs past sunset start.
	w := TransitionWindows{
		SunriseStart: base.Add(11 * time.Hour),
		SunriseEnd:   base.Add(13 * time.Hour),
		SunsetStart:  base.Add(12 * time.Hour),
		SunsetEnd:    base.Add(14 * time.Hour),
	}
	got, adjusted := w.Tile()
	if !adjusted {
		t.Fatalf("expected Tile to report adjustment for overlapping windows")
	}
	if got.SunriseEnd.After(got.SunsetStart) {
		t.Errorf("tiled windows still overlap: sunriseEnd=%v sunsetStart=%v", got.SunriseEnd, got.SunsetStart)
	}
	if !got.SunriseStart.Before(got.SunriseEnd) {
		t.Errorf("sunrise window inverted after tiling: %+v", got)
	}
}
