package solar

import (
	"testing"
	"time"

	"github.com/sunsetr-dev/sunsetr/internal/domain"
)

func TestAtEquinoxNearEquator(t *testing.T) {
	eng := New(0, 0)
	// March equinox.
	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	st, err := eng.At(date, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if st.Method != domain.MethodStandard {
		t.Fatalf("expected standard method near the equator, got %v", st.Method)
	}

	sunrise := st.Ascending[domain.AngleHorizon]
	sunset := st.Descending[domain.AngleHorizon]

	wantSunrise := time.Date(2026, 3, 20, 6, 0, 0, 0, time.UTC)
	wantSunset := time.Date(2026, 3, 20, 18, 0, 0, 0, time.UTC)

	if d := diffMinutes(sunrise, wantSunrise); d > 2 {
		t.Errorf("sunrise %v too far from 06:00 UTC (%v minutes)", sunrise, d)
	}
	if d := diffMinutes(sunset, wantSunset); d > 2 {
		t.Errorf("sunset %v too far from 18:00 UTC (%v minutes)", sunset, d)
	}
}

func TestAtExtremeLatitudeMidJuneFallsBack(t *testing.T) {
	eng := New(78, 15)
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	st, err := eng.At(date, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if st.Method != domain.MethodExtremeFallback {
		t.Fatalf("expected ExtremeFallback at 78N in midsummer, got %v", st.Method)
	}

	w := st.Windows()
	tiled, _ := w.Tile()
	if tiled.SunriseStart.After(tiled.SunriseEnd) {
		t.Errorf("tiling invariant violated for sunrise window: %+v", tiled)
	}
	if tiled.SunsetStart.After(tiled.SunsetEnd) {
		t.Errorf("tiling invariant violated for sunset window: %+v", tiled)
	}
	if tiled.SunriseEnd.After(tiled.SunsetStart) {
		t.Errorf("tiling invariant violated between sunrise and sunset: %+v", tiled)
	}
}

func diffMinutes(a, b time.Time) float64 {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d.Minutes()
}
