package engine

import (
	"testing"
	"time"

	"github.com/sunsetr-dev/sunsetr/internal/config"
	"github.com/sunsetr-dev/sunsetr/internal/domain"
)

func baseConfig() config.Config {
	cfg := config.Default()
	cfg.DayTempK = 6500
	cfg.NightTempK = 3300
	cfg.DayGammaPct = 100
	cfg.NightGammaPct = 90
	cfg.SunsetLocal = "19:00:00"
	cfg.SunriseLocal = "06:00:00"
	cfg.TransitionDurationMin = 45
	cfg.TransitionMode = config.ModeFinishBy
	return cfg
}

func noSolar(time.Time) (domain.SolarTimes, error) {
	panic("solar engine should not be called outside Geo mode")
}

func atLocal(ref time.Time, h, m, s int) time.Time {
	y, mo, d := ref.Date()
	return time.Date(y, mo, d, h, m, s, 0, ref.Location())
}

func TestEvaluateMiddayIsDay(t *testing.T) {
	cfg := baseConfig()
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	now := atLocal(day, 12, 0, 0)

	state, err := Evaluate(cfg, now, time.UTC, noSolar)
	if err != nil {
		t.Fatal(err)
	}
	if state.Kind != domain.Day {
		t.Fatalf("expected Day, got %v", state.Kind)
	}
	tempK, gammaPct := Render(cfg, state)
	if tempK != 6500 || gammaPct != 100 {
		t.Errorf("expected (6500, 100), got (%d, %d)", tempK, gammaPct)
	}
}

func TestEvaluateSunsetEndIsFullNight(t *testing.T) {
	cfg := baseConfig()
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	now := atLocal(day, 19, 0, 0)

	state, err := Evaluate(cfg, now, time.UTC, noSolar)
	if err != nil {
		t.Fatal(err)
	}
	if state.Kind != domain.InSunset {
		t.Fatalf("expected InSunset, got %v", state.Kind)
	}
	if state.Progress < 0.99 {
		t.Errorf("expected progress near 1.0, got %v", state.Progress)
	}
	tempK, gammaPct := Render(cfg, state)
	if tempK > 3400 || tempK < 3200 {
		t.Errorf("expected temp near 3300K, got %d", tempK)
	}
	if gammaPct > 92 || gammaPct < 88 {
		t.Errorf("expected gamma near 90%%, got %d", gammaPct)
	}
}

func TestEvaluateMidSunsetIsHalfwayEased(t *testing.T) {
	cfg := baseConfig()
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	now := atLocal(day, 18, 37, 30)

	state, err := Evaluate(cfg, now, time.UTC, noSolar)
	if err != nil {
		t.Fatal(err)
	}
	if state.Kind != domain.InSunset {
		t.Fatalf("expected InSunset, got %v", state.Kind)
	}
	if diff := state.Progress - 0.5; diff > 0.01 || diff < -0.01 {
		t.Errorf("expected progress ~0.5, got %v", state.Progress)
	}
	tempK, _ := Render(cfg, state)
	if tempK <= 3300 || tempK >= 6500 {
		t.Errorf("expected eased temp strictly between night and day, got %d", tempK)
	}
	// The symmetric ease meets the linear midpoint at p=0.5, so the
	// non-linearity is checked a quarter of the way in.
	quarterK, _ := Render(cfg, domain.TransitionState{Kind: domain.InSunset, Progress: 0.25})
	linear := 6500 - (6500-3300)/4
	if quarterK == linear {
		t.Errorf("easing should be non-linear, got exactly the linear quarter point %d", linear)
	}
}

func TestEvaluateLateNightIsNight(t *testing.T) {
	cfg := baseConfig()
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	now := atLocal(day, 2, 0, 0)

	state, err := Evaluate(cfg, now, time.UTC, noSolar)
	if err != nil {
		t.Fatal(err)
	}
	if state.Kind != domain.Night {
		t.Fatalf("expected Night, got %v", state.Kind)
	}
	tempK, gammaPct := Render(cfg, state)
	if tempK != 3300 || gammaPct != 90 {
		t.Errorf("expected (3300, 90), got (%d, %d)", tempK, gammaPct)
	}
}

func TestEvaluateCenterModeHalfwayAtConfiguredInstant(t *testing.T) {
	cfg := baseConfig()
	cfg.TransitionMode = config.ModeCenter
	cfg.TransitionDurationMin = 60
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	now := atLocal(day, 19, 0, 0)

	state, err := Evaluate(cfg, now, time.UTC, noSolar)
	if err != nil {
		t.Fatal(err)
	}
	if state.Kind != domain.InSunset {
		t.Fatalf("expected InSunset, got %v", state.Kind)
	}
	if diff := state.Progress - 0.5; diff > 0.01 || diff < -0.01 {
		t.Errorf("expected progress 0.5 at center, got %v", state.Progress)
	}
}

func TestEvaluateContinuityAcrossBoundary(t *testing.T) {
	cfg := baseConfig()
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	before := atLocal(day, 18, 59, 59)
	after := atLocal(day, 19, 0, 1)

	s1, err := Evaluate(cfg, before, time.UTC, noSolar)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := Evaluate(cfg, after, time.UTC, noSolar)
	if err != nil {
		t.Fatal(err)
	}
	t1, g1 := Render(cfg, s1)
	t2, g2 := Render(cfg, s2)
	if diff := t1 - t2; diff > 50 || diff < -50 {
		t.Errorf("temperature discontinuity across sunset-end boundary: %d vs %d", t1, t2)
	}
	if diff := g1 - g2; diff > 2 || diff < -2 {
		t.Errorf("gamma discontinuity across sunset-end boundary: %d vs %d", g1, g2)
	}
}

func TestNextEventAfterInsideTransitionUsesUpdateInterval(t *testing.T) {
	cfg := baseConfig()
	cfg.UpdateIntervalS = 60
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	now := atLocal(day, 18, 37, 30)

	next, err := NextEventAfter(cfg, now, time.UTC, noSolar)
	if err != nil {
		t.Fatal(err)
	}
	if !next.After(now) {
		t.Fatalf("expected next event after now, got %v <= %v", next, now)
	}
	if d := next.Sub(now); d > time.Minute {
		t.Errorf("expected next wake within update_interval while mid-transition, got %v", d)
	}
}
