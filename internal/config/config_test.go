package config

import "testing"

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsOutOfRangeTemps(t *testing.T) {
	cfg := Default()
	cfg.NightTempK = 500
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for night_temp_k below range")
	}

	cfg = Default()
	cfg.DayTempK = 25000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for day_temp_k above range")
	}
}

func TestValidateRejectsOutOfRangeGamma(t *testing.T) {
	cfg := Default()
	cfg.NightGammaPct = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative night_gamma_pct")
	}

	cfg = Default()
	cfg.DayGammaPct = 101
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for day_gamma_pct above 100")
	}
}

func TestValidateRejectsBadTransitionMode(t *testing.T) {
	cfg := Default()
	cfg.TransitionMode = "sometime"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unrecognized transition_mode")
	}
}

func TestValidateRejectsBadBackendChoice(t *testing.T) {
	cfg := Default()
	cfg.BackendChoice = "x11"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unrecognized backend")
	}
}

func TestValidateRejectsBadClockTimes(t *testing.T) {
	cfg := Default()
	cfg.SunsetLocal = "25:00:00"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid sunset time")
	}

	cfg = Default()
	cfg.SunriseLocal = "garbage"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid sunrise time")
	}
}

func TestValidateRejectsOutOfRangeLatLon(t *testing.T) {
	cfg := Default()
	cfg.Latitude = 95
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for latitude above 90")
	}

	cfg = Default()
	cfg.Longitude = -200
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for longitude below -180")
	}
}
