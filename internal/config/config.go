// Package config loads and validates sunsetr's TOML configuration,
// following the same layered load-then-validate approach used
// throughout this codebase for persisted settings, adapted to TOML via
// github.com/BurntSushi/toml and to this daemon's data model.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/sunsetr-dev/sunsetr/internal/domain"
)

// TransitionMode selects how the four transition windows are derived.
type TransitionMode string

const (
	ModeFinishBy TransitionMode = "finish_by"
	ModeStartAt  TransitionMode = "start_at"
	ModeCenter   TransitionMode = "center"
	ModeGeo      TransitionMode = "geo"
)

// BackendChoice selects which output backend the supervisor uses.
type BackendChoice string

const (
	BackendAuto     BackendChoice = "auto"
	BackendHyprland BackendChoice = "hyprland"
	BackendWayland  BackendChoice = "wayland"
)

// Config is the complete, validated daemon configuration. Field names
// match the TOML keys recognized in the configuration file.
type Config struct {
	NightTempK int `toml:"night_temp_k"`
	DayTempK   int `toml:"day_temp_k"`

	NightGammaPct int `toml:"night_gamma_pct"`
	DayGammaPct   int `toml:"day_gamma_pct"`

	SunsetLocal  string `toml:"sunset"`
	SunriseLocal string `toml:"sunrise"`

	TransitionDurationMin int            `toml:"transition_duration"`
	UpdateIntervalS       int            `toml:"update_interval"`
	TransitionMode        TransitionMode `toml:"transition_mode"`

	StartupTransition bool `toml:"startup_transition"`
	StartupDurationS  int  `toml:"startup_duration"`

	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`

	BackendChoice  BackendChoice `toml:"backend"`
	StartCompanion bool          `toml:"start_hyprsunset"`
}

// Default returns the configuration the daemon runs with when no
// config file is present or a key is left unset: a 19:00 sunset, a
// 06:00 sunrise, a 45-minute finish-by transition, and a warm 3300K
// night temperature against a neutral 6500K day temperature.
func Default() Config {
	return Config{
		NightTempK:            3300,
		DayTempK:              6500,
		NightGammaPct:         90,
		DayGammaPct:           100,
		SunsetLocal:           "19:00:00",
		SunriseLocal:          "06:00:00",
		TransitionDurationMin: 45,
		UpdateIntervalS:       60,
		TransitionMode:        ModeFinishBy,
		StartupTransition:     true,
		StartupDurationS:      10,
		Latitude:              0,
		Longitude:             0,
		BackendChoice:         BackendAuto,
		StartCompanion:        false,
	}
}

// Validate enforces every field's documented range. It returns the
// first violation found; the daemon must not start with an invalid
// configuration.
func (c Config) Validate() error {
	inRange := func(name string, v, lo, hi int) error {
		if v < lo || v > hi {
			return fmt.Errorf("%s must be in [%d, %d], got %d", name, lo, hi, v)
		}
		return nil
	}
	if err := inRange("night_temp_k", c.NightTempK, 1000, 20000); err != nil {
		return err
	}
	if err := inRange("day_temp_k", c.DayTempK, 1000, 20000); err != nil {
		return err
	}
	if err := inRange("night_gamma_pct", c.NightGammaPct, 0, 100); err != nil {
		return err
	}
	if err := inRange("day_gamma_pct", c.DayGammaPct, 0, 100); err != nil {
		return err
	}
	if err := inRange("transition_duration", c.TransitionDurationMin, 5, 120); err != nil {
		return err
	}
	if err := inRange("update_interval", c.UpdateIntervalS, 10, 300); err != nil {
		return err
	}
	if err := inRange("startup_duration", c.StartupDurationS, 1, 60); err != nil {
		return err
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be in [-90, 90], got %v", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude must be in [-180, 180], got %v", c.Longitude)
	}
	switch c.TransitionMode {
	case ModeFinishBy, ModeStartAt, ModeCenter, ModeGeo:
	default:
		return fmt.Errorf("transition_mode %q is not one of finish_by, start_at, center, geo", c.TransitionMode)
	}
	switch c.BackendChoice {
	case BackendAuto, BackendHyprland, BackendWayland:
	default:
		return fmt.Errorf("backend %q is not one of auto, hyprland, wayland", c.BackendChoice)
	}
	if _, err := domain.ParseClockTime(c.SunsetLocal); err != nil {
		return fmt.Errorf("sunset: %w", err)
	}
	if _, err := domain.ParseClockTime(c.SunriseLocal); err != nil {
		return fmt.Errorf("sunrise: %w", err)
	}
	return nil
}

// Path resolves the primary config file path and its legacy fallback.
func Path() (primary, legacy string) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "sunsetr", "sunsetr.toml"), filepath.Join(base, "hypr", "sunsetr.toml")
}

// geoPath returns the path of the optional geo.toml sibling file next
// to the given config file path.
func geoPath(configFile string) string {
	return filepath.Join(filepath.Dir(configFile), "geo.toml")
}

// Load reads the configuration file (primary path, then legacy
// fallback), applies defaults for missing keys, warns about unknown
// keys, and overlays geo.toml's latitude/longitude if present.
func Load(logger *log.Logger) (Config, error) {
	primary, legacy := Path()

	path := primary
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if _, err := os.Stat(legacy); err == nil {
			path = legacy
		}
	}

	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		for _, key := range meta.Undecoded() {
			logger.Warn("unrecognized configuration key", "key", key.String(), "file", path)
		}
	}

	if err := overlayGeo(&cfg, geoPath(path), logger); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

type geoOverride struct {
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
}

func overlayGeo(cfg *Config, path string, logger *log.Logger) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	var g geoOverride
	if _, err := toml.DecodeFile(path, &g); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	logger.Debug("applying geo.toml override", "latitude", g.Latitude, "longitude", g.Longitude)
	cfg.Latitude = g.Latitude
	cfg.Longitude = g.Longitude
	return nil
}

// SaveGeo persists latitude/longitude chosen via the `--geo` picker to
// geo.toml next to the active config file.
func SaveGeo(lat, lon float64) error {
	primary, legacy := Path()
	path := primary
	if _, err := os.Stat(primary); os.IsNotExist(err) {
		if _, err := os.Stat(legacy); err == nil {
			path = legacy
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.Create(geoPath(path))
	if err != nil {
		return fmt.Errorf("writing geo.toml: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(geoOverride{Latitude: lat, Longitude: lon})
}
