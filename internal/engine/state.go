// Package engine implements the state engine: a pure, deterministic
// mapping from (configuration, clock) to a TransitionState, plus the
// event-scheduling logic telling the supervisor when to wake next.
// Nothing in this package performs I/O; it is the daemon's own domain
// logic and is tested with fixed-clock scenario cases.
package engine

import (
	"fmt"
	"time"

	"github.com/sunsetr-dev/sunsetr/internal/config"
	"github.com/sunsetr-dev/sunsetr/internal/domain"
)

// SolarTimesFunc resolves the solar engine's output for a given local
// calendar date, keeping this package free of the solar engine's own
// dependencies (and trivially testable with a stub).
type SolarTimesFunc func(date time.Time) (domain.SolarTimes, error)

// windowsForDate computes the four transition windows anchored to the
// calendar date of ref (in loc), following the configured
// transition_mode.
func windowsForDate(cfg config.Config, ref time.Time, loc *time.Location, solarAt SolarTimesFunc) (domain.TransitionWindows, error) {
	if cfg.TransitionMode == config.ModeGeo {
		st, err := solarAt(ref)
		if err != nil {
			return domain.TransitionWindows{}, fmt.Errorf("solar engine: %w", err)
		}
		w, _ := st.Windows().Tile()
		return w, nil
	}

	sunset, err := domain.ParseClockTime(cfg.SunsetLocal)
	if err != nil {
		return domain.TransitionWindows{}, err
	}
	sunrise, err := domain.ParseClockTime(cfg.SunriseLocal)
	if err != nil {
		return domain.TransitionWindows{}, err
	}

	duration := time.Duration(cfg.TransitionDurationMin) * time.Minute
	sunsetAt := sunset.OnDate(ref, loc)
	sunriseAt := sunrise.OnDate(ref, loc)

	var w domain.TransitionWindows
	switch cfg.TransitionMode {
	case config.ModeFinishBy:
		w = domain.TransitionWindows{
			SunsetEnd:    sunsetAt,
			SunsetStart:  sunsetAt.Add(-duration),
			SunriseEnd:   sunriseAt,
			SunriseStart: sunriseAt.Add(-duration),
		}
	case config.ModeStartAt:
		w = domain.TransitionWindows{
			SunsetStart:  sunsetAt,
			SunsetEnd:    sunsetAt.Add(duration),
			SunriseStart: sunriseAt,
			SunriseEnd:   sunriseAt.Add(duration),
		}
	case config.ModeCenter:
		half := duration / 2
		w = domain.TransitionWindows{
			SunsetStart:  sunsetAt.Add(-half),
			SunsetEnd:    sunsetAt.Add(half),
			SunriseStart: sunriseAt.Add(-half),
			SunriseEnd:   sunriseAt.Add(half),
		}
	default:
		return domain.TransitionWindows{}, fmt.Errorf("unknown transition mode %q", cfg.TransitionMode)
	}

	w, _ = w.Tile()
	return w, nil
}

// Evaluate maps (cfg, now) to the current TransitionState, classifying
// now against the day's transition windows.
func Evaluate(cfg config.Config, now time.Time, loc *time.Location, solarAt SolarTimesFunc) (domain.TransitionState, error) {
	w, err := windowsForDate(cfg, now, loc, solarAt)
	if err != nil {
		return domain.TransitionState{}, err
	}

	switch {
	case !now.Before(w.SunriseStart) && !now.After(w.SunriseEnd):
		return domain.TransitionState{Kind: domain.InSunrise, Progress: progress(now, w.SunriseStart, w.SunriseEnd)}, nil
	case !now.Before(w.SunsetStart) && !now.After(w.SunsetEnd):
		return domain.TransitionState{Kind: domain.InSunset, Progress: progress(now, w.SunsetStart, w.SunsetEnd)}, nil
	case now.After(w.SunriseEnd) && now.Before(w.SunsetStart):
		return domain.TransitionState{Kind: domain.Day}, nil
	default:
		return domain.TransitionState{Kind: domain.Night}, nil
	}
}

func progress(now, start, end time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 1
	}
	p := float64(now.Sub(start)) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// NextEventAfter returns the next instant the supervisor should wake
// at: the nearest window boundary strictly after now, or now +
// update_interval if currently inside a transition, whichever is
// sooner.
func NextEventAfter(cfg config.Config, now time.Time, loc *time.Location, solarAt SolarTimesFunc) (time.Time, error) {
	today, err := windowsForDate(cfg, now, loc, solarAt)
	if err != nil {
		return time.Time{}, err
	}
	tomorrow, err := windowsForDate(cfg, now.AddDate(0, 0, 1), loc, solarAt)
	if err != nil {
		return time.Time{}, err
	}

	candidates := []time.Time{
		today.SunriseStart, today.SunriseEnd, today.SunsetStart, today.SunsetEnd,
		tomorrow.SunriseStart, tomorrow.SunriseEnd, tomorrow.SunsetStart, tomorrow.SunsetEnd,
	}

	var next time.Time
	for _, c := range candidates {
		if c.After(now) && (next.IsZero() || c.Before(next)) {
			next = c
		}
	}

	state, err := Evaluate(cfg, now, loc, solarAt)
	if err != nil {
		return time.Time{}, err
	}
	if state.Kind == domain.InSunset || state.Kind == domain.InSunrise {
		tick := now.Add(time.Duration(cfg.UpdateIntervalS) * time.Second)
		if next.IsZero() || tick.Before(next) {
			next = tick
		}
	}

	return next, nil
}

// Render applies the fixed easing curve to a TransitionState and
// returns the rendered (temperature, gamma) pair.
func Render(cfg config.Config, state domain.TransitionState) (tempK int, gammaPct int) {
	switch state.Kind {
	case domain.Day:
		return cfg.DayTempK, cfg.DayGammaPct
	case domain.Night:
		return cfg.NightTempK, cfg.NightGammaPct
	case domain.InSunset:
		p := ease(state.Progress)
		return int(lerp(float64(cfg.DayTempK), float64(cfg.NightTempK), p)),
			int(lerp(float64(cfg.DayGammaPct), float64(cfg.NightGammaPct), p))
	case domain.InSunrise:
		p := 1 - ease(state.Progress)
		return int(lerp(float64(cfg.DayTempK), float64(cfg.NightTempK), p)),
			int(lerp(float64(cfg.DayGammaPct), float64(cfg.NightGammaPct), p))
	default:
		return cfg.DayTempK, cfg.DayGammaPct
	}
}
