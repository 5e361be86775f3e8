package supervisor

import (
	"time"

	"github.com/sunsetr-dev/sunsetr/internal/backend"
	"github.com/sunsetr-dev/sunsetr/internal/config"
	"github.com/sunsetr-dev/sunsetr/internal/engine"
)

// animatorStep is the coarsest tick the startup animator ever uses,
// regardless of how long update_interval is configured; it keeps the
// ramp visibly smooth instead of collapsing to one or two Apply calls
// on a short startup_duration.
const animatorStep = 250 * time.Millisecond

// StartupAnimator smooths the jump from a neutral display state into
// whatever the state engine says "now" should look like, so the user
// never sees an instantaneous step at launch.
type StartupAnimator struct {
	cfg      config.Config
	from     renderedState
	to       renderedState
	duration time.Duration
	started  time.Time
}

type renderedState struct {
	tempK, gammaPct int
}

// NewStartupAnimator builds an animator running from the configured
// day state to target over cfg.StartupDurationS seconds.
func NewStartupAnimator(cfg config.Config, targetTempK, targetGammaPct int) *StartupAnimator {
	return &StartupAnimator{
		cfg:      cfg,
		from:     renderedState{tempK: cfg.DayTempK, gammaPct: cfg.DayGammaPct},
		to:       renderedState{tempK: targetTempK, gammaPct: targetGammaPct},
		duration: time.Duration(cfg.StartupDurationS) * time.Second,
	}
}

// Run drives b.Apply at a rate bounded by update_interval (but no
// coarser than animatorStep) until the configured startup duration
// elapses, then returns. Each intermediate step eases its time
// parameter through the same curve a live transition uses, so the
// ramp accelerates and decelerates rather than moving at a constant
// rate. Errors from Apply are returned immediately; the caller
// decides how to react.
func (a *StartupAnimator) Run(b backend.Backend, sleep func(time.Duration)) error {
	a.started = time.Now()
	tick := time.Duration(a.cfg.UpdateIntervalS) * time.Second
	if tick > animatorStep {
		tick = animatorStep
	}
	if tick > a.duration {
		tick = a.duration
	}
	if tick <= 0 {
		return b.Apply(a.to.tempK, a.to.gammaPct)
	}

	for elapsed := time.Duration(0); elapsed < a.duration; elapsed += tick {
		p := engine.Ease(float64(elapsed) / float64(a.duration))
		tempK := lerpInt(a.from.tempK, a.to.tempK, p)
		gammaPct := lerpInt(a.from.gammaPct, a.to.gammaPct, p)
		if err := b.Apply(tempK, gammaPct); err != nil {
			return err
		}
		sleep(tick)
	}
	return b.Apply(a.to.tempK, a.to.gammaPct)
}

func lerpInt(a, b int, p float64) int {
	return a + int(float64(b-a)*p)
}
