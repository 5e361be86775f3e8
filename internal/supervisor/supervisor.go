// Package supervisor owns the process: it acquires the single-instance
// lock, selects and drives a backend, and runs the main event loop,
// reacting to signals for shutdown, reload, and transient test
// overrides.
package supervisor

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sunsetr-dev/sunsetr/internal/backend"
	"github.com/sunsetr-dev/sunsetr/internal/backend/hyprland"
	"github.com/sunsetr-dev/sunsetr/internal/backend/wayland"
	"github.com/sunsetr-dev/sunsetr/internal/config"
	"github.com/sunsetr-dev/sunsetr/internal/domain"
	"github.com/sunsetr-dev/sunsetr/internal/engine"
	"github.com/sunsetr-dev/sunsetr/internal/geo"
	"github.com/sunsetr-dev/sunsetr/internal/solar"
)

// Supervisor drives the daemon's main loop.
type Supervisor struct {
	logger *log.Logger
	lock   *InstanceLock

	mu      sync.Mutex
	cfg     config.Config
	loc     *time.Location
	backend backend.Backend

	reload   chan struct{}
	shutdown chan struct{}
	override chan overrideCmd

	overrideActive bool
	overrideState  renderedState
}

type overrideCmd struct {
	tempK, gammaPct int
	clear           bool
}

// New constructs a Supervisor with an already-validated configuration
// and acquires the single-instance lock.
func New(logger *log.Logger, cfg config.Config) (*Supervisor, error) {
	lock, err := AcquireLock()
	if err != nil {
		return nil, err
	}

	loc := time.Local
	if cfg.TransitionMode == config.ModeGeo {
		loc = geo.LocationFor(cfg.Latitude, cfg.Longitude)
	}

	return &Supervisor{
		logger:   logger,
		lock:     lock,
		cfg:      cfg,
		loc:      loc,
		reload:   make(chan struct{}, 1),
		shutdown: make(chan struct{}, 1),
		override: make(chan overrideCmd, 1),
	}, nil
}

// SelectBackend resolves backend_choice against the environment and
// constructs the concrete backend.
func (s *Supervisor) SelectBackend() error {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()

	wantsHyprland := cfg.BackendChoice == config.BackendHyprland ||
		(cfg.BackendChoice == config.BackendAuto && os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "")
	wantsWayland := cfg.BackendChoice == config.BackendWayland ||
		(cfg.BackendChoice == config.BackendAuto && !wantsHyprland && os.Getenv("WAYLAND_DISPLAY") != "")

	switch {
	case wantsHyprland:
		tempK, gammaPct := engine.Render(cfg, domain.TransitionState{Kind: domain.Day})
		b, err := hyprland.Connect(s.logger, cfg.StartCompanion, tempK, gammaPct)
		if err != nil {
			return err
		}
		s.backend = b
		return nil
	case wantsWayland:
		b, err := wayland.Connect(s.logger)
		if err != nil {
			return err
		}
		s.backend = b
		return nil
	case cfg.BackendChoice == config.BackendHyprland:
		return backend.ErrNoHyprlandInstance
	case cfg.BackendChoice == config.BackendWayland:
		return backend.ErrNoWaylandDisplay
	default:
		return backend.ErrNoBackendAvailable
	}
}

func (s *Supervisor) solarAt(date time.Time) (domain.SolarTimes, error) {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()
	eng := solar.New(cfg.Latitude, cfg.Longitude)
	return eng.At(date, s.loc)
}

// Reload requests a configuration reread on the next loop iteration.
func (s *Supervisor) Reload() {
	select {
	case s.reload <- struct{}{}:
	default:
	}
}

// Shutdown requests cooperative shutdown on the next loop iteration.
func (s *Supervisor) Shutdown() {
	select {
	case s.shutdown <- struct{}{}:
	default:
	}
}

// SetOverride applies a transient (temp, gamma) override until
// ClearOverride is called.
func (s *Supervisor) SetOverride(tempK, gammaPct int) {
	select {
	case s.override <- overrideCmd{tempK: tempK, gammaPct: gammaPct}:
	default:
	}
}

// ClearOverride cancels an active transient override.
func (s *Supervisor) ClearOverride() {
	select {
	case s.override <- overrideCmd{clear: true}:
	default:
	}
}

// OverrideActive reports whether a transient test override is
// currently applied.
func (s *Supervisor) OverrideActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overrideActive
}

// InstallSignalHandlers starts a goroutine that translates OS signals
// into the loop's internal channels: SIGINT/SIGTERM request shutdown,
// SIGHUP requests reload, and SIGUSR2 toggles the transient test
// override. The main loop itself remains single-threaded; this
// goroutine only forwards, it never touches shared state directly.
func (s *Supervisor) InstallSignalHandlers() {
	ch := make(chan os.Signal, 8)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGUSR2)
	go func() {
		for sig := range ch {
			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				s.Shutdown()
			case syscall.SIGHUP:
				s.Reload()
			case syscall.SIGUSR2:
				s.ToggleOverride()
			}
		}
	}()
}

// Run executes the main loop until shutdown is requested or a fatal
// backend error occurs, then performs ordered shutdown and returns
// the process exit code.
func (s *Supervisor) Run() int {
	if s.cfg.StartupTransition && !s.backend.OwnsStartupAnimation() {
		s.runStartupAnimation()
	}

	for {
		select {
		case <-s.shutdown:
			return s.shutdownClean()
		case cmd := <-s.override:
			s.applyOverrideCmd(cmd)
		case <-s.reload:
			if err := s.applyReload(); err != nil {
				s.logger.Error("reload failed, keeping previous configuration", "err", err)
			}
		default:
		}

		now := time.Now()
		tempK, gammaPct, err := s.currentRender(now)
		if err != nil {
			s.logger.Error("evaluating state", "err", err)
			return s.shutdownFatal(err)
		}

		if err := s.backend.Apply(tempK, gammaPct); err != nil {
			if be, ok := err.(*backend.Error); ok && be.Class == backend.Fatal {
				s.logger.Error("backend apply failed fatally", "err", err)
				return s.shutdownFatal(err)
			}
			s.logger.Warn("backend apply failed, continuing", "err", err)
		}

		s.mu.Lock()
		cfg := s.cfg
		loc := s.loc
		s.mu.Unlock()
		deadline, err := engine.NextEventAfter(cfg, now, loc, s.solarAt)
		if err != nil {
			s.logger.Error("scheduling next event", "err", err)
			return s.shutdownFatal(err)
		}

		sleepDur := time.Until(deadline)
		if sleepDur < 0 {
			sleepDur = time.Second
		}
		s.sleepInterruptible(sleepDur)
	}
}

func (s *Supervisor) currentRender(now time.Time) (int, int, error) {
	s.mu.Lock()
	if s.overrideActive {
		t, g := s.overrideState.tempK, s.overrideState.gammaPct
		s.mu.Unlock()
		return t, g, nil
	}
	cfg := s.cfg
	loc := s.loc
	s.mu.Unlock()

	state, err := engine.Evaluate(cfg, now, loc, s.solarAt)
	if err != nil {
		return 0, 0, err
	}
	tempK, gammaPct := engine.Render(cfg, state)
	return tempK, gammaPct, nil
}

func (s *Supervisor) applyOverrideCmd(cmd overrideCmd) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cmd.clear {
		s.overrideActive = false
		s.logger.Info("test override cleared")
		return
	}
	s.overrideActive = true
	s.overrideState = renderedState{tempK: cmd.tempK, gammaPct: cmd.gammaPct}
	s.logger.Info("test override applied", "temp_k", cmd.tempK, "gamma_pct", cmd.gammaPct)
}

func (s *Supervisor) applyReload() error {
	cfg, err := config.Load(s.logger)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg = cfg
	if cfg.TransitionMode == config.ModeGeo {
		s.loc = geo.LocationFor(cfg.Latitude, cfg.Longitude)
	} else {
		s.loc = time.Local
	}
	s.mu.Unlock()
	s.logger.Info("configuration reloaded")
	return nil
}

// sleepInterruptible sleeps up to d, waking early if a shutdown,
// reload, or override request arrives.
func (s *Supervisor) sleepInterruptible(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-s.shutdown:
		s.shutdown <- struct{}{}
	case <-s.reload:
		s.reload <- struct{}{}
	case cmd := <-s.override:
		s.override <- cmd
	}
}

func (s *Supervisor) runStartupAnimation() {
	now := time.Now()
	s.mu.Lock()
	cfg := s.cfg
	loc := s.loc
	s.mu.Unlock()

	state, err := engine.Evaluate(cfg, now, loc, s.solarAt)
	if err != nil {
		s.logger.Warn("evaluating startup state, skipping animation", "err", err)
		return
	}
	tempK, gammaPct := engine.Render(cfg, state)
	animator := NewStartupAnimator(cfg, tempK, gammaPct)
	if err := animator.Run(s.backend, time.Sleep); err != nil {
		s.logger.Warn("startup animation failed", "err", err)
	}
}

func (s *Supervisor) shutdownClean() int {
	s.logger.Info("shutting down")
	s.mu.Lock()
	s.overrideActive = false
	s.mu.Unlock()
	if err := s.backend.Close(); err != nil {
		s.logger.Error("closing backend", "err", err)
	}
	if err := s.lock.Release(); err != nil {
		s.logger.Error("releasing lock", "err", err)
	}
	return 0
}

func (s *Supervisor) shutdownFatal(cause error) int {
	s.logger.Error("fatal error, shutting down", "err", cause)
	if s.backend != nil {
		_ = s.backend.Close()
	}
	_ = s.lock.Release()
	return 1
}

// ErrAlreadyRunning describes lock contention without a PID. New and
// AcquireLock do not return it: they report contention as
// *AlreadyRunningError, which carries the incumbent's PID.
var ErrAlreadyRunning = fmt.Errorf("another instance is already running")
