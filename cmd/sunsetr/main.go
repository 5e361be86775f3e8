// Command sunsetr is a Wayland user-session daemon that adjusts
// display color temperature and gamma across sunrise and sunset.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sunsetr-dev/sunsetr/internal/cli/picker"
	"github.com/sunsetr-dev/sunsetr/internal/config"
	"github.com/sunsetr-dev/sunsetr/internal/logging"
	"github.com/sunsetr-dev/sunsetr/internal/supervisor"
)

var (
	debug      bool
	reloadFlag bool
	geoFlag    bool
	testFlag   bool
)

func main() {
	os.Exit(run())
}

func run() int {
	root := &cobra.Command{
		Use:           "sunsetr",
		Short:         "Adjust display color temperature and gamma across sunrise and sunset",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          dispatch,
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "mirror logs to stderr at debug level")
	root.Flags().BoolVar(&reloadFlag, "reload", false, "signal the running daemon to reread its configuration")
	root.Flags().BoolVar(&geoFlag, "geo", false, "run the interactive city picker and persist the chosen coordinates")
	root.Flags().BoolVar(&testFlag, "test", false, "signal the running daemon to apply a transient override: --test <temp_k> <gamma_pct>")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sunsetr:", err)
		return 1
	}
	return 0
}

func dispatch(cmd *cobra.Command, args []string) error {
	switch {
	case reloadFlag:
		return doReload()
	case geoFlag:
		return doGeo()
	case testFlag:
		return doTest(args)
	default:
		return runDaemon()
	}
}

func doReload() error {
	if err := supervisor.SignalReload(); err != nil {
		return err
	}
	fmt.Println("reload signal sent")
	return nil
}

func doGeo() error {
	lat, lon, ok, err := picker.Run()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("cancelled")
		return nil
	}
	if err := config.SaveGeo(lat, lon); err != nil {
		return err
	}
	fmt.Printf("saved location %.4f, %.4f\n", lat, lon)
	return nil
}

func doTest(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("--test requires two arguments: <temp_k> <gamma_pct>")
	}
	tempK, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid temp_k %q: %w", args[0], err)
	}
	gammaPct, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid gamma_pct %q: %w", args[1], err)
	}
	if err := supervisor.SignalTestOverride(tempK, gammaPct); err != nil {
		return err
	}
	fmt.Println("test override signal sent")
	return nil
}

func runDaemon() error {
	logger, cleanup, err := logging.New(debug)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := config.Load(logger)
	if err != nil {
		return err
	}

	sup, err := supervisor.New(logger, cfg)
	if err != nil {
		if are, ok := err.(*supervisor.AlreadyRunningError); ok {
			fmt.Fprintln(os.Stderr, "sunsetr:", are)
			os.Exit(2)
		}
		return err
	}

	if err := sup.SelectBackend(); err != nil {
		return err
	}

	sup.InstallSignalHandlers()
	logger.Info("sunsetr starting", "backend", cfg.BackendChoice, "transition_mode", cfg.TransitionMode)
	code := sup.Run()
	if code != 0 {
		os.Exit(code)
	}
	return nil
}
