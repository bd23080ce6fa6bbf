package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/controls"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/spf13/cobra"
)

var (
	configFile string
	strategy   string
	debug      bool
	headless   bool
	modelFile  string
	force      bool
)

// main registers the viewer commands and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "viewer",
		Short:        "interactive 3D object viewer",
		SilenceUsage: true,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the viewer window",
		Args:  cobra.NoArgs,
		RunE:  runViewer,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml), reloaded on change")
	runCmd.Flags().StringVar(&strategy, "strategy", "", "rotation strategy: plane-delta or movement-delta")
	runCmd.Flags().BoolVar(&debug, "debug", false, "log camera and pointer diagnostics")
	runCmd.Flags().StringVar(&modelFile, "model", "", "glTF/GLB mesh to manipulate instead of the configured box")
	runCmd.Flags().BoolVar(&headless, "headless", false, "run the tick loop without a window until interrupted")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage viewer configuration files",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  showConfig,
	}
	showCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	configCmd.AddCommand(initCmd, showCmd)
	rootCmd.AddCommand(runCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig returns the file at path, or the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if strategy != "" {
		cfg.Controls.Strategy = strategy
	}
	if debug {
		cfg.Controls.Debug = true
	}
	if modelFile != "" {
		cfg.Target.Model = modelFile
	}

	var win window.Window
	if !headless {
		win = window.NewWindow(window.WithConfig(cfg.Window), window.WithPollRate(cfg.Engine.TickRate))
		if win.SurfaceDescriptor() == nil {
			log.Printf("[Viewer] no WebGPU surface available for this window")
		}
	}

	prof := profiler.NewProfiler(time.Second)
	extra := []controls.ControlsBuilderOption{controls.WithEventRecorder(prof)}
	if win != nil {
		extra = append(extra, controls.WithSurface(win))
	}
	v, err := newViewer(cfg, extra...)
	if err != nil {
		return err
	}
	if cfg.Controls.Debug {
		v.logChanges()
	}
	e := engine.NewEngine(
		engine.WithTickRate(float64(cfg.Engine.TickRate)),
		engine.WithProfiling(cfg.Engine.Profiler),
		engine.WithProfiler(prof),
		engine.WithWindow(win),
		engine.WithControls(v.controls),
		engine.WithCameras(v.perspective, v.orthographic),
	)

	if win != nil {
		v.controls.Bind(win)
		defer v.controls.Unbind()
	}

	if configFile != "" {
		w, err := watchConfig(configFile, v.controls)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			e.Quit()
		}()
	}

	log.Printf("[Viewer] running with %s rotation", v.controls.Strategy())
	e.Run()
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
