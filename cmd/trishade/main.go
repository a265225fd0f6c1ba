package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/polyfloyd/trishade/config"
	"github.com/polyfloyd/trishade/logx"
)

func init() {
	// OpenGL contexts are bound to threads and GLFW must be driven from the
	// main thread, so main stays on the thread it started on.
	runtime.LockOSThread()
}

// errReported is returned by commands that already printed their failure.
var errReported = errors.New("failure already reported")

// session holds the state shared by all subcommands once the persistent
// flags have been processed.
type session struct {
	cfg    config.Config
	logger *slog.Logger
	color  bool
}

var sess session

var rootCmd = &cobra.Command{
	Use:   "trishade",
	Short: "Draw a triangle with a freshly built OpenGL shader program",
	Long: `trishade compiles a vertex and a fragment shader, links them into a program
and draws a single triangle with it, either in a window or offscreen.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if err := applySceneFlags(cmd, &cfg.Scene); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logx.Init(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return err
	}
	colorMode, _ := cmd.Flags().GetString("color")
	useColor, err := colorEnabled(colorMode, os.Stderr)
	if err != nil {
		return err
	}

	sess = session{
		cfg:    cfg,
		logger: logger,
		color:  useColor,
	}
	return nil
}

func main() {
	rootCmd.PersistentFlags().String("config", "", "path to a TOML configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
		}
		os.Exit(1)
	}
}
