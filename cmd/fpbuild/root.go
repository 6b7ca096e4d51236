// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for fpbuild.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"fpbuild/internal/config"
	"fpbuild/internal/container"
	"fpbuild/internal/firmware"
	"fpbuild/internal/image"
	"fpbuild/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// engineName selects the container engine (docker/podman); empty auto-detects
	engineName string

	// cfg holds the loaded build defaults, resolved in initRootConfig.
	cfg = &config.Config{}

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "fpbuild",
		Short: "Build and package paired car/fob firmware images",
		Long: TitleStyle.Render("fpbuild") + SubtitleStyle.Render(" - firmware pair build & packaging tool") + `

fpbuild cross-compiles car and fob firmware from a design repository inside
reproducible containerized build environments, injects per-deployment secret
material through runtime-managed volumes, and packages the compiled
artifacts into flashable device images.

` + SubtitleStyle.Render("Typical workflow:") + `
  1. Build the environment image for your design:  fpbuild env
  2. Build a car and its paired fob:               fpbuild pair
  3. Flash the resulting .img with the bootstrapper

` + SubtitleStyle.Render("Examples:") + `
  fpbuild env --design ./design --name latest
  fpbuild pair --design ./design --name latest --deployment team1 \
      --car-name car0 --car-id 1 --car-out ./out \
      --fob-name fob0 --pair-pin 123456 --fob-out ./out
  fpbuild package --bin out/car0.bin --eeprom out/car0.eeprom --out car0.img`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "", "container engine to use (docker or podman; default auto-detect)")

	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(pairCmd)
	rootCmd.AddCommand(packageCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads the config file and environment variables.
func initRootConfig() {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
	}
	if loaded != nil {
		cfg = loaded
		if cfg.Verbose {
			verbose = true
		}
		if engineName == "" {
			engineName = cfg.Engine
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	// Route the internal packages' slog output through the CLI logger.
	slog.SetDefault(slog.New(logger))
}

// newEngine resolves the container engine from the --engine flag / config,
// auto-detecting when unset.
func newEngine() (container.Engine, error) {
	switch engineName {
	case "":
		return container.AutoDetectEngine()
	case string(container.EngineTypeDocker), string(container.EngineTypePodman):
		return container.NewEngine(container.EngineType(engineName))
	default:
		return nil, fmt.Errorf("unknown container engine %q (valid: docker, podman)", engineName)
	}
}

// renderBuildError writes an error's kind and any captured diagnostics to w,
// then wraps it in an ExitError so the process exits non-zero without
// losing the message.
func renderBuildError(w io.Writer, err error) error {
	var (
		compileErr  *firmware.CompileError
		envErr      *firmware.EnvBuildError
		processErr  *firmware.ProcessError
		actionable  *issue.ActionableError
		tooLargeErr *image.TooLargeError
	)

	switch {
	case errors.As(err, &compileErr):
		fmt.Fprintln(w, ErrorStyle.Render("compile failed: ")+compileErr.Error())
		if len(compileErr.Stdout) > 0 {
			fmt.Fprintln(w, string(compileErr.Stdout))
		}
		if len(compileErr.Stderr) > 0 {
			fmt.Fprintln(w, string(compileErr.Stderr))
		}

	case errors.As(err, &envErr):
		fmt.Fprintln(w, ErrorStyle.Render("environment build failed: ")+envErr.Error())
		if len(envErr.Log) > 0 {
			fmt.Fprintln(w, string(envErr.Log))
		}

	case errors.As(err, &processErr):
		fmt.Fprintln(w, ErrorStyle.Render("container runtime error: ")+processErr.Error())
		if len(processErr.Stderr) > 0 {
			fmt.Fprintln(w, string(processErr.Stderr))
		}

	case errors.As(err, &tooLargeErr):
		fmt.Fprintln(w, ErrorStyle.Render("image packaging failed: ")+tooLargeErr.Error())

	default:
		fmt.Fprintln(w, ErrorStyle.Render("error: ")+err.Error())
	}

	if errors.As(err, &actionable) && len(actionable.Suggestions) > 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("Suggestions:"))
		for _, s := range actionable.Suggestions {
			fmt.Fprintln(w, SubtitleStyle.Render("  - "+s))
		}
	}

	return &ExitError{Code: 1, Err: err}
}
