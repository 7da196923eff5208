// Package cmd provides the CLI commands for duetrack.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/duetrack/duetrack/internal/config"
	"github.com/duetrack/duetrack/internal/errors"
	"github.com/duetrack/duetrack/internal/logging"
	"github.com/duetrack/duetrack/internal/output"
	"github.com/duetrack/duetrack/internal/runtime"
	"github.com/duetrack/duetrack/internal/storage"
)

// Version information (set at build time via ldflags).
var (
	Version = "dev"
	Commit  = "unknown"
)

// Global flags.
var (
	flagDir     string
	flagDefault bool
	flagDriver  string
	flagFormat  string
	flagColor   string
	flagDebug   bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "duetrack",
	Short: "Track deadlines with due dates, progress, and urgency",
	Long: `Duetrack tracks homework and task deadlines with due dates, progress,
difficulty, and a computed urgency score.

Without a data directory everything lives in memory and vanishes on exit.
Point --dir at a directory (or set ` + config.EnvDataDir + `) to persist.

Examples:
  duetrack add "Algebra problem set" "2025-01-05 09:00" --difficulty 6
  duetrack add "Essay draft" "+2d" --tags school,writing
  duetrack list --dir ~/.local/share/duetrack
  duetrack edit 01HV... --progress 40
  duetrack done 01HV...
  duetrack rm 01HV...`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		if flagDebug {
			logging.InitDebug()
		} else {
			logging.Init(logging.DefaultConfig())
		}

		var format output.Format
		switch flagFormat {
		case "json":
			format = output.FormatJSON
		case "plain":
			format = output.FormatPlain
		default:
			format = output.FormatCLI
		}

		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		cfg, err := config.Resolve(flagDir, flagDriver, flagDefault)
		if err != nil {
			return errors.NewUserError(err.Error(), "See --help for valid drivers")
		}

		ctx, err = runtime.New(runtime.Options{
			Config:    cfg,
			Format:    format,
			ColorMode: colorMode,
			Debug:     flagDebug,
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if ctx != nil {
			ctx.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("duetrack %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Data directory (empty: in-memory)")
	rootCmd.PersistentFlags().BoolVar(&flagDefault, "default-dir", false, "Use the default XDG data directory")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "Storage driver: memory, json, sqlite, or badger")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli", "Output format: cli, json, or plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color mode: auto, always, or never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		return err
	}
	return nil
}

// reportError prints a classified error to stderr. Storage failures are
// recoverable by design: the failed operation left stored state unchanged.
func reportError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if suggestion := errors.GetSuggestion(err); suggestion != "" {
		fmt.Fprintf(os.Stderr, "hint: %s\n", suggestion)
	}
	if errors.Classify(err) == errors.CategorySystem && storage.IsUnavailable(err) {
		fmt.Fprintln(os.Stderr, "hint: check that the data directory exists and is writable")
	}
}
