package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jpfielding/quantum.go/pkg/config"
	"github.com/jpfielding/quantum.go/pkg/logging"
	"github.com/spf13/cobra"
)

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	var logFile io.Closer
	cmd := &cobra.Command{
		Use:   "quantctl",
		Short: "a CLI to build quantization tables and render pixel planes",
		Long:  "quantctl maps raw 8/16 bit intensities onto 8 bit display values through windowed lookup tables",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			logLevel := cfg.Log.Level
			if cmd.Flags().Changed("log-level") {
				logLevel, _ = cmd.Flags().GetString("log-level")
			}

			// Parse log level
			var level slog.Level
			levelErr := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
			if levelErr != nil {
				level = slog.LevelInfo
			}

			var out io.Writer = cmd.ErrOrStderr()
			if cfg.Log.File != "" {
				w := logging.RotatingWriter(cfg.Log.File, cfg.Log.MaxSize, cfg.Log.MaxAge)
				out, logFile = w, w
			}
			slog.SetDefault(logging.Logger(out, cfg.Log.JSON, level))

			if levelErr != nil {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel, "error", levelErr)
			}
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				if _, statErr := os.Stat(path); statErr != nil {
					slog.WarnContext(ctx, "settings file not found, using defaults", "path", path)
				}
			}
			cmd.SetContext(context.WithValue(cmd.Context(), settingsCtxKey{}, cfg))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
		SilenceUsage: true,
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewLUTCmd(ctx),
		NewStatsCmd(ctx),
		NewRenderCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.StringP("config", "c", "", "rendering settings file (.yaml, .yml or .toml)")
	return cmd
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}

type settingsCtxKey struct{}

// loadSettings reads --config, falling back to the defaults
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return cfg, nil
}

// settingsFrom returns the settings loaded by the root pre-run
func settingsFrom(cmd *cobra.Command) *config.Settings {
	if cfg, ok := cmd.Context().Value(settingsCtxKey{}).(*config.Settings); ok {
		return cfg
	}
	return config.Default()
}
