// Package cmd wires the jex CLI: load a document, explore its shadow index,
// extract or mutate addressed values, and run the derivation pipeline.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jex/pkg/core"
	"github.com/oakwood-commons/jex/pkg/logger"
	"github.com/oakwood-commons/jex/pkg/settings"
)

var (
	logLevel   int8
	configFile string
	noColor    bool
	quiet      bool

	rootCtx = context.Background()
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Index, query, and derive products from structured documents",
	Long: `jex indexes a JSON (or YAML/TOML) document into a flat, addressable
shadow tree, lets you extract or mutate any sub-value by address, and
derives filtered, re-keyed product artifacts from the index.`,
	Example: `
  jex tree data.json --filter name
  jex extract data.json '$.items[2].title'
  jex set data.json '$.items[2].title' "new title"
  jex derive data.json --filter name --out intermediate.json
  jex transform intermediate.json`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := logLevel
		if cfg, err := loadMergedConfig(resolveConfigPath(configFile)); err == nil {
			if !cmd.Flags().Changed("log-level") {
				level = cfg.LogLevel
			}
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, "command", cmd.Name())

		run := settings.NewCliParams()
		run.MinLogLevel = level
		run.IsQuiet = quiet
		run.NoColor = noColor || os.Getenv("NO_COLOR") != ""

		rootCtx = settings.IntoContext(logger.WithLogger(context.Background(), lgr), run)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Int8Var(&logLevel, "log-level", 0, "log level: -1 debug, 0 info, 1+ quieter")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress progress output on stderr")

	rootCmd.AddCommand(
		treeCmd,
		extractCmd,
		setCmd,
		deriveCmd,
		transformCmd,
		fieldsCmd,
		applyCmd,
		searchCmd,
		evalCmd,
		versionCmd,
	)
}

// resolveConfigPath returns the explicit path if set, otherwise the XDG path
// ($XDG_CONFIG_HOME/jex/config.yaml) or ~/.config/jex/config.yaml if present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

func cmdLogger() *logr.Logger {
	return logger.FromContext(rootCtx)
}

func cmdSettings() *settings.Run {
	if run, ok := settings.FromContext(rootCtx); ok {
		return run
	}
	return settings.NewCliParams()
}

// openSession loads path into a fresh session.
func openSession(path string) (*core.Session, error) {
	s := core.NewSession(*cmdLogger())
	if err := s.Load(path); err != nil {
		return nil, err
	}
	return s, nil
}

// writeOutput prints text to stdout or writes it to outPath when set.
func writeOutput(text, outPath string) error {
	if outPath == "" {
		fmt.Println(text)
		return nil
	}
	return os.WriteFile(outPath, []byte(text+"\n"), 0o644)
}
