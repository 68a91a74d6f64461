// Package cmd implements the agentcheck CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/initializ/agentcheck/internal/logging"
	"github.com/initializ/agentcheck/internal/settings"
	"github.com/initializ/agentcheck/validate"
)

var (
	cfgFile       string
	verbose       bool
	colorMode     string
	themeOverride string

	appVersion = "dev"

	// opts holds the resolved settings for the running command.
	opts *settings.Settings = defaultSettings()
	log  logging.Logger     = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "agentcheck",
	Short: "Validate agent configuration files against the agent config schema",
	Long: "agentcheck checks agent configuration files (YAML or JSON) against the agent " +
		"config schema and reports every violation with its location.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default "+settings.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color output: auto, always, or never")
	rootCmd.PersistentFlags().StringVar(&themeOverride, "theme", "", "color theme: dark or light")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(describeCmd)
}

func defaultSettings() *settings.Settings {
	s := settings.Defaults()
	return &s
}

// loadSettings resolves settings for cmd and sets up the logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	path, explicit := cfgFile, cfgFile != ""
	if !explicit {
		path = settings.DefaultFile
	}

	s, err := settings.Load(path, explicit, cmd.Flags())
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}
	opts = s

	if s.Engine != "builtin" {
		if err := validate.CheckSchema(); err != nil {
			return err
		}
	}

	log = logging.NewJSONLogger(cmd.ErrOrStderr(), s.Verbose)
	log.Debug("settings resolved", map[string]any{
		"format": s.Format,
		"engine": s.Engine,
		"color":  s.Color,
		"strict": s.Strict,
	})
	return nil
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("agentcheck %s (commit: %s)\n", version, commit))
}

// Execute runs the root command and exits with the command's status.
func Execute() {
	err := rootCmd.Execute()
	if l, ok := log.(interface{ Sync() error }); ok {
		_ = l.Sync()
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitUsage
}
