// Root command for the quill CLI.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/inkmill/inkmill/pkg/inkmill"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configDataDir         string
	configBackend         string
	configSimulateLatency bool
)

// logger is the CLI-wide logger; silent unless --verbose is set.
var logger = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:          "quill",
	Short:        "Quill is a local-first blogging workbench",
	Long:         "Quill manages a local blog: a mocked authentication session and\na post collection persisted to local storage, with search, tag, and\nsort views over the posts.",
	Version:      inkmill.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				With().Timestamp().Logger()
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configBackend = cfg.GetString(cfgKeyBackend)
		configDataDir = cfg.GetString(cfgKeyDataDir)
		configSimulateLatency = cfg.GetBool(cfgKeySimulateLatency)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.quill)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.quill-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log store activity to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(socialCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(tagsCmd)
}
