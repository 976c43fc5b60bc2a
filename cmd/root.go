package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/minish-sh/minish/core/config"
	"github.com/minish-sh/minish/core/logger"
	"github.com/minish-sh/minish/core/shell"
)

var cfgPath string

// loadConfig reads the config directory, falling back to the embedded
// defaults when it doesn't exist yet.
func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		return config.Default()
	}

	return configuration, err
}

// rootCmd starts an interactive session when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "minish",
	Short: "A minimal interactive command interpreter",
	Long: `minish reads commands from the terminal and runs them, either as one
of its builtins (cd, help, exit) or as an external program.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		audit := logger.Nop()
		if logFd, err := cfg.OpenAppLog(); err != nil {
			log.Printf("audit log disabled: %v", err)
		} else {
			defer logFd.Close()
			audit = logger.NewAudit(logFd)
		}

		s := shell.New(cfg, shell.Options{Audit: audit})
		return s.Run()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "minish")
	}
	return "."
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "config directory path")
}
