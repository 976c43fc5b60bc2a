package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/minish-sh/minish/core/logger"
)

// logsCmd prints the command audit log in a readable form.
var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Print the command audit log.",
	Args:    cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fd, err := cfg.ReadAppLog()
		if err != nil {
			return err
		}
		defer fd.Close()

		w := cmd.OutOrStdout()
		return logger.ReadLog(fd, func(e *logger.Entry) {
			argv := strings.Join(e.Argv, " ")
			ts := e.Time.Format(time.RFC3339)
			switch {
			case e.Error != "":
				fmt.Fprintf(w, "%s %-7s %s (%s)\n", ts, e.Kind, argv, e.Error)
			case e.State != "":
				fmt.Fprintf(w, "%s %-7s %s (%s)\n", ts, e.Kind, argv, e.State)
			default:
				fmt.Fprintf(w, "%s %-7s %s\n", ts, e.Kind, argv)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
}
