package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/banker/config"
)

// rootOptions carries the persistent flags and the config they select.
type rootOptions struct {
	ConfigPath string
	LogLevel   string

	cfg *config.Config
}

// NewRootCmd builds the banker command tree.
func NewRootCmd() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "banker",
		Short: "Savings account with loans and EMI repayments",
		Long: `Banker keeps a savings balance and a small loan book.

It provides:
  - An interactive shell for deposits, withdrawals, loans and EMI payments
  - A persistent transaction log (text file, SQLite, CSV or Redis)
  - Printed bank statements

Run "banker shell" to start.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&ro.ConfigPath, "config", "c", "", "path to config file (defaults are used when empty)")
	cmd.PersistentFlags().StringVar(&ro.LogLevel, "log-level", "", "override logging.level: debug|info|warn|error")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return ro.load()
	}

	cmd.AddCommand(
		newShellCmd(ro),
		newStatementCmd(ro),
		newJournalCmd(ro),
		newConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

func (ro *rootOptions) load() error {
	cfg := config.Default()
	if ro.ConfigPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(ro.ConfigPath); err != nil {
			return err
		}
	}
	if ro.LogLevel != "" {
		cfg.Logging.Level = ro.LogLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	ro.cfg = cfg
	return nil
}
