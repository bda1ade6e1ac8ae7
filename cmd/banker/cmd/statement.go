package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/banker/journal"
	"github.com/rustyeddy/banker/ledger"
)

func newStatementCmd(ro *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Show or print the bank statement",
		Long: `Read the transaction log outside of a shell session.

Subcommands:
  show   - Print every line of the transaction log
  print  - Write the bank statement file

Examples:
  banker statement show
  banker statement print -o statement.txt`,
	}

	cmd.AddCommand(newStatementShowCmd(ro), newStatementPrintCmd(ro))
	return cmd
}

func newStatementShowCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the transaction log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.Open(ro.cfg.JournalOptions(), nil)
			if err != nil {
				return err
			}
			defer j.Close()

			lines, err := j.Lines()
			if errors.Is(err, journal.ErrNoStatement) {
				fmt.Fprintln(cmd.OutOrStdout(), "Statement file not found.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read statement: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "=== Bank Statement ===")
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newStatementPrintCmd(ro *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Write the bank statement file",
		Long: `Write a statement with the opening balance, an empty loan book and every
line of the transaction log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = ro.cfg.Statement.Path
			}

			j, err := journal.Open(ro.cfg.JournalOptions(), nil)
			if err != nil {
				return err
			}
			defer j.Close()

			lines, err := j.Lines()
			if err != nil && !errors.Is(err, journal.ErrNoStatement) {
				return fmt.Errorf("read statement: %w", err)
			}

			l := ledger.New(ro.cfg.OpeningBalance(), nil, ledger.WithLoanTypes(ro.cfg.LoanTypes()...))
			st := l.Snapshot().Statement()
			st.Lines = lines
			if err := journal.WriteStatement(output, st); err != nil {
				return fmt.Errorf("writing bank statement: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Statement saved to '%s'\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "statement file (default statement.path)")
	return cmd
}
