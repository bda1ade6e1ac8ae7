package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/banker/console"
	"github.com/rustyeddy/banker/ledger"
)

func newShellCmd(ro *rootOptions) *cobra.Command {
	var noPrompt bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive banking session",
		Long: `Read commands from standard input and apply them to the account.

Type "help" inside the shell for the list of commands. EMI payments run in
the background and are reported as they finish.

Example:
  banker shell -c banker.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, ro, noPrompt)
		},
	}
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "never print a prompt")
	return cmd
}

func runShell(cmd *cobra.Command, ro *rootOptions, noPrompt bool) error {
	a, err := newApp(ro.cfg)
	if err != nil {
		return err
	}

	d := ledger.NewDispatcher(a.ledger, ro.cfg.DispatcherOptions())

	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	opts := console.Options{
		StatementPath: ro.cfg.Statement.Path,
		DefaultMonths: ro.cfg.Loans.DefaultMonths,
		Logger:        a.log,
	}
	interactive := !noPrompt && isTerminal(in)
	if interactive {
		opts.Prompt = "banker> "
		fmt.Fprintf(out, "Savings Balance: $%s (type help for commands)\n", ledger.Money(a.ledger.Balance()))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := console.NewSession(a.ledger, d, a.journal, out, opts)
	runErr := s.Run(ctx, in)
	closeErr := a.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return st.Mode()&os.ModeCharDevice != 0
}
