// Package console is the interactive front end of the ledger. A Session
// reads one command per line and renders every outcome as text. It is the
// only writer to its output; EMI payments run on a Dispatcher and their
// results are printed from the session loop.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/rustyeddy/banker/journal"
	"github.com/rustyeddy/banker/ledger"
	"github.com/rustyeddy/banker/logging"
)

// Options tune a Session.
type Options struct {
	// StatementPath is where print writes when no path is given.
	StatementPath string
	// DefaultMonths is the loan term used when loan is given no months.
	DefaultMonths int
	// Prompt is printed before each command. Empty disables it.
	Prompt string
	Logger *logging.Logger
}

type Session struct {
	ledger   *ledger.Ledger
	dispatch *ledger.Dispatcher
	journal  journal.Journal
	out      io.Writer
	opts     Options
	log      *logging.Logger
}

// NewSession wires a session to its ledger. j may be nil, in which case
// statement commands fall back to the in-memory history.
func NewSession(l *ledger.Ledger, d *ledger.Dispatcher, j journal.Journal, out io.Writer, opts Options) *Session {
	if opts.StatementPath == "" {
		opts.StatementPath = "bank_statement.txt"
	}
	if opts.DefaultMonths <= 0 {
		opts.DefaultMonths = 12
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNoOpLogger()
	}

	return &Session{
		ledger:   l,
		dispatch: d,
		journal:  j,
		out:      out,
		opts:     opts,
		log:      log.Named("console"),
	}
}

// Run reads commands from in until EOF, quit or ctx is done. Before it
// returns it closes the dispatcher and prints every pending EMI result.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		readErr <- sc.Err()
	}()

	s.prompt()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case r := <-s.dispatch.Results():
			s.renderResult(r)
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			if s.Exec(ctx, line) {
				break loop
			}
			s.prompt()
		}
	}

	s.shutdown()

	select {
	case err := <-readErr:
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	default:
	}
	return nil
}

// shutdown stops the dispatcher and drains what it still owes us.
func (s *Session) shutdown() {
	go func() {
		if err := s.dispatch.Close(); err != nil {
			s.log.Warn("dispatcher close", zap.Error(err))
		}
	}()
	for r := range s.dispatch.Results() {
		s.renderResult(r)
	}
}

// Exec runs one command line and reports whether the session should end.
func (s *Session) Exec(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	s.log.Debug("command", zap.String("name", name), zap.Strings("args", args))

	switch name {
	case "deposit":
		s.deposit(args)
	case "withdraw":
		s.withdraw(args)
	case "loan":
		s.loan(args)
	case "pay":
		s.pay(ctx, args)
	case "balance":
		s.printf("Balance: $%s\n", ledger.Money(s.ledger.Balance()))
	case "loans":
		s.loans()
	case "history":
		s.history()
	case "statement":
		s.statement()
	case "print":
		s.printStatement(args)
	case "help", "?":
		s.help()
	case "quit", "exit":
		return true
	default:
		s.errorf("unknown command %q, type help for a list", name)
	}
	return false
}

func (s *Session) deposit(args []string) {
	if len(args) != 1 {
		s.errorf("usage: deposit <amount>")
		return
	}
	amount, err := ledger.ParseAmount(args[0])
	if err != nil {
		s.errorf("%v", err)
		return
	}
	r, err := s.ledger.Deposit(amount)
	s.renderReceipt(r, err)
}

func (s *Session) withdraw(args []string) {
	if len(args) != 1 {
		s.errorf("usage: withdraw <amount>")
		return
	}
	amount, err := ledger.ParseAmount(args[0])
	if err != nil {
		s.errorf("%v", err)
		return
	}
	r, err := s.ledger.Withdraw(amount)
	s.renderReceipt(r, err)
}

func (s *Session) loan(args []string) {
	t, args, ok := s.loanType(args)
	if !ok {
		return
	}
	if len(args) < 1 || len(args) > 2 {
		s.errorf("usage: %s", s.loanUsage())
		return
	}

	amount, err := ledger.ParseAmount(args[0])
	if err != nil {
		s.errorf("%v", err)
		return
	}
	months := s.opts.DefaultMonths
	if len(args) == 2 {
		if months, err = ledger.ParseMonths(args[1]); err != nil {
			s.errorf("%v", err)
			return
		}
	}

	r, err := s.ledger.RequestLoan(t, amount, months)
	s.renderReceipt(r, err)
}

func (s *Session) pay(ctx context.Context, args []string) {
	t, args, ok := s.loanType(args)
	if !ok {
		return
	}
	if len(args) != 0 {
		s.errorf("usage: %s", s.payUsage())
		return
	}
	if err := s.dispatch.Submit(ctx, t); err != nil {
		s.errorf("pay %s: %v", t, err)
	}
}

// loanType picks the loan named by the first argument. With a single
// enabled type the argument is optional.
func (s *Session) loanType(args []string) (ledger.LoanType, []string, bool) {
	types := s.ledger.LoanTypes()
	if len(types) == 1 {
		if len(args) > 0 {
			if t, err := ledger.ParseLoanType(args[0]); err == nil && t == types[0] {
				return t, args[1:], true
			}
		}
		return types[0], args, true
	}

	if len(args) == 0 {
		s.errorf("loan type required, one of %s", typeNames(types))
		return 0, nil, false
	}
	t, err := ledger.ParseLoanType(args[0])
	if err != nil {
		s.errorf("%v, want one of %s", err, typeNames(types))
		return 0, nil, false
	}
	return t, args[1:], true
}

func (s *Session) loans() {
	for _, loan := range s.ledger.Loans() {
		s.printf("%s: outstanding $%s, EMI $%s, %d of %d months remaining\n",
			loan.Type, ledger.Money(loan.Outstanding), ledger.Money(loan.EMI),
			loan.RemainingMonths, loan.DurationMonths)
	}
}

func (s *Session) history() {
	recs := s.ledger.History()
	if len(recs) == 0 {
		s.printf("No transactions yet.\n")
		return
	}
	for _, r := range recs {
		s.printf("%s\n", r.Line())
	}
}

// statement prints every line of the transaction log, earlier sessions
// included.
func (s *Session) statement() {
	lines, err := s.journalLines()
	if errors.Is(err, journal.ErrNoStatement) {
		s.printf("Statement file not found.\n")
		return
	}
	if err != nil {
		s.errorf("read statement: %v", err)
		return
	}
	s.printf("=== Bank Statement ===\n")
	for _, line := range lines {
		s.printf("%s\n", line)
	}
}

func (s *Session) printStatement(args []string) {
	path := s.opts.StatementPath
	if len(args) > 0 {
		path = args[0]
	}

	lines, err := s.journalLines()
	if err != nil {
		s.errorf("writing bank statement: %v", err)
		return
	}
	st := s.ledger.Snapshot().Statement()
	st.Lines = lines
	if err := journal.WriteStatement(path, st); err != nil {
		s.errorf("writing bank statement: %v", err)
		return
	}
	s.printf("Statement saved to '%s'\n", path)
}

func (s *Session) journalLines() ([]string, error) {
	if s.journal == nil {
		recs := s.ledger.History()
		lines := make([]string, len(recs))
		for i, r := range recs {
			lines[i] = r.Line()
		}
		return lines, nil
	}
	return s.journal.Lines()
}

func (s *Session) renderResult(r ledger.Result) {
	s.renderReceipt(r.Receipt, r.Err)
}

// renderReceipt prints the record an operation produced, or the error when
// it produced none. A rejected operation's record already says why.
func (s *Session) renderReceipt(r ledger.Receipt, err error) {
	if r.Record.ID == "" {
		if err != nil {
			s.errorf("%v", err)
		}
		return
	}

	s.printf("%s\n", r.Record.Line())
	if err == nil {
		s.printf("Balance: $%s\n", ledger.Money(r.Balance))
	}
	if r.LogErr != nil {
		s.printf("warning: transaction log: %v\n", r.LogErr)
	}
}

func (s *Session) help() {
	s.printf("Commands:\n")
	s.printf("  deposit <amount>\n")
	s.printf("  withdraw <amount>\n")
	s.printf("  %s\n", s.loanUsage())
	s.printf("  %s\n", s.payUsage())
	s.printf("  balance | loans | history\n")
	s.printf("  statement            show the transaction log\n")
	s.printf("  print [path]         save the bank statement (default %s)\n", s.opts.StatementPath)
	s.printf("  help | quit\n")
}

func (s *Session) loanUsage() string {
	if len(s.ledger.LoanTypes()) == 1 {
		return fmt.Sprintf("loan <amount> [months, default %d]", s.opts.DefaultMonths)
	}
	return fmt.Sprintf("loan <%s> <amount> [months, default %d]",
		strings.ToLower(typeNames(s.ledger.LoanTypes())), s.opts.DefaultMonths)
}

func (s *Session) payUsage() string {
	if len(s.ledger.LoanTypes()) == 1 {
		return "pay"
	}
	return fmt.Sprintf("pay <%s>", strings.ToLower(typeNames(s.ledger.LoanTypes())))
}

func (s *Session) prompt() {
	if s.opts.Prompt != "" {
		fmt.Fprint(s.out, s.opts.Prompt)
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) errorf(format string, args ...any) {
	fmt.Fprintf(s.out, "error: "+format+"\n", args...)
}

func typeNames(types []ledger.LoanType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, "|")
}
