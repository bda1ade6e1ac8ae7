package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/banker/config"
	"github.com/rustyeddy/banker/journal"
)

// recordStore is a backend that keeps structured records.
type recordStore interface {
	Records() ([]journal.Record, error)
	Close() error
}

func newJournalCmd(ro *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Query structured transaction records",
		Long: `Query transaction records kept by the sqlite or csv journal.

Subcommands:
  list    - List records, optionally for one day
  record  - Show a single record by ID

Examples:
  banker journal list
  banker journal list --day 2024-01-15
  banker journal record 01HMZ0000000000000000000A1`,
	}

	cmd.AddCommand(newJournalListCmd(ro), newJournalRecordCmd(ro))
	return cmd
}

func newJournalListCmd(ro *rootOptions) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transaction records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openRecordStore(ro.cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			var recs []journal.Record
			if day == "" {
				recs, err = store.Records()
			} else {
				recs, err = recordsOnDay(store, time.Local, day)
			}
			if err != nil {
				return fmt.Errorf("query records: %w", err)
			}

			writeRecords(cmd.OutOrStdout(), recs)
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "only records from this day (YYYY-MM-DD, local time)")
	return cmd
}

func newJournalRecordCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "record <id>",
		Short: "Show a single record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openRecordStore(ro.cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := findRecord(store, args[0])
			if err != nil {
				return fmt.Errorf("get record: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:      %s\n", rec.ID)
			fmt.Fprintf(out, "Time:    %s\n", rec.Time.Format(journal.TimeLayout))
			fmt.Fprintf(out, "Kind:    %s\n", rec.Kind)
			if rec.Loan != "" {
				fmt.Fprintf(out, "Loan:    %s\n", rec.Loan)
			}
			fmt.Fprintf(out, "Amount:  $%s\n", rec.Amount.StringFixed(2))
			fmt.Fprintf(out, "Message: %s\n", rec.Message)
			return nil
		},
	}
}

func openRecordStore(cfg *config.Config) (recordStore, error) {
	switch cfg.Journal.Type {
	case journal.TypeSQLite:
		return journal.NewSQLite(cfg.Journal.DBPath)
	case journal.TypeCSV:
		return journal.NewCSV(cfg.Journal.CSVFile)
	default:
		return nil, fmt.Errorf("journal type %q keeps plain lines, use statement show", cfg.Journal.Type)
	}
}

func recordsOnDay(store recordStore, loc *time.Location, day string) ([]journal.Record, error) {
	start, end, err := dayBounds(loc, day)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	if db, ok := store.(*journal.SQLite); ok {
		return db.ListBetween(start, end)
	}

	all, err := store.Records()
	if err != nil {
		return nil, err
	}
	var out []journal.Record
	for _, r := range all {
		if !r.Time.Before(start) && r.Time.Before(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func findRecord(store recordStore, id string) (journal.Record, error) {
	if db, ok := store.(*journal.SQLite); ok {
		return db.GetRecord(id)
	}

	all, err := store.Records()
	if err != nil {
		return journal.Record{}, err
	}
	for _, r := range all {
		if r.ID == id {
			return r, nil
		}
	}
	return journal.Record{}, fmt.Errorf("record %q not found", id)
}

func writeRecords(w io.Writer, recs []journal.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No records.")
		return
	}
	for _, r := range recs {
		fmt.Fprintf(w, "%s  %s  %-15s %-8s %10s  %s\n",
			r.ID, r.Time.Format(journal.TimeLayout), r.Kind, r.Loan, r.Amount.StringFixed(2), r.Message)
	}
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
