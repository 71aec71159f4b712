package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwork/booking-api/internal/domain/availability"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "slotctl",
		Short:         "Compute bookable start times from recurring schedules offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSlotsCmd())
	root.AddCommand(newMatchCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "slotctl %s (commit=%s, built=%s)\n", Version, CommitSHA, BuildDate)
		},
	}
}

// scheduleFlags are shared by commands that read a schedule file for one date
type scheduleFlags struct {
	schedules string
	date      string
	timezone  string
}

func (f *scheduleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.schedules, "schedules", "", "JSON file with recurring schedules ('-' reads stdin)")
	cmd.Flags().StringVar(&f.date, "date", "", "Date to evaluate (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.timezone, "timezone", "UTC", "IANA time zone the schedules are expressed in")
	_ = cmd.MarkFlagRequired("schedules")
	_ = cmd.MarkFlagRequired("date")
}

func (f *scheduleFlags) load(cmd *cobra.Command) ([]availability.RecurringSchedule, availability.Date, *time.Location, error) {
	date, err := availability.ParseDate(f.date)
	if err != nil {
		return nil, availability.Date{}, nil, fmt.Errorf("invalid --date (want YYYY-MM-DD): %w", err)
	}

	loc, err := time.LoadLocation(f.timezone)
	if err != nil {
		return nil, availability.Date{}, nil, fmt.Errorf("invalid --timezone: %w", err)
	}

	var r io.Reader
	if f.schedules == "-" {
		r = cmd.InOrStdin()
	} else {
		file, err := os.Open(f.schedules)
		if err != nil {
			return nil, availability.Date{}, nil, fmt.Errorf("open schedules: %w", err)
		}
		defer file.Close()
		r = file
	}

	var schedules []availability.RecurringSchedule
	if err := json.NewDecoder(r).Decode(&schedules); err != nil {
		return nil, availability.Date{}, nil, fmt.Errorf("decode schedules: %w", err)
	}
	return schedules, date, loc, nil
}
