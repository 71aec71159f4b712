package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwork/booking-api/internal/domain/availability"
)

func newSlotsCmd() *cobra.Command {
	var (
		flags     scheduleFlags
		durations []int
		nowRaw    string
	)

	c := &cobra.Command{
		Use:   "slots",
		Short: "Print available start times for a date, one per line",
		Example: `  slotctl slots --schedules schedules.json --date 2024-06-10
  slotctl slots --schedules schedules.json --date 2024-06-10 --duration 90 --duration 30 --now 2024-06-10T14:00:00Z`,
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, date, loc, err := flags.load(cmd)
			if err != nil {
				return err
			}

			now := time.Now()
			if nowRaw != "" {
				if now, err = time.Parse(time.RFC3339, nowRaw); err != nil {
					return fmt.Errorf("invalid --now (want RFC3339): %w", err)
				}
			}

			result := availability.Compute(availability.Input{
				Schedules:        schedules,
				PackageDurations: durations,
				Date:             &date,
				Now:              now.In(loc),
			})

			for _, skipped := range result.Skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", skipped)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s %s, %d min, outcome=%s\n", result.Date, result.Date.Weekday(), result.DurationMinutes, result.Outcome)
			if msg := result.Message(); msg != "" {
				fmt.Fprintf(out, "# %s\n", msg)
			}
			for _, t := range result.Times {
				fmt.Fprintln(out, t)
			}
			return nil
		},
	}

	flags.register(c)
	c.Flags().IntSliceVar(&durations, "duration", nil, "Package duration in minutes; repeat to stack packages (default 60)")
	c.Flags().StringVar(&nowRaw, "now", "", "Current instant as RFC3339 (default: wall clock)")

	return c
}
