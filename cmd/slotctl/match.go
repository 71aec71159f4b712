package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwork/booking-api/internal/domain/availability"
)

func newMatchCmd() *cobra.Command {
	var flags scheduleFlags

	c := &cobra.Command{
		Use:   "match",
		Short: "Classify a date against schedules and list the governing ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, date, _, err := flags.load(cmd)
			if err != nil {
				return err
			}

			match := availability.MatchSchedules(date, schedules)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "outcome: %s\n", match.Outcome)
			for _, s := range match.Schedules {
				id := s.ID
				if id == "" {
					id = "-"
				}
				fmt.Fprintf(out, "%s\t%s\t%s-%s\n", id, s.DayOfWeek, s.StartTime, s.EndTime)
			}
			return nil
		},
	}

	flags.register(c)
	return c
}
