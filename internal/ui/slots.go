package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/esmalte/internal/dateutil"
	"github.com/javiermolinar/esmalte/internal/salon"
)

func (a *App) slotsCmd() *cobra.Command {
	var (
		date      string
		week      int
		serviceID string
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Show slot availability",
		Long: `Show the schedule grid's slot availability.

With --date, shows a single day. With --week N, shows the Nth week of
the booking window (0 is the current week). Dates accept keywords like
"tomorrow" or "next-friday" as well as YYYY-MM-DD.

With --service, shows the start times on the chosen day that can fit
that menu item's full duration.`,
		Example: `  esmalte slots
  esmalte slots --date=tomorrow
  esmalte slots --date=2026-09-15
  esmalte slots --week=2
  esmalte slots --date=tomorrow --service=2`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if serviceID != "" {
				if date == "" {
					date = "today"
				}
				return a.printServiceFit(date, serviceID)
			}
			if date != "" {
				return a.printDay(date)
			}

			days := a.engine.Days(week*7, 7)
			if len(days) == 0 {
				return fmt.Errorf("week %d is outside the %d-day booking window", week, salon.HorizonDays)
			}
			for i, day := range days {
				if i > 0 {
					fmt.Println()
				}
				PrintDaySchedule(day)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Show a single day (YYYY-MM-DD or a keyword; keywords count from the booking window's first day)")
	cmd.Flags().IntVar(&week, "week", 0, "Week of the booking window to show (0-4)")
	cmd.Flags().StringVar(&serviceID, "service", "", "Show start times that fit this menu item (implies --date, default today)")

	return cmd
}

// printServiceFit prints the start times on a day that can hold the
// service's full duration, consecutive slots included.
func (a *App) printServiceFit(date, serviceID string) error {
	svc, err := a.catalog.ServiceByID(serviceID)
	if err != nil {
		return err
	}
	resolved, err := a.resolveDate(date)
	if err != nil {
		return err
	}
	if _, ok := a.engine.Day(resolved); !ok {
		return fmt.Errorf("%s is outside the %d-day booking window", resolved, salon.HorizonDays)
	}

	fmt.Printf("%s\n", formatHeader(fmt.Sprintf("=== %s: %s (%s) ===", resolved, svc.Name, salon.FormatDuration(svc.Duration))))
	var found int
	for hour := salon.OpenHour; hour <= salon.LastHour; hour++ {
		label := salon.HourLabel(hour)
		if a.engine.CanBook(label, svc.Duration, resolved) {
			fmt.Printf("  %s\n", formatAvailable(label))
			found++
		}
	}
	if found == 0 {
		fmt.Println(formatMuted("  no start time fits this service"))
	}
	return nil
}

// printDay resolves a date argument and prints that day's schedule.
func (a *App) printDay(date string) error {
	resolved, err := a.resolveDate(date)
	if err != nil {
		return err
	}
	day, ok := a.engine.Day(resolved)
	if !ok {
		return fmt.Errorf("%s is outside the %d-day booking window", resolved, salon.HorizonDays)
	}
	PrintDaySchedule(day)
	return nil
}

// resolveDate turns a date flag value into a YYYY-MM-DD string. Relative
// keywords are anchored to the booking window's first day, not the wall
// clock, so they stay inside the window until the grid is regenerated.
func (a *App) resolveDate(date string) (string, error) {
	t, err := dateutil.ParseRelativeDate(date, a.engine.Today())
	if err != nil {
		return "", err
	}
	return t.Format(salon.DateFormat), nil
}
