package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/esmalte/internal/dateutil"
	"github.com/javiermolinar/esmalte/internal/salon"
)

func (a *App) reservationsCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		staffID   string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "List reservations",
		Long: `List reservations in a date range.

With --all, lists the entire booking log. Otherwise lists today's
reservations, or the range given by --start and --end. --staff narrows
either listing to one staff member.`,
		Example: `  esmalte reservations
  esmalte reservations --all
  esmalte reservations --start=2026-09-15 --end=2026-09-20 --staff=1`,
		RunE: func(_ *cobra.Command, _ []string) error {
			reservations := a.engine.Reservations()

			if !all {
				dateRange, err := dateutil.NewDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				reservations = filterByRange(reservations, dateRange)
			}
			if staffID != "" {
				if _, err := a.catalog.StaffByID(staffID); err != nil {
					return err
				}
				reservations = filterByStaff(reservations, staffID)
			}

			if len(reservations) == 0 {
				fmt.Println("No reservations found.")
				return nil
			}

			var currentDate string
			for _, r := range reservations {
				if r.Date != currentDate {
					if currentDate != "" {
						fmt.Println()
					}
					fmt.Printf("%s\n", formatHeader(fmt.Sprintf("=== %s ===", r.Date)))
					currentDate = r.Date
				}
				PrintReservationRow(r)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().StringVar(&staffID, "staff", "", "Only reservations with this staff member")
	cmd.Flags().BoolVar(&all, "all", false, "List the entire booking log")

	return cmd
}

// filterByStaff keeps reservations assigned to the given staff member.
func filterByStaff(reservations []salon.Reservation, staffID string) []salon.Reservation {
	var out []salon.Reservation
	for _, res := range reservations {
		if res.Customer.Staff.ID == staffID {
			out = append(out, res)
		}
	}
	return out
}

// filterByRange keeps reservations whose date falls inside the range.
func filterByRange(reservations []salon.Reservation, r *dateutil.DateRange) []salon.Reservation {
	start := r.Start.Format(salon.DateFormat)
	end := r.End.Format(salon.DateFormat)

	var out []salon.Reservation
	for _, res := range reservations {
		if res.Date >= start && res.Date <= end {
			out = append(out, res)
		}
	}
	return out
}

func (a *App) completeCmd() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "complete [reservation-id]",
		Short: "Mark a reservation as done",
		Long: `Mark a reservation as completed, optionally recording a treatment
note for the customer's next visit.`,
		Example: `  esmalte complete 1757240000000 --note="gel base, coral pink"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.engine.Complete(context.Background(), args[0], note); err != nil {
				return err
			}
			fmt.Printf("Reservation #%s marked as completed.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Treatment note to store with the reservation")

	return cmd
}
