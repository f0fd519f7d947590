package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/esmalte/internal/salon"
)

func (a *App) conflictsCmd() *cobra.Command {
	var (
		date     string
		slotTime string
	)

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Show booking windows broken by a blocked slot",
		Long: `Show which standard-duration bookings starting earlier the same day
can no longer fit because of the slot at the given time.`,
		Example: `  esmalte conflicts --date=2026-09-15 --time=11:00`,
		RunE: func(_ *cobra.Command, _ []string) error {
			resolved, err := a.resolveDate(date)
			if err != nil {
				return err
			}

			conflicts := a.engine.Conflicts(slotTime, resolved)
			if len(conflicts) == 0 {
				fmt.Printf("No booking windows are affected by %s %s.\n", resolved, slotTime)
				return nil
			}

			fmt.Printf("%s\n", formatHeader(fmt.Sprintf("Affected booking windows for %s %s:", resolved, slotTime)))
			for _, c := range conflicts {
				fmt.Printf("  %s\n", formatBlocked(fmt.Sprintf("%s start, %s service", c.Time, salon.FormatDuration(c.Duration))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD or a keyword counted from the window's first day, default: today)")
	cmd.Flags().StringVar(&slotTime, "time", "", "Slot time (HH:00, required)")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func (a *App) toggleCmd() *cobra.Command {
	var (
		date     string
		slotTime string
	)

	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Toggle a slot between open and blocked",
		Long: `Flip a slot's availability. Slots holding a booking are left
untouched. Before blocking an open slot, the affected booking windows
are shown.`,
		Example: `  esmalte toggle --date=tomorrow --time=15:00`,
		RunE: func(_ *cobra.Command, _ []string) error {
			resolved, err := a.resolveDate(date)
			if err != nil {
				return err
			}

			slot, err := a.engine.ToggleAvailability(context.Background(), resolved, slotTime)
			if err != nil {
				return err
			}

			switch {
			case slot.Occupied():
				fmt.Printf("%s %s is booked by %s; not changed.\n", resolved, slot.Time, slot.Customer.Name)
			case slot.Available:
				fmt.Printf("%s %s is now %s.\n", resolved, slot.Time, formatAvailable("open"))
			default:
				fmt.Printf("%s %s is now %s.\n", resolved, slot.Time, formatBlocked("blocked"))
				if conflicts := a.engine.Conflicts(slot.Time, resolved); len(conflicts) > 0 {
					fmt.Println(formatMuted("  Affected booking windows:"))
					for _, c := range conflicts {
						fmt.Printf("    %s start, %s service\n", c.Time, salon.FormatDuration(c.Duration))
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD or a keyword counted from the window's first day, default: today)")
	cmd.Flags().StringVar(&slotTime, "time", "", "Slot time (HH:00, required)")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func (a *App) regenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate",
		Short: "Rebuild the schedule grid",
		Long: `Discard the schedule grid and rebuild a fresh all-available one
starting today. Reservations and time requests are kept.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !promptYesNo("Rebuild the 30-day schedule grid? Bookings are kept but manual slot changes are lost.") {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := a.engine.RegenerateGrid(context.Background()); err != nil {
				return err
			}
			fmt.Printf("Regenerated a fresh %d-day grid.\n", salon.HorizonDays)
			return nil
		},
	}
}

func (a *App) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all data and start over",
		Long: `Delete every reservation, every time request, and the schedule grid,
then rebuild a fresh grid. This cannot be undone and asks for
confirmation twice.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !promptYesNo("Delete ALL reservations, time requests, and the schedule grid?") {
				fmt.Println("Cancelled.")
				return nil
			}
			fmt.Print("Type RESET to confirm: ")
			reader := bufio.NewReader(os.Stdin)
			input, _ := reader.ReadString('\n')
			if strings.TrimSpace(input) != "RESET" {
				fmt.Println("Cancelled.")
				return nil
			}

			if err := a.engine.ResetAll(context.Background()); err != nil {
				return err
			}
			fmt.Println("All data deleted. A fresh grid is in place.")
			return nil
		},
	}
}
