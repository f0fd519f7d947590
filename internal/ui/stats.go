package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/esmalte/internal/dateutil"
	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/summary"
)

func (a *App) statsCmd() *cobra.Command {
	var (
		start   string
		end     string
		insight bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show booking statistics for the schedule window",
		Example: `  esmalte stats
  esmalte stats --start 2026-09-07 --end 2026-09-13
  esmalte stats --insight`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			opts := summary.Options{
				IncludeInsight: insight,
				Provider:       a.config.LLM.Provider,
				Model:          a.config.LLM.Model,
				BaseURL:        a.config.LLM.BaseURL,
				APIKey:         a.config.LLM.APIKey,
			}
			if start != "" {
				day, err := dateutil.ParseDate(start)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
				opts.Start = day.Format(salon.DateFormat)
			}
			if end != "" {
				day, err := dateutil.ParseDate(end)
				if err != nil {
					return fmt.Errorf("invalid --end: %w", err)
				}
				opts.End = day.Format(salon.DateFormat)
			}

			s, err := summary.Build(context.Background(), a.engine, opts)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatHeader(fmt.Sprintf("=== %s to %s ===", s.Start, s.End)))
			fmt.Printf("  Reservations   %s (%d completed)\n",
				formatPrice(fmt.Sprintf("%d", s.Stats.Reservations)), s.Stats.Completed)
			fmt.Printf("  Revenue        %s\n", formatPrice(salon.FormatPrice(s.Stats.Revenue)))
			fmt.Printf("  Slots          %s booked  %s open  %s blocked\n",
				formatOccupied(fmt.Sprintf("%d", s.Stats.BookedSlots)),
				formatAvailable(fmt.Sprintf("%d", s.Stats.OpenSlots)),
				formatBlocked(fmt.Sprintf("%d", s.Stats.BlockedSlots)))
			fmt.Printf("  Occupancy      %.0f%%\n", s.Stats.Occupancy*100)
			fmt.Printf("  Pending requests  %d\n", s.PendingRequests)

			if len(s.Stats.ByStaff) > 0 {
				fmt.Printf("\n%s\n", formatHeader("By staff"))
				for _, member := range a.catalog.Staff() {
					if n := s.Stats.ByStaff[member.Name]; n > 0 {
						fmt.Printf("  %-12s %d\n", member.Name, n)
					}
				}
			}
			if len(s.Stats.ByService) > 0 {
				fmt.Printf("\n%s\n", formatHeader("By service"))
				for _, svc := range a.catalog.Services() {
					if n := s.Stats.ByService[svc.Name]; n > 0 {
						fmt.Printf("  %-16s %d\n", svc.Name, n)
					}
				}
			}

			if s.Insight != "" {
				fmt.Printf("\n%s\n%s\n", formatHeader("Insight"), s.Insight)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD), inclusive")
	cmd.Flags().BoolVar(&insight, "insight", false, "ask the configured LLM for a short assessment")
	return cmd
}
