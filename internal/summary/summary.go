// Package summary aggregates booking activity over the schedule window.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/esmalte/internal/llm"
	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/schedule"
)

// Stats holds aggregated booking figures for a date range.
type Stats struct {
	Reservations int
	Completed    int
	Revenue      int // yen, sum of booked service prices

	OpenSlots    int
	BookedSlots  int
	BlockedSlots int
	Occupancy    float64 // booked slots over total slots in range

	ByStaff   map[string]int // staff name -> reservations
	ByService map[string]int // service name -> reservations
}

// Summary holds aggregated window data and optional insight.
type Summary struct {
	Start string
	End   string
	Stats Stats

	PendingRequests int
	Insight         string
}

// Options configures the engine-backed summary builder.
type Options struct {
	Start string // inclusive YYYY-MM-DD bound, empty for window start
	End   string // inclusive YYYY-MM-DD bound, empty for window end

	IncludeInsight bool
	Provider       string
	Model          string
	BaseURL        string
	APIKey         string
}

// Summarize builds summary statistics from a grid and reservation log.
// Empty bounds cover the whole grid window.
func Summarize(grid schedule.Grid, reservations []salon.Reservation, start, end string) Stats {
	stats := Stats{
		ByStaff:   make(map[string]int),
		ByService: make(map[string]int),
	}

	total := 0
	for _, day := range grid {
		if !inRange(day.Date, start, end) {
			continue
		}
		for _, slot := range day.Slots {
			total++
			switch {
			case slot.Occupied():
				stats.BookedSlots++
			case slot.Available:
				stats.OpenSlots++
			default:
				stats.BlockedSlots++
			}
		}
	}

	for _, res := range reservations {
		if !inRange(res.Date, start, end) {
			continue
		}
		stats.Reservations++
		if res.Completed {
			stats.Completed++
		}
		stats.Revenue += res.Customer.Service.Price
		stats.ByStaff[res.Customer.Staff.Name]++
		stats.ByService[res.Customer.Service.Name]++
	}

	if total > 0 {
		stats.Occupancy = float64(stats.BookedSlots) / float64(total)
	}
	return stats
}

// Build loads the current window from the engine and optionally adds an
// LLM-written insight paragraph.
func Build(ctx context.Context, engine *schedule.Engine, opts Options) (*Summary, error) {
	grid := engine.Grid()
	if len(grid) == 0 {
		return nil, errors.New("schedule window is empty")
	}

	start := opts.Start
	if start == "" {
		start = grid[0].Date
	}
	end := opts.End
	if end == "" {
		end = grid[len(grid)-1].Date
	}

	s := &Summary{
		Start:           start,
		End:             end,
		Stats:           Summarize(grid, engine.Reservations(), start, end),
		PendingRequests: len(engine.PendingRequests()),
	}

	if opts.IncludeInsight {
		if opts.Model == "" {
			return nil, errors.New("model is required for insight")
		}
		client, err := llm.NewClient(opts.Provider, opts.Model, opts.BaseURL, opts.APIKey)
		if err != nil {
			return nil, fmt.Errorf("creating LLM client: %w", err)
		}
		insight, err := client.Chat(ctx, []llm.Message{
			{Role: "system", Content: insightSystemPrompt},
			{Role: "user", Content: insightPrompt(s)},
		})
		if err != nil {
			return nil, fmt.Errorf("evaluating window: %w", err)
		}
		s.Insight = strings.TrimSpace(insight)
	}

	return s, nil
}

const insightSystemPrompt = `You advise a small nail salon on its booking calendar.
Given booking statistics, reply with one short paragraph: call out utilization,
the busiest staff and services, and one concrete suggestion. Plain text only.`

func insightPrompt(s *Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Window %s to %s\n", s.Start, s.End)
	fmt.Fprintf(&b, "Reservations: %d (%d completed)\n", s.Stats.Reservations, s.Stats.Completed)
	fmt.Fprintf(&b, "Revenue: %s\n", salon.FormatPrice(s.Stats.Revenue))
	fmt.Fprintf(&b, "Slots: %d booked, %d open, %d blocked (%.0f%% occupancy)\n",
		s.Stats.BookedSlots, s.Stats.OpenSlots, s.Stats.BlockedSlots, s.Stats.Occupancy*100)
	fmt.Fprintf(&b, "Pending time requests: %d\n", s.PendingRequests)
	for name, n := range s.Stats.ByStaff {
		fmt.Fprintf(&b, "Staff %s: %d reservations\n", name, n)
	}
	for name, n := range s.Stats.ByService {
		fmt.Fprintf(&b, "Service %s: %d reservations\n", name, n)
	}
	return b.String()
}

// inRange reports whether date falls inside the inclusive bounds. The
// YYYY-MM-DD format makes string comparison equivalent to date comparison.
func inRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}
