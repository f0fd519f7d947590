package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/esmalte/internal/llm"
	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/suggest"
)

const suggestMaxRetries = 2

func (a *App) suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [request-id]",
		Short: "Suggest bookable slots for a time request",
		Long: `Ask the configured LLM to match a pending time request to open slots.
Every suggestion is checked against the schedule before it is shown.

Without an argument, suggests slots for every pending request.`,
		Example: `  esmalte suggest
  esmalte suggest 1757240000000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := llm.NewClient(
				a.config.LLM.Provider,
				a.config.LLM.Model,
				a.config.LLM.BaseURL,
				a.config.LLM.APIKey,
			)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}
			s := suggest.New(client, a.engine)

			requests := a.engine.PendingRequests()
			if len(args) == 1 {
				requests = filterRequest(requests, args[0])
				if len(requests) == 0 {
					return fmt.Errorf("no pending time request with id %s", args[0])
				}
			}
			if len(requests) == 0 {
				fmt.Println("No pending time requests.")
				return nil
			}

			ctx := context.Background()
			for i, req := range requests {
				if i > 0 {
					fmt.Println()
				}
				fmt.Printf("%s\n", formatHeader(fmt.Sprintf("Request #%s - %s", req.ID, req.CustomerName)))
				fmt.Printf("  %s\n", formatMuted(fmt.Sprintf("%q", req.Message)))

				result, err := s.SuggestFor(ctx, req, suggestMaxRetries)
				if err != nil {
					return err
				}

				if len(result.ValidationErrors) > 0 {
					fmt.Println(formatBlocked("  Could not produce valid suggestions:"))
					for _, e := range result.ValidationErrors {
						fmt.Printf("    %s\n", formatMuted(e))
					}
					continue
				}

				for _, sug := range result.Suggestions {
					fmt.Printf("  %s  %s\n",
						formatAvailable(fmt.Sprintf("%s %s", sug.Date, sug.Time)),
						sug.Reason,
					)
				}
				if result.Notes != "" {
					fmt.Printf("  %s\n", formatMuted(result.Notes))
				}
			}
			return nil
		},
	}
}

func filterRequest(requests []salon.TimeRequest, id string) []salon.TimeRequest {
	for _, r := range requests {
		if r.ID == id {
			return []salon.TimeRequest{r}
		}
	}
	return nil
}
