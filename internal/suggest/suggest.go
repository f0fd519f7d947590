// Package suggest turns customer time requests into concrete slot
// suggestions using an LLM, validated against the live schedule.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/esmalte/internal/llm"
	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/schedule"
)

const systemPrompt = `You are a receptionist at a nail salon helping match customer
time requests to open appointment slots.

Rules:
- Suggest at most 3 slots, all taken from the availability data you are given.
- The service must fit: a slot only works if enough consecutive hours are open.
- Respect the customer's stated preferences as closely as possible.
- Respond with JSON only, no markdown, in this exact shape:

{
  "suggestions": [
    {"date": "YYYY-MM-DD", "time": "HH:MM", "reason": "one short sentence"}
  ],
  "notes": "optional remark for the admin"
}`

// Suggestion is one proposed slot for a time request.
type Suggestion struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

// response is the JSON shape the LLM is asked to produce.
type response struct {
	Suggestions []Suggestion `json:"suggestions"`
	Notes       string       `json:"notes"`
}

// Result contains validated suggestions for a time request. When retries
// are exhausted, Suggestions holds the last attempt and ValidationErrors
// explains what is wrong with it.
type Result struct {
	Suggestions      []Suggestion
	Notes            string
	ValidationErrors []string
}

// Suggester asks an LLM for booking suggestions and checks every candidate
// against the scheduling engine before accepting it.
type Suggester struct {
	client llm.Client
	engine *schedule.Engine
}

// New creates a Suggester.
func New(client llm.Client, engine *schedule.Engine) *Suggester {
	return &Suggester{client: client, engine: engine}
}

// SuggestFor proposes bookable slots for a pending time request. Invalid
// LLM output is fed back for correction up to maxRetries times.
func (s *Suggester) SuggestFor(ctx context.Context, req salon.TimeRequest, maxRetries int) (*Result, error) {
	duration := req.Service.Duration
	if duration <= 0 {
		duration = salon.SlotDuration
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: s.buildPrompt(req, duration)},
	}

	var (
		resp     response
		lastErrs []string
	)
	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp = response{}
		if err := s.client.ChatJSON(ctx, messages, &resp); err != nil {
			return nil, fmt.Errorf("requesting suggestions (attempt %d): %w", attempt+1, err)
		}

		lastErrs = s.validate(resp.Suggestions, duration)
		if len(lastErrs) == 0 {
			return &Result{Suggestions: resp.Suggestions, Notes: resp.Notes}, nil
		}

		if attempt < maxRetries {
			respJSON, _ := json.Marshal(resp)
			messages = append(messages,
				llm.Message{Role: "assistant", Content: string(respJSON)},
				llm.Message{Role: "user", Content: formatFeedback(lastErrs)},
			)
		}
	}

	return &Result{
		Suggestions:      resp.Suggestions,
		Notes:            resp.Notes,
		ValidationErrors: lastErrs,
	}, nil
}

// buildPrompt assembles the request details and current availability.
func (s *Suggester) buildPrompt(req salon.TimeRequest, duration int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Customer: %s\n", req.CustomerName)
	if req.Service.Name != "" {
		fmt.Fprintf(&sb, "Service: %s (%d min)\n", req.Service.Name, duration)
	} else {
		fmt.Fprintf(&sb, "Service duration: %d min\n", duration)
	}
	if req.Staff.Name != "" {
		fmt.Fprintf(&sb, "Requested staff: %s\n", req.Staff.Name)
	}
	if req.PreferredDate != "" {
		fmt.Fprintf(&sb, "Preferred date: %s\n", req.PreferredDate)
	}
	if req.PreferredTime != "" {
		fmt.Fprintf(&sb, "Preferred time: %s\n", req.PreferredTime)
	}
	fmt.Fprintf(&sb, "Request: %s\n\n", req.Message)

	sb.WriteString("Open start times (slots where the full service fits):\n")
	sb.WriteString(s.availability(req.PreferredDate, duration))

	return sb.String()
}

// availability lists bookable start times for the week around the
// preferred date, or the first week of the window when none is given.
func (s *Suggester) availability(preferredDate string, duration int) string {
	offset := 0
	if preferredDate != "" {
		if idx := s.dayOffset(preferredDate); idx >= 0 {
			// Center the week on the preferred date where possible.
			offset = idx - 3
			if offset < 0 {
				offset = 0
			}
		}
	}

	days := s.engine.Days(offset, 7)
	var sb strings.Builder
	for _, day := range days {
		var open []string
		for _, slot := range day.Slots {
			if s.engine.CanBook(slot.Time, duration, day.Date) {
				open = append(open, slot.Time)
			}
		}
		if len(open) == 0 {
			fmt.Fprintf(&sb, "%s: fully booked\n", day.Date)
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", day.Date, strings.Join(open, " "))
	}
	return sb.String()
}

func (s *Suggester) dayOffset(date string) int {
	for i, day := range s.engine.Grid() {
		if day.Date == date {
			return i
		}
	}
	return -1
}

// validate checks every suggestion against the engine's availability
// predicate and returns one message per failing entry.
func (s *Suggester) validate(suggestions []Suggestion, duration int) []string {
	if len(suggestions) == 0 {
		return []string{"no suggestions returned; propose at least one slot from the availability data"}
	}

	var errs []string
	for i, sug := range suggestions {
		if _, err := time.Parse(salon.DateFormat, sug.Date); err != nil {
			errs = append(errs, fmt.Sprintf("suggestion %d: date %q is not in YYYY-MM-DD format", i+1, sug.Date))
			continue
		}
		if salon.ParseHour(sug.Time) < 0 {
			errs = append(errs, fmt.Sprintf("suggestion %d: time %q is not a valid clock time", i+1, sug.Time))
			continue
		}
		if !s.engine.CanBook(sug.Time, duration, sug.Date) {
			errs = append(errs, fmt.Sprintf("suggestion %d: %s %s cannot fit a %d min service", i+1, sug.Date, sug.Time, duration))
		}
	}
	return errs
}

func formatFeedback(errs []string) string {
	var sb strings.Builder
	sb.WriteString("Your response had these errors:\n")
	for _, e := range errs {
		fmt.Fprintf(&sb, "- %s\n", e)
	}
	sb.WriteString("\nPlease correct these issues and respond again with valid JSON.")
	return sb.String()
}
