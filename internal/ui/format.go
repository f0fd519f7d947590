package ui

import (
	"fmt"

	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/schedule"
)

// slotMark returns the colored marker and label for a slot.
func slotMark(s schedule.Slot) string {
	switch {
	case s.Occupied():
		return formatOccupied(fmt.Sprintf("● %s  %s (%s)", s.Time, s.Customer.Name, s.Customer.Service.Name))
	case s.Available:
		return formatAvailable(fmt.Sprintf("○ %s  open", s.Time))
	default:
		return formatBlocked(fmt.Sprintf("✗ %s  blocked", s.Time))
	}
}

// PrintDaySchedule prints one day of the grid, one slot per line.
func PrintDaySchedule(day schedule.DaySchedule) {
	fmt.Printf("%s\n", formatHeader(fmt.Sprintf("=== %s ===", day.Date)))
	for _, slot := range day.Slots {
		fmt.Printf("  %s\n", slotMark(slot))
	}
}

// PrintReservationRow prints a single reservation row.
func PrintReservationRow(r salon.Reservation) {
	status := "○"
	if r.Completed {
		status = "✓"
	}
	price := formatPrice(salon.FormatPrice(r.Customer.Service.Price))
	fmt.Printf("  %s #%s  %s %s  %s  %s with %s  %s\n",
		status,
		r.ID,
		r.Date,
		r.Time,
		r.Customer.Name,
		r.Customer.Service.Name,
		r.Customer.Staff.Name,
		price,
	)
	if r.ServiceNote != "" {
		fmt.Printf("      %s\n", formatMuted(clampText(r.ServiceNote, noteWidth())))
	}
}

// PrintRequestRow prints a single time request row.
func PrintRequestRow(r salon.TimeRequest) {
	fmt.Printf("  [%s] #%s  %s (%s)\n",
		requestStatusLabel(r.Status),
		r.ID,
		r.CustomerName,
		r.CustomerPhone,
	)
	if r.Service.Name != "" {
		fmt.Printf("      %s with %s\n", r.Service.Name, r.Staff.Name)
	} else if r.Staff.Name != "" {
		fmt.Printf("      with %s\n", r.Staff.Name)
	}
	if r.PreferredDate != "" || r.PreferredTime != "" {
		fmt.Printf("      prefers %s %s\n", r.PreferredDate, r.PreferredTime)
	}
	fmt.Printf("      %s\n", formatMuted(fmt.Sprintf("%q", clampText(r.Message, noteWidth()))))
	if r.AdminNotes != "" {
		fmt.Printf("      notes: %s\n", formatMuted(r.AdminNotes))
	}
}

// noteWidth is the room left for free-form text on an indented row:
// the terminal width minus the indent and the quotes.
func noteWidth() int {
	return termWidth() - 10
}

// clampText shortens s to at most width runes.
func clampText(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width || width <= 1 {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// requestStatusLabel colors a request status for terminal output.
func requestStatusLabel(s salon.RequestStatus) string {
	switch s {
	case salon.StatusPending:
		return formatPrice(string(s))
	case salon.StatusScheduled:
		return formatAvailable(string(s))
	case salon.StatusDeclined:
		return formatBlocked(string(s))
	default:
		return formatMuted(string(s))
	}
}

// PrintServiceRow prints a single menu item row.
func PrintServiceRow(svc salon.Service, staffName string) {
	fmt.Printf("  #%s  %-14s %6s  %8s  %s\n",
		svc.ID,
		svc.Name,
		salon.FormatDuration(svc.Duration),
		formatPrice(salon.FormatPrice(svc.Price)),
		formatMuted(staffName),
	)
}
