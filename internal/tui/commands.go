package tui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/schedule"
)

// Messages produced by engine commands.
type (
	bookedMsg struct {
		reservation salon.Reservation
	}
	toggledMsg struct {
		slot      schedule.Slot
		conflicts []schedule.Conflict
	}
	regeneratedMsg struct{}
	resetMsg       struct{}
	copiedMsg      struct{}
	errMsg         struct {
		err error
	}
)

// bookSlot commits a booking through the engine.
func bookSlot(engine *schedule.Engine, date, startTime string, customer salon.Customer) tea.Cmd {
	return func() tea.Msg {
		res, err := engine.Book(context.Background(), date, startTime, customer)
		if err != nil {
			return errMsg{err: err}
		}
		return bookedMsg{reservation: res}
	}
}

// toggleSlot flips a slot's availability. When the slot ends up blocked,
// the message carries the booking windows it breaks.
func toggleSlot(engine *schedule.Engine, date, timeLabel string) tea.Cmd {
	return func() tea.Msg {
		slot, err := engine.ToggleAvailability(context.Background(), date, timeLabel)
		if err != nil {
			return errMsg{err: err}
		}
		var conflicts []schedule.Conflict
		if !slot.Available {
			conflicts = engine.Conflicts(timeLabel, date)
		}
		return toggledMsg{slot: slot, conflicts: conflicts}
	}
}

// regenerateGrid rebuilds the booking window from today.
func regenerateGrid(engine *schedule.Engine) tea.Cmd {
	return func() tea.Msg {
		if err := engine.RegenerateGrid(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return regeneratedMsg{}
	}
}

// resetAll wipes the grid, reservations and requests.
func resetAll(engine *schedule.Engine) tea.Cmd {
	return func() tea.Msg {
		if err := engine.ResetAll(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return resetMsg{}
	}
}

// copyText places text on the system clipboard.
func copyText(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return errMsg{err: err}
		}
		return copiedMsg{}
	}
}
