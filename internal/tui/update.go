package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/esmalte/internal/salon"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case bookedMsg:
		m.booked = &msg.reservation
		m.step = stepDone
		m.reloadDays()
		return m, nil

	case toggledMsg:
		m.reloadDays()
		if msg.slot.Available {
			m.setStatus(fmt.Sprintf("Slot %s is now open", msg.slot.Time), false)
		} else if len(msg.conflicts) > 0 {
			var parts []string
			for _, c := range msg.conflicts {
				parts = append(parts, fmt.Sprintf("%s/%s", c.Time, salon.FormatDuration(c.Duration)))
			}
			m.setStatus(fmt.Sprintf("Slot %s blocked; breaks %s", msg.slot.Time, strings.Join(parts, ", ")), true)
		} else {
			m.setStatus(fmt.Sprintf("Slot %s blocked", msg.slot.Time), true)
		}
		return m, nil

	case regeneratedMsg:
		m.setWeek(0)
		m.cursor = Position{}
		m.setStatus("Booking window regenerated", false)
		return m, nil

	case resetMsg:
		m.setWeek(0)
		m.cursor = Position{}
		m.setStatus("All bookings, blocks and requests cleared", false)
		return m, nil

	case copiedMsg:
		m.setStatus("Copied to clipboard", false)
		return m, nil

	case errMsg:
		m.setStatus(msg.err.Error(), true)
		if m.step == stepConfirm {
			// Slot was taken between selection and confirm
			m.step = stepGrid
			m.reloadDays()
		}
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.statusWarn = false
		return m.handleKey(msg)
	}

	return m, nil
}
