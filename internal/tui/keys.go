package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/esmalte/internal/salon"
)

// handleKey dispatches a keypress to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}
	// The form captures plain letters for typing, and a pending
	// confirmation treats any letter as an answer.
	if key == "q" && m.step != stepForm && m.pending == pendingNone {
		return m, tea.Quit
	}

	switch m.step {
	case stepStaff:
		return m.handleStaffKey(key)
	case stepService:
		return m.handleServiceKey(key)
	case stepGrid:
		return m.handleGridKey(key)
	case stepForm:
		return m.handleFormKey(msg)
	case stepConfirm:
		return m.handleConfirmKey(key)
	case stepDone:
		return m.handleDoneKey(key)
	}
	return m, nil
}

func (m Model) handleStaffKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.staffIdx > 0 {
			m.staffIdx--
		}
	case "down", "j":
		if m.staffIdx < len(m.staff)-1 {
			m.staffIdx++
		}
	case "enter":
		if len(m.staff) == 0 {
			return m, nil
		}
		member := m.staff[m.staffIdx]
		services := m.catalog.ServicesFor(member.ID)
		if len(services) == 0 {
			m.setStatus(fmt.Sprintf("%s performs no services", member.Name), true)
			return m, nil
		}
		m.selStaff = member
		m.services = services
		m.svcIdx = 0
		m.step = stepService
	}
	return m, nil
}

func (m Model) handleServiceKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.svcIdx > 0 {
			m.svcIdx--
		}
	case "down", "j":
		if m.svcIdx < len(m.services)-1 {
			m.svcIdx++
		}
	case "enter":
		m.selService = m.services[m.svcIdx]
		m.step = stepGrid
		m.setWeek(0)
		m.cursor = Position{}
	case "esc":
		m.step = stepStaff
	}
	return m, nil
}

func (m Model) handleGridKey(key string) (tea.Model, tea.Cmd) {
	if m.pending != pendingNone {
		return m.handlePendingKey(key)
	}

	switch key {
	case "left", "h":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		}
	case "right", "l":
		if m.cursor.Day < len(m.days)-1 {
			m.cursor.Day++
		}
	case "up", "k":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "down", "j":
		if m.cursor.Row < salon.SlotsPerDay-1 {
			m.cursor.Row++
		}
	case "tab", "n":
		m.setWeek(m.week + 1)
	case "shift+tab", "p":
		m.setWeek(m.week - 1)
	case "esc":
		if !m.admin {
			m.step = stepService
		}
	case "t":
		if m.admin {
			slot := m.cursorSlot()
			if slot == nil {
				return m, nil
			}
			if slot.Occupied() {
				m.setStatus(fmt.Sprintf("%s is booked by %s; cannot toggle", slot.Time, slot.Customer.Name), true)
				return m, nil
			}
			return m, toggleSlot(m.engine, m.cursorDate(), slot.Time)
		}
	case "G":
		if m.admin {
			m.pending = pendingRegenerate
			m.setStatus("Regenerate the booking window from today? (y/n)", true)
		}
	case "R":
		if m.admin {
			m.pending = pendingReset
			m.setStatus("Reset ALL bookings, blocks and requests? (y/n)", true)
		}
	case "enter":
		slot := m.cursorSlot()
		if slot == nil {
			return m, nil
		}
		if m.admin {
			if slot.Occupied() {
				c := slot.Customer
				m.setStatus(fmt.Sprintf("%s: %s (%s), %s with %s", slot.Time, c.Name, c.Phone, c.Service.Name, c.Staff.Name), false)
			} else if slot.Available {
				m.setStatus(fmt.Sprintf("%s is open", slot.Time), false)
			} else {
				m.setStatus(fmt.Sprintf("%s is blocked", slot.Time), true)
			}
			return m, nil
		}
		if !m.engine.CanBook(slot.Time, m.selService.Duration, m.cursorDate()) {
			m.setStatus(fmt.Sprintf("Cannot fit a %s %s at %s %s",
				salon.FormatDuration(m.selService.Duration), m.selService.Name, m.cursorDate(), slot.Time), true)
			return m, nil
		}
		m.step = stepForm
		m.formFocus = 0
		return m, m.nameInput.Focus()
	}
	return m, nil
}

// handlePendingKey resolves a destructive action awaiting confirmation.
func (m Model) handlePendingKey(key string) (tea.Model, tea.Cmd) {
	action := m.pending
	m.pending = pendingNone
	switch key {
	case "y", "enter":
		switch action {
		case pendingRegenerate:
			return m, regenerateGrid(m.engine)
		case pendingReset:
			return m, resetAll(m.engine)
		}
	default:
		m.setStatus("Cancelled", false)
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.nameInput.Blur()
		m.phoneInput.Blur()
		m.step = stepGrid
		return m, nil
	case "tab", "enter":
		if m.formFocus == 0 {
			m.formFocus = 1
			m.nameInput.Blur()
			return m, m.phoneInput.Focus()
		}
		if msg.String() == "enter" {
			name := strings.TrimSpace(m.nameInput.Value())
			phone := strings.TrimSpace(m.phoneInput.Value())
			if name == "" || phone == "" {
				m.setStatus("Name and phone are required", true)
				return m, nil
			}
			m.phoneInput.Blur()
			m.step = stepConfirm
			return m, nil
		}
		m.formFocus = 0
		m.phoneInput.Blur()
		return m, m.nameInput.Focus()
	case "shift+tab":
		if m.formFocus == 1 {
			m.formFocus = 0
			m.phoneInput.Blur()
			return m, m.nameInput.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.formFocus == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.phoneInput, cmd = m.phoneInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter", "y":
		slot := m.cursorSlot()
		if slot == nil {
			m.step = stepGrid
			return m, nil
		}
		customer := salon.Customer{
			Name:    strings.TrimSpace(m.nameInput.Value()),
			Phone:   strings.TrimSpace(m.phoneInput.Value()),
			Service: m.selService,
			Staff:   m.selStaff,
		}
		return m, bookSlot(m.engine, m.cursorDate(), slot.Time, customer)
	case "esc", "n":
		m.step = stepGrid
		m.reloadDays()
	}
	return m, nil
}

func (m Model) handleDoneKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "c":
		if m.booked != nil {
			return m, copyText(confirmationText(m.config.Salon.Name, *m.booked))
		}
	case "n":
		m.resetFlow()
	}
	return m, nil
}
