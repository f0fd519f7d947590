package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/schedule"
)

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.step {
	case stepStaff:
		b.WriteString(m.renderStaffList())
	case stepService:
		b.WriteString(m.renderServiceList())
	case stepGrid:
		b.WriteString(m.renderGrid())
	case stepForm:
		b.WriteString(m.renderForm())
	case stepConfirm:
		b.WriteString(m.renderConfirm())
	case stepDone:
		b.WriteString(m.renderDone())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.TitleStyle.Render(m.config.Salon.Name)
	if m.admin {
		st := m.engine.Stats()
		counts := fmt.Sprintf("%d booked · %d pending · %d open",
			st.Reservations, st.PendingRequests, st.AvailableSlots)
		return title + "  " + m.styles.AdminStyle.Render("ADMIN") +
			"  " + m.styles.SubtitleStyle.Render(counts)
	}

	var crumbs []string
	if m.selStaff.Name != "" {
		crumbs = append(crumbs, m.selStaff.Name)
	}
	if m.selService.Name != "" {
		crumbs = append(crumbs, fmt.Sprintf("%s (%s)", m.selService.Name, salon.FormatDuration(m.selService.Duration)))
	}
	if len(crumbs) == 0 {
		return title
	}
	return title + "  " + m.styles.SubtitleStyle.Render(strings.Join(crumbs, " · "))
}

func (m Model) renderStaffList() string {
	var b strings.Builder
	b.WriteString(m.styles.SubtitleStyle.Render("Choose a staff member:"))
	b.WriteString("\n\n")
	for i, member := range m.staff {
		line := member.Name
		if i == m.staffIdx {
			b.WriteString(m.styles.ListSelectedStyle.Render("❯ " + line))
		} else {
			b.WriteString(m.styles.ListItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
		services := m.catalog.ServicesFor(member.ID)
		names := make([]string, 0, len(services))
		for _, svc := range services {
			names = append(names, svc.Name)
		}
		if len(names) > 0 {
			b.WriteString(m.styles.ListDetailStyle.Render(strings.Join(names, ", ")))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderServiceList() string {
	var b strings.Builder
	b.WriteString(m.styles.SubtitleStyle.Render(fmt.Sprintf("Services by %s:", m.selStaff.Name)))
	b.WriteString("\n\n")
	for i, svc := range m.services {
		line := fmt.Sprintf("%-16s %6s  %s",
			svc.Name, salon.FormatDuration(svc.Duration), salon.FormatPrice(svc.Price))
		if i == m.svcIdx {
			b.WriteString(m.styles.ListSelectedStyle.Render("❯ " + line))
		} else {
			b.WriteString(m.styles.ListItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderGrid() string {
	var b strings.Builder
	today := m.engine.Today().Format(salon.DateFormat)

	// Day header row
	header := m.styles.TimeColumnStyle.Render("")
	for _, day := range m.days {
		label := day.Date
		if t, err := time.Parse(salon.DateFormat, day.Date); err == nil {
			label = t.Format("Mon 01-02")
		}
		if day.Date == today {
			header += m.styles.DayHeaderTodayStyle.Render(label)
		} else {
			header += m.styles.DayHeaderStyle.Render(label)
		}
	}
	b.WriteString(header)
	b.WriteString("\n")

	for row := 0; row < salon.SlotsPerDay; row++ {
		line := m.styles.TimeColumnStyle.Render(salon.HourLabel(salon.OpenHour + row))
		for dayIdx, day := range m.days {
			if row >= len(day.Slots) {
				continue
			}
			slot := day.Slots[row]
			label, style := m.slotCell(day, row, slot)
			if m.cursor.Day == dayIdx && m.cursor.Row == row {
				style = m.styles.CursorStyle
			}
			line += style.Render(label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// slotCell picks the label and style for one grid cell.
func (m Model) slotCell(day schedule.DaySchedule, row int, slot schedule.Slot) (string, lipgloss.Style) {
	switch {
	case slot.Occupied():
		return truncate(slot.Customer.Name, defaultColWidth-2), m.styles.SlotBookedStyle
	case slot.Available:
		return "·", m.styles.SlotOpenStyle
	case isSpillover(day, row):
		return "↳", m.styles.SlotSpilloverStyle
	default:
		return "✗", m.styles.SlotBlockedStyle
	}
}

// isSpillover reports whether the unavailable slot at row is covered by an
// earlier booking's duration rather than blocked by hand.
func isSpillover(day schedule.DaySchedule, row int) bool {
	for r := row - 1; r >= 0; r-- {
		slot := day.Slots[r]
		if !slot.Occupied() {
			continue
		}
		return row-r < salon.SlotsNeeded(slot.Customer.Service.Duration)
	}
	return false
}

func (m Model) renderForm() string {
	var lines []string
	lines = append(lines, m.styles.ModalTitleStyle.Render("Customer details"))
	lines = append(lines, "")
	lines = append(lines, m.styles.ModalLabelStyle.Render("Name"))
	lines = append(lines, m.nameInput.View())
	lines = append(lines, "")
	lines = append(lines, m.styles.ModalLabelStyle.Render("Phone"))
	lines = append(lines, m.phoneInput.View())
	return m.styles.ModalStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderConfirm() string {
	slot := m.cursorSlot()
	timeLabel := ""
	if slot != nil {
		timeLabel = slot.Time
	}

	var lines []string
	lines = append(lines, m.styles.ModalTitleStyle.Render("Confirm booking"))
	lines = append(lines, "")
	lines = append(lines, m.confirmLine("When", fmt.Sprintf("%s %s", m.cursorDate(), timeLabel)))
	lines = append(lines, m.confirmLine("Service", fmt.Sprintf("%s (%s)", m.selService.Name, salon.FormatDuration(m.selService.Duration))))
	lines = append(lines, m.confirmLine("Staff", m.selStaff.Name))
	lines = append(lines, m.confirmLine("Price", salon.FormatPrice(m.selService.Price)))
	lines = append(lines, m.confirmLine("Name", m.nameInput.Value()))
	lines = append(lines, m.confirmLine("Phone", m.phoneInput.Value()))
	lines = append(lines, "")
	lines = append(lines, m.styles.ModalHintStyle.Render("enter confirm · esc back"))
	return m.styles.ModalStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderDone() string {
	if m.booked == nil {
		return ""
	}
	res := *m.booked

	var lines []string
	lines = append(lines, m.styles.ModalTitleStyle.Render("Booking confirmed!"))
	lines = append(lines, "")
	lines = append(lines, m.confirmLine("Reservation", "#"+res.ID))
	lines = append(lines, m.confirmLine("When", fmt.Sprintf("%s %s", res.Date, res.Time)))
	lines = append(lines, m.confirmLine("Service", res.Customer.Service.Name))
	lines = append(lines, m.confirmLine("Staff", res.Customer.Staff.Name))
	lines = append(lines, m.confirmLine("Price", salon.FormatPrice(res.Customer.Service.Price)))
	lines = append(lines, "")
	lines = append(lines, m.styles.ModalHintStyle.Render("c copy · n new booking · q quit"))
	return m.styles.ModalStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) confirmLine(label, value string) string {
	return m.styles.ModalLabelStyle.Render(fmt.Sprintf("%-12s", label)) +
		m.styles.ModalValueStyle.Render(value)
}

func (m Model) renderFooter() string {
	var b strings.Builder
	if m.statusMsg != "" {
		style := m.styles.StatusStyle
		if m.statusWarn {
			style = m.styles.WarningStyle
		}
		b.WriteString(style.Render(m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.HelpStyle.Render(m.helpText()))
	return b.String()
}

func (m Model) helpText() string {
	switch m.step {
	case stepStaff:
		return "↑/↓ move · enter select · q quit"
	case stepService:
		return "↑/↓ move · enter select · esc back · q quit"
	case stepGrid:
		if m.pending != pendingNone {
			return "y confirm · any other key cancel"
		}
		week := fmt.Sprintf("week %d/%d", m.week+1, weekCount)
		if m.admin {
			return week + " · ←↑↓→ move · tab week · t toggle · G regenerate · R reset · enter inspect · q quit"
		}
		return week + " · ←↑↓→ move · tab week · enter pick slot · esc back · q quit"
	case stepForm:
		return "tab next field · enter continue · esc back"
	case stepConfirm:
		return "enter confirm · esc back · q quit"
	case stepDone:
		return "c copy · n new booking · q quit"
	}
	return ""
}

// confirmationText builds the plain-text booking summary placed on the
// clipboard.
func confirmationText(salonName string, res salon.Reservation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", salonName)
	fmt.Fprintf(&b, "Reservation #%s\n", res.ID)
	fmt.Fprintf(&b, "%s at %s\n", res.Date, res.Time)
	fmt.Fprintf(&b, "%s with %s (%s)\n",
		res.Customer.Service.Name, res.Customer.Staff.Name,
		salon.FormatDuration(res.Customer.Service.Duration))
	fmt.Fprintf(&b, "%s\n", salon.FormatPrice(res.Customer.Service.Price))
	fmt.Fprintf(&b, "Booked for %s (%s)\n", res.Customer.Name, res.Customer.Phone)
	return b.String()
}

// truncate shortens s to at most width runes.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
