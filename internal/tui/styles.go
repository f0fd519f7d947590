// Package tui provides the terminal user interface for esmalte.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/esmalte/internal/tui/theme"
)

// Column width of one day in the week grid.
const defaultColWidth = 14

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title and headers
	TitleStyle          lipgloss.Style
	SubtitleStyle       lipgloss.Style
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Time column
	TimeColumnStyle lipgloss.Style

	// Slot cell styles
	SlotOpenStyle      lipgloss.Style
	SlotBookedStyle    lipgloss.Style
	SlotSpilloverStyle lipgloss.Style // Spillover hours of a multi-slot booking
	SlotBlockedStyle   lipgloss.Style
	CursorStyle        lipgloss.Style

	// List picker styles
	ListItemStyle     lipgloss.Style
	ListSelectedStyle lipgloss.Style
	ListDetailStyle   lipgloss.Style

	// Modal / form
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalLabelStyle lipgloss.Style
	ModalValueStyle lipgloss.Style
	ModalHintStyle  lipgloss.Style

	InputTextStyle        lipgloss.Style
	InputPlaceholderStyle lipgloss.Style
	InputCursorStyle      lipgloss.Style

	// Footer
	HelpStyle    lipgloss.Style
	StatusStyle  lipgloss.Style
	WarningStyle lipgloss.Style
	AdminStyle   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	s := &Styles{palette: p}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	s.SubtitleStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Fg).
		Width(defaultColWidth).
		Align(lipgloss.Center)

	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(p.TextOnToday).
		Background(p.Today)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Width(6).
		Align(lipgloss.Right).
		PaddingRight(1)

	cell := lipgloss.NewStyle().
		Width(defaultColWidth).
		Align(lipgloss.Center)

	s.SlotOpenStyle = cell.
		Foreground(p.TextOnOpen).
		Background(p.OpenBg)

	s.SlotBookedStyle = cell.
		Foreground(p.TextOnBooked).
		Background(p.BookedBg)

	s.SlotSpilloverStyle = cell.
		Foreground(p.TextOnBooked).
		Background(p.BookedBgAlt)

	s.SlotBlockedStyle = cell.
		Foreground(p.TextOnBlocked).
		Background(p.BlockedBg)

	s.CursorStyle = cell.
		Bold(true).
		Foreground(p.TextOnAccent).
		Background(p.Accent)

	s.ListItemStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		PaddingLeft(2)

	s.ListSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		PaddingLeft(2)

	s.ListDetailStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		PaddingLeft(4)

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Modal.Border).
		Background(p.Modal.Bg).
		Padding(1, 2)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Modal.Highlight).
		Background(p.Modal.Bg)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Muted).
		Background(p.Modal.Bg)

	s.ModalValueStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Text).
		Background(p.Modal.Bg)

	s.ModalHintStyle = lipgloss.NewStyle().
		Faint(true).
		Foreground(p.Modal.Muted).
		Background(p.Modal.Bg)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Text)

	s.InputPlaceholderStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Muted)

	s.InputCursorStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Highlight)

	s.HelpStyle = lipgloss.NewStyle().
		Faint(true).
		Foreground(p.FgMuted)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Open)

	s.WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)

	s.AdminStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnWarning).
		Background(p.Warning).
		Padding(0, 1)

	return s
}
