// Package tui provides the terminal user interface for esmalte.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/esmalte/internal/catalog"
	"github.com/javiermolinar/esmalte/internal/config"
	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/schedule"
	"github.com/javiermolinar/esmalte/internal/tui/theme"
)

// step identifies the screen the model is showing.
type step int

const (
	stepStaff   step = iota // pick a staff member
	stepService             // pick a service from their menu
	stepGrid                // pick an open slot in the week grid
	stepForm                // enter name and phone
	stepConfirm             // review and confirm the booking
	stepDone                // booking confirmed
)

// Position is a cursor position in the week grid.
type Position struct {
	Day int // 0..6 within the visible week
	Row int // 0..SlotsPerDay-1, row 0 is opening hour
}

// weekCount is the number of week pages the booking window spans.
const weekCount = (salon.HorizonDays + 6) / 7

// pendingAction is a destructive admin action awaiting confirmation.
type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingRegenerate
	pendingReset
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	engine  *schedule.Engine
	catalog *catalog.Catalog
	config  *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Admin mode: grid management instead of the customer booking flow
	admin bool

	// State
	step    step
	week    int // visible week page, 0..weekCount-1
	days    []schedule.DaySchedule
	cursor  Position
	pending pendingAction

	// Picker state
	staff    []salon.Staff
	staffIdx int
	services []salon.Service
	svcIdx   int

	selStaff   salon.Staff
	selService salon.Service

	// Booking form
	nameInput  textinput.Model
	phoneInput textinput.Model
	formFocus  int

	// Confirmed booking, set on stepDone
	booked *salon.Reservation

	// Footer message, cleared on the next keypress
	statusMsg  string
	statusWarn bool

	// Terminal dimensions
	width  int
	height int

	err error
}

// New creates a new TUI model.
func New(engine *schedule.Engine, cat *catalog.Catalog, cfg *config.Config, admin bool) Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("frappe")
	}
	styles := NewStyles(t)

	nameInput := textinput.New()
	nameInput.Placeholder = "Customer name"
	nameInput.CharLimit = 64
	nameInput.Width = 32
	nameInput.TextStyle = styles.InputTextStyle
	nameInput.PlaceholderStyle = styles.InputPlaceholderStyle
	nameInput.Cursor.Style = styles.InputCursorStyle

	phoneInput := textinput.New()
	phoneInput.Placeholder = "Phone number"
	phoneInput.CharLimit = 20
	phoneInput.Width = 32
	phoneInput.TextStyle = styles.InputTextStyle
	phoneInput.PlaceholderStyle = styles.InputPlaceholderStyle
	phoneInput.Cursor.Style = styles.InputCursorStyle

	m := &Model{
		engine:     engine,
		catalog:    cat,
		config:     cfg,
		theme:      t,
		styles:     styles,
		admin:      admin,
		staff:      cat.Staff(),
		nameInput:  nameInput,
		phoneInput: phoneInput,
	}
	m.days = engine.Days(0, 7)

	if admin {
		m.step = stepGrid
	}
	return *m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// setWeek moves to another week page and reloads its day schedules.
func (m *Model) setWeek(week int) {
	if week < 0 || week >= weekCount {
		return
	}
	m.week = week
	m.reloadDays()
	if m.cursor.Day >= len(m.days) {
		m.cursor.Day = len(m.days) - 1
	}
}

// reloadDays refreshes the visible week from the engine.
func (m *Model) reloadDays() {
	m.days = m.engine.Days(m.week*7, 7)
}

// cursorSlot returns the slot under the cursor, or nil when the cursor is
// outside the loaded window.
func (m *Model) cursorSlot() *schedule.Slot {
	if m.cursor.Day < 0 || m.cursor.Day >= len(m.days) {
		return nil
	}
	day := m.days[m.cursor.Day]
	if m.cursor.Row < 0 || m.cursor.Row >= len(day.Slots) {
		return nil
	}
	return &day.Slots[m.cursor.Row]
}

// cursorDate returns the date of the day under the cursor.
func (m *Model) cursorDate() string {
	if m.cursor.Day < 0 || m.cursor.Day >= len(m.days) {
		return ""
	}
	return m.days[m.cursor.Day].Date
}

// setStatus sets the footer message.
func (m *Model) setStatus(msg string, warn bool) {
	m.statusMsg = msg
	m.statusWarn = warn
}

// resetFlow returns to the start of the customer booking flow.
func (m *Model) resetFlow() {
	m.step = stepStaff
	m.staffIdx = 0
	m.svcIdx = 0
	m.selStaff = salon.Staff{}
	m.selService = salon.Service{}
	m.booked = nil
	m.formFocus = 0
	m.nameInput.SetValue("")
	m.phoneInput.SetValue("")
	m.nameInput.Blur()
	m.phoneInput.Blur()
	m.setWeek(0)
	m.cursor = Position{}
}

// Run starts the TUI.
func Run(engine *schedule.Engine, cat *catalog.Catalog, cfg *config.Config, admin bool) error {
	model := New(engine, cat, cfg, admin)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
