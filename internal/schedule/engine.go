package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/store"
)

// ErrSlotNotFound is returned when a date or time falls outside the grid.
var ErrSlotNotFound = errors.New("no such slot in the schedule")

// conflictDurations is the probe set used by the conflict analyzer. It
// matches the discrete durations offered on the menu, not every possible
// duration.
var conflictDurations = []int{60, 90, 120}

// Engine owns the schedule grid, the reservation log, and the time request
// log. All state changes go through its methods; reads return copies so
// callers never hold references into engine state.
//
// Every operation holds the engine mutex. The underlying store is
// last-writer-wins with no cross-key transactions, so a crash between
// saving the reservation log and saving the grid can leave the two
// inconsistent. Within one process the mutex keeps every mutation atomic.
type Engine struct {
	mu    sync.Mutex
	store store.Store
	now   func() time.Time

	grid         Grid
	reservations []salon.Reservation
	requests     []salon.TimeRequest
	lastID       int64 // last issued reservation ID, guards same-millisecond bookings
}

// Option configures an Engine.
type Option func(*Engine)

// WithNow overrides the engine clock. Used by tests to pin the grid start.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine backed by the given store, restoring any persisted
// state. A missing or unparseable snapshot is replaced by a fresh one: a
// new all-available grid for schedules, an empty log for reservations and
// time requests.
func New(ctx context.Context, st store.Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		store: st,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.loadGrid(ctx); err != nil {
		return nil, err
	}
	if err := loadLog(ctx, st, store.KeyReservations, &e.reservations); err != nil {
		return nil, err
	}
	if err := loadLog(ctx, st, store.KeyTimeRequests, &e.requests); err != nil {
		return nil, err
	}
	return e, nil
}

// loadGrid restores the persisted grid or generates and persists a fresh
// one when no usable snapshot exists.
func (e *Engine) loadGrid(ctx context.Context) error {
	data, err := e.store.Load(ctx, store.KeySchedules)
	if err == nil {
		var grid Grid
		if jsonErr := json.Unmarshal(data, &grid); jsonErr == nil && len(grid) > 0 {
			e.grid = grid
			return nil
		}
		// Corrupt snapshot: fall through and regenerate.
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("loading schedules: %w", err)
	}

	e.grid = NewGrid(e.now())
	return e.saveGrid(ctx)
}

// loadLog restores a persisted log into dst, leaving it empty when the
// snapshot is missing or unparseable.
func loadLog[T any](ctx context.Context, st store.Store, key string, dst *[]T) error {
	data, err := st.Load(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if jsonErr := json.Unmarshal(data, dst); jsonErr != nil {
		*dst = nil
	}
	return nil
}

func (e *Engine) saveGrid(ctx context.Context) error {
	data, err := json.Marshal(e.grid)
	if err != nil {
		return fmt.Errorf("encoding schedules: %w", err)
	}
	if err := e.store.Save(ctx, store.KeySchedules, data); err != nil {
		return fmt.Errorf("saving schedules: %w", err)
	}
	return nil
}

func (e *Engine) saveReservations(ctx context.Context) error {
	data, err := json.Marshal(e.reservations)
	if err != nil {
		return fmt.Errorf("encoding reservations: %w", err)
	}
	if err := e.store.Save(ctx, store.KeyReservations, data); err != nil {
		return fmt.Errorf("saving reservations: %w", err)
	}
	return nil
}

func (e *Engine) saveRequests(ctx context.Context) error {
	data, err := json.Marshal(e.requests)
	if err != nil {
		return fmt.Errorf("encoding time requests: %w", err)
	}
	if err := e.store.Save(ctx, store.KeyTimeRequests, data); err != nil {
		return fmt.Errorf("saving time requests: %w", err)
	}
	return nil
}

// Today returns the first day of the booking window.
func (e *Engine) Today() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, err := time.Parse(salon.DateFormat, e.grid[0].Date)
	if err != nil {
		return e.now()
	}
	return t
}

// Grid returns a deep copy of the current schedule grid.
func (e *Engine) Grid() Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.clone()
}

// Day returns a copy of the day schedule for the given date. The second
// return value is false when the date is outside the grid window.
func (e *Engine) Day(date string) (DaySchedule, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	day := e.grid.Day(date)
	if day == nil {
		return DaySchedule{}, false
	}
	copied := Grid{*day}.clone()
	return copied[0], true
}

// Days returns copies of up to count day schedules starting at the given
// offset into the grid. Used by the TUI to page through the window one
// week at a time.
func (e *Engine) Days(offset, count int) []DaySchedule {
	e.mu.Lock()
	defer e.mu.Unlock()
	if offset < 0 || offset >= len(e.grid) {
		return nil
	}
	end := offset + count
	if end > len(e.grid) {
		end = len(e.grid)
	}
	return e.grid[offset:end].clone()
}

// CanBook reports whether a service of the given duration can start at
// startTime ("HH:MM") on the given date. It requires every slot in the
// span [startHour, startHour+ceil(duration/60)) to exist and be available;
// a span that runs past closing time is never bookable.
func (e *Engine) CanBook(startTime string, durationMinutes int, date string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canBook(startTime, durationMinutes, date)
}

func (e *Engine) canBook(startTime string, durationMinutes int, date string) bool {
	needed := salon.SlotsNeeded(durationMinutes)
	if needed == 0 {
		return false
	}
	hour := salon.ParseHour(startTime)
	if hour < 0 {
		return false
	}
	day := e.grid.Day(date)
	if day == nil {
		return false
	}
	for i := 0; i < needed; i++ {
		slot := day.Slot(hour + i)
		if slot == nil || !slot.Available {
			return false
		}
	}
	return true
}

// Conflict describes a booking window that cannot be satisfied because the
// analyzed slot sits inside its span.
type Conflict struct {
	Time     string // start time of the affected window, "HH:MM"
	Duration int    // minutes
}

// Conflicts enumerates which standard-duration bookings starting earlier
// the same day are broken by the slot at targetTime. For each probe
// duration it tests every start hour whose span would cover the target
// slot and reports the ones that fail the availability predicate. Called
// on unavailable slots to explain their blast radius.
func (e *Engine) Conflicts(targetTime, date string) []Conflict {
	e.mu.Lock()
	defer e.mu.Unlock()

	targetHour := salon.ParseHour(targetTime)
	if targetHour < 0 {
		return nil
	}

	var conflicts []Conflict
	for _, duration := range conflictDurations {
		needed := salon.SlotsNeeded(duration)
		for i := 1; i < needed; i++ {
			startHour := targetHour - i
			if startHour < salon.OpenHour {
				continue
			}
			startTime := salon.HourLabel(startHour)
			if !e.canBook(startTime, duration, date) {
				conflicts = append(conflicts, Conflict{Time: startTime, Duration: duration})
			}
		}
	}
	return conflicts
}

// Book commits a booking: it appends a reservation to the log, occupies
// the starting slot with the customer record, and blocks the remaining
// slots consumed by the service duration as spillover (unavailable, no
// occupant). The availability predicate is re-checked internally; a caller
// that skipped the check gets ErrSlotUnavailable instead of corrupted
// state.
func (e *Engine) Book(ctx context.Context, date, startTime string, customer salon.Customer) (salon.Reservation, error) {
	if err := customer.Validate(); err != nil {
		return salon.Reservation{}, fmt.Errorf("invalid booking: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.canBook(startTime, customer.Service.Duration, date) {
		return salon.Reservation{}, fmt.Errorf("%s %s on %s: %w",
			customer.Service.Name, startTime, date, salon.ErrSlotUnavailable)
	}

	day := e.grid.Day(date)
	hour := salon.ParseHour(startTime)
	needed := salon.SlotsNeeded(customer.Service.Duration)

	res := salon.Reservation{
		ID:       e.nextID(),
		Date:     date,
		Time:     startTime,
		Customer: customer,
	}
	e.reservations = append(e.reservations, res)
	if err := e.saveReservations(ctx); err != nil {
		e.reservations = e.reservations[:len(e.reservations)-1]
		return salon.Reservation{}, err
	}

	occupant := customer
	start := day.Slot(hour)
	start.Available = false
	start.Customer = &occupant

	var spilled []*Slot
	for i := 1; i < needed; i++ {
		slot := day.Slot(hour + i)
		if slot != nil && slot.Available && slot.Customer == nil {
			slot.Available = false
			spilled = append(spilled, slot)
		}
	}

	if err := e.saveGrid(ctx); err != nil {
		// The reservation is already persisted; reopen the slots so the
		// in-memory grid matches what a restart would reconstruct.
		start.Available = true
		start.Customer = nil
		for _, slot := range spilled {
			slot.Available = true
		}
		return salon.Reservation{}, err
	}
	return res, nil
}

// nextID issues a millisecond-epoch reservation ID, bumping it past the
// previously issued one when two bookings land in the same millisecond.
func (e *Engine) nextID() string {
	id := e.now().UnixMilli()
	if id <= e.lastID {
		id = e.lastID + 1
	}
	e.lastID = id
	return strconv.FormatInt(id, 10)
}

// ToggleAvailability flips the availability of the slot at the given date
// and time. Occupied slots are left untouched. Returns a copy of the slot
// after the operation.
func (e *Engine) ToggleAvailability(ctx context.Context, date, timeLabel string) (Slot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	day := e.grid.Day(date)
	slot := day.Slot(salon.ParseHour(timeLabel))
	if slot == nil {
		return Slot{}, fmt.Errorf("%s %s: %w", date, timeLabel, ErrSlotNotFound)
	}
	if slot.Occupied() {
		return snapshot(slot), nil
	}

	slot.Available = !slot.Available
	if err := e.saveGrid(ctx); err != nil {
		slot.Available = !slot.Available
		return Slot{}, err
	}
	return snapshot(slot), nil
}

func snapshot(s *Slot) Slot {
	out := *s
	if s.Customer != nil {
		c := *s.Customer
		out.Customer = &c
	}
	return out
}

// RegenerateGrid discards the current grid and builds a fresh all-available
// one starting today. Reservation and time request logs are untouched.
func (e *Engine) RegenerateGrid(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grid = NewGrid(e.now())
	return e.saveGrid(ctx)
}

// ResetAll wipes everything as a single operation: reservations, time
// requests, and the grid, which is rebuilt fresh. Irreversible; the
// caller is responsible for confirming first.
func (e *Engine) ResetAll(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reservations = nil
	e.requests = nil
	e.grid = NewGrid(e.now())

	if err := e.saveReservations(ctx); err != nil {
		return err
	}
	if err := e.saveRequests(ctx); err != nil {
		return err
	}
	return e.saveGrid(ctx)
}

// Reservations returns a copy of the booking log in insertion order.
func (e *Engine) Reservations() []salon.Reservation {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]salon.Reservation, len(e.reservations))
	copy(out, e.reservations)
	return out
}

// ReservationsOn returns the reservations for a single date.
func (e *Engine) ReservationsOn(date string) []salon.Reservation {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []salon.Reservation
	for _, r := range e.reservations {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// Complete marks a reservation as done and records the treatment note.
func (e *Engine) Complete(ctx context.Context, id, note string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.reservations {
		if e.reservations[i].ID == id {
			e.reservations[i].Completed = true
			e.reservations[i].ServiceNote = note
			return e.saveReservations(ctx)
		}
	}
	return fmt.Errorf("reservation %s: %w", id, salon.ErrReservationNotFound)
}

// SubmitRequest appends a customer time request to the log. The engine
// assigns the identifier, creation time, and pending status.
func (e *Engine) SubmitRequest(ctx context.Context, req salon.TimeRequest) (salon.TimeRequest, error) {
	if err := req.Validate(); err != nil {
		return salon.TimeRequest{}, fmt.Errorf("invalid time request: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	req.ID = strconv.FormatInt(e.now().UnixMilli(), 10)
	req.CreatedAt = e.now()
	req.Status = salon.StatusPending

	e.requests = append(e.requests, req)
	if err := e.saveRequests(ctx); err != nil {
		e.requests = e.requests[:len(e.requests)-1]
		return salon.TimeRequest{}, err
	}
	return req, nil
}

// Requests returns a copy of the time request log in insertion order.
func (e *Engine) Requests() []salon.TimeRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]salon.TimeRequest, len(e.requests))
	copy(out, e.requests)
	return out
}

// PendingRequests returns the requests still awaiting a response.
func (e *Engine) PendingRequests() []salon.TimeRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []salon.TimeRequest
	for _, r := range e.requests {
		if r.IsPending() {
			out = append(out, r)
		}
	}
	return out
}

// UpdateRequestStatus moves a time request through its lifecycle and
// optionally records admin notes.
func (e *Engine) UpdateRequestStatus(ctx context.Context, id string, status salon.RequestStatus, adminNotes string) error {
	if !status.Valid() {
		return fmt.Errorf("%q: %w", status, salon.ErrInvalidStatus)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.requests {
		if e.requests[i].ID == id {
			e.requests[i].Status = status
			if adminNotes != "" {
				e.requests[i].AdminNotes = adminNotes
			}
			return e.saveRequests(ctx)
		}
	}
	return fmt.Errorf("time request %s: %w", id, salon.ErrRequestNotFound)
}

// Stats summarizes engine state for the admin dashboard.
type Stats struct {
	Reservations    int
	Completed       int
	PendingRequests int
	AvailableSlots  int
}

// Stats returns current dashboard counts.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	var st Stats
	st.Reservations = len(e.reservations)
	for _, r := range e.reservations {
		if r.Completed {
			st.Completed++
		}
	}
	for _, r := range e.requests {
		if r.IsPending() {
			st.PendingRequests++
		}
	}
	for _, day := range e.grid {
		for _, slot := range day.Slots {
			if slot.Available {
				st.AvailableSlots++
			}
		}
	}
	return st
}
