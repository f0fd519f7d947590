package schedule

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/store"
)

// testClock returns a now func pinned to the morning of 2026-09-07 that
// advances one millisecond per call, so generated identifiers stay unique.
func testClock() func() time.Time {
	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}
}

func newTestStore(t *testing.T) *store.SQLite {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "esmalte.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(context.Background(), newTestStore(t), WithNow(testClock()))
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	return e
}

func testCustomer(duration int) salon.Customer {
	return salon.Customer{
		Name:  "Aiko Watanabe",
		Phone: "090-1234-5678",
		Service: salon.Service{
			ID:       "2",
			Name:     "Design Nail",
			Duration: duration,
			Price:    7000,
			StaffID:  "1",
		},
		Staff: salon.Staff{ID: "1", Name: "Tanaka", ServiceIDs: []string{"1", "2"}},
	}
}

func fullyAvailable(g Grid) bool {
	for _, day := range g {
		for _, slot := range day.Slots {
			if !slot.Available || slot.Customer != nil {
				return false
			}
		}
	}
	return true
}

func TestNew_GeneratesAndPersistsFreshGrid(t *testing.T) {
	st := newTestStore(t)
	e, err := New(context.Background(), st, WithNow(testClock()))
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}

	grid := e.Grid()
	if len(grid) != salon.HorizonDays {
		t.Fatalf("got %d days, want %d", len(grid), salon.HorizonDays)
	}
	if grid[0].Date != "2026-09-07" {
		t.Errorf("first date: got %s, want 2026-09-07", grid[0].Date)
	}
	if !fullyAvailable(grid) {
		t.Error("fresh grid should be fully available")
	}

	// The fresh grid must be written through to the store.
	if _, err := st.Load(context.Background(), store.KeySchedules); err != nil {
		t.Errorf("schedules not persisted: %v", err)
	}
}

func TestNew_LoadsExistingGrid(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := New(ctx, st, WithNow(testClock()))
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	if _, err := first.Book(ctx, "2026-09-08", "10:00", testCustomer(60)); err != nil {
		t.Fatalf("booking: %v", err)
	}

	// A second engine on the same store must restore, not regenerate.
	second, err := New(ctx, st, WithNow(testClock()))
	if err != nil {
		t.Fatalf("creating second engine: %v", err)
	}
	if !reflect.DeepEqual(first.Grid(), second.Grid()) {
		t.Error("reloaded grid differs from the one that was saved")
	}
	if len(second.Reservations()) != 1 {
		t.Errorf("got %d reservations after reload, want 1", len(second.Reservations()))
	}
}

func TestNew_CorruptSnapshotRegenerates(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.Save(ctx, store.KeySchedules, []byte("{not json")); err != nil {
		t.Fatalf("seeding corrupt snapshot: %v", err)
	}
	if err := st.Save(ctx, store.KeyReservations, []byte("also garbage")); err != nil {
		t.Fatalf("seeding corrupt log: %v", err)
	}

	e, err := New(ctx, st, WithNow(testClock()))
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	if len(e.Grid()) != salon.HorizonDays {
		t.Errorf("got %d days, want %d", len(e.Grid()), salon.HorizonDays)
	}
	if len(e.Reservations()) != 0 {
		t.Errorf("got %d reservations, want 0", len(e.Reservations()))
	}
}

func TestCanBook(t *testing.T) {
	e := newTestEngine(t)
	day := "2026-09-08"

	tests := []struct {
		name     string
		time     string
		duration int
		date     string
		want     bool
	}{
		{"60 min fills one slot", "10:00", 60, day, true},
		{"60 min at closing hour", "22:00", 60, day, true},
		{"90 min needs two slots", "21:00", 90, day, true},
		{"90 min at closing hour runs past closing", "22:00", 90, day, false},
		{"120 min needs two slots", "21:00", 120, day, true},
		{"150 min at 21:00 runs past closing", "21:00", 150, day, false},
		{"150 min needs three slots", "20:00", 150, day, true},
		{"before opening", "09:00", 60, day, false},
		{"date outside window", "10:00", 60, "2027-01-01", false},
		{"malformed time", "noon", 60, day, false},
		{"zero duration", "10:00", 0, day, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CanBook(tt.time, tt.duration, tt.date); got != tt.want {
				t.Errorf("CanBook(%s, %d, %s) = %v, want %v", tt.time, tt.duration, tt.date, got, tt.want)
			}
		})
	}
}

func TestBook_SpilloverBlocksFollowingSlot(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	day := "2026-09-08"

	res, err := e.Book(ctx, day, "10:00", testCustomer(90))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if res.Date != day || res.Time != "10:00" {
		t.Errorf("reservation at %s %s, want %s 10:00", res.Date, res.Time, day)
	}

	sched, ok := e.Day(day)
	if !ok {
		t.Fatalf("day %s missing from grid", day)
	}

	start := sched.Slot(10)
	if start.Available || start.Customer == nil {
		t.Errorf("start slot: available=%v occupant=%v, want occupied and unavailable", start.Available, start.Customer)
	}
	if start.Customer.Name != "Aiko Watanabe" {
		t.Errorf("occupant name: got %s", start.Customer.Name)
	}

	spill := sched.Slot(11)
	if spill.Available {
		t.Error("11:00 should be blocked by the 90 min booking")
	}
	if spill.Customer != nil {
		t.Error("spillover slot must not carry an occupant")
	}

	free := sched.Slot(12)
	if !free.Available {
		t.Error("12:00 should remain available after a 90 min booking at 10:00")
	}
}

// Occupied slots are never marked available, anywhere in the grid.
func TestBook_OccupantImpliesUnavailable(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	bookings := []struct {
		date, time string
		duration   int
	}{
		{"2026-09-08", "10:00", 90},
		{"2026-09-08", "14:00", 60},
		{"2026-09-10", "21:00", 120},
	}
	for _, b := range bookings {
		if _, err := e.Book(ctx, b.date, b.time, testCustomer(b.duration)); err != nil {
			t.Fatalf("booking %s %s: %v", b.date, b.time, err)
		}
	}

	for _, day := range e.Grid() {
		for _, slot := range day.Slots {
			if slot.Customer != nil && slot.Available {
				t.Errorf("%s %s: occupied slot marked available", day.Date, slot.Time)
			}
		}
	}
}

func TestBook_DoubleBookingRejected(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	day := "2026-09-08"

	if _, err := e.Book(ctx, day, "10:00", testCustomer(60)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := e.Book(ctx, day, "10:00", testCustomer(60))
	if !errors.Is(err, salon.ErrSlotUnavailable) {
		t.Errorf("second booking: got %v, want ErrSlotUnavailable", err)
	}
	if len(e.Reservations()) != 1 {
		t.Errorf("got %d reservations, want 1", len(e.Reservations()))
	}
}

func TestBook_OverlappingRangeRejected(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	day := "2026-09-08"

	// 120 min at 11:00 spans 11:00 and 12:00.
	if _, err := e.Book(ctx, day, "11:00", testCustomer(120)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// 90 min at 10:00 would need 11:00, which is now spillover-blocked.
	_, err := e.Book(ctx, day, "10:00", testCustomer(90))
	if !errors.Is(err, salon.ErrSlotUnavailable) {
		t.Errorf("overlapping booking: got %v, want ErrSlotUnavailable", err)
	}
}

// failingStore passes writes through until armed, then rejects saves of
// one key.
type failingStore struct {
	store.Store
	failKey string
}

func (s *failingStore) Save(ctx context.Context, key string, value []byte) error {
	if s.failKey != "" && key == s.failKey {
		return errors.New("disk full")
	}
	return s.Store.Save(ctx, key, value)
}

func TestBook_GridSaveFailureReopensSlots(t *testing.T) {
	ctx := context.Background()
	st := &failingStore{Store: newTestStore(t)}
	e, err := New(ctx, st, WithNow(testClock()))
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}

	st.failKey = store.KeySchedules
	if _, err := e.Book(ctx, "2026-09-08", "14:00", testCustomer(90)); err == nil {
		t.Fatal("expected the booking to fail")
	}

	// The reservation write succeeded before the grid write failed, so the
	// log keeps it and the grid stays open, matching what a restart from
	// the store would reconstruct.
	day, ok := e.Day("2026-09-08")
	if !ok {
		t.Fatal("day missing from engine")
	}
	for _, hour := range []int{14, 15} {
		slot := day.Slot(hour)
		if slot == nil || !slot.Available || slot.Customer != nil {
			t.Errorf("slot %d:00 should be open after the failed save", hour)
		}
	}
	if got := len(e.Reservations()); got != 1 {
		t.Errorf("got %d reservations, want 1", got)
	}
}

func TestBook_SameMillisecondKeepsIDsUnique(t *testing.T) {
	ctx := context.Background()
	frozen := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	e, err := New(ctx, newTestStore(t), WithNow(func() time.Time { return frozen }))
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}

	first, err := e.Book(ctx, "2026-09-08", "10:00", testCustomer(60))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	second, err := e.Book(ctx, "2026-09-08", "12:00", testCustomer(60))
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	if first.ID == second.ID {
		t.Fatalf("both bookings got ID %s", first.ID)
	}
	want := strconv.FormatInt(frozen.UnixMilli()+1, 10)
	if second.ID != want {
		t.Errorf("second ID = %s, want %s", second.ID, want)
	}
}

func TestBook_InvalidCustomer(t *testing.T) {
	e := newTestEngine(t)

	c := testCustomer(60)
	c.Name = "  "
	_, err := e.Book(context.Background(), "2026-09-08", "10:00", c)
	if !errors.Is(err, salon.ErrEmptyName) {
		t.Errorf("got %v, want ErrEmptyName", err)
	}
	if len(e.Reservations()) != 0 {
		t.Error("invalid booking must not reach the log")
	}
}

func TestToggleAvailability(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	day := "2026-09-08"

	slot, err := e.ToggleAvailability(ctx, day, "15:00")
	if err != nil {
		t.Fatalf("toggling: %v", err)
	}
	if slot.Available {
		t.Error("slot should be disabled after first toggle")
	}

	slot, err = e.ToggleAvailability(ctx, day, "15:00")
	if err != nil {
		t.Fatalf("toggling back: %v", err)
	}
	if !slot.Available {
		t.Error("slot should be available after second toggle")
	}

	// Toggling must not cascade to neighbors.
	sched, _ := e.Day(day)
	if !sched.Slot(14).Available || !sched.Slot(16).Available {
		t.Error("toggle must not affect neighboring slots")
	}
}

func TestToggleAvailability_OccupiedIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	day := "2026-09-08"

	if _, err := e.Book(ctx, day, "10:00", testCustomer(60)); err != nil {
		t.Fatalf("booking: %v", err)
	}

	slot, err := e.ToggleAvailability(ctx, day, "10:00")
	if err != nil {
		t.Fatalf("toggling occupied slot: %v", err)
	}
	if slot.Available || slot.Customer == nil {
		t.Error("occupied slot must stay occupied and unavailable")
	}
}

func TestToggleAvailability_UnknownSlot(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.ToggleAvailability(context.Background(), "2027-01-01", "10:00"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("unknown date: got %v, want ErrSlotNotFound", err)
	}
	if _, err := e.ToggleAvailability(context.Background(), "2026-09-08", "23:00"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("hour outside business hours: got %v, want ErrSlotNotFound", err)
	}
}

func TestConflicts(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	day := "2026-09-08"

	// Disable 11:00; bookings starting at 10:00 that need two slots break.
	if _, err := e.ToggleAvailability(ctx, day, "11:00"); err != nil {
		t.Fatalf("toggling: %v", err)
	}

	got := e.Conflicts("11:00", day)
	want := []Conflict{
		{Time: "10:00", Duration: 90},
		{Time: "10:00", Duration: 120},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestConflicts_OpeningHourHasNoEarlierStarts(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	day := "2026-09-08"

	if _, err := e.ToggleAvailability(ctx, day, "10:00"); err != nil {
		t.Fatalf("toggling: %v", err)
	}
	if got := e.Conflicts("10:00", day); got != nil {
		t.Errorf("got %v, want nil: no booking can start before opening", got)
	}
}

func TestConflicts_CleanSlotReportsNothing(t *testing.T) {
	e := newTestEngine(t)

	if got := e.Conflicts("15:00", "2026-09-08"); got != nil {
		t.Errorf("got %v, want nil on a fully available day", got)
	}
}

func TestRegenerateGrid_PreservesReservations(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if _, err := e.Book(ctx, "2026-09-08", "10:00", testCustomer(90)); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := e.Book(ctx, "2026-09-09", "14:00", testCustomer(60)); err != nil {
		t.Fatalf("booking: %v", err)
	}

	if err := e.RegenerateGrid(ctx); err != nil {
		t.Fatalf("regenerating: %v", err)
	}

	if len(e.Reservations()) != 2 {
		t.Errorf("got %d reservations after regenerate, want 2", len(e.Reservations()))
	}
	if !fullyAvailable(e.Grid()) {
		t.Error("regenerated grid should be fully available")
	}
}

func TestResetAll(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if _, err := e.Book(ctx, "2026-09-08", "10:00", testCustomer(90)); err != nil {
		t.Fatalf("booking: %v", err)
	}
	req := salon.TimeRequest{
		CustomerName:  "Aiko Watanabe",
		CustomerPhone: "090-1234-5678",
		Staff:         salon.Staff{ID: "1", Name: "Tanaka"},
		Message:       "Evenings after 19:00 work best for me",
	}
	if _, err := e.SubmitRequest(ctx, req); err != nil {
		t.Fatalf("submitting request: %v", err)
	}

	if err := e.ResetAll(ctx); err != nil {
		t.Fatalf("resetting: %v", err)
	}

	if n := len(e.Reservations()); n != 0 {
		t.Errorf("got %d reservations after reset, want 0", n)
	}
	if n := len(e.Requests()); n != 0 {
		t.Errorf("got %d time requests after reset, want 0", n)
	}
	grid := e.Grid()
	if len(grid) != salon.HorizonDays || !fullyAvailable(grid) {
		t.Error("reset grid should cover the full window and be fully available")
	}
}

func TestGridRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := New(ctx, st, WithNow(testClock()))
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	if _, err := first.Book(ctx, "2026-09-08", "10:00", testCustomer(120)); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := first.ToggleAvailability(ctx, "2026-09-09", "18:00"); err != nil {
		t.Fatalf("toggling: %v", err)
	}

	second, err := New(ctx, st, WithNow(testClock()))
	if err != nil {
		t.Fatalf("reloading engine: %v", err)
	}
	if !reflect.DeepEqual(first.Grid(), second.Grid()) {
		t.Error("grid did not survive a store round trip")
	}
}

func TestComplete(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	res, err := e.Book(ctx, "2026-09-08", "10:00", testCustomer(60))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	if err := e.Complete(ctx, res.ID, "used gel base coat"); err != nil {
		t.Fatalf("completing: %v", err)
	}

	all := e.Reservations()
	if !all[0].Completed || all[0].ServiceNote != "used gel base coat" {
		t.Errorf("reservation not completed: %+v", all[0])
	}

	if err := e.Complete(ctx, "missing", ""); !errors.Is(err, salon.ErrReservationNotFound) {
		t.Errorf("got %v, want ErrReservationNotFound", err)
	}
}

func TestSubmitRequest(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	req, err := e.SubmitRequest(ctx, salon.TimeRequest{
		CustomerName:  "Aiko Watanabe",
		CustomerPhone: "090-1234-5678",
		Staff:         salon.Staff{ID: "1", Name: "Tanaka"},
		Message:       "Weekend mornings preferred",
	})
	if err != nil {
		t.Fatalf("submitting: %v", err)
	}
	if req.ID == "" {
		t.Error("request should get an identifier")
	}
	if req.Status != salon.StatusPending {
		t.Errorf("got status %s, want pending", req.Status)
	}
	if req.CreatedAt.IsZero() {
		t.Error("request should get a creation time")
	}

	// Missing message is rejected before touching the log.
	_, err = e.SubmitRequest(ctx, salon.TimeRequest{
		CustomerName:  "Aiko Watanabe",
		CustomerPhone: "090-1234-5678",
		Staff:         salon.Staff{ID: "1"},
	})
	if !errors.Is(err, salon.ErrEmptyMessage) {
		t.Errorf("got %v, want ErrEmptyMessage", err)
	}
	if len(e.Requests()) != 1 {
		t.Errorf("got %d requests, want 1", len(e.Requests()))
	}
}

func TestUpdateRequestStatus(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	req, err := e.SubmitRequest(ctx, salon.TimeRequest{
		CustomerName:  "Aiko Watanabe",
		CustomerPhone: "090-1234-5678",
		Staff:         salon.Staff{ID: "1", Name: "Tanaka"},
		Message:       "Weekend mornings preferred",
	})
	if err != nil {
		t.Fatalf("submitting: %v", err)
	}

	if err := e.UpdateRequestStatus(ctx, req.ID, salon.StatusContacted, "called 2026-09-08"); err != nil {
		t.Fatalf("updating: %v", err)
	}
	got := e.Requests()[0]
	if got.Status != salon.StatusContacted || got.AdminNotes != "called 2026-09-08" {
		t.Errorf("request not updated: %+v", got)
	}
	if len(e.PendingRequests()) != 0 {
		t.Error("contacted request should not count as pending")
	}

	if err := e.UpdateRequestStatus(ctx, req.ID, "rejected", ""); !errors.Is(err, salon.ErrInvalidStatus) {
		t.Errorf("got %v, want ErrInvalidStatus", err)
	}
	if err := e.UpdateRequestStatus(ctx, "missing", salon.StatusDeclined, ""); !errors.Is(err, salon.ErrRequestNotFound) {
		t.Errorf("got %v, want ErrRequestNotFound", err)
	}
}

func TestStats(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	res, err := e.Book(ctx, "2026-09-08", "10:00", testCustomer(90))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := e.Book(ctx, "2026-09-09", "14:00", testCustomer(60)); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if err := e.Complete(ctx, res.ID, ""); err != nil {
		t.Fatalf("completing: %v", err)
	}
	if _, err := e.SubmitRequest(ctx, salon.TimeRequest{
		CustomerName:  "Aiko Watanabe",
		CustomerPhone: "090-1234-5678",
		Staff:         salon.Staff{ID: "1"},
		Message:       "Weekend mornings preferred",
	}); err != nil {
		t.Fatalf("submitting request: %v", err)
	}

	got := e.Stats()
	// 90 min booking takes two slots, 60 min takes one.
	wantAvailable := salon.HorizonDays*salon.SlotsPerDay - 3
	want := Stats{Reservations: 2, Completed: 1, PendingRequests: 1, AvailableSlots: wantAvailable}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDays(t *testing.T) {
	e := newTestEngine(t)

	week := e.Days(0, 7)
	if len(week) != 7 {
		t.Fatalf("got %d days, want 7", len(week))
	}
	if week[0].Date != "2026-09-07" {
		t.Errorf("first day: got %s, want 2026-09-07", week[0].Date)
	}

	last := e.Days(28, 7)
	if len(last) != 2 {
		t.Errorf("final page: got %d days, want 2", len(last))
	}
	if e.Days(30, 7) != nil {
		t.Error("offset past the window should return nil")
	}
	if e.Days(-1, 7) != nil {
		t.Error("negative offset should return nil")
	}
}
