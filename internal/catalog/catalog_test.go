package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/store"
)

func newTestCatalog(t *testing.T) (*Catalog, *store.SQLite) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "esmalte.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	c, err := New(context.Background(), st)
	if err != nil {
		t.Fatalf("creating catalog: %v", err)
	}
	return c, st
}

func TestNew_SeedsSampleRoster(t *testing.T) {
	c, _ := newTestCatalog(t)

	if got := len(c.Staff()); got != 3 {
		t.Errorf("got %d staff, want 3", got)
	}
	if got := len(c.Services()); got != 5 {
		t.Errorf("got %d services, want 5", got)
	}

	svc, err := c.ServiceByID("2")
	if err != nil {
		t.Fatalf("looking up service: %v", err)
	}
	if svc.Name != "Design Nail" || svc.Duration != 90 || svc.Price != 7000 {
		t.Errorf("unexpected seed service: %+v", svc)
	}
}

func TestNew_LoadsPersistedCatalog(t *testing.T) {
	c, st := newTestCatalog(t)
	ctx := context.Background()

	added, err := c.AddStaff(ctx, "Suzuki", []string{"1"})
	if err != nil {
		t.Fatalf("adding staff: %v", err)
	}

	reloaded, err := New(ctx, st)
	if err != nil {
		t.Fatalf("reloading catalog: %v", err)
	}
	if _, err := reloaded.StaffByID(added.ID); err != nil {
		t.Errorf("added staff missing after reload: %v", err)
	}
	if got := len(reloaded.Staff()); got != 4 {
		t.Errorf("got %d staff after reload, want 4", got)
	}
}

func TestServicesFor(t *testing.T) {
	c, _ := newTestCatalog(t)

	tests := []struct {
		staffID string
		want    []string
	}{
		{"1", []string{"Simple Nail", "Design Nail", "Gel Nail"}},
		{"2", []string{"Design Nail", "Gel Nail", "Care + Color"}},
		{"3", []string{"Simple Nail", "Gel Nail", "Care + Color"}},
		{"99", nil},
	}
	for _, tt := range tests {
		got := c.ServicesFor(tt.staffID)
		if len(got) != len(tt.want) {
			t.Errorf("staff %s: got %d services, want %d", tt.staffID, len(got), len(tt.want))
			continue
		}
		for i, svc := range got {
			if svc.Name != tt.want[i] {
				t.Errorf("staff %s service %d: got %s, want %s", tt.staffID, i, svc.Name, tt.want[i])
			}
		}
	}
}

func TestStaffLookup(t *testing.T) {
	c, _ := newTestCatalog(t)

	member, err := c.StaffByID("1")
	if err != nil {
		t.Fatalf("looking up staff: %v", err)
	}
	if member.Name != "Tanaka" {
		t.Errorf("got %s, want Tanaka", member.Name)
	}

	if _, err := c.StaffByID("99"); !errors.Is(err, ErrStaffNotFound) {
		t.Errorf("got %v, want ErrStaffNotFound", err)
	}
	if _, err := c.ServiceByID("99"); !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("got %v, want ErrServiceNotFound", err)
	}
}

func TestAddService_AssignsNextID(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	svc, err := c.AddService(ctx, "French Tips", 75, 6500, "3")
	if err != nil {
		t.Fatalf("adding service: %v", err)
	}
	if svc.ID != "6" {
		t.Errorf("got id %s, want 6", svc.ID)
	}

	_, err = c.AddService(ctx, "", 60, 5000, "1")
	if !errors.Is(err, salon.ErrEmptyName) {
		t.Errorf("got %v, want ErrEmptyName", err)
	}
	_, err = c.AddService(ctx, "Broken", 0, 5000, "1")
	if !errors.Is(err, salon.ErrInvalidDuration) {
		t.Errorf("got %v, want ErrInvalidDuration", err)
	}
}

func TestUpdateService(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	if err := c.UpdateService(ctx, "1", "Simple Nail Plus", 70, 5500, "1"); err != nil {
		t.Fatalf("updating: %v", err)
	}
	svc, _ := c.ServiceByID("1")
	if svc.Name != "Simple Nail Plus" || svc.Duration != 70 || svc.Price != 5500 {
		t.Errorf("service not updated: %+v", svc)
	}

	if err := c.UpdateService(ctx, "99", "Ghost", 60, 100, "1"); !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("got %v, want ErrServiceNotFound", err)
	}
}

func TestRemoveService_DropsStaffReferences(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	if err := c.RemoveService(ctx, "3"); err != nil {
		t.Fatalf("removing: %v", err)
	}
	if _, err := c.ServiceByID("3"); !errors.Is(err, ErrServiceNotFound) {
		t.Error("service 3 should be gone")
	}
	for _, member := range c.Staff() {
		for _, id := range member.ServiceIDs {
			if id == "3" {
				t.Errorf("staff %s still references removed service", member.ID)
			}
		}
	}
}

func TestRemoveStaff(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	if err := c.RemoveStaff(ctx, "2"); err != nil {
		t.Fatalf("removing: %v", err)
	}
	if got := len(c.Staff()); got != 2 {
		t.Errorf("got %d staff, want 2", got)
	}
	if err := c.RemoveStaff(ctx, "2"); !errors.Is(err, ErrStaffNotFound) {
		t.Errorf("got %v, want ErrStaffNotFound", err)
	}
}

func TestUpdateStaff(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	if err := c.UpdateStaff(ctx, "3", "Yamada Jr", []string{"1"}); err != nil {
		t.Fatalf("updating: %v", err)
	}
	member, _ := c.StaffByID("3")
	if member.Name != "Yamada Jr" || len(member.ServiceIDs) != 1 {
		t.Errorf("staff not updated: %+v", member)
	}
}
