// Package catalog manages the salon's staff roster and service menu.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/store"
)

// Lookup errors.
var (
	ErrStaffNotFound   = errors.New("staff member not found")
	ErrServiceNotFound = errors.New("service not found")
)

// snapshot is the persisted shape of the catalog.
type snapshot struct {
	Staff    []salon.Staff   `json:"staff"`
	Services []salon.Service `json:"menus"`
}

// Catalog holds the staff roster and service menu, persisted as a single
// snapshot. Fresh installations start from the sample roster.
type Catalog struct {
	mu    sync.Mutex
	store store.Store

	staff    []salon.Staff
	services []salon.Service
}

// New loads the catalog from the store, seeding the sample roster when no
// usable snapshot exists.
func New(ctx context.Context, st store.Store) (*Catalog, error) {
	c := &Catalog{store: st}

	data, err := st.Load(ctx, store.KeyCatalog)
	if err == nil {
		var snap snapshot
		if jsonErr := json.Unmarshal(data, &snap); jsonErr == nil && len(snap.Staff) > 0 {
			c.staff = snap.Staff
			c.services = snap.Services
			return c, nil
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	c.staff, c.services = seed()
	if err := c.save(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// seed returns the sample roster and menu a fresh salon starts with.
func seed() ([]salon.Staff, []salon.Service) {
	staff := []salon.Staff{
		{ID: "1", Name: "Tanaka", ServiceIDs: []string{"1", "2", "3"}},
		{ID: "2", Name: "Sato", ServiceIDs: []string{"2", "3", "4"}},
		{ID: "3", Name: "Yamada", ServiceIDs: []string{"1", "3", "4"}},
	}
	services := []salon.Service{
		{ID: "1", Name: "Simple Nail", Duration: 60, Price: 5000, StaffID: "1"},
		{ID: "2", Name: "Design Nail", Duration: 90, Price: 7000, StaffID: "1"},
		{ID: "3", Name: "Gel Nail", Duration: 120, Price: 8000, StaffID: "2"},
		{ID: "4", Name: "Care + Color", Duration: 90, Price: 6000, StaffID: "2"},
		{ID: "5", Name: "Nail Art", Duration: 150, Price: 10000, StaffID: "3"},
	}
	return staff, services
}

func (c *Catalog) save(ctx context.Context) error {
	data, err := json.Marshal(snapshot{Staff: c.staff, Services: c.services})
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := c.store.Save(ctx, store.KeyCatalog, data); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	return nil
}

// Staff returns the roster in stable order.
func (c *Catalog) Staff() []salon.Staff {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]salon.Staff, len(c.staff))
	copy(out, c.staff)
	return out
}

// Services returns the full menu in stable order.
func (c *Catalog) Services() []salon.Service {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]salon.Service, len(c.services))
	copy(out, c.services)
	return out
}

// StaffByID looks up one staff member.
func (c *Catalog) StaffByID(id string) (salon.Staff, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.staff {
		if s.ID == id {
			return s, nil
		}
	}
	return salon.Staff{}, fmt.Errorf("staff %s: %w", id, ErrStaffNotFound)
}

// ServiceByID looks up one menu item.
func (c *Catalog) ServiceByID(id string) (salon.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.services {
		if s.ID == id {
			return s, nil
		}
	}
	return salon.Service{}, fmt.Errorf("service %s: %w", id, ErrServiceNotFound)
}

// ServicesFor returns the menu items a staff member performs, in menu order.
func (c *Catalog) ServicesFor(staffID string) []salon.Service {
	c.mu.Lock()
	defer c.mu.Unlock()

	var member *salon.Staff
	for i := range c.staff {
		if c.staff[i].ID == staffID {
			member = &c.staff[i]
			break
		}
	}
	if member == nil {
		return nil
	}

	offered := make(map[string]bool, len(member.ServiceIDs))
	for _, id := range member.ServiceIDs {
		offered[id] = true
	}

	var out []salon.Service
	for _, s := range c.services {
		if offered[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// AddStaff adds a staff member and returns it with its assigned identifier.
func (c *Catalog) AddStaff(ctx context.Context, name string, serviceIDs []string) (salon.Staff, error) {
	if name == "" {
		return salon.Staff{}, salon.ErrEmptyName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	member := salon.Staff{
		ID:         c.nextStaffID(),
		Name:       name,
		ServiceIDs: serviceIDs,
	}
	c.staff = append(c.staff, member)
	if err := c.save(ctx); err != nil {
		c.staff = c.staff[:len(c.staff)-1]
		return salon.Staff{}, err
	}
	return member, nil
}

// UpdateStaff replaces the name and service set of an existing staff member.
func (c *Catalog) UpdateStaff(ctx context.Context, id, name string, serviceIDs []string) error {
	if name == "" {
		return salon.ErrEmptyName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.staff {
		if c.staff[i].ID == id {
			c.staff[i].Name = name
			c.staff[i].ServiceIDs = serviceIDs
			return c.save(ctx)
		}
	}
	return fmt.Errorf("staff %s: %w", id, ErrStaffNotFound)
}

// RemoveStaff deletes a staff member from the roster. Menu items assigned
// to them keep their staff reference; the caller decides whether to
// reassign or remove them.
func (c *Catalog) RemoveStaff(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.staff {
		if c.staff[i].ID == id {
			c.staff = append(c.staff[:i], c.staff[i+1:]...)
			return c.save(ctx)
		}
	}
	return fmt.Errorf("staff %s: %w", id, ErrStaffNotFound)
}

// AddService adds a menu item and returns it with its assigned identifier.
func (c *Catalog) AddService(ctx context.Context, name string, duration, price int, staffID string) (salon.Service, error) {
	if name == "" {
		return salon.Service{}, salon.ErrEmptyName
	}
	if duration <= 0 {
		return salon.Service{}, salon.ErrInvalidDuration
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	svc := salon.Service{
		ID:       c.nextServiceID(),
		Name:     name,
		Duration: duration,
		Price:    price,
		StaffID:  staffID,
	}
	c.services = append(c.services, svc)
	if err := c.save(ctx); err != nil {
		c.services = c.services[:len(c.services)-1]
		return salon.Service{}, err
	}
	return svc, nil
}

// UpdateService replaces an existing menu item's fields.
func (c *Catalog) UpdateService(ctx context.Context, id, name string, duration, price int, staffID string) error {
	if name == "" {
		return salon.ErrEmptyName
	}
	if duration <= 0 {
		return salon.ErrInvalidDuration
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.services {
		if c.services[i].ID == id {
			c.services[i].Name = name
			c.services[i].Duration = duration
			c.services[i].Price = price
			c.services[i].StaffID = staffID
			return c.save(ctx)
		}
	}
	return fmt.Errorf("service %s: %w", id, ErrServiceNotFound)
}

// RemoveService deletes a menu item and drops it from every staff
// member's service set.
func (c *Catalog) RemoveService(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.services {
		if c.services[i].ID != id {
			continue
		}
		c.services = append(c.services[:i], c.services[i+1:]...)
		for j := range c.staff {
			ids := c.staff[j].ServiceIDs
			for k, sid := range ids {
				if sid == id {
					c.staff[j].ServiceIDs = append(ids[:k], ids[k+1:]...)
					break
				}
			}
		}
		return c.save(ctx)
	}
	return fmt.Errorf("service %s: %w", id, ErrServiceNotFound)
}

// nextStaffID returns one past the highest numeric staff identifier.
func (c *Catalog) nextStaffID() string {
	return nextID(len(c.staff), func(i int) string { return c.staff[i].ID })
}

func (c *Catalog) nextServiceID() string {
	return nextID(len(c.services), func(i int) string { return c.services[i].ID })
}

func nextID(n int, id func(int) string) string {
	max := 0
	for i := 0; i < n; i++ {
		if v, err := strconv.Atoi(id(i)); err == nil && v > max {
			max = v
		}
	}
	return strconv.Itoa(max + 1)
}
