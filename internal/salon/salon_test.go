package salon

import (
	"errors"
	"testing"
)

func validCustomer() Customer {
	return Customer{
		Name:  "Aiko",
		Phone: "090-1234-5678",
		Service: Service{
			ID:       "2",
			Name:     "Design Nail",
			Duration: 90,
			Price:    7000,
			StaffID:  "1",
		},
		Staff: Staff{ID: "1", Name: "Tanaka", ServiceIDs: []string{"1", "2"}},
	}
}

func TestCustomerValidate(t *testing.T) {
	if err := validCustomer().Validate(); err != nil {
		t.Fatalf("valid customer rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Customer)
		want   error
	}{
		{"empty name", func(c *Customer) { c.Name = "  " }, ErrEmptyName},
		{"empty phone", func(c *Customer) { c.Phone = "" }, ErrEmptyPhone},
		{"no staff", func(c *Customer) { c.Staff = Staff{} }, ErrNoStaff},
		{"no service", func(c *Customer) { c.Service = Service{} }, ErrNoService},
		{"zero duration", func(c *Customer) { c.Service.Duration = 0 }, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCustomer()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTimeRequestValidate(t *testing.T) {
	req := TimeRequest{
		CustomerName:  "Yuki",
		CustomerPhone: "080-0000-1111",
		Staff:         Staff{ID: "2", Name: "Sato"},
		Message:       "Evenings after 19:00 if possible",
		Status:        StatusPending,
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	req.Message = ""
	if err := req.Validate(); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("got %v, want ErrEmptyMessage", err)
	}
}

func TestRequestStatusValid(t *testing.T) {
	for _, s := range []RequestStatus{StatusPending, StatusContacted, StatusScheduled, StatusDeclined} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if RequestStatus("archived").Valid() {
		t.Error("unknown status should be invalid")
	}
}
