// Package salon defines the core domain types for esmalte.
package salon

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEmptyName       = errors.New("customer name cannot be empty")
	ErrEmptyPhone      = errors.New("customer phone cannot be empty")
	ErrEmptyMessage    = errors.New("request message cannot be empty")
	ErrNoStaff         = errors.New("a staff member must be selected")
	ErrNoService       = errors.New("a service must be selected")
	ErrInvalidDuration = errors.New("service duration must be positive")
)

// Domain errors.
var (
	ErrSlotUnavailable     = errors.New("required time slots are not available")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrRequestNotFound     = errors.New("time request not found")
	ErrInvalidStatus       = errors.New("invalid time request status")
)

// Staff represents a salon staff member.
type Staff struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ServiceIDs []string `json:"serviceIds"`
}

// Service represents a bookable menu item.
type Service struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"` // minutes
	Price    int    `json:"price"`
	StaffID  string `json:"staffId"`
}

// Customer is the occupant record attached to a booked slot.
type Customer struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Service Service `json:"menu"`
	Staff   Staff   `json:"staff"`
}

// Validate checks that a customer record carries everything a booking needs.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Phone) == "" {
		return ErrEmptyPhone
	}
	if c.Staff.ID == "" {
		return ErrNoStaff
	}
	if c.Service.ID == "" {
		return ErrNoService
	}
	if c.Service.Duration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// Reservation is one entry in the append-only booking log.
type Reservation struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Time        string   `json:"time"` // HH:MM
	Customer    Customer `json:"customerInfo"`
	ServiceNote string   `json:"serviceNote,omitempty"`
	Completed   bool     `json:"completed"`
}

// RequestStatus tracks the lifecycle of a time request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusContacted RequestStatus = "contacted"
	StatusScheduled RequestStatus = "scheduled"
	StatusDeclined  RequestStatus = "declined"
)

// Valid returns true if the status is a known value.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusContacted, StatusScheduled, StatusDeclined:
		return true
	default:
		return false
	}
}

// TimeRequest is a customer-submitted preference not tied to a concrete slot.
type TimeRequest struct {
	ID            string        `json:"id"`
	CustomerName  string        `json:"customerName"`
	CustomerPhone string        `json:"customerPhone"`
	Staff         Staff         `json:"staff"`
	Service       Service       `json:"menu"`
	PreferredDate string        `json:"preferredDate,omitempty"`
	PreferredTime string        `json:"preferredTime,omitempty"`
	Message       string        `json:"timeRequest"`
	CreatedAt     time.Time     `json:"createdAt"`
	Status        RequestStatus `json:"status"`
	AdminNotes    string        `json:"adminNotes,omitempty"`
}

// Validate checks the required time request fields.
func (r TimeRequest) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(r.CustomerPhone) == "" {
		return ErrEmptyPhone
	}
	if strings.TrimSpace(r.Message) == "" {
		return ErrEmptyMessage
	}
	if r.Staff.ID == "" {
		return ErrNoStaff
	}
	return nil
}

// IsPending returns true if the request has not been handled yet.
func (r TimeRequest) IsPending() bool {
	return r.Status == StatusPending
}
