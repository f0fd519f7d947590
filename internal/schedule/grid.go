// Package schedule implements the slot scheduling engine: grid generation,
// availability queries, conflict analysis, and booking mutations.
// The Engine is the only component allowed to mutate the schedule grid or
// the reservation log.
package schedule

import (
	"fmt"
	"time"

	"github.com/javiermolinar/esmalte/internal/salon"
)

// Slot is one bookable hourly unit within business hours on a given date.
// A slot with a customer attached is never available. A slot without a
// customer may be available, administratively disabled, or blocked as
// spillover from a longer booking starting earlier the same day.
type Slot struct {
	ID        string          `json:"id"`
	Time      string          `json:"time"`
	Available bool            `json:"isAvailable"`
	Customer  *salon.Customer `json:"customerInfo,omitempty"`
}

// Occupied reports whether the slot holds a confirmed booking.
func (s *Slot) Occupied() bool {
	return s.Customer != nil
}

// DaySchedule holds the ordered slots for one calendar date.
type DaySchedule struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// Slot returns the slot for the given hour, or nil if the hour falls
// outside business hours.
func (d *DaySchedule) Slot(hour int) *Slot {
	if d == nil || !salon.WithinHours(hour) {
		return nil
	}
	i := hour - salon.OpenHour
	if i < 0 || i >= len(d.Slots) {
		return nil
	}
	return &d.Slots[i]
}

// Grid is the rolling window of day schedules, ordered by ascending date.
type Grid []DaySchedule

// Day returns the day schedule for the given date, or nil if the date is
// outside the grid's window.
func (g Grid) Day(date string) *DaySchedule {
	for i := range g {
		if g[i].Date == date {
			return &g[i]
		}
	}
	return nil
}

// SlotID builds the deterministic slot identifier for a date and hour.
func SlotID(date string, hour int) string {
	return fmt.Sprintf("%s-%s", date, salon.HourLabel(hour))
}

// NewGrid builds a fresh all-available grid covering HorizonDays consecutive
// days starting at the given date, one slot per business hour.
func NewGrid(start time.Time) Grid {
	grid := make(Grid, 0, salon.HorizonDays)
	for i := 0; i < salon.HorizonDays; i++ {
		date := start.AddDate(0, 0, i).Format(salon.DateFormat)
		slots := make([]Slot, 0, salon.SlotsPerDay)
		for hour := salon.OpenHour; hour <= salon.LastHour; hour++ {
			slots = append(slots, Slot{
				ID:        SlotID(date, hour),
				Time:      salon.HourLabel(hour),
				Available: true,
			})
		}
		grid = append(grid, DaySchedule{Date: date, Slots: slots})
	}
	return grid
}

// clone returns a deep copy of the grid so callers can inspect it without
// holding the engine lock.
func (g Grid) clone() Grid {
	out := make(Grid, len(g))
	for i, day := range g {
		slots := make([]Slot, len(day.Slots))
		copy(slots, day.Slots)
		for j := range slots {
			if slots[j].Customer != nil {
				c := *slots[j].Customer
				slots[j].Customer = &c
			}
		}
		out[i] = DaySchedule{Date: day.Date, Slots: slots}
	}
	return out
}
