package salon

import "fmt"

// Business hours: one bookable slot per integer hour, OpenHour through
// LastHour inclusive.
const (
	OpenHour     = 10
	LastHour     = 22
	SlotsPerDay  = LastHour - OpenHour + 1
	HorizonDays  = 30
	DateFormat   = "2006-01-02"
	SlotDuration = 60 // minutes per slot
)

// SlotsNeeded returns the number of hourly slots a service of the given
// duration consumes: ceil(minutes/60). A 90-minute service takes 2 slots.
func SlotsNeeded(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + SlotDuration - 1) / SlotDuration
}

// HourLabel formats an hour as the "HH:00" clock label used for slot times.
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ParseHour extracts the hour from a "HH:MM" label. Returns -1 for input
// that is not a clock time.
func ParseHour(t string) int {
	if len(t) != 5 || t[2] != ':' {
		return -1
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return -1
		}
	}
	return int(t[0]-'0')*10 + int(t[1]-'0')
}

// WithinHours returns true if the hour falls within business hours.
func WithinHours(hour int) bool {
	return hour >= OpenHour && hour <= LastHour
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// FormatPrice renders a yen price with thousands separators.
func FormatPrice(price int) string {
	if price < 0 {
		return "¥0"
	}
	s := fmt.Sprintf("%d", price)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return "¥" + string(out)
}
