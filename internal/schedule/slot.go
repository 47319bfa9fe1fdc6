package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSlot = errors.New("invalid slot")
	ErrPastDate    = errors.New("date is in the past")
)

const (
	// Bookable hours run from 06:00 through 21:00, sixteen one-hour marks.
	FirstHour = 6
	LastHour  = 21

	// DefaultCourtCount is used when COURT_COUNT is not configured.
	DefaultCourtCount = 6

	DateLayout = "2006-01-02"
)

// hourLabels is the total mapping between the internal hour code and the
// clock label shown to clients. Parsing accepts exactly these labels.
var hourLabels = map[int]string{
	6: "6:00 AM", 7: "7:00 AM", 8: "8:00 AM", 9: "9:00 AM",
	10: "10:00 AM", 11: "11:00 AM", 12: "12:00 PM", 13: "1:00 PM",
	14: "2:00 PM", 15: "3:00 PM", 16: "4:00 PM", 17: "5:00 PM",
	18: "6:00 PM", 19: "7:00 PM", 20: "8:00 PM", 21: "9:00 PM",
}

var labelHours = func() map[string]int {
	m := make(map[string]int, len(hourLabels))
	for h, label := range hourLabels {
		m[label] = h
	}
	return m
}()

// Hours returns the enumerated hour codes in ascending order.
func Hours() []int {
	hours := make([]int, 0, LastHour-FirstHour+1)
	for h := FirstHour; h <= LastHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// ValidHour reports whether h is one of the enumerated hour marks.
func ValidHour(h int) bool {
	return h >= FirstHour && h <= LastHour
}

// HourLabel formats an hour code as its clock label, e.g. 9 -> "9:00 AM".
func HourLabel(h int) string {
	return hourLabels[h]
}

// ParseHour resolves a clock label to its hour code.
func ParseHour(label string) (int, error) {
	h, ok := labelHours[label]
	if !ok {
		return 0, fmt.Errorf("%w: unknown hour %q", ErrInvalidSlot, label)
	}
	return h, nil
}

// Slot is the coordinate of one bookable unit: a calendar day, an hour
// mark and a court number. Slots are keys, not persisted entities.
type Slot struct {
	Date  string `json:"date"`
	Hour  int    `json:"hour"`
	Court int    `json:"court"`
}

// Validate checks the hour and court ranges and normalizes the date.
// courtCount is the configured number of courts.
func (s *Slot) Validate(courtCount int) error {
	if !ValidHour(s.Hour) {
		return fmt.Errorf("%w: hour %d not in [%d,%d]", ErrInvalidSlot, s.Hour, FirstHour, LastHour)
	}
	if s.Court < 1 || s.Court > courtCount {
		return fmt.Errorf("%w: court %d not in [1,%d]", ErrInvalidSlot, s.Court, courtCount)
	}
	d, err := time.Parse(DateLayout, s.Date)
	if err != nil {
		return fmt.Errorf("%w: bad date %q", ErrInvalidSlot, s.Date)
	}
	s.Date = d.Format(DateLayout)
	return nil
}

// CheckNotPast rejects dates strictly before the current UTC day.
func (s Slot) CheckNotPast(now time.Time) error {
	d, err := time.Parse(DateLayout, s.Date)
	if err != nil {
		return fmt.Errorf("%w: bad date %q", ErrInvalidSlot, s.Date)
	}
	u := now.UTC()
	today := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		return ErrPastDate
	}
	return nil
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s court %d", s.Date, HourLabel(s.Hour), s.Court)
}
