package booking

import (
	"time"

	"matchpoint/internal/schedule"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

// Booking is the durable record of one court reservation. Records are never
// deleted; cancellation is a terminal status transition kept for history.
type Booking struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	Date      time.Time `db:"play_date" json:"date"`
	Hour      int       `db:"hour" json:"hour"`
	Court     int       `db:"court" json:"court"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Slot returns the coordinate this booking occupies.
func (b *Booking) Slot() schedule.Slot {
	return schedule.Slot{
		Date:  b.Date.Format(schedule.DateLayout),
		Hour:  b.Hour,
		Court: b.Court,
	}
}

type CreateBookingRequest struct {
	Date string `json:"date" binding:"required"`
	// Hour is the internal hour code (6..21). Clients may send the clock
	// label in hour_label instead; exactly one of the two is required.
	Hour      *int   `json:"hour,omitempty"`
	HourLabel string `json:"hour_label,omitempty"`
	Court     int    `json:"court" binding:"required,min=1"`
}

type CancelBookingResponse struct {
	Message string `json:"message" example:"Booking canceled"`
}

// HourAvailability lists the free courts for one hour mark.
type HourAvailability struct {
	Hour       int    `json:"hour"`
	Label      string `json:"label"`
	FreeCourts []int  `json:"free_courts"`
}

type AvailabilityResponse struct {
	Date       string             `json:"date"`
	CourtCount int                `json:"court_count"`
	Hours      []HourAvailability `json:"hours"`
}
