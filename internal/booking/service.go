package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"matchpoint/internal/logger"
	"matchpoint/internal/metrics"
	"matchpoint/internal/schedule"
)

var ErrForbidden = errors.New("booking belongs to another player")

// Service is the single entry point that mutates both the booking store and
// the slot index. All slot occupancy decisions are serialized per slot key,
// so two concurrent requests for the same (date, hour, court) can never both
// succeed, while requests for different slots proceed independently.
type Service interface {
	CreateBooking(ctx context.Context, ownerID string, slot schedule.Slot) (*Booking, error)
	CancelBooking(ctx context.Context, bookingID, ownerID string) error
	Availability(ctx context.Context, date string) (*AvailabilityResponse, error)
	DaySchedule(ctx context.Context, date string) ([]Booking, error)
	MyBookings(ctx context.Context, ownerID string) ([]Booking, error)
	RebuildIndex(ctx context.Context) error
}

type service struct {
	repo       Repository
	index      *schedule.Index
	courtCount int

	// slotLocks holds one mutex per (hour, court) pair, created on first
	// use. Keying without the date keeps the map bounded by the court grid
	// while still covering every slot: two requests for the same slot
	// always share a lock.
	slotLocks sync.Map

	now func() time.Time
}

func NewService(repo Repository, index *schedule.Index, courtCount int) Service {
	return &service{
		repo:       repo,
		index:      index,
		courtCount: courtCount,
		now:        time.Now,
	}
}

func (s *service) lockFor(slot schedule.Slot) *sync.Mutex {
	key := fmt.Sprintf("%d/%d", slot.Hour, slot.Court)
	mu, _ := s.slotLocks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *service) CreateBooking(ctx context.Context, ownerID string, slot schedule.Slot) (*Booking, error) {
	if err := slot.Validate(s.courtCount); err != nil {
		return nil, err
	}
	if err := slot.CheckNotPast(s.now()); err != nil {
		return nil, err
	}

	// The check-then-reserve sequence must be atomic per slot key. The
	// lock covers only the in-memory check and the single INSERT; it is
	// never held across anything slower.
	mu := s.lockFor(slot)
	mu.Lock()
	defer mu.Unlock()

	if !s.index.IsFree(slot.Date, slot.Hour, slot.Court) {
		metrics.RecordSlotConflict()
		return nil, schedule.ErrSlotConflict
	}

	b, err := s.repo.Create(ctx, ownerID, slot)
	if err != nil {
		if errors.Is(err, schedule.ErrSlotConflict) {
			metrics.RecordSlotConflict()
		}
		return nil, err
	}

	if err := s.index.Reserve(slot.Date, slot.Hour, slot.Court, b.ID); err != nil {
		// Unreachable while the slot lock is held; the store row stays
		// authoritative and a rebuild reconciles the index.
		logger.Error("slot index out of sync on reserve", "slot", slot.String(), "booking_id", b.ID)
		return nil, err
	}

	metrics.RecordBookingCreated()
	logger.Info("booking created", "booking_id", b.ID, "owner_id", ownerID, "slot", slot.String())
	return b, nil
}

func (s *service) CancelBooking(ctx context.Context, bookingID, ownerID string) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if b.OwnerID != ownerID {
		return ErrForbidden
	}

	// Idempotent: a second cancel of the same booking succeeds as a no-op.
	if b.Status == StatusCanceled {
		return nil
	}

	slot := b.Slot()
	mu := s.lockFor(slot)
	mu.Lock()
	defer mu.Unlock()

	// Release the slot first; if we crash before the store update the
	// booking stays confirmed and the startup rebuild restores the entry.
	if occupant, ok := s.index.Occupant(slot.Date, slot.Hour, slot.Court); ok && occupant == b.ID {
		if err := s.index.Release(slot.Date, slot.Hour, slot.Court); err != nil {
			return err
		}
	}

	if err := s.repo.SetCanceled(ctx, bookingID); err != nil {
		return err
	}

	metrics.RecordBookingCancellation()
	logger.Info("booking canceled", "booking_id", bookingID, "owner_id", ownerID, "slot", slot.String())
	return nil
}

func (s *service) Availability(ctx context.Context, date string) (*AvailabilityResponse, error) {
	d, err := time.Parse(schedule.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", schedule.ErrInvalidSlot, date)
	}
	normalized := d.Format(schedule.DateLayout)

	// One snapshot for the whole response, so a concurrently committing
	// booking is either fully visible or not visible at all.
	occupied := s.index.OccupantsForDate(normalized)

	resp := &AvailabilityResponse{
		Date:       normalized,
		CourtCount: s.courtCount,
		Hours:      make([]HourAvailability, 0, schedule.LastHour-schedule.FirstHour+1),
	}

	for _, hour := range schedule.Hours() {
		taken := make(map[int]bool, len(occupied[hour]))
		for _, court := range occupied[hour] {
			taken[court] = true
		}

		free := make([]int, 0, s.courtCount)
		for court := 1; court <= s.courtCount; court++ {
			if !taken[court] {
				free = append(free, court)
			}
		}

		resp.Hours = append(resp.Hours, HourAvailability{
			Hour:       hour,
			Label:      schedule.HourLabel(hour),
			FreeCourts: free,
		})
	}

	return resp, nil
}

// DaySchedule lists the confirmed bookings of one date straight from the
// authoritative store, unlike Availability which answers from the index.
func (s *service) DaySchedule(ctx context.Context, date string) ([]Booking, error) {
	d, err := time.Parse(schedule.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", schedule.ErrInvalidSlot, date)
	}
	return s.repo.ListByDate(ctx, d.Format(schedule.DateLayout))
}

func (s *service) MyBookings(ctx context.Context, ownerID string) ([]Booking, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// RebuildIndex repopulates the slot index from confirmed bookings dated
// today onward. Past dates are unbookable, so they never need index entries.
func (s *service) RebuildIndex(ctx context.Context) error {
	today := s.now().Format(schedule.DateLayout)

	bookings, err := s.repo.ListConfirmedFrom(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to load confirmed bookings: %w", err)
	}

	s.index.Reset()
	for _, b := range bookings {
		slot := b.Slot()
		if err := s.index.Reserve(slot.Date, slot.Hour, slot.Court, b.ID); err != nil {
			// Two confirmed bookings on one slot would mean the store
			// invariant is broken; surface it rather than pick a winner.
			return fmt.Errorf("conflicting confirmed bookings for %s: %w", slot.String(), err)
		}
	}

	logger.Info("slot index rebuilt", "bookings", len(bookings), "from", today)
	return nil
}
