// Package booking owns the appointment ledger and the slot
// availability logic built on top of it. All read-check-then-write
// sequences run under a single mutex so two concurrent bookings can
// never claim the same slot.
package booking

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/repo"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/schedule"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/store"
)

// Request is a candidate booking as submitted by a client.
type Request struct {
	ServiceID string
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	Name      string
	Email     string
	Phone     string
}

type Service struct {
	st      store.Store
	hours   *repo.Hours
	catalog *repo.Catalog
	loc     *time.Location

	mu           sync.Mutex
	appointments []models.Appointment
}

// New loads the appointment ledger from the store. A missing record
// starts an empty ledger; a read failure is surfaced as StorageError.
func New(ctx context.Context, st store.Store, hours *repo.Hours, catalog *repo.Catalog, loc *time.Location) (*Service, error) {
	s := &Service{
		st:      st,
		hours:   hours,
		catalog: catalog,
		loc:     loc,
	}

	raw, ok, err := st.Get(ctx, store.KeyAppointments)
	if err != nil {
		return nil, &StorageError{Op: "load appointments", Err: err}
	}
	if ok {
		if err := json.Unmarshal(raw, &s.appointments); err != nil {
			return nil, &StorageError{Op: "decode appointments", Err: err}
		}
	}
	return s, nil
}

// AvailableSlots generates the day's slots and marks each one against
// the ledger: a slot is taken when a pending or confirmed appointment
// holds the same date and time. Cancelled appointments free their slot.
func (s *Service) AvailableSlots(ctx context.Context, date string) ([]models.TimeSlot, error) {
	week, err := s.hours.Get(ctx)
	if err != nil {
		return nil, &StorageError{Op: "load hours", Err: err}
	}
	times, err := schedule.GenerateSlots(date, week, s.loc)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	taken := s.occupiedLocked(date)
	s.mu.Unlock()

	slots := make([]models.TimeSlot, 0, len(times))
	for _, t := range times {
		slots = append(slots, models.TimeSlot{Time: t, Available: !taken[t]})
	}
	return slots, nil
}

// Book validates the request and, on success, appends a pending
// appointment with a denormalized snapshot of the service name and
// price. The availability re-check and the insert run atomically under
// the ledger mutex, so with capacity 1 per slot at most one of two
// concurrent requests for the same slot can succeed.
func (s *Service) Book(ctx context.Context, req Request) (*models.Appointment, error) {
	svc, err := s.catalog.FindByID(ctx, req.ServiceID)
	if err != nil {
		return nil, &StorageError{Op: "load services", Err: err}
	}
	if svc == nil {
		return nil, reject(ReasonUnknownService)
	}

	week, err := s.hours.Get(ctx)
	if err != nil {
		return nil, &StorageError{Op: "load hours", Err: err}
	}
	times, err := schedule.GenerateSlots(req.Date, week, s.loc)
	if err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, reject(ReasonClosedDay)
	}
	if !schedule.Contains(times, req.Time) {
		return nil, reject(ReasonSlotUnavailable)
	}

	if rej := validateContact(req); rej != nil {
		return nil, rej
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.occupiedLocked(req.Date)[req.Time] {
		return nil, reject(ReasonSlotUnavailable)
	}

	appointment := models.Appointment{
		ID:          uuid.NewString(),
		UserName:    strings.TrimSpace(req.Name),
		UserEmail:   strings.TrimSpace(req.Email),
		UserPhone:   strings.TrimSpace(req.Phone),
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		Price:       svc.Price,
		Date:        req.Date,
		Time:        req.Time,
		Status:      models.AppointmentStatusPending,
		CreatedAt:   time.Now().In(s.loc),
	}

	s.appointments = append([]models.Appointment{appointment}, s.appointments...)
	if err := s.persistLocked(ctx); err != nil {
		s.appointments = s.appointments[1:]
		return nil, err
	}
	return &appointment, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			cp := s.appointments[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// List returns the ledger most-recent-first.
func (s *Service) List(ctx context.Context) []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

func (s *Service) ListByDate(ctx context.Context, date string) []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Appointment, 0)
	for _, a := range s.appointments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

// UpdateStatus applies an admin status transition. pending may move to
// confirmed or cancelled, confirmed may still be cancelled, and
// cancelled is terminal. Setting the current status again is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.Appointment, error) {
	if status != models.AppointmentStatusConfirmed && status != models.AppointmentStatusCancelled {
		return nil, ErrInvalidTransition
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	current := s.appointments[idx].Status
	if current == status {
		cp := s.appointments[idx]
		return &cp, nil
	}
	if !transitionAllowed(current, status) {
		return nil, ErrInvalidTransition
	}

	s.appointments[idx].Status = status
	if err := s.persistLocked(ctx); err != nil {
		s.appointments[idx].Status = current
		return nil, err
	}
	cp := s.appointments[idx]
	return &cp, nil
}

func transitionAllowed(from, to string) bool {
	switch from {
	case models.AppointmentStatusPending:
		return to == models.AppointmentStatusConfirmed || to == models.AppointmentStatusCancelled
	case models.AppointmentStatusConfirmed:
		return to == models.AppointmentStatusCancelled
	default:
		return false
	}
}

func (s *Service) occupiedLocked(date string) map[string]bool {
	taken := make(map[string]bool)
	for _, a := range s.appointments {
		if a.Date != date {
			continue
		}
		if a.Status == models.AppointmentStatusPending || a.Status == models.AppointmentStatusConfirmed {
			taken[a.Time] = true
		}
	}
	return taken
}

func (s *Service) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.appointments)
	if err != nil {
		return &StorageError{Op: "encode appointments", Err: err}
	}
	if err := s.st.Set(ctx, store.KeyAppointments, raw); err != nil {
		return &StorageError{Op: "save appointments", Err: err}
	}
	return nil
}

func validateContact(req Request) *RejectionError {
	fields := make(map[string]string)
	if len(strings.TrimSpace(req.Name)) <= 2 {
		fields["name"] = "name too short"
	}
	if !strings.Contains(req.Email, "@") {
		fields["email"] = "email must contain @"
	}
	if len(strings.TrimSpace(req.Phone)) <= 8 {
		fields["phone"] = "phone too short"
	}
	if len(fields) == 0 {
		return nil
	}
	return &RejectionError{Reason: ReasonInvalidContact, Fields: fields}
}
