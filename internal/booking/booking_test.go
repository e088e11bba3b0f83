package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/repo"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/store"
)

const (
	mondayDate = "2026-03-02"
	sundayDate = "2026-03-01"
)

func testHours() models.BusinessHours {
	return models.BusinessHours{
		0: {Open: "09:00", Close: "20:00", IsOpen: false},
		1: {Open: "09:00", Close: "20:00", IsOpen: true},
		2: {Open: "09:00", Close: "20:00", IsOpen: true},
		3: {Open: "09:00", Close: "20:00", IsOpen: true},
		4: {Open: "09:00", Close: "20:00", IsOpen: true},
		5: {Open: "09:00", Close: "20:00", IsOpen: true},
		6: {Open: "09:00", Close: "14:00", IsOpen: true},
	}
}

func newTestService(t *testing.T, st store.Store) *Service {
	t.Helper()
	ctx := context.Background()

	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	catalog := repo.NewCatalog(st)
	require.NoError(t, catalog.Save(ctx, []models.Service{
		{ID: "peinado", Name: "Peinado", Price: 14, DurationMinutes: 30, Category: models.CategoryHair},
		{ID: "tinte", Name: "Tinte", Price: 24, DurationMinutes: 60, Category: models.CategoryOther},
	}))

	hours := repo.NewHours(st, testHours())
	svc, err := New(ctx, st, hours, catalog, loc)
	require.NoError(t, err)
	return svc
}

func validRequest() Request {
	return Request{
		ServiceID: "peinado",
		Date:      mondayDate,
		Time:      "09:00",
		Name:      "Ana Ruiz",
		Email:     "ana@example.com",
		Phone:     "600112233",
	}
}

func TestBookSuccess(t *testing.T) {
	svc := newTestService(t, store.NewMemory())

	appt, err := svc.Book(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, models.AppointmentStatusPending, appt.Status)
	assert.Equal(t, mondayDate, appt.Date)
	assert.Equal(t, "09:00", appt.Time)
	assert.Equal(t, "Peinado", appt.ServiceName)
	assert.Equal(t, 14, appt.Price)
	assert.Equal(t, "Ana Ruiz", appt.UserName)
}

func TestBookClosedDayWinsOverContactValidation(t *testing.T) {
	svc := newTestService(t, store.NewMemory())

	req := validRequest()
	req.Date = sundayDate
	req.Name = "" // would also fail contact validation
	req.Email = "nope"

	_, err := svc.Book(context.Background(), req)
	rej, ok := AsRejection(err)
	require.True(t, ok, "expected a rejection, got %v", err)
	assert.Equal(t, ReasonClosedDay, rej.Reason)
}

func TestBookUnknownService(t *testing.T) {
	svc := newTestService(t, store.NewMemory())

	req := validRequest()
	req.ServiceID = "manicura"

	_, err := svc.Book(context.Background(), req)
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonUnknownService, rej.Reason)
}

func TestBookRejectsTimeOutsideSlotGrid(t *testing.T) {
	svc := newTestService(t, store.NewMemory())

	for _, badTime := range []string{"09:15", "20:00", "08:30"} {
		req := validRequest()
		req.Time = badTime
		_, err := svc.Book(context.Background(), req)
		rej, ok := AsRejection(err)
		require.True(t, ok, "time %s: expected rejection, got %v", badTime, err)
		assert.Equal(t, ReasonSlotUnavailable, rej.Reason, "time %s", badTime)
	}
}

func TestBookContactValidation(t *testing.T) {
	svc := newTestService(t, store.NewMemory())

	cases := []struct {
		name  string
		mod   func(*Request)
		field string
	}{
		{"short name", func(r *Request) { r.Name = " Al " }, "name"},
		{"email without at", func(r *Request) { r.Email = "ana.example.com" }, "email"},
		{"short phone", func(r *Request) { r.Phone = " 60011223 " }, "phone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mod(&req)
			_, err := svc.Book(context.Background(), req)
			rej, ok := AsRejection(err)
			require.True(t, ok, "expected rejection, got %v", err)
			assert.Equal(t, ReasonInvalidContact, rej.Reason)
			assert.Contains(t, rej.Fields, tc.field)
		})
	}
}

func TestBookOccupiedSlot(t *testing.T) {
	svc := newTestService(t, store.NewMemory())
	ctx := context.Background()

	first, err := svc.Book(ctx, validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.Name = "Lucia Gomez"
	second.Email = "lucia@example.com"
	_, err = svc.Book(ctx, second)
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonSlotUnavailable, rej.Reason)

	// Cancelling the holder frees the slot again.
	_, err = svc.UpdateStatus(ctx, first.ID, models.AppointmentStatusCancelled)
	require.NoError(t, err)
	_, err = svc.Book(ctx, second)
	require.NoError(t, err)
}

func TestAvailableSlotsReflectLedger(t *testing.T) {
	svc := newTestService(t, store.NewMemory())
	ctx := context.Background()

	req := validRequest()
	req.Time = "09:30"
	_, err := svc.Book(ctx, req)
	require.NoError(t, err)

	slots, err := svc.AvailableSlots(ctx, mondayDate)
	require.NoError(t, err)
	require.Len(t, slots, 22)

	for _, slot := range slots {
		if slot.Time == "09:30" {
			assert.False(t, slot.Available, "booked slot must be unavailable")
		} else {
			assert.True(t, slot.Available, "slot %s should be free", slot.Time)
		}
	}

	// Deterministic against the same ledger snapshot.
	again, err := svc.AvailableSlots(ctx, mondayDate)
	require.NoError(t, err)
	assert.Equal(t, slots, again)

	closed, err := svc.AvailableSlots(ctx, sundayDate)
	require.NoError(t, err)
	assert.Empty(t, closed)
}

func TestDenormalizedServiceSnapshot(t *testing.T) {
	st := store.NewMemory()
	svc := newTestService(t, st)
	ctx := context.Background()

	appt, err := svc.Book(ctx, validRequest())
	require.NoError(t, err)
	require.Equal(t, 14, appt.Price)

	// Reprice the catalog; the recorded appointment keeps its snapshot.
	catalog := repo.NewCatalog(st)
	require.NoError(t, catalog.Save(ctx, []models.Service{
		{ID: "peinado", Name: "Peinado Premium", Price: 99, DurationMinutes: 30},
	}))

	stored, err := svc.Get(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Peinado", stored.ServiceName)
	assert.Equal(t, 14, stored.Price)

	req := validRequest()
	req.Time = "10:00"
	later, err := svc.Book(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Peinado Premium", later.ServiceName)
	assert.Equal(t, 99, later.Price)
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc := newTestService(t, store.NewMemory())
	ctx := context.Background()

	appt, err := svc.Book(ctx, validRequest())
	require.NoError(t, err)

	confirmed, err := svc.UpdateStatus(ctx, appt.ID, models.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, confirmed.Status)

	// Same status again is a no-op.
	again, err := svc.UpdateStatus(ctx, appt.ID, models.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, again.Status)

	// pending is never a valid target.
	_, err = svc.UpdateStatus(ctx, appt.ID, models.AppointmentStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// confirmed may still be cancelled; cancelled is terminal.
	cancelled, err := svc.UpdateStatus(ctx, appt.ID, models.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCancelled, cancelled.Status)

	_, err = svc.UpdateStatus(ctx, appt.ID, models.AppointmentStatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, "missing-id", models.AppointmentStatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByDate(t *testing.T) {
	svc := newTestService(t, store.NewMemory())
	ctx := context.Background()

	monday := validRequest()
	_, err := svc.Book(ctx, monday)
	require.NoError(t, err)

	saturday := validRequest()
	saturday.Date = "2026-03-07"
	saturday.Time = "10:00"
	_, err = svc.Book(ctx, saturday)
	require.NoError(t, err)

	byDate := svc.ListByDate(ctx, mondayDate)
	require.Len(t, byDate, 1)
	assert.Equal(t, mondayDate, byDate[0].Date)

	all := svc.List(ctx)
	require.Len(t, all, 2)
	// Most-recent-first ordering.
	assert.Equal(t, "2026-03-07", all[0].Date)
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	svc := newTestService(t, store.NewMemory())

	const bookers = 8
	var wg sync.WaitGroup
	results := make([]error, bookers)

	for i := 0; i < bookers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			_, err := svc.Book(context.Background(), req)
			results[i] = err
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		rej, ok := AsRejection(err)
		require.True(t, ok, "unexpected error: %v", err)
		assert.Equal(t, ReasonSlotUnavailable, rej.Reason)
	}
	assert.Equal(t, 1, winners, "exactly one booking may claim the slot")
}

type failingStore struct {
	store.Store
	failSet bool
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errors.New("disk on fire")
	}
	return f.Store.Set(ctx, key, value)
}

func TestBookSurfacesStorageFailure(t *testing.T) {
	fs := &failingStore{Store: store.NewMemory()}
	svc := newTestService(t, fs)
	ctx := context.Background()

	fs.failSet = true
	_, err := svc.Book(ctx, validRequest())
	var se *StorageError
	require.ErrorAs(t, err, &se)

	// The failed insert must not leave a phantom hold on the slot.
	fs.failSet = false
	_, err = svc.Book(ctx, validRequest())
	require.NoError(t, err)
}

func TestLedgerSurvivesRestart(t *testing.T) {
	st := store.NewMemory()
	svc := newTestService(t, st)
	ctx := context.Background()

	appt, err := svc.Book(ctx, validRequest())
	require.NoError(t, err)

	reloaded := newTestService(t, st)
	stored, err := reloaded.Get(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, appt.ID, stored.ID)

	_, err = reloaded.Book(ctx, validRequest())
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonSlotUnavailable, rej.Reason)
}
