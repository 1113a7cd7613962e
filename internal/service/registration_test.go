package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nechmerust/sanctuary-api/internal/model"
	"github.com/nechmerust/sanctuary-api/internal/notifier"
	"github.com/nechmerust/sanctuary-api/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeNotifier records notifications and can be told to fail.
type fakeNotifier struct {
	mu    sync.Mutex
	err   error
	calls int
	kind  notifier.Kind
	data  any
}

func (f *fakeNotifier) Notify(_ context.Context, kind notifier.Kind, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.kind = kind
	f.data = data
	return f.err
}

// countingEvents wraps a repository and counts reads, so tests can assert
// that invalid requests never reach the store.
type countingEvents struct {
	repository.EventRepository
	reads int
}

func (c *countingEvents) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	c.reads++
	return c.EventRepository.GetByID(ctx, id)
}

// failingRegs simulates a store that rejects the registration insert.
type failingRegs struct{}

func (failingRegs) Book(context.Context, *model.Registration) (*model.Registration, int, error) {
	return nil, 0, fmt.Errorf("connection refused")
}

func (failingRegs) ListByEvent(context.Context, int64) ([]model.Registration, error) {
	return nil, nil
}

func intPtr(v int) *int { return &v }

func seedEvent(mem *repository.Memory, e model.Event) *model.Event {
	if e.ID == 0 {
		e.ID = 1
	}
	if e.Status == "" {
		e.Status = model.EventStatusActive
	}
	if e.Title == nil {
		e.Title = model.LocalizedText{
			model.LangCS: "Den otevřených vrat",
			model.LangEN: "Open Gate Day",
		}
	}
	if e.StartDate.IsZero() {
		e.StartDate = time.Now().Add(14 * 24 * time.Hour)
	}
	mem.PutEvent(&e)
	return &e
}

func validRequest(eventID int64) model.RegisterRequest {
	return model.RegisterRequest{
		EventID:   eventID,
		FirstName: "Jana",
		LastName:  "Nováková",
		Email:     "jana@example.com",
	}
}

func newTestService(mem *repository.Memory, fn *fakeNotifier) *RegistrationService {
	return NewRegistrationService(mem, mem, fn, testLogger(), time.Second)
}

func TestRegister_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.RegisterRequest)
		field  string
	}{
		{"event_id", func(r *model.RegisterRequest) { r.EventID = 0 }, "event_id"},
		{"first_name", func(r *model.RegisterRequest) { r.FirstName = "" }, "first_name"},
		{"last_name", func(r *model.RegisterRequest) { r.LastName = "  " }, "last_name"},
		{"email", func(r *model.RegisterRequest) { r.Email = "" }, "email"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mem := repository.NewMemory()
			seedEvent(mem, model.Event{})
			events := &countingEvents{EventRepository: mem}
			fn := &fakeNotifier{}
			svc := NewRegistrationService(events, mem, fn, testLogger(), time.Second)

			req := validRequest(1)
			tc.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			var wErr *WorkflowError
			require.ErrorAs(t, err, &wErr)
			assert.Equal(t, CodeValidation, wErr.Code)
			assert.Contains(t, wErr.Message, tc.field)
			assert.False(t, wErr.Timestamp.IsZero())

			// No store access, no writes, no notification.
			assert.Zero(t, events.reads)
			regs, _ := mem.ListByEvent(context.Background(), 1)
			assert.Empty(t, regs)
			assert.Zero(t, fn.calls)
		})
	}
}

func TestRegister_MalformedEmailRejectedBeforeStoreRead(t *testing.T) {
	mem := repository.NewMemory()
	seedEvent(mem, model.Event{})
	events := &countingEvents{EventRepository: mem}
	svc := NewRegistrationService(events, mem, &fakeNotifier{}, testLogger(), time.Second)

	req := validRequest(1)
	req.Email = "not-an-email"

	_, err := svc.Register(context.Background(), req)
	var wErr *WorkflowError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, CodeValidation, wErr.Code)
	assert.Zero(t, events.reads)
}

func TestRegister_UnknownEvent(t *testing.T) {
	mem := repository.NewMemory()
	fn := &fakeNotifier{}
	svc := newTestService(mem, fn)

	_, err := svc.Register(context.Background(), validRequest(42))
	var wErr *WorkflowError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, CodeNotFound, wErr.Code)

	regs, _ := mem.ListByEvent(context.Background(), 42)
	assert.Empty(t, regs)
	assert.Zero(t, fn.calls)
}

func TestRegister_DeadlinePassed(t *testing.T) {
	mem := repository.NewMemory()
	past := time.Now().Add(-time.Hour)
	seedEvent(mem, model.Event{RegistrationDeadline: &past})
	fn := &fakeNotifier{}
	svc := newTestService(mem, fn)

	_, err := svc.Register(context.Background(), validRequest(1))
	var wErr *WorkflowError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, CodeRegistrationClosed, wErr.Code)

	ev, _ := mem.GetByID(context.Background(), 1)
	assert.Zero(t, ev.CurrentParticipants)
	regs, _ := mem.ListByEvent(context.Background(), 1)
	assert.Empty(t, regs)
}

func TestRegister_DeadlineInFutureStillOpen(t *testing.T) {
	mem := repository.NewMemory()
	future := time.Now().Add(time.Hour)
	seedEvent(mem, model.Event{RegistrationDeadline: &future})
	svc := newTestService(mem, &fakeNotifier{})

	result, err := svc.Register(context.Background(), validRequest(1))
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestRegister_CapacityEnforcement(t *testing.T) {
	t.Run("full event is rejected without writes", func(t *testing.T) {
		mem := repository.NewMemory()
		seedEvent(mem, model.Event{
			MaxParticipants:     intPtr(2),
			CurrentParticipants: 2,
		})
		fn := &fakeNotifier{}
		svc := newTestService(mem, fn)

		_, err := svc.Register(context.Background(), validRequest(1))
		var wErr *WorkflowError
		require.ErrorAs(t, err, &wErr)
		assert.Equal(t, CodeCapacityExceeded, wErr.Code)

		ev, _ := mem.GetByID(context.Background(), 1)
		assert.Equal(t, 2, ev.CurrentParticipants)
		regs, _ := mem.ListByEvent(context.Background(), 1)
		assert.Empty(t, regs)
		assert.Zero(t, fn.calls)
	})

	t.Run("one spot left admits exactly one registration", func(t *testing.T) {
		mem := repository.NewMemory()
		seedEvent(mem, model.Event{
			MaxParticipants:     intPtr(2),
			CurrentParticipants: 1,
		})
		svc := newTestService(mem, &fakeNotifier{})

		result, err := svc.Register(context.Background(), validRequest(1))
		require.NoError(t, err)
		assert.Equal(t, 2, result.ParticipantNumber)

		ev, _ := mem.GetByID(context.Background(), 1)
		assert.Equal(t, 2, ev.CurrentParticipants)
		regs, _ := mem.ListByEvent(context.Background(), 1)
		require.Len(t, regs, 1)
	})
}

func TestRegister_PaymentDerivation(t *testing.T) {
	t.Run("free event", func(t *testing.T) {
		mem := repository.NewMemory()
		seedEvent(mem, model.Event{Price: 0})
		svc := newTestService(mem, &fakeNotifier{})

		result, err := svc.Register(context.Background(), validRequest(1))
		require.NoError(t, err)
		assert.False(t, result.PaymentRequired)
		assert.Zero(t, result.PaymentAmount)
		assert.Equal(t, msgConfirmed, result.Message)

		regs, _ := mem.ListByEvent(context.Background(), 1)
		require.Len(t, regs, 1)
		assert.Equal(t, model.PaymentNotRequired, regs[0].PaymentStatus)
	})

	t.Run("paid event", func(t *testing.T) {
		mem := repository.NewMemory()
		seedEvent(mem, model.Event{Price: 250})
		svc := newTestService(mem, &fakeNotifier{})

		result, err := svc.Register(context.Background(), validRequest(1))
		require.NoError(t, err)
		assert.True(t, result.PaymentRequired)
		assert.Equal(t, 250, result.PaymentAmount)
		assert.Equal(t, msgPaymentPending, result.Message)

		regs, _ := mem.ListByEvent(context.Background(), 1)
		require.Len(t, regs, 1)
		assert.Equal(t, model.PaymentPending, regs[0].PaymentStatus)
		assert.Equal(t, 250, regs[0].PaymentAmount)
	})
}

func TestRegister_NotificationFailureIsInvisible(t *testing.T) {
	mem := repository.NewMemory()
	seedEvent(mem, model.Event{Price: 250})
	fn := &fakeNotifier{err: errors.New("smtp timeout")}
	svc := newTestService(mem, fn)

	result, err := svc.Register(context.Background(), validRequest(1))
	require.NoError(t, err)

	// Identical success shape to the no-failure case; the only trace is
	// the warning list, which is not part of the HTTP payload.
	assert.True(t, result.Success)
	assert.NotZero(t, result.RegistrationID)
	assert.Equal(t, 1, result.ParticipantNumber)
	assert.Equal(t, msgPaymentPending, result.Message)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "notification delivery failed")

	regs, _ := mem.ListByEvent(context.Background(), 1)
	require.Len(t, regs, 1)
}

func TestRegister_NotificationPayload(t *testing.T) {
	mem := repository.NewMemory()
	start := time.Date(2026, time.June, 13, 10, 0, 0, 0, time.UTC)
	seedEvent(mem, model.Event{Price: 250, StartDate: start})
	fn := &fakeNotifier{}
	svc := newTestService(mem, fn)

	req := validRequest(1)
	req.PreferredLanguage = model.LangEN
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, 1, fn.calls)
	assert.Equal(t, notifier.KindEventRegistration, fn.kind)
	data, ok := fn.data.(*notifier.EventRegistrationData)
	require.True(t, ok)
	assert.Equal(t, "Open Gate Day", data.EventTitle)
	assert.Equal(t, model.PaymentPending, data.PaymentStatus)
	assert.Equal(t, 250, data.PaymentAmount)
	assert.NotEmpty(t, data.EventDate)
}

func TestRegister_PersistenceFailureIsTerminal(t *testing.T) {
	mem := repository.NewMemory()
	seedEvent(mem, model.Event{})
	fn := &fakeNotifier{}
	svc := NewRegistrationService(mem, failingRegs{}, fn, testLogger(), time.Second)

	_, err := svc.Register(context.Background(), validRequest(1))
	var wErr *WorkflowError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, CodePersistence, wErr.Code)

	// No notification after a failed insert.
	assert.Zero(t, fn.calls)
}

// Two concurrent registrations race for the last spot. The store claims the
// spot and inserts the row atomically, so exactly one attempt wins and the
// other is turned away with a capacity error.
func TestRegister_ConcurrentLastSpot(t *testing.T) {
	mem := repository.NewMemory()
	seedEvent(mem, model.Event{
		MaxParticipants:     intPtr(1),
		CurrentParticipants: 0,
	})
	svc := newTestService(mem, &fakeNotifier{})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest(1)
			req.Email = fmt.Sprintf("racer%d@example.com", i)
			_, errs[i] = svc.Register(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var successes, capacityErrs int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var wErr *WorkflowError
		require.ErrorAs(t, err, &wErr)
		require.Equal(t, CodeCapacityExceeded, wErr.Code)
		capacityErrs++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, capacityErrs)

	ev, _ := mem.GetByID(context.Background(), 1)
	assert.Equal(t, 1, ev.CurrentParticipants)
	regs, _ := mem.ListByEvent(context.Background(), 1)
	assert.Len(t, regs, 1)
}

func TestRegister_EndToEnd(t *testing.T) {
	mem := repository.NewMemory()
	seedEvent(mem, model.Event{
		ID:                  7,
		MaxParticipants:     intPtr(10),
		CurrentParticipants: 9,
		Price:               0,
	})
	svc := newTestService(mem, &fakeNotifier{})

	result, err := svc.Register(context.Background(), model.RegisterRequest{
		EventID:   7,
		FirstName: "Jana",
		LastName:  "Nováková",
		Email:     "jana@example.com",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 10, result.ParticipantNumber)
	require.NotNil(t, result.TotalSpots)
	assert.Equal(t, 10, *result.TotalSpots)
	assert.False(t, result.PaymentRequired)
	assert.Equal(t, "Den otevřených vrat", result.EventTitle)

	ev, _ := mem.GetByID(context.Background(), 7)
	assert.Equal(t, 10, ev.CurrentParticipants)
}

func TestRegister_DefaultsLanguageToCzech(t *testing.T) {
	mem := repository.NewMemory()
	seedEvent(mem, model.Event{})
	svc := newTestService(mem, &fakeNotifier{})

	_, err := svc.Register(context.Background(), validRequest(1))
	require.NoError(t, err)

	regs, _ := mem.ListByEvent(context.Background(), 1)
	require.Len(t, regs, 1)
	assert.Equal(t, model.LangCS, regs[0].PreferredLanguage)
}
