package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nechmerust/sanctuary-api/internal/model"
)

// Memory is an in-memory record store used in dev mode and tests. A single
// mutex guards the event counters, which gives Book the same atomicity as
// the Postgres row lock.
type Memory struct {
	mu            sync.Mutex
	events        map[int64]*model.Event
	registrations map[int64]*model.Registration
	contacts      map[int64]*model.ContactSubmission
	volunteers    map[int64]*model.VolunteerApplication
	animals       map[int64]*model.Animal
	nextID        int64
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		events:        make(map[int64]*model.Event),
		registrations: make(map[int64]*model.Registration),
		contacts:      make(map[int64]*model.ContactSubmission),
		volunteers:    make(map[int64]*model.VolunteerApplication),
		animals:       make(map[int64]*model.Animal),
	}
}

func (m *Memory) nextIDLocked() int64 {
	m.nextID++
	return m.nextID
}

// PutEvent stores or replaces an event. Intended for seeding.
func (m *Memory) PutEvent(e *model.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == 0 {
		e.ID = m.nextIDLocked()
	} else if e.ID > m.nextID {
		m.nextID = e.ID
	}
	cp := *e
	m.events[e.ID] = &cp
}

// PutAnimal stores or replaces an animal. Intended for seeding.
func (m *Memory) PutAnimal(a *model.Animal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == 0 {
		a.ID = m.nextIDLocked()
	} else if a.ID > m.nextID {
		m.nextID = a.ID
	}
	cp := *a
	m.animals[a.ID] = &cp
}

func (m *Memory) GetByID(_ context.Context, id int64) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *Memory) ListUpcoming(_ context.Context, now time.Time) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []model.Event
	for _, e := range m.events {
		if e.Status == model.EventStatusActive && !e.StartDate.Before(now) {
			events = append(events, *e)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})
	return events, nil
}

func (m *Memory) Book(_ context.Context, reg *model.Registration) (*model.Registration, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[reg.EventID]
	if !ok {
		return nil, 0, ErrNotFound
	}
	if e.MaxParticipants != nil && e.CurrentParticipants >= *e.MaxParticipants {
		return nil, 0, ErrEventFull
	}

	e.CurrentParticipants++
	e.UpdatedAt = time.Now().UTC()

	stored := *reg
	stored.ID = m.nextIDLocked()
	stored.RegisteredAt = time.Now().UTC()
	m.registrations[stored.ID] = &stored

	cp := stored
	return &cp, e.CurrentParticipants, nil
}

func (m *Memory) ListByEvent(_ context.Context, eventID int64) ([]model.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var regs []model.Registration
	for _, reg := range m.registrations {
		if reg.EventID == eventID {
			regs = append(regs, *reg)
		}
	}
	sort.Slice(regs, func(i, j int) bool {
		if regs[i].RegisteredAt.Equal(regs[j].RegisteredAt) {
			return regs[i].ID < regs[j].ID
		}
		return regs[i].RegisteredAt.Before(regs[j].RegisteredAt)
	})
	return regs, nil
}

func (m *Memory) ListSanctuary(_ context.Context) ([]model.Animal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var animals []model.Animal
	for _, a := range m.animals {
		if a.Status == "sanctuary" {
			animals = append(animals, *a)
		}
	}
	sort.Slice(animals, func(i, j int) bool {
		if animals[i].IsFeatured != animals[j].IsFeatured {
			return animals[i].IsFeatured
		}
		return animals[i].CreatedAt.After(animals[j].CreatedAt)
	})
	return animals, nil
}

func (m *Memory) Create(_ context.Context, sub *model.ContactSubmission) (*model.ContactSubmission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *sub
	stored.ID = m.nextIDLocked()
	stored.SubmittedAt = time.Now().UTC()
	m.contacts[stored.ID] = &stored
	cp := stored
	return &cp, nil
}

// CreateVolunteer persists a volunteer application.
//
// Named differently from Create because Memory backs every repository
// interface at once; MemoryVolunteerRepo adapts it below.
func (m *Memory) CreateVolunteer(_ context.Context, app *model.VolunteerApplication) (*model.VolunteerApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *app
	stored.ID = m.nextIDLocked()
	stored.AppliedAt = time.Now().UTC()
	stored.Status = "pending"
	m.volunteers[stored.ID] = &stored
	cp := stored
	return &cp, nil
}

// MemoryVolunteerRepo exposes Memory as a VolunteerRepository.
type MemoryVolunteerRepo struct {
	*Memory
}

// NewMemoryVolunteerRepo wraps m as a VolunteerRepository.
func NewMemoryVolunteerRepo(m *Memory) MemoryVolunteerRepo {
	return MemoryVolunteerRepo{Memory: m}
}

func (r MemoryVolunteerRepo) Create(ctx context.Context, app *model.VolunteerApplication) (*model.VolunteerApplication, error) {
	return r.CreateVolunteer(ctx, app)
}
