// Package repository defines the persistence interfaces for the sanctuary
// backend and provides Postgres and in-memory implementations.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nechmerust/sanctuary-api/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrEventFull is returned when an event has no remaining capacity.
var ErrEventFull = errors.New("event is fully booked")

// EventRepository reads event rows.
type EventRepository interface {
	// GetByID returns a single event or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*model.Event, error)

	// ListUpcoming returns active events starting at or after now,
	// earliest first.
	ListUpcoming(ctx context.Context, now time.Time) ([]model.Event, error)
}

// RegistrationRepository persists event registrations.
type RegistrationRepository interface {
	// Book atomically claims a spot on the event and inserts the
	// registration. The event's participant counter and the new row move
	// together: either both are committed or neither is, so two
	// concurrent bookings for the last spot can never both succeed.
	//
	// Returns the stored registration and the participant's position
	// (the counter value after the claim). Fails with ErrNotFound if the
	// event does not exist and ErrEventFull if it has no spots left.
	Book(ctx context.Context, reg *model.Registration) (*model.Registration, int, error)

	// ListByEvent returns all registrations for an event, oldest first.
	ListByEvent(ctx context.Context, eventID int64) ([]model.Registration, error)
}

// AnimalRepository reads animal rows for the public site.
type AnimalRepository interface {
	// ListSanctuary returns current residents, featured animals first,
	// then newest arrivals.
	ListSanctuary(ctx context.Context) ([]model.Animal, error)
}

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, sub *model.ContactSubmission) (*model.ContactSubmission, error)
}

// VolunteerRepository persists volunteer applications.
type VolunteerRepository interface {
	Create(ctx context.Context, app *model.VolunteerApplication) (*model.VolunteerApplication, error)
}
