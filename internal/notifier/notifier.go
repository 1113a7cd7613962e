// Package notifier delivers best-effort email notifications for form
// submissions. Delivery failures are the caller's to log; no notifier error
// may abort the transaction that triggered it.
package notifier

import (
	"context"

	"github.com/nechmerust/sanctuary-api/internal/model"
)

// Kind tags a notification payload.
type Kind string

const (
	KindContact           Kind = "contact"
	KindVolunteer         Kind = "volunteer"
	KindEventRegistration Kind = "event_registration"
)

// Notifier sends a single notification. Implementations must honour the
// context deadline.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, data any) error
}

// EventRegistrationData is the payload for registration notifications. It
// combines the submitted request with event details resolved to the
// registrant's language.
type EventRegistrationData struct {
	model.RegisterRequest

	EventTitle    string
	EventDate     string
	PaymentAmount int
	PaymentStatus string
}
