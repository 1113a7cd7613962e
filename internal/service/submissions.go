package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nechmerust/sanctuary-api/internal/model"
	"github.com/nechmerust/sanctuary-api/internal/notifier"
	"github.com/nechmerust/sanctuary-api/internal/repository"
)

// SubmissionService handles the two straightforward form paths: contact
// messages and volunteer applications. Both are a validated insert followed
// by a best-effort notification.
type SubmissionService struct {
	contacts      repository.ContactRepository
	volunteers    repository.VolunteerRepository
	notify        notifier.Notifier
	log           *slog.Logger
	notifyTimeout time.Duration
}

// NewSubmissionService constructs a SubmissionService.
func NewSubmissionService(
	contacts repository.ContactRepository,
	volunteers repository.VolunteerRepository,
	notify notifier.Notifier,
	log *slog.Logger,
	notifyTimeout time.Duration,
) *SubmissionService {
	return &SubmissionService{
		contacts:      contacts,
		volunteers:    volunteers,
		notify:        notify,
		log:           log,
		notifyTimeout: notifyTimeout,
	}
}

// SubmitContact validates and stores a contact message.
func (s *SubmissionService) SubmitContact(ctx context.Context, sub *model.ContactSubmission) (*model.ContactSubmission, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(strings.ToLower(sub.Email))
	if sub.Name == "" {
		return nil, missingFieldError("name")
	}
	if sub.Email == "" {
		return nil, missingFieldError("email")
	}
	if !isValidEmail(sub.Email) {
		return nil, newWorkflowError(CodeValidation, "Invalid email address", nil)
	}
	if sub.Message.Resolve(sub.PreferredLanguage) == "" {
		return nil, missingFieldError("message")
	}
	sub.PreferredLanguage = model.NormalizeLanguage(sub.PreferredLanguage)

	stored, err := s.contacts.Create(ctx, sub)
	if err != nil {
		return nil, newWorkflowError(CodePersistence, "Failed to save contact submission", err)
	}

	s.dispatch(ctx, notifier.KindContact, stored)
	return stored, nil
}

// SubmitVolunteer validates and stores a volunteer application.
func (s *SubmissionService) SubmitVolunteer(ctx context.Context, app *model.VolunteerApplication) (*model.VolunteerApplication, error) {
	app.FirstName = strings.TrimSpace(app.FirstName)
	app.LastName = strings.TrimSpace(app.LastName)
	app.Email = strings.TrimSpace(strings.ToLower(app.Email))
	if app.FirstName == "" {
		return nil, missingFieldError("first_name")
	}
	if app.LastName == "" {
		return nil, missingFieldError("last_name")
	}
	if app.Email == "" {
		return nil, missingFieldError("email")
	}
	if !isValidEmail(app.Email) {
		return nil, newWorkflowError(CodeValidation, "Invalid email address", nil)
	}
	app.PreferredLanguage = model.NormalizeLanguage(app.PreferredLanguage)

	stored, err := s.volunteers.Create(ctx, app)
	if err != nil {
		return nil, newWorkflowError(CodePersistence, "Failed to save volunteer application", err)
	}

	s.dispatch(ctx, notifier.KindVolunteer, stored)
	return stored, nil
}

// dispatch fires a notification and logs any failure without surfacing it.
func (s *SubmissionService) dispatch(ctx context.Context, kind notifier.Kind, data any) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	if err := s.notify.Notify(nctx, kind, data); err != nil {
		s.log.Warn("submission saved but notification failed",
			"kind", string(kind), "error", fmt.Sprintf("%v", err))
	}
}
