// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nechmerust/sanctuary-api/internal/model"
	"github.com/nechmerust/sanctuary-api/internal/notifier"
	"github.com/nechmerust/sanctuary-api/internal/repository"
)

// Success messages shown on the confirmation screen.
const (
	msgPaymentPending = "Registration successful! Payment instructions will be sent to your email."
	msgConfirmed      = "Registration successful! We look forward to seeing you at the event."
)

// RegistrationService runs the event-registration workflow: validate,
// enforce deadline and capacity, persist, then fire best-effort follow-ups.
type RegistrationService struct {
	events        repository.EventRepository
	registrations repository.RegistrationRepository
	notify        notifier.Notifier
	log           *slog.Logger
	notifyTimeout time.Duration

	// now is injectable for deadline tests.
	now func() time.Time
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(
	events repository.EventRepository,
	registrations repository.RegistrationRepository,
	notify notifier.Notifier,
	log *slog.Logger,
	notifyTimeout time.Duration,
) *RegistrationService {
	return &RegistrationService{
		events:        events,
		registrations: registrations,
		notify:        notify,
		log:           log,
		notifyTimeout: notifyTimeout,
		now:           time.Now,
	}
}

// Register processes one registration attempt.
//
// Everything up to and including the insert is fail-fast: a *WorkflowError
// comes back and no rows are written. The spot claim and the registration
// insert are one atomic store operation, so two concurrent attempts for the
// last spot admit exactly one registrant. After the insert succeeds nothing
// can fail the attempt any more; notification problems are logged and
// recorded as warnings on the result.
func (s *RegistrationService) Register(ctx context.Context, req model.RegisterRequest) (*model.RegistrationResult, error) {
	if err := validateRegisterRequest(&req); err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newWorkflowError(CodeNotFound, "Event not found", err)
		}
		return nil, newWorkflowError(CodePersistence, "Failed to fetch event details", err)
	}

	if event.DeadlinePassed(s.now()) {
		return nil, newWorkflowError(CodeRegistrationClosed, "Registration deadline has passed", nil)
	}
	if event.IsFull() {
		return nil, newWorkflowError(CodeCapacityExceeded, "Event is fully booked", nil)
	}

	paymentStatus := model.PaymentNotRequired
	if event.Price > 0 {
		paymentStatus = model.PaymentPending
	}

	reg := &model.Registration{
		EventID:               req.EventID,
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Age:                   req.Age,
		DietaryRestrictions:   req.DietaryRestrictions,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		SpecialRequests:       req.SpecialRequests,
		PaymentStatus:         paymentStatus,
		PaymentAmount:         event.Price,
		PreferredLanguage:     req.PreferredLanguage,
	}

	stored, position, err := s.registrations.Book(ctx, reg)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, newWorkflowError(CodeNotFound, "Event not found", err)
		case errors.Is(err, repository.ErrEventFull):
			// Lost the race for the last spot to a concurrent attempt.
			return nil, newWorkflowError(CodeCapacityExceeded, "Event is fully booked", err)
		default:
			return nil, newWorkflowError(CodePersistence, "Failed to save registration", err)
		}
	}

	result := &model.RegistrationResult{
		Success:           true,
		RegistrationID:    stored.ID,
		EventTitle:        event.Title.Resolve(req.PreferredLanguage),
		EventDate:         event.StartDate,
		ParticipantNumber: position,
		TotalSpots:        event.MaxParticipants,
		PaymentRequired:   event.Price > 0,
		PaymentAmount:     event.Price,
		Message:           msgConfirmed,
	}
	if event.Price > 0 {
		result.Message = msgPaymentPending
	}

	if warn := s.sendNotification(ctx, req, event, paymentStatus); warn != "" {
		result.Warnings = append(result.Warnings, warn)
	}

	return result, nil
}

// sendNotification dispatches the registration email. It never fails the
// caller; a non-empty return value is a warning for the result.
func (s *RegistrationService) sendNotification(ctx context.Context, req model.RegisterRequest, event *model.Event, paymentStatus string) string {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	data := &notifier.EventRegistrationData{
		RegisterRequest: req,
		EventTitle:      event.Title.Resolve(req.PreferredLanguage),
		EventDate:       notifier.FormatEventDate(event.StartDate, req.PreferredLanguage),
		PaymentAmount:   event.Price,
		PaymentStatus:   paymentStatus,
	}
	if err := s.notify.Notify(nctx, notifier.KindEventRegistration, data); err != nil {
		s.log.Warn("registration saved but notification failed",
			"event_id", req.EventID, "email", req.Email, "error", err)
		return fmt.Sprintf("notification delivery failed: %v", err)
	}
	return ""
}

func validateRegisterRequest(req *model.RegisterRequest) *WorkflowError {
	if req.EventID == 0 {
		return missingFieldError("event_id")
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.FirstName == "" {
		return missingFieldError("first_name")
	}
	if req.LastName == "" {
		return missingFieldError("last_name")
	}
	if req.Email == "" {
		return missingFieldError("email")
	}
	if !isValidEmail(req.Email) {
		return newWorkflowError(CodeValidation, "Invalid email address", nil)
	}
	req.PreferredLanguage = model.NormalizeLanguage(req.PreferredLanguage)
	return nil
}

// isValidEmail does a basic local@domain structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
