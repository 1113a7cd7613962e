// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nechmerust/sanctuary-api/internal/model"
	"github.com/nechmerust/sanctuary-api/internal/service"
)

// Handler holds all HTTP handlers for the sanctuary API.
type Handler struct {
	registrations *service.RegistrationService
	submissions   *service.SubmissionService
	content       *service.ContentService
	log           *slog.Logger
}

// New constructs a Handler.
func New(
	registrations *service.RegistrationService,
	submissions *service.SubmissionService,
	content *service.ContentService,
	log *slog.Logger,
) *Handler {
	return &Handler{
		registrations: registrations,
		submissions:   submissions,
		content:       content,
		log:           log,
	}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

// dataEnvelope wraps every success payload.
type dataEnvelope struct {
	Data any `json:"data"`
}

// errorBody is the structured error payload.
type errorBody struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, dataEnvelope{Data: v})
}

// statusFor maps the workflow error taxonomy to HTTP statuses. The old
// site returned 500 for everything; no client depends on that, so precise
// codes are used instead.
func statusFor(code service.Code) int {
	switch code {
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeRegistrationClosed, service.CodeCapacityExceeded:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var wErr *service.WorkflowError
	if errors.As(err, &wErr) {
		writeJSON(w, statusFor(wErr.Code), errorEnvelope{Error: errorBody{
			Code:      string(wErr.Code),
			Message:   wErr.Message,
			Timestamp: wErr.Timestamp,
		}})
		return
	}
	h.log.Error("unhandled error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: errorBody{
		Code:      string(service.CodePersistence),
		Message:   "Internal error",
		Timestamp: time.Now().UTC(),
	}})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
		Code:      string(service.CodeValidation),
		Message:   msg,
		Timestamp: time.Now().UTC(),
	}})
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// RegisterEvent handles POST /api/events/register
// Runs the full registration workflow for an event.
func (h *Handler) RegisterEvent(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	result, err := h.registrations.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, result)
}

// SubmitContact handles POST /api/contact
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var sub model.ContactSubmission
	if err := decodeJSON(r, &sub); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	stored, err := h.submissions.SubmitContact(r.Context(), &sub)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"success":      true,
		"submissionId": stored.ID,
	})
}

// SubmitVolunteer handles POST /api/volunteer
func (h *Handler) SubmitVolunteer(w http.ResponseWriter, r *http.Request) {
	var app model.VolunteerApplication
	if err := decodeJSON(r, &app); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	stored, err := h.submissions.SubmitVolunteer(r.Context(), &app)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"success":       true,
		"applicationId": stored.ID,
	})
}

// ListEvents handles GET /api/events
// Returns upcoming active events for the events section.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.content.UpcomingEvents(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.Event{}
	}
	writeData(w, http.StatusOK, events)
}

// ListAnimals handles GET /api/animals
// Returns the sanctuary's current residents for the animals section.
func (h *Handler) ListAnimals(w http.ResponseWriter, r *http.Request) {
	animals, err := h.content.SanctuaryAnimals(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	if animals == nil {
		animals = []model.Animal{}
	}
	writeData(w, http.StatusOK, animals)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
