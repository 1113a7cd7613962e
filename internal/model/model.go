// Package model defines the core domain types for the sanctuary backend.
package model

import "time"

// Event lifecycle status values managed by the admin process.
const (
	EventStatusActive    = "active"
	EventStatusCancelled = "cancelled"
)

// Payment status values derived at registration time from the event price.
const (
	PaymentNotRequired = "not_required"
	PaymentPending     = "pending"
)

// Event represents a workshop or gathering hosted at the homestead.
type Event struct {
	ID          int64         `json:"id"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description,omitempty"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	Location    string        `json:"location,omitempty"`

	// MaxParticipants is nil for events without a capacity ceiling.
	MaxParticipants     *int `json:"max_participants,omitempty"`
	CurrentParticipants int  `json:"current_participants"`

	RegistrationRequired bool       `json:"registration_required"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`

	// Price is in CZK; zero means the event is free.
	Price     int       `json:"price"`
	EventType string    `json:"event_type,omitempty"`
	Status    string    `json:"status"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsFull reports whether the event has no remaining spots. Events without a
// capacity ceiling are never full.
func (e *Event) IsFull() bool {
	return e.MaxParticipants != nil && e.CurrentParticipants >= *e.MaxParticipants
}

// DeadlinePassed reports whether the registration deadline lies strictly
// before now. Events without a deadline stay open until they start.
func (e *Event) DeadlinePassed(now time.Time) bool {
	return e.RegistrationDeadline != nil && e.RegistrationDeadline.Before(now)
}

// Registration represents a single participant's signup for an event.
type Registration struct {
	ID      int64 `json:"id"`
	EventID int64 `json:"event_id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Age       *int   `json:"age,omitempty"`

	DietaryRestrictions   string `json:"dietary_restrictions,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`
	SpecialRequests       string `json:"special_requests,omitempty"`

	PaymentStatus     string    `json:"payment_status"`
	PaymentAmount     int       `json:"payment_amount"`
	PreferredLanguage string    `json:"preferred_language"`
	RegisteredAt      time.Time `json:"registered_at"`
}

// Animal is a resident of the sanctuary shown on the public site.
type Animal struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Species      string        `json:"species"`
	Breed        string        `json:"breed,omitempty"`
	AgeYears     *int          `json:"age_years,omitempty"`
	Gender       string        `json:"gender,omitempty"`
	ArrivalDate  *time.Time    `json:"arrival_date,omitempty"`
	Story        LocalizedText `json:"story,omitempty"`
	Personality  LocalizedText `json:"personality,omitempty"`
	SpecialNeeds LocalizedText `json:"special_needs,omitempty"`
	IsAdoptable  bool          `json:"is_adoptable"`
	IsFeatured   bool          `json:"is_featured"`
	Status       string        `json:"status"`
	ImageURL     string        `json:"image_url,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ContactSubmission is a message sent through the contact form.
type ContactSubmission struct {
	ID                     int64         `json:"id"`
	Name                   string        `json:"name"`
	Email                  string        `json:"email"`
	Phone                  string        `json:"phone,omitempty"`
	Subject                LocalizedText `json:"subject,omitempty"`
	Message                LocalizedText `json:"message"`
	InquiryType            string        `json:"inquiry_type,omitempty"`
	PreferredContactMethod string        `json:"preferred_contact_method,omitempty"`
	PreferredLanguage      string        `json:"preferred_language"`
	Responded              bool          `json:"responded"`
	SubmittedAt            time.Time     `json:"submitted_at"`
}

// VolunteerApplication is a signup from the volunteer form.
type VolunteerApplication struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Age       *int   `json:"age,omitempty"`
	Location  string `json:"location,omitempty"`

	AvailabilityWeekdays   bool `json:"availability_weekdays"`
	AvailabilityWeekends   bool `json:"availability_weekends"`
	AvailabilityMornings   bool `json:"availability_mornings"`
	AvailabilityAfternoons bool `json:"availability_afternoons"`
	AvailabilityEvenings   bool `json:"availability_evenings"`

	Skills            string        `json:"skills,omitempty"`
	ExperienceAnimals string        `json:"experience_animals,omitempty"`
	ExperienceFarming string        `json:"experience_farming,omitempty"`
	Motivation        LocalizedText `json:"motivation,omitempty"`

	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`

	HasDriversLicense bool   `json:"has_drivers_license"`
	CanLiftHeavy      bool   `json:"can_lift_heavy"`
	Allergies         string `json:"allergies,omitempty"`
	MedicalConditions string `json:"medical_conditions,omitempty"`

	PreferredLanguage string    `json:"preferred_language"`
	Status            string    `json:"status"`
	AppliedAt         time.Time `json:"applied_at"`
}

// RegisterRequest is the payload for registering for an event.
type RegisterRequest struct {
	EventID               int64  `json:"event_id"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone,omitempty"`
	Age                   *int   `json:"age,omitempty"`
	DietaryRestrictions   string `json:"dietary_restrictions,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`
	SpecialRequests       string `json:"special_requests,omitempty"`
	PreferredLanguage     string `json:"preferred_language,omitempty"`
}

// RegistrationResult summarises a successful registration attempt.
//
// Warnings records best-effort follow-up steps (counter reconciliation,
// notification delivery) that failed after the registration was durably
// created. They are logged for operational follow-up and never turn the
// result into a caller-visible failure.
type RegistrationResult struct {
	Success           bool      `json:"success"`
	RegistrationID    int64     `json:"registrationId"`
	EventTitle        string    `json:"eventTitle"`
	EventDate         time.Time `json:"eventDate"`
	ParticipantNumber int       `json:"participantNumber"`
	TotalSpots        *int      `json:"totalSpots"`
	PaymentRequired   bool      `json:"paymentRequired"`
	PaymentAmount     int       `json:"paymentAmount"`
	Message           string    `json:"message"`

	Warnings []string `json:"-"`
}
