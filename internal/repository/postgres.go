package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nechmerust/sanctuary-api/internal/model"
)

// eventColumns is the shared SELECT list for event queries.
const eventColumns = `id, title_cs, title_en, description_cs, description_en,
	start_date, end_date, location, max_participants, current_participants,
	registration_required, registration_deadline, price, event_type, status,
	image_url, created_at, updated_at`

// PostgresEventRepo reads events from Postgres via pgx.
type PostgresEventRepo struct {
	db *pgxpool.Pool
}

// NewPostgresEventRepo constructs a PostgresEventRepo.
func NewPostgresEventRepo(db *pgxpool.Pool) *PostgresEventRepo {
	return &PostgresEventRepo{db: db}
}

func (r *PostgresEventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *PostgresEventRepo) ListUpcoming(ctx context.Context, now time.Time) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM events
		 WHERE status = $1 AND start_date >= $2
		 ORDER BY start_date ASC`,
		model.EventStatusActive, now,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var (
		e                        model.Event
		titleCS, titleEN         *string
		descCS, descEN           *string
		location, imageURL       *string
		eventType                *string
	)
	err := row.Scan(
		&e.ID, &titleCS, &titleEN, &descCS, &descEN,
		&e.StartDate, &e.EndDate, &location, &e.MaxParticipants,
		&e.CurrentParticipants, &e.RegistrationRequired,
		&e.RegistrationDeadline, &e.Price, &eventType, &e.Status,
		&imageURL, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Title = localized(titleCS, titleEN)
	e.Description = localized(descCS, descEN)
	e.Location = deref(location)
	e.EventType = deref(eventType)
	e.ImageURL = deref(imageURL)
	return &e, nil
}

// localized folds the parallel *_cs/*_en columns into a LocalizedText.
func localized(cs, en *string) model.LocalizedText {
	t := model.LocalizedText{}
	if cs != nil && *cs != "" {
		t[model.LangCS] = *cs
	}
	if en != nil && *en != "" {
		t[model.LangEN] = *en
	}
	if len(t) == 0 {
		return nil
	}
	return t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// PostgresRegistrationRepo persists event registrations.
type PostgresRegistrationRepo struct {
	db *pgxpool.Pool
}

// NewPostgresRegistrationRepo constructs a PostgresRegistrationRepo.
func NewPostgresRegistrationRepo(db *pgxpool.Pool) *PostgresRegistrationRepo {
	return &PostgresRegistrationRepo{db: db}
}

// Book claims a spot and inserts the registration in one transaction.
//
// SELECT ... FOR UPDATE takes a row-level lock on the event, so concurrent
// bookings serialise on the counter instead of both reading the same
// snapshot and overbooking the last spot. The counter increment and the
// registration insert commit together.
func (r *PostgresRegistrationRepo) Book(ctx context.Context, reg *model.Registration) (*model.Registration, int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var (
		maxParticipants *int
		current         int
	)
	err = tx.QueryRow(ctx,
		`SELECT max_participants, current_participants
		 FROM events
		 WHERE id = $1
		 FOR UPDATE`,
		reg.EventID,
	).Scan(&maxParticipants, &current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("lock event row: %w", err)
	}

	if maxParticipants != nil && current >= *maxParticipants {
		err = ErrEventFull
		return nil, 0, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE events
		 SET current_participants = current_participants + 1, updated_at = now()
		 WHERE id = $1`,
		reg.EventID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("increment participants: %w", err)
	}

	stored := *reg
	err = tx.QueryRow(ctx,
		`INSERT INTO event_registrations
		   (event_id, first_name, last_name, email, phone, age,
		    dietary_restrictions, emergency_contact_name,
		    emergency_contact_phone, special_requests, payment_status,
		    payment_amount, preferred_language)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, registered_at`,
		reg.EventID, reg.FirstName, reg.LastName, reg.Email,
		nullable(reg.Phone), reg.Age, nullable(reg.DietaryRestrictions),
		nullable(reg.EmergencyContactName), nullable(reg.EmergencyContactPhone),
		nullable(reg.SpecialRequests), reg.PaymentStatus, reg.PaymentAmount,
		reg.PreferredLanguage,
	).Scan(&stored.ID, &stored.RegisteredAt)
	if err != nil {
		return nil, 0, fmt.Errorf("insert registration: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("commit transaction: %w", err)
	}
	return &stored, current + 1, nil
}

func (r *PostgresRegistrationRepo) ListByEvent(ctx context.Context, eventID int64) ([]model.Registration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, first_name, last_name, email, phone, age,
		        dietary_restrictions, emergency_contact_name,
		        emergency_contact_phone, special_requests, payment_status,
		        payment_amount, preferred_language, registered_at
		 FROM event_registrations
		 WHERE event_id = $1
		 ORDER BY registered_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var (
			reg                      model.Registration
			phone, dietary           *string
			emName, emPhone, special *string
		)
		if err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.FirstName, &reg.LastName,
			&reg.Email, &phone, &reg.Age, &dietary, &emName, &emPhone,
			&special, &reg.PaymentStatus, &reg.PaymentAmount,
			&reg.PreferredLanguage, &reg.RegisteredAt,
		); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		reg.Phone = deref(phone)
		reg.DietaryRestrictions = deref(dietary)
		reg.EmergencyContactName = deref(emName)
		reg.EmergencyContactPhone = deref(emPhone)
		reg.SpecialRequests = deref(special)
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// PostgresAnimalRepo reads sanctuary animals.
type PostgresAnimalRepo struct {
	db *pgxpool.Pool
}

// NewPostgresAnimalRepo constructs a PostgresAnimalRepo.
func NewPostgresAnimalRepo(db *pgxpool.Pool) *PostgresAnimalRepo {
	return &PostgresAnimalRepo{db: db}
}

func (r *PostgresAnimalRepo) ListSanctuary(ctx context.Context) ([]model.Animal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, species, breed, age_years, gender, arrival_date,
		        story_cs, story_en, personality_cs, personality_en,
		        special_needs_cs, special_needs_en, is_adoptable,
		        is_featured, status, image_url, created_at, updated_at
		 FROM animals
		 WHERE status = 'sanctuary'
		 ORDER BY is_featured DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}
	defer rows.Close()

	var animals []model.Animal
	for rows.Next() {
		var (
			a                        model.Animal
			breed, gender, imageURL  *string
			storyCS, storyEN         *string
			persCS, persEN           *string
			needsCS, needsEN         *string
		)
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Species, &breed, &a.AgeYears, &gender,
			&a.ArrivalDate, &storyCS, &storyEN, &persCS, &persEN,
			&needsCS, &needsEN, &a.IsAdoptable, &a.IsFeatured, &a.Status,
			&imageURL, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan animal: %w", err)
		}
		a.Breed = deref(breed)
		a.Gender = deref(gender)
		a.ImageURL = deref(imageURL)
		a.Story = localized(storyCS, storyEN)
		a.Personality = localized(persCS, persEN)
		a.SpecialNeeds = localized(needsCS, needsEN)
		animals = append(animals, a)
	}
	return animals, rows.Err()
}

// PostgresContactRepo persists contact submissions.
type PostgresContactRepo struct {
	db *pgxpool.Pool
}

// NewPostgresContactRepo constructs a PostgresContactRepo.
func NewPostgresContactRepo(db *pgxpool.Pool) *PostgresContactRepo {
	return &PostgresContactRepo{db: db}
}

func (r *PostgresContactRepo) Create(ctx context.Context, sub *model.ContactSubmission) (*model.ContactSubmission, error) {
	stored := *sub
	err := r.db.QueryRow(ctx,
		`INSERT INTO contact_submissions
		   (name, email, phone, subject_cs, subject_en, message_cs,
		    message_en, inquiry_type, preferred_contact_method,
		    preferred_language, responded)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, false)
		 RETURNING id, submitted_at`,
		sub.Name, sub.Email, nullable(sub.Phone),
		nullable(sub.Subject[model.LangCS]), nullable(sub.Subject[model.LangEN]),
		nullable(sub.Message[model.LangCS]), nullable(sub.Message[model.LangEN]),
		nullable(sub.InquiryType), nullable(sub.PreferredContactMethod),
		sub.PreferredLanguage,
	).Scan(&stored.ID, &stored.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("insert contact submission: %w", err)
	}
	return &stored, nil
}

// PostgresVolunteerRepo persists volunteer applications.
type PostgresVolunteerRepo struct {
	db *pgxpool.Pool
}

// NewPostgresVolunteerRepo constructs a PostgresVolunteerRepo.
func NewPostgresVolunteerRepo(db *pgxpool.Pool) *PostgresVolunteerRepo {
	return &PostgresVolunteerRepo{db: db}
}

func (r *PostgresVolunteerRepo) Create(ctx context.Context, app *model.VolunteerApplication) (*model.VolunteerApplication, error) {
	stored := *app
	err := r.db.QueryRow(ctx,
		`INSERT INTO volunteer_applications
		   (first_name, last_name, email, phone, age, location,
		    availability_weekdays, availability_weekends,
		    availability_mornings, availability_afternoons,
		    availability_evenings, skills, experience_animals,
		    experience_farming, motivation_cs, motivation_en,
		    emergency_contact_name, emergency_contact_phone,
		    has_drivers_license, can_lift_heavy, allergies,
		    medical_conditions, preferred_language, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		         $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, 'pending')
		 RETURNING id, applied_at`,
		app.FirstName, app.LastName, app.Email, nullable(app.Phone),
		app.Age, nullable(app.Location), app.AvailabilityWeekdays,
		app.AvailabilityWeekends, app.AvailabilityMornings,
		app.AvailabilityAfternoons, app.AvailabilityEvenings,
		nullable(app.Skills), nullable(app.ExperienceAnimals),
		nullable(app.ExperienceFarming),
		nullable(app.Motivation[model.LangCS]), nullable(app.Motivation[model.LangEN]),
		nullable(app.EmergencyContactName), nullable(app.EmergencyContactPhone),
		app.HasDriversLicense, app.CanLiftHeavy, nullable(app.Allergies),
		nullable(app.MedicalConditions), app.PreferredLanguage,
	).Scan(&stored.ID, &stored.AppliedAt)
	if err != nil {
		return nil, fmt.Errorf("insert volunteer application: %w", err)
	}
	stored.Status = "pending"
	return &stored, nil
}
