package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"go-event-api/core/database"
	"go-event-api/core/logger"
	"go-event-api/modules/attendee/entity"
	evententity "go-event-api/modules/event/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrDuplicateEmail signals the unique index on (event_id, lower(email))
// rejected an insert.
var ErrDuplicateEmail = stderrors.New("email already registered for event")

// AttendeeRepository handles attendee database operations. Its methods are
// transaction-aware: inside WithTx they run on the transaction carried in
// the context, outside they run directly on the pool.
type AttendeeRepository struct {
	DB database.IDatabase
}

// NewAttendeeRepository creates a new repository instance
func NewAttendeeRepository(db database.IDatabase) *AttendeeRepository {
	return &AttendeeRepository{DB: db}
}

// AttendeeRepositoryInterface defines the repository contract
type AttendeeRepositoryInterface interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEventForUpdate(ctx context.Context, eventID uuid.UUID) (*evententity.Event, error)
	CountByEventID(ctx context.Context, eventID uuid.UUID) (int, error)
	ExistsByEventIDAndEmail(ctx context.Context, eventID uuid.UUID, email string) (bool, error)
	Create(ctx context.Context, attendee *entity.Attendee) (*entity.Attendee, error)
	TouchEvent(ctx context.Context, eventID uuid.UUID, at time.Time) error
	EventExists(ctx context.Context, eventID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Attendee, error)
	ListByEventID(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]entity.Attendee, int, error)
}

type txKey struct{}

// WithTx runs fn inside one transaction; nested calls reuse the outer
// transaction.
func (r *AttendeeRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func txFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}

func (r *AttendeeRepository) q(ctx context.Context) sqlx.ExtContext {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.DB.SQLx()
}

// GetEventForUpdate loads the event row with a row-level lock, serializing
// concurrent registrations for the same event. Must run inside WithTx.
func (r *AttendeeRepository) GetEventForUpdate(ctx context.Context, eventID uuid.UUID) (*evententity.Event, error) {
	query := `
		SELECT id, name, description, location, start_time, end_time,
		       max_capacity, timezone, created_at, updated_at
		FROM events WHERE id = $1
		FOR UPDATE
	`

	var event evententity.Event
	err := sqlx.GetContext(ctx, r.q(ctx), &event, query, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AttendeeRepository:GetEventForUpdate", err)
		return nil, err
	}

	return &event, nil
}

func (r *AttendeeRepository) CountByEventID(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.q(ctx), &count,
		`SELECT COUNT(*) FROM attendees WHERE event_id = $1`, eventID)
	if err != nil {
		logger.Error("AttendeeRepository:CountByEventID", err)
		return 0, err
	}
	return count, nil
}

func (r *AttendeeRepository) ExistsByEventIDAndEmail(ctx context.Context, eventID uuid.UUID, email string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.q(ctx), &exists,
		`SELECT EXISTS (SELECT 1 FROM attendees WHERE event_id = $1 AND lower(email) = lower($2))`,
		eventID, email)
	if err != nil {
		logger.Error("AttendeeRepository:ExistsByEventIDAndEmail", err)
		return false, err
	}
	return exists, nil
}

func (r *AttendeeRepository) Create(ctx context.Context, attendee *entity.Attendee) (*entity.Attendee, error) {
	query := `
		INSERT INTO attendees (event_id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, event_id, name, email, phone, created_at, updated_at
	`

	var created entity.Attendee
	err := sqlx.GetContext(ctx, r.q(ctx), &created, query,
		attendee.EventID, attendee.Name, attendee.Email, attendee.Phone)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		logger.Error("AttendeeRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

// TouchEvent bumps the event's updated_at inside the registration
// transaction.
func (r *AttendeeRepository) TouchEvent(ctx context.Context, eventID uuid.UUID, at time.Time) error {
	_, err := r.q(ctx).ExecContext(ctx,
		`UPDATE events SET updated_at = $2 WHERE id = $1`, eventID, at)
	if err != nil {
		logger.Error("AttendeeRepository:TouchEvent", err)
		return err
	}
	return nil
}

func (r *AttendeeRepository) EventExists(ctx context.Context, eventID uuid.UUID) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.q(ctx), &exists,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID)
	if err != nil {
		logger.Error("AttendeeRepository:EventExists", err)
		return false, err
	}
	return exists, nil
}

func (r *AttendeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Attendee, error) {
	query := `SELECT id, event_id, name, email, phone, created_at, updated_at
	          FROM attendees WHERE id = $1`

	var attendee entity.Attendee
	err := sqlx.GetContext(ctx, r.q(ctx), &attendee, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AttendeeRepository:GetByID", err)
		return nil, err
	}

	return &attendee, nil
}

// ListByEventID returns one page of an event's attendees plus the total
// count, ordered by registration time then id for stable slices.
func (r *AttendeeRepository) ListByEventID(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]entity.Attendee, int, error) {
	var total int
	err := sqlx.GetContext(ctx, r.q(ctx), &total,
		`SELECT COUNT(*) FROM attendees WHERE event_id = $1`, eventID)
	if err != nil {
		logger.Error("AttendeeRepository:ListByEventID:Count", err)
		return nil, 0, err
	}

	query := `
		SELECT id, event_id, name, email, phone, created_at, updated_at
		FROM attendees
		WHERE event_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	var attendees []entity.Attendee
	if err := sqlx.SelectContext(ctx, r.q(ctx), &attendees, query, eventID, limit, offset); err != nil {
		logger.Error("AttendeeRepository:ListByEventID", err)
		return nil, 0, err
	}

	return attendees, total, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && pqErr.Code == "23505"
}
