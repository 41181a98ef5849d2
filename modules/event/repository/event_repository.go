package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go-event-api/core/database"
	"go-event-api/core/logger"
	"go-event-api/modules/event/entity"

	"github.com/google/uuid"
)

// EventRepository handles event database operations
type EventRepository struct {
	DB database.IDatabase
}

// NewEventRepository creates a new repository instance
func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

// ListFilter narrows the event listing. UpcomingFrom, when set, keeps only
// events starting after that instant.
type ListFilter struct {
	Name         string
	Location     string
	UpcomingFrom *time.Time
	Limit        int
	Offset       int
}

// EventRepositoryInterface defines the repository contract
type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	List(ctx context.Context, filter ListFilter) ([]entity.Event, int, error)
}

const eventColumns = `id, name, description, location, start_time, end_time,
	       max_capacity, timezone, created_at, updated_at`

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (name, description, location, start_time, end_time, max_capacity, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.Name, event.Description, event.Location,
		event.StartTime, event.EndTime, event.MaxCapacity, event.Timezone)
	if err != nil {
		logger.Error("EventRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET name = $2, description = $3, location = $4, start_time = $5,
		    end_time = $6, max_capacity = $7, timezone = $8, updated_at = $9
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		event.ID, event.Name, event.Description, event.Location,
		event.StartTime, event.EndTime, event.MaxCapacity, event.Timezone,
		event.UpdatedAt)
	if err != nil {
		logger.Error("EventRepository:Update", err)
		return err
	}

	return nil
}

// List returns one page of events matching filter plus the total match
// count. Ordering is stable (start_time, then id) so repeated calls over
// unmodified data return consistent slices.
func (r *EventRepository) List(ctx context.Context, filter ListFilter) ([]entity.Event, int, error) {
	var conds []string
	var args []any

	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Name != "" {
		conds = append(conds, fmt.Sprintf("name ILIKE %s", addArg("%"+filter.Name+"%")))
	}
	if filter.Location != "" {
		conds = append(conds, fmt.Sprintf("location ILIKE %s", addArg("%"+filter.Location+"%")))
	}
	if filter.UpcomingFrom != nil {
		conds = append(conds, fmt.Sprintf("start_time > %s", addArg(*filter.UpcomingFrom)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM events` + where
	if err := r.DB.GetContext(ctx, &total, countQuery, args...); err != nil {
		logger.Error("EventRepository:List:Count", err)
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + ` FROM events` + where +
		fmt.Sprintf(" ORDER BY start_time ASC, id ASC LIMIT %s OFFSET %s",
			addArg(filter.Limit), addArg(filter.Offset))

	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, args...); err != nil {
		logger.Error("EventRepository:List", err)
		return nil, 0, err
	}

	return events, total, nil
}
