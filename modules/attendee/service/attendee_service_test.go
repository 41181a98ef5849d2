package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go-event-api/core/clock"
	"go-event-api/core/errors"
	"go-event-api/core/pagination"
	"go-event-api/modules/attendee/dto"
	"go-event-api/modules/attendee/entity"
	"go-event-api/modules/attendee/repository"
	evententity "go-event-api/modules/event/entity"

	"github.com/google/uuid"
)

// fakeAttendeeRepo serializes WithTx with a mutex, mirroring the row lock
// the real repository takes on the event.
type fakeAttendeeRepo struct {
	mu        sync.Mutex
	events    map[uuid.UUID]*evententity.Event
	attendees []entity.Attendee
}

func newFakeAttendeeRepo(events ...*evententity.Event) *fakeAttendeeRepo {
	repo := &fakeAttendeeRepo{events: map[uuid.UUID]*evententity.Event{}}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (f *fakeAttendeeRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeAttendeeRepo) GetEventForUpdate(_ context.Context, eventID uuid.UUID) (*evententity.Event, error) {
	event, ok := f.events[eventID]
	if !ok {
		return nil, nil
	}
	out := *event
	return &out, nil
}

func (f *fakeAttendeeRepo) CountByEventID(_ context.Context, eventID uuid.UUID) (int, error) {
	count := 0
	for _, a := range f.attendees {
		if a.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttendeeRepo) ExistsByEventIDAndEmail(_ context.Context, eventID uuid.UUID, email string) (bool, error) {
	for _, a := range f.attendees {
		if a.EventID == eventID && strings.EqualFold(a.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendeeRepo) Create(_ context.Context, attendee *entity.Attendee) (*entity.Attendee, error) {
	for _, a := range f.attendees {
		if a.EventID == attendee.EventID && strings.EqualFold(a.Email, attendee.Email) {
			return nil, repository.ErrDuplicateEmail
		}
	}
	created := *attendee
	created.ID = uuid.New()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	f.attendees = append(f.attendees, created)
	out := created
	return &out, nil
}

func (f *fakeAttendeeRepo) TouchEvent(_ context.Context, eventID uuid.UUID, at time.Time) error {
	if event, ok := f.events[eventID]; ok {
		event.UpdatedAt = at
	}
	return nil
}

func (f *fakeAttendeeRepo) EventExists(_ context.Context, eventID uuid.UUID) (bool, error) {
	_, ok := f.events[eventID]
	return ok, nil
}

func (f *fakeAttendeeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Attendee, error) {
	for _, a := range f.attendees {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendeeRepo) ListByEventID(_ context.Context, eventID uuid.UUID, limit, offset int) ([]entity.Attendee, int, error) {
	var all []entity.Attendee
	for _, a := range f.attendees {
		if a.EventID == eventID {
			all = append(all, a)
		}
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func futureEvent(maxCapacity int, now time.Time) *evententity.Event {
	return &evententity.Event{
		ID:          uuid.New(),
		Name:        "Tech Conference",
		Location:    "Mumbai",
		StartTime:   now.Add(24 * time.Hour),
		EndTime:     now.Add(32 * time.Hour),
		MaxCapacity: maxCapacity,
		Timezone:    "Asia/Kolkata",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestRegister(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("registers attendee and normalizes email", func(t *testing.T) {
		event := futureEvent(10, now)
		repo := newFakeAttendeeRepo(event)
		svc := NewAttendeeService(repo, nil, clock.NewFixed(now))

		resp, appErr := svc.Register(context.Background(), event.ID, &dto.RegisterAttendeeRequest{
			Name:  "  John Doe  ",
			Email: "John.Doe@Example.COM",
		})
		if appErr != nil {
			t.Fatalf("expected no error, got %v", appErr)
		}
		if resp.Name != "John Doe" {
			t.Fatalf("expected trimmed name, got %q", resp.Name)
		}
		if resp.Email != "john.doe@example.com" {
			t.Fatalf("expected lower-cased email, got %q", resp.Email)
		}
		if !repo.events[event.ID].UpdatedAt.Equal(now) {
			t.Fatalf("expected event updated_at bumped to %v", now)
		}
	})

	t.Run("unknown event is not found", func(t *testing.T) {
		repo := newFakeAttendeeRepo()
		svc := NewAttendeeService(repo, nil, clock.NewFixed(now))

		_, appErr := svc.Register(context.Background(), uuid.New(), &dto.RegisterAttendeeRequest{
			Name:  "John Doe",
			Email: "john@example.com",
		})
		if appErr == nil || appErr.Code != errors.ErrNotFound {
			t.Fatalf("expected NOT_FOUND, got %v", appErr)
		}
	})

	t.Run("registration closes at event start", func(t *testing.T) {
		event := futureEvent(10, now)
		event.StartTime = now.Add(-time.Minute)
		repo := newFakeAttendeeRepo(event)
		svc := NewAttendeeService(repo, nil, clock.NewFixed(now))

		_, appErr := svc.Register(context.Background(), event.ID, &dto.RegisterAttendeeRequest{
			Name:  "John Doe",
			Email: "john@example.com",
		})
		if appErr == nil || appErr.Code != errors.ErrEventInPast {
			t.Fatalf("expected EVENT_IN_PAST, got %v", appErr)
		}
	})

	t.Run("rejects registration beyond capacity with details", func(t *testing.T) {
		event := futureEvent(2, now)
		repo := newFakeAttendeeRepo(event)
		svc := NewAttendeeService(repo, nil, clock.NewFixed(now))

		for i := 0; i < 2; i++ {
			_, appErr := svc.Register(context.Background(), event.ID, &dto.RegisterAttendeeRequest{
				Name:  "Attendee",
				Email: fmt.Sprintf("attendee%d@example.com", i),
			})
			if appErr != nil {
				t.Fatalf("registration %d failed: %v", i, appErr)
			}
		}

		_, appErr := svc.Register(context.Background(), event.ID, &dto.RegisterAttendeeRequest{
			Name:  "Late",
			Email: "late@example.com",
		})
		if appErr == nil || appErr.Code != errors.ErrCapacityExceeded {
			t.Fatalf("expected CAPACITY_EXCEEDED, got %v", appErr)
		}
		details, ok := appErr.Details.(map[string]any)
		if !ok {
			t.Fatalf("expected structured details, got %T", appErr.Details)
		}
		if details["current_attendees"] != 2 || details["max_capacity"] != 2 {
			t.Fatalf("unexpected details: %v", details)
		}
	})

	t.Run("duplicate email is case-insensitive", func(t *testing.T) {
		event := futureEvent(10, now)
		repo := newFakeAttendeeRepo(event)
		svc := NewAttendeeService(repo, nil, clock.NewFixed(now))

		if _, appErr := svc.Register(context.Background(), event.ID, &dto.RegisterAttendeeRequest{
			Name:  "John Doe",
			Email: "john.doe@example.com",
		}); appErr != nil {
			t.Fatalf("first registration failed: %v", appErr)
		}

		_, appErr := svc.Register(context.Background(), event.ID, &dto.RegisterAttendeeRequest{
			Name:  "John Doe",
			Email: "JOHN.DOE@EXAMPLE.COM",
		})
		if appErr == nil || appErr.Code != errors.ErrDuplicateRegistration {
			t.Fatalf("expected DUPLICATE_REGISTRATION, got %v", appErr)
		}
		if len(repo.attendees) != 1 {
			t.Fatalf("expected exactly one stored attendee, got %d", len(repo.attendees))
		}
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		event := futureEvent(10, now)
		repo := newFakeAttendeeRepo(event)
		svc := NewAttendeeService(repo, nil, clock.NewFixed(now))

		_, appErr := svc.Register(context.Background(), event.ID, &dto.RegisterAttendeeRequest{
			Name:  "John Doe",
			Email: "not-an-email",
		})
		if appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Fatalf("expected INVALID_INPUT, got %v", appErr)
		}
	})
}

func TestRegisterConcurrent(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	const capacity = 5
	const attempts = 20

	event := futureEvent(capacity, now)
	repo := newFakeAttendeeRepo(event)
	svc := NewAttendeeService(repo, nil, clock.NewFixed(now))

	var wg sync.WaitGroup
	results := make(chan *errors.AppError, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, appErr := svc.Register(context.Background(), event.ID, &dto.RegisterAttendeeRequest{
				Name:  fmt.Sprintf("Attendee %d", i),
				Email: fmt.Sprintf("attendee%d@example.com", i),
			})
			results <- appErr
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for appErr := range results {
		if appErr == nil {
			succeeded++
			continue
		}
		if appErr.Code != errors.ErrCapacityExceeded {
			t.Fatalf("unexpected failure code %s", appErr.Code)
		}
		rejected++
	}

	if succeeded != capacity {
		t.Fatalf("expected exactly %d successful registrations, got %d", capacity, succeeded)
	}
	if rejected != attempts-capacity {
		t.Fatalf("expected %d rejections, got %d", attempts-capacity, rejected)
	}
	if len(repo.attendees) != capacity {
		t.Fatalf("expected %d stored attendees, got %d", capacity, len(repo.attendees))
	}
}

func TestListAttendees(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	event := futureEvent(100, now)
	repo := newFakeAttendeeRepo(event)
	svc := NewAttendeeService(repo, nil, clock.NewFixed(now))

	for i := 0; i < 25; i++ {
		if _, appErr := svc.Register(context.Background(), event.ID, &dto.RegisterAttendeeRequest{
			Name:  fmt.Sprintf("Attendee %d", i),
			Email: fmt.Sprintf("attendee%d@example.com", i),
		}); appErr != nil {
			t.Fatalf("registration %d failed: %v", i, appErr)
		}
	}

	t.Run("returns page slices with metadata", func(t *testing.T) {
		page, appErr := svc.ListAttendees(context.Background(), event.ID, pagination.Params{Page: 3, PageSize: 10})
		if appErr != nil {
			t.Fatalf("expected no error, got %v", appErr)
		}
		if len(page.Items) != 5 || page.Total != 25 || page.HasNext || !page.HasPrev {
			t.Fatalf("unexpected page: items=%d total=%d has_next=%v has_prev=%v",
				len(page.Items), page.Total, page.HasNext, page.HasPrev)
		}
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page, appErr := svc.ListAttendees(context.Background(), event.ID, pagination.Params{Page: 4, PageSize: 10})
		if appErr != nil {
			t.Fatalf("expected no error, got %v", appErr)
		}
		if len(page.Items) != 0 {
			t.Fatalf("expected empty page, got %d items", len(page.Items))
		}
	})

	t.Run("unknown event is not found", func(t *testing.T) {
		_, appErr := svc.ListAttendees(context.Background(), uuid.New(), pagination.Params{Page: 1, PageSize: 10})
		if appErr == nil || appErr.Code != errors.ErrNotFound {
			t.Fatalf("expected NOT_FOUND, got %v", appErr)
		}
	})

	t.Run("rejects out-of-range page size", func(t *testing.T) {
		_, appErr := svc.ListAttendees(context.Background(), event.ID, pagination.Params{Page: 1, PageSize: 101})
		if appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Fatalf("expected INVALID_INPUT, got %v", appErr)
		}
	})
}

func TestGetAttendeeByID(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	event := futureEvent(10, now)
	repo := newFakeAttendeeRepo(event)
	svc := NewAttendeeService(repo, nil, clock.NewFixed(now))

	created, appErr := svc.Register(context.Background(), event.ID, &dto.RegisterAttendeeRequest{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "+91-9876543210",
	})
	if appErr != nil {
		t.Fatalf("registration failed: %v", appErr)
	}

	t.Run("returns stored attendee", func(t *testing.T) {
		id, _ := uuid.Parse(created.ID)
		got, appErr := svc.GetAttendeeByID(context.Background(), id)
		if appErr != nil {
			t.Fatalf("expected no error, got %v", appErr)
		}
		if got.Email != "john@example.com" || got.Phone != "+91-9876543210" {
			t.Fatalf("unexpected attendee: %+v", got)
		}
	})

	t.Run("unknown attendee is not found", func(t *testing.T) {
		_, appErr := svc.GetAttendeeByID(context.Background(), uuid.New())
		if appErr == nil || appErr.Code != errors.ErrNotFound {
			t.Fatalf("expected NOT_FOUND, got %v", appErr)
		}
	})
}
