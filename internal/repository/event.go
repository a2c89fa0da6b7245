package repository

import (
	"context"
	"errors"

	"clubhub/internal/models"
	"clubhub/internal/observability"

	"gorm.io/gorm"
)

// EventRepository defines the interface for club event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	UpdateAttendees(ctx context.Context, id string, attendees models.IDSet) error
	Delete(ctx context.Context, id string) error
}

type eventRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db, log: observability.NewRepoLogger("events")}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	defer observability.TrackQuery("insert", "events")()

	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"id": event.ID})
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	defer observability.TrackQuery("select", "events")()

	var event models.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]models.Event, error) {
	defer observability.TrackQuery("select", "events")()

	var events []models.Event
	if err := r.db.WithContext(ctx).Order("date asc, time asc").Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	defer observability.TrackQuery("update", "events")()

	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": event.ID})
	return nil
}

// UpdateAttendees writes back an attendee set produced by a read-modify-write
// cycle. Same last-write-wins caveat as post likes.
func (r *eventRepository) UpdateAttendees(ctx context.Context, id string, attendees models.IDSet) error {
	defer observability.TrackQuery("update", "events")()

	result := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Update("attendees", attendees)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "update")
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Event", id)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": id, "attendees": len(attendees)})
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	defer observability.TrackQuery("delete", "events")()

	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{}).Error; err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"id": id})
	return nil
}
