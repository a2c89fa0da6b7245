package service

import (
	"context"

	"clubhub/internal/mapper"
	"clubhub/internal/models"
	"clubhub/internal/realtime"
	"clubhub/internal/repository"
)

// EventService implements the club calendar.
type EventService struct {
	events repository.EventRepository
	feed   *realtime.ChangeFeed
}

// NewEventService wires an EventService.
func NewEventService(events repository.EventRepository, feed *realtime.ChangeFeed) *EventService {
	return &EventService{events: events, feed: feed}
}

// ListEvents returns the calendar, soonest first.
func (s *EventService) ListEvents(ctx context.Context) ([]mapper.Event, error) {
	rows, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.EventEntities(rows), nil
}

// CreateEvent inserts a new calendar entry.
func (s *EventService) CreateEvent(ctx context.Context, in mapper.Event) (mapper.Event, error) {
	if in.Title == "" {
		return mapper.Event{}, models.NewValidationError("Event title is required")
	}
	if in.Date == "" {
		return mapper.Event{}, models.NewValidationError("Event date is required")
	}

	row := mapper.NewEventRow(in)
	if err := s.events.Create(ctx, &row); err != nil {
		return mapper.Event{}, err
	}

	publish(ctx, s.feed, realtime.TableEvents, "")
	return mapper.EventEntity(&row), nil
}

// UpdateEvent overwrites an event's details. The attendee set is not
// editable here; ToggleAttendance owns it.
func (s *EventService) UpdateEvent(ctx context.Context, id string, in mapper.Event) (mapper.Event, error) {
	if in.Title == "" {
		return mapper.Event{}, models.NewValidationError("Event title is required")
	}

	row, err := s.events.GetByID(ctx, id)
	if err != nil {
		return mapper.Event{}, err
	}

	row.Title = in.Title
	row.Description = in.Description
	row.Date = in.Date
	row.Time = in.Time
	row.Location = in.Location
	row.Image = in.Image
	if err := s.events.Update(ctx, row); err != nil {
		return mapper.Event{}, err
	}

	publish(ctx, s.feed, realtime.TableEvents, "")
	return mapper.EventEntity(row), nil
}

// DeleteEvent removes a calendar entry.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.events.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.feed, realtime.TableEvents, "")
	return nil
}

// ToggleAttendance flips the member's membership in the attendee set. Same
// read-modify-write semantics as post likes.
func (s *EventService) ToggleAttendance(ctx context.Context, eventID, memberID string) (mapper.Event, error) {
	row, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return mapper.Event{}, err
	}

	attendees, _ := row.Attendees.Toggle(memberID)
	if err := s.events.UpdateAttendees(ctx, eventID, attendees); err != nil {
		return mapper.Event{}, err
	}
	row.Attendees = attendees

	publish(ctx, s.feed, realtime.TableEvents, "")
	return mapper.EventEntity(row), nil
}
