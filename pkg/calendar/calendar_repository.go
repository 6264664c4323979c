package calendar

import (
	"Recipe-Finder/entities"
	"Recipe-Finder/pkg/store"
	"context"
	"encoding/json"
)

type (
	CalendarRepository interface {
		Events(ctx context.Context, userID string) (map[string]*entities.CalendarEvent, error)
		GetEvent(ctx context.Context, userID, eventID string) (*entities.CalendarEvent, bool, error)
		AddEvent(ctx context.Context, userID string, event *entities.CalendarEvent) (string, error)
		RemoveEvent(ctx context.Context, userID, eventID string) error
	}

	calendarRepository struct {
		store store.Store
	}
)

func NewCalendarRepository(st store.Store) CalendarRepository {
	return &calendarRepository{store: st}
}

func (r *calendarRepository) Events(ctx context.Context, userID string) (map[string]*entities.CalendarEvent, error) {
	raw, err := r.store.GetAll(ctx, entities.CollectionCalendar, userID)
	if err != nil {
		return nil, err
	}
	events := make(map[string]*entities.CalendarEvent, len(raw))
	for eventID, value := range raw {
		event, err := entities.NormalizeCalendarEvent(eventID, value)
		if err != nil {
			continue
		}
		events[eventID] = event
	}
	return events, nil
}

func (r *calendarRepository) GetEvent(ctx context.Context, userID, eventID string) (*entities.CalendarEvent, bool, error) {
	var raw json.RawMessage
	found, err := r.store.Get(ctx, &raw, entities.CollectionCalendar, userID, eventID)
	if err != nil || !found {
		return nil, false, err
	}
	event, err := entities.NormalizeCalendarEvent(eventID, raw)
	if err != nil {
		return nil, false, err
	}
	return event, true, nil
}

func (r *calendarRepository) AddEvent(ctx context.Context, userID string, event *entities.CalendarEvent) (string, error) {
	return r.store.Push(ctx, event, entities.CollectionCalendar, userID)
}

func (r *calendarRepository) RemoveEvent(ctx context.Context, userID, eventID string) error {
	return r.store.Remove(ctx, entities.CollectionCalendar, userID, eventID)
}
