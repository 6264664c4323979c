package calendar

import (
	"Recipe-Finder/domain"
	"Recipe-Finder/entities"
	"Recipe-Finder/pkg/recipe"
	"context"
	"sort"
	"time"
)

// unknownRecipeName stands in for a calendar placement whose uploaded recipe
// has been deleted since it was planned.
const unknownRecipeName = "Unknown Recipe"

type (
	CalendarService interface {
		ListCalendar(ctx context.Context, userID string) ([]domain.CalendarEventResponse, error)
		AddToCalendar(ctx context.Context, req domain.AddToCalendarRequest, userID string) (domain.AddToCalendarResponse, error)
		RemoveFromCalendar(ctx context.Context, req domain.RemoveFromCalendarRequest, userID string) error
	}

	calendarService struct {
		calendarRepository CalendarRepository
		recipeRepository   recipe.RecipeRepository
	}
)

func NewCalendarService(calendarRepository CalendarRepository, recipeRepository recipe.RecipeRepository) CalendarService {
	return &calendarService{
		calendarRepository: calendarRepository,
		recipeRepository:   recipeRepository,
	}
}

// ListCalendar resolves uploaded recipe names live, so a rename shows up on
// the calendar immediately. External placements keep the snapshot title taken
// when they were added.
func (s *calendarService) ListCalendar(ctx context.Context, userID string) ([]domain.CalendarEventResponse, error) {
	events, err := s.calendarRepository.Events(ctx, userID)
	if err != nil {
		return []domain.CalendarEventResponse{}, err
	}

	eventIDs := make([]string, 0, len(events))
	for eventID := range events {
		eventIDs = append(eventIDs, eventID)
	}
	sort.Strings(eventIDs)

	responses := make([]domain.CalendarEventResponse, 0, len(events))
	for _, eventID := range eventIDs {
		event := events[eventID]

		name := event.RecipeTitle
		if event.Source == entities.ProvenanceUploaded {
			recipe, found, err := s.recipeRepository.GetUploaded(ctx, event.RecipeID)
			if err == nil && found {
				name = recipe.Name
			} else {
				name = unknownRecipeName
			}
		}
		if name == "" {
			name = unknownRecipeName
		}

		responses = append(responses, domain.CalendarEventResponse{
			EventID:    event.ID,
			RecipeID:   event.RecipeID,
			RecipeName: name,
			Day:        event.Day,
			TimeSlot:   event.TimeSlot,
			Source:     string(event.Source),
			AddedAt:    event.AddedAt,
		})
	}
	return responses, nil
}

func (s *calendarService) AddToCalendar(ctx context.Context, req domain.AddToCalendarRequest, userID string) (domain.AddToCalendarResponse, error) {
	source := entities.ParseProvenance(req.Source)

	var title string
	if source == entities.ProvenanceUploaded {
		recipe, found, err := s.recipeRepository.GetUploaded(ctx, req.RecipeID)
		if err != nil {
			return domain.AddToCalendarResponse{}, err
		}
		if !found {
			return domain.AddToCalendarResponse{}, domain.ErrRecipeNotFound
		}
		title = recipe.Name
	} else {
		if recipe, found, err := s.recipeRepository.GetSaved(ctx, userID, req.RecipeID); err == nil && found {
			title = recipe.Name
		}
	}

	event := &entities.CalendarEvent{
		RecipeID:    req.RecipeID,
		RecipeTitle: title,
		Day:         req.Day,
		TimeSlot:    req.TimeSlot,
		AddedAt:     entities.EpochSeconds(time.Now()),
		Source:      source,
	}
	eventID, err := s.calendarRepository.AddEvent(ctx, userID, event)
	if err != nil {
		return domain.AddToCalendarResponse{}, err
	}
	return domain.AddToCalendarResponse{EventID: eventID}, nil
}

func (s *calendarService) RemoveFromCalendar(ctx context.Context, req domain.RemoveFromCalendarRequest, userID string) error {
	_, found, err := s.calendarRepository.GetEvent(ctx, userID, req.EventID)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrCalendarEventNotFound
	}
	return s.calendarRepository.RemoveEvent(ctx, userID, req.EventID)
}
