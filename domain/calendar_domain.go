package domain

import "errors"

var (
	MessageSuccessGetCalendar    = "success get calendar"
	MessageSuccessAddToCalendar  = "recipe added to calendar"
	MessageSuccessRemoveCalendar = "calendar event removed"

	MessageFailedGetCalendar    = "failed to load calendar"
	MessageFailedAddToCalendar  = "failed to add recipe to calendar"
	MessageFailedRemoveCalendar = "failed to remove calendar event"

	ErrCalendarEventNotFound = errors.New("calendar event not found")
)

type (
	AddToCalendarRequest struct {
		RecipeID string `json:"recipe_id" validate:"required"`
		Day      string `json:"day" validate:"required"`
		TimeSlot string `json:"time" validate:"required"`
		Source   string `json:"source"`
	}

	AddToCalendarResponse struct {
		EventID string `json:"event_id"`
	}

	RemoveFromCalendarRequest struct {
		EventID string `json:"event_id" validate:"required"`
	}

	CalendarEventResponse struct {
		EventID    string  `json:"id"`
		RecipeID   string  `json:"recipe_id"`
		RecipeName string  `json:"recipe_name"`
		Day        string  `json:"day"`
		TimeSlot   string  `json:"time"`
		Source     string  `json:"source"`
		AddedAt    float64 `json:"added_at"`
	}
)
