package entities

import "encoding/json"

// CalendarEvent places a recipe on the weekly calendar. RecipeTitle is a
// denormalized snapshot taken at placement time so the placement outlives a
// rename or deletion of the source recipe.
type CalendarEvent struct {
	ID          string     `json:"-"`
	RecipeID    string     `json:"recipe_id"`
	RecipeTitle string     `json:"recipe_title"`
	Day         string     `json:"day"`
	TimeSlot    string     `json:"time"`
	AddedAt     float64    `json:"added_at"`
	Source      Provenance `json:"source"`
}

func NormalizeCalendarEvent(id string, raw json.RawMessage) (*CalendarEvent, error) {
	var e CalendarEvent
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	e.ID = id
	if !e.Source.Valid() {
		e.Source = ProvenanceUploaded
	}
	return &e, nil
}
