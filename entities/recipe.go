package entities

import (
	"encoding/json"
	"time"
)

// Recipe is the normalized form of a recipe record from either record space.
// The store value never contains the id or provenance; both are assigned from
// the record's key and collection when the raw value is decoded, and are
// immutable afterwards.
type Recipe struct {
	ID         string     `json:"-"`
	Provenance Provenance `json:"-"`

	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions,omitempty"`
	CookingTime  *int     `json:"cooking_time,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`

	OwnerID    string `json:"user_id"`
	OwnerEmail string `json:"user_email"`
	OwnerRole  string `json:"user_role,omitempty"`

	CreatedAt         float64 `json:"created_at"`
	CreatedAtReadable string  `json:"created_at_readable,omitempty"`
	SavedAt           float64 `json:"saved_at,omitempty"`
	SavedAtReadable   string  `json:"saved_at_readable,omitempty"`

	ImageURL string `json:"image_url,omitempty"`

	// External-provenance bookkeeping from the save-from-search flow.
	ExternalID  string `json:"external_id,omitempty"`
	OriginalURL string `json:"original_url,omitempty"`
}

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// NormalizeRecipe decodes a raw store value into a Recipe and applies the
// defaulting rules in one place: missing difficulty becomes Medium, a missing
// ingredient list becomes an empty slice (insertion order is preserved, never
// sorted), and an uploaded record with no saved_at inherits created_at so the
// saved-recipes merge has a single sort key.
func NormalizeRecipe(id string, provenance Provenance, raw json.RawMessage) (*Recipe, error) {
	var r Recipe
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	r.ID = id
	r.Provenance = provenance
	if r.Difficulty == "" {
		r.Difficulty = DifficultyMedium
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.SavedAt == 0 {
		r.SavedAt = r.CreatedAt
	}
	return &r, nil
}

// EpochSeconds is the store's timestamp representation: seconds since epoch
// with sub-second resolution so creation order survives round trips.
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
