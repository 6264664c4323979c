package entities

import "encoding/json"

// Favorite is one (user, recipe) membership fact. At most one entry exists per
// pair; duplicates are rejected at write time, not collapsed on read.
type Favorite struct {
	RecipeID    string     `json:"recipe_id"`
	RecipeTitle string     `json:"recipe_title,omitempty"`
	FavoritedAt float64    `json:"favorited_at"`
	Source      Provenance `json:"source"`
}

// Bookmark is a toggle: presence means bookmarked.
type Bookmark struct {
	RecipeID     string     `json:"recipe_id"`
	RecipeTitle  string     `json:"recipe_title,omitempty"`
	BookmarkedAt float64    `json:"bookmarked_at"`
	Source       Provenance `json:"source"`
}

// Rating is immutable once set; a second rating from the same user for the
// same recipe is rejected upstream rather than averaged in.
type Rating struct {
	UserID    string  `json:"user_id"`
	UserEmail string  `json:"user_email,omitempty"`
	Rating    int     `json:"rating"`
	RatedAt   float64 `json:"rated_at"`
}

func NormalizeFavorite(recipeID string, source Provenance, raw json.RawMessage) (*Favorite, error) {
	var f Favorite
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if f.RecipeID == "" {
		f.RecipeID = recipeID
	}
	if !f.Source.Valid() {
		f.Source = source
	}
	return &f, nil
}

func NormalizeBookmark(recipeID string, source Provenance, raw json.RawMessage) (*Bookmark, error) {
	var b Bookmark
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	if b.RecipeID == "" {
		b.RecipeID = recipeID
	}
	if !b.Source.Valid() {
		b.Source = source
	}
	return &b, nil
}

func NormalizeRating(userID string, raw json.RawMessage) (*Rating, error) {
	var r Rating
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	if r.UserID == "" {
		r.UserID = userID
	}
	return &r, nil
}
