package domain

import "errors"

var (
	MessageSuccessSearch = "success search recipes"
	MessageFailedSearch  = "failed to search recipes"

	ErrNoIngredients = errors.New("please enter at least one ingredient")
)

type (
	SearchByIngredientsRequest struct {
		Ingredients []string `json:"ingredients" validate:"required,min=1"`
		Number      int      `json:"number" validate:"omitempty,min=1,max=50"`
	}

	RecipeSummary struct {
		ID                    int64  `json:"id"`
		Title                 string `json:"title"`
		Image                 string `json:"image,omitempty"`
		UsedIngredientCount   int    `json:"usedIngredientCount"`
		MissedIngredientCount int    `json:"missedIngredientCount"`
	}

	SearchResponse struct {
		Recipes     []RecipeSummary `json:"recipes"`
		Ingredients []string        `json:"ingredients"`
	}
)
