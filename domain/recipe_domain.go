package domain

import (
	"errors"
	"strings"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessUploadRecipe    = "recipe uploaded successfully"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessFavorite        = "recipe added to favourites"
	MessageSuccessUnfavorite      = "recipe removed from favourites"
	MessageSuccessBookmark        = "bookmark updated"
	MessageSuccessRate            = "recipe rated successfully"
	MessageSuccessUploadImage     = "recipe image uploaded successfully"
	MessageSuccessShoppingList    = "success get shopping list"
	MessageSuccessEmailList       = "shopping list sent"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedUploadRecipe    = "failed to upload recipe"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedFavorite        = "failed to favourite recipe"
	MessageFailedUnfavorite      = "failed to unfavourite recipe"
	MessageFailedBookmark        = "failed to bookmark recipe"
	MessageFailedRate            = "failed to rate recipe"
	MessageFailedUploadImage     = "failed to upload recipe image"
	MessageFailedShoppingList    = "failed to load shopping list"
	MessageFailedEmailList       = "failed to send shopping list"

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrAlreadyFavorited   = errors.New("you have already favorited this recipe")
	ErrAlreadyRated       = errors.New("you have already rated this recipe")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrOnlyChefsCanUpload = errors.New("only chefs can upload recipes")
	ErrInvalidSource      = errors.New("invalid recipe source")
	ErrCascadeIncomplete  = errors.New("recipe delete finished with failed steps")
)

// ValidationError carries every reason the upload form was rejected, so a
// caller can surface the full list in one round trip.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Reasons, "; ")
}

type (
	RecipeListFilters struct {
		OwnerEmail string `json:"user" query:"user"`
		SearchText string `json:"search" query:"search"`
	}

	UploadRecipeRequest struct {
		Name         string `json:"recipe_name" form:"recipe_name"`
		Ingredients  string `json:"ingredients" form:"ingredients"`
		Instructions string `json:"instructions" form:"instructions"`
		CookingTime  string `json:"cooking_time" form:"cooking_time"`
		Difficulty   string `json:"difficulty" form:"difficulty"`
	}

	SaveExternalRecipeRequest struct {
		Name         string   `json:"recipe_name" validate:"required"`
		ExternalID   string   `json:"external_recipe_id" validate:"required"`
		Ingredients  []string `json:"all_ingredients"`
		Instructions string   `json:"instructions"`
		CookingTime  *int     `json:"cooking_time" validate:"omitempty,min=1"`
		Difficulty   string   `json:"difficulty"`
	}

	DeleteRecipeRequest struct {
		RecipeID string `json:"recipe_id" validate:"required"`
		Source   string `json:"recipe_source"`
	}

	FavoriteRecipeRequest struct {
		RecipeID    string `json:"recipe_id" validate:"required"`
		RecipeTitle string `json:"recipe_title"`
		Source      string `json:"source"`
	}

	BookmarkRecipeRequest struct {
		RecipeID    string `json:"recipe_id" validate:"required"`
		RecipeTitle string `json:"recipe_title"`
		Source      string `json:"source"`
	}

	RateRecipeRequest struct {
		Rating int `json:"rating" validate:"required,min=1,max=5"`
	}

	UploadRecipeImageRequest struct {
		RecipeID string `json:"recipe_id" form:"recipe_id" validate:"required"`
	}

	RecipeResponse struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		Ingredients  []string `json:"ingredients"`
		Instructions string   `json:"instructions,omitempty"`
		CookingTime  *int     `json:"cooking_time,omitempty"`
		Difficulty   string   `json:"difficulty"`
		Source       string   `json:"source"`
		OwnerEmail   string   `json:"user_email,omitempty"`
		ImageURL     string   `json:"image_url,omitempty"`
		CreatedAt    float64  `json:"created_at,omitempty"`
		SavedAt      float64  `json:"saved_at,omitempty"`
		FavoritedAt  float64  `json:"favorited_at,omitempty"`
		BookmarkedAt float64  `json:"bookmarked_at,omitempty"`
	}

	ViewerState struct {
		UserRated      bool    `json:"user_rated"`
		UserFavorited  bool    `json:"user_favorited"`
		UserBookmarked bool    `json:"user_bookmarked"`
		AvgRating      float64 `json:"avg_rating"`
	}

	RecipeDetailResponse struct {
		RecipeResponse
		ViewerState
	}

	ToggleBookmarkResponse struct {
		Bookmarked bool `json:"bookmarked"`
	}

	ShoppingListResponse struct {
		RecipeID    string   `json:"recipe_id"`
		Name        string   `json:"name"`
		Ingredients []string `json:"ingredients"`
	}
)
