package recipe

import (
	"Recipe-Finder/domain"
	"Recipe-Finder/entities"
	"fmt"
	"strconv"
	"strings"
)

const (
	recipeNameMinLen   = 2
	recipeNameMaxLen   = 100
	maxIngredients     = 50
	ingredientMaxLen   = 100
	instructionsMinLen = 10
	instructionsMaxLen = 2000
	cookingTimeMax     = 1440 // 24 hours in minutes
)

var (
	ingredientBlacklist = []string{"<", ">", ";", "{", "}"}
	suspiciousKeywords  = []string{"<script", "javascript:", "onload=", "onerror="}
)

// validateUpload checks the whole form and collects every reason it fails, so
// the caller gets the full list instead of the first hit. It returns the
// parsed ingredient list and cooking time alongside.
func validateUpload(req domain.UploadRecipeRequest) ([]string, []string, *int, string) {
	var reasons []string

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		reasons = append(reasons, "recipe name is required")
	case len(name) < recipeNameMinLen:
		reasons = append(reasons, fmt.Sprintf("recipe name must be at least %d characters long", recipeNameMinLen))
	case len(name) > recipeNameMaxLen:
		reasons = append(reasons, fmt.Sprintf("recipe name cannot exceed %d characters", recipeNameMaxLen))
	}

	ingredients := splitIngredients(req.Ingredients)
	if strings.TrimSpace(req.Ingredients) == "" {
		reasons = append(reasons, "ingredients are required")
	} else if len(ingredients) == 0 {
		reasons = append(reasons, "please provide at least one valid ingredient")
	} else if len(ingredients) > maxIngredients {
		reasons = append(reasons, fmt.Sprintf("too many ingredients (maximum %d)", maxIngredients))
	} else {
		for i, ingredient := range ingredients {
			if len(ingredient) > ingredientMaxLen {
				reasons = append(reasons, fmt.Sprintf("ingredient #%d is too long (max %d characters)", i+1, ingredientMaxLen))
			}
			for _, banned := range ingredientBlacklist {
				if strings.Contains(ingredient, banned) {
					reasons = append(reasons, fmt.Sprintf("ingredient #%d contains invalid characters", i+1))
					break
				}
			}
		}
	}

	instructions := strings.TrimSpace(req.Instructions)
	if instructions != "" {
		if len(instructions) < instructionsMinLen {
			reasons = append(reasons, fmt.Sprintf("instructions should be at least %d characters long if provided", instructionsMinLen))
		} else if len(instructions) > instructionsMaxLen {
			reasons = append(reasons, fmt.Sprintf("instructions are too long (maximum %d characters)", instructionsMaxLen))
		}
		lowered := strings.ToLower(instructions)
		for _, keyword := range suspiciousKeywords {
			if strings.Contains(lowered, keyword) {
				reasons = append(reasons, "instructions contain potentially unsafe content")
				break
			}
		}
	}

	var cookingTime *int
	if raw := strings.TrimSpace(req.CookingTime); raw != "" {
		minutes, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			reasons = append(reasons, "cooking time must be a valid number")
		case minutes <= 0:
			reasons = append(reasons, "cooking time must be a positive number")
		case minutes > cookingTimeMax:
			reasons = append(reasons, fmt.Sprintf("cooking time cannot exceed 24 hours (%d minutes)", cookingTimeMax))
		default:
			cookingTime = &minutes
		}
	}

	difficulty := strings.TrimSpace(req.Difficulty)
	if difficulty == "" {
		difficulty = entities.DifficultyMedium
	}
	switch difficulty {
	case entities.DifficultyEasy, entities.DifficultyMedium, entities.DifficultyHard:
	default:
		reasons = append(reasons, "please select a valid difficulty level")
	}

	return reasons, ingredients, cookingTime, difficulty
}

func splitIngredients(raw string) []string {
	parts := strings.Split(raw, ",")
	ingredients := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ingredients = append(ingredients, trimmed)
		}
	}
	return ingredients
}
