package search

import (
	"Recipe-Finder/domain"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the external recipe search provider.
const DefaultBaseURL = "https://api.spoonacular.com"

type (
	// SearchService wraps the external provider. Every failure mode (timeout,
	// non-success status, malformed payload) collapses to an empty result;
	// nothing propagates past this boundary.
	SearchService interface {
		FindByIngredients(ctx context.Context, ingredients []string, number int) []domain.RecipeSummary
		GetRecipeInformation(ctx context.Context, externalID string) (domain.ShoppingListResponse, bool)
	}

	searchService struct {
		apiKey  string
		baseURL string
		client  *http.Client
	}
)

func NewSearchService(apiKey, baseURL string) SearchService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &searchService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *searchService) FindByIngredients(ctx context.Context, ingredients []string, number int) []domain.RecipeSummary {
	cleaned := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		if trimmed := strings.TrimSpace(ingredient); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 || s.apiKey == "" {
		return []domain.RecipeSummary{}
	}
	if number <= 0 {
		number = 10
	}

	params := url.Values{}
	params.Set("ingredients", strings.Join(cleaned, ","))
	params.Set("number", strconv.Itoa(number))
	// ranking=1 maximizes used ingredients.
	params.Set("ranking", "1")
	params.Set("ignorePantry", "true")
	params.Set("apiKey", s.apiKey)

	body, ok := s.get(ctx, s.baseURL+"/recipes/findByIngredients?"+params.Encode())
	if !ok {
		return []domain.RecipeSummary{}
	}

	var recipes []domain.RecipeSummary
	if err := json.Unmarshal(body, &recipes); err != nil {
		return []domain.RecipeSummary{}
	}
	return recipes
}

func (s *searchService) GetRecipeInformation(ctx context.Context, externalID string) (domain.ShoppingListResponse, bool) {
	if externalID == "" || s.apiKey == "" {
		return domain.ShoppingListResponse{}, false
	}

	params := url.Values{}
	params.Set("apiKey", s.apiKey)
	params.Set("includeNutrition", "false")
	requestURL := fmt.Sprintf("%s/recipes/%s/information?%s", s.baseURL, url.PathEscape(externalID), params.Encode())

	body, ok := s.get(ctx, requestURL)
	if !ok {
		return domain.ShoppingListResponse{}, false
	}

	var info struct {
		Title               string `json:"title"`
		ExtendedIngredients []struct {
			Original string `json:"original"`
		} `json:"extendedIngredients"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return domain.ShoppingListResponse{}, false
	}

	ingredients := make([]string, 0, len(info.ExtendedIngredients))
	for _, ingredient := range info.ExtendedIngredients {
		ingredients = append(ingredients, ingredient.Original)
	}
	name := info.Title
	if name == "" {
		name = "Unknown Recipe"
	}
	return domain.ShoppingListResponse{
		RecipeID:    externalID,
		Name:        name,
		Ingredients: ingredients,
	}, true
}

func (s *searchService) get(ctx context.Context, requestURL string) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false
	}
	return body, true
}
