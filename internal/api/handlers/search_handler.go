package handlers

import (
	"Recipe-Finder/domain"
	"Recipe-Finder/internal/api/presenters"
	"Recipe-Finder/pkg/search"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SearchHandler interface {
		SearchByIngredients(c *fiber.Ctx) error
	}

	searchHandler struct {
		searchService search.SearchService
		validator     *validator.Validate
	}
)

func NewSearchHandler(searchService search.SearchService, validator *validator.Validate) SearchHandler {
	return &searchHandler{
		searchService: searchService,
		validator:     validator,
	}
}

func (h *searchHandler) SearchByIngredients(c *fiber.Ctx) error {
	req := new(domain.SearchByIngredientsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	cleaned := make([]string, 0, len(req.Ingredients))
	for _, ingredient := range req.Ingredients {
		if trimmed := strings.TrimSpace(ingredient); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearch, domain.ErrNoIngredients)
	}

	recipes := h.searchService.FindByIngredients(c.Context(), cleaned, req.Number)

	return presenters.SuccessResponse(c, domain.SearchResponse{
		Recipes:     recipes,
		Ingredients: cleaned,
	}, fiber.StatusOK, domain.MessageSuccessSearch)
}
