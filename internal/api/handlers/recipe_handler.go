package handlers

import (
	"Recipe-Finder/domain"
	"Recipe-Finder/entities"
	"Recipe-Finder/internal/api/presenters"
	"Recipe-Finder/pkg/recipe"
	"Recipe-Finder/pkg/search"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetMyRecipes(c *fiber.Ctx) error
		GetFavorites(c *fiber.Ctx) error
		GetBookmarks(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		GetSavedRecipeDetail(c *fiber.Ctx) error
		UploadRecipe(c *fiber.Ctx) error
		SaveExternalRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		FavoriteRecipe(c *fiber.Ctx) error
		UnfavoriteRecipe(c *fiber.Ctx) error
		ToggleBookmark(c *fiber.Ctx) error
		RateRecipe(c *fiber.Ctx) error
		UploadRecipeImage(c *fiber.Ctx) error
		GetShoppingList(c *fiber.Ctx) error
		EmailShoppingList(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		searchService search.SearchService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, searchService search.SearchService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		searchService: searchService,
		validator:     validator,
	}
}

// listResponse keeps the list-view contract: a backing store failure still
// answers with an empty collection next to the error, never a bare failure.
func listResponse(c *fiber.Ctx, recipes []domain.RecipeResponse, err error, failedMessage, successMessage string) error {
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(presenters.Response{
			Status:  "error",
			Message: failedMessage,
			Data:    fiber.Map{"recipes": recipes},
			Error:   err.Error(),
		})
	}
	return presenters.SuccessResponse(c, fiber.Map{"recipes": recipes}, fiber.StatusOK, successMessage)
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	filters := domain.RecipeListFilters{
		OwnerEmail: c.Query("user", ""),
		SearchText: c.Query("search", ""),
	}

	res, err := h.recipeService.ListAll(c.Context(), filters)
	return listResponse(c, res, err, domain.MessageFailedGetRecipes, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetMyRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.ListSavedByUser(c.Context(), userID)
	return listResponse(c, res, err, domain.MessageFailedGetRecipes, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetFavorites(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.ListFavorites(c.Context(), userID)
	return listResponse(c, res, err, domain.MessageFailedGetRecipes, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetBookmarks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.ListBookmarks(c.Context(), userID)
	return listResponse(c, res, err, domain.MessageFailedGetRecipes, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	viewerID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if recipeID == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, domain.ErrRecipeNotFound)
	}

	res, err := h.recipeService.GetDetail(c.Context(), recipeID, viewerID)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrRecipeNotFound {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) GetSavedRecipeDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.GetSavedDetail(c.Context(), userID, recipeID)
	if err != nil {
		code := fiber.StatusBadRequest
		if err == domain.ErrRecipeNotFound {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) UploadRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	email := c.Locals("email").(string)
	role := c.Locals("role").(string)

	req := new(domain.UploadRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.Upload(c.Context(), *req, userID, email, role)
	if err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(presenters.Response{
				Status:  "error",
				Message: domain.MessageFailedUploadRecipe,
				Data:    fiber.Map{"reasons": validationErr.Reasons},
				Error:   err.Error(),
			})
		case err == domain.ErrOnlyChefsCanUpload:
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedUploadRecipe, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUploadRecipe, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadRecipe)
}

func (h *recipeHandler) SaveExternalRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	email := c.Locals("email").(string)

	req := new(domain.SaveExternalRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveRecipe, err)
	}

	recipeID, err := h.recipeService.SaveExternal(c.Context(), *req, userID, email)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSaveRecipe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"recipe_id": recipeID}, fiber.StatusCreated, domain.MessageSuccessSaveRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)

	req := new(domain.DeleteRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.recipeService.Delete(c.Context(), *req, userID, role); err != nil {
		switch {
		case err == domain.ErrRecipeNotFound:
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteRecipe, err)
		case err == domain.ErrUserNotAllowed:
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedDeleteRecipe, err)
		case errors.Is(err, domain.ErrCascadeIncomplete):
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteRecipe, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteRecipe, err)
		}
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) FavoriteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.FavoriteRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFavorite, err)
	}

	if err := h.recipeService.Favorite(c.Context(), *req, userID); err != nil {
		switch err {
		case domain.ErrAlreadyFavorited:
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedFavorite, err)
		case domain.ErrRecipeNotFound:
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedFavorite, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedFavorite, err)
		}
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessFavorite)
}

func (h *recipeHandler) UnfavoriteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.FavoriteRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUnfavorite, err)
	}

	if err := h.recipeService.Unfavorite(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUnfavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUnfavorite)
}

func (h *recipeHandler) ToggleBookmark(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.BookmarkRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBookmark, err)
	}

	res, err := h.recipeService.ToggleBookmark(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedBookmark, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessBookmark)
}

func (h *recipeHandler) RateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	email := c.Locals("email").(string)
	recipeID := c.Params("id")

	req := new(domain.RateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.recipeService.Rate(c.Context(), recipeID, *req, userID, email); err != nil {
		switch err {
		case domain.ErrInvalidRating:
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRate, err)
		case domain.ErrRecipeNotFound:
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedRate, err)
		case domain.ErrAlreadyRated:
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedRate, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRate, err)
		}
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRate)
}

func (h *recipeHandler) UploadRecipeImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UploadRecipeImageRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	imageURL, err := h.recipeService.UploadImage(c.Context(), *req, image, userID)
	if err != nil {
		switch err {
		case domain.ErrRecipeNotFound:
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUploadImage, err)
		case domain.ErrUserNotAllowed:
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedUploadImage, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUploadImage, err)
		}
	}

	return presenters.SuccessResponse(c, fiber.Map{"image_url": imageURL}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *recipeHandler) GetShoppingList(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	source := entities.ParseProvenance(c.Query("source", ""))

	if source == entities.ProvenanceExternal {
		res, ok := h.searchService.GetRecipeInformation(c.Context(), recipeID)
		if !ok {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedShoppingList, domain.ErrRecipeNotFound)
		}
		return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessShoppingList)
	}

	res, err := h.recipeService.ShoppingList(c.Context(), recipeID)
	if err != nil {
		code := fiber.StatusInternalServerError
		if err == domain.ErrRecipeNotFound {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedShoppingList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessShoppingList)
}

func (h *recipeHandler) EmailShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	email := c.Locals("email").(string)
	recipeID := c.Params("id")
	source := entities.ParseProvenance(c.Query("source", ""))

	if err := h.recipeService.EmailShoppingList(c.Context(), recipeID, source, userID, email); err != nil {
		code := fiber.StatusInternalServerError
		if err == domain.ErrRecipeNotFound {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedEmailList, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessEmailList)
}
