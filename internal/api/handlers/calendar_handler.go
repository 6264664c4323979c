package handlers

import (
	"Recipe-Finder/domain"
	"Recipe-Finder/internal/api/presenters"
	"Recipe-Finder/pkg/calendar"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CalendarHandler interface {
		GetCalendar(c *fiber.Ctx) error
		AddToCalendar(c *fiber.Ctx) error
		RemoveFromCalendar(c *fiber.Ctx) error
	}

	calendarHandler struct {
		calendarService calendar.CalendarService
		validator       *validator.Validate
	}
)

func NewCalendarHandler(calendarService calendar.CalendarService, validator *validator.Validate) CalendarHandler {
	return &calendarHandler{
		calendarService: calendarService,
		validator:       validator,
	}
}

func (h *calendarHandler) GetCalendar(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.calendarService.ListCalendar(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(presenters.Response{
			Status:  "error",
			Message: domain.MessageFailedGetCalendar,
			Data:    fiber.Map{"events": res},
			Error:   err.Error(),
		})
	}

	return presenters.SuccessResponse(c, fiber.Map{"events": res}, fiber.StatusOK, domain.MessageSuccessGetCalendar)
}

func (h *calendarHandler) AddToCalendar(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.AddToCalendarRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddToCalendar, err)
	}

	res, err := h.calendarService.AddToCalendar(c.Context(), *req, userID)
	if err != nil {
		code := fiber.StatusInternalServerError
		if err == domain.ErrRecipeNotFound {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedAddToCalendar, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddToCalendar)
}

func (h *calendarHandler) RemoveFromCalendar(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.RemoveFromCalendarRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveCalendar, err)
	}

	if err := h.calendarService.RemoveFromCalendar(c.Context(), *req, userID); err != nil {
		code := fiber.StatusInternalServerError
		if err == domain.ErrCalendarEventNotFound {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedRemoveCalendar, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveCalendar)
}
