package controller

import (
	"errors"

	"mentorlink-be/internal/dto"
	"mentorlink-be/internal/pkg/serverutils"
	"mentorlink-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMatchController interface {
	RegisterRoutes(r fiber.Router)
	FindMatch(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type matchController struct {
	service service.IMatchService
}

func NewMatchController(service service.IMatchService) IMatchController {
	return &matchController{service: service}
}

func (c *matchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/match")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.FindMatch)
	h.Get("/history", c.GetHistory)
}

func (c *matchController) FindMatch(ctx *fiber.Ctx) error {
	var req dto.FindMatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// The requester is whoever is calling, regardless of body content.
	if userIdStr, ok := ctx.Locals("user_id").(string); ok {
		if userId, err := uuid.Parse(userIdStr); err == nil {
			req.RequesterId = userId
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.FindMatch(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrRequesterNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, service.ErrNoEducators) || errors.Is(err, service.ErrNoLearners) || errors.Is(err, service.ErrNoSubjects) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success find match", res))
}

func (c *matchController) GetHistory(ctx *fiber.Ctx) error {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid user id")
	}

	res, err := c.service.GetHistory(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get match history", res))
}
