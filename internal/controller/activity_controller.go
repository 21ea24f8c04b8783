package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"notesync/internal/service"
)

type IActivityController interface {
	RegisterRoutes(r fiber.Router)
	GetRecent(ctx *fiber.Ctx) error
}

type activityController struct {
	service service.IActivityService
	auth    fiber.Handler
}

func NewActivityController(service service.IActivityService, auth fiber.Handler) IActivityController {
	return &activityController{
		service: service,
		auth:    auth,
	}
}

func (c *activityController) RegisterRoutes(r fiber.Router) {
	r.Get("/activity", c.auth, c.GetRecent)
}

func (c *activityController) GetRecent(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	res, err := c.service.GetRecent(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
