package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"notesync/internal/dto"
	"notesync/internal/pkg/serverutils"
	"notesync/internal/service"
)

type ILockController interface {
	RegisterRoutes(r fiber.Router)
	SetPassword(ctx *fiber.Ctx) error
	VerifyPassword(ctx *fiber.Ctx) error
	CheckSetup(ctx *fiber.Ctx) error
}

type lockController struct {
	service service.ILockService
	auth    fiber.Handler
}

func NewLockController(service service.ILockService, auth fiber.Handler) ILockController {
	return &lockController{
		service: service,
		auth:    auth,
	}
}

func (c *lockController) RegisterRoutes(r fiber.Router) {
	r.Post("/set-lock-password", c.auth, c.SetPassword)
	r.Post("/verify-lock-password", c.auth, c.VerifyPassword)
	r.Get("/check-lock-setup", c.auth, c.CheckSetup)
}

func (c *lockController) SetPassword(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	var req dto.SetLockPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.SetPassword(ctx.Context(), userId, &req); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"success": true})
}

func (c *lockController) VerifyPassword(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	var req dto.VerifyLockPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.VerifyPassword(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *lockController) CheckSetup(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	res, err := c.service.CheckSetup(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
