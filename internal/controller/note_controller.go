package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"notesync/internal/dto"
	"notesync/internal/pkg/serverutils"
	"notesync/internal/service"
	"notesync/pkg/view"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ToggleFavorite(ctx *fiber.Ctx) error
}

type noteController struct {
	service service.INoteService
	auth    fiber.Handler
}

func NewNoteController(service service.INoteService, auth fiber.Handler) INoteController {
	return &noteController{
		service: service,
		auth:    auth,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Use(c.auth)
	h.Get("/:section/:notebookId?", c.List)
	h.Post("", c.Create)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/favorite", c.ToggleFavorite)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))
	section := view.Section(ctx.Params("section"))

	var notebookId *uuid.UUID
	if param := ctx.Params("notebookId"); param != "" {
		id, err := uuid.Parse(param)
		if err != nil {
			return serverutils.BadRequest("Invalid notebook id")
		}
		notebookId = &id
	}

	res, err := c.service.List(ctx.Context(), userId, section, notebookId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("Invalid note id")
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	req.Id = id

	res, err := c.service.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("Invalid note id")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"success": true})
}

func (c *noteController) ToggleFavorite(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("Invalid note id")
	}

	res, err := c.service.ToggleFavorite(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
