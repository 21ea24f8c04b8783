package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"notesync/internal/dto"
	"notesync/internal/pkg/serverutils"
	"notesync/internal/service"
	"notesync/pkg/view"
)

type INotebookController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type notebookController struct {
	service service.INotebookService
	auth    fiber.Handler
}

func NewNotebookController(service service.INotebookService, auth fiber.Handler) INotebookController {
	return &notebookController{
		service: service,
		auth:    auth,
	}
}

func (c *notebookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notebooks")
	h.Use(c.auth)
	h.Get("/:section", c.GetAll)
	h.Post("", c.Create)
	h.Delete("/:id", c.Delete)
}

func (c *notebookController) GetAll(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))
	section := view.Section(ctx.Params("section"))

	res, err := c.service.GetAll(ctx.Context(), userId, section)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *notebookController) Create(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	var req dto.CreateNotebookRequest
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

func (c *notebookController) Delete(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("Invalid notebook id")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"success": true})
}
