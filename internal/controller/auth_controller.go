package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"notesync/internal/config"
	"notesync/internal/dto"
	"notesync/internal/pkg/serverutils"
	"notesync/internal/service"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	CheckSession(ctx *fiber.Ctx) error
}

type authController struct {
	service       service.IAuthService
	sessionConfig config.SessionConfig
}

func NewAuthController(service service.IAuthService, sessionConfig config.SessionConfig) IAuthController {
	return &authController{
		service:       service,
		sessionConfig: sessionConfig,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Post("/register", c.Register)
	r.Post("/login", c.Login)
	r.Post("/logout", c.Logout)
	r.Get("/check-session", c.CheckSession)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, token, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, token)
	return ctx.JSON(res)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, token, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, token)
	return ctx.JSON(res)
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	c.service.Logout(ctx.Cookies(c.sessionConfig.CookieName))
	ctx.Cookie(&fiber.Cookie{
		Name:     c.sessionConfig.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return ctx.JSON(fiber.Map{"success": true})
}

func (c *authController) CheckSession(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.CheckSession(ctx.Cookies(c.sessionConfig.CookieName)))
}

func (c *authController) setSessionCookie(ctx *fiber.Ctx, token string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.sessionConfig.CookieName,
		Value:    token,
		Expires:  time.Now().Add(c.sessionConfig.TTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
