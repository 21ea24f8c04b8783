package controller

import (
	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"notesync/internal/config"
	"notesync/internal/pkg/serverutils"
	"notesync/internal/websocket"
)

// IPushController owns the push channel surface: ticket minting over HTTP and
// the websocket upgrade itself.
type IPushController interface {
	RegisterRoutes(r fiber.Router)
	MintTicket(ctx *fiber.Ctx) error
}

type pushController struct {
	hub        *websocket.Hub
	pushConfig config.PushConfig
	auth       fiber.Handler
}

func NewPushController(hub *websocket.Hub, pushConfig config.PushConfig, auth fiber.Handler) IPushController {
	return &pushController{
		hub:        hub,
		pushConfig: pushConfig,
		auth:       auth,
	}
}

func (c *pushController) RegisterRoutes(r fiber.Router) {
	r.Get("/push-ticket", c.auth, c.MintTicket)

	r.Use("/ws", func(ctx *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	r.Get("/ws", fiberws.New(func(conn *fiberws.Conn) {
		websocket.ServeWs(c.hub, conn, func(ticket string) (uuid.UUID, error) {
			return serverutils.VerifyPushTicket(c.pushConfig.TicketSecret, ticket)
		})
	}))
}

// MintTicket issues a short-lived signed ticket the browser presents in the
// websocket authenticate frame. Cookies don't ride along on some websocket
// clients, so the ticket carries the identity instead.
func (c *pushController) MintTicket(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	ticket, err := serverutils.MintPushTicket(c.pushConfig.TicketSecret, userId, c.pushConfig.TicketTTL)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"ticket": ticket})
}
