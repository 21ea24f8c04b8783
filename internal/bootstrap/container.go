package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"notesync/internal/config"
	"notesync/internal/controller"
	"notesync/internal/pkg/logger"
	"notesync/internal/pkg/serverutils"
	"notesync/internal/repository/memory"
	"notesync/internal/repository/unitofwork"
	"notesync/internal/service"
	"notesync/internal/websocket"
	pkgNats "notesync/pkg/nats"
)

// viewRefreshTopic is the in-process queue between mutation handlers and the
// recompute-and-broadcast pipeline.
const viewRefreshTopic = "view.refresh"

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	NotebookController controller.INotebookController
	NoteController     controller.INoteController
	LockController     controller.ILockController
	ActivityController controller.IActivityController
	PushController     controller.IPushController

	// Background Services (Exposed for main.go to run)
	SyncService service.ISyncService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// In-memory session storage
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL)
	requireAuth := serverutils.RequireAuth(sessionRepo, cfg.Session.CookieName)

	// 3. Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// WebSocket Hub
	pushLogger := logger.NewIsolatedLogger("logs/push.log")
	wsHub := websocket.NewHub(rdb, pushLogger)
	go wsHub.Run()

	// 4. Services
	viewService := service.NewViewService(uowFactory)
	publisherService := service.NewPublisherService(pubSub, viewRefreshTopic)
	syncService := service.NewSyncService(pubSub, viewRefreshTopic, viewService, wsHub, pushLogger)

	authService := service.NewAuthService(uowFactory, sessionRepo, natsPub)
	notebookService := service.NewNotebookService(uowFactory, viewService, publisherService, natsPub)
	noteService := service.NewNoteService(uowFactory, viewService, publisherService)
	lockService := service.NewLockService(uowFactory, natsPub)

	activityLogger := logger.NewIsolatedLogger("logs/activity.log")
	activityService := service.NewActivityService(uowFactory, activityLogger)
	if natsSub != nil {
		if err := activityService.Start(natsSub); err != nil {
			sysLogger.Warn("Bootstrap", "Activity recorder not started", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// 5. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService, cfg.Session),
		NotebookController: controller.NewNotebookController(notebookService, requireAuth),
		NoteController:     controller.NewNoteController(noteService, requireAuth),
		LockController:     controller.NewLockController(lockService, requireAuth),
		ActivityController: controller.NewActivityController(activityService, requireAuth),
		PushController:     controller.NewPushController(wsHub, cfg.Push, requireAuth),

		SyncService:  syncService,
		WebSocketHub: wsHub,
	}
}
