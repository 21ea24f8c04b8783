package main

import (
	"context"
	"log"

	"notesync/internal/bootstrap"
	"notesync/internal/config"
	"notesync/internal/server"
	"notesync/internal/tracer"
	"notesync/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start the view sync pipeline
	go func() {
		log.Println("Background: Starting Sync Service...")
		if err := container.SyncService.Consume(context.Background()); err != nil {
			log.Printf("Background Sync Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
