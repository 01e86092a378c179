package main

import (
	"context"
	"log"

	"sales-intel-be/internal/bootstrap"
	"sales-intel-be/internal/config"
	"sales-intel-be/internal/server"
	"sales-intel-be/internal/tracer"
	"sales-intel-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
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
	defer container.Logger.Sync()

	// 4. Start Background Workers
	if err := container.RunRecorder.Consume(context.Background()); err != nil {
		log.Printf("Background: run recorder failed to start: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
