package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"llm-chat-be/internal/bootstrap"
	"llm-chat-be/internal/config"
	"llm-chat-be/internal/pkg/logger"
	"llm-chat-be/internal/server"
	"llm-chat-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	// 2. Tracer
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Store
	uowFactory, _, err := bootstrap.OpenStore(cfg)
	if err != nil {
		log.Panicf("Unable to open %s store: %v", cfg.Store.Driver, err)
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg, bootstrap.Dependencies{
		UowFactory: uowFactory,
		Logger:     sysLogger,
	})
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Background Services
	if err := container.Start(ctx, cfg); err != nil {
		log.Panicf("Unable to start background services: %v", err)
	}

	// 6. Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown()
	}()

	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
