package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-style-review-be/internal/bootstrap"
	"ai-style-review-be/internal/config"
	"ai-style-review-be/internal/server"
	"ai-style-review-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Unable to bootstrap: %v", err)
	}
	defer container.Close()

	// 3. Tracing
	shutdownTracer := tracer.InitTracer(container.Logger)
	defer shutdownTracer(context.Background())

	// 4. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := container.ConsumerService.Consume(ctx); err != nil {
		container.Logger.Error("MAIN", "Failed to start accepted suggestion consumer", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			container.Logger.Error("MAIN", "Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		container.Logger.Error("MAIN", "Server stopped", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
