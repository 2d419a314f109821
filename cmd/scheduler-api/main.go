package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/barron/scheduler/pkg/infrastructure/events"
	"github.com/barron/scheduler/pkg/interfaces/rest"
)

var (
	port       = flag.Int("port", 0, "API server port (overrides config)")
	configFile = flag.String("config", "", "Path to configuration file")
)

func main() {
	flag.Parse()

	config := rest.DefaultServerConfig()
	if *configFile != "" {
		loaded, err := rest.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		config = loaded
	}
	if *port > 0 {
		config.Server.Port = *port
	}

	store := events.NewInMemoryEventStore()
	api := rest.NewSchedulerAPI(config, store)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Server.Port),
		Handler: api.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", config.Server.Port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}
