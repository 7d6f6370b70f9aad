package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Bhargavvz/todoapp/broker"
	"github.com/Bhargavvz/todoapp/config"
	"github.com/Bhargavvz/todoapp/database"
	"github.com/Bhargavvz/todoapp/routes"
	"github.com/Bhargavvz/todoapp/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	repo, closeStore, err := database.NewTodoRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	webSocketService := services.NewWebSocketService(cfg.Origins())
	webSocketService.Start()
	defer webSocketService.Stop()

	publishers := broker.Publishers{webSocketService}
	if cfg.NatsURL != "" {
		producer, err := broker.InitProducer(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize NATS producer: %v", err)
			log.Println("The application will continue without publishing events to the broker")
		} else {
			defer producer.Close()
			publishers = append(publishers, producer)
		}
	}

	todoService := services.NewTodoService(repo, services.WithPublisher(publishers))

	development := cfg.AppEnv == "development"
	if !development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRouter(routes.RouterOptions{
		Origins: cfg.Origins(),
		Debug:   development,
	}, todoService, webSocketService)

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("API server is running on port %s (store: %s)", cfg.AppPort, cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
