package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jphacks/hs-2501/internal/api"
	"github.com/jphacks/hs-2501/internal/config"
	"github.com/jphacks/hs-2501/internal/repository"
	"github.com/jphacks/hs-2501/internal/service"
	"github.com/jphacks/hs-2501/internal/utils"
)

func main() {
	logger := utils.NewLogger()
	if err := run(logger); err != nil {
		logger.Fatal("%v", err)
	}
}

// run wires the server and blocks on it. Errors are returned rather than
// logged fatally so the deferred store cleanup runs before the process
// exits.
func run(logger *utils.Logger) error {
	// Load configuration
	cfg := config.LoadConfig()

	// Create the persistence backend
	repo, cleanup, err := repository.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up store: %w", err)
	}
	defer cleanup()

	// Create service
	svc := service.NewDefaultService(repo, cfg.Auth.SessionTTL, nil)

	// Create API handler
	handler := api.NewHandler(svc, logger)

	// Set up Gin router
	router := gin.Default()
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Starting server on %s (store backend: %s)", serverAddr, cfg.Store.Backend)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
