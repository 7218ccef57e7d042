package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"retail-hub/app"
	"retail-hub/config"
	_ "retail-hub/docs"
	"retail-hub/libs"
	"retail-hub/models"
)

var (
	handler http.Handler
	initErr error
	once    sync.Once
)

func initApp() {
	once.Do(func() {
		ctx := context.Background()

		cfg, err := config.Load(ctx)
		if err != nil {
			initErr = err
			return
		}

		logger, err := libs.NewLogger(cfg.App.Environment, cfg.App.LogLevel)
		if err != nil {
			initErr = err
			return
		}

		application, err := app.New(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to initialise application", zap.Error(err))
			initErr = err
			return
		}
		handler = application.Router
	})
}

// Handler is the serverless entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		writeUnavailable(w, initErr)
		return
	}
	handler.ServeHTTP(w, r)
}

func writeUnavailable(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{
		Success: false,
		Message: "Service unavailable",
		Error:   err.Error(),
	})
}
