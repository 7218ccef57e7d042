package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-hub/models"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store  Pinger
	driver string
	log    *zap.Logger
}

func NewHealthController(store Pinger, driver string, log *zap.Logger) *HealthController {
	return &HealthController{store: store, driver: driver, log: log}
}

// @Summary Liveness
// @Tags Health
// @Produce json
// @Success 200 {object} models.Response
// @Router /health [get]
func (ctrl *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "OK",
	})
}

// @Summary Store health
// @Tags Health
// @Produce json
// @Success 200 {object} models.Response
// @Failure 503 {object} models.ErrorResponse
// @Router /health/store [get]
func (ctrl *HealthController) Store(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := ctrl.store.Ping(ctx); err != nil {
		ctrl.log.Warn("store ping failed", zap.String("driver", ctrl.driver), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Success: false,
			Message: "Store unavailable",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Store reachable",
		Data:    gin.H{"driver": ctrl.driver},
	})
}
