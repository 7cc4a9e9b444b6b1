// Package v1 serves the shared grid and dice session REST API over gin
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/dice"
	gridorchestrator "github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/grid"
)

// Config holds dependencies for the API handler
type Config struct {
	GridService gridorchestrator.Service
	DiceService dice.Service
	Logger      *zap.Logger

	// AllowedOrigins restricts websocket upgrades. Empty or "*" accepts any origin.
	AllowedOrigins []string
}

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.GridService == nil {
		vb.RequiredField("GridService")
	}
	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	return vb.Build()
}

// Handler implements the /api routes
type Handler struct {
	grids    gridorchestrator.Service
	dice     dice.Service
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new API handler with the given configuration
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		grids:    cfg.GridService,
		dice:     cfg.DiceService,
		logger:   logger,
		upgrader: newUpgrader(cfg.AllowedOrigins),
	}, nil
}

// RegisterRoutes mounts the grid and dice routes on r
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")

	grids := api.Group("/grid")
	grids.POST("/", h.CreateGrid)
	grids.GET("/", h.ListGrids)
	grids.GET("/:id", h.GetGrid)
	grids.PUT("/:id", h.UpdateGrid)
	grids.DELETE("/:id", h.DeleteGrid)
	grids.GET("/:id/subscribe", h.SubscribeGrid)
	grids.GET("/:id/ws", h.GridSocket)

	diceRoutes := api.Group("/dice")
	diceRoutes.POST("/roll", h.RollDice)
	diceRoutes.GET("/session", h.GetRollSession)
	diceRoutes.DELETE("/session", h.ClearRollSession)
}

// renderError writes err as a {"code","message"} body. Server side failures
// are logged; client mistakes are left to the request logger.
func (h *Handler) renderError(c *gin.Context, err error) {
	status, body := errors.ToBody(err)
	if status >= 500 {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", string(body.Code)),
			zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}
