package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	gridorchestrator "github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/grid"
)

// GridEvent names the server-sent event carrying a grid snapshot
const GridEvent = "grid"

func (h *Handler) bindGrid(c *gin.Context) (grid.DTO, bool) {
	var dto grid.DTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		h.renderError(c, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid grid body"))
		return grid.DTO{}, false
	}
	return dto, true
}

// CreateGrid handles POST /api/grid/
func (h *Handler) CreateGrid(c *gin.Context) {
	dto, ok := h.bindGrid(c)
	if !ok {
		return
	}

	out, err := h.grids.CreateGrid(c.Request.Context(), &gridorchestrator.CreateGridInput{
		Label:      dto.Label,
		Descriptor: dto.Descriptor,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, grid.ToDTO(out.Grid))
}

// UpdateGrid handles PUT /api/grid/:id
func (h *Handler) UpdateGrid(c *gin.Context) {
	dto, ok := h.bindGrid(c)
	if !ok {
		return
	}

	out, err := h.grids.UpdateGrid(c.Request.Context(), &gridorchestrator.UpdateGridInput{
		ID:         c.Param("id"),
		Label:      dto.Label,
		Descriptor: dto.Descriptor,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, grid.ToDTO(out.Grid))
}

// GetGrid handles GET /api/grid/:id
func (h *Handler) GetGrid(c *gin.Context) {
	out, err := h.grids.GetGrid(c.Request.Context(), &gridorchestrator.GetGridInput{ID: c.Param("id")})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, grid.ToDTO(out.Grid))
}

// ListGrids handles GET /api/grid/
func (h *Handler) ListGrids(c *gin.Context) {
	out, err := h.grids.ListGrids(c.Request.Context(), &gridorchestrator.ListGridsInput{})
	if err != nil {
		h.renderError(c, err)
		return
	}

	dtos := make([]grid.DTO, 0, len(out.Grids))
	for _, g := range out.Grids {
		dtos = append(dtos, grid.ToDTO(g))
	}
	c.JSON(http.StatusOK, dtos)
}

// DeleteGrid handles DELETE /api/grid/:id
func (h *Handler) DeleteGrid(c *gin.Context) {
	_, err := h.grids.DeleteGrid(c.Request.Context(), &gridorchestrator.DeleteGridInput{ID: c.Param("id")})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SubscribeGrid handles GET /api/grid/:id/subscribe. Every snapshot, the
// current one first, is sent as an event named "grid" with the grid DTO as
// JSON data. The stream ends when the client goes away.
func (h *Handler) SubscribeGrid(c *gin.Context) {
	id := c.Param("id")
	sub, err := h.grids.Subscribe(c.Request.Context(), &gridorchestrator.SubscribeInput{ID: id})
	if err != nil {
		h.renderError(c, err)
		return
	}
	defer sub.Cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	h.logger.Debug("sse stream opened", zap.String("grid_id", id))

	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case g, ok := <-sub.Updates:
			if !ok {
				return false
			}
			c.SSEvent(GridEvent, grid.ToDTO(g))
			return true
		}
	})

	h.logger.Debug("sse stream closed", zap.String("grid_id", id))
}
