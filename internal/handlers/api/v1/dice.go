package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/dice"
	dicesession "github.com/KirkDiggler/rpg-tabletop/internal/repositories/dice_session"
)

// RollDiceRequest is the body of POST /api/dice/roll
type RollDiceRequest struct {
	EntityID    string `json:"entityId"`
	Context     string `json:"context"`
	Notation    string `json:"notation"`
	Description string `json:"description,omitempty"`
}

// RollDiceResponse carries the new roll and the session it was appended to
type RollDiceResponse struct {
	Roll    *dicesession.DiceRoll    `json:"roll"`
	Session *dicesession.DiceSession `json:"session"`
}

// ClearRollSessionResponse is the body of DELETE /api/dice/session
type ClearRollSessionResponse struct {
	RollsDeleted int `json:"rollsDeleted"`
}

// RollDice handles POST /api/dice/roll
func (h *Handler) RollDice(c *gin.Context) {
	var req RollDiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderError(c, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid roll body"))
		return
	}

	out, err := h.dice.RollDice(c.Request.Context(), &dice.RollDiceInput{
		EntityID:    req.EntityID,
		Context:     req.Context,
		Notation:    req.Notation,
		Description: req.Description,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, RollDiceResponse{Roll: out.Roll, Session: out.Session})
}

// GetRollSession handles GET /api/dice/session?entityId=&context=
func (h *Handler) GetRollSession(c *gin.Context) {
	out, err := h.dice.GetRollSession(c.Request.Context(), &dice.GetRollSessionInput{
		EntityID: c.Query("entityId"),
		Context:  c.Query("context"),
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Session)
}

// ClearRollSession handles DELETE /api/dice/session?entityId=&context=
func (h *Handler) ClearRollSession(c *gin.Context) {
	out, err := h.dice.ClearRollSession(c.Request.Context(), &dice.ClearRollSessionInput{
		EntityID: c.Query("entityId"),
		Context:  c.Query("context"),
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, ClearRollSessionResponse{RollsDeleted: out.RollsDeleted})
}
