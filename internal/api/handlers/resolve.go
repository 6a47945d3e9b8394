package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tcgscan/scanbot/internal/models"
	"github.com/tcgscan/scanbot/internal/services"
)

type ResolveHandler struct {
	resolver *services.ResolverService
}

func NewResolveHandler(resolver *services.ResolverService) *ResolveHandler {
	return &ResolveHandler{
		resolver: resolver,
	}
}

// Resolve returns ranked card candidates for a game guess and OCR text.
// The text is normalized first, and an "unknown" game is refined from
// keyword heuristics before dispatch. Validation failures are the only
// error path; provider failures degrade to an empty candidate list.
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var req models.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := services.NormalizeOCR(req.Text)
	game := req.Game
	if game == models.GameUnknown {
		game = services.GuessGame(text)
	}

	candidates := h.resolver.Resolve(c.Request.Context(), game, text)

	c.JSON(http.StatusOK, models.ResolveResponse{Candidates: candidates})
}
