package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tcgscan/scanbot/internal/models"
	"github.com/tcgscan/scanbot/internal/services"
)

type AnalyzeHandler struct {
	analyzer *services.AnalyzerService
}

func NewAnalyzeHandler(analyzer *services.AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
	}
}

// Analyze runs the quote/KPI/recommendation pipeline for a selected card.
// Side effects: one scan record plus one snapshot row per quote, written
// before KPIs are computed.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), req.Game, req.Card, req.Rules)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
