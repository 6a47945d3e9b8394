package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tcgscan/scanbot/internal/services"
)

const maxListLimit = 200

type ScanHandler struct {
	scans *services.ScanService
}

func NewScanHandler(scans *services.ScanService) *ScanHandler {
	return &ScanHandler{
		scans: scans,
	}
}

// ListScans returns the most recent scans, newest first.
func (h *ScanHandler) ListScans(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	scans, err := h.scans.ListScans(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scans": scans,
		"count": len(scans),
	})
}

// GetScan returns one scan with its price snapshots.
func (h *ScanHandler) GetScan(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.scans.GetScan(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		return
	}

	c.JSON(http.StatusOK, detail)
}
