package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Neelshah1810/GHXChange/internal/service"
)

// StatsHandler serves the system-wide dashboard totals
type StatsHandler struct {
	ledgerService *service.LedgerService
	logger        *zap.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(ledgerService *service.LedgerService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// GetStats returns issued/retired/active totals and participant counts
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.ledgerService.GetStats()
	if err != nil {
		h.logger.Error("Failed to compute system stats", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
