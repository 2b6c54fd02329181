package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Neelshah1810/GHXChange/internal/service"
)

// CreditsHandler handles credit lifecycle operations
type CreditsHandler struct {
	ledgerService *service.LedgerService
	logger        *zap.Logger
}

// NewCreditsHandler creates a new credits handler
func NewCreditsHandler(ledgerService *service.LedgerService, logger *zap.Logger) *CreditsHandler {
	return &CreditsHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// IssueRequest represents a production claim
type IssueRequest struct {
	ProducerAddress string `json:"producerAddress" binding:"required"`
	HydrogenKg      int64  `json:"hydrogenKg" binding:"required"`
	EnergySource    string `json:"energySource" binding:"required"`
	Location        string `json:"location" binding:"required"`
}

// Issue records a production claim as a pending certificate
func (h *CreditsHandler) Issue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result, err := h.ledgerService.IssueCredits(&service.IssueCreditsRequest{
		ProducerAddress: req.ProducerAddress,
		HydrogenKg:      req.HydrogenKg,
		EnergySource:    req.EnergySource,
		Location:        req.Location,
	})
	if err != nil {
		h.logger.Warn("Credit issuance failed", zap.String("producer", req.ProducerAddress), zap.Error(err))
		respondError(c, err)
		return
	}

	h.logger.Info("Credits issued pending verification",
		zap.String("certificate_id", result.Certificate.CertificateID),
		zap.String("producer", req.ProducerAddress),
		zap.Int64("hydrogen_kg", req.HydrogenKg),
	)

	c.JSON(http.StatusOK, gin.H{
		"transaction": result.Transaction,
		"certificate": result.Certificate,
		"message":     fmt.Sprintf("Successfully issued %d GHC credits", req.HydrogenKg),
	})
}

// PurchaseRequest represents a credit purchase
type PurchaseRequest struct {
	ProducerAddress string `json:"producerAddress" binding:"required"`
	BuyerAddress    string `json:"buyerAddress" binding:"required"`
	Amount          int64  `json:"amount" binding:"required"`
}

// Purchase transfers credits from a producer to a buyer
func (h *CreditsHandler) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	tx, err := h.ledgerService.PurchaseCredits(&service.PurchaseCreditsRequest{
		ProducerAddress: req.ProducerAddress,
		BuyerAddress:    req.BuyerAddress,
		Amount:          req.Amount,
	})
	if err != nil {
		h.logger.Warn("Credit purchase failed",
			zap.String("producer", req.ProducerAddress),
			zap.String("buyer", req.BuyerAddress),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	h.logger.Info("Credits purchased",
		zap.String("producer", req.ProducerAddress),
		zap.String("buyer", req.BuyerAddress),
		zap.Int64("amount", req.Amount),
	)

	c.JSON(http.StatusOK, gin.H{
		"transaction": tx,
		"message":     fmt.Sprintf("Successfully purchased %d GHC credits", req.Amount),
	})
}

// RetireRequest represents a credit retirement
type RetireRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  int64  `json:"amount" binding:"required"`
	Purpose string `json:"purpose"`
}

// Retire permanently removes credits from circulation
func (h *CreditsHandler) Retire(c *gin.Context) {
	var req RetireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	tx, err := h.ledgerService.RetireCredits(&service.RetireCreditsRequest{
		Address: req.Address,
		Amount:  req.Amount,
		Purpose: req.Purpose,
	})
	if err != nil {
		h.logger.Warn("Credit retirement failed", zap.String("address", req.Address), zap.Error(err))
		respondError(c, err)
		return
	}

	h.logger.Info("Credits retired",
		zap.String("address", req.Address),
		zap.Int64("amount", req.Amount),
	)

	c.JSON(http.StatusOK, gin.H{
		"transaction": tx,
		"message":     fmt.Sprintf("Successfully retired %d GHC credits", req.Amount),
	})
}

// GetBalance returns the balance of a wallet
func (h *CreditsHandler) GetBalance(c *gin.Context) {
	address := c.Param("address")

	balance, err := h.ledgerService.GetBalance(address)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// ListTransactions returns all transactions
func (h *CreditsHandler) ListTransactions(c *gin.Context) {
	txs, err := h.ledgerService.GetTransactions("")
	if err != nil {
		h.logger.Error("Failed to list transactions", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, txs)
}

// GetTransactions returns the transactions touching an address
func (h *CreditsHandler) GetTransactions(c *gin.Context) {
	address := c.Param("address")

	txs, err := h.ledgerService.GetTransactions(address)
	if err != nil {
		h.logger.Error("Failed to get transactions", zap.String("address", address), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, txs)
}

// ListProducers returns the producer wallet directory
func (h *CreditsHandler) ListProducers(c *gin.Context) {
	producers, err := h.ledgerService.GetProducers()
	if err != nil {
		h.logger.Error("Failed to list producers", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, producers)
}
