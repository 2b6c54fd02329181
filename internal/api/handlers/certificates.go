package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Neelshah1810/GHXChange/internal/service"
)

// CertificatesHandler handles certificate verification operations
type CertificatesHandler struct {
	ledgerService *service.LedgerService
	logger        *zap.Logger
}

// NewCertificatesHandler creates a new certificates handler
func NewCertificatesHandler(ledgerService *service.LedgerService, logger *zap.Logger) *CertificatesHandler {
	return &CertificatesHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// List returns all certificates
func (h *CertificatesHandler) List(c *gin.Context) {
	certs, err := h.ledgerService.GetCertificates("")
	if err != nil {
		h.logger.Error("Failed to list certificates", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, certs)
}

// ListByProducer returns the certificates issued by a producer
func (h *CertificatesHandler) ListByProducer(c *gin.Context) {
	address := c.Param("address")

	certs, err := h.ledgerService.GetCertificates(address)
	if err != nil {
		h.logger.Error("Failed to get certificates", zap.String("address", address), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, certs)
}

// Verify transitions a pending certificate to valid and mints its credits
func (h *CertificatesHandler) Verify(c *gin.Context) {
	certificateID := c.Param("certificateId")

	cert, err := h.ledgerService.VerifyCertificate(certificateID)
	if err != nil {
		h.logger.Warn("Certificate verification failed", zap.String("certificate_id", certificateID), zap.Error(err))
		respondError(c, err)
		return
	}

	h.logger.Info("Certificate verified",
		zap.String("certificate_id", certificateID),
		zap.String("producer", cert.ProducerAddress),
		zap.Int64("hydrogen_kg", cert.HydrogenKg),
	)

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("Certificate %s has been verified and %d GHC credits have been issued", certificateID, cert.HydrogenKg),
		"certificate": cert,
	})
}

// FlagRequest carries the optional reason for flagging
type FlagRequest struct {
	Reason string `json:"reason"`
}

// Flag transitions a pending certificate to flagged
func (h *CertificatesHandler) Flag(c *gin.Context) {
	certificateID := c.Param("certificateId")

	var req FlagRequest
	// The body is optional; ignore binding errors for an empty body
	_ = c.ShouldBindJSON(&req)

	cert, err := h.ledgerService.FlagCertificate(certificateID)
	if err != nil {
		h.logger.Warn("Certificate flagging failed", zap.String("certificate_id", certificateID), zap.Error(err))
		respondError(c, err)
		return
	}

	h.logger.Info("Certificate flagged",
		zap.String("certificate_id", certificateID),
		zap.String("reason", req.Reason),
	)

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("Certificate %s has been flagged", certificateID),
		"certificate": cert,
		"reason":      req.Reason,
	})
}
