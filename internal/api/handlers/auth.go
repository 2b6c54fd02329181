package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Neelshah1810/GHXChange/internal/ledger"
	"github.com/Neelshah1810/GHXChange/internal/service"
)

// AuthHandler handles registration, login, and role operations
type AuthHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *service.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// userView is the user shape returned to clients (no password hash).
type userView struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	Name          string `json:"name"`
	WalletAddress string `json:"walletAddress"`
}

// walletView is the wallet shape returned to clients (no private key).
type walletView struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
	Type    string `json:"type"`
	Name    string `json:"name"`
}

func viewUser(u *ledger.User) userView {
	return userView{
		ID:            u.ID,
		Username:      u.Username,
		Role:          u.Role,
		Name:          u.Name,
		WalletAddress: u.WalletAddress,
	}
}

func viewWallet(w *ledger.Wallet) walletView {
	return walletView{
		Address: w.Address,
		Balance: w.Balance,
		Type:    w.Type,
		Name:    w.Name,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
}

// Register creates a new user with its wallet
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result, err := h.userService.Register(&service.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		h.logger.Warn("Registration failed", zap.String("username", req.Username), zap.Error(err))
		respondError(c, err)
		return
	}

	h.logger.Info("User registered",
		zap.String("username", result.User.Username),
		zap.String("role", result.User.Role),
		zap.String("wallet", result.Wallet.Address),
	)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    viewUser(result.User),
		"wallet":  viewWallet(result.Wallet),
	})
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// Login authenticates a user under the requested role
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result, err := h.userService.Login(req.Username, req.Password, req.Role)
	if err != nil {
		h.logger.Warn("Login failed", zap.String("username", req.Username), zap.Error(err))
		respondError(c, err)
		return
	}

	h.logger.Info("User logged in", zap.String("username", result.User.Username), zap.String("role", result.User.Role))

	c.JSON(http.StatusOK, gin.H{
		"user":   viewUser(result.User),
		"wallet": viewWallet(result.Wallet),
		"token":  result.Token,
	})
}

// GetCurrentUser returns the currently authenticated user
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, _ := c.Get("user_id")
	username, _ := c.Get("username")
	role, _ := c.Get("role")
	walletAddress, _ := c.Get("wallet_address")

	c.JSON(http.StatusOK, gin.H{
		"user_id":       userID,
		"username":      username,
		"role":          role,
		"walletAddress": walletAddress,
	})
}

// SwitchRoleRequest represents a role switch request
type SwitchRoleRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
	NewRole       string `json:"newRole" binding:"required"`
}

// SwitchRole changes the active role of a wallet's owner
func (h *AuthHandler) SwitchRole(c *gin.Context) {
	var req SwitchRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result, err := h.userService.SwitchRole(req.WalletAddress, req.NewRole)
	if err != nil {
		h.logger.Warn("Role switch failed", zap.String("wallet", req.WalletAddress), zap.Error(err))
		respondError(c, err)
		return
	}

	h.logger.Info("Role switched",
		zap.String("wallet", req.WalletAddress),
		zap.String("new_role", result.NewRole),
	)

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully switched to " + result.NewRole + " role",
		"newRole": result.NewRole,
		"wallet":  viewWallet(result.Wallet),
	})
}

// GetRoles returns the active role records for a wallet
func (h *AuthHandler) GetRoles(c *gin.Context) {
	walletAddress := c.Param("walletAddress")

	roles, err := h.userService.GetRoles(walletAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, roles)
}
