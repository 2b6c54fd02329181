package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Neelshah1810/GHXChange/internal/auth"
	"github.com/Neelshah1810/GHXChange/internal/config"
	"github.com/Neelshah1810/GHXChange/internal/keys"
	"github.com/Neelshah1810/GHXChange/internal/ledger"
	"github.com/Neelshah1810/GHXChange/internal/store"
)

// UserService handles registration, login, and role management.
type UserService struct {
	store store.Store
	cfg   *config.Config
}

// NewUserService creates a new user service
func NewUserService(st store.Store, cfg *config.Config) *UserService {
	return &UserService{
		store: st,
		cfg:   cfg,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string
	Password string
	Role     string
	Name     string
	Location string
}

// RegisterResult contains the created identity and its wallet
type RegisterResult struct {
	User   *ledger.User
	Wallet *ledger.Wallet
}

// Register creates a user and its wallet as one unit. The wallet starts at
// zero balance with the user's role as its type.
func (s *UserService) Register(req *RegisterRequest) (*RegisterResult, error) {
	username := strings.TrimSpace(req.Username)
	name := strings.TrimSpace(req.Name)
	location := strings.TrimSpace(req.Location)

	if len(username) < 3 {
		return nil, fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
	}
	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !ledger.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: role must be producer, buyer, or auditor", ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	address, err := keys.NewWalletAddress()
	if err != nil {
		return nil, err
	}
	privateKey, err := keys.NewPrivateKey()
	if err != nil {
		return nil, err
	}

	user := &ledger.User{
		ID:            uuid.New().String(),
		Username:      username,
		PasswordHash:  passwordHash,
		Role:          req.Role,
		Name:          name,
		WalletAddress: address,
	}
	wallet := &ledger.Wallet{
		ID:         uuid.New().String(),
		Address:    address,
		PrivateKey: privateKey,
		Name:       name,
		Type:       req.Role,
		Balance:    0,
	}

	if err := s.store.CreateUserWithWallet(user, wallet); err != nil {
		return nil, mapStoreError(err)
	}

	return &RegisterResult{User: user, Wallet: wallet}, nil
}

// LoginResult contains the authenticated identity, its wallet, and a JWT.
type LoginResult struct {
	User   *ledger.User
	Wallet *ledger.Wallet
	Token  string
}

// Login verifies credentials and the requested role. A user that exists
// under a different role fails with ErrRoleMismatch, not ErrUnauthenticated.
func (s *UserService) Login(username, password, role string) (*LoginResult, error) {
	user, err := s.store.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		if mapStoreError(err) == ErrNotFound {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	// Check role before password so the caller can be told which role the
	// account is registered under
	if user.Role != role {
		return nil, fmt.Errorf("%w: you are registered as a %s, not as a %s", ErrRoleMismatch, user.Role, role)
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, ErrUnauthenticated
	}

	wallet, err := s.store.GetWallet(user.WalletAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to load user wallet: %w", mapStoreError(err))
	}

	token, err := auth.GenerateToken(
		user.ID,
		user.Username,
		user.Role,
		user.WalletAddress,
		s.cfg.JWT.Secret,
		s.cfg.JWT.Issuer,
		s.cfg.JWT.Expiration,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{User: user, Wallet: wallet, Token: token}, nil
}

// SwitchRoleResult contains the role switch outcome
type SwitchRoleResult struct {
	NewRole string
	Wallet  *ledger.Wallet
}

// SwitchRole changes the active role of the wallet's owner. Switching to
// producer requires the configured minimum balance; switching to buyer is
// unconditional. User role and wallet type always change together.
func (s *UserService) SwitchRole(walletAddress, newRole string) (*SwitchRoleResult, error) {
	if newRole != ledger.RoleProducer && newRole != ledger.RoleBuyer {
		return nil, fmt.Errorf("%w: role must be producer or buyer", ErrValidation)
	}

	user, err := s.store.GetUserByWalletAddress(walletAddress)
	if err != nil {
		return nil, mapStoreError(err)
	}

	var minBalance int64
	if newRole == ledger.RoleProducer {
		minBalance = s.cfg.Ledger.ProducerMinBalance
	}

	if err := s.store.SwitchRole(user.ID, walletAddress, newRole, minBalance); err != nil {
		if mapStoreError(err) == ErrInsufficientFunds {
			return nil, fmt.Errorf("%w: need at least %d GHC to become a producer", ErrPolicyViolation, minBalance)
		}
		return nil, mapStoreError(err)
	}

	wallet, err := s.store.GetWallet(walletAddress)
	if err != nil {
		return nil, mapStoreError(err)
	}

	return &SwitchRoleResult{NewRole: newRole, Wallet: wallet}, nil
}

// GetRoles returns the active role records for a wallet. The model is
// single-active-role; exactly one record is returned.
func (s *UserService) GetRoles(walletAddress string) ([]ledger.RoleRecord, error) {
	if _, err := s.store.GetWallet(walletAddress); err != nil {
		return nil, mapStoreError(err)
	}
	user, err := s.store.GetUserByWalletAddress(walletAddress)
	if err != nil {
		return nil, mapStoreError(err)
	}

	return []ledger.RoleRecord{
		{ID: "primary", Role: user.Role, IsActive: true},
	}, nil
}
