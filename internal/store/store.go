// Package store defines the Ledger Store contract: the persistence boundary
// the lifecycle engine is written against. Implementations must make every
// balance mutation atomic with respect to concurrent callers; the composite
// operations below exist so a conflicting concurrent update fails cleanly
// instead of silently overwriting.
package store

import (
	"errors"

	"github.com/Neelshah1810/GHXChange/internal/ledger"
)

var (
	// ErrNotFound is returned when a referenced user, wallet, transaction,
	// or certificate does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique constraint would be violated,
	// e.g. a duplicate username or tx hash.
	ErrConflict = errors.New("already exists")

	// ErrInsufficientFunds is returned by debiting operations when the
	// wallet balance is lower than the requested amount. The wallet is
	// left unchanged.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidState is returned when a certificate is not in the state a
	// conditional transition requires. No mutation is applied.
	ErrInvalidState = errors.New("invalid certificate state")
)

// Store is the durable ledger of users, wallets, transactions, and
// certificates.
//
// Balance discipline: wallet balances may only change through CreditWallet,
// TransferCredits, RetireCredits, and VerifyCertificate. Each of those is a
// single atomic unit; the net effect of N concurrent operations equals some
// serialization of them. There is no primitive that overwrites a balance
// with a caller-supplied snapshot.
type Store interface {
	// User operations.
	GetUser(id string) (*ledger.User, error)
	GetUserByUsername(username string) (*ledger.User, error)
	GetUserByWalletAddress(address string) (*ledger.User, error)

	// CreateUserWithWallet persists a user and its wallet as one unit.
	// Fails with ErrConflict if the username is taken.
	CreateUserWithWallet(user *ledger.User, wallet *ledger.Wallet) error

	// Wallet operations.
	GetWallet(address string) (*ledger.Wallet, error)
	GetAllWallets() ([]*ledger.Wallet, error)
	GetWalletsByType(walletType string) ([]*ledger.Wallet, error)

	// CreditWallet atomically increases a wallet balance. This is the mint
	// primitive; it is only ever driven by certificate verification.
	CreditWallet(address string, amount int64) error

	// SwitchRole updates the user's role and the wallet's type together.
	// If minBalance > 0 the switch only applies while the wallet balance
	// is at least minBalance, checked in the same atomic scope; otherwise
	// it fails with ErrInsufficientFunds.
	SwitchRole(userID, address, role string, minBalance int64) error

	// Transaction operations. Transactions are append-only.
	GetTransaction(txHash string) (*ledger.Transaction, error)
	GetTransactionsByAddress(address string) ([]*ledger.Transaction, error)
	GetAllTransactions() ([]*ledger.Transaction, error)
	CreateTransaction(tx *ledger.Transaction) error
	UpdateTransactionStatus(txHash, status string) error

	// TransferCredits atomically debits amount from the source wallet,
	// credits it to the destination wallet, and appends tx. Fails with
	// ErrInsufficientFunds if the source balance is too low; on any
	// failure no part of the transfer is applied.
	TransferCredits(fromAddress, toAddress string, amount int64, tx *ledger.Transaction) error

	// RetireCredits atomically debits amount from the wallet and appends
	// tx. The credits are removed from circulation, not moved.
	RetireCredits(address string, amount int64, tx *ledger.Transaction) error

	// Certificate operations.
	GetCertificate(certificateID string) (*ledger.Certificate, error)
	GetCertificatesByProducer(producerAddress string) ([]*ledger.Certificate, error)
	GetAllCertificates() ([]*ledger.Certificate, error)
	CreateCertificate(cert *ledger.Certificate) error

	// VerifyCertificate transitions a pending certificate to valid and
	// credits its hydrogenKg to the producer wallet in one atomic unit.
	// The amount minted is the certificate's recorded amount. Fails with
	// ErrInvalidState if the certificate is not pending; a concurrent
	// double-verify loses the state check and mints nothing.
	VerifyCertificate(certificateID string) (*ledger.Certificate, error)

	// FlagCertificate transitions a pending certificate to flagged. No
	// balance effect. Fails with ErrInvalidState if not pending.
	FlagCertificate(certificateID string) (*ledger.Certificate, error)

	// GetSystemStats scans transactions and wallets to derive system-wide
	// totals. Read-snapshot semantics are acceptable.
	GetSystemStats() (*ledger.SystemStats, error)
}
