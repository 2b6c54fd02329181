// Package service implements the credit lifecycle engine and the
// authentication/role gate on top of the ledger store. All validation
// happens before any mutation; multi-step mutations are delegated to the
// store's atomic operations.
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Neelshah1810/GHXChange/internal/config"
	"github.com/Neelshah1810/GHXChange/internal/keys"
	"github.com/Neelshah1810/GHXChange/internal/ledger"
	"github.com/Neelshah1810/GHXChange/internal/store"
)

// LedgerService drives the certificate state machine and the balance
// mutations tied to it.
type LedgerService struct {
	store store.Store
	cfg   *config.Config
}

// NewLedgerService creates a new ledger service
func NewLedgerService(st store.Store, cfg *config.Config) *LedgerService {
	return &LedgerService{
		store: st,
		cfg:   cfg,
	}
}

// IssueCreditsRequest represents a producer's production claim
type IssueCreditsRequest struct {
	ProducerAddress string
	HydrogenKg      int64
	EnergySource    string
	Location        string
}

// IssueCreditsResult contains the pending certificate and its companion
// issue transaction
type IssueCreditsResult struct {
	Transaction *ledger.Transaction
	Certificate *ledger.Certificate
}

// IssueCredits records a production claim as a pending certificate and a
// pending issue transaction. No balance changes until an auditor verifies
// the certificate.
func (s *LedgerService) IssueCredits(req *IssueCreditsRequest) (*IssueCreditsResult, error) {
	if req.ProducerAddress == "" {
		return nil, fmt.Errorf("%w: producer address is required", ErrValidation)
	}
	if req.HydrogenKg < 1 {
		return nil, fmt.Errorf("%w: hydrogen amount must be at least 1 kg", ErrValidation)
	}
	if strings.TrimSpace(req.EnergySource) == "" {
		return nil, fmt.Errorf("%w: energy source is required", ErrValidation)
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}

	if _, err := s.store.GetWallet(req.ProducerAddress); err != nil {
		return nil, mapStoreError(err)
	}

	certSignature, err := keys.NewSignature()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	cert := &ledger.Certificate{
		ID:              uuid.New().String(),
		CertificateID:   keys.NewCertificateID(),
		ProducerAddress: req.ProducerAddress,
		HydrogenKg:      req.HydrogenKg,
		EnergySource:    strings.TrimSpace(req.EnergySource),
		Location:        strings.TrimSpace(req.Location),
		ProductionDate:  now,
		IssueDate:       now,
		CertifierName:   s.cfg.Ledger.CertifierName,
		Signature:       certSignature,
		Status:          ledger.CertStatusPending,
	}
	if err := s.store.CreateCertificate(cert); err != nil {
		return nil, mapStoreError(err)
	}

	data, err := ledger.EncodePayload(ledger.IssueData{CertificateID: cert.CertificateID})
	if err != nil {
		return nil, err
	}
	tx, err := s.newTransaction(ledger.SystemAddress, req.ProducerAddress, req.HydrogenKg, ledger.TxTypeIssue, data)
	if err != nil {
		return nil, err
	}
	tx.Status = ledger.TxStatusPending
	if err := s.store.CreateTransaction(tx); err != nil {
		return nil, mapStoreError(err)
	}

	return &IssueCreditsResult{Transaction: tx, Certificate: cert}, nil
}

// VerifyCertificate transitions a pending certificate to valid and mints its
// recorded hydrogenKg to the producer. This is the only path that creates
// balance. The companion issue transaction is promoted to confirmed.
func (s *LedgerService) VerifyCertificate(certificateID string) (*ledger.Certificate, error) {
	cert, err := s.store.VerifyCertificate(certificateID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if err := s.confirmIssueTransaction(cert); err != nil {
		return nil, err
	}

	return cert, nil
}

// confirmIssueTransaction promotes the issue transaction recorded for cert
// from pending to confirmed. Certificates predating the transaction link
// are tolerated.
func (s *LedgerService) confirmIssueTransaction(cert *ledger.Certificate) error {
	txs, err := s.store.GetTransactionsByAddress(cert.ProducerAddress)
	if err != nil {
		return mapStoreError(err)
	}
	for _, tx := range txs {
		if tx.TxType != ledger.TxTypeIssue || len(tx.Data) == 0 {
			continue
		}
		data, err := ledger.DecodeIssueData(tx.Data)
		if err != nil || data.CertificateID != cert.CertificateID {
			continue
		}
		if tx.Status == ledger.TxStatusPending {
			if err := s.store.UpdateTransactionStatus(tx.TxHash, ledger.TxStatusConfirmed); err != nil {
				return mapStoreError(err)
			}
		}
		return nil
	}
	return nil
}

// FlagCertificate transitions a pending certificate to flagged. Terminal
// certificates cannot be flagged; in particular a valid certificate keeps
// its minted credits.
func (s *LedgerService) FlagCertificate(certificateID string) (*ledger.Certificate, error) {
	cert, err := s.store.FlagCertificate(certificateID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return cert, nil
}

// PurchaseCreditsRequest represents a buyer purchasing credits from a
// producer
type PurchaseCreditsRequest struct {
	ProducerAddress string
	BuyerAddress    string
	Amount          int64
}

// PurchaseCredits moves credits from producer to buyer and appends the
// transfer transaction, all as one atomic unit.
func (s *LedgerService) PurchaseCredits(req *PurchaseCreditsRequest) (*ledger.Transaction, error) {
	if req.ProducerAddress == "" {
		return nil, fmt.Errorf("%w: producer address is required", ErrValidation)
	}
	if req.BuyerAddress == "" {
		return nil, fmt.Errorf("%w: buyer address is required", ErrValidation)
	}
	if req.Amount < 1 {
		return nil, fmt.Errorf("%w: amount must be at least 1 GHC", ErrValidation)
	}

	// Price is a display annotation; balance arithmetic stays integer
	price := decimal.NewFromInt(req.Amount).Mul(decimal.NewFromInt(s.cfg.Ledger.PricePerCredit))
	data, err := ledger.EncodePayload(ledger.TransferData{Kind: "purchase", Price: price})
	if err != nil {
		return nil, err
	}
	tx, err := s.newTransaction(req.ProducerAddress, req.BuyerAddress, req.Amount, ledger.TxTypeTransfer, data)
	if err != nil {
		return nil, err
	}

	if err := s.store.TransferCredits(req.ProducerAddress, req.BuyerAddress, req.Amount, tx); err != nil {
		return nil, mapStoreError(err)
	}
	return tx, nil
}

// RetireCreditsRequest represents a retirement for compliance reporting
type RetireCreditsRequest struct {
	Address string
	Amount  int64
	Purpose string
}

// RetireCredits permanently removes credits from circulation by debiting the
// wallet and recording a retire transaction to the burn address.
func (s *LedgerService) RetireCredits(req *RetireCreditsRequest) (*ledger.Transaction, error) {
	if req.Address == "" {
		return nil, fmt.Errorf("%w: address is required", ErrValidation)
	}
	if req.Amount < 1 {
		return nil, fmt.Errorf("%w: amount must be at least 1 GHC", ErrValidation)
	}

	data, err := ledger.EncodePayload(ledger.RetireData{Purpose: req.Purpose})
	if err != nil {
		return nil, err
	}
	tx, err := s.newTransaction(req.Address, ledger.BurnAddress, req.Amount, ledger.TxTypeRetire, data)
	if err != nil {
		return nil, err
	}

	if err := s.store.RetireCredits(req.Address, req.Amount, tx); err != nil {
		return nil, mapStoreError(err)
	}
	return tx, nil
}

// GetBalance returns the current balance of a wallet.
func (s *LedgerService) GetBalance(address string) (int64, error) {
	wallet, err := s.store.GetWallet(address)
	if err != nil {
		return 0, mapStoreError(err)
	}
	return wallet.Balance, nil
}

// GetTransactions returns the transactions touching address, or all
// transactions when address is empty.
func (s *LedgerService) GetTransactions(address string) ([]*ledger.Transaction, error) {
	if address == "" {
		return s.store.GetAllTransactions()
	}
	return s.store.GetTransactionsByAddress(address)
}

// GetCertificates returns the certificates issued by address, or all
// certificates when address is empty.
func (s *LedgerService) GetCertificates(address string) ([]*ledger.Certificate, error) {
	if address == "" {
		return s.store.GetAllCertificates()
	}
	return s.store.GetCertificatesByProducer(address)
}

// GetStats derives system-wide totals from the transaction log.
func (s *LedgerService) GetStats() (*ledger.SystemStats, error) {
	return s.store.GetSystemStats()
}

// ProducerSummary is the directory entry buyers browse.
type ProducerSummary struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

// GetProducers lists producer wallets with their available credits.
func (s *LedgerService) GetProducers() ([]ProducerSummary, error) {
	wallets, err := s.store.GetWalletsByType(ledger.RoleProducer)
	if err != nil {
		return nil, err
	}
	producers := make([]ProducerSummary, 0, len(wallets))
	for _, w := range wallets {
		producers = append(producers, ProducerSummary{
			Address: w.Address,
			Name:    w.Name,
			Balance: w.Balance,
		})
	}
	return producers, nil
}

// newTransaction builds a transaction with fresh hash and signature.
func (s *LedgerService) newTransaction(from, to string, amount int64, txType string, data []byte) (*ledger.Transaction, error) {
	txHash, err := keys.NewTxHash()
	if err != nil {
		return nil, err
	}
	signature, err := keys.NewSignature()
	if err != nil {
		return nil, err
	}
	return &ledger.Transaction{
		ID:          uuid.New().String(),
		TxHash:      txHash,
		FromAddress: from,
		ToAddress:   to,
		Amount:      amount,
		TxType:      txType,
		Timestamp:   time.Now(),
		Signature:   signature,
		Data:        data,
		Status:      ledger.TxStatusConfirmed,
	}, nil
}
