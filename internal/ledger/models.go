// Package ledger defines the data model for the GHXChange credit ledger:
// users, wallets, transactions, and production certificates, along with the
// role, status, and transaction-type vocabularies shared by every layer.
package ledger

import (
	"encoding/json"
	"time"
)

// Roles a user (and its wallet) can hold. Exactly one role is active at a time.
const (
	RoleProducer = "producer"
	RoleBuyer    = "buyer"
	RoleAuditor  = "auditor"
)

// Certificate lifecycle states. Pending certificates await an auditor action;
// valid and flagged are terminal.
const (
	CertStatusPending = "pending"
	CertStatusValid   = "valid"
	CertStatusFlagged = "flagged"
)

// Transaction types.
const (
	TxTypeIssue    = "issue"
	TxTypeTransfer = "transfer"
	TxTypeRetire   = "retire"
)

// Transaction statuses. Pending is only meaningful for issue transactions
// awaiting certificate verification.
const (
	TxStatusConfirmed = "confirmed"
	TxStatusPending   = "pending"
)

// SystemAddress is the from-address of issue transactions.
const SystemAddress = "SYSTEM"

// BurnAddress is the sink retired credits are sent to. Credits sent here are
// permanently removed from circulation.
const BurnAddress = "0x000000000000000000000000000000000000dEaD"

// ValidRole reports whether s is a recognized role.
func ValidRole(s string) bool {
	return s == RoleProducer || s == RoleBuyer || s == RoleAuditor
}

// User represents a registered identity.
type User struct {
	ID            string `db:"id" json:"id"`
	Username      string `db:"username" json:"username"`
	PasswordHash  string `db:"password_hash" json:"-"`
	Role          string `db:"role" json:"role"`
	Name          string `db:"name" json:"name"`
	WalletAddress string `db:"wallet_address" json:"walletAddress"`
}

// Wallet holds a spendable credit balance, keyed by address. One unit equals
// one kilogram of certified green hydrogen. Balance is never negative.
type Wallet struct {
	ID         string `db:"id" json:"id"`
	Address    string `db:"address" json:"address"`
	PrivateKey string `db:"private_key" json:"-"`
	Name       string `db:"name" json:"name"`
	Type       string `db:"type" json:"type"`
	Balance    int64  `db:"balance" json:"balance"`
}

// Transaction is an immutable audit log entry. Every balance-affecting
// operation appends exactly one.
type Transaction struct {
	ID          string          `db:"id" json:"id"`
	TxHash      string          `db:"tx_hash" json:"txHash"`
	FromAddress string          `db:"from_address" json:"fromAddress"`
	ToAddress   string          `db:"to_address" json:"toAddress"`
	Amount      int64           `db:"amount" json:"amount"`
	TxType      string          `db:"tx_type" json:"txType"`
	Timestamp   time.Time       `db:"timestamp" json:"timestamp"`
	Signature   string          `db:"signature" json:"signature"`
	Data        json.RawMessage `db:"data" json:"data,omitempty"`
	Status      string          `db:"status" json:"status"`
}

// Certificate is a claimed production event pending (or having completed)
// audit. Its hydrogenKg is the credit amount minted on verification.
type Certificate struct {
	ID              string    `db:"id" json:"id"`
	CertificateID   string    `db:"certificate_id" json:"certificateId"`
	ProducerAddress string    `db:"producer_address" json:"producerAddress"`
	HydrogenKg      int64     `db:"hydrogen_kg" json:"hydrogenKg"`
	EnergySource    string    `db:"energy_source" json:"energySource"`
	Location        string    `db:"location" json:"location"`
	ProductionDate  time.Time `db:"production_date" json:"productionDate"`
	IssueDate       time.Time `db:"issue_date" json:"issueDate"`
	CertifierName   string    `db:"certifier_name" json:"certifierName"`
	Signature       string    `db:"signature" json:"signature"`
	Status          string    `db:"status" json:"status"`
}

// SystemStats is a read-only projection over the transaction and wallet
// collections.
type SystemStats struct {
	TotalIssued    int64 `json:"totalIssued"`
	TotalRetired   int64 `json:"totalRetired"`
	ActiveCredits  int64 `json:"activeCredits"`
	TotalProducers int   `json:"totalProducers"`
	TotalBuyers    int   `json:"totalBuyers"`
}

// RoleRecord is the shape returned by the roles endpoint. Kept list-valued
// for a future multi-role model; today exactly one record is active.
type RoleRecord struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}
