// Package database provides the relational implementation of the ledger
// store, with connection management and embedded schema migrations. It
// supports SQLite and PostgreSQL through database/sql.
//
// Balance mutations are expressed as conditional UPDATEs (debits guard
// balance >= amount in the statement itself) and multi-step operations run
// inside a single transaction, so concurrent lifecycle operations serialize
// instead of overwriting each other.
package database

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Neelshah1810/GHXChange/internal/config"
	"github.com/Neelshah1810/GHXChange/internal/ledger"
	"github.com/Neelshah1810/GHXChange/internal/store"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Database implements store.Store over SQLite or PostgreSQL.
type Database struct {
	db     *sql.DB
	dbType string
}

// Compile-time check: *Database must satisfy store.Store.
var _ store.Store = (*Database)(nil)

// New creates a new database connection
func New(cfg *config.Config) (*Database, error) {
	var db *sql.DB
	var err error

	switch cfg.Database.Type {
	case "sqlite":
		db, err = sql.Open("sqlite3", cfg.Database.SQLite.Path+"?_foreign_keys=on&_journal_mode=WAL")
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		// SQLite only allows one writer at a time
		db.SetMaxOpenConns(1)
	case "postgres":
		db, err = sql.Open("postgres", cfg.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w", err)
		}
		db.SetMaxOpenConns(cfg.Database.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.Postgres.MaxIdleConns)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		db:     db,
		dbType: cfg.Database.Type,
	}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// DB returns the underlying database connection for direct queries
func (d *Database) DB() *sql.DB {
	return d.db
}

// Migrate runs database migrations
func (d *Database) Migrate() error {
	var migrationFiles []string
	if d.dbType == "postgres" {
		migrationFiles = []string{
			"migrations/000001_init_schema.postgres.up.sql",
		}
	} else {
		migrationFiles = []string{
			"migrations/000001_init_schema.up.sql",
		}
	}

	for _, migrationFile := range migrationFiles {
		content, err := migrationsFS.ReadFile(migrationFile)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", migrationFile, err)
		}

		// Remove comments and split into statements
		var statements []string
		var currentStmt strings.Builder

		for _, line := range strings.Split(string(content), "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "--") || line == "" {
				continue
			}

			currentStmt.WriteString(line)
			currentStmt.WriteString("\n")

			if strings.HasSuffix(line, ";") {
				stmt := strings.TrimSpace(currentStmt.String())
				if stmt != "" {
					statements = append(statements, stmt)
				}
				currentStmt.Reset()
			}
		}

		for _, stmt := range statements {
			if _, err := d.db.Exec(stmt); err != nil {
				// Idempotent migrations: re-creating existing objects is fine
				if !strings.Contains(err.Error(), "already exists") {
					return fmt.Errorf("migration %s failed: %w\nStatement: %s", migrationFile, err, stmt)
				}
			}
		}
	}

	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (d *Database) rebind(query string) string {
	if d.dbType != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isUniqueViolation reports whether err is a unique-constraint violation
// from either driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// User operations

func (d *Database) GetUser(id string) (*ledger.User, error) {
	query := d.rebind(`SELECT id, username, password_hash, role, name, wallet_address
	                   FROM users WHERE id = ?`)
	return d.scanUser(d.db.QueryRow(query, id))
}

func (d *Database) GetUserByUsername(username string) (*ledger.User, error) {
	query := d.rebind(`SELECT id, username, password_hash, role, name, wallet_address
	                   FROM users WHERE username = ?`)
	return d.scanUser(d.db.QueryRow(query, username))
}

func (d *Database) GetUserByWalletAddress(address string) (*ledger.User, error) {
	query := d.rebind(`SELECT id, username, password_hash, role, name, wallet_address
	                   FROM users WHERE wallet_address = ?`)
	return d.scanUser(d.db.QueryRow(query, address))
}

func (d *Database) scanUser(row *sql.Row) (*ledger.User, error) {
	var user ledger.User
	var walletAddress sql.NullString
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.Name, &walletAddress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	user.WalletAddress = walletAddress.String
	return &user, nil
}

func (d *Database) CreateUserWithWallet(user *ledger.User, wallet *ledger.Wallet) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	userQuery := d.rebind(`INSERT INTO users (id, username, password_hash, role, name, wallet_address)
	                       VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := tx.Exec(userQuery, user.ID, user.Username, user.PasswordHash, user.Role, user.Name, user.WalletAddress); err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	walletQuery := d.rebind(`INSERT INTO wallets (id, address, private_key, name, type, balance)
	                         VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := tx.Exec(walletQuery, wallet.ID, wallet.Address, wallet.PrivateKey, wallet.Name, wallet.Type, wallet.Balance); err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	return tx.Commit()
}

// Wallet operations

const walletColumns = `id, address, private_key, name, type, balance`

func (d *Database) GetWallet(address string) (*ledger.Wallet, error) {
	query := d.rebind(`SELECT ` + walletColumns + ` FROM wallets WHERE address = ?`)

	var wallet ledger.Wallet
	err := d.db.QueryRow(query, address).Scan(
		&wallet.ID, &wallet.Address, &wallet.PrivateKey, &wallet.Name, &wallet.Type, &wallet.Balance,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (d *Database) GetAllWallets() ([]*ledger.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets ORDER BY address`
	return d.queryWallets(query)
}

func (d *Database) GetWalletsByType(walletType string) ([]*ledger.Wallet, error) {
	query := d.rebind(`SELECT ` + walletColumns + ` FROM wallets WHERE type = ? ORDER BY address`)
	return d.queryWallets(query, walletType)
}

func (d *Database) queryWallets(query string, args ...any) ([]*ledger.Wallet, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []*ledger.Wallet
	for rows.Next() {
		var wallet ledger.Wallet
		err := rows.Scan(&wallet.ID, &wallet.Address, &wallet.PrivateKey, &wallet.Name, &wallet.Type, &wallet.Balance)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, &wallet)
	}
	return wallets, rows.Err()
}

func (d *Database) CreditWallet(address string, amount int64) error {
	query := d.rebind(`UPDATE wallets SET balance = balance + ? WHERE address = ?`)
	result, err := d.db.Exec(query, amount, address)
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// debitWallet decreases a wallet balance inside tx. The balance guard is part
// of the UPDATE, so a concurrent debit cannot drive the balance negative.
func (d *Database) debitWallet(tx *sql.Tx, address string, amount int64) error {
	query := d.rebind(`UPDATE wallets SET balance = balance - ? WHERE address = ? AND balance >= ?`)
	result, err := tx.Exec(query, amount, address, amount)
	if err != nil {
		return fmt.Errorf("failed to debit wallet: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		// Distinguish a missing wallet from a short balance
		var balance int64
		err := tx.QueryRow(d.rebind(`SELECT balance FROM wallets WHERE address = ?`), address).Scan(&balance)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}
		return store.ErrInsufficientFunds
	}
	return nil
}

// creditWalletTx increases a wallet balance inside tx.
func (d *Database) creditWalletTx(tx *sql.Tx, address string, amount int64) error {
	query := d.rebind(`UPDATE wallets SET balance = balance + ? WHERE address = ?`)
	result, err := tx.Exec(query, amount, address)
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (d *Database) SwitchRole(userID, address, role string, minBalance int64) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The balance threshold is checked in the same UPDATE that applies the
	// switch, so a concurrent debit cannot slip a wallet under the bar
	// between check and switch.
	walletQuery := d.rebind(`UPDATE wallets SET type = ? WHERE address = ? AND balance >= ?`)
	result, err := tx.Exec(walletQuery, role, address, minBalance)
	if err != nil {
		return fmt.Errorf("failed to update wallet type: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		var balance int64
		err := tx.QueryRow(d.rebind(`SELECT balance FROM wallets WHERE address = ?`), address).Scan(&balance)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}
		return store.ErrInsufficientFunds
	}

	userQuery := d.rebind(`UPDATE users SET role = ? WHERE id = ?`)
	result, err = tx.Exec(userQuery, role, userID)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	rowsAffected, err = result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}

// Transaction operations

const transactionColumns = `id, tx_hash, from_address, to_address, amount, tx_type, timestamp, signature, data, status`

func (d *Database) GetTransaction(txHash string) (*ledger.Transaction, error) {
	query := d.rebind(`SELECT ` + transactionColumns + ` FROM transactions WHERE tx_hash = ?`)

	row := d.db.QueryRow(query, txHash)
	transaction, err := scanTransaction(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return transaction, nil
}

func (d *Database) GetTransactionsByAddress(address string) ([]*ledger.Transaction, error) {
	query := d.rebind(`SELECT ` + transactionColumns + `
	                   FROM transactions WHERE from_address = ? OR to_address = ?
	                   ORDER BY timestamp DESC, tx_hash`)
	return d.queryTransactions(query, address, address)
}

func (d *Database) GetAllTransactions() ([]*ledger.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY timestamp DESC, tx_hash`
	return d.queryTransactions(query)
}

func (d *Database) queryTransactions(query string, args ...any) ([]*ledger.Transaction, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*ledger.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func scanTransaction(scan func(...any) error) (*ledger.Transaction, error) {
	var transaction ledger.Transaction
	var data []byte
	err := scan(
		&transaction.ID, &transaction.TxHash, &transaction.FromAddress, &transaction.ToAddress,
		&transaction.Amount, &transaction.TxType, &transaction.Timestamp,
		&transaction.Signature, &data, &transaction.Status,
	)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		transaction.Data = json.RawMessage(data)
	}
	return &transaction, nil
}

func (d *Database) CreateTransaction(transaction *ledger.Transaction) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := d.insertTransaction(tx, transaction); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *Database) insertTransaction(tx *sql.Tx, transaction *ledger.Transaction) error {
	query := d.rebind(`INSERT INTO transactions
	                   (id, tx_hash, from_address, to_address, amount, tx_type, timestamp, signature, data, status)
	                   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	var data any
	if len(transaction.Data) > 0 {
		data = string(transaction.Data)
	}

	_, err := tx.Exec(query,
		transaction.ID, transaction.TxHash, transaction.FromAddress, transaction.ToAddress,
		transaction.Amount, transaction.TxType, transaction.Timestamp,
		transaction.Signature, data, transaction.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (d *Database) UpdateTransactionStatus(txHash, status string) error {
	query := d.rebind(`UPDATE transactions SET status = ? WHERE tx_hash = ?`)
	result, err := d.db.Exec(query, status, txHash)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (d *Database) TransferCredits(fromAddress, toAddress string, amount int64, transaction *ledger.Transaction) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := d.debitWallet(tx, fromAddress, amount); err != nil {
		return err
	}
	if err := d.creditWalletTx(tx, toAddress, amount); err != nil {
		return err
	}
	if err := d.insertTransaction(tx, transaction); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *Database) RetireCredits(address string, amount int64, transaction *ledger.Transaction) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := d.debitWallet(tx, address, amount); err != nil {
		return err
	}
	if err := d.insertTransaction(tx, transaction); err != nil {
		return err
	}

	return tx.Commit()
}

// Certificate operations

const certificateColumns = `id, certificate_id, producer_address, hydrogen_kg, energy_source, location,
	production_date, issue_date, certifier_name, signature, status`

func (d *Database) GetCertificate(certificateID string) (*ledger.Certificate, error) {
	query := d.rebind(`SELECT ` + certificateColumns + ` FROM certificates WHERE certificate_id = ?`)

	var cert ledger.Certificate
	err := d.db.QueryRow(query, certificateID).Scan(
		&cert.ID, &cert.CertificateID, &cert.ProducerAddress, &cert.HydrogenKg,
		&cert.EnergySource, &cert.Location, &cert.ProductionDate, &cert.IssueDate,
		&cert.CertifierName, &cert.Signature, &cert.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &cert, nil
}

func (d *Database) GetCertificatesByProducer(producerAddress string) ([]*ledger.Certificate, error) {
	query := d.rebind(`SELECT ` + certificateColumns + `
	                   FROM certificates WHERE producer_address = ?
	                   ORDER BY issue_date DESC, certificate_id`)
	return d.queryCertificates(query, producerAddress)
}

func (d *Database) GetAllCertificates() ([]*ledger.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates ORDER BY issue_date DESC, certificate_id`
	return d.queryCertificates(query)
}

func (d *Database) queryCertificates(query string, args ...any) ([]*ledger.Certificate, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certs []*ledger.Certificate
	for rows.Next() {
		var cert ledger.Certificate
		err := rows.Scan(
			&cert.ID, &cert.CertificateID, &cert.ProducerAddress, &cert.HydrogenKg,
			&cert.EnergySource, &cert.Location, &cert.ProductionDate, &cert.IssueDate,
			&cert.CertifierName, &cert.Signature, &cert.Status,
		)
		if err != nil {
			return nil, err
		}
		certs = append(certs, &cert)
	}
	return certs, rows.Err()
}

func (d *Database) CreateCertificate(cert *ledger.Certificate) error {
	query := d.rebind(`INSERT INTO certificates
	                   (id, certificate_id, producer_address, hydrogen_kg, energy_source, location,
	                    production_date, issue_date, certifier_name, signature, status)
	                   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := d.db.Exec(query,
		cert.ID, cert.CertificateID, cert.ProducerAddress, cert.HydrogenKg,
		cert.EnergySource, cert.Location, cert.ProductionDate, cert.IssueDate,
		cert.CertifierName, cert.Signature, cert.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to create certificate: %w", err)
	}
	return nil
}

func (d *Database) VerifyCertificate(certificateID string) (*ledger.Certificate, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Conditional transition: only a pending certificate can be verified.
	// A concurrent verify loses this UPDATE and mints nothing.
	updateQuery := d.rebind(`UPDATE certificates SET status = ? WHERE certificate_id = ? AND status = ?`)
	result, err := tx.Exec(updateQuery, ledger.CertStatusValid, certificateID, ledger.CertStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to update certificate status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	selectQuery := d.rebind(`SELECT ` + certificateColumns + ` FROM certificates WHERE certificate_id = ?`)
	var cert ledger.Certificate
	err = tx.QueryRow(selectQuery, certificateID).Scan(
		&cert.ID, &cert.CertificateID, &cert.ProducerAddress, &cert.HydrogenKg,
		&cert.EnergySource, &cert.Location, &cert.ProductionDate, &cert.IssueDate,
		&cert.CertifierName, &cert.Signature, &cert.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, store.ErrInvalidState
	}

	// Mint the certificate's recorded amount to the producer
	if err := d.creditWalletTx(tx, cert.ProducerAddress, cert.HydrogenKg); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &cert, nil
}

func (d *Database) FlagCertificate(certificateID string) (*ledger.Certificate, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateQuery := d.rebind(`UPDATE certificates SET status = ? WHERE certificate_id = ? AND status = ?`)
	result, err := tx.Exec(updateQuery, ledger.CertStatusFlagged, certificateID, ledger.CertStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to update certificate status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	selectQuery := d.rebind(`SELECT ` + certificateColumns + ` FROM certificates WHERE certificate_id = ?`)
	var cert ledger.Certificate
	err = tx.QueryRow(selectQuery, certificateID).Scan(
		&cert.ID, &cert.CertificateID, &cert.ProducerAddress, &cert.HydrogenKg,
		&cert.EnergySource, &cert.Location, &cert.ProductionDate, &cert.IssueDate,
		&cert.CertifierName, &cert.Signature, &cert.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, store.ErrInvalidState
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &cert, nil
}

// System stats

func (d *Database) GetSystemStats() (*ledger.SystemStats, error) {
	stats := &ledger.SystemStats{}

	sumQuery := d.rebind(`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE tx_type = ?`)
	if err := d.db.QueryRow(sumQuery, ledger.TxTypeIssue).Scan(&stats.TotalIssued); err != nil {
		return nil, fmt.Errorf("failed to sum issued credits: %w", err)
	}
	if err := d.db.QueryRow(sumQuery, ledger.TxTypeRetire).Scan(&stats.TotalRetired); err != nil {
		return nil, fmt.Errorf("failed to sum retired credits: %w", err)
	}
	stats.ActiveCredits = stats.TotalIssued - stats.TotalRetired

	countQuery := d.rebind(`SELECT COUNT(*) FROM wallets WHERE type = ?`)
	if err := d.db.QueryRow(countQuery, ledger.RoleProducer).Scan(&stats.TotalProducers); err != nil {
		return nil, fmt.Errorf("failed to count producers: %w", err)
	}
	if err := d.db.QueryRow(countQuery, ledger.RoleBuyer).Scan(&stats.TotalBuyers); err != nil {
		return nil, fmt.Errorf("failed to count buyers: %w", err)
	}

	return stats, nil
}
