package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neelshah1810/GHXChange/internal/config"
	"github.com/Neelshah1810/GHXChange/internal/ledger"
	"github.com/Neelshah1810/GHXChange/internal/store"
)

// setupTestDB creates a test database with migrations
func setupTestDB(t *testing.T) *Database {
	dbPath := t.TempDir() + "/test.db"

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: dbPath,
			},
		},
	}

	db, err := New(cfg)
	require.NoError(t, err, "Failed to create test database")

	err = db.Migrate()
	require.NoError(t, err, "Failed to run migrations")

	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *Database, username, role, address string, balance int64) *ledger.User {
	user := &ledger.User{
		ID:            uuid.New().String(),
		Username:      username,
		PasswordHash:  "hash123",
		Role:          role,
		Name:          "Test " + username,
		WalletAddress: address,
	}
	wallet := &ledger.Wallet{
		ID:         uuid.New().String(),
		Address:    address,
		PrivateKey: "0xkey",
		Name:       user.Name,
		Type:       role,
		Balance:    balance,
	}
	require.NoError(t, db.CreateUserWithWallet(user, wallet))
	return user
}

func seedTransaction(t *testing.T, db *Database, from, to string, amount int64, txType string) *ledger.Transaction {
	tx := &ledger.Transaction{
		ID:          uuid.New().String(),
		TxHash:      "0x" + uuid.New().String(),
		FromAddress: from,
		ToAddress:   to,
		Amount:      amount,
		TxType:      txType,
		Timestamp:   time.Now().UTC(),
		Signature:   "0xsig",
		Status:      ledger.TxStatusConfirmed,
	}
	require.NoError(t, db.CreateTransaction(tx))
	return tx
}

func seedCertificate(t *testing.T, db *Database, producer string, kg int64) *ledger.Certificate {
	now := time.Now().UTC()
	cert := &ledger.Certificate{
		ID:              uuid.New().String(),
		CertificateID:   "cert_" + uuid.New().String()[:8],
		ProducerAddress: producer,
		HydrogenKg:      kg,
		EnergySource:    "solar",
		Location:        "Gujarat",
		ProductionDate:  now,
		IssueDate:       now,
		CertifierName:   "Energy Regulatory Authority",
		Signature:       "0xsig",
		Status:          ledger.CertStatusPending,
	}
	require.NoError(t, db.CreateCertificate(cert))
	return cert
}

func TestNew(t *testing.T) {
	t.Run("Create SQLite database successfully", func(t *testing.T) {
		dbPath := t.TempDir() + "/test.db"
		cfg := &config.Config{
			Database: config.DatabaseConfig{
				Type: "sqlite",
				SQLite: config.SQLiteConfig{
					Path: dbPath,
				},
			},
		}

		db, err := New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, db)
		defer db.Close()
	})

	t.Run("Create with unsupported database type fails", func(t *testing.T) {
		cfg := &config.Config{
			Database: config.DatabaseConfig{
				Type: "unsupported",
			},
		}

		_, err := New(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database type")
	})
}

func TestMigrate(t *testing.T) {
	t.Run("Run migrations successfully", func(t *testing.T) {
		db := setupTestDB(t)

		// Verify tables were created
		var count int
		err := db.DB().QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&count)
		require.NoError(t, err)
		assert.Greater(t, count, 0)
	})

	t.Run("Run migrations multiple times (idempotent)", func(t *testing.T) {
		db := setupTestDB(t)

		// Run migrations again
		err := db.Migrate()
		assert.NoError(t, err)
	})
}

func TestCreateUserWithWallet(t *testing.T) {
	db := setupTestDB(t)

	t.Run("Create user with wallet successfully", func(t *testing.T) {
		user := seedUser(t, db, "alice", ledger.RoleProducer, "0xaaa", 0)

		retrieved, err := db.GetUser(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", retrieved.Username)
		assert.Equal(t, ledger.RoleProducer, retrieved.Role)
		assert.Equal(t, "0xaaa", retrieved.WalletAddress)

		wallet, err := db.GetWallet("0xaaa")
		require.NoError(t, err)
		assert.Equal(t, int64(0), wallet.Balance)
		assert.Equal(t, ledger.RoleProducer, wallet.Type)
	})

	t.Run("Duplicate username fails with conflict", func(t *testing.T) {
		user := &ledger.User{
			ID:            uuid.New().String(),
			Username:      "alice",
			PasswordHash:  "hash456",
			Role:          ledger.RoleBuyer,
			Name:          "Another Alice",
			WalletAddress: "0xother",
		}
		wallet := &ledger.Wallet{
			ID:      uuid.New().String(),
			Address: "0xother",
			Name:    "Another Alice",
			Type:    ledger.RoleBuyer,
		}

		err := db.CreateUserWithWallet(user, wallet)
		assert.ErrorIs(t, err, store.ErrConflict)

		// Wallet insert must have been rolled back
		_, err = db.GetWallet("0xother")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Get user by username", func(t *testing.T) {
		retrieved, err := db.GetUserByUsername("alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", retrieved.Username)
	})

	t.Run("Get user by wallet address", func(t *testing.T) {
		retrieved, err := db.GetUserByWalletAddress("0xaaa")
		require.NoError(t, err)
		assert.Equal(t, "alice", retrieved.Username)
	})

	t.Run("Get non-existent user fails", func(t *testing.T) {
		_, err := db.GetUserByUsername("nonexistent")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWalletOperations(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "p1", ledger.RoleProducer, "0xp1", 100)
	seedUser(t, db, "b1", ledger.RoleBuyer, "0xb1", 50)

	t.Run("Get all wallets", func(t *testing.T) {
		wallets, err := db.GetAllWallets()
		require.NoError(t, err)
		assert.Len(t, wallets, 2)
	})

	t.Run("Get wallets by type", func(t *testing.T) {
		producers, err := db.GetWalletsByType(ledger.RoleProducer)
		require.NoError(t, err)
		require.Len(t, producers, 1)
		assert.Equal(t, "0xp1", producers[0].Address)
	})

	t.Run("Credit wallet", func(t *testing.T) {
		err := db.CreditWallet("0xp1", 25)
		require.NoError(t, err)

		wallet, err := db.GetWallet("0xp1")
		require.NoError(t, err)
		assert.Equal(t, int64(125), wallet.Balance)
	})

	t.Run("Credit non-existent wallet fails", func(t *testing.T) {
		err := db.CreditWallet("0xmissing", 10)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSwitchRole(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "switcher", ledger.RoleBuyer, "0xsw", 999)

	t.Run("Switch below threshold fails", func(t *testing.T) {
		err := db.SwitchRole(user.ID, "0xsw", ledger.RoleProducer, 1000)
		assert.ErrorIs(t, err, store.ErrInsufficientFunds)

		retrieved, err := db.GetUser(user.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.RoleBuyer, retrieved.Role)
	})

	t.Run("Switch at exact threshold succeeds", func(t *testing.T) {
		require.NoError(t, db.CreditWallet("0xsw", 1))

		err := db.SwitchRole(user.ID, "0xsw", ledger.RoleProducer, 1000)
		require.NoError(t, err)

		retrieved, err := db.GetUser(user.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.RoleProducer, retrieved.Role)

		wallet, err := db.GetWallet("0xsw")
		require.NoError(t, err)
		assert.Equal(t, ledger.RoleProducer, wallet.Type)
	})

	t.Run("Switch to buyer without threshold", func(t *testing.T) {
		err := db.SwitchRole(user.ID, "0xsw", ledger.RoleBuyer, 0)
		require.NoError(t, err)

		wallet, err := db.GetWallet("0xsw")
		require.NoError(t, err)
		assert.Equal(t, ledger.RoleBuyer, wallet.Type)
	})

	t.Run("Switch for unknown user fails", func(t *testing.T) {
		err := db.SwitchRole("missing-id", "0xsw", ledger.RoleProducer, 0)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestTransactionOperations(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "p1", ledger.RoleProducer, "0xp1", 0)

	t.Run("Create and get transaction", func(t *testing.T) {
		tx := seedTransaction(t, db, ledger.SystemAddress, "0xp1", 100, ledger.TxTypeIssue)

		retrieved, err := db.GetTransaction(tx.TxHash)
		require.NoError(t, err)
		assert.Equal(t, tx.ID, retrieved.ID)
		assert.Equal(t, int64(100), retrieved.Amount)
		assert.Equal(t, ledger.TxTypeIssue, retrieved.TxType)
		assert.Equal(t, ledger.TxStatusConfirmed, retrieved.Status)
	})

	t.Run("Duplicate tx hash fails", func(t *testing.T) {
		tx := seedTransaction(t, db, ledger.SystemAddress, "0xp1", 10, ledger.TxTypeIssue)
		err := db.CreateTransaction(tx)
		assert.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("Transaction payload survives storage", func(t *testing.T) {
		data, err := ledger.EncodePayload(ledger.IssueData{CertificateID: "cert_12345678"})
		require.NoError(t, err)

		tx := &ledger.Transaction{
			ID:          uuid.New().String(),
			TxHash:      "0x" + uuid.New().String(),
			FromAddress: ledger.SystemAddress,
			ToAddress:   "0xp1",
			Amount:      50,
			TxType:      ledger.TxTypeIssue,
			Timestamp:   time.Now().UTC(),
			Signature:   "0xsig",
			Data:        data,
			Status:      ledger.TxStatusPending,
		}
		require.NoError(t, db.CreateTransaction(tx))

		retrieved, err := db.GetTransaction(tx.TxHash)
		require.NoError(t, err)

		decoded, err := ledger.DecodeIssueData(retrieved.Data)
		require.NoError(t, err)
		assert.Equal(t, "cert_12345678", decoded.CertificateID)
	})

	t.Run("Get transactions by address includes both directions", func(t *testing.T) {
		db := setupTestDB(t)
		seedUser(t, db, "a", ledger.RoleProducer, "0xa", 0)
		seedTransaction(t, db, "0xa", "0xb", 5, ledger.TxTypeTransfer)
		seedTransaction(t, db, "0xb", "0xa", 7, ledger.TxTypeTransfer)
		seedTransaction(t, db, "0xc", "0xd", 9, ledger.TxTypeTransfer)

		txs, err := db.GetTransactionsByAddress("0xa")
		require.NoError(t, err)
		assert.Len(t, txs, 2)

		all, err := db.GetAllTransactions()
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("Update transaction status", func(t *testing.T) {
		tx := seedTransaction(t, db, ledger.SystemAddress, "0xp1", 20, ledger.TxTypeIssue)

		require.NoError(t, db.UpdateTransactionStatus(tx.TxHash, ledger.TxStatusPending))

		retrieved, err := db.GetTransaction(tx.TxHash)
		require.NoError(t, err)
		assert.Equal(t, ledger.TxStatusPending, retrieved.Status)
	})

	t.Run("Update status of unknown transaction fails", func(t *testing.T) {
		err := db.UpdateTransactionStatus("0xmissing", ledger.TxStatusConfirmed)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestTransferCredits(t *testing.T) {
	setup := func(t *testing.T) *Database {
		db := setupTestDB(t)
		seedUser(t, db, "seller", ledger.RoleProducer, "0xs", 100)
		seedUser(t, db, "payer", ledger.RoleBuyer, "0xb", 0)
		return db
	}

	newTx := func(from, to string, amount int64) *ledger.Transaction {
		return &ledger.Transaction{
			ID:          uuid.New().String(),
			TxHash:      "0x" + uuid.New().String(),
			FromAddress: from,
			ToAddress:   to,
			Amount:      amount,
			TxType:      ledger.TxTypeTransfer,
			Timestamp:   time.Now().UTC(),
			Signature:   "0xsig",
			Status:      ledger.TxStatusConfirmed,
		}
	}

	t.Run("Transfer moves balance and records transaction", func(t *testing.T) {
		db := setup(t)
		tx := newTx("0xs", "0xb", 40)

		require.NoError(t, db.TransferCredits("0xs", "0xb", 40, tx))

		from, err := db.GetWallet("0xs")
		require.NoError(t, err)
		to, err := db.GetWallet("0xb")
		require.NoError(t, err)
		assert.Equal(t, int64(60), from.Balance)
		assert.Equal(t, int64(40), to.Balance)

		retrieved, err := db.GetTransaction(tx.TxHash)
		require.NoError(t, err)
		assert.Equal(t, int64(40), retrieved.Amount)
	})

	t.Run("Transfer exceeding balance fails atomically", func(t *testing.T) {
		db := setup(t)
		tx := newTx("0xs", "0xb", 101)

		err := db.TransferCredits("0xs", "0xb", 101, tx)
		assert.ErrorIs(t, err, store.ErrInsufficientFunds)

		from, _ := db.GetWallet("0xs")
		to, _ := db.GetWallet("0xb")
		assert.Equal(t, int64(100), from.Balance)
		assert.Equal(t, int64(0), to.Balance)

		_, err = db.GetTransaction(tx.TxHash)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Transfer of full balance succeeds", func(t *testing.T) {
		db := setup(t)
		tx := newTx("0xs", "0xb", 100)

		require.NoError(t, db.TransferCredits("0xs", "0xb", 100, tx))

		from, _ := db.GetWallet("0xs")
		assert.Equal(t, int64(0), from.Balance)
	})

	t.Run("Transfer from unknown wallet fails", func(t *testing.T) {
		db := setup(t)
		tx := newTx("0xmissing", "0xb", 10)

		err := db.TransferCredits("0xmissing", "0xb", 10, tx)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Transfer to unknown wallet fails atomically", func(t *testing.T) {
		db := setup(t)
		tx := newTx("0xs", "0xmissing", 10)

		err := db.TransferCredits("0xs", "0xmissing", 10, tx)
		assert.ErrorIs(t, err, store.ErrNotFound)

		from, _ := db.GetWallet("0xs")
		assert.Equal(t, int64(100), from.Balance)
	})
}

func TestRetireCredits(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "holder", ledger.RoleBuyer, "0xh", 50)

	newTx := func(amount int64) *ledger.Transaction {
		return &ledger.Transaction{
			ID:          uuid.New().String(),
			TxHash:      "0x" + uuid.New().String(),
			FromAddress: "0xh",
			ToAddress:   ledger.BurnAddress,
			Amount:      amount,
			TxType:      ledger.TxTypeRetire,
			Timestamp:   time.Now().UTC(),
			Signature:   "0xsig",
			Status:      ledger.TxStatusConfirmed,
		}
	}

	t.Run("Retire debits the wallet", func(t *testing.T) {
		require.NoError(t, db.RetireCredits("0xh", 20, newTx(20)))

		wallet, err := db.GetWallet("0xh")
		require.NoError(t, err)
		assert.Equal(t, int64(30), wallet.Balance)
	})

	t.Run("Retire exceeding balance fails", func(t *testing.T) {
		err := db.RetireCredits("0xh", 31, newTx(31))
		assert.ErrorIs(t, err, store.ErrInsufficientFunds)

		wallet, _ := db.GetWallet("0xh")
		assert.Equal(t, int64(30), wallet.Balance)
	})
}

func TestCertificateOperations(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "prod", ledger.RoleProducer, "0xp", 0)

	t.Run("Create and get certificate", func(t *testing.T) {
		cert := seedCertificate(t, db, "0xp", 100)

		retrieved, err := db.GetCertificate(cert.CertificateID)
		require.NoError(t, err)
		assert.Equal(t, cert.ID, retrieved.ID)
		assert.Equal(t, int64(100), retrieved.HydrogenKg)
		assert.Equal(t, "solar", retrieved.EnergySource)
		assert.Equal(t, ledger.CertStatusPending, retrieved.Status)
	})

	t.Run("Duplicate certificate id fails", func(t *testing.T) {
		cert := seedCertificate(t, db, "0xp", 10)
		err := db.CreateCertificate(cert)
		assert.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("Get certificates by producer", func(t *testing.T) {
		certs, err := db.GetCertificatesByProducer("0xp")
		require.NoError(t, err)
		assert.Len(t, certs, 2)

		none, err := db.GetCertificatesByProducer("0xnobody")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Get all certificates", func(t *testing.T) {
		certs, err := db.GetAllCertificates()
		require.NoError(t, err)
		assert.Len(t, certs, 2)
	})

	t.Run("Get non-existent certificate fails", func(t *testing.T) {
		_, err := db.GetCertificate("cert_missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestVerifyCertificate(t *testing.T) {
	t.Run("Verify mints the certificate amount", func(t *testing.T) {
		db := setupTestDB(t)
		seedUser(t, db, "prod", ledger.RoleProducer, "0xp", 0)
		cert := seedCertificate(t, db, "0xp", 100)

		verified, err := db.VerifyCertificate(cert.CertificateID)
		require.NoError(t, err)
		assert.Equal(t, ledger.CertStatusValid, verified.Status)

		wallet, err := db.GetWallet("0xp")
		require.NoError(t, err)
		assert.Equal(t, int64(100), wallet.Balance)
	})

	t.Run("Double verify fails and mints nothing more", func(t *testing.T) {
		db := setupTestDB(t)
		seedUser(t, db, "prod", ledger.RoleProducer, "0xp", 0)
		cert := seedCertificate(t, db, "0xp", 100)

		_, err := db.VerifyCertificate(cert.CertificateID)
		require.NoError(t, err)

		_, err = db.VerifyCertificate(cert.CertificateID)
		assert.ErrorIs(t, err, store.ErrInvalidState)

		wallet, _ := db.GetWallet("0xp")
		assert.Equal(t, int64(100), wallet.Balance)
	})

	t.Run("Verify flagged certificate fails", func(t *testing.T) {
		db := setupTestDB(t)
		seedUser(t, db, "prod", ledger.RoleProducer, "0xp", 0)
		cert := seedCertificate(t, db, "0xp", 100)

		_, err := db.FlagCertificate(cert.CertificateID)
		require.NoError(t, err)

		_, err = db.VerifyCertificate(cert.CertificateID)
		assert.ErrorIs(t, err, store.ErrInvalidState)

		wallet, _ := db.GetWallet("0xp")
		assert.Equal(t, int64(0), wallet.Balance)
	})

	t.Run("Verify unknown certificate fails", func(t *testing.T) {
		db := setupTestDB(t)
		_, err := db.VerifyCertificate("cert_missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestFlagCertificate(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "prod", ledger.RoleProducer, "0xp", 0)
	cert := seedCertificate(t, db, "0xp", 100)

	t.Run("Flag pending certificate", func(t *testing.T) {
		flagged, err := db.FlagCertificate(cert.CertificateID)
		require.NoError(t, err)
		assert.Equal(t, ledger.CertStatusFlagged, flagged.Status)
	})

	t.Run("Flag is terminal", func(t *testing.T) {
		_, err := db.FlagCertificate(cert.CertificateID)
		assert.ErrorIs(t, err, store.ErrInvalidState)
	})
}

func TestGetSystemStats(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "p1", ledger.RoleProducer, "0xp1", 0)
	seedUser(t, db, "b1", ledger.RoleBuyer, "0xb1", 0)
	seedUser(t, db, "a1", ledger.RoleAuditor, "0xa1", 0)

	seedTransaction(t, db, ledger.SystemAddress, "0xp1", 100, ledger.TxTypeIssue)
	seedTransaction(t, db, "0xp1", "0xb1", 40, ledger.TxTypeTransfer)
	seedTransaction(t, db, "0xb1", ledger.BurnAddress, 15, ledger.TxTypeRetire)

	stats, err := db.GetSystemStats()
	require.NoError(t, err)
	assert.Equal(t, int64(100), stats.TotalIssued)
	assert.Equal(t, int64(15), stats.TotalRetired)
	assert.Equal(t, int64(85), stats.ActiveCredits)
	assert.Equal(t, 1, stats.TotalProducers)
	assert.Equal(t, 1, stats.TotalBuyers)
}
