package store

import (
	"sort"
	"sync"

	"github.com/Neelshah1810/GHXChange/internal/ledger"
)

// MemStore is an in-memory Store backed by maps. A single mutex serializes
// all access, so every composite operation is trivially atomic. It is the
// backing used by tests and by deployments that do not configure a database.
type MemStore struct {
	mu           sync.Mutex
	users        map[string]*ledger.User        // by id
	wallets      map[string]*ledger.Wallet      // by address
	transactions map[string]*ledger.Transaction // by tx hash
	certificates map[string]*ledger.Certificate // by certificate id
}

// Compile-time check: *MemStore must satisfy Store.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		users:        make(map[string]*ledger.User),
		wallets:      make(map[string]*ledger.Wallet),
		transactions: make(map[string]*ledger.Transaction),
		certificates: make(map[string]*ledger.Certificate),
	}
}

func (s *MemStore) GetUser(id string) (*ledger.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := *user
	return &u, nil
}

func (s *MemStore) GetUserByUsername(username string) (*ledger.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			u := *user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) GetUserByWalletAddress(address string) (*ledger.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.WalletAddress == address {
			u := *user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateUserWithWallet(user *ledger.User, wallet *ledger.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return ErrConflict
		}
	}
	if _, ok := s.wallets[wallet.Address]; ok {
		return ErrConflict
	}

	u := *user
	w := *wallet
	s.users[u.ID] = &u
	s.wallets[w.Address] = &w
	return nil
}

func (s *MemStore) GetWallet(address string) (*ledger.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, ok := s.wallets[address]
	if !ok {
		return nil, ErrNotFound
	}
	w := *wallet
	return &w, nil
}

func (s *MemStore) GetAllWallets() ([]*ledger.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets := make([]*ledger.Wallet, 0, len(s.wallets))
	for _, wallet := range s.wallets {
		w := *wallet
		wallets = append(wallets, &w)
	}
	sort.Slice(wallets, func(i, j int) bool { return wallets[i].Address < wallets[j].Address })
	return wallets, nil
}

func (s *MemStore) GetWalletsByType(walletType string) ([]*ledger.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var wallets []*ledger.Wallet
	for _, wallet := range s.wallets {
		if wallet.Type == walletType {
			w := *wallet
			wallets = append(wallets, &w)
		}
	}
	sort.Slice(wallets, func(i, j int) bool { return wallets[i].Address < wallets[j].Address })
	return wallets, nil
}

func (s *MemStore) CreditWallet(address string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, ok := s.wallets[address]
	if !ok {
		return ErrNotFound
	}
	wallet.Balance += amount
	return nil
}

func (s *MemStore) SwitchRole(userID, address, role string, minBalance int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	wallet, ok := s.wallets[address]
	if !ok {
		return ErrNotFound
	}
	if wallet.Balance < minBalance {
		return ErrInsufficientFunds
	}

	user.Role = role
	wallet.Type = role
	return nil
}

func (s *MemStore) GetTransaction(txHash string) (*ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[txHash]
	if !ok {
		return nil, ErrNotFound
	}
	t := *tx
	return &t, nil
}

func (s *MemStore) GetTransactionsByAddress(address string) ([]*ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var txs []*ledger.Transaction
	for _, tx := range s.transactions {
		if tx.FromAddress == address || tx.ToAddress == address {
			t := *tx
			txs = append(txs, &t)
		}
	}
	sortTransactions(txs)
	return txs, nil
}

func (s *MemStore) GetAllTransactions() ([]*ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs := make([]*ledger.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		t := *tx
		txs = append(txs, &t)
	}
	sortTransactions(txs)
	return txs, nil
}

func (s *MemStore) CreateTransaction(tx *ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendTransactionLocked(tx)
}

// appendTransactionLocked inserts a transaction. Callers must hold mu.
func (s *MemStore) appendTransactionLocked(tx *ledger.Transaction) error {
	if _, ok := s.transactions[tx.TxHash]; ok {
		return ErrConflict
	}
	t := *tx
	s.transactions[t.TxHash] = &t
	return nil
}

func (s *MemStore) UpdateTransactionStatus(txHash, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[txHash]
	if !ok {
		return ErrNotFound
	}
	tx.Status = status
	return nil
}

func (s *MemStore) TransferCredits(fromAddress, toAddress string, amount int64, tx *ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.wallets[fromAddress]
	if !ok {
		return ErrNotFound
	}
	to, ok := s.wallets[toAddress]
	if !ok {
		return ErrNotFound
	}
	if from.Balance < amount {
		return ErrInsufficientFunds
	}
	if err := s.appendTransactionLocked(tx); err != nil {
		return err
	}

	from.Balance -= amount
	to.Balance += amount
	return nil
}

func (s *MemStore) RetireCredits(address string, amount int64, tx *ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, ok := s.wallets[address]
	if !ok {
		return ErrNotFound
	}
	if wallet.Balance < amount {
		return ErrInsufficientFunds
	}
	if err := s.appendTransactionLocked(tx); err != nil {
		return err
	}

	wallet.Balance -= amount
	return nil
}

func (s *MemStore) GetCertificate(certificateID string) (*ledger.Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cert, ok := s.certificates[certificateID]
	if !ok {
		return nil, ErrNotFound
	}
	c := *cert
	return &c, nil
}

func (s *MemStore) GetCertificatesByProducer(producerAddress string) ([]*ledger.Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var certs []*ledger.Certificate
	for _, cert := range s.certificates {
		if cert.ProducerAddress == producerAddress {
			c := *cert
			certs = append(certs, &c)
		}
	}
	sortCertificates(certs)
	return certs, nil
}

func (s *MemStore) GetAllCertificates() ([]*ledger.Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	certs := make([]*ledger.Certificate, 0, len(s.certificates))
	for _, cert := range s.certificates {
		c := *cert
		certs = append(certs, &c)
	}
	sortCertificates(certs)
	return certs, nil
}

func (s *MemStore) CreateCertificate(cert *ledger.Certificate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.certificates[cert.CertificateID]; ok {
		return ErrConflict
	}
	c := *cert
	s.certificates[c.CertificateID] = &c
	return nil
}

func (s *MemStore) VerifyCertificate(certificateID string) (*ledger.Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cert, ok := s.certificates[certificateID]
	if !ok {
		return nil, ErrNotFound
	}
	if cert.Status != ledger.CertStatusPending {
		return nil, ErrInvalidState
	}
	wallet, ok := s.wallets[cert.ProducerAddress]
	if !ok {
		return nil, ErrNotFound
	}

	cert.Status = ledger.CertStatusValid
	wallet.Balance += cert.HydrogenKg

	c := *cert
	return &c, nil
}

func (s *MemStore) FlagCertificate(certificateID string) (*ledger.Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cert, ok := s.certificates[certificateID]
	if !ok {
		return nil, ErrNotFound
	}
	if cert.Status != ledger.CertStatusPending {
		return nil, ErrInvalidState
	}

	cert.Status = ledger.CertStatusFlagged
	c := *cert
	return &c, nil
}

func (s *MemStore) GetSystemStats() (*ledger.SystemStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &ledger.SystemStats{}
	for _, tx := range s.transactions {
		switch tx.TxType {
		case ledger.TxTypeIssue:
			stats.TotalIssued += tx.Amount
		case ledger.TxTypeRetire:
			stats.TotalRetired += tx.Amount
		}
	}
	stats.ActiveCredits = stats.TotalIssued - stats.TotalRetired

	for _, wallet := range s.wallets {
		switch wallet.Type {
		case ledger.RoleProducer:
			stats.TotalProducers++
		case ledger.RoleBuyer:
			stats.TotalBuyers++
		}
	}
	return stats, nil
}

func sortTransactions(txs []*ledger.Transaction) {
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].Timestamp.Equal(txs[j].Timestamp) {
			return txs[i].Timestamp.After(txs[j].Timestamp)
		}
		return txs[i].TxHash < txs[j].TxHash
	})
}

func sortCertificates(certs []*ledger.Certificate) {
	sort.Slice(certs, func(i, j int) bool {
		if !certs[i].IssueDate.Equal(certs[j].IssueDate) {
			return certs[i].IssueDate.After(certs[j].IssueDate)
		}
		return certs[i].CertificateID < certs[j].CertificateID
	})
}
