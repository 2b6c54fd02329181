// Package keys generates the opaque hex identifiers used throughout the
// ledger: wallet addresses, private keys, transaction hashes, signatures,
// and certificate ids. None of these are cryptographically validated by the
// system; they are unique handles drawn from a space large enough that
// collisions are not a practical concern.
package keys

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// randomHex returns a 0x-prefixed hex string of n random bytes.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return "0x" + hex.EncodeToString(buf), nil
}

// NewWalletAddress generates a wallet address (0x + 40 hex chars).
func NewWalletAddress() (string, error) {
	return randomHex(20)
}

// NewPrivateKey generates an opaque signing credential (0x + 64 hex chars).
func NewPrivateKey() (string, error) {
	return randomHex(32)
}

// NewTxHash generates a transaction hash (0x + 64 hex chars).
func NewTxHash() (string, error) {
	return randomHex(32)
}

// NewSignature generates an opaque signature (0x + 130 hex chars).
func NewSignature() (string, error) {
	return randomHex(65)
}

// NewCertificateID generates a certificate handle of the form cert_<8hex>.
func NewCertificateID() string {
	return "cert_" + uuid.New().String()[:8]
}
