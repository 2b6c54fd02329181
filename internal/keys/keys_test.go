package keys

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWalletAddress(t *testing.T) {
	t.Run("Generates 0x-prefixed 40 hex chars", func(t *testing.T) {
		addr, err := NewWalletAddress()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(addr, "0x"))
		assert.Len(t, addr, 42)
	})

	t.Run("Generates unique addresses", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			addr, err := NewWalletAddress()
			require.NoError(t, err)
			assert.False(t, seen[addr], "address collision")
			seen[addr] = true
		}
	})
}

func TestNewPrivateKey(t *testing.T) {
	key, err := NewPrivateKey()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "0x"))
	assert.Len(t, key, 66)
}

func TestNewTxHash(t *testing.T) {
	t.Run("Generates 0x-prefixed 64 hex chars", func(t *testing.T) {
		hash, err := NewTxHash()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "0x"))
		assert.Len(t, hash, 66)
	})

	t.Run("Generates unique hashes", func(t *testing.T) {
		hash1, err := NewTxHash()
		require.NoError(t, err)
		hash2, err := NewTxHash()
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})
}

func TestNewSignature(t *testing.T) {
	sig, err := NewSignature()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sig, "0x"))
	assert.Len(t, sig, 132)
}

func TestNewCertificateID(t *testing.T) {
	t.Run("Has cert_ prefix and 8 hex chars", func(t *testing.T) {
		id := NewCertificateID()
		assert.True(t, strings.HasPrefix(id, "cert_"))
		assert.Len(t, id, 13)
	})

	t.Run("Generates unique ids", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := NewCertificateID()
			assert.False(t, seen[id], "certificate id collision")
			seen[id] = true
		}
	})

	t.Run("Hex portion is lowercase hex", func(t *testing.T) {
		id := NewCertificateID()
		for _, r := range id[5:] {
			assert.Contains(t, "0123456789abcdef", string(r))
		}
	})
}
