package state

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethclassic/evmcore/core/types"
)

func TestMemoryStateTransfer(t *testing.T) {
	s := NewMemoryState()
	alice := types.HexToAddress("0x1111111111111111111111111111111111111111")
	bob := types.HexToAddress("0x2222222222222222222222222222222222222222")

	s.AddBalance(alice, uint256.NewInt(100))
	ok := s.Transfer(alice, bob, uint256.NewInt(40))
	require.True(t, ok)
	assert.Equal(t, uint64(60), s.GetAccount(alice).Balance.Uint64())
	assert.Equal(t, uint64(40), s.GetAccount(bob).Balance.Uint64())

	ok = s.Transfer(alice, bob, uint256.NewInt(1000))
	assert.False(t, ok, "transfer exceeding balance must fail without mutating state")
	assert.Equal(t, uint64(60), s.GetAccount(alice).Balance.Uint64())
}

func TestMemoryStateNonceAndCode(t *testing.T) {
	s := NewMemoryState()
	addr := types.HexToAddress("0x3333333333333333333333333333333333333333")

	s.IncrementNonce(addr)
	s.IncrementNonce(addr)
	assert.Equal(t, uint64(2), s.GetAccount(addr).Nonce)

	s.DecrementNonce(addr)
	assert.Equal(t, uint64(1), s.GetAccount(addr).Nonce)

	s.SetCode(addr, []byte{0x60, 0x00})
	assert.Equal(t, []byte{0x60, 0x00}, s.GetAccount(addr).Code)
	assert.False(t, s.CodeHash(addr).IsZero())
}

func TestMemoryStateStorageZeroDeletes(t *testing.T) {
	s := NewMemoryState()
	addr := types.HexToAddress("0x4444444444444444444444444444444444444444")
	key := types.BytesToHash([]byte{1})
	val := types.BytesToHash([]byte{0xaa})

	s.SStore(addr, key, val)
	assert.Equal(t, val, s.SLoad(addr, key))

	s.SStore(addr, key, types.Hash{})
	assert.True(t, s.SLoad(addr, key).IsZero(), "storing the zero word deletes the slot")
}

func TestMemoryStateCreateAccountCollision(t *testing.T) {
	s := NewMemoryState()
	addr := types.HexToAddress("0x5555555555555555555555555555555555555555")

	_, collided := s.CreateAccount(addr, true)
	assert.False(t, collided)

	s.IncrementNonce(addr)
	_, collided = s.CreateAccount(addr, true)
	assert.True(t, collided, "an account with nonzero nonce already at addr must report a collision")
}

func TestMemoryStateKillStorageAndRemove(t *testing.T) {
	s := NewMemoryState()
	addr := types.HexToAddress("0x6666666666666666666666666666666666666666")
	key := types.BytesToHash([]byte{1})

	s.SStore(addr, key, types.BytesToHash([]byte{1}))
	s.KillStorage(addr)
	assert.True(t, s.SLoad(addr, key).IsZero())

	s.AddBalance(addr, uint256.NewInt(5))
	s.RemoveAccount(addr)
	assert.True(t, s.GetAccount(addr).Balance.IsZero())
}

func TestMemoryStateBlockHashAlwaysZero(t *testing.T) {
	s := NewMemoryState()
	assert.True(t, s.BlockHash(1).IsZero())
	assert.True(t, s.BlockHash(0).IsZero())
}
