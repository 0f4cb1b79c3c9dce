package state

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethclassic/evmcore/core/types"
)

func openTestDB(t *testing.T) *LevelDBState {
	t.Helper()
	db, err := OpenLevelDBState(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLevelDBStateBalanceAndTransfer(t *testing.T) {
	s := openTestDB(t)
	alice := types.HexToAddress("0x1111111111111111111111111111111111111111")
	bob := types.HexToAddress("0x2222222222222222222222222222222222222222")

	s.AddBalance(alice, uint256.NewInt(50))
	ok := s.Transfer(alice, bob, uint256.NewInt(20))
	require.True(t, ok)
	assert.Equal(t, uint64(30), s.GetAccount(alice).Balance.Uint64())
	assert.Equal(t, uint64(20), s.GetAccount(bob).Balance.Uint64())
}

func TestLevelDBStateStorageRoundTrip(t *testing.T) {
	s := openTestDB(t)
	addr := types.HexToAddress("0x3333333333333333333333333333333333333333")
	key := types.BytesToHash([]byte{1})
	val := types.BytesToHash([]byte{0xaa, 0xbb})

	s.SStore(addr, key, val)
	assert.Equal(t, val, s.SLoad(addr, key))

	s.SStore(addr, key, types.Hash{})
	assert.True(t, s.SLoad(addr, key).IsZero())
}

func TestLevelDBStateCreateAccountCollision(t *testing.T) {
	s := openTestDB(t)
	addr := types.HexToAddress("0x4444444444444444444444444444444444444444")

	_, collided := s.CreateAccount(addr, true)
	assert.False(t, collided)

	s.IncrementNonce(addr)
	_, collided = s.CreateAccount(addr, true)
	assert.True(t, collided)
}

func TestLevelDBStateKillStorage(t *testing.T) {
	s := openTestDB(t)
	addr := types.HexToAddress("0x5555555555555555555555555555555555555555")
	key := types.BytesToHash([]byte{9})

	s.SStore(addr, key, types.BytesToHash([]byte{1}))
	s.KillStorage(addr)
	assert.True(t, s.SLoad(addr, key).IsZero())
}
