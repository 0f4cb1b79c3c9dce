package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethclassic/evmcore/core/state"
	"github.com/ethclassic/evmcore/core/types"
)

func TestTxStateRevertToUndoesStoreAndTransfer(t *testing.T) {
	host := state.NewMemoryState()
	ts := NewTxState()
	alice := types.HexToAddress("0x1111111111111111111111111111111111111111")
	bob := types.HexToAddress("0x2222222222222222222222222222222222222222")
	slot := types.BytesToHash([]byte{1})

	host.AddBalance(alice, uint256.NewInt(100))
	checkpoint := ts.Checkpoint()

	require.True(t, host.Transfer(alice, bob, uint256.NewInt(30)))
	ts.recordTransfer(alice, bob, uint256.NewInt(30))

	host.SStore(alice, slot, types.BytesToHash([]byte{9}))
	ts.recordStoreKV(alice, slot, types.Hash{})

	ts.RevertTo(host, checkpoint)

	assert.Equal(t, uint64(100), host.GetAccount(alice).Balance.Uint64())
	assert.Equal(t, uint64(0), host.GetAccount(bob).Balance.Uint64())
	assert.True(t, host.SLoad(alice, slot).IsZero())
}

func TestTxStateOriginalValueSnapshotsOnFirstAccess(t *testing.T) {
	ts := NewTxState()
	addr := types.HexToAddress("0x3333333333333333333333333333333333333333")
	key := types.BytesToHash([]byte{1})

	first := ts.originalValue(addr, key, types.BytesToHash([]byte{7}))
	assert.Equal(t, types.BytesToHash([]byte{7}), first)

	// A later read with a different "current" value still returns the
	// first-access snapshot.
	second := ts.originalValue(addr, key, types.BytesToHash([]byte{42}))
	assert.Equal(t, types.BytesToHash([]byte{7}), second)
}

func TestTxStateRecordLogUndo(t *testing.T) {
	host := state.NewMemoryState()
	ts := NewTxState()
	checkpoint := ts.Checkpoint()

	ts.recordLog(types.LogEntry{Address: types.HexToAddress("0x01")})
	assert.Len(t, ts.Logs, 1)

	ts.RevertTo(host, checkpoint)
	assert.Empty(t, ts.Logs)
}

func TestTxStateSelfDestructDedup(t *testing.T) {
	ts := NewTxState()
	addr := types.HexToAddress("0x4444444444444444444444444444444444444444")

	assert.True(t, ts.recordSelfDestruct(addr))
	assert.False(t, ts.recordSelfDestruct(addr), "a second SELFDESTRUCT on the same address is not re-listed")
	assert.Len(t, ts.Selfdestruct, 1)
}

func TestTxStateSubRefundSaturatesAtZero(t *testing.T) {
	ts := NewTxState()
	ts.AddRefund(10)
	ts.SubRefund(100)
	assert.Equal(t, uint64(0), ts.GasRefund)
}
