package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ethclassic/evmcore/core/types"
)

var zeroHash = types.Hash{}

func hash(b byte) types.Hash { return types.BytesToHash([]byte{b}) }

// TestSStoreEIP2200Gas checks that SSTORE(0, 42) from a clean slot charges
// 20000; a follow-up SSTORE(0, 0) charges 5000 with a 15000 refund.
func TestSStoreEIP2200Gas(t *testing.T) {
	gas, refund := sstoreGasEIP2200(zeroHash, zeroHash, hash(42))
	assert.Equal(t, uint64(20000), gas)
	assert.Equal(t, int64(0), refund)

	gas, refund = sstoreGasEIP2200(hash(42), hash(42), zeroHash)
	assert.Equal(t, uint64(5000), gas)
	assert.Equal(t, int64(15000), refund)
}

func TestSStoreEIP2200NoopChargesWarmCost(t *testing.T) {
	gas, refund := sstoreGasEIP2200(zeroHash, hash(7), hash(7))
	assert.Equal(t, uint64(800), gas)
	assert.Equal(t, int64(0), refund)
}

func TestSStoreEIP2200DirtySlotRestoredToOriginal(t *testing.T) {
	// original=0, current=7 (already dirtied this tx), new=0 restores the
	// original and refunds the 20000-800 difference.
	gas, refund := sstoreGasEIP2200(zeroHash, hash(7), zeroHash)
	assert.Equal(t, uint64(800), gas)
	assert.Equal(t, int64(20000-800), refund)
}

func TestCallGasForwardCapsAt63Of64(t *testing.T) {
	got := callGasForward(6400, 6400)
	assert.Equal(t, uint64(6400-6400/64), got)
}

func TestCallGasForwardPassesThroughSmallerRequest(t *testing.T) {
	got := callGasForward(6400, 10)
	assert.Equal(t, uint64(10), got)
}

func TestMemoryGasCostFormula(t *testing.T) {
	assert.Equal(t, uint64(3), memoryGasCost(1))
	assert.Equal(t, uint64(3*512+512), memoryGasCost(512))
}

func TestCopyAndSha3Gas(t *testing.T) {
	assert.Equal(t, uint64(3), copyGas(1))
	assert.Equal(t, uint64(3), copyGas(32))
	assert.Equal(t, uint64(6), copyGas(33))

	assert.Equal(t, uint64(30+6), sha3Gas(1))
	assert.Equal(t, uint64(30+6), sha3Gas(32))
}
