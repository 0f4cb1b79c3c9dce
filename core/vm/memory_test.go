package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestMemoryWordRoundingIsDoneByMemSizeFor(t *testing.T) {
	m := newMemory()
	m.resize(1)
	assert.Equal(t, uint64(1), m.Len(), "resize stores exactly what it's told; word-rounding is the caller's (memSizeFor's) job")

	end, ok := memSizeFor(uint256.NewInt(0), uint256.NewInt(1))
	assert.True(t, ok)
	assert.Equal(t, uint64(32), end)
}

func TestMemorySetGetWord(t *testing.T) {
	m := newMemory()
	m.resize(32)
	v := uint256.NewInt(0xdeadbeef)
	m.setWord32(0, v)
	got := m.getWord32(0)
	assert.Equal(t, v.Uint64(), got.Uint64())
}

func TestMemoryGetZeroSizeIsNil(t *testing.T) {
	m := newMemory()
	assert.Nil(t, m.get(0, 0))
}

func TestMemorySizeForOverflow(t *testing.T) {
	huge := new(uint256.Int).Lsh(uint256.NewInt(1), 250)
	_, ok := memSizeFor(huge, uint256.NewInt(1))
	assert.False(t, ok)
}

func TestMemoryExpansionGasGrowsQuadratically(t *testing.T) {
	m := newMemory()
	cost1, err := memoryExpansionGas(m, 32)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(uint64(3), cost1)

	m.resize(32)
	cost2, err := memoryExpansionGas(m, 64)
	assert.NoError(err)
	assert.Equal(uint64(3), cost2)

	m2 := newMemory()
	bigCost, err := memoryExpansionGas(m2, 32*1000)
	assert.NoError(err)
	assert.Greater(bigCost, uint64(3*1000), "quadratic term must dominate at large sizes")
}

func TestMemoryExpansionGasRejectsOverCap(t *testing.T) {
	m := newMemory()
	_, err := memoryExpansionGas(m, maxMemory+32)
	assert.ErrorIs(t, err, errMemoryOOB)
}
