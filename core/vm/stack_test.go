package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	st := newStack()
	one, two := uint256.NewInt(1), uint256.NewInt(2)
	require.NoError(t, st.push(one))
	require.NoError(t, st.push(two))
	assert.Equal(t, 2, st.len())

	top, err := st.pop()
	require.NoError(t, err)
	assert.Equal(t, *two, top)

	bottom, err := st.pop()
	require.NoError(t, err)
	assert.Equal(t, *one, bottom)

	_, err = st.pop()
	assert.ErrorIs(t, err, errStackUnderflow)
}

func TestStackNeverExceeds1024(t *testing.T) {
	st := newStack()
	for i := 0; i < stackLimit; i++ {
		require.NoError(t, st.push(uint256.NewInt(uint64(i))))
	}
	err := st.push(uint256.NewInt(9999))
	assert.ErrorIs(t, err, errStackOverflow)
	assert.Equal(t, stackLimit, st.len())
}

func TestStackSwap(t *testing.T) {
	st := newStack()
	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(2))
	st.push(uint256.NewInt(3))
	require.NoError(t, st.swap(2))
	top, _ := st.peek()
	assert.Equal(t, uint64(1), top.Uint64())
}

func TestStackDup(t *testing.T) {
	st := newStack()
	st.push(uint256.NewInt(10))
	st.push(uint256.NewInt(20))
	require.NoError(t, st.dup(1))
	assert.Equal(t, 3, st.len())
	top, _ := st.peek()
	assert.Equal(t, uint64(10), top.Uint64())
}

func TestStackBackDoesNotMutate(t *testing.T) {
	st := newStack()
	st.push(uint256.NewInt(5))
	v, err := st.back(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v.Uint64())
	assert.Equal(t, 1, st.len())
}
