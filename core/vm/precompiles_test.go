package vm

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEcrecoverPrecompile checks that recovering a known signature of a
// zero hash returns the 20-byte address right-aligned in a 32-byte word.
func TestEcrecoverPrecompile(t *testing.T) {
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	wantAddr := crypto.PubkeyToAddress(priv.PublicKey)

	var zeroHashBytes [32]byte
	sig, err := crypto.Sign(zeroHashBytes[:], priv)
	require.NoError(t, err)

	input := make([]byte, 128)
	copy(input[0:32], zeroHashBytes[:])
	input[63] = sig[64] + 27 // v
	copy(input[64:96], sig[0:32])
	copy(input[96:128], sig[32:64])

	out, err := ecrecoverContract{}.run(input)
	require.NoError(t, err)
	require.Len(t, out, 32)
	assert.Equal(t, wantAddr.Bytes(), out[12:])
	assert.Equal(t, [12]byte{}, [12]byte(out[0:12]))
}

func TestEcrecoverPrecompileInvalidVReturnsZero(t *testing.T) {
	input := make([]byte, 128)
	input[63] = 99 // neither 27 nor 28
	out, err := ecrecoverContract{}.run(input)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 32), out)
}

func TestIdentityPrecompileEchoesInput(t *testing.T) {
	in := []byte{1, 2, 3, 4}
	out, err := identityContract{}.run(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSha256PrecompileRequiredGasChargesPerWord(t *testing.T) {
	c := sha256Contract{}
	assert.Equal(t, uint64(60+12), c.requiredGas(make([]byte, 1)))
	assert.Equal(t, uint64(60+12*2), c.requiredGas(make([]byte, 33)))
}

func TestRunPrecompiledOutOfGas(t *testing.T) {
	addr := precompileAddr(2) // sha256
	_, _, vmErr := runPrecompiled(addr, make([]byte, 0), 10)
	require.NotNil(t, vmErr)
	assert.Equal(t, ExOutOfGas, vmErr.Kind)
}

func TestRunPrecompiledSucceedsAndReturnsLeftoverGas(t *testing.T) {
	addr := precompileAddr(4) // identity
	out, left, vmErr := runPrecompiled(addr, []byte{1, 2, 3}, 1000)
	require.Nil(t, vmErr)
	assert.Equal(t, []byte{1, 2, 3}, out)
	assert.Less(t, left, uint64(1000))
}
