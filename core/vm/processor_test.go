package vm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethclassic/evmcore/core/state"
	"github.com/ethclassic/evmcore/core/types"
)

func testBlock() BlockContext {
	return BlockContext{
		Coinbase:   types.Address{},
		Number:     uint256.NewInt(1),
		Timestamp:  uint256.NewInt(1700000000),
		Difficulty: uint256.NewInt(0),
		GasLimit:   uint256.NewInt(30_000_000),
		ChainID:    uint256.NewInt(1),
	}
}

// signedTx builds and signs a transaction from a fresh key, returning the
// signer's address alongside it.
func signedTx(t *testing.T, to *types.Address, value *big.Int, gasLimit uint64, data []byte, nonce uint64) (*types.Transaction, types.Address) {
	t.Helper()
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	tx := &types.Transaction{
		Nonce:    nonce,
		GasPrice: big.NewInt(0),
		GasLimit: gasLimit,
		To:       to,
		Value:    value,
		Data:     data,
	}
	require.NoError(t, tx.Sign(priv, 1))
	sender := types.Address(crypto.PubkeyToAddress(priv.PublicKey))
	return tx, sender
}

// TestIntrinsicGasUnderflow checks that a gas limit below the intrinsic
// cost of the transaction rejects it before any execution happens.
func TestIntrinsicGasUnderflow(t *testing.T) {
	host := state.NewMemoryState()
	to := types.HexToAddress("0x9999999999999999999999999999999999999999")
	tx, sender := signedTx(t, &to, big.NewInt(0), 20999, nil, 0)
	host.AddBalance(sender, uint256.NewInt(1000))

	_, err := ProcessTransaction(host, testBlock(), tx, types.Hash{}, 0)
	assert.Error(t, err, "gas_limit below intrinsic cost must reject the transaction outright")
}

// TestSimpleTransfer checks a plain value transfer between two EOAs.
func TestSimpleTransfer(t *testing.T) {
	host := state.NewMemoryState()
	recipient := types.HexToAddress("0x2222222222222222222222222222222222222222")
	tx, sender := signedTx(t, &recipient, big.NewInt(100), 21000, nil, 0)
	host.AddBalance(sender, uint256.NewInt(1000))

	receipt, err := ProcessTransaction(host, testBlock(), tx, types.Hash{}, 0)
	require.NoError(t, err)

	assert.Equal(t, "1", receipt.Status)
	assert.Equal(t, uint64(21000), receipt.GasUsed.Uint64())
	assert.Nil(t, receipt.CreatedAddress)
	assert.Equal(t, uint64(900), host.GetAccount(sender).Balance.Uint64())
	assert.Equal(t, uint64(100), host.GetAccount(recipient).Balance.Uint64())
}

// TestContractCreation runs 12 bytes of init code that CODECOPYs the 5
// trailing bytes into memory and RETURNs them as the deployed runtime code.
func TestContractCreation(t *testing.T) {
	initCode := []byte{
		byte(PUSH1), 0x05, // length
		byte(PUSH1), 0x0c, // code offset (where the runtime bytes start)
		byte(PUSH1), 0x00, // dest offset
		byte(CODECOPY),
		byte(PUSH1), 0x05, // return size
		byte(PUSH1), 0x00, // return offset
		byte(RETURN),
	}
	runtime := []byte{0x00, 0x00, 0x00, 0x00, 0x00}
	data := append(append([]byte{}, initCode...), runtime...)

	host := state.NewMemoryState()
	tx, sender := signedTx(t, nil, big.NewInt(0), 200000, data, 0)
	host.AddBalance(sender, uint256.NewInt(1000))

	receipt, err := ProcessTransaction(host, testBlock(), tx, types.Hash{}, 0)
	require.NoError(t, err)

	require.Equal(t, "1", receipt.Status)
	require.NotNil(t, receipt.CreatedAddress)

	wantAddr := createAddress(sender, 0)
	assert.Equal(t, wantAddr, *receipt.CreatedAddress)
	assert.Equal(t, runtime, host.GetAccount(wantAddr).Code)
	assert.Equal(t, uint64(1), host.GetAccount(sender).Nonce)
}

// TestRevertRefundsGas checks that PUSH1 0 PUSH1 0 REVERT against an
// existing contract fails the call but returns the frame's unused gas to
// the caller.
func TestRevertRefundsGas(t *testing.T) {
	host := state.NewMemoryState()
	contract := types.HexToAddress("0x3333333333333333333333333333333333333333")
	host.SetCode(contract, []byte{byte(PUSH1), 0x00, byte(PUSH1), 0x00, byte(REVERT)})

	tx, sender := signedTx(t, &contract, big.NewInt(0), 100000, nil, 0)
	host.AddBalance(sender, uint256.NewInt(1000))

	receipt, err := ProcessTransaction(host, testBlock(), tx, types.Hash{}, 0)
	require.NoError(t, err)

	assert.Equal(t, "0", receipt.Status)
	require.NotEmpty(t, receipt.Errors)
	assert.Contains(t, receipt.Errors[0], "revert")
	// intrinsic (21000) + PUSH1 + PUSH1 (3 each); REVERT with size 0 costs
	// nothing further.
	assert.Equal(t, uint64(21006), receipt.GasUsed.Uint64())
}

// TestCallDepthLimit checks that a contract recursively calling itself
// hits MaxCallDepth and the failing CALL pushes 0 rather than aborting
// the whole transaction.
func TestCallDepthLimit(t *testing.T) {
	host := state.NewMemoryState()
	contract := types.HexToAddress("0x4444444444444444444444444444444444444444")
	// PUSH1 0 (retSize) PUSH1 0 (retOffset) PUSH1 0 (argsSize)
	// PUSH1 0 (argsOffset) PUSH1 0 (value) ADDRESS GAS CALL STOP
	host.SetCode(contract, []byte{
		byte(PUSH1), 0x00,
		byte(PUSH1), 0x00,
		byte(PUSH1), 0x00,
		byte(PUSH1), 0x00,
		byte(PUSH1), 0x00,
		byte(ADDRESS),
		byte(GAS),
		byte(CALL),
		byte(STOP),
	})

	tx, sender := signedTx(t, &contract, big.NewInt(0), 1_000_000_000_000_000, nil, 0)
	host.AddBalance(sender, uint256.NewInt(1))

	receipt, err := ProcessTransaction(host, testBlock(), tx, types.Hash{}, 0)
	require.NoError(t, err)

	assert.Equal(t, "1", receipt.Status, "hitting the depth limit fails only the innermost CALL, not the transaction")
	assert.Less(t, receipt.GasUsed.Uint64(), tx.GasLimit, "the depth-limited call must not burn all forwarded gas")
}
