package types

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionSignAndRecoverSender(t *testing.T) {
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := Address(crypto.PubkeyToAddress(priv.PublicKey))

	to := HexToAddress("0x1234567890123456789012345678901234567890")
	tx := &Transaction{
		Nonce:    7,
		GasPrice: big.NewInt(1),
		GasLimit: 21000,
		To:       &to,
		Value:    big.NewInt(100),
	}
	require.NoError(t, tx.Sign(priv, 61))

	got, err := tx.Sender()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTransactionRLPRoundTripHash(t *testing.T) {
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	to := HexToAddress("0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	tx := &Transaction{
		Nonce:    1,
		GasPrice: big.NewInt(2),
		GasLimit: 50000,
		To:       &to,
		Value:    big.NewInt(0),
		Data:     []byte{0xde, 0xad, 0xbe, 0xef},
	}
	require.NoError(t, tx.Sign(priv, 1))

	h1, err := tx.Hash()
	require.NoError(t, err)

	enc, err := tx.EncodeRLP()
	require.NoError(t, err)

	decoded, err := DecodeTransactionRLP(enc)
	require.NoError(t, err)
	h2, err := decoded.Hash()
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "re-hashing the round-tripped encoding must yield the same transaction hash")
}

func TestIntrinsicGas(t *testing.T) {
	to := HexToAddress("0x1111111111111111111111111111111111111111")
	tx := &Transaction{To: &to, Data: nil}
	assert.Equal(t, uint64(21000), tx.IntrinsicGas())

	creation := &Transaction{Data: []byte{0x00, 0x01}}
	assert.Equal(t, uint64(21000+32000+4+16), creation.IntrinsicGas())
}

func TestIsContractCreation(t *testing.T) {
	to := HexToAddress("0x1111111111111111111111111111111111111111")
	assert.False(t, (&Transaction{To: &to}).IsContractCreation())
	assert.True(t, (&Transaction{To: nil}).IsContractCreation())
}
