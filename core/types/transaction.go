// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// Transaction is the decoded form of the RLP list
// [nonce, gasPrice, gasLimit, to, value, data, v, r, s].
// `To == nil` indicates a contract-creation transaction.
type Transaction struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	To       *Address // nil for contract creation
	Value    *big.Int
	Data     []byte

	V *big.Int
	R *big.Int
	S *big.Int

	// sender is populated lazily by Sender(), which derives the EIP-155
	// chain ID from V for recovery.
	sender    *Address
	signingID *big.Int
}

// rlpTxData mirrors the wire list shape for encoding/decoding via the rlp
// package (To is encoded as an empty byte string for creation).
type rlpTxData struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	To       []byte
	Value    *big.Int
	Data     []byte
	V        *big.Int
	R        *big.Int
	S        *big.Int
}

// DecodeTransactionRLP decodes a raw `[nonce, gasPrice, gasLimit, to, value, data, v, r, s]`
// transaction blob.
func DecodeTransactionRLP(raw []byte) (*Transaction, error) {
	var data rlpTxData
	if err := rlp.DecodeBytes(raw, &data); err != nil {
		return nil, fmt.Errorf("decode transaction rlp: %w", err)
	}
	tx := &Transaction{
		Nonce:    data.Nonce,
		GasPrice: data.GasPrice,
		GasLimit: data.GasLimit,
		Value:    data.Value,
		Data:     data.Data,
		V:        data.V,
		R:        data.R,
		S:        data.S,
	}
	if len(data.To) > 0 {
		to := BytesToAddress(data.To)
		tx.To = &to
	}
	return tx, nil
}

// EncodeRLP encodes the transaction back to its wire list form.
func (tx *Transaction) EncodeRLP() ([]byte, error) {
	var to []byte
	if tx.To != nil {
		to = tx.To.Bytes()
	}
	return rlp.EncodeToBytes(&rlpTxData{
		Nonce:    tx.Nonce,
		GasPrice: tx.GasPrice,
		GasLimit: tx.GasLimit,
		To:       to,
		Value:    tx.Value,
		Data:     tx.Data,
		V:        tx.V,
		R:        tx.R,
		S:        tx.S,
	})
}

// IsContractCreation reports whether this transaction creates a contract.
func (tx *Transaction) IsContractCreation() bool {
	return tx.To == nil
}

// chainIDFromV recovers the EIP-155 chain ID (or nil for a pre-155
// signature) and the recovery id from V.
func chainIDFromV(v *big.Int) (chainID *big.Int, recoveryID byte, preEIP155 bool) {
	vv := v.Uint64()
	if vv == 27 || vv == 28 {
		return nil, byte(vv - 27), true
	}
	// chain_id = (v - 35) / 2 ; recovery_id = (v - 35) mod 2
	cid := new(big.Int).Sub(v, big.NewInt(35))
	rec := byte(new(big.Int).Mod(cid, big.NewInt(2)).Uint64())
	cid.Div(cid, big.NewInt(2))
	return cid, rec, false
}

// signingHash returns the hash that was signed to produce (v, r, s), per
// the EIP-155 rule.
func (tx *Transaction) signingHash(chainID *big.Int, preEIP155 bool) (Hash, error) {
	var to []byte
	if tx.To != nil {
		to = tx.To.Bytes()
	}
	if preEIP155 {
		enc, err := rlp.EncodeToBytes([]interface{}{
			tx.Nonce, tx.GasPrice, tx.GasLimit, to, tx.Value, tx.Data,
		})
		if err != nil {
			return Hash{}, err
		}
		return Hash(crypto.Keccak256Hash(enc)), nil
	}
	enc, err := rlp.EncodeToBytes([]interface{}{
		tx.Nonce, tx.GasPrice, tx.GasLimit, to, tx.Value, tx.Data,
		chainID, uint(0), uint(0),
	})
	if err != nil {
		return Hash{}, err
	}
	return Hash(crypto.Keccak256Hash(enc)), nil
}

// Sign computes the EIP-155 signing hash for chainID and populates (v, r, s)
// from priv, the counterpart cmd/evmrun needs to build a transaction from a
// raw key rather than decoding one off the wire.
func (tx *Transaction) Sign(priv *ecdsa.PrivateKey, chainID uint64) error {
	cid := new(big.Int).SetUint64(chainID)
	h, err := tx.signingHash(cid, false)
	if err != nil {
		return err
	}
	sig, err := crypto.Sign(h[:], priv)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	// EIP-155: v = recovery_id + chain_id*2 + 35
	v := new(big.Int).SetUint64(uint64(sig[64]))
	v.Add(v, new(big.Int).Mul(cid, big.NewInt(2)))
	v.Add(v, big.NewInt(35))

	tx.V, tx.R, tx.S = v, r, s
	tx.sender = nil // force Sender() to re-recover and validate the new signature
	return nil
}

// Sender recovers and caches the sender address from (v, r, s).
func (tx *Transaction) Sender() (Address, error) {
	if tx.sender != nil {
		return *tx.sender, nil
	}
	chainID, recoveryID, preEIP155 := chainIDFromV(tx.V)
	h, err := tx.signingHash(chainID, preEIP155)
	if err != nil {
		return Address{}, err
	}
	sig := make([]byte, 65)
	rBytes, sBytes := tx.R.Bytes(), tx.S.Bytes()
	copy(sig[32-len(rBytes):32], rBytes)
	copy(sig[64-len(sBytes):64], sBytes)
	sig[64] = recoveryID

	pub, err := crypto.SigToPub(h[:], sig)
	if err != nil {
		return Address{}, fmt.Errorf("recover sender: %w", err)
	}
	addr := Address(crypto.PubkeyToAddress(*pub))
	tx.sender = &addr
	tx.signingID = chainID
	return addr, nil
}

// Hash returns the transaction hash: keccak256 of the full signed RLP
// encoding.
func (tx *Transaction) Hash() (Hash, error) {
	enc, err := tx.EncodeRLP()
	if err != nil {
		return Hash{}, err
	}
	return Hash(crypto.Keccak256Hash(enc)), nil
}

// IntrinsicGas computes 21000 + (creation ? 32000 : 0) + sum(byte==0 ? 4 : 16),
// the fixed gas cost of getting the transaction onto the call stack before
// any opcode runs.
func (tx *Transaction) IntrinsicGas() uint64 {
	gas := uint64(21000)
	if tx.IsContractCreation() {
		gas += 32000
	}
	for _, b := range tx.Data {
		if b == 0 {
			gas += 4
		} else {
			gas += 16
		}
	}
	return gas
}
