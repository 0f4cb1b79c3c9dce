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

package vm

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/crypto/bn256"
)

// ecrecoverContract (0x01) wires github.com/ethereum/go-ethereum/crypto's
// secp256k1 recovery instead of reimplementing it.
type ecrecoverContract struct{}

func (ecrecoverContract) requiredGas(input []byte) uint64 { return 3000 }

func (ecrecoverContract) run(input []byte) ([]byte, error) {
	in := rightPad(input, 128)
	hash := in[0:32]
	v := in[63]
	r := in[64:96]
	s := in[96:128]

	if v != 27 && v != 28 {
		return make([]byte, 32), nil
	}
	if !crypto.ValidateSignatureValues(v-27, new(big.Int).SetBytes(r), new(big.Int).SetBytes(s), false) {
		return make([]byte, 32), nil
	}

	sig := make([]byte, 65)
	copy(sig[0:32], r)
	copy(sig[32:64], s)
	sig[64] = v - 27

	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return make([]byte, 32), nil
	}
	addr := crypto.PubkeyToAddress(*pub)
	out := make([]byte, 32)
	copy(out[12:], addr[:])
	return out, nil
}

func rightPad(b []byte, n int) []byte {
	if len(b) >= n {
		return b[:n]
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// bn256AddContract (0x06): alt_bn128 point addition.
type bn256AddContract struct{}

func (bn256AddContract) requiredGas(input []byte) uint64 { return 150 }

func (bn256AddContract) run(input []byte) ([]byte, error) {
	in := rightPad(input, 128)
	p1, err := newG1(in[0:64])
	if err != nil {
		return nil, err
	}
	p2, err := newG1(in[64:128])
	if err != nil {
		return nil, err
	}
	res := new(bn256.G1).Add(p1, p2)
	return res.Marshal(), nil
}

// bn256MulContract (0x07): alt_bn128 scalar multiplication.
type bn256MulContract struct{}

func (bn256MulContract) requiredGas(input []byte) uint64 { return 6000 }

func (bn256MulContract) run(input []byte) ([]byte, error) {
	in := rightPad(input, 96)
	p, err := newG1(in[0:64])
	if err != nil {
		return nil, err
	}
	scalar := new(big.Int).SetBytes(in[64:96])
	res := new(bn256.G1).ScalarMult(p, scalar)
	return res.Marshal(), nil
}

// bn256PairingContract (0x08): alt_bn128 pairing check, input is a sequence
// of 192-byte (G1, G2) pairs.
type bn256PairingContract struct{}

const bn256PairSize = 192

func (bn256PairingContract) requiredGas(input []byte) uint64 {
	k := uint64(len(input)) / bn256PairSize
	return 45000 + 34000*k
}

func (bn256PairingContract) run(input []byte) ([]byte, error) {
	if len(input)%bn256PairSize != 0 {
		return nil, errors.New("invalid bn256 pairing input length")
	}
	var g1s []*bn256.G1
	var g2s []*bn256.G2
	for i := 0; i < len(input); i += bn256PairSize {
		chunk := input[i : i+bn256PairSize]
		p1, err := newG1(chunk[0:64])
		if err != nil {
			return nil, err
		}
		p2, err := newG2(chunk[64:192])
		if err != nil {
			return nil, err
		}
		g1s = append(g1s, p1)
		g2s = append(g2s, p2)
	}
	out := make([]byte, 32)
	if bn256.PairingCheck(g1s, g2s) {
		out[31] = 1
	}
	return out, nil
}

func newG1(b []byte) (*bn256.G1, error) {
	p := new(bn256.G1)
	if _, err := p.Unmarshal(b); err != nil {
		return nil, err
	}
	return p, nil
}

func newG2(b []byte) (*bn256.G2, error) {
	p := new(bn256.G2)
	if _, err := p.Unmarshal(b); err != nil {
		return nil, err
	}
	return p, nil
}
