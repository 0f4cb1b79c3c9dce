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
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/crypto/blake2b"
)

// blake2FContract (0x09): the EIP-152 BLAKE2b compression function F,
// exposed as a precompile so contracts can verify Zcash Equihash proofs.
// Wired to go-ethereum's crypto/blake2b.F rather than reimplemented.
type blake2FContract struct{}

const blake2FInputLen = 213

func (blake2FContract) requiredGas(input []byte) uint64 {
	if len(input) != blake2FInputLen {
		return 0
	}
	return uint64(binary.BigEndian.Uint32(input[0:4]))
}

func (blake2FContract) run(input []byte) ([]byte, error) {
	if len(input) != blake2FInputLen {
		return nil, errors.New("invalid blake2f input length")
	}
	final := input[212]
	if final != 0 && final != 1 {
		return nil, errors.New("invalid blake2f final flag")
	}
	rounds := binary.BigEndian.Uint32(input[0:4])

	var h [8]uint64
	for i := 0; i < 8; i++ {
		h[i] = binary.LittleEndian.Uint64(input[4+i*8:])
	}
	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = binary.LittleEndian.Uint64(input[68+i*8:])
	}
	var t [2]uint64
	t[0] = binary.LittleEndian.Uint64(input[196:204])
	t[1] = binary.LittleEndian.Uint64(input[204:212])

	out := blake2b.F(rounds, h, m, t, final == 1)

	result := make([]byte, 64)
	for i, v := range out {
		binary.LittleEndian.PutUint64(result[i*8:], v)
	}
	return result, nil
}
