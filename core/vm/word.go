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
	"github.com/holiman/uint256"

	"github.com/ethclassic/evmcore/core/types"
)

// wordToAddress truncates a 256-bit word to its low 160 bits, matching the
// teacher's common.BigToAddress truncation.
func wordToAddress(w *uint256.Int) types.Address {
	b := w.Bytes32()
	var a types.Address
	copy(a[:], b[12:])
	return a
}

// addressToWord embeds an Address into the low 160 bits of a word.
func addressToWord(a types.Address) *uint256.Int {
	var w uint256.Int
	w.SetBytes(a[:])
	return &w
}

// toWordSize rounds a byte length up to the next multiple of 32, expressed
// in whole words (ceil(size/32)).
func toWordSize(size uint64) uint64 {
	return (size + 31) / 32
}

// signExtend implements the SIGNEXTEND opcode: sign-extend x from the
// (byteNum+1)-th byte counting from the least significant byte. byteNum >= 32
// is the identity. Delegates to uint256.Int.ExtendSign, which implements
// exactly this EVM semantic.
func signExtend(byteNum, x *uint256.Int) *uint256.Int {
	out := new(uint256.Int)
	return out.ExtendSign(x, byteNum)
}

// byteAt implements the BYTE opcode: byte n (big-endian, n==0 is most
// significant) of x. n >= 32 returns 0. Delegates to uint256.Int.Byte, which
// implements exactly this EVM semantic.
func byteAt(n, x *uint256.Int) *uint256.Int {
	out := new(uint256.Int).Set(x)
	return out.Byte(n)
}

// expByteLen returns the number of bytes needed to represent exponent,
// used by the EXP dynamic gas rule.
func expByteLen(exponent *uint256.Int) uint64 {
	bitLen := exponent.BitLen()
	if bitLen == 0 {
		return 0
	}
	return uint64((bitLen + 7) / 8)
}
