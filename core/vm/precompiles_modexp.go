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

import "math/big"

// modexpContract (0x05): arbitrary-precision modular exponentiation per
// EIP-198, with a baseLen/expLen/modLen header layout. Uses math/big for
// the exponentiation itself.
type modexpContract struct{}

func modexpLens(input []byte) (baseLen, expLen, modLen uint64) {
	in := rightPad(input, 96)
	baseLen = new(big.Int).SetBytes(in[0:32]).Uint64()
	expLen = new(big.Int).SetBytes(in[32:64]).Uint64()
	modLen = new(big.Int).SetBytes(in[64:96]).Uint64()
	return
}

// getData returns size bytes of data starting at start, zero-padded if the
// requested window runs past the end of data.
func getData(data []byte, start, size uint64) []byte {
	out := make([]byte, size)
	if start >= uint64(len(data)) {
		return out
	}
	end := start + size
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[start:end])
	return out
}

// modexpQuadDivisor is EIP-198's G_QUADDIVISOR.
const modexpQuadDivisor = 20

// multComplexity is EIP-198's mult_complexity(x) piecewise polynomial over
// max(len(BASE), len(MODULUS)).
func multComplexity(x uint64) uint64 {
	switch {
	case x <= 64:
		return x * x
	case x <= 1024:
		return x*x/4 + 96*x - 3072
	default:
		return x*x/16 + 480*x - 199680
	}
}

// adjustedExpLen is EIP-198's adjusted_exponent_length: 8*(len(EXP)-32) plus
// the bit index of the highest set bit of the first 32 bytes of EXP (0 if
// EXP's relevant head is zero), for EXP longer than 32 bytes, or simply the
// highest-set-bit index of EXP itself when EXP is 32 bytes or shorter.
func adjustedExpLen(body []byte, baseLen, expLen uint64) uint64 {
	headLen := expLen
	if headLen > 32 {
		headLen = 32
	}
	head := new(big.Int).SetBytes(getData(body, baseLen, headLen))

	var msb uint64
	if bitlen := head.BitLen(); bitlen > 0 {
		msb = uint64(bitlen - 1)
	}
	adj := msb
	if expLen > 32 {
		adj += 8 * (expLen - 32)
	}
	return adj
}

func (modexpContract) requiredGas(input []byte) uint64 {
	baseLen, expLen, modLen := modexpLens(input)
	var body []byte
	if uint64(len(input)) > 96 {
		body = input[96:]
	}

	maxLen := baseLen
	if modLen > maxLen {
		maxLen = modLen
	}
	complexity := multComplexity(maxLen)

	adjExpLen := adjustedExpLen(body, baseLen, expLen)
	if adjExpLen < 1 {
		adjExpLen = 1
	}

	gas := new(big.Int).Mul(new(big.Int).SetUint64(complexity), new(big.Int).SetUint64(adjExpLen))
	gas.Div(gas, big.NewInt(modexpQuadDivisor))
	if gas.BitLen() > 64 {
		return ^uint64(0)
	}
	return gas.Uint64()
}

func (modexpContract) run(input []byte) ([]byte, error) {
	baseLen, expLen, modLen := modexpLens(input)
	in := input
	if len(in) > 96 {
		in = in[96:]
	} else {
		in = nil
	}
	in = rightPad(in, int(baseLen+expLen+modLen))

	base := new(big.Int).SetBytes(in[0:baseLen])
	exp := new(big.Int).SetBytes(in[baseLen : baseLen+expLen])
	mod := new(big.Int).SetBytes(in[baseLen+expLen : baseLen+expLen+modLen])

	out := make([]byte, modLen)
	if mod.Sign() == 0 {
		return out, nil
	}
	result := new(big.Int).Exp(base, exp, mod)
	resBytes := result.Bytes()
	copy(out[len(out)-len(resBytes):], resBytes)
	return out, nil
}
