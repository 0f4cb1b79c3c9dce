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
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for the 0x03 precompile's exact digest

	"github.com/ethclassic/evmcore/core/types"
)

// precompiledContract is the uniform shape of the nine fixed-address
// precompiles: a RequiredGas/Run split backed by concrete cryptography
// libraries rather than reimplemented primitives.
type precompiledContract interface {
	requiredGas(input []byte) uint64
	run(input []byte) ([]byte, error)
}

var precompiles = map[types.Address]precompiledContract{
	precompileAddr(1): ecrecoverContract{},
	precompileAddr(2): sha256Contract{},
	precompileAddr(3): ripemd160Contract{},
	precompileAddr(4): identityContract{},
	precompileAddr(5): modexpContract{},
	precompileAddr(6): bn256AddContract{},
	precompileAddr(7): bn256MulContract{},
	precompileAddr(8): bn256PairingContract{},
	precompileAddr(9): blake2FContract{},
}

func precompileAddr(n byte) types.Address {
	var a types.Address
	a[19] = n
	return a
}

// precompileAt reports whether addr names one of the nine fixed-address
// precompiles.
func precompileAt(addr types.Address) (types.Address, bool) {
	_, ok := precompiles[addr]
	return addr, ok
}

// runPrecompiled charges requiredGas(input) against gas and runs the
// precompile: a precompile either succeeds and returns its
// output plus leftover gas, or fails (bad input / insufficient gas) and
// consumes the entire allotment, same as any other exceptional halt.
func runPrecompiled(addr types.Address, input []byte, gas uint64) ([]byte, uint64, *VMError) {
	contract := precompiles[addr]
	cost := contract.requiredGas(input)
	if cost > gas {
		return nil, 0, newErr(ExOutOfGas, "precompile out of gas")
	}
	out, err := contract.run(input)
	if err != nil {
		return nil, 0, newErr(ExOutOfGas, err.Error())
	}
	return out, gas - cost, nil
}

// identityContract (0x04): returns input unchanged.
type identityContract struct{}

func (identityContract) requiredGas(input []byte) uint64 {
	return 15 + 3*toWordSize(uint64(len(input)))
}

func (identityContract) run(input []byte) ([]byte, error) {
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}

// sha256Contract (0x02): stdlib crypto/sha256 — every retrieved precompile
// set (geth, coreth, classic) calls the standard library digest here rather
// than a third-party implementation; see DESIGN.md.
type sha256Contract struct{}

func (sha256Contract) requiredGas(input []byte) uint64 {
	return 60 + 12*toWordSize(uint64(len(input)))
}

func (sha256Contract) run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

// ripemd160Contract (0x03): golang.org/x/crypto/ripemd160, left-padded to a
// 32-byte word as the yellow paper requires.
type ripemd160Contract struct{}

func (ripemd160Contract) requiredGas(input []byte) uint64 {
	return 600 + 120*toWordSize(uint64(len(input)))
}

func (ripemd160Contract) run(input []byte) ([]byte, error) {
	h := ripemd160.New()
	h.Write(input)
	sum := h.Sum(nil)
	out := make([]byte, 32)
	copy(out[32-len(sum):], sum)
	return out, nil
}
