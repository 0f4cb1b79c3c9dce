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

import "github.com/ethclassic/evmcore/core/types"

// memoryGasCost returns cost(words) = 3*words + floor(words^2/512), the
// quadratic memory-expansion formula.
func memoryGasCost(words uint64) uint64 {
	linear := GasMemoryWord * words
	quad := (words * words) / GasMemoryQuadDivisor
	return linear + quad
}

// memoryExpansionGas charges for growing memory to newSize bytes (already
// word-rounded), returning the incremental cost over the memory's current
// size. Returns an error if the result would exceed the 32 MiB cap.
func memoryExpansionGas(mem *Memory, newSize uint64) (uint64, error) {
	if newSize <= mem.Len() {
		return 0, nil
	}
	if newSize > maxMemory {
		return 0, errMemoryOOB
	}
	curWords := toWordSize(mem.Len())
	newWords := toWordSize(newSize)
	return memoryGasCost(newWords) - memoryGasCost(curWords), nil
}

// copyGas charges 3 gas per whole word copied (CALLDATACOPY, CODECOPY,
// EXTCODECOPY, RETURNDATACOPY).
func copyGas(size uint64) uint64 {
	return GasCopy * toWordSize(size)
}

// sha3Gas computes 30 + 6*ceil(size/32).
func sha3Gas(size uint64) uint64 {
	return GasSha3 + GasSha3Word*toWordSize(size)
}

// expGas computes 50*byte_len(exponent), the dynamic part of EXP's
// 10 + 50*byte_len(exponent) cost. The 10 base is already charged via baseGasTable[EXP] (GasSlowStep); this
// returns only the dynamic exponent-byte-length addition.
func expGas(exponentByteLen uint64) uint64 {
	return GasExpByte * exponentByteLen
}

// logGas computes 375*(n+1) + 8*size.
func logGas(n int, size uint64) uint64 {
	return GasLog*uint64(n+1) + GasLogData*size
}

// sstoreGasEIP2200 implements the EIP-2200 SSTORE rule.
// original/current/newVal are the O/C/N values the rule is defined over.
// Returns the gas to charge and the (signed, via add/sub on the refund
// counter) refund delta to apply, keyed by an explicit original-value
// snapshot per (address, key) rather than by storage location alone.
func sstoreGasEIP2200(original, current, newVal types.Hash) (gas uint64, refundAdd int64) {
	if current == newVal {
		return 800, 0
	}
	zero := types.Hash{}
	if original == current {
		if original == zero {
			return 20000, 0
		}
		if newVal == zero {
			return 5000, 15000
		}
		return 5000, 0
	}
	// original != current: the slot is already dirty this transaction.
	refundAdd = 0
	if original != zero {
		if current == zero {
			refundAdd -= 15000
		}
		if newVal == zero {
			refundAdd += 15000
		}
	}
	if original == newVal {
		if original == zero {
			refundAdd += 20000 - 800
		} else {
			refundAdd += 5000 - 800
		}
	}
	return 800, refundAdd
}

// sstoreMinGas is the minimum gas_left required before an SSTORE may even
// be attempted.
const sstoreMinGas = 2300

// callGasForward implements the "63/64" forwarding rule: min(requested,
// gasLeft - floor(gasLeft/64)).
func callGasForward(gasLeft, requested uint64) uint64 {
	allowance := gasLeft - gasLeft/64
	if requested > allowance {
		return allowance
	}
	return requested
}
