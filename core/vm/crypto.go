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
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// keccak256 is the sole hash primitive the interpreter needs (SHA3 opcode,
// CREATE/CREATE2 address derivation, code hashing). Thin wrapper kept so the
// rest of core/vm never imports go-ethereum/crypto directly.
func keccak256(data []byte) []byte {
	return crypto.Keccak256(data)
}

// rlpEncodeList encodes items as an RLP list, used only for CREATE address
// derivation (rlp([sender, nonce])).
func rlpEncodeList(items ...interface{}) ([]byte, error) {
	return rlp.EncodeToBytes(items)
}
