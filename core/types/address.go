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

// Package types holds the transaction envelope, receipt, log, and address
// types shared between the interpreter (core/vm) and its Host
// implementations (core/state).
package types

import (
	"encoding/hex"
	"fmt"
)

// AddressLength is the size in bytes of an Ethereum account address.
const AddressLength = 20

// Address is a 160-bit account identifier.
type Address [AddressLength]byte

// BytesToAddress returns Address with value b.
// If b is larger than AddressLength, b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// HexToAddress returns Address with value from hex string s (with or
// without the 0x prefix).
func HexToAddress(s string) Address {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, _ := hex.DecodeString(s)
	return BytesToAddress(b)
}

// IsZero reports whether a is the all-zero address.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Bytes returns a copy of a's underlying bytes.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressLength)
	copy(out, a[:])
	return out
}

// Hex returns the 0x-prefixed hex encoding of a.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return a.Hex()
}

// Hash is a 256-bit value, used for storage keys/values and log topics.
type Hash [32]byte

// BytesToHash returns Hash with value b, left-padded or cropped as needed.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > len(h) {
		b = b[len(b)-len(h):]
	}
	copy(h[len(h)-len(b):], b)
	return h
}

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Bytes returns a copy of h's underlying bytes.
func (h Hash) Bytes() []byte {
	out := make([]byte, len(h))
	copy(out, h[:])
	return out
}

// Hex returns the 0x-prefixed hex encoding of h.
func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}

// GoStringer-ish helper used by error messages.
func errInvalidLength(what string, want, got int) error {
	return fmt.Errorf("invalid %s length: want %d, got %d", what, want, got)
}
