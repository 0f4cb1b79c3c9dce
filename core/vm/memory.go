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

import "github.com/holiman/uint256"

// maxMemory is the 32 MiB resident cap on a single frame's memory.
const maxMemory = 32 * 1024 * 1024

// Memory is a byte-addressable buffer that only grows, always in whole
// 32-byte words.
type Memory struct {
	store []byte
}

func newMemory() *Memory {
	return &Memory{}
}

// Len returns the current length in bytes (a multiple of 32 when every
// resize comes from memSizeFor, as the dispatcher's do).
func (m *Memory) Len() uint64 { return uint64(len(m.store)) }

// Data returns the underlying buffer. Callers must not retain it past the
// next mutation.
func (m *Memory) Data() []byte { return m.store }

// memSizeFor computes the word-rounded end offset for an (offset, size)
// access and reports whether offset+size overflows a practical bound.
// size == 0 is always a no-op (returns 0, no overflow).
func memSizeFor(offset, size *uint256.Int) (end uint64, ok bool) {
	if size.IsZero() {
		return 0, true
	}
	// offset+size > 2^32 fails with overflow.
	if !offset.IsUint64() || !size.IsUint64() {
		return 0, false
	}
	o, s := offset.Uint64(), size.Uint64()
	if o > (1<<32) || s > (1<<32) || o+s > (1<<32) {
		return 0, false
	}
	sum := o + s
	end = toWordSize(sum) * 32
	return end, true
}

// resize grows the buffer to newSize bytes (a multiple of 32), zero-filling
// the new region. Caller must have already charged expansion gas.
func (m *Memory) resize(newSize uint64) {
	if newSize <= uint64(len(m.store)) {
		return
	}
	grown := make([]byte, newSize)
	copy(grown, m.store)
	m.store = grown
}

// set writes b into the buffer at offset. Caller must have ensured the
// buffer is already large enough.
func (m *Memory) set(offset uint64, b []byte) {
	copy(m.store[offset:], b)
}

// setWord32 writes a 32-byte big-endian word at offset.
func (m *Memory) setWord32(offset uint64, v *uint256.Int) {
	b := v.Bytes32()
	copy(m.store[offset:offset+32], b[:])
}

// setByte writes a single byte at offset.
func (m *Memory) setByte(offset uint64, b byte) {
	m.store[offset] = b
}

// get returns a copy of size bytes starting at offset. Caller must have
// already ensured the region is within bounds.
func (m *Memory) get(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	out := make([]byte, size)
	copy(out, m.store[offset:offset+size])
	return out
}

// getWord32 reads a single 32-byte word at offset.
func (m *Memory) getWord32(offset uint64) *uint256.Int {
	var v uint256.Int
	v.SetBytes(m.store[offset : offset+32])
	return &v
}
