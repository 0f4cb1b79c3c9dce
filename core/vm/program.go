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

// Program is an immutable code vector plus its precomputed set of valid
// JUMPDEST offsets, computed once at construction rather than cached by
// code hash, since evmcore builds one Program per call/create rather than
// sharing a cache across calls.
type Program struct {
	Code      []byte
	jumpdests map[uint64]struct{}
}

// NewProgram scans code once, recording every JUMPDEST (0x5b) offset that is
// not inside a PUSH immediate.
func NewProgram(code []byte) *Program {
	p := &Program{Code: code, jumpdests: make(map[uint64]struct{})}
	for i := uint64(0); i < uint64(len(code)); {
		op := OpCode(code[i])
		if op == JUMPDEST {
			p.jumpdests[i] = struct{}{}
			i++
			continue
		}
		if op.IsPush() {
			i += 1 + uint64(op.PushBytes())
			continue
		}
		i++
	}
	return p
}

// ValidJump reports whether dest is a valid JUMP/JUMPI target: within code
// bounds and recorded as a JUMPDEST.
func (p *Program) ValidJump(dest uint64) bool {
	if dest >= uint64(len(p.Code)) {
		return false
	}
	_, ok := p.jumpdests[dest]
	return ok
}

// At returns the opcode at pc, or STOP if pc is past the end of code
// (code falls through to an implicit STOP once it runs out).
func (p *Program) At(pc uint64) OpCode {
	if pc >= uint64(len(p.Code)) {
		return STOP
	}
	return OpCode(p.Code[pc])
}

// PushData returns up to n bytes of immediate data starting at pc+1,
// zero-padded if code ends early.
func (p *Program) PushData(pc uint64, n int) []byte {
	start := pc + 1
	out := make([]byte, n)
	if start >= uint64(len(p.Code)) {
		return out
	}
	end := start + uint64(n)
	if end > uint64(len(p.Code)) {
		end = uint64(len(p.Code))
	}
	copy(out, p.Code[start:end])
	return out
}
