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

// onSuccess is invoked against the *parent* context (already restored to the
// top of the processor's context stack) when a child frame returns
// normally. output is the child's RETURN/STOP data, gasUsed is the gas the
// child frame consumed.
type onSuccessFn func(p *Processor, output []byte, gasUsed uint64)

// onErrorFn is invoked against the parent context when a child frame fails.
// For ExRevert, output carries the REVERT data; the callback itself returns
// the child's *unused* gas to the parent (only its consumed gas is charged).
type onErrorFn func(p *Processor, kind ExceptionKind, output []byte, gasUsed uint64)

// Context is one activation of the interpreter, corresponding to one call
// or create. Nested calls don't recurse through re-entrant stack frames:
// a context stack owned by the Processor plus two function-object slots
// per context handle the parent/child handoff instead.
type Context struct {
	PC        uint64
	pcChanged bool

	Memory *Memory
	Stack  *Stack

	GasLimit uint64
	GasLeft  uint64

	IsStatic  bool
	CallValue *uint256.Int
	Input     []byte

	LastReturnData []byte

	Program *Program

	Checkpoint int

	Caller types.Address
	Callee types.Address

	Depth int

	onSuccess onSuccessFn
	onError   onErrorFn
}

// newContext constructs a fresh frame. gasLimit becomes both GasLimit and
// GasLeft (nothing has been charged yet).
func newContext(program *Program, input []byte, gasLimit uint64, caller, callee types.Address, callValue *uint256.Int, isStatic bool, depth int, checkpoint int) *Context {
	return &Context{
		Memory:     newMemory(),
		Stack:      newStack(),
		GasLimit:   gasLimit,
		GasLeft:    gasLimit,
		IsStatic:   isStatic,
		CallValue:  callValue,
		Input:      input,
		Program:    program,
		Checkpoint: checkpoint,
		Caller:     caller,
		Callee:     callee,
		Depth:      depth,
	}
}

// useGas attempts to charge cost against GasLeft. Returns false (and leaves
// GasLeft untouched) if cost exceeds what's available.
func (c *Context) useGas(cost uint64) bool {
	if cost > c.GasLeft {
		return false
	}
	c.GasLeft -= cost
	return true
}

// refundGas returns gas to the frame (used by the CALL stipend bookkeeping
// and by sub-call gas refunds).
func (c *Context) refundGas(amount uint64) {
	c.GasLeft += amount
}

// gasUsed reports how much of GasLimit has been consumed so far.
func (c *Context) gasUsed() uint64 {
	return c.GasLimit - c.GasLeft
}
