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

import "errors"

// ExceptionKind classifies why a frame's execution stopped abnormally,
// as a typed error the Processor can branch on rather than a handful of
// independent sentinel error values.
type ExceptionKind int

const (
	// ExNone marks a VMError zero value; never actually raised.
	ExNone ExceptionKind = iota
	// ExOutOfBounds covers bad memory/stack/return-data bounds.
	ExOutOfBounds
	// ExOutOfGas is raised whenever a cost exceeds gas_left.
	ExOutOfGas
	// ExOverflow covers length-arithmetic overflow (e.g. offset+size > 2^32).
	ExOverflow
	// ExStaticStateChange is raised by a mutating op under is_static.
	ExStaticStateChange
	// ExIllegalInstruction covers invalid jump targets, undefined opcodes,
	// and the INVALID opcode.
	ExIllegalInstruction
	// ExNotImplemented covers an unreachable precompile dispatch.
	ExNotImplemented
	// ExRevert is raised by the REVERT opcode; uniquely, it preserves the
	// frame's remaining gas instead of consuming it.
	ExRevert
)

func (k ExceptionKind) String() string {
	switch k {
	case ExOutOfBounds:
		return "OOB"
	case ExOutOfGas:
		return "outOfGas"
	case ExOverflow:
		return "overflow"
	case ExStaticStateChange:
		return "staticStateChange"
	case ExIllegalInstruction:
		return "illegalInstruction"
	case ExNotImplemented:
		return "notImplemented"
	case ExRevert:
		return "revert"
	default:
		return "none"
	}
}

// ConsumesAllGas reports whether this exception kind consumes the whole
// frame's remaining gas (every kind except ExRevert).
func (k ExceptionKind) ConsumesAllGas() bool {
	return k != ExRevert && k != ExNone
}

// VMError is the error type raised by every interpreter fault. It always
// carries a kind so callers can branch without string matching.
type VMError struct {
	Kind ExceptionKind
	Msg  string
}

func (e *VMError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

func newErr(kind ExceptionKind, msg string) *VMError {
	return &VMError{Kind: kind, Msg: msg}
}

var (
	errStackOverflow   = newErr(ExOutOfBounds, "stack overflow")
	errStackUnderflow  = newErr(ExOutOfBounds, "stack underflow")
	errMemoryOOB       = newErr(ExOutOfBounds, "memory out of bounds")
	errReturnDataOOB   = newErr(ExOutOfBounds, "return data out of bounds")
	errOutOfGas        = newErr(ExOutOfGas, "out of gas")
	errGasUintOverflow = newErr(ExOverflow, "gas uint64 overflow")
	errWriteProtection = newErr(ExStaticStateChange, "write protection")
	errInvalidJump     = newErr(ExIllegalInstruction, "invalid jump destination")
	errInvalidOpcode   = newErr(ExIllegalInstruction, "invalid opcode")
	errExecutionRevert = newErr(ExRevert, "execution reverted")
	errDepth           = errors.New("max call depth exceeded")
	errInsufficientBalance = errors.New("insufficient balance for transfer")
)
