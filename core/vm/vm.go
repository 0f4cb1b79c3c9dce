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

// Package vm implements the bytecode interpreter: the Stack/Memory/Program
// primitives, the opcode dispatch table, the Host collaborator interface,
// the transaction journal, and the Processor that drives a transaction
// end to end, built around the Stack/Memory/Program/Host/Context types
// the rest of this package defines.
package vm

import (
	"github.com/holiman/uint256"

	"github.com/ethclassic/evmcore/core/types"
)

// step advances ctx (the top of the context stack) by exactly one
// instruction. It returns (output, vmErr) to signal the frame has
// completed (STOP/RETURN/REVERT/SELFDESTRUCT/any error), or (nil, nil) to
// signal the frame should keep running. CALL/CREATE family opcodes instead
// push a child frame and also return (nil, nil): the parent resumes later
// via the child's onSuccess/onError continuation (context.go), never by
// step() returning to it directly.
func (p *Processor) step(ctx *Context) ([]byte, *VMError) {
	op := ctx.Program.At(ctx.PC)

	gas, memSize, gerr := p.gasFor(ctx, op)
	if gerr != nil {
		return nil, gerr
	}
	if memSize > ctx.Memory.Len() {
		ctx.Memory.resize(memSize)
	}
	if !ctx.useGas(gas) {
		return nil, errOutOfGas
	}

	ctx.pcChanged = false

	switch op {
	case STOP:
		return []byte{}, nil

	case JUMP:
		dest, err := ctx.Stack.pop()
		if err != nil {
			return nil, asVMErr(err)
		}
		if !dest.IsUint64() || !ctx.Program.ValidJump(dest.Uint64()) {
			return nil, errInvalidJump
		}
		ctx.PC = dest.Uint64()
		ctx.pcChanged = true
		return nil, nil

	case JUMPI:
		dest, cond, err := pop2(ctx.Stack)
		if err != nil {
			return nil, asVMErr(err)
		}
		if !cond.IsZero() {
			if !dest.IsUint64() || !ctx.Program.ValidJump(dest.Uint64()) {
				return nil, errInvalidJump
			}
			ctx.PC = dest.Uint64()
			ctx.pcChanged = true
		}
		return nil, nil

	case RETURN:
		off, size, err := pop2(ctx.Stack)
		if err != nil {
			return nil, asVMErr(err)
		}
		return readMem(ctx.Memory, &off, &size), nil

	case REVERT:
		off, size, err := pop2(ctx.Stack)
		if err != nil {
			return nil, asVMErr(err)
		}
		return readMem(ctx.Memory, &off, &size), errExecutionRevert

	case INVALID:
		return nil, errInvalidOpcode

	case SELFDESTRUCT:
		return p.opSelfdestruct(ctx)

	case CREATE:
		return nil, p.opCreate(ctx, false)

	case CREATE2:
		return nil, p.opCreate(ctx, true)

	case CALL, CALLCODE, DELEGATECALL, STATICCALL:
		return nil, p.opCall(ctx, op)
	}

	fn, ok := jumpTable[op]
	if !ok {
		return nil, errInvalidOpcode
	}
	if err := fn(p, ctx); err != nil {
		return nil, asVMErr(err)
	}
	if !ctx.pcChanged {
		ctx.PC++
	}
	return nil, nil
}

// asVMErr normalizes any error the instruction layer returns into a
// *VMError, defaulting unrecognized errors to illegal-instruction.
func asVMErr(err error) *VMError {
	if err == nil {
		return nil
	}
	if ve, ok := err.(*VMError); ok {
		return ve
	}
	return newErr(ExIllegalInstruction, err.Error())
}

func readMem(mem *Memory, off, size *uint256.Int) []byte {
	if size.IsZero() {
		return []byte{}
	}
	o, _ := asSmallUint64(off)
	sz, _ := asSmallUint64(size)
	return mem.get(o, sz)
}

// gasFor computes (constantGas + dynamicGas, requiredMemorySize) for op
// against ctx's current stack, without mutating the stack.
func (p *Processor) gasFor(ctx *Context, op OpCode) (gas uint64, memSize uint64, err *VMError) {
	base, known := baseGasTable[op]
	if !known {
		switch op {
		case STOP, JUMP, JUMPI, RETURN, REVERT, INVALID, SELFDESTRUCT, CREATE, CREATE2,
			CALL, CALLCODE, DELEGATECALL, STATICCALL:
			// handled below / have their own dynamic rule
		default:
			return 0, 0, errInvalidOpcode
		}
	}
	gas = base

	switch {
	case op == SHA3:
		off, size, e := peek2(ctx.Stack)
		if e != nil {
			return 0, 0, asVMErr(e)
		}
		sz, _ := asSmallUint64(size)
		ms, ok := memEnd(off, size)
		if !ok {
			return 0, 0, errGasUintOverflow
		}
		mg, merr := memoryExpansionGas(ctx.Memory, ms)
		if merr != nil {
			return 0, 0, errMemoryOOB
		}
		gas += mg + sha3Gas(sz)
		memSize = ms

	case op == CALLDATACOPY || op == CODECOPY || op == RETURNDATACOPY:
		dest, _, size, e := peek3(ctx.Stack)
		if e != nil {
			return 0, 0, asVMErr(e)
		}
		sz, _ := asSmallUint64(size)
		ms, ok := memEnd(dest, size)
		if !ok {
			return 0, 0, errGasUintOverflow
		}
		mg, merr := memoryExpansionGas(ctx.Memory, ms)
		if merr != nil {
			return 0, 0, errMemoryOOB
		}
		gas += mg + copyGas(sz)
		memSize = ms

	case op == EXTCODECOPY:
		_, destOff, _, size, e := peek4(ctx.Stack)
		if e != nil {
			return 0, 0, asVMErr(e)
		}
		sz, _ := asSmallUint64(size)
		ms, ok := memEnd(destOff, size)
		if !ok {
			return 0, 0, errGasUintOverflow
		}
		mg, merr := memoryExpansionGas(ctx.Memory, ms)
		if merr != nil {
			return 0, 0, errMemoryOOB
		}
		gas += mg + copyGas(sz)
		memSize = ms

	case op == MLOAD || op == MSTORE:
		off, e := ctx.Stack.peek()
		if e != nil {
			return 0, 0, asVMErr(e)
		}
		word := new(uint256.Int).SetUint64(32)
		ms, ok := memEnd(off, word)
		if !ok {
			return 0, 0, errGasUintOverflow
		}
		mg, merr := memoryExpansionGas(ctx.Memory, ms)
		if merr != nil {
			return 0, 0, errMemoryOOB
		}
		gas += mg
		memSize = ms

	case op == MSTORE8:
		off, e := ctx.Stack.peek()
		if e != nil {
			return 0, 0, asVMErr(e)
		}
		one := new(uint256.Int).SetUint64(1)
		ms, ok := memEnd(off, one)
		if !ok {
			return 0, 0, errGasUintOverflow
		}
		mg, merr := memoryExpansionGas(ctx.Memory, ms)
		if merr != nil {
			return 0, 0, errMemoryOOB
		}
		gas += mg
		memSize = ms

	case op == RETURN || op == REVERT:
		off, size, e := peek2(ctx.Stack)
		if e != nil {
			return 0, 0, asVMErr(e)
		}
		ms, ok := memEnd(off, size)
		if !ok {
			return 0, 0, errGasUintOverflow
		}
		mg, merr := memoryExpansionGas(ctx.Memory, ms)
		if merr != nil {
			return 0, 0, errMemoryOOB
		}
		gas += mg
		memSize = ms

	case op.IsLog():
		n := int(op - LOG0)
		off, size, e := peek2(ctx.Stack)
		if e != nil {
			return 0, 0, asVMErr(e)
		}
		if ctx.IsStatic {
			return 0, 0, errWriteProtection
		}
		sz, _ := asSmallUint64(size)
		ms, ok := memEnd(off, size)
		if !ok {
			return 0, 0, errGasUintOverflow
		}
		mg, merr := memoryExpansionGas(ctx.Memory, ms)
		if merr != nil {
			return 0, 0, errMemoryOOB
		}
		gas += mg + logGas(n, sz)
		memSize = ms

	case op == EXP:
		_, exponent, e := peek2(ctx.Stack)
		if e != nil {
			return 0, 0, asVMErr(e)
		}
		gas += expGas(expByteLen(exponent))

	case op == SSTORE:
		if ctx.IsStatic {
			return 0, 0, errWriteProtection
		}
		if ctx.GasLeft <= sstoreMinGas {
			return 0, 0, errOutOfGas
		}
		k, v, e := peek2(ctx.Stack)
		if e != nil {
			return 0, 0, asVMErr(e)
		}
		key := types.BytesToHash(k.Bytes32()[:])
		newVal := types.BytesToHash(v.Bytes32()[:])
		current := p.host.SLoad(ctx.Callee, key)
		original := p.tx.originalValue(ctx.Callee, key, current)
		g, refund := sstoreGasEIP2200(original, current, newVal)
		gas += g
		if refund > 0 {
			p.tx.AddRefund(uint64(refund))
		} else if refund < 0 {
			p.tx.SubRefund(uint64(-refund))
		}

	case op == SELFDESTRUCT:
		beneficiary, e := ctx.Stack.peek()
		if e != nil {
			return 0, 0, asVMErr(e)
		}
		if ctx.IsStatic {
			return 0, 0, errWriteProtection
		}
		addr := wordToAddress(beneficiary)
		if !p.host.GetAccount(addr).IsEmpty() || addr == ctx.Callee {
			gas += GasSelfdestruct
		} else {
			bal := p.host.GetAccount(ctx.Callee).Balance
			if bal != nil && !bal.IsZero() {
				gas += GasSelfdestruct + GasSelfdestructNewAccount
			} else {
				gas += GasSelfdestruct
			}
		}

	case op == CREATE || op == CREATE2:
		if ctx.IsStatic {
			return 0, 0, errWriteProtection
		}
		var off, size *uint256.Int
		var e error
		if op == CREATE {
			_, off, size, e = peek3(ctx.Stack)
		} else {
			_, off, size, _, e = peek4(ctx.Stack)
		}
		if e != nil {
			return 0, 0, asVMErr(e)
		}
		ms, ok := memEnd(off, size)
		if !ok {
			return 0, 0, errGasUintOverflow
		}
		mg, merr := memoryExpansionGas(ctx.Memory, ms)
		if merr != nil {
			return 0, 0, errMemoryOOB
		}
		gas += mg
		if op == CREATE2 {
			sz, _ := asSmallUint64(size)
			gas += GasCreate2Word * toWordSize(sz)
		}
		memSize = ms

	case op == CALL || op == CALLCODE || op == DELEGATECALL || op == STATICCALL:
		g, ms, cerr := p.callGasAndMem(ctx, op)
		if cerr != nil {
			return 0, 0, cerr
		}
		gas += g
		memSize = ms
	}

	return gas, memSize, nil
}

// peek2/peek3/peek4 read stack operands without popping, for gas/memory
// precomputation ahead of the instruction's own (popping) execution. Depth
// 0 is the current top, matching CREATE/CREATE2's (value, offset, size[,
// salt]) and the *COPY family's (dest, src, size) layouts.
func peek2(st *Stack) (*uint256.Int, *uint256.Int, error) {
	a, err := st.back(0)
	if err != nil {
		return nil, nil, err
	}
	b, err := st.back(1)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func peek3(st *Stack) (*uint256.Int, *uint256.Int, *uint256.Int, error) {
	a, err := st.back(0)
	if err != nil {
		return nil, nil, nil, err
	}
	b, err := st.back(1)
	if err != nil {
		return nil, nil, nil, err
	}
	c, err := st.back(2)
	if err != nil {
		return nil, nil, nil, err
	}
	return a, b, c, nil
}

func peek4(st *Stack) (*uint256.Int, *uint256.Int, *uint256.Int, *uint256.Int, error) {
	a, err := st.back(0)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	b, err := st.back(1)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	c, err := st.back(2)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	d, err := st.back(3)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return a, b, c, d, nil
}

// memEnd computes the word-rounded end offset for an (offset, size) memory
// access.
func memEnd(offset, size *uint256.Int) (uint64, bool) {
	return memSizeFor(offset, size)
}

// opSelfdestruct implements SELFDESTRUCT: transfers the contract's entire
// balance to beneficiary and appends the contract to the deferred
// self-destruct list (actually removed at the end of the transaction).
func (p *Processor) opSelfdestruct(ctx *Context) ([]byte, *VMError) {
	b, err := ctx.Stack.pop()
	if err != nil {
		return nil, asVMErr(err)
	}
	beneficiary := wordToAddress(&b)
	bal := p.host.GetAccount(ctx.Callee).Balance
	if bal != nil && !bal.IsZero() {
		p.host.Transfer(ctx.Callee, beneficiary, bal)
		p.tx.recordTransfer(ctx.Callee, beneficiary, bal)
	}
	if first := p.tx.recordSelfDestruct(ctx.Callee); first {
		p.tx.AddRefund(GasSelfdestructRefund)
	}
	return []byte{}, nil
}

// opCreate implements CREATE/CREATE2 by popping the init-code region (and
// salt, for CREATE2), deriving the new address, and pushing a child frame
// whose onSuccess/onError pushes the resulting address (or 0) back onto
// ctx.
func (p *Processor) opCreate(ctx *Context, isCreate2 bool) *VMError {
	var value, off, size, salt uint256.Int
	if isCreate2 {
		vals, e := popN(ctx.Stack, 4)
		if e != nil {
			return asVMErr(e)
		}
		value, off, size, salt = vals[0], vals[1], vals[2], vals[3]
	} else {
		vals, e := popN(ctx.Stack, 3)
		if e != nil {
			return asVMErr(e)
		}
		value, off, size = vals[0], vals[1], vals[2]
	}

	if ctx.Depth+1 >= MaxCallDepth {
		return p.pushFailedCreate(ctx)
	}
	senderBal := p.host.GetAccount(ctx.Callee).Balance
	if senderBal == nil || senderBal.Lt(&value) {
		return p.pushFailedCreate(ctx)
	}

	o, _ := asSmallUint64(&off)
	sz, _ := asSmallUint64(&size)
	initCode := ctx.Memory.get(o, sz)

	var newAddr types.Address
	if isCreate2 {
		saltHash := types.BytesToHash(salt.Bytes32()[:])
		newAddr = createAddress2(ctx.Callee, saltHash, initCode)
	} else {
		newAddr = createAddress(ctx.Callee, p.host.GetAccount(ctx.Callee).Nonce)
	}

	p.host.IncrementNonce(ctx.Callee)
	p.tx.recordIncrementNonce(ctx.Callee)

	// CREATE/CREATE2 are subject to the same 63/64 forwarding rule as CALL
	// (EIP-150), not a full handoff of ctx's remaining gas. This runs before
	// the collision check below, so a colliding address still costs the
	// caller this gas instead of getting it back untouched.
	childGas := callGasForward(ctx.GasLeft, ctx.GasLeft)
	ctx.GasLeft -= childGas

	existing := p.host.GetAccount(newAddr)
	if existing.Nonce > 0 || len(existing.Code) > 0 {
		return p.pushFailedCreate(ctx)
	}

	if !value.IsZero() {
		if !p.host.Transfer(ctx.Callee, newAddr, &value) {
			return p.pushFailedCreate(ctx)
		}
		p.tx.recordTransfer(ctx.Callee, newAddr, &value)
	}
	if _, collided := p.host.CreateAccount(newAddr, true); collided {
		p.host.KillStorage(newAddr)
	}
	p.tx.recordCreateAccount(newAddr)
	p.host.IncrementNonce(newAddr)
	p.tx.recordIncrementNonce(newAddr)

	child := newContext(NewProgram(initCode), nil, childGas, ctx.Callee, newAddr, &value, false, ctx.Depth+1, p.tx.Checkpoint())
	child.onSuccess = func(pp *Processor, output []byte, gasUsed uint64) {
		parent := pp.top()
		codeCost := GasCreateData * uint64(len(output))
		left := child.GasLeft
		if codeCost > left {
			pp.tx.RevertTo(pp.host, child.Checkpoint)
			_ = parent.Stack.push(new(uint256.Int))
			return
		}
		left -= codeCost
		pp.host.SetCode(newAddr, output)
		pp.tx.recordSetCode(newAddr, nil)
		parent.refundGas(left)
		_ = parent.Stack.push(addressToWord(newAddr))
	}
	child.onError = func(pp *Processor, kind ExceptionKind, output []byte, gasUsed uint64) {
		parent := pp.top()
		if !kind.ConsumesAllGas() {
			parent.refundGas(child.GasLeft)
		}
		_ = parent.Stack.push(new(uint256.Int))
	}
	ctx.PC++
	p.pushFrame(child)
	return nil
}

func (p *Processor) pushFailedCreate(ctx *Context) *VMError {
	if err := ctx.Stack.push(new(uint256.Int)); err != nil {
		return asVMErr(err)
	}
	if !ctx.pcChanged {
		ctx.PC++
	}
	return nil
}

// callGasAndMem computes the dynamic gas (value/new-account surcharges plus
// memory expansion) for a CALL-family opcode, without popping the stack.
// The 63/64 forwarding computation itself happens in opCall once the
// surcharge-inclusive cost has already been charged against ctx.
func (p *Processor) callGasAndMem(ctx *Context, op OpCode) (uint64, uint64, *VMError) {
	hasValue := op == CALL || op == CALLCODE
	idx := 1 // back(0) is the gas operand, always present
	toWord, err := ctx.Stack.back(idx)
	if err != nil {
		return 0, 0, asVMErr(err)
	}
	idx++
	value := new(uint256.Int)
	if hasValue {
		value, err = ctx.Stack.back(idx)
		if err != nil {
			return 0, 0, asVMErr(err)
		}
		idx++
	}
	argsOff, err := ctx.Stack.back(idx)
	if err != nil {
		return 0, 0, asVMErr(err)
	}
	idx++
	argsSize, err := ctx.Stack.back(idx)
	if err != nil {
		return 0, 0, asVMErr(err)
	}
	idx++
	retOff, err := ctx.Stack.back(idx)
	if err != nil {
		return 0, 0, asVMErr(err)
	}
	idx++
	retSize, err := ctx.Stack.back(idx)
	if err != nil {
		return 0, 0, asVMErr(err)
	}

	if hasValue && ctx.IsStatic && !value.IsZero() {
		return 0, 0, errWriteProtection
	}

	argsEnd, ok := memEnd(argsOff, argsSize)
	if !ok {
		return 0, 0, errGasUintOverflow
	}
	retEnd, ok := memEnd(retOff, retSize)
	if !ok {
		return 0, 0, errGasUintOverflow
	}
	memSize := argsEnd
	if retEnd > memSize {
		memSize = retEnd
	}
	mg, merr := memoryExpansionGas(ctx.Memory, memSize)
	if merr != nil {
		return 0, 0, errMemoryOOB
	}
	gas := mg

	to := wordToAddress(toWord)
	if hasValue && !value.IsZero() {
		gas += GasCallValue
		if p.host.GetAccount(to).IsEmpty() {
			gas += GasNewAccount
		}
	}

	return gas, memSize, nil
}

// opCall implements CALL/CALLCODE/DELEGATECALL/STATICCALL: pops the call's
// arguments, resolves the 63/64 gas-forwarding allowance, and either runs a
// precompile synchronously or pushes a child frame.
func (p *Processor) opCall(ctx *Context, op OpCode) *VMError {
	hasValue := op == CALL || op == CALLCODE
	gasWord, err := ctx.Stack.pop()
	if err != nil {
		return asVMErr(err)
	}
	toWord, err := ctx.Stack.pop()
	if err != nil {
		return asVMErr(err)
	}
	var value uint256.Int
	if hasValue {
		v, e := ctx.Stack.pop()
		if e != nil {
			return asVMErr(e)
		}
		value = v
	}
	argsOff, err := ctx.Stack.pop()
	if err != nil {
		return asVMErr(err)
	}
	argsSize, err := ctx.Stack.pop()
	if err != nil {
		return asVMErr(err)
	}
	retOff, err := ctx.Stack.pop()
	if err != nil {
		return asVMErr(err)
	}
	retSize, err := ctx.Stack.pop()
	if err != nil {
		return asVMErr(err)
	}

	to := wordToAddress(&toWord)
	ao, _ := asSmallUint64(&argsOff)
	asz, _ := asSmallUint64(&argsSize)
	input := ctx.Memory.get(ao, asz)

	requested, _ := asSmallUint64(&gasWord)
	callGas := callGasForward(ctx.GasLeft, requested)
	stipend := uint64(0)
	if hasValue && !value.IsZero() {
		stipend = GasCallStipend
	}

	if ctx.Depth+1 >= MaxCallDepth {
		return p.pushBool(ctx, false)
	}
	if hasValue && !value.IsZero() {
		bal := p.host.GetAccount(ctx.Callee).Balance
		if bal == nil || bal.Lt(&value) {
			return p.pushBool(ctx, false)
		}
	}

	if addr, ok := precompileAt(to); ok {
		if hasValue && !value.IsZero() {
			if !p.host.Transfer(ctx.Callee, addr, &value) {
				return p.pushBool(ctx, false)
			}
			p.tx.recordTransfer(ctx.Callee, addr, &value)
		}
		ctx.useGas(callGas)
		out, left, perr := runPrecompiled(addr, input, callGas+stipend)
		ctx.refundGas(left)
		writeReturnData(ctx, &retOff, &retSize, out)
		ctx.LastReturnData = out
		if perr != nil {
			return p.pushBool(ctx, false)
		}
		return p.pushBool(ctx, true)
	}

	ctx.useGas(callGas)

	var callerForChild, calleeForChild types.Address
	var valueForChild *uint256.Int
	var isStatic bool
	switch op {
	case CALL:
		callerForChild, calleeForChild = ctx.Callee, to
		valueForChild = &value
		isStatic = ctx.IsStatic
	case CALLCODE:
		callerForChild, calleeForChild = ctx.Callee, ctx.Callee
		valueForChild = &value
		isStatic = ctx.IsStatic
	case DELEGATECALL:
		callerForChild, calleeForChild = ctx.Caller, ctx.Callee
		valueForChild = ctx.CallValue
		isStatic = ctx.IsStatic
	case STATICCALL:
		callerForChild, calleeForChild = ctx.Callee, to
		valueForChild = new(uint256.Int)
		isStatic = true
	}

	// CALLCODE also charges the value surcharge and stipend above, but its
	// value never actually moves: the callee code runs against the caller's
	// own balance, so the transfer is caller-to-caller and a no-op.
	if op == CALL && !value.IsZero() {
		if !p.host.Transfer(ctx.Callee, to, &value) {
			ctx.refundGas(callGas)
			return p.pushBool(ctx, false)
		}
		p.tx.recordTransfer(ctx.Callee, to, &value)
	}

	acc := p.host.GetAccount(to)
	child := newContext(NewProgram(acc.Code), input, callGas+stipend, callerForChild, calleeForChild, valueForChild, isStatic, ctx.Depth+1, p.tx.Checkpoint())
	child.onSuccess = func(pp *Processor, output []byte, gasUsed uint64) {
		parent := pp.top()
		parent.refundGas(child.GasLeft)
		writeReturnData(parent, &retOff, &retSize, output)
		_ = parent.Stack.push(boolWord(true))
	}
	child.onError = func(pp *Processor, kind ExceptionKind, output []byte, gasUsed uint64) {
		parent := pp.top()
		if !kind.ConsumesAllGas() {
			parent.refundGas(child.GasLeft)
		}
		writeReturnData(parent, &retOff, &retSize, output)
		_ = parent.Stack.push(boolWord(false))
	}
	ctx.PC++
	p.pushFrame(child)
	return nil
}

func boolWord(b bool) *uint256.Int {
	w := new(uint256.Int)
	if b {
		w.SetOne()
	}
	return w
}

func (p *Processor) pushBool(ctx *Context, ok bool) *VMError {
	if err := ctx.Stack.push(boolWord(ok)); err != nil {
		return asVMErr(err)
	}
	if !ctx.pcChanged {
		ctx.PC++
	}
	return nil
}

func writeReturnData(ctx *Context, retOff, retSize *uint256.Int, output []byte) {
	if retSize.IsZero() {
		return
	}
	o, _ := asSmallUint64(retOff)
	sz, _ := asSmallUint64(retSize)
	if sz > uint64(len(output)) {
		sz = uint64(len(output))
	}
	if sz == 0 {
		return
	}
	ctx.Memory.set(o, output[:sz])
}
