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
	"github.com/holiman/uint256"

	"github.com/ethclassic/evmcore/core/types"
)

// instrFn is a simple opcode handler: stack/memory effect only. Gas has
// already been charged and memory already resized by the dispatcher (vm.go)
// before the handler runs. Control-flow opcodes (JUMP, JUMPI, STOP, RETURN,
// REVERT, CALL/CREATE family, SELFDESTRUCT) are handled directly in the
// dispatcher's step() instead of through this table, since they mutate the
// processor's context stack rather than just one frame — matching the
// teacher's own split between generic `instruction{fn}` entries and the
// special-cased switch in vm.go's Run loop.
type instrFn func(pv *Processor, ctx *Context) error

func popN(st *Stack, n int) ([]uint256.Int, error) {
	out := make([]uint256.Int, n)
	for i := 0; i < n; i++ {
		v, err := st.pop()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// --- Arithmetic (0x01-0x0b) ---

func opAdd(pv *Processor, ctx *Context) error {
	x, y, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.Add(&x, &y)
	return ctx.Stack.push(&r)
}

// pop2 pops two elements and returns them as (x, y) where x is the element
// that was on top of the stack, matching the EVM convention that e.g. SUB
// computes x-y, DIV computes x/y, and LT tests x<y.
func pop2(st *Stack) (uint256.Int, uint256.Int, error) {
	x, err := st.pop()
	if err != nil {
		return uint256.Int{}, uint256.Int{}, err
	}
	y, err := st.pop()
	if err != nil {
		return uint256.Int{}, uint256.Int{}, err
	}
	return x, y, nil
}

func opMul(pv *Processor, ctx *Context) error {
	x, y, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.Mul(&x, &y)
	return ctx.Stack.push(&r)
}

func opSub(pv *Processor, ctx *Context) error {
	x, y, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.Sub(&x, &y)
	return ctx.Stack.push(&r)
}

func opDiv(pv *Processor, ctx *Context) error {
	x, y, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.Div(&x, &y) // uint256.Div already returns 0 for y==0
	return ctx.Stack.push(&r)
}

func opSdiv(pv *Processor, ctx *Context) error {
	x, y, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.SDiv(&x, &y) // uint256.SDiv handles y==0 => 0 and minInt/-1 => minInt
	return ctx.Stack.push(&r)
}

func opMod(pv *Processor, ctx *Context) error {
	x, y, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.Mod(&x, &y)
	return ctx.Stack.push(&r)
}

func opSmod(pv *Processor, ctx *Context) error {
	x, y, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.SMod(&x, &y)
	return ctx.Stack.push(&r)
}

func opAddmod(pv *Processor, ctx *Context) error {
	vals, err := popN(ctx.Stack, 3)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.AddMod(&vals[0], &vals[1], &vals[2])
	return ctx.Stack.push(&r)
}

func opMulmod(pv *Processor, ctx *Context) error {
	vals, err := popN(ctx.Stack, 3)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.MulMod(&vals[0], &vals[1], &vals[2])
	return ctx.Stack.push(&r)
}

func opExp(pv *Processor, ctx *Context) error {
	base, exponent, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.Exp(&base, &exponent)
	return ctx.Stack.push(&r)
}

func opSignextend(pv *Processor, ctx *Context) error {
	back, num, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	r := signExtend(&back, &num)
	return ctx.Stack.push(r)
}

// --- Comparison / bitwise (0x10-0x1d) ---

func cmpOp(ctx *Context, cmp func(x, y *uint256.Int) bool) error {
	x, y, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	if cmp(&x, &y) {
		r.SetOne()
	}
	return ctx.Stack.push(&r)
}

func opLt(pv *Processor, ctx *Context) error {
	return cmpOp(ctx, func(x, y *uint256.Int) bool { return x.Lt(y) })
}
func opGt(pv *Processor, ctx *Context) error {
	return cmpOp(ctx, func(x, y *uint256.Int) bool { return x.Gt(y) })
}
func opSlt(pv *Processor, ctx *Context) error {
	return cmpOp(ctx, func(x, y *uint256.Int) bool { return x.Slt(y) })
}
func opSgt(pv *Processor, ctx *Context) error {
	return cmpOp(ctx, func(x, y *uint256.Int) bool { return x.Sgt(y) })
}
func opEq(pv *Processor, ctx *Context) error {
	return cmpOp(ctx, func(x, y *uint256.Int) bool { return x.Eq(y) })
}

func opIszero(pv *Processor, ctx *Context) error {
	x, err := ctx.Stack.pop()
	if err != nil {
		return err
	}
	var r uint256.Int
	if x.IsZero() {
		r.SetOne()
	}
	return ctx.Stack.push(&r)
}

func opAnd(pv *Processor, ctx *Context) error {
	x, y, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.And(&x, &y)
	return ctx.Stack.push(&r)
}

func opOr(pv *Processor, ctx *Context) error {
	x, y, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.Or(&x, &y)
	return ctx.Stack.push(&r)
}

func opXor(pv *Processor, ctx *Context) error {
	x, y, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	r.Xor(&x, &y)
	return ctx.Stack.push(&r)
}

func opNot(pv *Processor, ctx *Context) error {
	x, err := ctx.Stack.pop()
	if err != nil {
		return err
	}
	var r uint256.Int
	r.Not(&x)
	return ctx.Stack.push(&r)
}

func opByte(pv *Processor, ctx *Context) error {
	n, x, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	r := byteAt(&n, &x)
	return ctx.Stack.push(r)
}

func opShl(pv *Processor, ctx *Context) error {
	shift, value, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	if shift.LtUint64(256) {
		r.Lsh(&value, uint(shift.Uint64()))
	}
	return ctx.Stack.push(&r)
}

func opShr(pv *Processor, ctx *Context) error {
	shift, value, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	var r uint256.Int
	if shift.LtUint64(256) {
		r.Rsh(&value, uint(shift.Uint64()))
	}
	return ctx.Stack.push(&r)
}

func opSar(pv *Processor, ctx *Context) error {
	shift, value, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	r := new(uint256.Int)
	if shift.GtUint64(255) {
		if value.Sign() >= 0 {
			return ctx.Stack.push(r)
		}
		r.SetAllOne()
		return ctx.Stack.push(r)
	}
	n := uint(shift.Uint64())
	r.SRsh(&value, n)
	return ctx.Stack.push(r)
}

// --- Environment (0x30-0x47) ---

func opAddress(pv *Processor, ctx *Context) error {
	return ctx.Stack.push(addressToWord(ctx.Callee))
}

func opBalance(pv *Processor, ctx *Context) error {
	a, err := ctx.Stack.pop()
	if err != nil {
		return err
	}
	addr := wordToAddress(&a)
	bal := pv.host.GetAccount(addr).Balance
	if bal == nil {
		bal = new(uint256.Int)
	}
	return ctx.Stack.push(bal)
}

func opOrigin(pv *Processor, ctx *Context) error {
	return ctx.Stack.push(addressToWord(pv.origin))
}

func opCaller(pv *Processor, ctx *Context) error {
	return ctx.Stack.push(addressToWord(ctx.Caller))
}

func opCallvalue(pv *Processor, ctx *Context) error {
	return ctx.Stack.push(ctx.CallValue)
}

func opCalldataload(pv *Processor, ctx *Context) error {
	off, err := ctx.Stack.pop()
	if err != nil {
		return err
	}
	buf := make([]byte, 32)
	if off.IsUint64() {
		o := off.Uint64()
		if o < uint64(len(ctx.Input)) {
			copy(buf, ctx.Input[o:])
		}
	}
	var r uint256.Int
	r.SetBytes(buf)
	return ctx.Stack.push(&r)
}

func opCalldatasize(pv *Processor, ctx *Context) error {
	var r uint256.Int
	r.SetUint64(uint64(len(ctx.Input)))
	return ctx.Stack.push(&r)
}

func boundedSlice(data []byte, offset, size uint64) []byte {
	out := make([]byte, size)
	if offset >= uint64(len(data)) {
		return out
	}
	end := offset + size
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[offset:end])
	return out
}

func opCalldatacopy(pv *Processor, ctx *Context) error {
	vals, err := popN(ctx.Stack, 3)
	if err != nil {
		return err
	}
	destOff, srcOff, size := vals[0], vals[1], vals[2]
	if size.IsZero() {
		return nil
	}
	d, _ := asSmallUint64(&destOff)
	s, _ := asSmallUint64(&srcOff)
	sz, _ := asSmallUint64(&size)
	ctx.Memory.set(d, boundedSlice(ctx.Input, s, sz))
	return nil
}

func asSmallUint64(v *uint256.Int) (uint64, bool) {
	if !v.IsUint64() {
		return 0, false
	}
	return v.Uint64(), true
}

func opCodesize(pv *Processor, ctx *Context) error {
	var r uint256.Int
	r.SetUint64(uint64(len(ctx.Program.Code)))
	return ctx.Stack.push(&r)
}

func opCodecopy(pv *Processor, ctx *Context) error {
	vals, err := popN(ctx.Stack, 3)
	if err != nil {
		return err
	}
	destOff, srcOff, size := vals[0], vals[1], vals[2]
	if size.IsZero() {
		return nil
	}
	d, _ := asSmallUint64(&destOff)
	s, _ := asSmallUint64(&srcOff)
	sz, _ := asSmallUint64(&size)
	ctx.Memory.set(d, boundedSlice(ctx.Program.Code, s, sz))
	return nil
}

func opGasprice(pv *Processor, ctx *Context) error {
	var r uint256.Int
	if pv.gasPrice != nil {
		r.Set(pv.gasPrice)
	}
	return ctx.Stack.push(&r)
}

func opExtcodesize(pv *Processor, ctx *Context) error {
	a, err := ctx.Stack.pop()
	if err != nil {
		return err
	}
	addr := wordToAddress(&a)
	var r uint256.Int
	r.SetUint64(uint64(len(pv.host.GetAccount(addr).Code)))
	return ctx.Stack.push(&r)
}

func opExtcodecopy(pv *Processor, ctx *Context) error {
	a, err := ctx.Stack.pop()
	if err != nil {
		return err
	}
	vals, err := popN(ctx.Stack, 3)
	if err != nil {
		return err
	}
	addr := wordToAddress(&a)
	destOff, srcOff, size := vals[0], vals[1], vals[2]
	if size.IsZero() {
		return nil
	}
	code := pv.host.GetAccount(addr).Code
	d, _ := asSmallUint64(&destOff)
	s, _ := asSmallUint64(&srcOff)
	sz, _ := asSmallUint64(&size)
	ctx.Memory.set(d, boundedSlice(code, s, sz))
	return nil
}

func opReturndatasize(pv *Processor, ctx *Context) error {
	var r uint256.Int
	r.SetUint64(uint64(len(ctx.LastReturnData)))
	return ctx.Stack.push(&r)
}

func opReturndatacopy(pv *Processor, ctx *Context) error {
	vals, err := popN(ctx.Stack, 3)
	if err != nil {
		return err
	}
	destOff, srcOff, size := vals[0], vals[1], vals[2]
	sz, _ := asSmallUint64(&size)
	s, _ := asSmallUint64(&srcOff)
	if s+sz > uint64(len(ctx.LastReturnData)) || !srcOff.IsUint64() {
		return errReturnDataOOB
	}
	if size.IsZero() {
		return nil
	}
	d, _ := asSmallUint64(&destOff)
	ctx.Memory.set(d, ctx.LastReturnData[s:s+sz])
	return nil
}

func opExtcodehash(pv *Processor, ctx *Context) error {
	a, err := ctx.Stack.pop()
	if err != nil {
		return err
	}
	addr := wordToAddress(&a)
	acc := pv.host.GetAccount(addr)
	var r uint256.Int
	if !acc.IsEmpty() {
		r.SetBytes(pv.host.CodeHash(addr).Bytes())
	}
	return ctx.Stack.push(&r)
}

func opBlockhash(pv *Processor, ctx *Context) error {
	n, err := ctx.Stack.pop()
	if err != nil {
		return err
	}
	var r uint256.Int
	if n.IsUint64() {
		h := pv.host.BlockHash(n.Uint64())
		r.SetBytes(h.Bytes())
	}
	return ctx.Stack.push(&r)
}

func opCoinbase(pv *Processor, ctx *Context) error {
	return ctx.Stack.push(addressToWord(pv.block.Coinbase))
}
func opTimestamp(pv *Processor, ctx *Context) error  { return ctx.Stack.push(pv.block.Timestamp) }
func opNumber(pv *Processor, ctx *Context) error     { return ctx.Stack.push(pv.block.Number) }
func opDifficulty(pv *Processor, ctx *Context) error { return ctx.Stack.push(pv.block.Difficulty) }
func opGaslimit(pv *Processor, ctx *Context) error   { return ctx.Stack.push(pv.block.GasLimit) }
func opChainid(pv *Processor, ctx *Context) error    { return ctx.Stack.push(pv.block.ChainID) }

func opSelfbalance(pv *Processor, ctx *Context) error {
	bal := pv.host.GetAccount(ctx.Callee).Balance
	if bal == nil {
		bal = new(uint256.Int)
	}
	return ctx.Stack.push(bal)
}

// --- SHA3 ---

func opSha3(pv *Processor, ctx *Context) error {
	off, size, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	if size.IsZero() {
		var r uint256.Int
		r.SetBytes(crypto.Keccak256(nil))
		return ctx.Stack.push(&r)
	}
	o, _ := asSmallUint64(&off)
	sz, _ := asSmallUint64(&size)
	data := ctx.Memory.get(o, sz)
	var r uint256.Int
	r.SetBytes(crypto.Keccak256(data))
	return ctx.Stack.push(&r)
}

// --- Stack/memory/storage (0x50-0x5b) ---

func opPop(pv *Processor, ctx *Context) error {
	_, err := ctx.Stack.pop()
	return err
}

func opMload(pv *Processor, ctx *Context) error {
	off, err := ctx.Stack.pop()
	if err != nil {
		return err
	}
	o, _ := asSmallUint64(&off)
	return ctx.Stack.push(ctx.Memory.getWord32(o))
}

func opMstore(pv *Processor, ctx *Context) error {
	off, val, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	o, _ := asSmallUint64(&off)
	ctx.Memory.setWord32(o, &val)
	return nil
}

func opMstore8(pv *Processor, ctx *Context) error {
	off, val, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	o, _ := asSmallUint64(&off)
	ctx.Memory.setByte(o, byte(val.Uint64()))
	return nil
}

func opSload(pv *Processor, ctx *Context) error {
	k, err := ctx.Stack.pop()
	if err != nil {
		return err
	}
	key := types.BytesToHash(k.Bytes32()[:])
	val := pv.host.SLoad(ctx.Callee, key)
	pv.tx.originalValue(ctx.Callee, key, val)
	var r uint256.Int
	r.SetBytes(val.Bytes())
	return ctx.Stack.push(&r)
}

func opSstore(pv *Processor, ctx *Context) error {
	if ctx.IsStatic {
		return errWriteProtection
	}
	k, v, err := pop2(ctx.Stack)
	if err != nil {
		return err
	}
	key := types.BytesToHash(k.Bytes32()[:])
	newVal := types.BytesToHash(v.Bytes32()[:])
	current := pv.host.SLoad(ctx.Callee, key)
	pv.host.SStore(ctx.Callee, key, newVal)
	pv.tx.recordStoreKV(ctx.Callee, key, current)
	return nil
}

func opPc(pv *Processor, ctx *Context) error {
	var r uint256.Int
	r.SetUint64(ctx.PC)
	return ctx.Stack.push(&r)
}

func opMsize(pv *Processor, ctx *Context) error {
	var r uint256.Int
	r.SetUint64(ctx.Memory.Len())
	return ctx.Stack.push(&r)
}

func opGas(pv *Processor, ctx *Context) error {
	var r uint256.Int
	r.SetUint64(ctx.GasLeft)
	return ctx.Stack.push(&r)
}

func opJumpdest(pv *Processor, ctx *Context) error { return nil }

// --- DUP/SWAP/LOG generic handlers ---

func makeDup(n int) instrFn {
	return func(pv *Processor, ctx *Context) error { return ctx.Stack.dup(n) }
}

func makeSwap(n int) instrFn {
	return func(pv *Processor, ctx *Context) error { return ctx.Stack.swap(n) }
}

func makePush(n int) instrFn {
	return func(pv *Processor, ctx *Context) error {
		data := ctx.Program.PushData(ctx.PC, n)
		var r uint256.Int
		r.SetBytes(data)
		if err := ctx.Stack.push(&r); err != nil {
			return err
		}
		ctx.PC += uint64(n)
		return nil
	}
}

func makeLog(n int) instrFn {
	return func(pv *Processor, ctx *Context) error {
		if ctx.IsStatic {
			return errWriteProtection
		}
		off, size, err := pop2(ctx.Stack)
		if err != nil {
			return err
		}
		topics := make([]types.Hash, n)
		for i := 0; i < n; i++ {
			t, err := ctx.Stack.pop()
			if err != nil {
				return err
			}
			topics[i] = types.BytesToHash(t.Bytes32()[:])
		}
		var data []byte
		if !size.IsZero() {
			o, _ := asSmallUint64(&off)
			sz, _ := asSmallUint64(&size)
			data = ctx.Memory.get(o, sz)
		}
		pv.tx.recordLog(types.LogEntry{Address: ctx.Callee, Topics: topics, Data: data})
		return nil
	}
}
