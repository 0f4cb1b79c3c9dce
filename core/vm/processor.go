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
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/ethclassic/evmcore/core/types"
)

// MaxCallDepth is the nested call/create depth ceiling.
const MaxCallDepth = 1024

// Processor drives one transaction end to end. It owns the context
// stack (calls and creates nest without recursing through a re-entrant
// host call stack), the Host, the block descriptor, and the
// transaction's journal.
type Processor struct {
	host  Host
	block BlockContext
	tx    *TxState

	origin   types.Address
	gasPrice *uint256.Int

	frames []*Context

	rootOutput []byte
	rootErr    *VMError
	rootGas    uint64
	rootAddr   *types.Address
}

// NewProcessor builds a processor bound to host/block. Each transaction
// needs its own Processor (ProcessTransaction gives it a fresh TxState from
// NewTxState before use).
func NewProcessor(host Host, block BlockContext) *Processor {
	return &Processor{host: host, block: block}
}

func (p *Processor) top() *Context { return p.frames[len(p.frames)-1] }

func (p *Processor) pushFrame(ctx *Context) {
	if len(p.frames) >= MaxCallDepth {
		panic("evmcore: context stack overflow") // guarded by depth checks before this is ever reached
	}
	p.frames = append(p.frames, ctx)
}

func (p *Processor) popFrame() *Context {
	n := len(p.frames) - 1
	ctx := p.frames[n]
	p.frames = p.frames[:n]
	return ctx
}

// run drains the context stack, stepping the top frame until it empties.
// The dispatch loop is single-threaded: one Processor never steps two
// frames concurrently.
func (p *Processor) run() {
	for len(p.frames) > 0 {
		ctx := p.top()
		output, vmErr := p.step(ctx)
		if output == nil && vmErr == nil {
			continue // frame not finished, keep stepping
		}
		p.finishFrame(ctx, output, vmErr)
	}
}

// finishFrame closes out ctx (STOP/RETURN/REVERT/error), applies its
// journal-revert and gas-consumption rules, and resumes the parent frame
// via its onSuccess/onError continuation.
func (p *Processor) finishFrame(ctx *Context, output []byte, vmErr *VMError) {
	if vmErr != nil {
		p.tx.RevertTo(p.host, ctx.Checkpoint)
		if vmErr.Kind.ConsumesAllGas() {
			ctx.GasLeft = 0
		}
	}
	gasUsed := ctx.gasUsed()
	p.popFrame()

	if len(p.frames) == 0 {
		p.rootOutput = output
		p.rootErr = vmErr
		p.rootGas = ctx.GasLeft
		return
	}

	parent := p.top()
	parent.LastReturnData = output
	if vmErr == nil {
		if ctx.onSuccess != nil {
			ctx.onSuccess(p, output, gasUsed)
		}
	} else {
		if ctx.onError != nil {
			ctx.onError(p, vmErr.Kind, output, gasUsed)
		}
	}
}

// CallParams describes an external call or contract creation to be driven
// to completion by RunCall/RunCreate.
type CallParams struct {
	Caller   types.Address
	Callee   types.Address // ignored by RunCreate
	Value    *uint256.Int
	Input    []byte
	Gas      uint64
	IsStatic bool
}

// RunCall drives a top-level (non-nested) CALL to completion: the kind of
// invocation ProcessTransaction performs for a non-creation transaction.
func (p *Processor) RunCall(params CallParams) (output []byte, gasLeft uint64, vmErr *VMError) {
	acc := p.host.GetAccount(params.Callee)
	program := NewProgram(acc.Code)
	ctx := newContext(program, params.Input, params.Gas, params.Caller, params.Callee, params.Value, params.IsStatic, 0, p.tx.Checkpoint())
	if !params.Value.IsZero() {
		if !p.host.Transfer(params.Caller, params.Callee, params.Value) {
			return nil, params.Gas, newErr(ExOutOfBounds, "insufficient balance for call value")
		}
		p.tx.recordTransfer(params.Caller, params.Callee, params.Value)
	}
	if addr, ok := precompileAt(params.Callee); ok {
		out, remaining, err := runPrecompiled(addr, params.Input, params.Gas)
		return out, remaining, err
	}
	p.pushFrame(ctx)
	p.run()
	return p.rootOutput, p.rootGas, p.rootErr
}

// RunCreate drives a top-level CREATE to completion for a
// contract-creation transaction. Returns the deployed address on success.
func (p *Processor) RunCreate(caller types.Address, value *uint256.Int, initCode []byte, gas uint64) (addr types.Address, output []byte, gasLeft uint64, vmErr *VMError) {
	nonce := p.host.GetAccount(caller).Nonce
	addr = createAddress(caller, nonce)
	return p.runCreateAt(caller, addr, value, initCode, gas, false)
}

func (p *Processor) runCreateAt(caller, addr types.Address, value *uint256.Int, initCode []byte, gas uint64, isCreate2 bool) (types.Address, []byte, uint64, *VMError) {
	existing := p.host.GetAccount(addr)
	if existing.Nonce > 0 || len(existing.Code) > 0 {
		return addr, nil, gas, newErr(ExIllegalInstruction, "contract address collision")
	}
	if !value.IsZero() {
		if !p.host.Transfer(caller, addr, value) {
			return addr, nil, gas, newErr(ExOutOfBounds, "insufficient balance for create value")
		}
		p.tx.recordTransfer(caller, addr, value)
	}
	if _, collided := p.host.CreateAccount(addr, true); collided {
		p.host.KillStorage(addr)
	}
	p.tx.recordCreateAccount(addr)
	p.host.IncrementNonce(addr)
	p.tx.recordIncrementNonce(addr)

	program := NewProgram(initCode)
	ctx := newContext(program, nil, gas, caller, addr, value, false, 0, p.tx.Checkpoint())
	p.pushFrame(ctx)
	p.run()

	if p.rootErr != nil {
		return addr, p.rootOutput, p.rootGas, p.rootErr
	}
	codeCost := GasCreateData * uint64(len(p.rootOutput))
	if codeCost > p.rootGas {
		p.tx.RevertTo(p.host, ctx.Checkpoint)
		return addr, nil, 0, newErr(ExOutOfGas, "out of gas depositing code")
	}
	p.rootGas -= codeCost
	p.host.SetCode(addr, p.rootOutput)
	p.tx.recordSetCode(addr, nil)
	return addr, p.rootOutput, p.rootGas, nil
}

// createAddress computes the CREATE contract address: the low 20 bytes of
// keccak256(rlp([sender, nonce])).
func createAddress(sender types.Address, nonce uint64) types.Address {
	enc, err := rlpEncodeList(sender.Bytes(), nonce)
	if err != nil {
		panic(err) // encoding a (20-byte, uint64) pair never fails
	}
	return types.BytesToAddress(keccak256(enc))
}

// createAddress2 computes the CREATE2 contract address: the low 20 bytes of
// keccak256(0xff ++ sender ++ salt ++ keccak256(init_code)).
func createAddress2(sender types.Address, salt types.Hash, initCode []byte) types.Address {
	codeHash := keccak256(initCode)
	buf := make([]byte, 0, 1+20+32+32)
	buf = append(buf, 0xff)
	buf = append(buf, sender.Bytes()...)
	buf = append(buf, salt.Bytes()...)
	buf = append(buf, codeHash...)
	return types.BytesToAddress(keccak256(buf))
}

// ProcessTransaction executes one transaction end to end:
// intrinsic gas check, sender/nonce/balance bookkeeping, dispatch to
// RunCall or runCreateAt, refund capping, deferred self-destruct, and
// Receipt assembly.
func ProcessTransaction(host Host, block BlockContext, tx *types.Transaction, txHash types.Hash, txIndex int) (*types.Receipt, error) {
	sender, err := tx.Sender()
	if err != nil {
		return nil, fmt.Errorf("recover sender: %w", err)
	}
	intrinsic := tx.IntrinsicGas()
	if tx.GasLimit < intrinsic {
		return nil, fmt.Errorf("intrinsic gas underflow: limit %d < intrinsic %d", tx.GasLimit, intrinsic)
	}

	senderAcc := host.GetAccount(sender)
	if senderAcc.Nonce != tx.Nonce {
		return nil, fmt.Errorf("nonce mismatch: account %d, tx %d", senderAcc.Nonce, tx.Nonce)
	}

	gasPrice := new(uint256.Int)
	if tx.GasPrice != nil {
		gasPrice.SetFromBig(tx.GasPrice)
	}
	upfrontCost := new(uint256.Int).Mul(gasPrice, new(uint256.Int).SetUint64(tx.GasLimit))
	if senderAcc.Balance == nil || senderAcc.Balance.Lt(upfrontCost) {
		return nil, fmt.Errorf("insufficient balance for gas * gasLimit")
	}
	host.SubBalance(sender, upfrontCost)
	host.IncrementNonce(sender)

	value := new(uint256.Int)
	if tx.Value != nil {
		value.SetFromBig(tx.Value)
	}

	p := NewProcessor(host, block)
	p.tx = NewTxState()
	p.origin = sender
	p.gasPrice = gasPrice

	gasAvailable := tx.GasLimit - intrinsic

	var (
		output   []byte
		gasLeft  uint64
		vmErr    *VMError
		created  *types.Address
	)
	if tx.IsContractCreation() {
		// The created address is derived from the nonce the transaction
		// itself carried, not from the sender's account nonce above, which
		// IncrementNonce already bumped by the time we get here.
		addr := createAddress(sender, tx.Nonce)
		a, out, left, e := p.runCreateAt(sender, addr, value, tx.Data, gasAvailable, false)
		output, gasLeft, vmErr = out, left, e
		if e == nil {
			created = &a
		}
	} else {
		output, gasLeft, vmErr = p.RunCall(CallParams{
			Caller: sender,
			Callee: *tx.To,
			Value:  value,
			Input:  tx.Data,
			Gas:    gasAvailable,
		})
	}

	gasUsed := tx.GasLimit - gasLeft
	refund := p.tx.GasRefund
	if cap := gasUsed / 2; refund > cap {
		refund = cap
	}
	gasUsed -= refund
	gasLeft = tx.GasLimit - gasUsed

	refundWei := new(uint256.Int).Mul(gasPrice, new(uint256.Int).SetUint64(gasLeft))
	host.AddBalance(sender, refundWei)

	for _, addr := range p.tx.Selfdestruct {
		host.KillStorage(addr)
		host.RemoveAccount(addr)
	}

	status := "1"
	errs := p.tx.Errors
	if vmErr != nil {
		status = "0"
		errs = append(errs, vmErr.Error())
		if vmErr.Kind != ExRevert {
			output = nil
		}
	}

	receipt := &types.Receipt{
		Status:            status,
		From:              sender,
		To:                tx.To,
		Value:             tx.Value,
		Nonce:             tx.Nonce,
		V:                 tx.V,
		R:                 tx.R,
		S:                 tx.S,
		CreatedAddress:    created,
		CumulativeGasUsed: new(big.Int).SetUint64(gasUsed),
		GasUsed:           new(big.Int).SetUint64(gasUsed),
		GasLimit:          new(big.Int).SetUint64(tx.GasLimit),
		GasPrice:          tx.GasPrice,
		Logs:              p.tx.Logs,
		Output:            output,
		Errors:            errs,
		TransactionHash:   txHash,
		TransactionIndex:  txIndex,
	}
	return receipt, nil
}
