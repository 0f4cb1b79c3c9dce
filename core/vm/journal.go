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

// StateModification is one reversible entry in the transaction's
// modification log. Each variant carries enough to
// invert itself via undo. Grounded on mirairo-DREP-Chain/database/db.go's
// Transaction.journals []*journal{action,key,value} + Commit() shape (same
// append-inverse-then-apply discipline, here applied directly to
// interpreter-visible Host state instead of a leveldb batch).
type StateModification interface {
	undo(h Host)
}

type modStoreKV struct {
	addr types.Address
	key  types.Hash
	old  types.Hash
}

func (m modStoreKV) undo(h Host) { h.SStore(m.addr, m.key, m.old) }

type modCreateAccount struct {
	addr types.Address
}

func (m modCreateAccount) undo(h Host) { h.RemoveAccount(m.addr) }

type modSetCode struct {
	addr types.Address
	old  []byte
}

func (m modSetCode) undo(h Host) { h.SetCode(m.addr, m.old) }

type modIncrementNonce struct {
	addr types.Address
}

func (m modIncrementNonce) undo(h Host) { h.DecrementNonce(m.addr) }

type modTransfer struct {
	from, to types.Address
	amount   *uint256.Int
}

func (m modTransfer) undo(h Host) {
	h.Transfer(m.to, m.from, m.amount)
}

// modLog, modSelfDestruct and modRefund are undone against the TxState, not
// the Host, since logs, the self-destruct list and the refund counter are
// transaction-transient, not Host state. They're applied via a separate hook
// (see TxState.undoEntry).
type modLog struct{}

func (m modLog) undo(h Host) {}

type modSelfDestruct struct {
	addr types.Address
}

func (m modSelfDestruct) undo(h Host) {}

type modRefund struct{}

func (m modRefund) undo(h Host) {}

// journalEntry pairs a StateModification with the transaction-transient
// side effect (if any) its undo must also reverse.
type journalEntry struct {
	mod StateModification
	// txUndo, when non-nil, reverses the transaction-transient half of this
	// entry (popping a log, popping the self-destruct list entry).
	txUndo func(ts *TxState)
}

// TxState is the transient, per-transaction bookkeeping conceptually a
// "Transaction" in its own right, named TxState here to avoid colliding
// with core/types.Transaction, the decoded wire transaction.
type TxState struct {
	GasUsed    uint64
	GasRefund  uint64
	journal    []journalEntry
	Original   map[origKey]types.Hash
	Selfdestruct []types.Address
	selfdestructSet map[types.Address]struct{}
	Logs       []types.LogEntry
	Errors     []string
	Created    *types.Address
}

type origKey struct {
	addr types.Address
	key  types.Hash
}

// NewTxState allocates a fresh per-transaction journal.
func NewTxState() *TxState {
	return &TxState{
		Original:        make(map[origKey]types.Hash),
		selfdestructSet: make(map[types.Address]struct{}),
	}
}

// Checkpoint returns the current journal length, to be stashed in a new
// Context and restored on revert.
func (ts *TxState) Checkpoint() int { return len(ts.journal) }

// record appends a journal entry without applying anything (the Host
// mutation happens at the call site, before or after record per each
// opcode's own ordering - see instructions.go).
func (ts *TxState) record(mod StateModification, txUndo func(*TxState)) {
	ts.journal = append(ts.journal, journalEntry{mod: mod, txUndo: txUndo})
}

// RevertTo truncates the journal back to checkpoint, undoing entries in
// reverse-append order.
func (ts *TxState) RevertTo(h Host, checkpoint int) {
	for i := len(ts.journal) - 1; i >= checkpoint; i-- {
		e := ts.journal[i]
		e.mod.undo(h)
		if e.txUndo != nil {
			e.txUndo(ts)
		}
	}
	ts.journal = ts.journal[:checkpoint]
}

// recordStoreKV journals an SSTORE, also populating the first-access
// original-value snapshot the EIP-2200 rule needs.
func (ts *TxState) recordStoreKV(addr types.Address, key types.Hash, old types.Hash) {
	k := origKey{addr, key}
	if _, ok := ts.Original[k]; !ok {
		ts.Original[k] = old
	}
	ts.record(modStoreKV{addr: addr, key: key, old: old}, nil)
}

// originalValue returns the EIP-2200 original-in-transaction value for a
// slot, recording the current value as the snapshot on first access.
func (ts *TxState) originalValue(addr types.Address, key types.Hash, current types.Hash) types.Hash {
	k := origKey{addr, key}
	if v, ok := ts.Original[k]; ok {
		return v
	}
	ts.Original[k] = current
	return current
}

func (ts *TxState) recordCreateAccount(addr types.Address) {
	ts.record(modCreateAccount{addr: addr}, nil)
}

func (ts *TxState) recordSetCode(addr types.Address, old []byte) {
	ts.record(modSetCode{addr: addr, old: old}, nil)
}

func (ts *TxState) recordIncrementNonce(addr types.Address) {
	ts.record(modIncrementNonce{addr: addr}, nil)
}

func (ts *TxState) recordTransfer(from, to types.Address, amount *uint256.Int) {
	ts.record(modTransfer{from: from, to: to, amount: amount}, nil)
}

func (ts *TxState) recordLog(entry types.LogEntry) {
	ts.Logs = append(ts.Logs, entry)
	ts.record(modLog{}, func(ts *TxState) {
		ts.Logs = ts.Logs[:len(ts.Logs)-1]
	})
}

// recordSelfDestruct appends addr to the self-destruct list unless it's
// already listed there, deduplicating entries. Returns whether this is
// the first time addr has been listed (used by the SELFDESTRUCT refund
// rule).
func (ts *TxState) recordSelfDestruct(addr types.Address) (first bool) {
	if _, ok := ts.selfdestructSet[addr]; ok {
		return false
	}
	ts.selfdestructSet[addr] = struct{}{}
	ts.Selfdestruct = append(ts.Selfdestruct, addr)
	ts.record(modSelfDestruct{addr: addr}, func(ts *TxState) {
		last := ts.Selfdestruct[len(ts.Selfdestruct)-1]
		ts.Selfdestruct = ts.Selfdestruct[:len(ts.Selfdestruct)-1]
		delete(ts.selfdestructSet, last)
	})
	return true
}

// AddRefund adds to the refund counter. Journaled like any other state
// change, so a reverted or failed child call's SSTORE/SELFDESTRUCT refunds
// don't leak into the parent.
func (ts *TxState) AddRefund(v uint64) {
	prev := ts.GasRefund
	ts.GasRefund += v
	ts.record(modRefund{}, func(ts *TxState) { ts.GasRefund = prev })
}

// SubRefund subtracts from the refund counter, saturating at 0, journaled
// the same way as AddRefund.
func (ts *TxState) SubRefund(v uint64) {
	prev := ts.GasRefund
	if v > ts.GasRefund {
		ts.GasRefund = 0
	} else {
		ts.GasRefund -= v
	}
	ts.record(modRefund{}, func(ts *TxState) { ts.GasRefund = prev })
}
