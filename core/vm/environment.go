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

// Account is the persistent per-address record the Host owns.
type Account struct {
	Address types.Address
	Nonce   uint64
	Code    []byte
	Balance *uint256.Int
}

// IsEmpty reports whether the account is "empty": nonce==0, no code, zero
// balance.
func (a Account) IsEmpty() bool {
	return a.Nonce == 0 && len(a.Code) == 0 && (a.Balance == nil || a.Balance.IsZero())
}

// BlockContext carries the process-wide block descriptor: supplied by the
// owner, no lifecycle of its own.
type BlockContext struct {
	Coinbase   types.Address
	Number     *uint256.Int
	Timestamp  *uint256.Int
	Difficulty *uint256.Int
	GasLimit   *uint256.Int
	ChainID    *uint256.Int
}

// Host is the minimum collaborator the interpreter consumes.
// It owns the account table, the per-account storage tables, and native
// balance bookkeeping; the core only ever touches them through this
// interface and the journal (journal.go).
type Host interface {
	// GetAccount returns the account at addr, or an empty Account if none
	// exists.
	GetAccount(addr types.Address) Account

	// CreateAccount installs an (initially empty) account at addr.
	// isContract marks it as being created for a CREATE/CREATE2, which some
	// Host implementations use for bookkeeping; collided reports whether an
	// account was already present at addr, even an empty one. Callers reject
	// a nonce>0 or non-empty-code account before calling.
	CreateAccount(addr types.Address, isContract bool) (acc Account, collided bool)

	// SetCode installs code on addr's account.
	SetCode(addr types.Address, code []byte)

	// IncrementNonce / DecrementNonce mutate addr's nonce. DecrementNonce is
	// used only by journal revert.
	IncrementNonce(addr types.Address)
	DecrementNonce(addr types.Address)

	// AddBalance / SubBalance adjust addr's balance directly (used by the
	// journal to apply/undo Transfer entries).
	AddBalance(addr types.Address, amount *uint256.Int)
	SubBalance(addr types.Address, amount *uint256.Int)

	// Transfer moves amount from `from` to `to`, creating `to` if absent.
	// Reports false (no-op) if `from`'s balance is insufficient.
	Transfer(from, to types.Address, amount *uint256.Int) bool

	// SLoad/SStore access an account's storage. A missing key reads as the
	// zero word; storing zero deletes the key. SStore is journalled by the
	// caller, not by the Host itself.
	SLoad(addr types.Address, key types.Hash) types.Hash
	SStore(addr types.Address, key, value types.Hash)

	// KillStorage clears all of addr's storage (used by SELFDESTRUCT and by
	// CREATE2 collisions with an empty pre-existing account).
	KillStorage(addr types.Address)

	// RemoveAccount deletes addr's account outright. Used by the journal to
	// undo a CreateAccount on revert, and by ProcessTransaction to delete
	// self-destructed accounts at the end of a transaction.
	RemoveAccount(addr types.Address)

	// CodeHash returns keccak256(code), or the zero hash for an account
	// with no code.
	CodeHash(addr types.Address) types.Hash

	// BlockHash returns the hash of the block `number` blocks ago. Always
	// the zero hash here: block history is out of scope.
	BlockHash(number uint64) types.Hash
}
