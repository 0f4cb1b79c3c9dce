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

// Package state holds reference vm.Host implementations: an in-memory map
// store for tests and a goleveldb-backed store for a persistent one.
package state

import (
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/ethclassic/evmcore/core/types"
	"github.com/ethclassic/evmcore/core/vm"
)

type account struct {
	nonce   uint64
	code    []byte
	balance *uint256.Int
	storage map[types.Hash]types.Hash
}

func newAccount() *account {
	return &account{balance: new(uint256.Int), storage: make(map[types.Hash]types.Hash)}
}

// MemoryState is a map-backed vm.Host, the one the unit tests in core/vm
// drive the interpreter against: a balance/nonce map guarded by a single
// mutex, extended to also hold code and per-account storage since the
// interpreter needs both.
type MemoryState struct {
	mu       sync.Mutex
	accounts map[types.Address]*account
}

// NewMemoryState returns an empty store.
func NewMemoryState() *MemoryState {
	return &MemoryState{accounts: make(map[types.Address]*account)}
}

func (s *MemoryState) get(addr types.Address) *account {
	a, ok := s.accounts[addr]
	if !ok {
		a = newAccount()
		s.accounts[addr] = a
	}
	return a
}

func (s *MemoryState) GetAccount(addr types.Address) vm.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[addr]
	if !ok {
		return vm.Account{Address: addr, Balance: new(uint256.Int)}
	}
	return vm.Account{Address: addr, Nonce: a.nonce, Code: a.code, Balance: a.balance.Clone()}
}

func (s *MemoryState) CreateAccount(addr types.Address, isContract bool) (vm.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, collided := s.accounts[addr]
	balance := new(uint256.Int)
	if collided {
		balance = existing.balance
	}
	a := newAccount()
	a.balance = balance
	s.accounts[addr] = a
	return vm.Account{Address: addr, Balance: balance.Clone()}, collided
}

func (s *MemoryState) SetCode(addr types.Address, code []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(addr).code = code
}

func (s *MemoryState) IncrementNonce(addr types.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(addr).nonce++
}

func (s *MemoryState) DecrementNonce(addr types.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.get(addr)
	if a.nonce > 0 {
		a.nonce--
	}
}

func (s *MemoryState) AddBalance(addr types.Address, amount *uint256.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(addr).balance.Add(s.get(addr).balance, amount)
}

func (s *MemoryState) SubBalance(addr types.Address, amount *uint256.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(addr).balance.Sub(s.get(addr).balance, amount)
}

func (s *MemoryState) Transfer(from, to types.Address, amount *uint256.Int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	fa := s.get(from)
	if fa.balance.Lt(amount) {
		return false
	}
	ta := s.get(to)
	fa.balance.Sub(fa.balance, amount)
	ta.balance.Add(ta.balance, amount)
	return true
}

func (s *MemoryState) SLoad(addr types.Address, key types.Hash) types.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(addr).storage[key]
}

func (s *MemoryState) SStore(addr types.Address, key, value types.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.get(addr)
	if value.IsZero() {
		delete(a.storage, key)
		return
	}
	a.storage[key] = value
}

func (s *MemoryState) KillStorage(addr types.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(addr).storage = make(map[types.Hash]types.Hash)
}

func (s *MemoryState) RemoveAccount(addr types.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, addr)
}

func (s *MemoryState) CodeHash(addr types.Address) types.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[addr]
	if !ok || len(a.code) == 0 {
		return types.Hash{}
	}
	return types.BytesToHash(crypto.Keccak256(a.code))
}

func (s *MemoryState) BlockHash(number uint64) types.Hash {
	return types.Hash{} // Open Question (a): block history out of scope
}
