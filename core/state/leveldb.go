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

package state

import (
	"encoding/binary"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/ethclassic/evmcore/core/types"
	"github.com/ethclassic/evmcore/core/vm"
)

// LevelDBState is a goleveldb-backed vm.Host: accounts and storage slots
// are flattened into a single keyspace under one leveldb.DB with a
// key-prefix scheme, in place of a per-chain trie map this repo has no
// chain/trie concept to need. Writes go through an in-process mutex
// rather than a separate snapshot+journal Transaction type, since a
// single transaction's Host mutations are already undone by core/vm's
// own journal (journal.go) on revert — a second journal layer here would
// be redundant bookkeeping, not missing functionality.
type LevelDBState struct {
	mu sync.Mutex
	db *leveldb.DB
}

// OpenLevelDBState opens (or creates) a goleveldb database at path.
func OpenLevelDBState(path string) (*LevelDBState, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBState{db: db}, nil
}

// Close releases the underlying database handle.
func (s *LevelDBState) Close() error {
	return s.db.Close()
}

const (
	prefixNonce   = 'n'
	prefixCode    = 'c'
	prefixBalance = 'b'
	prefixStorage = 's'
)

func accountKey(prefix byte, addr types.Address) []byte {
	key := make([]byte, 1+types.AddressLength)
	key[0] = prefix
	copy(key[1:], addr.Bytes())
	return key
}

func storageKey(addr types.Address, slot types.Hash) []byte {
	key := make([]byte, 1+types.AddressLength+32)
	key[0] = prefixStorage
	copy(key[1:], addr.Bytes())
	copy(key[1+types.AddressLength:], slot.Bytes())
	return key
}

func (s *LevelDBState) has(key []byte) bool {
	ok, _ := s.db.Has(key, nil)
	return ok
}

func (s *LevelDBState) getBytes(key []byte) []byte {
	v, err := s.db.Get(key, nil)
	if err != nil {
		return nil
	}
	return v
}

func (s *LevelDBState) GetAccount(addr types.Address) vm.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getAccountLocked(addr)
}

func (s *LevelDBState) getAccountLocked(addr types.Address) vm.Account {
	acc := vm.Account{Address: addr, Balance: new(uint256.Int)}
	if b := s.getBytes(accountKey(prefixNonce, addr)); b != nil {
		acc.Nonce = binary.BigEndian.Uint64(b)
	}
	acc.Code = s.getBytes(accountKey(prefixCode, addr))
	if b := s.getBytes(accountKey(prefixBalance, addr)); b != nil {
		acc.Balance.SetBytes(b)
	}
	return acc
}

func (s *LevelDBState) putNonce(addr types.Address, nonce uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], nonce)
	s.db.Put(accountKey(prefixNonce, addr), b[:], nil)
}

func (s *LevelDBState) putBalance(addr types.Address, balance *uint256.Int) {
	s.db.Put(accountKey(prefixBalance, addr), balance.Bytes(), nil)
}

func (s *LevelDBState) CreateAccount(addr types.Address, isContract bool) (vm.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	collided := s.has(accountKey(prefixNonce, addr)) || s.has(accountKey(prefixCode, addr))
	existing := s.getAccountLocked(addr)
	s.putNonce(addr, 0)
	s.putBalance(addr, existing.Balance)
	return vm.Account{Address: addr, Balance: existing.Balance}, collided
}

func (s *LevelDBState) SetCode(addr types.Address, code []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db.Put(accountKey(prefixCode, addr), code, nil)
}

func (s *LevelDBState) IncrementNonce(addr types.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.getAccountLocked(addr)
	s.putNonce(addr, acc.Nonce+1)
}

func (s *LevelDBState) DecrementNonce(addr types.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.getAccountLocked(addr)
	if acc.Nonce > 0 {
		s.putNonce(addr, acc.Nonce-1)
	}
}

func (s *LevelDBState) AddBalance(addr types.Address, amount *uint256.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.getAccountLocked(addr)
	acc.Balance.Add(acc.Balance, amount)
	s.putBalance(addr, acc.Balance)
}

func (s *LevelDBState) SubBalance(addr types.Address, amount *uint256.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.getAccountLocked(addr)
	acc.Balance.Sub(acc.Balance, amount)
	s.putBalance(addr, acc.Balance)
}

func (s *LevelDBState) Transfer(from, to types.Address, amount *uint256.Int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	fromAcc := s.getAccountLocked(from)
	if fromAcc.Balance.Lt(amount) {
		return false
	}
	toAcc := s.getAccountLocked(to)
	fromAcc.Balance.Sub(fromAcc.Balance, amount)
	toAcc.Balance.Add(toAcc.Balance, amount)
	s.putBalance(from, fromAcc.Balance)
	s.putBalance(to, toAcc.Balance)
	return true
}

func (s *LevelDBState) SLoad(addr types.Address, key types.Hash) types.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.getBytes(storageKey(addr, key))
	if b == nil {
		return types.Hash{}
	}
	return types.BytesToHash(b)
}

func (s *LevelDBState) SStore(addr types.Address, key, value types.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value.IsZero() {
		s.db.Delete(storageKey(addr, key), nil)
		return
	}
	s.db.Put(storageKey(addr, key), value.Bytes(), nil)
}

func (s *LevelDBState) KillStorage(addr types.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := accountKey(prefixStorage, addr)
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()
	batch := new(leveldb.Batch)
	for iter.Next() {
		k := iter.Key()
		if len(k) >= len(prefix) && string(k[:len(prefix)]) == string(prefix) {
			batch.Delete(append([]byte(nil), k...))
		}
	}
	s.db.Write(batch, nil)
}

func (s *LevelDBState) RemoveAccount(addr types.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db.Delete(accountKey(prefixNonce, addr), nil)
	s.db.Delete(accountKey(prefixCode, addr), nil)
	s.db.Delete(accountKey(prefixBalance, addr), nil)
}

func (s *LevelDBState) CodeHash(addr types.Address) types.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := s.getBytes(accountKey(prefixCode, addr))
	if len(code) == 0 {
		return types.Hash{}
	}
	return types.BytesToHash(crypto.Keccak256(code))
}

func (s *LevelDBState) BlockHash(number uint64) types.Hash {
	return types.Hash{}
}
