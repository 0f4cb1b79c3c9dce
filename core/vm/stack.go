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

import "github.com/holiman/uint256"

// stackLimit is the maximum number of elements a Stack may hold.
const stackLimit = 1024

// Stack is a bounded LIFO of 256-bit words.
type Stack struct {
	data []uint256.Int
}

func newStack() *Stack {
	return &Stack{data: make([]uint256.Int, 0, 16)}
}

func (st *Stack) len() int { return len(st.data) }

func (st *Stack) push(v *uint256.Int) error {
	if len(st.data) >= stackLimit {
		return errStackOverflow
	}
	st.data = append(st.data, *v)
	return nil
}

func (st *Stack) pop() (uint256.Int, error) {
	if len(st.data) == 0 {
		return uint256.Int{}, errStackUnderflow
	}
	n := len(st.data) - 1
	v := st.data[n]
	st.data = st.data[:n]
	return v, nil
}

// popAddress pops a word and truncates it to a 160-bit Address.
func (st *Stack) popAddress() (uint256.Int, error) {
	v, err := st.pop()
	if err != nil {
		return v, err
	}
	b := v.Bytes20()
	v.SetBytes(b[:])
	return v, nil
}

// peek returns the top element without popping it.
func (st *Stack) peek() (*uint256.Int, error) {
	return st.back(0)
}

// back returns the n-th element from the top (0 is the top) without
// mutating the stack.
func (st *Stack) back(n int) (*uint256.Int, error) {
	if n >= len(st.data) {
		return nil, errStackUnderflow
	}
	return &st.data[len(st.data)-1-n], nil
}

// require checks that at least n elements are on the stack.
func (st *Stack) require(n int) error {
	if len(st.data) < n {
		return errStackUnderflow
	}
	return nil
}

// swap swaps the top element with the element at depth n (n in 1..16).
func (st *Stack) swap(n int) error {
	if err := st.require(n + 1); err != nil {
		return err
	}
	l := len(st.data)
	st.data[l-1], st.data[l-1-n] = st.data[l-1-n], st.data[l-1]
	return nil
}

// dup pushes a copy of the element at depth n (n in 0..15, 0 is the current
// top) onto the stack.
func (st *Stack) dup(n int) error {
	if err := st.require(n + 1); err != nil {
		return err
	}
	if len(st.data) >= stackLimit {
		return errStackOverflow
	}
	v := st.data[len(st.data)-1-n]
	st.data = append(st.data, v)
	return nil
}
