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

// Package config aggregates cmd/evmrun's configuration sources (CLI
// flags, environment variables, optional defaults) into one structure,
// with a set of sentinel errors for the values it validates.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/holiman/uint256"

	"github.com/ethclassic/evmcore/core/types"
)

// Configuration errors.
var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrMissingBytecode = errors.New("no bytecode supplied")
)

// Config aggregates everything cmd/evmrun needs to build a BlockContext
// and drive one call or contract-creation transaction.
type Config struct {
	// DBPath selects the Host backing store: empty means the in-memory
	// store, non-empty opens a goleveldb database at that path.
	DBPath string

	// LogLevel is parsed by internal/evmlog.ParseLevel.
	LogLevel string

	Coinbase   types.Address
	Number     uint64
	Timestamp  uint64
	Difficulty uint64
	GasLimit   uint64
	ChainID    uint64
}

// Default returns the zero-value network Config: block 0, coinbase the
// zero address, a generous gas limit, chain ID 1.
func Default() Config {
	return Config{
		LogLevel: "info",
		GasLimit: 30_000_000,
		ChainID:  1,
	}
}

// ApplyEnvironment overrides cfg fields from EVMRUN_-prefixed environment
// variables, applied after CLI flags have set their defaults.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv("EVMRUN_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("EVMRUN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("EVMRUN_CHAIN_ID"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.ChainID = n
		}
	}
	if v := os.Getenv("EVMRUN_GAS_LIMIT"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.GasLimit = n
		}
	}
}

// Validate checks cfg for internal consistency.
func Validate(cfg Config) error {
	if cfg.GasLimit == 0 {
		return fmt.Errorf("%w: gas limit must be nonzero", ErrInvalidConfig)
	}
	if cfg.ChainID == 0 {
		return fmt.Errorf("%w: chain id must be nonzero", ErrInvalidConfig)
	}
	return nil
}

// U256 turns a scalar config field into the uint256.Int pointer
// vm.BlockContext wants.
func U256(v uint64) *uint256.Int { return new(uint256.Int).SetUint64(v) }
