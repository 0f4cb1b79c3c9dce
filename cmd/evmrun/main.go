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

// Command evmrun signs and executes one transaction against a fresh or
// existing Host, then prints the resulting receipt as JSON. It exists to
// exercise core/vm/ProcessTransaction end to end, the way geth's cmd/geth
// wires flags to the chain it drives.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/ethclassic/evmcore/core/state"
	"github.com/ethclassic/evmcore/core/types"
	"github.com/ethclassic/evmcore/core/vm"
	"github.com/ethclassic/evmcore/internal/config"
	"github.com/ethclassic/evmcore/internal/evmlog"
)

func main() {
	app := &cli.App{
		Name:  "evmrun",
		Usage: "sign and execute one EVM transaction against an in-memory or leveldb Host",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "private-key", Required: true, Usage: "hex-encoded secp256k1 private key of the sender"},
			&cli.StringFlag{Name: "to", Usage: "hex address of the callee; omit for contract creation"},
			&cli.StringFlag{Name: "data", Usage: "hex-encoded calldata or init code"},
			&cli.Uint64Flag{Name: "value", Usage: "wei to transfer"},
			&cli.Uint64Flag{Name: "nonce", Usage: "sender nonce"},
			&cli.Uint64Flag{Name: "gas-limit", Value: 1_000_000, Usage: "transaction gas limit"},
			&cli.Uint64Flag{Name: "gas-price", Value: 1, Usage: "wei per gas"},
			&cli.Uint64Flag{Name: "fund", Usage: "wei to credit the sender before execution, for standalone runs with no prior chain state"},
			&cli.StringFlag{Name: "db", Usage: "goleveldb directory; omit for an in-memory, throwaway Host"},
			&cli.StringFlag{Name: "log-level", Value: "info"},
			&cli.Uint64Flag{Name: "chain-id", Value: 1},
			&cli.Uint64Flag{Name: "block-number", Value: 1},
			&cli.Uint64Flag{Name: "block-timestamp"},
			&cli.Uint64Flag{Name: "block-gas-limit", Value: 30_000_000},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "evmrun:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level, err := evmlog.ParseLevel(c.String("log-level"))
	if err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	log := evmlog.New(level)

	keyBytes, err := hex.DecodeString(trim0x(c.String("private-key")))
	if err != nil {
		return fmt.Errorf("private-key: %w", err)
	}
	priv, err := crypto.ToECDSA(keyBytes)
	if err != nil {
		return fmt.Errorf("private-key: %w", err)
	}
	sender := types.Address(crypto.PubkeyToAddress(priv.PublicKey))

	data, err := hex.DecodeString(trim0x(c.String("data")))
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}

	var to *types.Address
	if s := c.String("to"); s != "" {
		addr := types.HexToAddress(s)
		to = &addr
	}

	tx := &types.Transaction{
		Nonce:    c.Uint64("nonce"),
		GasPrice: new(big.Int).SetUint64(c.Uint64("gas-price")),
		GasLimit: c.Uint64("gas-limit"),
		To:       to,
		Value:    new(big.Int).SetUint64(c.Uint64("value")),
		Data:     data,
	}
	if err := tx.Sign(priv, c.Uint64("chain-id")); err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}

	host, closeHost, err := openHost(c.String("db"))
	if err != nil {
		return err
	}
	defer closeHost()

	if fund := c.Uint64("fund"); fund > 0 {
		host.AddBalance(sender, new(uint256.Int).SetUint64(fund))
	}

	block := vm.BlockContext{
		Coinbase:   types.Address{},
		Number:     config.U256(c.Uint64("block-number")),
		Timestamp:  config.U256(c.Uint64("block-timestamp")),
		Difficulty: config.U256(0),
		GasLimit:   config.U256(c.Uint64("block-gas-limit")),
		ChainID:    config.U256(c.Uint64("chain-id")),
	}

	txHash, err := tx.Hash()
	if err != nil {
		return fmt.Errorf("transaction hash: %w", err)
	}

	receipt, err := vm.ProcessTransaction(host, block, tx, txHash, 0)
	if err != nil {
		log.WithField("err", err).Error("transaction rejected before execution")
		return err
	}

	log.WithField("status", receipt.Status).WithField("gasUsed", receipt.GasUsed).Info("transaction executed")
	enc, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(enc))
	return nil
}

func openHost(dbPath string) (vm.Host, func(), error) {
	if dbPath == "" {
		return state.NewMemoryState(), func() {}, nil
	}
	db, err := state.OpenLevelDBState(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open db %s: %w", dbPath, err)
	}
	return db, func() { db.Close() }, nil
}

func trim0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
