package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestValidateRejectsZeroGasLimitAndChainID(t *testing.T) {
	cfg := Default()
	cfg.GasLimit = 0
	assert.ErrorIs(t, Validate(cfg), ErrInvalidConfig)

	cfg = Default()
	cfg.ChainID = 0
	assert.ErrorIs(t, Validate(cfg), ErrInvalidConfig)
}

func TestApplyEnvironmentOverrides(t *testing.T) {
	os.Setenv("EVMRUN_DB_PATH", "/tmp/evmrun-db")
	os.Setenv("EVMRUN_LOG_LEVEL", "debug")
	os.Setenv("EVMRUN_CHAIN_ID", "61")
	os.Setenv("EVMRUN_GAS_LIMIT", "21000")
	defer func() {
		os.Unsetenv("EVMRUN_DB_PATH")
		os.Unsetenv("EVMRUN_LOG_LEVEL")
		os.Unsetenv("EVMRUN_CHAIN_ID")
		os.Unsetenv("EVMRUN_GAS_LIMIT")
	}()

	cfg := Default()
	ApplyEnvironment(&cfg)

	assert.Equal(t, "/tmp/evmrun-db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint64(61), cfg.ChainID)
	assert.Equal(t, uint64(21000), cfg.GasLimit)
}

func TestU256(t *testing.T) {
	assert.Equal(t, uint64(42), U256(42).Uint64())
}
