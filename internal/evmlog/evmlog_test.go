package evmlog

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lvl)

	_, err = ParseLevel("not-a-level")
	assert.Error(t, err)
}

func TestNewSetsLevel(t *testing.T) {
	entry := New(logrus.WarnLevel)
	assert.Equal(t, logrus.WarnLevel, entry.Logger.GetLevel())
}

func TestDiscardSwallowsOutput(t *testing.T) {
	entry := Discard()
	entry.Info("this must not reach stderr")
}
