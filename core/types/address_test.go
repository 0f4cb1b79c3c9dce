package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesToAddressCropsFromLeft(t *testing.T) {
	b := make([]byte, 32)
	b[31] = 0xff
	addr := BytesToAddress(b)
	assert.Equal(t, byte(0xff), addr[19])
}

func TestHexToAddressAcceptsWithAndWithoutPrefix(t *testing.T) {
	a := HexToAddress("0x0000000000000000000000000000000000000001")
	b := HexToAddress("0000000000000000000000000000000000000001")
	assert.Equal(t, a, b)
	assert.False(t, a.IsZero())
}

func TestHashIsZero(t *testing.T) {
	assert.True(t, Hash{}.IsZero())
	assert.False(t, BytesToHash([]byte{1}).IsZero())
}
