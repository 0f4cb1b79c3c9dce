package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramValidJump(t *testing.T) {
	// PUSH1 0x5b JUMPDEST STOP — the 0x5b at offset 1 is a PUSH operand, not
	// a real JUMPDEST; only offset 2 is valid.
	code := []byte{byte(PUSH1), 0x5b, byte(JUMPDEST), byte(STOP)}
	p := NewProgram(code)

	assert.False(t, p.ValidJump(1), "a JUMPDEST byte inside a PUSH immediate must not validate")
	assert.True(t, p.ValidJump(2))
	assert.False(t, p.ValidJump(99), "out-of-bounds destinations are never valid")
}

func TestProgramAtPastEndIsStop(t *testing.T) {
	p := NewProgram([]byte{byte(PUSH1), 0x01})
	assert.Equal(t, STOP, p.At(5))
}

func TestProgramPushDataZeroPadsAtEnd(t *testing.T) {
	p := NewProgram([]byte{byte(PUSH1), 0xff})
	data := p.PushData(0, 1)
	assert.Equal(t, []byte{0xff}, data)

	short := NewProgram([]byte{byte(PUSH1)})
	data = short.PushData(0, 1)
	assert.Equal(t, []byte{0x00}, data, "PUSH whose immediate runs past code end reads as zero-padded")
}
