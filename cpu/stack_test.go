package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/machine"
)

func newStack(program int) Stack {
	mach := machine.NewMachine()
	_ = mach.Load(make([]byte, program))
	return Stack{Machine: mach}
}

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := newStack(0)
	assert.True(s.Empty())
	assert.False(s.Full())

	assert.NoError(s.Push(0x12))
	assert.False(s.Empty())
	assert.Equal(1, s.Depth())
	assert.Equal(byte(machine.SP_INIT-1), s.Machine.SP())

	value, err := s.Machine.ReadMemory(machine.SP_INIT - 1)
	assert.NoError(err)
	assert.Equal(byte(0x12), value)
}

func TestStack_Depth(t *testing.T) {
	assert := assert.New(t)

	s := newStack(0)
	for n := range 5 {
		assert.Equal(n, s.Depth())
		assert.NoError(s.Push(byte(n)))
	}

	val, err := s.Peek()
	assert.NoError(err)
	assert.Equal(byte(4), val)
	assert.Equal(5, s.Depth())

	// An SP above the initial value is still an empty stack.
	assert.NoError(s.Machine.WriteRegister(machine.REG_SP, 0xff))
	assert.True(s.Empty())
	assert.Equal(0, s.Depth())
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := newStack(0)
	assert.NoError(s.Push(0x12))
	assert.NoError(s.Push(0xab))

	val, err := s.Peek()
	assert.NoError(err)
	assert.Equal(byte(0xab), val)
	assert.Equal(2, s.Depth())
}

func TestStack_Peek_Empty(t *testing.T) {
	assert := assert.New(t)

	s := newStack(0)
	_, err := s.Peek()
	assert.ErrorIs(err, ErrStackUnderflow)
}

func TestStack_Full(t *testing.T) {
	assert := assert.New(t)

	const program = 0xf0
	s := newStack(program)

	for n := range machine.SP_INIT - program {
		assert.False(s.Full())
		assert.NoError(s.Push(byte(n)))
	}

	assert.True(s.Full())
	assert.Equal(machine.SP_INIT-program, s.Depth())
	assert.ErrorIs(s.Push(0xff), ErrStackOverflow)
	assert.Equal(byte(program), s.Machine.SP())
}

func TestStack_Full_NoProgram(t *testing.T) {
	assert := assert.New(t)

	s := newStack(0)
	assert.NoError(s.Machine.WriteRegister(machine.REG_SP, 0))

	assert.True(s.Full())
	assert.ErrorIs(s.Push(1), ErrStackOverflow)
}
