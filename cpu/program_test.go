package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0, Words: []string{"LDI", "R0", "8"}, Codes: []byte{byte(OP_LDI), 0, 8}},
			{LineNo: 3, Addr: 3, Words: []string{"PRN", "R0"}, Codes: []byte{byte(OP_PRN), 0}},
			{LineNo: 4, Addr: 5, Words: []string{"HLT"}, Codes: []byte{byte(OP_HLT)}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(2)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(4)
	assert.Equal(3, dbg.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(5)
	assert.Equal(4, dbg.LineNo)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(6)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal(print8, prog.Binary())
	assert.Equal(6, prog.Size())

	// Gaps are zero filled.
	prog.Opcodes = append(prog.Opcodes, Opcode{LineNo: 5, Addr: 8, Codes: []byte{0xaa}})
	assert.Equal(append(print8, 0, 0, 0xaa), prog.Binary())
	assert.Equal(9, prog.Size())

	empty := &Program{}
	assert.Empty(empty.Binary())
	assert.Equal(0, empty.Size())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var addrs []int
	for addr := range prog.Codes() {
		addrs = append(addrs, addr)
		if addr == 3 {
			break
		}
	}

	assert.Equal([]int{0, 1, 2, 3}, addrs)
}
