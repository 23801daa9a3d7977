package cpu

import (
	"fmt"
)

// Code is an instruction opcode byte.
//
// Opcodes are encoded as AABCDDDD, where AA is the operand count, B marks
// an ALU operation, C marks an instruction that sets the PC, and DDDD is
// the instruction identifier.
type Code byte

const (
	OP_HLT  = Code(0b00000001) // HLT
	OP_LDI  = Code(0b10000010) // LDI reg, value
	OP_PRN  = Code(0b01000111) // PRN reg
	OP_ADD  = Code(0b10100000) // ADD regA, regB
	OP_MUL  = Code(0b10100010) // MUL regA, regB
	OP_CMP  = Code(0b10100111) // CMP regA, regB
	OP_PUSH = Code(0b01000101) // PUSH reg
	OP_POP  = Code(0b01000110) // POP reg
	OP_JMP  = Code(0b01010100) // JMP reg
	OP_JEQ  = Code(0b01010101) // JEQ reg
	OP_JNE  = Code(0b01010110) // JNE reg
)

// Operands returns the operand count encoded in the opcode.
func (code Code) Operands() int {
	return int(code >> 6)
}

// IsAlu returns true if the opcode is an ALU operation.
func (code Code) IsAlu() bool {
	return (code & 0b0010_0000) != 0
}

// SetsPc returns true if the opcode may set the PC.
func (code Code) SetsPc() bool {
	return (code & 0b0001_0000) != 0
}

// String returns the mnemonic of a known opcode.
func (code Code) String() string {
	inst, ok := instructionSet[code]
	if ok {
		return inst.Name
	}
	return fmt.Sprintf("0x%02x", byte(code))
}

// Instruction describes a single entry of the instruction table.
type Instruction struct {
	Name     string // Mnemonic.
	Operands int    // Operand bytes following the opcode.

	// Exec executes the instruction with its operand bytes. It returns
	// true if it set the PC.
	Exec func(cpu *Cpu, args []byte) (jumped bool, err error)
}

// instructionSet is the dispatch table. Any opcode not present is invalid.
var instructionSet = map[Code]*Instruction{
	OP_HLT:  {Name: "HLT", Operands: 0, Exec: (*Cpu).execHlt},
	OP_LDI:  {Name: "LDI", Operands: 2, Exec: (*Cpu).execLdi},
	OP_PRN:  {Name: "PRN", Operands: 1, Exec: (*Cpu).execPrn},
	OP_ADD:  {Name: "ADD", Operands: 2, Exec: (*Cpu).execAdd},
	OP_MUL:  {Name: "MUL", Operands: 2, Exec: (*Cpu).execMul},
	OP_CMP:  {Name: "CMP", Operands: 2, Exec: (*Cpu).execCmp},
	OP_PUSH: {Name: "PUSH", Operands: 1, Exec: (*Cpu).execPush},
	OP_POP:  {Name: "POP", Operands: 1, Exec: (*Cpu).execPop},
	OP_JMP:  {Name: "JMP", Operands: 1, Exec: (*Cpu).execJmp},
	OP_JEQ:  {Name: "JEQ", Operands: 1, Exec: (*Cpu).execJeq},
	OP_JNE:  {Name: "JNE", Operands: 1, Exec: (*Cpu).execJne},
}

// Lookup returns the instruction table entry for an opcode.
func Lookup(code Code) (inst *Instruction, ok bool) {
	inst, ok = instructionSet[code]
	return
}

// mnemonicMap maps upper-case mnemonics to opcodes.
var mnemonicMap = func() map[string]Code {
	names := make(map[string]Code, len(instructionSet))
	for code, inst := range instructionSet {
		names[inst.Name] = code
	}
	return names
}()
