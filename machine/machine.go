// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"fmt"
	"strings"
)

const (
	MEMORY_SIZE    = 256  // Bytes of addressable memory.
	REGISTER_COUNT = 8    // Number of general purpose registers.
	REG_SP         = 7    // Register used as the stack pointer.
	SP_INIT        = 0xf4 // Stack pointer of an empty stack.
)

// Flag is a bit of the FL register.
type Flag byte

// FL register layout is 00000LGE.
const (
	FLAG_E = Flag(1 << 0) // Equal
	FLAG_G = Flag(1 << 1) // Greater-than
	FLAG_L = Flag(1 << 2) // Less-than
)

func (fl Flag) String() string {
	switch fl {
	case FLAG_E:
		return "E"
	case FLAG_G:
		return "G"
	case FLAG_L:
		return "L"
	}
	return fmt.Sprintf("Flag(0x%02x)", byte(fl))
}

// Machine is the memory, register file, and flags of an LS-8.
type Machine struct {
	Pc int // Address of the next instruction.

	memory   [MEMORY_SIZE]byte
	register [REGISTER_COUNT]byte
	flags    Flag
	length   int // Bytes of loaded program image.
}

// NewMachine creates a new machine, with an empty stack.
func NewMachine() (mach *Machine) {
	mach = &Machine{}
	mach.Reset()

	return
}

// Reset zeros memory, registers and flags, and empties the stack.
func (mach *Machine) Reset() {
	clear(mach.memory[:])
	clear(mach.register[:])
	mach.register[REG_SP] = SP_INIT
	mach.flags = 0
	mach.length = 0
	mach.Pc = 0
}

// ReadMemory reads a single byte of memory.
func (mach *Machine) ReadMemory(address int) (value byte, err error) {
	if address < 0 || address >= len(mach.memory) {
		err = ErrAddressFault(address)
		return
	}

	value = mach.memory[address]
	return
}

// WriteMemory writes the low 8 bits of value to memory.
func (mach *Machine) WriteMemory(address int, value int) (err error) {
	if address < 0 || address >= len(mach.memory) {
		err = ErrAddressFault(address)
		return
	}

	mach.memory[address] = byte(value)
	return
}

// ReadRegister reads a register.
func (mach *Machine) ReadRegister(index int) (value byte, err error) {
	if index < 0 || index >= len(mach.register) {
		err = ErrRegisterFault(index)
		return
	}

	value = mach.register[index]
	return
}

// WriteRegister writes a register, modulo 256.
func (mach *Machine) WriteRegister(index int, value int) (err error) {
	if index < 0 || index >= len(mach.register) {
		err = ErrRegisterFault(index)
		return
	}

	mach.register[index] = byte(value)
	return
}

// SP returns the stack pointer.
func (mach *Machine) SP() byte {
	return mach.register[REG_SP]
}

// SetFlags replaces all of the comparison flags at once.
func (mach *Machine) SetFlags(equal, less, greater bool) {
	var fl Flag
	if equal {
		fl |= FLAG_E
	}
	if less {
		fl |= FLAG_L
	}
	if greater {
		fl |= FLAG_G
	}
	mach.flags = fl
}

// Flag returns the state of a single flag.
func (mach *Machine) Flag(fl Flag) bool {
	return (mach.flags & fl) != 0
}

// Flags returns the FL register.
func (mach *Machine) Flags() byte {
	return byte(mach.flags)
}

// Load writes a program image into memory, starting at address 0.
// An image that does not fit leaves memory untouched.
func (mach *Machine) Load(image []byte) (err error) {
	if len(image) > len(mach.memory) {
		err = ErrAddressFault(len(mach.memory))
		return
	}

	for address, value := range image {
		err = mach.WriteMemory(address, int(value))
		if err != nil {
			return
		}
	}

	mach.length = len(image)
	return
}

// ProgramLength is the size of the loaded program image.
func (mach *Machine) ProgramLength() int {
	return mach.length
}

// Peek returns the byte at address, and false if the address is out of
// range. Used for display only.
func (mach *Machine) Peek(address int) (value byte, ok bool) {
	if address < 0 || address >= len(mach.memory) {
		return
	}

	return mach.memory[address], true
}

// String returns the machine state as a string.
func (mach *Machine) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "% 5s: %02X\n", "pc", mach.Pc)
	fmt.Fprintf(&sb, "% 5s: %08b\n", "fl", byte(mach.flags))
	for n, val := range mach.register {
		name := fmt.Sprintf("r%d", n)
		if n == REG_SP {
			name = "sp"
		}
		fmt.Fprintf(&sb, "% 5s: %02X\n", name, val)
	}

	text = sb.String()
	return
}
