package cpu

import (
	"github.com/ezrec/ls8/machine"
)

// Stack is a view of the machine stack. The stack lives in memory, growing
// down from machine.SP_INIT, and SP addresses the most recently pushed
// value.
type Stack struct {
	Machine *machine.Machine
}

// Empty returns true if nothing is on the stack.
func (s Stack) Empty() bool {
	return s.Machine.SP() >= machine.SP_INIT
}

// Full returns true if a push would overwrite the program image.
func (s Stack) Full() bool {
	return int(s.Machine.SP())-1 < s.Machine.ProgramLength()
}

// Depth returns the number of values on the stack.
func (s Stack) Depth() int {
	if s.Empty() {
		return 0
	}
	return machine.SP_INIT - int(s.Machine.SP())
}

// Push decrements SP, and writes the value to the new top of the stack.
func (s Stack) Push(value byte) (err error) {
	if s.Full() {
		err = ErrStackOverflow
		return
	}

	mach := s.Machine
	sp := int(mach.SP()) - 1

	err = mach.WriteMemory(sp, int(value))
	if err != nil {
		return
	}

	err = mach.WriteRegister(machine.REG_SP, sp)
	return
}

// Peek returns the value at the top of the stack.
func (s Stack) Peek() (value byte, err error) {
	if s.Empty() {
		err = ErrStackUnderflow
		return
	}

	value, err = s.Machine.ReadMemory(int(s.Machine.SP()))
	return
}
