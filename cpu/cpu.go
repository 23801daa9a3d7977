package cpu

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/ls8/channel"
	"github.com/ezrec/ls8/machine"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%v", machine.MEMORY_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%v", machine.REGISTER_COUNT),
	"SP_INIT":        fmt.Sprintf("0x%02x", machine.SP_INIT),
	"FLAG_E":         fmt.Sprintf("0b%08b", machine.FLAG_E),
	"FLAG_G":         fmt.Sprintf("0b%08b", machine.FLAG_G),
	"FLAG_L":         fmt.Sprintf("0b%08b", machine.FLAG_L),
}

// Cpu is the execution engine of the LS-8.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Machine *machine.Machine // Memory, registers, and flags.
	Output  channel.Channel  // Destination of printed values.
	Trace   io.Writer        // If set, a trace line is written per instruction.

	Halted bool // Set once HLT has executed.
	Ticks  int  // Instructions executed.
}

// NewCpu creates a new CPU, with its own machine state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Machine: machine.NewMachine(),
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Stack returns a view of the machine stack.
func (cpu *Cpu) Stack() Stack {
	return Stack{Machine: cpu.Machine}
}

// Reset clears the machine, then loads a program image at address 0.
func (cpu *Cpu) Reset(image []byte) (err error) {
	if cpu.Verbose {
		log.Debugf("cpu: reset, %d byte image", len(image))
	}

	cpu.Machine.Reset()
	cpu.Halted = false
	cpu.Ticks = 0

	if cpu.Output != nil {
		cpu.Output.Reset()
	}

	err = cpu.Machine.Load(image)
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	state := "running"
	if cpu.Halted {
		state = "halted"
	}

	text = fmt.Sprintf("% 5s: %v\n% 5s: %d\n", "state", state, "ticks", cpu.Ticks)
	text += cpu.Machine.String()
	return
}

// Fetch decodes the instruction at the PC, and its operands.
func (cpu *Cpu) Fetch() (code Code, inst *Instruction, args []byte, err error) {
	mach := cpu.Machine
	pc := mach.Pc

	value, err := mach.ReadMemory(pc)
	if err != nil {
		return
	}
	code = Code(value)

	inst, ok := instructionSet[code]
	if !ok {
		err = ErrUnknownOpcode(code)
		return
	}

	args = make([]byte, inst.Operands)
	for n := range args {
		args[n], err = mach.ReadMemory(pc + 1 + n)
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single instruction.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	pc := cpu.Machine.Pc

	code, inst, args, err := cpu.Fetch()
	defer func() {
		if err != nil {
			_, fetched := cpu.Machine.Peek(pc)
			err = &ErrFault{Pc: pc, Opcode: code, Fetched: fetched, Err: err}
		}
	}()
	if err != nil {
		return
	}

	if cpu.Trace != nil {
		cpu.traceLine(pc)
	}

	if cpu.Verbose {
		log.WithFields(log.Fields{
			"pc":   fmt.Sprintf("%02x", pc),
			"args": fmt.Sprintf("%x", args),
		}).Debugf("cpu: %v", inst.Name)
	}

	jumped, err := inst.Exec(cpu, args)
	if err != nil {
		return
	}

	if !jumped {
		cpu.Machine.Pc = pc + 1 + len(args)
	}

	cpu.Ticks++

	return
}

// traceLine writes the PC, the three bytes at the PC, and the registers.
func (cpu *Cpu) traceLine(pc int) {
	mach := cpu.Machine

	var sb strings.Builder
	fmt.Fprintf(&sb, "TRACE: %02X |", pc)
	for n := range 3 {
		value, ok := mach.Peek(pc + n)
		if ok {
			fmt.Fprintf(&sb, " %02X", value)
		} else {
			sb.WriteString(" --")
		}
	}
	sb.WriteString(" |")
	for n := range machine.REGISTER_COUNT {
		value, _ := mach.ReadRegister(n)
		fmt.Fprintf(&sb, " %02X", value)
	}
	sb.WriteString("\n")

	io.WriteString(cpu.Trace, sb.String())
}

// send emits a printed value.
func (cpu *Cpu) send(value int) (err error) {
	if cpu.Output == nil {
		err = ErrChannelInvalid
		return
	}

	err = cpu.Output.Send(value)
	return
}

func (cpu *Cpu) execHlt(args []byte) (jumped bool, err error) {
	cpu.Halted = true
	return
}

func (cpu *Cpu) execLdi(args []byte) (jumped bool, err error) {
	err = cpu.Machine.WriteRegister(int(args[0]), int(args[1]))
	return
}

func (cpu *Cpu) execPrn(args []byte) (jumped bool, err error) {
	value, err := cpu.Machine.ReadRegister(int(args[0]))
	if err != nil {
		return
	}

	err = cpu.send(int(value))
	return
}

func (cpu *Cpu) execAdd(args []byte) (jumped bool, err error) {
	_, err = cpu.Alu(ALU_OP_ADD, int(args[0]), int(args[1]))
	return
}

// execMul prints the product; it does not store it.
func (cpu *Cpu) execMul(args []byte) (jumped bool, err error) {
	value, err := cpu.Alu(ALU_OP_MUL, int(args[0]), int(args[1]))
	if err != nil {
		return
	}

	err = cpu.send(value)
	return
}

func (cpu *Cpu) execCmp(args []byte) (jumped bool, err error) {
	mach := cpu.Machine

	a, err := mach.ReadRegister(int(args[0]))
	if err != nil {
		return
	}
	b, err := mach.ReadRegister(int(args[1]))
	if err != nil {
		return
	}

	mach.SetFlags(a == b, a < b, a > b)
	return
}

// execPush pushes a register. Pushing SP pushes its decremented value.
func (cpu *Cpu) execPush(args []byte) (jumped bool, err error) {
	reg := int(args[0])

	value, err := cpu.Machine.ReadRegister(reg)
	if err != nil {
		return
	}
	if reg == machine.REG_SP {
		value--
	}

	err = cpu.Stack().Push(value)
	return
}

// execPop pops into a register. SP is incremented after the register is
// written, so popping into SP leaves it one past the popped value.
func (cpu *Cpu) execPop(args []byte) (jumped bool, err error) {
	mach := cpu.Machine
	reg := int(args[0])

	value, err := cpu.Stack().Peek()
	if err != nil {
		return
	}

	err = mach.WriteRegister(reg, int(value))
	if err != nil {
		return
	}

	err = mach.WriteRegister(machine.REG_SP, int(mach.SP())+1)
	return
}

// jumpIf sets the PC to the value of a register, if cond is true.
// The register is validated either way.
func (cpu *Cpu) jumpIf(reg byte, cond bool) (jumped bool, err error) {
	target, err := cpu.Machine.ReadRegister(int(reg))
	if err != nil {
		return
	}

	if cond {
		cpu.Machine.Pc = int(target)
		jumped = true
	}

	return
}

func (cpu *Cpu) execJmp(args []byte) (jumped bool, err error) {
	return cpu.jumpIf(args[0], true)
}

func (cpu *Cpu) execJeq(args []byte) (jumped bool, err error) {
	return cpu.jumpIf(args[0], cpu.Machine.Flag(machine.FLAG_E))
}

func (cpu *Cpu) execJne(args []byte) (jumped bool, err error) {
	return cpu.jumpIf(args[0], !cpu.Machine.Flag(machine.FLAG_E))
}
