// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs LS-8 programs.
package emulator

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/ls8/channel"
	"github.com/ezrec/ls8/cpu"
)

// Emulator state. CPU + program + output channel.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	MaxSteps int // If non-zero, Run stops after this many instructions.
}

// NewEmulator creates a new emulator, with its own machine.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// SetOutput sets the channel that receives printed values.
func (emu *Emulator) SetOutput(output channel.Channel) {
	emu.Cpu.Output = output
}

// Reset the machine, and load the program into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	image := emu.Program.Binary()

	err = emu.Cpu.Reset(image)
	if err != nil {
		err = &ErrRuntime{Err: err}
		return
	}

	if emu.Verbose {
		log.Debugf("emulator: loaded %d bytes", len(image))
	}

	return
}

// Ticks returns the instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.Machine.Pc
}

// LineNo returns the source line number for the opcode at the PC.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Pc())
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction. done is set once the program halts.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted
	return
}

// Run executes until the program halts, a fault occurs, the step limit is
// reached, or ctx is done. ctx is only checked between instructions.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for steps := 0; ; steps++ {
		err = ctx.Err()
		if err != nil {
			return
		}

		if emu.MaxSteps > 0 && steps >= emu.MaxSteps {
			err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrStepLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			break
		}
	}

	if emu.Verbose {
		log.WithField("ticks", emu.Ticks()).Debug("emulator: stopped")
	}

	return
}
