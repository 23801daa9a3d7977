package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted         = errors.New(f("cpu halted"))
	ErrStackUnderflow = errors.New(f("stack underflow"))
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrChannelInvalid = errors.New(f("channel invalid"))

	// Loader errors
	ErrLiteralRange = errors.New(f("literal out of range"))
	ErrProgramSize  = errors.New(f("program too large"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandCount    = errors.New(f("operand count"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
)

// ErrUnknownOpcode is a fetched byte with no instruction table entry.
type ErrUnknownOpcode Code

func (eo ErrUnknownOpcode) Error() string {
	return f("unknown opcode 0x%02x", byte(eo))
}

func (eo ErrUnknownOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownOpcode)
	return
}

// ErrUnsupportedOperation is an ALU operation name that is not implemented.
type ErrUnsupportedOperation string

func (eu ErrUnsupportedOperation) Error() string {
	return f("unsupported alu operation '%v'", string(eu))
}

func (eu ErrUnsupportedOperation) Is(err error) (ok bool) {
	_, ok = err.(ErrUnsupportedOperation)
	return
}

// ErrFault is an unrecoverable fault raised by an instruction.
type ErrFault struct {
	Pc      int  // PC of the faulting instruction.
	Opcode  Code // Opcode fetched at Pc, if Fetched.
	Fetched bool // Set if the opcode byte at Pc could be read.
	Err     error
}

func (err *ErrFault) Error() string {
	if !err.Fetched {
		return f("pc 0x%02x: %v", err.Pc, err.Err)
	}
	return f("pc 0x%02x opcode %v: %v", err.Pc, err.Opcode, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrLoadFormat is a malformed line of a program image.
type ErrLoadFormat struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrLoadFormat) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrLoadFormat) Unwrap() error {
	return err.Err
}

// ErrSyntax is an assembler error at a line of source.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
