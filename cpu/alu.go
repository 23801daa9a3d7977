package cpu

// AluOp is the symbolic name of an ALU operation.
type AluOp string

const (
	ALU_OP_ADD = AluOp("ADD") // R[a] += R[b], stored
	ALU_OP_MUL = AluOp("MUL") // R[a] * R[b], not stored
)

// aluFunc computes an ALU operation from the two register values.
// If store is set, the result is written back to the first register.
type aluFunc struct {
	compute func(a, b int) int
	store   bool
}

var aluMap = map[AluOp]aluFunc{
	ALU_OP_ADD: {compute: func(a, b int) int { return (a + b) & 0xff }, store: true},
	ALU_OP_MUL: {compute: func(a, b int) int { return a * b }},
}

// Alu performs the named operation on two registers. Operations that store
// their result write it to regA; the result is returned in either case.
func (cpu *Cpu) Alu(op AluOp, regA, regB int) (result int, err error) {
	alu, ok := aluMap[op]
	if !ok {
		err = ErrUnsupportedOperation(op)
		return
	}

	mach := cpu.Machine

	a, err := mach.ReadRegister(regA)
	if err != nil {
		return
	}
	b, err := mach.ReadRegister(regB)
	if err != nil {
		return
	}

	result = alu.compute(int(a), int(b))

	if alu.store {
		err = mach.WriteRegister(regA, result)
	}

	return
}
