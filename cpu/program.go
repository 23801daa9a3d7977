package cpu

import (
	"iter"
)

// Opcode is a line of a program listing, with the bytes it generated.
type Opcode struct {
	LineNo int      // Source line number.
	Addr   int      // Address of the first byte.
	Words  []string // Source words.
	Codes  []byte   // Generated bytes.
}

// Program is a loadable program listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the listing entry covering an address.
type Debug struct {
	*Opcode
	Index int
}

// Debug returns the listing entry covering addr, or a Debug with a nil
// Opcode if there is none.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if addr >= op.Addr && addr < op.Addr+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  addr - op.Addr,
			}
			break
		}
	}

	return
}

// Binary returns the program image, to be loaded at address 0.
func (prog *Program) Binary() (image []byte) {
	for addr, code := range prog.Codes() {
		for len(image) <= addr {
			image = append(image, 0)
		}
		image[addr] = code
	}

	return
}

// Codes iterates over every address and byte of the program.
func (prog *Program) Codes() iter.Seq2[int, byte] {
	return func(yield func(addr int, code byte) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Addr+n, code) {
					return
				}
			}
		}
	}
}

// Size returns the number of bytes covered by the program.
func (prog *Program) Size() (size int) {
	for _, op := range prog.Opcodes {
		end := op.Addr + len(op.Codes)
		if end > size {
			size = end
		}
	}

	return
}
