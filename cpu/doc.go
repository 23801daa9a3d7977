// Package cpu implements the execution engine and assembler for the LS-8.
//
// The engine fetches an opcode at the program counter, decodes it through a
// fixed instruction table, and executes it against the state held by a
// machine.Machine. Printed values are sent to a channel.Channel.
//
// Programs are read either from the binary image format (one base-2 byte
// per line) or assembled from LS-8 mnemonics, supporting labels, equates,
// and compile-time expression evaluation.
package cpu
