// Package machine holds the state of an LS-8 machine.
//
// The state consists of a 256 byte memory, eight 8-bit registers (r0-r7,
// with r7 used as the stack pointer), the FL flags register, and the
// program counter. Every access is bounds checked, so any fault raised
// while running a program originates from one of the accessors here.
package machine
