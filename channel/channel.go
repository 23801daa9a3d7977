// Package channel provides the output channels for the LS-8 emulator.
//
// The LS-8 has a single output side effect: printing a value. Each printed
// value is sent, in program order, to a Channel.
package channel

// Channel receives the values printed by a running program.
type Channel interface {
	// Reset discards any buffered state.
	Reset()
	// Send emits a single printed value.
	Send(value int) error
}
