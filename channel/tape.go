package channel

import (
	"io"
	"strconv"
)

// Tape writes each value as a decimal number on its own line.
type Tape struct {
	Output io.Writer

	Written int // Count of values written.
}

var _ Channel = (*Tape)(nil)

// Reset is not possible on a tape, beyond the counter.
func (tc *Tape) Reset() {
	tc.Written = 0
}

// Send writes a value, followed by a newline.
func (tc *Tape) Send(value int) (err error) {
	if tc.Output == nil {
		err = ErrChannelOutput
		return
	}

	line := strconv.AppendInt(nil, int64(value), 10)
	line = append(line, '\n')
	_, err = tc.Output.Write(line)
	if err != nil {
		return
	}

	tc.Written++
	return
}
