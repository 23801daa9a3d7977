package machine

import (
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

// ErrAddressFault is a memory access outside of the address space.
type ErrAddressFault int

func (ea ErrAddressFault) Error() string {
	return f("address fault 0x%02x", int(ea))
}

func (ea ErrAddressFault) Is(err error) (ok bool) {
	_, ok = err.(ErrAddressFault)
	return
}

// ErrRegisterFault is a register index outside of the register file.
type ErrRegisterFault int

func (er ErrRegisterFault) Error() string {
	return f("register fault r%d", int(er))
}

func (er ErrRegisterFault) Is(err error) (ok bool) {
	_, ok = err.(ErrRegisterFault)
	return
}
