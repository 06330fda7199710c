package machine

import (
	"errors"

	"github.com/jsmith/rasm16/translate"
)

var f = translate.From

// ErrTickLimit trips when Run executes more instructions than the
// runaway-loop guard allows.
var ErrTickLimit = errors.New(f("tick limit exceeded"))

// ErrRegisterRange reports a register index outside the register file.
type ErrRegisterRange uint16

func (err ErrRegisterRange) Error() string {
	return f("register R%v out of range [0..%v]", uint16(err), REGISTER_COUNT-1)
}

// ErrAddressRange reports a memory address outside the memory array.
type ErrAddressRange int

func (err ErrAddressRange) Error() string {
	return f("address %v out of range [0..%v]", int(err), MEMORY_SIZE-1)
}

// ErrBadInstruction reports an instruction word whose opcode is not in
// the instruction table.
type ErrBadInstruction uint16

func (err ErrBadInstruction) Error() string {
	return f("bad instruction 0x%04x", uint16(err))
}

// ErrRuntime locates a runtime error at its source line.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
