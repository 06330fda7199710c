package asm

import (
	"errors"

	"github.com/jsmith/rasm16/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrMnemonicMissing = errors.New(f("mnemonic missing"))
)

// ErrUnknownOpcode names a mnemonic absent from the instruction table.
type ErrUnknownOpcode string

func (err ErrUnknownOpcode) Error() string {
	return f("unknown instruction '%v'", string(err))
}

// ErrOperands reports operand text that does not match the opcode's shape.
type ErrOperands struct {
	Mnemonic string
	Text     string
}

func (err *ErrOperands) Error() string {
	return f("instruction '%v': operands '%v' do not match", err.Mnemonic, err.Text)
}

// ErrArity reports an operand list of the wrong length for the opcode.
type ErrArity struct {
	Mnemonic string
	Want     int
	Got      int
}

func (err *ErrArity) Error() string {
	return f("instruction '%v': %v operands, expected %v", err.Mnemonic, err.Got, err.Want)
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrCodeRange reports an opcode whose numeric code does not fit 4 bits.
// This is a configuration error, not a runtime one.
type ErrCodeRange OpCode

func (err ErrCodeRange) Error() string {
	return f("opcode 0x%x exceeds 4 bits", uint16(err))
}

// ErrHexRange reports a packed value that cannot be rendered in the
// fixed hex digit width. It implies a logic error elsewhere, since
// in-range fields always fit 16 bits.
type ErrHexRange uint32

func (err ErrHexRange) Error() string {
	return f("value 0x%x needs more than %v hex digits", uint32(err), HEX_DIGITS)
}

// ErrSyntax locates a parse failure in the source text.
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
