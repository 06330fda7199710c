package asm

import (
	"fmt"
)

// HEX_DIGITS is the width of a rendered instruction word.
const HEX_DIGITS = 4

// Encode packs the opcode and operand values into a single 16-bit word:
// [opcode:4][field0:4][field1:4][field2:4]. Register operand i is
// shifted into field i; a trailing immediate is added unshifted, so it
// occupies whatever low-order bits the register fields left unused.
//
// Operand values are not range-checked against their field width: an
// oversized register index bleeds into the neighboring field. Only the
// final word is guarded, against exceeding the 4-hex-digit render.
func (op *Op) Encode(args []uint16) (word uint16, err error) {
	if op.Code > CODE_MAX {
		// Table initialization already asserts this; kept as a
		// defense against hand-built Op values.
		err = ErrCodeRange(op.Code)
		return
	}
	if len(args) != op.Shape.Count() {
		err = &ErrArity{Mnemonic: op.Name, Want: op.Shape.Count(), Got: len(args)}
		return
	}

	sum := uint32(op.Code) << 12
	for i := range op.Shape.Registers {
		sum += uint32(args[i]) << (4 * (2 - i))
	}
	if op.Shape.Immediate {
		sum += uint32(args[len(args)-1])
	}

	if sum > 0xffff {
		err = ErrHexRange(sum)
		return
	}

	word = uint16(sum)
	return
}

// Hex renders an encoded word as exactly four uppercase hex digits.
func Hex(word uint16) string {
	return fmt.Sprintf("%04X", word)
}
