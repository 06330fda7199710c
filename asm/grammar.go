package asm

import (
	"regexp"
	"strconv"
	"strings"
)

// matcher validates operand text for one shape and extracts the
// operand fields. Matchers are built once, at table initialization.
type matcher struct {
	shape Shape
	re    *regexp.Regexp
}

// matcher builds the anchored operand pattern for the shape.
//
// Register operands are the marker 'R' immediately followed by decimal
// digits; the trailing immediate is a bare decimal number. Operands are
// separated by one or more spaces. The zero-operand shape matches only
// the empty string.
func (shape Shape) matcher() *matcher {
	parts := make([]string, 0, shape.Count())
	for range shape.Registers {
		parts = append(parts, `R(\d+)`)
	}
	if shape.Immediate {
		parts = append(parts, `(\d+)`)
	}

	pattern := "^" + strings.Join(parts, " +") + "$"

	return &matcher{
		shape: shape,
		re:    regexp.MustCompile(pattern),
	}
}

// Operands matches operand text against the opcode's shape and converts
// the extracted fields to numbers, registers first, immediate last.
//
// A rejection is total: wrong operand count, malformed separators,
// non-numeric fields, or trailing text all fail, and never yield a
// partial operand list.
func (op *Op) Operands(text string) (args []uint16, err error) {
	groups := op.match.re.FindStringSubmatch(text)
	if groups == nil {
		err = &ErrOperands{Mnemonic: op.Name, Text: text}
		return
	}

	args = make([]uint16, 0, op.Shape.Count())
	for _, field := range groups[1:] {
		var v64 uint64
		v64, err = strconv.ParseUint(field, 10, 16)
		if err != nil {
			err = ErrParseNumber(field)
			args = nil
			return
		}
		args = append(args, uint16(v64))
	}

	return
}
