package asm

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

// OpCode is a 4-bit instruction identifier, stored in the top nibble
// of the encoded word.
type OpCode uint16

const (
	OP_MOV1  = OpCode(0x0) // mov1 Rn addr : REG[n] <- MEM[addr]
	OP_MOV2  = OpCode(0x1) // mov2 Rn addr : MEM[addr] <- REG[n]
	OP_MOV3  = OpCode(0x2) // mov3 Ra Rv   : MEM[REG[a]] <- REG[v]
	OP_MOV4  = OpCode(0x3) // mov4 Ra imm  : MEM[a] <- imm (writes memory, not the register file)
	OP_ADD   = OpCode(0x4) // add Rd Ra Rb : REG[d] <- REG[a] + REG[b]
	OP_SUBT  = OpCode(0x5) // subt Rd Ra Rb : REG[d] <- REG[a] - REG[b]
	OP_JZ    = OpCode(0x6) // jz Rn target : if REG[n] != 0 then PC <- target
	OP_READM = OpCode(0x7) // readm imm    : OUT[time] <- imm
	OP_MUL   = OpCode(0x8) // mul Rd Ra Rb : REG[d] <- REG[a] * REG[b]
	OP_LOAD  = OpCode(0x9) // load Rd Ra   : REG[d] <- MEM[REG[a]]
	OP_HALT  = OpCode(0xf) // halt         : stop the fetch loop
)

// CODE_MAX is the largest opcode representable in the 4-bit field.
const CODE_MAX = OpCode(0xf)

// Shape describes the operand grammar and bit layout of an opcode:
// how many register operands it takes, and whether a bare decimal
// immediate follows them.
type Shape struct {
	Registers int  // Count of register operands (0-3).
	Immediate bool // Trailing immediate operand.
}

// Count returns the total number of operand values the shape carries.
func (shape Shape) Count() (count int) {
	count = shape.Registers
	if shape.Immediate {
		count += 1
	}
	return
}

// Op is one entry of the closed instruction table.
type Op struct {
	Name  string
	Code  OpCode
	Shape Shape

	match *matcher
}

// opTable is the full instruction set. It is never modified after
// package initialization.
var opTable = map[string]*Op{
	"mov1": {Name: "mov1", Code: OP_MOV1, Shape: Shape{Registers: 1, Immediate: true}},
	"mov2": {Name: "mov2", Code: OP_MOV2, Shape: Shape{Registers: 1, Immediate: true}},
	"mov3": {Name: "mov3", Code: OP_MOV3, Shape: Shape{Registers: 2}},
	// Note: despite the mnemonic, mov4 writes MEM[a], never REG[a].
	"mov4":  {Name: "mov4", Code: OP_MOV4, Shape: Shape{Registers: 1, Immediate: true}},
	"add":   {Name: "add", Code: OP_ADD, Shape: Shape{Registers: 3}},
	"subt":  {Name: "subt", Code: OP_SUBT, Shape: Shape{Registers: 3}},
	// Note: jz jumps when the tested register is NON-zero.
	"jz":    {Name: "jz", Code: OP_JZ, Shape: Shape{Registers: 1, Immediate: true}},
	"readm": {Name: "readm", Code: OP_READM, Shape: Shape{Immediate: true}},
	"mul":   {Name: "mul", Code: OP_MUL, Shape: Shape{Registers: 3}},
	"load":  {Name: "load", Code: OP_LOAD, Shape: Shape{Registers: 2}},
	"halt":  {Name: "halt", Code: OP_HALT, Shape: Shape{}},
}

var _asm_defines map[string]string

func init() {
	seen := map[OpCode]string{}
	_asm_defines = make(map[string]string, len(opTable))

	for name, op := range opTable {
		if name != op.Name {
			panic(fmt.Sprintf("opcode %v: table key %v mismatch", op.Name, name))
		}
		if op.Code > CODE_MAX {
			panic(fmt.Sprintf("opcode %v: code 0x%x exceeds 4 bits", op.Name, uint16(op.Code)))
		}
		if prior, dup := seen[op.Code]; dup {
			panic(fmt.Sprintf("opcode %v: code 0x%x already used by %v", op.Name, uint16(op.Code), prior))
		}
		seen[op.Code] = op.Name

		op.match = op.Shape.matcher()

		_asm_defines["OP_"+strings.ToUpper(name)] = fmt.Sprintf("%v", uint16(op.Code))
	}
}

// Lookup finds the table entry for a mnemonic.
func Lookup(mnemonic string) (op *Op, err error) {
	op, ok := opTable[mnemonic]
	if !ok {
		err = ErrUnknownOpcode(mnemonic)
	}
	return
}

// Mnemonics returns the mnemonic set, for diagnostics and tests.
func Mnemonics() iter.Seq[string] {
	return maps.Keys(opTable)
}

// Defines returns the numeric opcode equates exported to the assembler.
func Defines() iter.Seq2[string, string] {
	return maps.All(_asm_defines)
}
