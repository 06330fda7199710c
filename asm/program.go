package asm

import (
	"fmt"
	"iter"
	"strings"
)

// Instruction is one parsed and encoded source line. It is immutable
// after the parse: re-parsing the same line yields an identical value.
type Instruction struct {
	LineNo int      // Source line the instruction came from.
	Op     *Op      // Instruction table entry.
	Args   []uint16 // Operand values, registers first, immediate last.
	Word   uint16   // Encoded 16-bit word.
}

// Hex returns the encoded word as four uppercase hex digits.
func (inst Instruction) Hex() string {
	return Hex(inst.Word)
}

// String reconstructs the canonical source text of the instruction.
func (inst Instruction) String() string {
	words := []string{inst.Op.Name}
	for i, arg := range inst.Args {
		if i < inst.Op.Shape.Registers {
			words = append(words, fmt.Sprintf("R%v", arg))
		} else {
			words = append(words, fmt.Sprintf("%v", arg))
		}
	}
	return strings.Join(words, " ")
}

// Program is an ordered sequence of decoded instructions, indexed by
// the program counter.
type Program struct {
	Instructions []Instruction
}

// At returns the instruction at a program counter value.
func (prog *Program) At(pc int) (inst *Instruction, ok bool) {
	if pc < 0 || pc >= len(prog.Instructions) {
		return
	}

	return &prog.Instructions[pc], true
}

// Codes iterates the encoded words in program order.
func (prog *Program) Codes() iter.Seq2[int, uint16] {
	return func(yield func(pc int, word uint16) bool) {
		for pc, inst := range prog.Instructions {
			if !yield(pc, inst.Word) {
				return
			}
		}
	}
}

// Binary returns the packed instruction words in program order.
func (prog *Program) Binary() (bins []uint16) {
	for _, word := range prog.Codes() {
		bins = append(bins, word)
	}

	return
}

// Listing renders the program as one "pc hex source" line per
// instruction.
func (prog *Program) Listing() (text string) {
	for pc, inst := range prog.Instructions {
		text += fmt.Sprintf("%03d  %v  %v\n", pc, inst.Hex(), inst.String())
	}

	return
}
