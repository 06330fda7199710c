// Package asm implements the instruction table, parser, and word encoder
// for the R16 toy machine.
//
// Each source line holds at most one instruction: a mnemonic followed by
// register operands (written R0..R15) and an optional trailing immediate.
// The parser packs every instruction into a single 16-bit word laid out
// as [opcode:4][field0:4][field1:4][field2:4], rendered as four uppercase
// hex digits.
//
// The assembler supports '#' line comments, .equ equates, and
// compile-time $() expression evaluation. Labels, macros, and sections
// are not part of the language; execution lives in the machine package.
package asm
