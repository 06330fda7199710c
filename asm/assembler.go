package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// COMMENT_MARKER starts a line comment extending to end of line.
const COMMENT_MARKER = "#"

var (
	mnemonicRe = regexp.MustCompile(`^[0-9A-Za-z]+`)
	parenRe    = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler translates R16 source text into a Program of encoded
// instructions. Parsing has no cross-line state beyond equates: each
// instruction's meaning is determined by its own line, in source order.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	v64, err := strconv.ParseUint(word, 0, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint16(v64)

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 uint16
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be register
			// names or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xffff {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// ParseLine parses a single source line into an instruction.
//
// A line that is blank, comment-only, or a directive yields no
// instruction and no error. ParseLine never touches machine state;
// its only output is the returned instruction.
func (asm *Assembler) ParseLine(line string, lineno int) (inst *Instruction, err error) {
	if asm.Equate == nil {
		asm.reset()
	}

	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	text_comment := strings.SplitN(line, COMMENT_MARKER, 2)
	line = strings.TrimSpace(text_comment[0])
	if len(line) == 0 {
		return
	}

	// Do $() evaluations
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	// .equ CONST VALUE
	if words := strings.Fields(line); words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	mnemonic := mnemonicRe.FindString(line)
	if len(mnemonic) == 0 {
		err = ErrMnemonicMissing
		return
	}
	remainder := strings.TrimSpace(line[len(mnemonic):])

	op, err := Lookup(mnemonic)
	if err != nil {
		return
	}

	// Equate substitution on the operand words.
	if len(remainder) > 0 {
		words := strings.Fields(remainder)
		for n, word := range words {
			equate, ok := asm.Equate[word]
			if ok {
				words[n] = equate
			}
		}
		remainder = strings.Join(words, " ")
	}

	args, err := op.Operands(remainder)
	if err != nil {
		return
	}

	word, err := op.Encode(args)
	if err != nil {
		return
	}

	inst = &Instruction{
		LineNo: lineno,
		Op:     op,
		Args:   args,
		Word:   word,
	}

	return
}

// reset restores the equate table to the predefined state.
func (asm *Assembler) reset() {
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
}

// Parse parses an input stream into a Program of encoded instructions,
// in source order. Blank and comment-only lines are skipped; any other
// malformed line terminates the parse with an ErrSyntax locating it.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.reset()

	prog = &Program{}

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		var inst *Instruction
		inst, err = asm.ParseLine(line, lineno)
		if err != nil {
			prog = nil
			return
		}
		if inst == nil {
			continue
		}

		prog.Instructions = append(prog.Instructions, *inst)
	}

	err = scanner.Err()
	if err != nil {
		prog = nil
	}

	return
}

// Assemble splits multi-line source text on line breaks and parses it.
func (asm *Assembler) Assemble(text string) (prog *Program, err error) {
	return asm.Parse(strings.NewReader(text))
}
