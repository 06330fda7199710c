package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeTable(t *testing.T) {
	assert := assert.New(t)

	seen := map[OpCode]string{}
	count := 0
	for mnemonic := range Mnemonics() {
		op, err := Lookup(mnemonic)
		assert.NoError(err, mnemonic)
		assert.Equal(mnemonic, op.Name)
		assert.LessOrEqual(op.Code, CODE_MAX, mnemonic)

		prior, dup := seen[op.Code]
		assert.False(dup, "%v and %v share code 0x%x", mnemonic, prior, uint16(op.Code))
		seen[op.Code] = mnemonic

		count += 1
	}

	assert.Equal(11, count)
}

func TestOpcodeShapes(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		mnemonic  string
		registers int
		immediate bool
	}){
		{"mov1", 1, true},
		{"mov2", 1, true},
		{"mov3", 2, false},
		{"mov4", 1, true},
		{"add", 3, false},
		{"subt", 3, false},
		{"jz", 1, true},
		{"halt", 0, false},
		{"mul", 3, false},
		{"load", 2, false},
		{"readm", 0, true},
	}

	for _, entry := range table {
		op, err := Lookup(entry.mnemonic)
		assert.NoError(err, entry.mnemonic)
		assert.Equal(entry.registers, op.Shape.Registers, entry.mnemonic)
		assert.Equal(entry.immediate, op.Shape.Immediate, entry.mnemonic)
	}
}

func TestOpcodeRoundTrip(t *testing.T) {
	assert := assert.New(t)

	// The numeric code, packed into the top 4 bits, must round-trip
	// through the encoder for every mnemonic.
	for mnemonic := range Mnemonics() {
		op, err := Lookup(mnemonic)
		assert.NoError(err, mnemonic)

		args := make([]uint16, op.Shape.Count())
		word, err := op.Encode(args)
		assert.NoError(err, mnemonic)
		assert.Equal(op.Code, OpCode(word>>12), mnemonic)
	}
}

func TestOpcodeUnknown(t *testing.T) {
	assert := assert.New(t)

	_, err := Lookup("foo")
	assert.Equal(ErrUnknownOpcode("foo"), err)

	// Mnemonics are case-sensitive.
	_, err = Lookup("HALT")
	assert.Error(err)
}

func TestOpcodeDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for equ, value := range Defines() {
		defines[equ] = value
	}

	assert.Equal("4", defines["OP_ADD"])
	assert.Equal("5", defines["OP_SUBT"])
	assert.Equal("8", defines["OP_MUL"])
	assert.Equal("15", defines["OP_HALT"])
}
