package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexPad(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0000", Hex(0x0000))
	assert.Equal("0064", Hex(0x0064))
	assert.Equal("F000", Hex(0xf000))
	assert.Equal("FFFF", Hex(0xffff))
}

func TestEncodeFields(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		mnemonic string
		args     []uint16
		word     uint16
	}){
		{"add", []uint16{1, 2, 3}, 0x4123},
		{"subt", []uint16{0, 1, 2}, 0x5012},
		{"mul", []uint16{1, 2, 3}, 0x8123},
		{"halt", nil, 0xf000},
		{"mov3", []uint16{2, 3}, 0x2230},
		{"load", []uint16{4, 5}, 0x9450},
		// Immediate lands in the low bits the register fields left.
		{"mov1", []uint16{1, 100}, 0x0164},
		{"jz", []uint16{3, 7}, 0x6307},
		{"readm", []uint16{42}, 0x702a},
	}

	for _, entry := range table {
		op, err := Lookup(entry.mnemonic)
		assert.NoError(err, entry.mnemonic)

		word, err := op.Encode(entry.args)
		assert.NoError(err, entry.mnemonic)
		assert.Equal(entry.word, word, entry.mnemonic)
	}
}

// An operand value too large for its 4-bit field is not rejected; it
// bleeds into the neighboring field. This mirrors the reference
// encoder and is part of the documented contract.
func TestEncodeFieldOverlap(t *testing.T) {
	assert := assert.New(t)

	op, err := Lookup("add")
	assert.NoError(err)

	word, err := op.Encode([]uint16{16, 0, 0})
	assert.NoError(err)
	assert.Equal(uint16(0x5000), word)
}

func TestEncodeHexRange(t *testing.T) {
	assert := assert.New(t)

	op, err := Lookup("readm")
	assert.NoError(err)

	_, err = op.Encode([]uint16{0xffff})
	assert.Equal(ErrHexRange(0x16fff), err)
}

func TestEncodeArity(t *testing.T) {
	assert := assert.New(t)

	op, err := Lookup("add")
	assert.NoError(err)

	_, err = op.Encode([]uint16{1, 2})
	assert.Equal(&ErrArity{Mnemonic: "add", Want: 3, Got: 2}, err)
}

func TestEncodeCodeRange(t *testing.T) {
	assert := assert.New(t)

	bogus := &Op{Name: "bogus", Code: OpCode(0x10)}
	_, err := bogus.Encode(nil)
	assert.Equal(ErrCodeRange(0x10), err)
}
