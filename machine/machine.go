// Package machine implements the execution state and fetch-execute
// driver for programs assembled by the asm package.
//
// A Machine owns 16 general-purpose registers, 256 memory cells, an
// output log indexed by execution time, and the program counter. It is
// single-writer by contract: exactly one sequential Run loop may mutate
// a Machine, and instructions assume strict sequential order.
//
// Unlike the encoder, which leaves operand fields unchecked, the
// machine range-checks every register index and memory address and
// fails with an explicit error instead of touching out-of-range state.
package machine

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/jsmith/rasm16/asm"
	"github.com/jsmith/rasm16/internal"
)

const (
	REGISTER_COUNT = 16      // Register file slots.
	MEMORY_SIZE    = 256     // Memory cells, byte-addressable.
	TICK_LIMIT     = 1 << 22 // Runaway-loop guard for Run.
)

var _machine_defines = map[string]string{
	"REG_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"MEM_SIZE":  fmt.Sprintf("%v", MEMORY_SIZE),
}

// Machine is the mutable execution state shared by every instruction.
type Machine struct {
	Verbose bool // If set, logs each executed instruction.

	Register [REGISTER_COUNT]int // Register file.
	Memory   [MEMORY_SIZE]int    // Data memory.
	Output   map[int]int         // Output log, keyed by time.
	Pc       int                 // Next instruction index.
	Time     int                 // Ticks since the last reset.
}

// New creates a machine with cleared state.
func New() (m *Machine) {
	m = &Machine{}
	m.Reset()

	return
}

// Defines returns the machine geometry and opcode equates made visible
// to assembler predefines.
func (m *Machine) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_machine_defines), asm.Defines())
}

// Reset clears registers, memory, the output log, and the counters.
func (m *Machine) Reset() {
	clear(m.Register[:])
	clear(m.Memory[:])
	m.Output = map[int]int{}
	m.Pc = 0
	m.Time = 0
}

// reg reads a register, range-checked.
func (m *Machine) reg(index uint16) (value int, err error) {
	if int(index) >= len(m.Register) {
		err = ErrRegisterRange(index)
		return
	}

	value = m.Register[index]
	return
}

// setReg writes a register, range-checked.
func (m *Machine) setReg(index uint16, value int) (err error) {
	if int(index) >= len(m.Register) {
		err = ErrRegisterRange(index)
		return
	}

	m.Register[index] = value
	return
}

// mem reads a memory cell, range-checked.
func (m *Machine) mem(addr int) (value int, err error) {
	if addr < 0 || addr >= len(m.Memory) {
		err = ErrAddressRange(addr)
		return
	}

	value = m.Memory[addr]
	return
}

// setMem writes a memory cell, range-checked.
func (m *Machine) setMem(addr int, value int) (err error) {
	if addr < 0 || addr >= len(m.Memory) {
		err = ErrAddressRange(addr)
		return
	}

	m.Memory[addr] = value
	return
}

// Step executes one decoded instruction against the machine state and
// advances the program counter. The conditional jump is the only
// instruction that redirects it; halt reports done without advancing.
func (m *Machine) Step(inst asm.Instruction) (done bool, err error) {
	want := inst.Op.Shape.Count()
	if len(inst.Args) != want {
		err = &asm.ErrArity{Mnemonic: inst.Op.Name, Want: want, Got: len(inst.Args)}
		return
	}

	if m.Verbose {
		log.Printf("%03d: %v", m.Pc, inst)
	}

	args := inst.Args
	next := m.Pc + 1

	switch inst.Op.Code {
	case asm.OP_MOV1:
		// REG[r] <- MEM[a]
		var value int
		value, err = m.mem(int(args[1]))
		if err == nil {
			err = m.setReg(args[0], value)
		}
	case asm.OP_MOV2:
		// MEM[a] <- REG[r]
		var value int
		value, err = m.reg(args[0])
		if err == nil {
			err = m.setMem(int(args[1]), value)
		}
	case asm.OP_MOV3:
		// MEM[REG[a]] <- REG[v]
		var addr, value int
		addr, err = m.reg(args[0])
		if err == nil {
			value, err = m.reg(args[1])
		}
		if err == nil {
			err = m.setMem(addr, value)
		}
	case asm.OP_MOV4:
		// MEM[a] <- imm; the register file is untouched.
		err = m.setMem(int(args[0]), int(args[1]))
	case asm.OP_ADD:
		err = m.arith(args, func(a, b int) int { return a + b })
	case asm.OP_SUBT:
		err = m.arith(args, func(a, b int) int { return a - b })
	case asm.OP_MUL:
		err = m.arith(args, func(a, b int) int { return a * b })
	case asm.OP_JZ:
		// Jumps when the register is NON-zero.
		var value int
		value, err = m.reg(args[0])
		if err == nil && value != 0 {
			next = int(args[1])
		}
	case asm.OP_LOAD:
		// REG[d] <- MEM[REG[a]]
		var addr, value int
		addr, err = m.reg(args[1])
		if err == nil {
			value, err = m.mem(addr)
		}
		if err == nil {
			err = m.setReg(args[0], value)
		}
	case asm.OP_READM:
		m.Output[m.Time] = int(args[0])
	case asm.OP_HALT:
		done = true
		return
	default:
		err = ErrBadInstruction(inst.Word)
	}

	if err != nil {
		return
	}

	m.Pc = next
	return
}

// Run drives the fetch-execute loop from the current program counter
// until a halt, until the counter leaves the program, or until the
// tick limit trips. Machine state is carried over from one instruction
// to the next; Run does not reset it.
func (m *Machine) Run(prog *asm.Program) (err error) {
	for {
		inst, ok := prog.At(m.Pc)
		if !ok {
			return
		}

		var done bool
		done, err = m.Step(*inst)
		if err != nil {
			err = &ErrRuntime{LineNo: inst.LineNo, Err: err}
			return
		}
		if done {
			return
		}

		m.Time += 1
		if m.Time >= TICK_LIMIT {
			err = &ErrRuntime{LineNo: inst.LineNo, Err: ErrTickLimit}
			return
		}
	}
}

// arith applies a three-register arithmetic instruction.
func (m *Machine) arith(args []uint16, fn func(a, b int) int) (err error) {
	a, err := m.reg(args[1])
	if err != nil {
		return
	}
	b, err := m.reg(args[2])
	if err != nil {
		return
	}

	return m.setReg(args[0], fn(a, b))
}
