package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrStackUnderflow is returned when a return instruction executes with an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow: return without matching call")

	// ErrStackOverflow is returned when a call instruction would exceed StackDepth return addresses.
	ErrStackOverflow = errors.New("stack overflow: call depth exceeded")
)

// CapacityError is returned by Load when a program does not fit into the
// program region. Memory is left unchanged.
type CapacityError struct {
	Size     int // size of the rejected program in bytes
	Capacity int // available program space in bytes
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("program of %d bytes exceeds capacity of %d bytes", e.Size, e.Capacity)
}

// UnimplementedOpcodeError is returned by Step and Decode for an instruction
// word that matches no known instruction form.
type UnimplementedOpcodeError struct {
	Address uint16  // address the instruction was fetched from
	Nibbles [4]byte // the instruction word split into 4-bit fields, most significant first
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode %X%X%X%X at address $%03X",
		e.Nibbles[0], e.Nibbles[1], e.Nibbles[2], e.Nibbles[3], e.Address)
}

// Opcode returns the raw instruction word.
func (e *UnimplementedOpcodeError) Opcode() uint16 {
	return uint16(e.Nibbles[0])<<12 | uint16(e.Nibbles[1])<<8 | uint16(e.Nibbles[2])<<4 | uint16(e.Nibbles[3])
}

// IsFatal returns whether err halts the interpreter. Everything Step
// returns is fatal, a CapacityError from Load is not.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var capacityErr *CapacityError
	return !errors.As(err, &capacityErr)
}
