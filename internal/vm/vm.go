package vm

import (
	"math/rand/v2"
)

// Memory layout and machine dimensions.
const (
	MemorySize      = 0x1000 // total addressable memory in bytes
	AddressMask     = 0x0FFF // mask applied to addresses derived from I and PC
	ProgramStart    = 0x200  // load address of programs and initial program counter
	ProgramCapacity = MemorySize - ProgramStart

	FontBase      = 0x050 // address of the first font glyph
	FontGlyphs    = 16
	FontGlyphSize = 5

	RegisterCount   = 16
	FlagRegister    = 0xF // VF, carry, borrow and collision output
	StackDepth      = 16
	KeyCount        = 16
	InstructionSize = 2
)

// Option configures a VM on construction.
type Option func(*VM)

// WithSeed seeds the random number source used by CXNN.
func WithSeed(seed uint64) Option {
	return func(m *VM) {
		m.rng = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	}
}

// WithRandom sets the random number source used by CXNN.
func WithRandom(rng *rand.Rand) Option {
	return func(m *VM) {
		m.rng = rng
	}
}

// VM is a CHIP-8 interpreter instance. It is not safe for concurrent use.
type VM struct {
	memory [MemorySize]byte
	v      [RegisterCount]byte
	i      uint16
	pc     uint16
	stack  []uint16

	delayTimer byte
	soundTimer byte

	display     Display
	needsRedraw bool
	keys        [KeyCount]bool

	rng    *rand.Rand
	halted error
}

// New returns a new interpreter in its reset state.
func New(opts ...Option) *VM {
	m := &VM{
		stack: make([]uint16, 0, StackDepth),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	m.Reset()
	return m
}

// Reset reinitializes all machine state: memory is zeroed and the font
// reloaded, registers, timers, stack, display and keypad are cleared and the
// program counter points at ProgramStart. A loaded program has to be loaded
// again.
func (m *VM) Reset() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[FontBase:], font[:])

	m.v = [RegisterCount]byte{}
	m.i = 0
	m.pc = ProgramStart
	m.stack = m.stack[:0]

	m.delayTimer = 0
	m.soundTimer = 0

	m.display.clear()
	m.needsRedraw = true
	m.keys = [KeyCount]bool{}
	m.halted = nil
}

// Load copies a program into memory at ProgramStart. A program larger than
// ProgramCapacity returns a CapacityError and leaves memory unchanged.
func (m *VM) Load(program []byte) error {
	if len(program) > ProgramCapacity {
		return &CapacityError{Size: len(program), Capacity: ProgramCapacity}
	}
	copy(m.memory[ProgramStart:], program)
	return nil
}

// TickTimers decrements the delay and sound timers by one, stopping at zero.
func (m *VM) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// PressKey marks keypad key n as held. Out of range keys are ignored.
func (m *VM) PressKey(n int) {
	if n < 0 || n >= KeyCount {
		return
	}
	m.keys[n] = true
}

// UnpressKey marks keypad key n as released. Out of range keys are ignored.
func (m *VM) UnpressKey(n int) {
	if n < 0 || n >= KeyCount {
		return
	}
	m.keys[n] = false
}

// KeyPressed returns whether keypad key n is held.
func (m *VM) KeyPressed(n int) bool {
	if n < 0 || n >= KeyCount {
		return false
	}
	return m.keys[n]
}

// Display returns a snapshot of the framebuffer.
func (m *VM) Display() Display {
	return m.display
}

// NeedsRedraw returns whether the display changed since the last call to MarkRedrawn.
func (m *VM) NeedsRedraw() bool {
	return m.needsRedraw
}

// MarkRedrawn clears the display changed flag.
func (m *VM) MarkRedrawn() {
	m.needsRedraw = false
}

// PC returns the program counter.
func (m *VM) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *VM) Index() uint16 {
	return m.i
}

// Register returns the value of register VX, x is taken modulo 16.
func (m *VM) Register(x int) byte {
	return m.v[x&0x0F]
}

// DelayTimer returns the current delay timer value.
func (m *VM) DelayTimer() byte {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value. A host can signal a
// beep while it is non zero.
func (m *VM) SoundTimer() byte {
	return m.soundTimer
}

// StackDepth returns the number of return addresses on the call stack.
func (m *VM) StackDepth() int {
	return len(m.stack)
}

// ReadMemory returns the byte at address, masked to the 4KB address space.
func (m *VM) ReadMemory(address uint16) byte {
	return m.memory[address&AddressMask]
}

// Halted returns the fatal error that stopped the interpreter, nil while it
// is able to execute instructions.
func (m *VM) Halted() error {
	return m.halted
}
