// Package vm implements the CHIP-8 interpreter core.
//
// # Machine Model
//
// The interpreter owns all machine state as a single unit:
//   - 4KB of memory, the built-in hex font lives at FontBase (0x050)
//   - 16 general purpose 8-bit registers V0-VF, VF doubles as carry,
//     borrow and collision flag
//   - the 16-bit index register I and the program counter
//   - a call stack of return addresses, at most StackDepth entries deep
//   - delay and sound timers that count down to zero
//   - a 64x32 monochrome display and a 16 key hex keypad
//
// Programs are loaded at ProgramStart (0x200).
//
// # Driving the Interpreter
//
// The interpreter never reads a clock, sleeps or performs I/O. A host calls
// Step to execute exactly one instruction and TickTimers at its own cadence,
// usually 60 times per second:
//
//	m := vm.New(vm.WithSeed(1))
//	if err := m.Load(rom); err != nil {
//		return err
//	}
//	for frame := 0; ; frame++ {
//		for range 10 {
//			if err := m.Step(); err != nil {
//				return err
//			}
//		}
//		m.TickTimers()
//		if m.NeedsRedraw() {
//			render(m.Display())
//			m.MarkRedrawn()
//		}
//	}
//
// Neither Step nor TickTimers may be called concurrently on the same VM.
//
// # Conventions
//
// Where historic interpreters disagree the following conventions apply:
//   - FX29 points I at FontBase + digit*5
//   - sprites wrap at their origin and are clipped at the screen edges
//   - the trailing nibble of 5XY0, 9XY0, 8XY6 and 8XYE is not checked
//   - 7XNN wraps around and does not touch VF
//   - out of range key indices are ignored
//   - 8XY6 and 8XYE shift VX in place, VY is ignored
//   - FX55 and FX65 leave I unchanged
package vm
