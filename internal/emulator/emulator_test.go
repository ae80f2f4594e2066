package emulator

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func program(words ...uint16) []byte {
	b := make([]byte, 0, len(words)*vm.InstructionSize)
	for _, w := range words {
		b = append(b, byte(w>>8), byte(w))
	}
	return b
}

func newEmulator(t *testing.T, fe frontend.Frontend, cfg Config, words ...uint16) (*Emulator, *vm.VM) {
	t.Helper()
	rom := program(words...)
	machine := vm.New(vm.WithSeed(1))
	assert.NoError(t, machine.Load(rom))
	assert.NoError(t, fe.Open("test"))
	return New(log.NewTestLogger(t), machine, fe, rom, cfg), machine
}

func TestRunFrameLimit(t *testing.T) {
	fe := frontend.NewHeadless(nil)
	// counts V0 up forever
	e, machine := newEmulator(t, fe, Config{Speed: 2, MaxFrames: 5}, 0x7001, 0x1200)

	assert.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 5, e.Frames())
	assert.Equal(t, byte(5), machine.Register(0))
}

func TestFrameTicksTimersOnce(t *testing.T) {
	fe := frontend.NewHeadless(nil)
	e, machine := newEmulator(t, fe, Config{Speed: 10},
		0x6030, // LD V0, $30
		0xF015, // LD DT, V0
		0x1204, // JP $204
	)

	assert.NoError(t, e.Frame())
	assert.Equal(t, byte(0x2F), machine.DelayTimer())
	assert.NoError(t, e.Frame())
	assert.Equal(t, byte(0x2E), machine.DelayTimer())
}

func TestRenderOnlyWhenDirty(t *testing.T) {
	fe := frontend.NewHeadless(nil)
	e, _ := newEmulator(t, fe, Config{Speed: 2},
		0xF029, // LD F, V0
		0xD005, // DRW V0, V0, 5
		0x1204, // JP $204
	)

	assert.NoError(t, e.Frame())
	assert.Equal(t, 1, fe.Renders())
	assert.Equal(t, 14, fe.LastDisplay().Lit())

	assert.NoError(t, e.Frame())
	assert.NoError(t, e.Frame())
	assert.Equal(t, 1, fe.Renders())
}

func TestKeyEventsAndQuit(t *testing.T) {
	fe := frontend.NewHeadless(map[int][]frontend.Event{
		1: {{Kind: frontend.KeyDown, Key: 0xB}},
		3: {{Kind: frontend.Quit}},
	})
	// waits for a key, then loops
	e, machine := newEmulator(t, fe, Config{Speed: 4}, 0xF30A, 0x1202)

	assert.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 3, e.Frames())
	assert.Equal(t, byte(0xB), machine.Register(3))
	assert.True(t, machine.KeyPressed(0xB))
}

func TestResetReloadsProgram(t *testing.T) {
	fe := frontend.NewHeadless(map[int][]frontend.Event{
		2: {{Kind: frontend.Reset}},
	})
	e, machine := newEmulator(t, fe, Config{Speed: 2}, 0x7001, 0x1200)

	assert.NoError(t, e.Frame())
	assert.NoError(t, e.Frame())
	assert.Equal(t, byte(2), machine.Register(0))

	assert.NoError(t, e.Frame())
	assert.Equal(t, byte(1), machine.Register(0))
	assert.Equal(t, uint16(vm.ProgramStart), machine.PC())
}

func TestFatalErrorStopsRun(t *testing.T) {
	fe := frontend.NewHeadless(nil)
	e, _ := newEmulator(t, fe, Config{Speed: 10}, 0x00E0, 0x00EE)

	err := e.Run(context.Background())
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.ErrorContains(t, err, "frame 1")
	assert.Equal(t, 1, fe.Renders())
}

func TestRunCanceled(t *testing.T) {
	fe := frontend.NewHeadless(nil)
	e, _ := newEmulator(t, fe, Config{Throttle: true, FrameRate: 1000}, 0x1200)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := e.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, e.Frames())
}

func TestTrace(t *testing.T) {
	fe := frontend.NewHeadless(nil)
	e, machine := newEmulator(t, fe, Config{Speed: 3, Trace: true}, 0x6105, 0x7101, 0x1202)

	assert.NoError(t, e.Frame())
	assert.Equal(t, byte(6), machine.Register(1))
}
