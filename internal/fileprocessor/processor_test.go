package fileprocessor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ch8", "b.ch8", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0x12, 0x00}, 0o600))
	}

	opts := options.New()
	opts.Batch = filepath.Join(dir, "*.ch8")
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts.Batch = filepath.Join(dir, "*.nes")
	_, err = GetFilesToProcess(&opts)
	assert.ErrorContains(t, err, "no files match")

	opts.Batch = ""
	opts.Input = "single.ch8"
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"single.ch8"}, files)
}

func TestGenerateScreenFilename(t *testing.T) {
	assert.Equal(t, "roms/pong.screen", GenerateScreenFilename("roms/pong.ch8"))
	assert.Equal(t, "game.screen", GenerateScreenFilename("game"))
}

func TestProcessFile(t *testing.T) {
	rom := filepath.Join(t.TempDir(), "loop.ch8")
	assert.NoError(t, os.WriteFile(rom, []byte{0x00, 0xE0, 0x12, 0x02}, 0o600))

	opts := options.New()
	opts.Input = rom
	opts.Frontend = options.FrontendHeadless
	opts.Frames = 2

	result, err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Frames)
	assert.Equal(t, 0, result.Display.Lit())
}

func TestProcessFileHalted(t *testing.T) {
	rom := filepath.Join(t.TempDir(), "underflow.ch8")
	assert.NoError(t, os.WriteFile(rom, []byte{0x00, 0xEE}, 0o600))

	opts := options.New()
	opts.Input = rom
	opts.Frontend = options.FrontendHeadless
	opts.Frames = 2

	_, err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.ErrorContains(t, err, "underflow.ch8")
}

func TestPrintBanner(t *testing.T) {
	opts := options.New()
	PrintBanner(log.NewTestLogger(t), opts, "1.0.0", "0123456789abcdef", "2026-10-18")
}
