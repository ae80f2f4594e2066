// Package main implements a headless CHIP-8 ROM runner that checks the final
// screen of ROM runs against stored screens.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/fileprocessor"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	frames int
	seed   uint64
	speed  int

	update bool
	verify bool
	quiet  bool
	debug  bool
}

func main() {
	ctx := app.Context()
	flags, files := readArguments()

	if !flags.quiet {
		printBanner()
	}

	logger := config.CreateLogger(flags.debug, true)
	failed := 0
	for _, file := range files {
		if err := runFile(ctx, logger, flags, file); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Printf("%s: %s\n", file, err)
			failed++
			continue
		}
		if !flags.quiet {
			fmt.Printf("%s: ok\n", file)
		}
	}

	if failed > 0 {
		fmt.Printf("%d of %d ROMs failed\n", failed, len(files))
		os.Exit(1)
	}
}

func readArguments() (optionFlags, []string) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := optionFlags{}

	flags.IntVar(&opts.frames, "frames", options.DefaultHeadlessFrames, "number of frames to run every ROM")
	flags.Uint64Var(&opts.seed, "seed", 1, "seed of the random number generator")
	flags.IntVar(&opts.speed, "speed", options.DefaultSpeed, "instructions executed per frame")
	flags.BoolVar(&opts.update, "update", false, "write the final screen of every ROM to its .screen file")
	flags.BoolVar(&opts.verify, "verify", false, "compare the final screen of every ROM with its .screen file")
	flags.BoolVar(&opts.quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.debug, "debug", false, "enable debugging options for extended logging")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner()
		fmt.Printf("usage: chip8run [options] <ROM files>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	return opts, args
}

func printBanner() {
	fmt.Println("[-------------------------------------]")
	fmt.Println("[ chip8run - headless CHIP-8 runner   ]")
	fmt.Printf("[-------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func runFile(ctx context.Context, logger *log.Logger, flags optionFlags, file string) error {
	opts := options.New()
	opts.Input = file
	opts.Frontend = options.FrontendHeadless
	opts.Frames = flags.frames
	opts.Seed = flags.seed
	opts.Speed = flags.speed
	opts.Quiet = true

	result, err := fileprocessor.ProcessFile(ctx, logger, opts)
	if err != nil {
		return err
	}
	screen := result.Display.String()
	screenFile := fileprocessor.GenerateScreenFilename(file)

	switch {
	case flags.update:
		if err := os.WriteFile(screenFile, []byte(screen), 0o644); err != nil {
			return fmt.Errorf("writing screen file: %w", err)
		}
	case flags.verify:
		expected, err := os.ReadFile(screenFile)
		if err != nil {
			return fmt.Errorf("reading screen file: %w", err)
		}
		if err := compareScreens(string(expected), screen); err != nil {
			return err
		}
	case !flags.quiet:
		fmt.Printf("%s after %d frames:\n%s\n", file, result.Frames, screen)
	}
	return nil
}

// compareScreens returns an error describing the first mismatching row.
func compareScreens(expected, got string) error {
	expectedRows := strings.Split(strings.TrimSuffix(expected, "\n"), "\n")
	gotRows := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(expectedRows) != len(gotRows) {
		return fmt.Errorf("mismatched screen heights, %d != %d", len(expectedRows), len(gotRows))
	}

	var diffs int
	firstDiff := -1
	for i := range expectedRows {
		if expectedRows[i] == gotRows[i] {
			continue
		}
		diffs++
		if firstDiff == -1 {
			firstDiff = i
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d screen rows mismatch, first at row %d", diffs, firstDiff)
}
