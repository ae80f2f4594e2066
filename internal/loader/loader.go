// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/sqweek/dialog"
)

// ErrCancelled is returned when the file dialog was closed without picking a file.
var ErrCancelled = errors.New("no ROM file selected")

// Picker asks the user for a ROM file.
type Picker func() (string, error)

// Loader handles loading ROM files from disk.
type Loader struct {
	pick Picker
}

// New creates a new ROM loader that opens a file dialog to pick a ROM when
// no file name is given.
func New() *Loader {
	return &Loader{pick: dialogPicker}
}

// NewWithPicker creates a ROM loader using a custom file picker.
func NewWithPicker(pick Picker) *Loader {
	return &Loader{pick: pick}
}

// Pick asks the user for a ROM file name.
func (l *Loader) Pick() (string, error) {
	if l.pick == nil {
		return "", ErrCancelled
	}
	return l.pick()
}

// Load reads a ROM file. Empty files and files that do not fit into the
// program region are rejected before they reach the interpreter.
func (l *Loader) Load(fileName string) ([]byte, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", fileName, err)
	}
	defer func() { _ = file.Close() }()

	return Read(file)
}

// Read reads a ROM from a reader and validates its size.
func Read(reader io.Reader) ([]byte, error) {
	// read one byte more than fits to detect oversized files without
	// reading arbitrary large inputs
	data, err := io.ReadAll(io.LimitReader(reader, vm.ProgramCapacity+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	if len(data) == 0 {
		return nil, errors.New("ROM file is empty")
	}
	if len(data) > vm.ProgramCapacity {
		return nil, &vm.CapacityError{Size: len(data), Capacity: vm.ProgramCapacity}
	}
	return data, nil
}

func dialogPicker() (string, error) {
	fileName, err := dialog.File().
		Filter("CHIP-8 ROM", "ch8", "c8", "rom").
		Filter("All files", "*").
		Title("Open CHIP-8 ROM").
		Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("opening file dialog: %w", err)
	}
	return fileName, nil
}
