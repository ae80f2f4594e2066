// Package keymap maps physical keyboard keys to the 16 keys of the CHIP-8 hex keypad.
package keymap

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/set"
)

// Built-in layout names.
const (
	Cosmac     = "cosmac"
	Sequential = "sequential"
)

// Layout maps lower case runes of physical keys to keypad indices.
type Layout struct {
	name string
	keys map[rune]int
}

// cosmacKeys lists the physical key for every keypad index 0-F. The 4x4
// block 1234/QWER/ASDF/ZXCV mirrors the COSMAC VIP hex pad:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
const cosmacKeys = "x123qweasdzc4rfv"

// sequentialKeys assigns the 4x4 block to the keypad in reading order.
const sequentialKeys = "1234qwerasdfzxcv"

// New returns the built-in layout with the given name.
func New(name string) (*Layout, error) {
	switch strings.ToLower(name) {
	case "", Cosmac:
		return parse(Cosmac, cosmacKeys)
	case Sequential:
		return parse(Sequential, sequentialKeys)
	default:
		return nil, fmt.Errorf("unsupported key layout '%s', valid layouts: %s, %s", name, Cosmac, Sequential)
	}
}

// Parse builds a custom layout from a string of 16 distinct characters,
// the character at position i is the physical key for keypad index i.
func Parse(keys string) (*Layout, error) {
	return parse("custom", keys)
}

func parse(name, keys string) (*Layout, error) {
	keys = strings.ToLower(keys)
	if n := utf8.RuneCountInString(keys); n != vm.KeyCount {
		return nil, fmt.Errorf("key layout needs %d keys but %d were given", vm.KeyCount, n)
	}

	seen := set.New[rune]()
	layout := &Layout{
		name: name,
		keys: make(map[rune]int, vm.KeyCount),
	}
	index := 0
	for _, r := range keys {
		if seen.Contains(r) {
			return nil, fmt.Errorf("key '%c' is assigned more than once", r)
		}
		seen.Add(r)
		layout.keys[r] = index
		index++
	}
	return layout, nil
}

// Name returns the layout name.
func (l *Layout) Name() string {
	return l.name
}

// Key returns the keypad index for a physical key. Upper case letters are
// treated like lower case ones.
func (l *Layout) Key(r rune) (int, bool) {
	index, ok := l.keys[unicode.ToLower(r)]
	return index, ok
}

// Runes returns the physical key of every keypad index, ordered by index.
func (l *Layout) Runes() []rune {
	runes := make([]rune, vm.KeyCount)
	for r, index := range l.keys {
		runes[index] = r
	}
	return runes
}
