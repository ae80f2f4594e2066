package keymap

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		key      rune
		expected int
	}{
		{"cosmac x is 0", Cosmac, 'x', 0x0},
		{"cosmac 1 is 1", Cosmac, '1', 0x1},
		{"cosmac 4 is C", Cosmac, '4', 0xC},
		{"cosmac v is F", Cosmac, 'v', 0xF},
		{"cosmac upper case", Cosmac, 'Z', 0xA},
		{"default is cosmac", "", 'r', 0xD},
		{"sequential 1 is 0", Sequential, '1', 0x0},
		{"sequential q is 4", Sequential, 'q', 0x4},
		{"sequential v is F", Sequential, 'V', 0xF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := New(tt.layout)
			assert.NoError(t, err)

			index, ok := layout.Key(tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, index)
		})
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("dvorak")
	assert.ErrorContains(t, err, "unsupported key layout")
}

func TestUnmappedKey(t *testing.T) {
	layout, err := New(Cosmac)
	assert.NoError(t, err)

	_, ok := layout.Key('p')
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		keys    string
		wantErr string
	}{
		{"valid", "0123456789abcdef", ""},
		{"valid upper case", "0123456789ABCDEF", ""},
		{"too short", "0123", "needs 16 keys"},
		{"too long", "0123456789abcdefg", "needs 16 keys"},
		{"duplicate", "0123456789abcdee", "more than once"},
		{"duplicate after lower casing", "0123456789abcdeE", "more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := Parse(tt.keys)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "custom", layout.Name())

			index, ok := layout.Key('a')
			assert.True(t, ok)
			assert.Equal(t, 0xA, index)
		})
	}
}

func TestKeyNonASCII(t *testing.T) {
	layout, err := Parse("ÄÖÜ3456789abcdef")
	assert.NoError(t, err)

	tests := []struct {
		key   rune
		index int
	}{
		{'ä', 0x0},
		{'Ä', 0x0},
		{'Ö', 0x1},
		{'ü', 0x2},
		{'F', 0xF},
	}
	for _, tt := range tests {
		index, ok := layout.Key(tt.key)
		assert.True(t, ok, string(tt.key))
		assert.Equal(t, tt.index, index)
	}
}

func TestRunes(t *testing.T) {
	layout, err := New(Cosmac)
	assert.NoError(t, err)
	assert.Equal(t, []rune(cosmacKeys), layout.Runes())
}
