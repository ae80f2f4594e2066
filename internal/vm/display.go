package vm

import "strings"

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// SpriteWidth is the width of every sprite row in pixels.
const SpriteWidth = 8

// Display is the monochrome framebuffer, indexed [y][x]. Colors are up to the host.
type Display [DisplayHeight][DisplayWidth]bool

// Pixel returns whether the pixel at x, y is set. Coordinates outside the
// display return false.
func (d Display) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return d[y][x]
}

// Lit returns the number of set pixels.
func (d Display) Lit() int {
	var n int
	for y := range d {
		for x := range d[y] {
			if d[y][x] {
				n++
			}
		}
	}
	return n
}

// String renders the display as text lines using '#' for set pixels and '.'
// for clear ones.
func (d Display) String() string {
	var sb strings.Builder
	sb.Grow(DisplayHeight * (DisplayWidth + 1))
	for y := range d {
		for x := range d[y] {
			if d[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (d *Display) clear() {
	*d = Display{}
}

// drawSprite XORs the sprite rows onto the display with the origin wrapped
// into the screen. Pixels past the right or bottom edge are clipped. It
// returns whether any set pixel was cleared.
func (d *Display) drawSprite(x, y byte, rows []byte) bool {
	originX := int(x) % DisplayWidth
	originY := int(y) % DisplayHeight
	collision := false

	for row, bits := range rows {
		py := originY + row
		if py >= DisplayHeight {
			break
		}
		for col := range SpriteWidth {
			px := originX + col
			if px >= DisplayWidth {
				break
			}
			if bits&(0x80>>col) == 0 {
				continue
			}
			if d[py][px] {
				collision = true
			}
			d[py][px] = !d[py][px]
		}
	}
	return collision
}
