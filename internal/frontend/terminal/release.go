package terminal

import "github.com/retroenv/retrochip8/internal/vm"

// releaseTracker counts down the frames until a pressed key is released.
type releaseTracker struct {
	remaining [vm.KeyCount]int
}

// press marks the key as pressed for the given number of frames. It returns
// whether the key was not pressed before, repeated presses only extend the
// press.
func (r *releaseTracker) press(key, frames int) bool {
	if key < 0 || key >= vm.KeyCount {
		return false
	}
	wasReleased := r.remaining[key] == 0
	r.remaining[key] = frames
	return wasReleased
}

// tick advances one frame and returns the keys that are released.
func (r *releaseTracker) tick() []int {
	var released []int
	for key, frames := range r.remaining {
		if frames == 0 {
			continue
		}
		r.remaining[key]--
		if r.remaining[key] == 0 {
			released = append(released, key)
		}
	}
	return released
}
