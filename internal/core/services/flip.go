package services

// NoneFlipped is the FlipState position meaning no tile is flipped.
const NoneFlipped = -1

// FlipState tracks the single flipped service tile of a view.
// The zero value is not ready for use; call NewFlipState.
type FlipState struct {
	flipped int
}

// NewFlipState returns a state with no tile flipped.
func NewFlipState() FlipState {
	return FlipState{flipped: NoneFlipped}
}

// Toggle flips the tile at position. Flipping a tile collapses any other
// flipped tile; toggling the flipped tile collapses it.
func (f *FlipState) Toggle(position int) {
	if f.flipped == position {
		f.flipped = NoneFlipped
		return
	}
	f.flipped = position
}

// Reset collapses every tile.
func (f *FlipState) Reset() {
	f.flipped = NoneFlipped
}

// Flipped returns the flipped position, or NoneFlipped.
func (f *FlipState) Flipped() int {
	return f.flipped
}

// IsFlipped reports whether the tile at position is flipped.
func (f *FlipState) IsFlipped(position int) bool {
	return f.flipped != NoneFlipped && f.flipped == position
}
