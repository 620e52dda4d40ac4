// Package camera keeps the viewpoint state for a navigation session.
package camera

import (
	"sync"

	"worldnav/internal/app/ports"
	"worldnav/internal/domain/world"
)

// State is a mutable camera. The zero heading points north; facing mode
// switches direction announcements from compass labels to labels
// relative to the heading.
type State struct {
	mu      sync.Mutex
	tile    world.TileID
	heading world.Vec3
	facing  bool
}

var _ ports.Camera = (*State)(nil)

func New(start world.TileID) *State {
	return &State{
		tile:    start,
		heading: world.Vec3{Y: 1},
	}
}

func (s *State) CurrentTile() world.TileID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tile
}

func (s *State) Heading() world.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heading
}

func (s *State) FacingMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facing
}

func (s *State) JumpTo(t world.TileID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tile = t
}

func (s *State) Select(_ string) {}

func (s *State) SetHeading(h world.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.Length() > 0 {
		s.heading = h.Normalized()
	}
}

func (s *State) SetFacingMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facing = on
}
