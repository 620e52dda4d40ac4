// Package route provides a fixed waypoint plan. A real planner would
// come from a pathfinding service; the static one is enough to feed the
// route category.
package route

import (
	"worldnav/internal/app/ports"
	"worldnav/internal/domain/world"
)

type Static struct {
	Tiles []world.TileID
	// MinutesPerTile scales travel estimates; zero disables them.
	MinutesPerTile float64
}

var _ ports.RoutePlanner = Static{}

func (s Static) Active() bool {
	return len(s.Tiles) > 0
}

func (s Static) Waypoints() []ports.RouteWaypoint {
	out := make([]ports.RouteWaypoint, 0, len(s.Tiles))
	for i, t := range s.Tiles {
		out = append(out, ports.RouteWaypoint{Tile: t, Index: i})
	}
	return out
}

// TravelTimeMinutes estimates the time to reach a waypoint from the
// start of the route, accumulated segment by segment.
func (s Static) TravelTimeMinutes(index int) float64 {
	if index <= 0 || index >= len(s.Tiles) {
		return 0
	}
	total := 0.0
	for i := 1; i <= index; i++ {
		total += manhattanSteps(s.Tiles[i-1], s.Tiles[i]) * s.MinutesPerTile
	}
	return total
}

func manhattanSteps(a, b world.TileID) float64 {
	dx := b.X - a.X
	if dx < 0 {
		dx = -dx
	}
	dy := b.Y - a.Y
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

func (s Static) CanReach(_, _ world.TileID) bool {
	return true
}
