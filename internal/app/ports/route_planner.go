package ports

import "worldnav/internal/domain/world"

type RouteWaypoint struct {
	Tile  world.TileID
	Index int
}

type RoutePlanner interface {
	Active() bool
	Waypoints() []RouteWaypoint
	TravelTimeMinutes(index int) float64
	CanReach(a, b world.TileID) bool
}
