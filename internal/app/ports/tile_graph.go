package ports

import "worldnav/internal/domain/world"

// TileGraph is the core's only view of the map. Implementations resolve
// tile ids to neighbors, positions and category labels; the core never
// stores tiles itself.
type TileGraph interface {
	IsValid(t world.TileID) bool
	Neighbors(t world.TileID) []world.TileID
	Distance(a, b world.TileID) float64
	Position(t world.TileID) world.Vec3
	// BiomeLabel is empty for invalid tiles; RoadLabels may return zero or
	// more labels, one per road kind crossing the tile.
	BiomeLabel(t world.TileID) string
	RoadLabels(t world.TileID) []string
	IsSurface(t world.TileID) bool
}
