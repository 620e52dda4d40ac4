package ports

import "worldnav/internal/domain/world"

// Camera is the viewpoint/selection sink. CurrentTile doubles as the origin
// for all distance and direction queries.
type Camera interface {
	CurrentTile() world.TileID
	Heading() world.Vec3
	FacingMode() bool
	JumpTo(t world.TileID)
	Select(objectID string)
}
