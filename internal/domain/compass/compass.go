package compass

import (
	"fmt"
	"math"

	"worldnav/internal/domain/world"
)

const (
	// CurrentLocationThreshold is the distance at or under which a target is
	// reported as the current location, with no direction at all.
	CurrentLocationThreshold = 0.1

	sectorWidthDeg  = 45.0
	sectorOffsetDeg = 22.5
)

var compassLabels = [8]string{
	"North", "Northeast", "East", "Southeast",
	"South", "Southwest", "West", "Northwest",
}

var relativeLabels = [8]string{
	"Ahead", "Ahead-right", "Right", "Behind-right",
	"Behind", "Behind-left", "Left", "Ahead-left",
}

// Calculator projects direction vectors onto the tangent plane at the
// origin and buckets the resulting bearing into 8 compass sectors. On a
// spherical surface the tangent plane follows the surface normal at the
// origin; on a planar map the normal is the fixed Z axis.
type Calculator struct {
	North     world.Vec3
	Spherical bool
}

func Default() Calculator {
	return Calculator{North: world.Vec3{Y: 1}}
}

func (c Calculator) normalAt(origin world.Vec3) world.Vec3 {
	if c.Spherical {
		return origin.Normalized()
	}
	return world.Vec3{Z: 1}
}

// Angle returns the bearing in degrees [0, 360) from forward to the target
// as seen from origin, measured clockwise in the tangent plane. ok is false
// when either projection degenerates (target directly above the origin, or
// forward parallel to the surface normal).
func (c Calculator) Angle(origin, target, forward world.Vec3) (float64, bool) {
	n := c.normalAt(origin)
	d := target.Sub(origin)
	d = d.Sub(n.Scale(d.Dot(n)))
	f := forward.Sub(n.Scale(forward.Dot(n)))
	if d.Length() == 0 || f.Length() == 0 {
		return 0, false
	}
	f = f.Normalized()
	right := f.Cross(n)
	deg := math.Atan2(d.Dot(right), d.Dot(f)) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg, true
}

// Sector boundaries sit at multiples of 45° plus the 22.5° half-width, so
// 22.5° already belongs to Northeast while 337.5° wraps back to North.
func sectorIndex(deg float64) int {
	return int(math.Floor(deg/sectorWidthDeg+sectorOffsetDeg/sectorWidthDeg)) % 8
}

func SectorLabel(deg float64) string {
	return compassLabels[sectorIndex(deg)]
}

func RelativeSectorLabel(deg float64) string {
	return relativeLabels[sectorIndex(deg)]
}

// Describe renders "<distance> units <direction>" for the target, or
// "Current location" when the distance is within the threshold. In facing
// mode the bearing is taken against heading instead of north and uses the
// relative label set.
func (c Calculator) Describe(origin, target world.Vec3, distance float64, heading world.Vec3, facing bool) string {
	if distance <= CurrentLocationThreshold {
		return "Current location"
	}
	forward := c.North
	relative := false
	if facing && heading.Length() > 0 {
		forward = heading
		relative = true
	}
	deg, ok := c.Angle(origin, target, forward)
	if !ok {
		return fmt.Sprintf("%s away", FormatDistance(distance))
	}
	label := SectorLabel(deg)
	if relative {
		label = RelativeSectorLabel(deg)
	}
	return fmt.Sprintf("%s %s", FormatDistance(distance), label)
}

func FormatDistance(d float64) string {
	return fmt.Sprintf("%.0f units", d)
}
