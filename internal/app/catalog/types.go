package catalog

import "worldnav/internal/domain/world"

// Item is one navigable point of interest. Items backed by clustered
// regions (or road segments) carry Instances; everything else resolves to
// the primary Tile. LabelOnly items (off-surface objects) have no usable
// position, so distance and direction are never reported for them.
type Item struct {
	Label     string
	Tile      world.TileID
	ObjectID  string
	Faction   string
	Quest     string
	Instances []world.Region
	Segment   bool
	LabelOnly bool
	// Distance is the sort key against the origin at build time; for
	// multi-instance items it is the nearest instance's distance.
	Distance float64
}

func (it Item) MultiInstance() bool {
	return len(it.Instances) > 1
}

func (it Item) InstanceCount() int {
	if n := len(it.Instances); n > 1 {
		return n
	}
	return 1
}

type Subcategory struct {
	Name  string
	Items []Item
}

func (s Subcategory) Empty() bool {
	return len(s.Items) == 0
}

type Category struct {
	Name          string
	Subcategories []Subcategory
}

func (c Category) Empty() bool {
	for _, s := range c.Subcategories {
		if !s.Empty() {
			return false
		}
	}
	return true
}
