package cluster

import "worldnav/internal/domain/world"

// DefaultStaleDistance is the origin displacement past which a cached
// partition must be recomputed.
const DefaultStaleDistance = 50.0

// Cache memoizes one clusterer run per label domain (biome, road). Each
// cache tracks its own origin; staleness of one domain never depends on
// another domain's rebuilds.
type Cache struct {
	Domain        string
	Clusterer     Clusterer
	Labels        func(world.TileID) []string
	StaleDistance float64

	built   bool
	origin  world.TileID
	regions map[string][]world.Region
}

func NewCache(domain string, clusterer Clusterer, labels func(world.TileID) []string) *Cache {
	return &Cache{
		Domain:        domain,
		Clusterer:     clusterer,
		Labels:        labels,
		StaleDistance: DefaultStaleDistance,
	}
}

// Regions returns the partition for origin, rebuilding from scratch when no
// partition exists or the origin drifted past the staleness threshold.
// Region distances are refreshed and re-sorted against the current origin
// on every call, so ordering stays fresh even when the partition is not.
func (c *Cache) Regions(origin world.TileID) (map[string][]world.Region, bool) {
	if c.Clusterer.Graph == nil {
		return nil, false
	}
	stale := c.StaleDistance
	if stale <= 0 {
		stale = DefaultStaleDistance
	}
	rebuilt := false
	if !c.built || c.Clusterer.Graph.Distance(c.origin, origin) > stale {
		c.regions = c.Clusterer.Partition(origin, c.Labels)
		c.origin = origin
		c.built = true
		rebuilt = true
	}
	for lb, rs := range c.regions {
		for i := range rs {
			rs[i].Distance = c.Clusterer.Graph.Distance(origin, rs[i].Center)
		}
		sortRegionsByDistance(rs)
		c.regions[lb] = rs
	}
	return c.regions, rebuilt
}

func (c *Cache) Invalidate() {
	c.built = false
	c.regions = nil
}
