package cluster

import (
	"math"
	"sort"

	"worldnav/internal/app/ports"
	"worldnav/internal/domain/world"
)

const (
	// DefaultRadius bounds the breadth-first exploration around the origin.
	DefaultRadius = 100.0
	// DefaultMaxVisited caps the total number of tiles explored per run.
	DefaultMaxVisited = 5000
)

// Clusterer partitions the tiles around an origin into disjoint maximal
// connected regions, one partition per category label. A tile carrying
// several labels lands in one region per label; regions are never merged
// across labels.
type Clusterer struct {
	Graph      ports.TileGraph
	Radius     float64
	MaxVisited int
}

func New(graph ports.TileGraph) Clusterer {
	return Clusterer{Graph: graph, Radius: DefaultRadius, MaxVisited: DefaultMaxVisited}
}

// Partition explores the graph from origin and groups the explored tiles by
// the labels function. The regions of each label are disjoint and cover
// exactly that label's share of the explored set, ordered by distance from
// origin. An invalid origin yields an empty result, not an error.
func (c Clusterer) Partition(origin world.TileID, labels func(world.TileID) []string) map[string][]world.Region {
	out := map[string][]world.Region{}
	if c.Graph == nil || labels == nil || !c.Graph.IsValid(origin) {
		return out
	}
	radius := c.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}
	maxVisited := c.MaxVisited
	if maxVisited <= 0 {
		maxVisited = DefaultMaxVisited
	}

	order := c.explore(origin, radius, maxVisited)

	// Label sets keep BFS encounter order so seed selection is
	// deterministic across runs.
	members := map[string][]world.TileID{}
	membership := map[string]map[world.TileID]bool{}
	labelOrder := []string{}
	for _, t := range order {
		for _, lb := range labels(t) {
			if lb == "" {
				continue
			}
			if membership[lb] == nil {
				membership[lb] = map[world.TileID]bool{}
				labelOrder = append(labelOrder, lb)
			}
			if membership[lb][t] {
				continue
			}
			membership[lb][t] = true
			members[lb] = append(members[lb], t)
		}
	}

	for _, lb := range labelOrder {
		remaining := membership[lb]
		for _, seed := range members[lb] {
			if !remaining[seed] {
				continue
			}
			component := c.fill(seed, remaining)
			out[lb] = append(out[lb], c.buildRegion(origin, lb, component))
		}
		sortRegionsByDistance(out[lb])
	}
	return out
}

func (c Clusterer) explore(origin world.TileID, radius float64, maxVisited int) []world.TileID {
	visited := map[world.TileID]bool{origin: true}
	order := []world.TileID{origin}
	queue := []world.TileID{origin}
	for len(queue) > 0 && len(order) < maxVisited {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range c.Graph.Neighbors(cur) {
			if visited[nb] || !c.Graph.IsValid(nb) {
				continue
			}
			if c.Graph.Distance(origin, nb) > radius {
				continue
			}
			visited[nb] = true
			order = append(order, nb)
			queue = append(queue, nb)
			if len(order) >= maxVisited {
				break
			}
		}
	}
	return order
}

// fill removes one maximal connected component containing seed from the
// remaining set and returns its members.
func (c Clusterer) fill(seed world.TileID, remaining map[world.TileID]bool) []world.TileID {
	delete(remaining, seed)
	component := []world.TileID{seed}
	queue := []world.TileID{seed}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range c.Graph.Neighbors(cur) {
			if !remaining[nb] {
				continue
			}
			delete(remaining, nb)
			component = append(component, nb)
			queue = append(queue, nb)
		}
	}
	return component
}

// The region center is the member tile nearest the positional mean of all
// members, never the mean itself.
func (c Clusterer) buildRegion(origin world.TileID, label string, members []world.TileID) world.Region {
	mean := world.Vec3{}
	for _, t := range members {
		mean = mean.Add(c.Graph.Position(t))
	}
	mean = mean.Scale(1 / float64(len(members)))

	center := members[0]
	best := math.MaxFloat64
	for _, t := range members {
		if d := c.Graph.Position(t).DistanceTo(mean); d < best {
			best = d
			center = t
		}
	}
	return world.Region{
		Label:    label,
		Center:   center,
		Count:    len(members),
		Distance: c.Graph.Distance(origin, center),
	}
}

func sortRegionsByDistance(rs []world.Region) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Distance < rs[j].Distance })
}
