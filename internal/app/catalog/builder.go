package catalog

import (
	"context"
	"fmt"
	"sort"

	"worldnav/internal/app/cluster"
	"worldnav/internal/app/ports"
	"worldnav/internal/domain/world"
)

const (
	CategoryRoute       = "Route"
	CategorySettlements = "Settlements"
	CategoryQuestSites  = "Quest sites"
	CategoryUnits       = "Units"
	CategoryPOI         = "Points of interest"
	CategoryBiomes      = "Biomes"
	CategoryRoads       = "Roads"
	CategoryOffSurface  = "Off-surface"
)

// Builder assembles the full category list from the world collaborators.
// Nil collaborators and invalid tiles are skipped, never errors; a category
// that ends up empty is left out of the list entirely.
type Builder struct {
	Graph   ports.TileGraph
	Objects ports.WorldObjectProvider
	Route   ports.RoutePlanner
	Biomes  *cluster.Cache
	Roads   *cluster.Cache
	Metrics ports.NavMetrics
}

// Build produces the categories in fixed order. Every subcategory's items
// are sorted ascending by distance from origin; a multi-instance item ranks
// among its siblings by its nearest instance.
func (b Builder) Build(ctx context.Context, origin world.TileID) []Category {
	objects := b.loadObjects(ctx)

	out := []Category{}
	add := func(c Category) {
		if !c.Empty() {
			out = append(out, c)
		}
	}
	add(b.routeCategory(origin))
	add(b.settlementsCategory(origin, objects))
	add(b.questCategory(origin, objects))
	add(b.unitsCategory(origin, objects))
	add(b.miscCategory(origin, objects))
	add(b.regionCategory(CategoryBiomes, b.Biomes, origin, false))
	add(b.regionCategory(CategoryRoads, b.Roads, origin, true))
	add(b.offSurfaceCategory(objects))
	return out
}

func (b Builder) loadObjects(ctx context.Context) []world.Object {
	if b.Objects == nil {
		return nil
	}
	objs, err := b.Objects.Objects(ctx)
	if err != nil {
		return nil
	}
	out := make([]world.Object, 0, len(objs))
	for _, o := range objs {
		if o.Validate() != nil {
			continue
		}
		if o.Kind != world.ObjectOffSurface && (b.Graph == nil || !b.Graph.IsValid(o.Tile)) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// offSurface reports whether an object has no usable ground position:
// either it is declared off-surface, or the tile it sits on is not
// traversable surface (submerged, for instance). Such objects appear
// label-only in the off-surface category and nowhere else.
func (b Builder) offSurface(o world.Object) bool {
	if o.Kind == world.ObjectOffSurface {
		return true
	}
	return b.Graph != nil && !b.Graph.IsSurface(o.Tile)
}

func (b Builder) routeCategory(origin world.TileID) Category {
	c := Category{Name: CategoryRoute}
	if b.Route == nil || !b.Route.Active() {
		return c
	}
	waypoints := b.Route.Waypoints()
	if len(waypoints) == 0 {
		return c
	}
	items := []Item{}
	for i, wp := range waypoints {
		if b.Graph == nil || !b.Graph.IsValid(wp.Tile) {
			continue
		}
		if !b.Route.CanReach(origin, wp.Tile) {
			continue
		}
		label := "(Start)"
		if i > 0 {
			label = fmt.Sprintf("Waypoint %d, %.0f min", wp.Index+1, b.Route.TravelTimeMinutes(wp.Index))
		}
		items = append(items, Item{
			Label:    label,
			Tile:     wp.Tile,
			Distance: b.Graph.Distance(origin, wp.Tile),
		})
	}
	sortItems(items)
	c.Subcategories = []Subcategory{{Name: "Waypoints", Items: items}}
	return c
}

func (b Builder) settlementsCategory(origin world.TileID, objects []world.Object) Category {
	buckets := map[world.Relation][]Item{}
	all := []Item{}
	for _, o := range objects {
		if o.Kind != world.ObjectSettlement || b.offSurface(o) {
			continue
		}
		it := b.objectItem(origin, o)
		all = append(all, it)
		buckets[o.Relation] = append(buckets[o.Relation], it)
	}
	subs := []Subcategory{{Name: "All", Items: all}}
	for _, rel := range []struct {
		name string
		rel  world.Relation
	}{
		{"Player", world.RelationPlayer},
		{"Allied", world.RelationAllied},
		{"Neutral", world.RelationNeutral},
		{"Hostile", world.RelationHostile},
	} {
		subs = append(subs, Subcategory{Name: rel.name, Items: buckets[rel.rel]})
	}
	for i := range subs {
		sortItems(subs[i].Items)
	}
	return Category{Name: CategorySettlements, Subcategories: subs}
}

func (b Builder) questCategory(origin world.TileID, objects []world.Object) Category {
	playerSettlements := map[world.TileID]bool{}
	for _, o := range objects {
		if o.Kind == world.ObjectSettlement && o.Relation == world.RelationPlayer {
			playerSettlements[o.Tile] = true
		}
	}
	items := []Item{}
	for _, o := range objects {
		if o.Kind != world.ObjectQuestSite || o.Hidden || b.offSurface(o) {
			continue
		}
		if playerSettlements[o.Tile] {
			continue
		}
		items = append(items, b.objectItem(origin, o))
	}
	sortItems(items)
	return Category{Name: CategoryQuestSites, Subcategories: []Subcategory{{Name: "Targets", Items: items}}}
}

func (b Builder) unitsCategory(origin world.TileID, objects []world.Object) Category {
	items := []Item{}
	for _, o := range objects {
		if o.Kind != world.ObjectMobileUnit || o.Relation != world.RelationPlayer || b.offSurface(o) {
			continue
		}
		items = append(items, b.objectItem(origin, o))
	}
	sortItems(items)
	return Category{Name: CategoryUnits, Subcategories: []Subcategory{{Name: "Units", Items: items}}}
}

func (b Builder) miscCategory(origin world.TileID, objects []world.Object) Category {
	questTiles := map[world.TileID]bool{}
	for _, o := range objects {
		if o.Kind == world.ObjectQuestSite {
			questTiles[o.Tile] = true
		}
	}
	items := []Item{}
	for _, o := range objects {
		if o.Kind != world.ObjectMisc || b.offSurface(o) {
			continue
		}
		if questTiles[o.Tile] {
			continue
		}
		items = append(items, b.objectItem(origin, o))
	}
	sortItems(items)
	return Category{Name: CategoryPOI, Subcategories: []Subcategory{{Name: "Sites", Items: items}}}
}

func (b Builder) regionCategory(name string, cache *cluster.Cache, origin world.TileID, segment bool) Category {
	c := Category{Name: name}
	if cache == nil {
		return c
	}
	regions, rebuilt := cache.Regions(origin)
	if b.Metrics != nil {
		if rebuilt {
			b.Metrics.RecordRebuild(cache.Domain)
		} else {
			b.Metrics.RecordCacheHit(cache.Domain)
		}
	}
	items := []Item{}
	for label, rs := range regions {
		if len(rs) == 0 {
			continue
		}
		items = append(items, Item{
			Label:     label,
			Tile:      rs[0].Center,
			Instances: rs,
			Segment:   segment,
			Distance:  rs[0].Distance,
		})
	}
	// map iteration order leaks without an explicit tiebreak
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Distance != items[j].Distance {
			return items[i].Distance < items[j].Distance
		}
		return items[i].Label < items[j].Label
	})
	c.Subcategories = []Subcategory{{Name: name, Items: items}}
	return c
}

func (b Builder) offSurfaceCategory(objects []world.Object) Category {
	items := []Item{}
	for _, o := range objects {
		if !b.offSurface(o) {
			continue
		}
		items = append(items, Item{
			Label:     o.Label,
			ObjectID:  o.ID,
			LabelOnly: true,
		})
	}
	return Category{Name: CategoryOffSurface, Subcategories: []Subcategory{{Name: "Objects", Items: items}}}
}

func (b Builder) objectItem(origin world.TileID, o world.Object) Item {
	it := Item{
		Label:    o.Label,
		Tile:     o.Tile,
		ObjectID: o.ID,
		Faction:  o.Faction,
		Quest:    o.Quest,
	}
	if b.Graph != nil {
		it.Distance = b.Graph.Distance(origin, o.Tile)
	}
	return it
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Distance < items[j].Distance })
}
