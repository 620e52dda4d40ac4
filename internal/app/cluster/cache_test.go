package cluster

import (
	"testing"

	"worldnav/internal/domain/world"
)

func lineGraph(n int) *fakeGraph {
	g := newFakeGraph()
	for x := 0; x <= n; x++ {
		g.add(x, 0, world.BiomePlains)
	}
	return g
}

func TestCache_RebuildsOnlyWhenStale(t *testing.T) {
	g := lineGraph(200)
	cache := NewCache("biome", New(g), biomeLabels(g))

	if _, rebuilt := cache.Regions(world.TileID{}); !rebuilt {
		t.Fatal("first access must rebuild")
	}
	if _, rebuilt := cache.Regions(world.TileID{}); rebuilt {
		t.Fatal("same origin must not rebuild")
	}
	// 50 units is within the staleness threshold, not past it
	if _, rebuilt := cache.Regions(world.TileID{X: 50}); rebuilt {
		t.Fatal("move of exactly 50 units must not rebuild")
	}
	if _, rebuilt := cache.Regions(world.TileID{X: 101}); !rebuilt {
		t.Fatal("move past 50 units from the stored origin must rebuild")
	}
}

func TestCache_NilGraphYieldsNothing(t *testing.T) {
	cache := NewCache("biome", Clusterer{}, nil)

	// repeated accesses must stay inert; the second one exercises the
	// path where a prior empty build is checked for staleness
	for i := 0; i < 2; i++ {
		regions, rebuilt := cache.Regions(world.TileID{})
		if len(regions) != 0 || rebuilt {
			t.Fatalf("access %d: got %v rebuilt=%v", i+1, regions, rebuilt)
		}
	}
}

func TestCache_InvalidateForcesRebuild(t *testing.T) {
	g := lineGraph(20)
	cache := NewCache("biome", New(g), biomeLabels(g))

	cache.Regions(world.TileID{})
	cache.Invalidate()
	if _, rebuilt := cache.Regions(world.TileID{}); !rebuilt {
		t.Fatal("invalidated cache must rebuild")
	}
}

func TestCache_DistancesRefreshWithoutRebuild(t *testing.T) {
	g := newFakeGraph()
	for x := 0; x <= 30; x++ {
		g.add(x, 0, world.BiomePlains)
	}
	g.add(2, 0, world.BiomeTundra)
	g.add(28, 0, world.BiomeTundra)

	cache := NewCache("biome", New(g), biomeLabels(g))

	regions, _ := cache.Regions(world.TileID{})
	tundra := regions[string(world.BiomeTundra)]
	if tundra[0].Center != (world.TileID{X: 2}) {
		t.Fatalf("expected the near island first, got %+v", tundra)
	}

	// a short move flips which island is nearer; ordering must follow
	// even though the cached partition is reused
	regions, rebuilt := cache.Regions(world.TileID{X: 20})
	if rebuilt {
		t.Fatal("move of 20 units must not rebuild")
	}
	tundra = regions[string(world.BiomeTundra)]
	if tundra[0].Center != (world.TileID{X: 28}) {
		t.Fatalf("distances were not refreshed: %+v", tundra)
	}
	if tundra[0].Distance != 8 || tundra[1].Distance != 18 {
		t.Fatalf("unexpected refreshed distances: %+v", tundra)
	}
}
