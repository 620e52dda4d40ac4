package runtime

import (
	"context"
	"math"
	"sync"

	"worldnav/internal/app/ports"
	"worldnav/internal/domain/world"
)

// ChunkStore persists generated chunks so the world stays identical
// across restarts even if the generator constants change.
type ChunkStore interface {
	GetChunk(ctx context.Context, coord world.ChunkCoord) (world.Chunk, bool, error)
	SaveChunk(ctx context.Context, coord world.ChunkCoord, chunk world.Chunk) error
}

type Config struct {
	WorldRadius int
	ChunkSize   int
	Store       ChunkStore
}

func DefaultConfig() Config {
	return Config{
		WorldRadius: 256,
		ChunkSize:   8,
	}
}

// Graph is a procedurally generated tile graph. Chunks are produced on
// demand, written through to the store when one is configured, and kept
// in memory afterwards. Generation is a pure function of the coordinates,
// so every instance agrees on the same world.
type Graph struct {
	cfg Config

	mu     sync.Mutex
	chunks map[world.ChunkCoord]map[world.TileID]world.Tile
}

var _ ports.TileGraph = (*Graph)(nil)

func NewGraph(cfg Config) *Graph {
	def := DefaultConfig()
	if cfg.WorldRadius <= 0 {
		cfg.WorldRadius = def.WorldRadius
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	return &Graph{
		cfg:    cfg,
		chunks: map[world.ChunkCoord]map[world.TileID]world.Tile{},
	}
}

func (g *Graph) IsValid(t world.TileID) bool {
	return g.inBounds(t)
}

func (g *Graph) Neighbors(t world.TileID) []world.TileID {
	out := []world.TileID{}
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nb := world.TileID{X: t.X + d[0], Y: t.Y + d[1]}
		if g.inBounds(nb) {
			out = append(out, nb)
		}
	}
	return out
}

func (g *Graph) Distance(a, b world.TileID) float64 {
	return g.Position(a).DistanceTo(g.Position(b))
}

func (g *Graph) Position(t world.TileID) world.Vec3 {
	return world.Vec3{X: float64(t.X), Y: float64(t.Y)}
}

func (g *Graph) BiomeLabel(t world.TileID) string {
	tile, ok := g.tileAt(t)
	if !ok {
		return ""
	}
	return string(tile.Biome)
}

func (g *Graph) RoadLabels(t world.TileID) []string {
	tile, ok := g.tileAt(t)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(tile.Roads))
	for _, r := range tile.Roads {
		out = append(out, string(r))
	}
	return out
}

func (g *Graph) IsSurface(t world.TileID) bool {
	tile, ok := g.tileAt(t)
	return ok && tile.Surface
}

func (g *Graph) inBounds(t world.TileID) bool {
	r := g.cfg.WorldRadius
	return t.X >= -r && t.X <= r && t.Y >= -r && t.Y <= r
}

func (g *Graph) tileAt(t world.TileID) (world.Tile, bool) {
	if !g.inBounds(t) {
		return world.Tile{}, false
	}
	coord := world.ChunkCoord{
		X: floorDiv(t.X, g.cfg.ChunkSize),
		Y: floorDiv(t.Y, g.cfg.ChunkSize),
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	chunk, ok := g.chunks[coord]
	if !ok {
		chunk = g.loadChunk(coord)
		g.chunks[coord] = chunk
	}
	tile, ok := chunk[t]
	return tile, ok
}

// loadChunk is called with the mutex held. Store failures fall back to
// fresh generation; the generator is deterministic so nothing is lost.
func (g *Graph) loadChunk(coord world.ChunkCoord) map[world.TileID]world.Tile {
	ctx := context.Background()
	if g.cfg.Store != nil {
		if cached, ok, err := g.cfg.Store.GetChunk(ctx, coord); err == nil && ok {
			return indexTiles(cached.Tiles)
		}
	}
	chunk := g.generateChunk(coord)
	if g.cfg.Store != nil {
		_ = g.cfg.Store.SaveChunk(ctx, coord, chunk)
	}
	return indexTiles(chunk.Tiles)
}

func (g *Graph) generateChunk(coord world.ChunkCoord) world.Chunk {
	size := g.cfg.ChunkSize
	tiles := make([]world.Tile, 0, size*size)
	baseX := coord.X * size
	baseY := coord.Y * size
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			id := world.TileID{X: baseX + x, Y: baseY + y}
			if g.inBounds(id) {
				tiles = append(tiles, genTile(id))
			}
		}
	}
	return world.Chunk{Coord: coord, Tiles: tiles}
}

func indexTiles(tiles []world.Tile) map[world.TileID]world.Tile {
	out := make(map[world.TileID]world.Tile, len(tiles))
	for _, t := range tiles {
		out[t.ID] = t
	}
	return out
}

func genTile(id world.TileID) world.Tile {
	biome := biomeByDistance(id.X, id.Y)
	seed := tileSeed(id.X, id.Y)
	// the inner plains band stays dry so the spawn area is never water
	if seed%13 == 0 && biome != world.BiomePlains {
		biome = world.BiomeLake
	}

	var roads []world.RoadKind
	if biome != world.BiomeLake {
		if id.X%24 == 0 {
			roads = append(roads, world.RoadHighway)
		}
		if id.Y%24 == 0 {
			roads = append(roads, world.RoadTrail)
		}
	}

	return world.Tile{
		ID:       id,
		Biome:    biome,
		Roads:    roads,
		Position: world.Vec3{X: float64(id.X), Y: float64(id.Y)},
		Surface:  biome != world.BiomeLake,
	}
}

func biomeByDistance(x, y int) world.Biome {
	d := int(math.Abs(float64(x)) + math.Abs(float64(y)))
	switch {
	case d <= 24:
		return world.BiomePlains
	case d <= 80:
		return world.BiomeForest
	case d <= 160:
		return world.BiomeMountain
	default:
		return world.BiomeTundra
	}
}

func tileSeed(x, y int) int {
	v := x*73856093 ^ y*19349663
	if v < 0 {
		v = -v
	}
	return v
}

func floorDiv(a, b int) int {
	if a >= 0 {
		return a / b
	}
	return -(((-a) + b - 1) / b)
}
