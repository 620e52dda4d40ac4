package world

type Biome string

const (
	BiomePlains   Biome = "Plains"
	BiomeForest   Biome = "Forest"
	BiomeMountain Biome = "Mountain"
	BiomeTundra   Biome = "Tundra"
	BiomeLake     Biome = "Lake"
)

type RoadKind string

const (
	RoadHighway RoadKind = "Highway"
	RoadTrail   RoadKind = "Trail"
)

// TileID addresses a tile on the surface grid. The core never interprets
// the coordinates; all tile queries go through the TileGraph port.
type TileID struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Tile struct {
	ID       TileID     `json:"id"`
	Biome    Biome      `json:"biome"`
	Roads    []RoadKind `json:"roads,omitempty"`
	Position Vec3       `json:"position"`
	Surface  bool       `json:"surface"`
}

// CategoryLabels returns every navigation label the tile carries: its biome
// plus zero or more road kinds. A tile crossed by two roads carries both.
func (t Tile) CategoryLabels() []string {
	out := make([]string, 0, 1+len(t.Roads))
	if t.Biome != "" {
		out = append(out, string(t.Biome))
	}
	for _, r := range t.Roads {
		out = append(out, string(r))
	}
	return out
}
