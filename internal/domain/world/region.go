package world

import "fmt"

// Region is a maximal connected set of explored tiles sharing one category
// label. It is immutable once built except for Distance, which is refreshed
// against the current origin on every cache access.
type Region struct {
	Label    string  `json:"label"`
	Center   TileID  `json:"center"`
	Count    int     `json:"count"`
	Distance float64 `json:"distance"`
}

func (r Region) SizeDescription() string {
	return fmt.Sprintf("approximately %d tiles", r.Count)
}
