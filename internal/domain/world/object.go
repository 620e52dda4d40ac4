package world

import "errors"

type ObjectKind string

const (
	ObjectSettlement ObjectKind = "settlement"
	ObjectMobileUnit ObjectKind = "mobile_unit"
	ObjectQuestSite  ObjectKind = "quest_site"
	ObjectMisc       ObjectKind = "misc"
	ObjectOffSurface ObjectKind = "off_surface"
)

type Relation string

const (
	RelationPlayer  Relation = "player"
	RelationAllied  Relation = "allied"
	RelationNeutral Relation = "neutral"
	RelationHostile Relation = "hostile"
)

// Object is the tagged variant covering every navigable world object kind.
// Faction, Relation and Quest are optional per kind; Hidden only applies to
// quest sites. Off-surface objects have no meaningful tile.
type Object struct {
	ID       string     `json:"id"`
	Kind     ObjectKind `json:"kind"`
	Label    string     `json:"label"`
	Tile     TileID     `json:"tile"`
	Faction  string     `json:"faction,omitempty"`
	Relation Relation   `json:"relation,omitempty"`
	Quest    string     `json:"quest,omitempty"`
	Hidden   bool       `json:"hidden,omitempty"`
}

var ErrInvalidObject = errors.New("invalid world object")

func (o Object) Validate() error {
	if o.ID == "" || o.Kind == "" || o.Label == "" {
		return ErrInvalidObject
	}
	return nil
}

func (o Object) HasFaction() bool {
	return o.Faction != ""
}

func (o Object) HasQuest() bool {
	return o.Quest != ""
}
