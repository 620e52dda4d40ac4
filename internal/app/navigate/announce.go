package navigate

import (
	"fmt"
	"strings"

	"worldnav/internal/app/catalog"
	"worldnav/internal/app/ports"
	"worldnav/internal/domain/world"
)

func (s *Session) announceCategory() {
	c := s.currentCategory()
	if c == nil {
		return
	}
	text := c.Name
	if len(c.Subcategories) > 1 {
		if sc := s.currentSubcategory(); sc != nil {
			text = fmt.Sprintf("%s, %s", c.Name, sc.Name)
		}
	}
	s.say(text, ports.PriorityNormal)
}

func (s *Session) announceSubcategory() {
	sc := s.currentSubcategory()
	if sc == nil {
		return
	}
	s.say(fmt.Sprintf("%s, %d items", sc.Name, len(sc.Items)), ports.PriorityNormal)
}

func (s *Session) announceItem() {
	it := s.currentItem()
	if it == nil {
		return
	}
	text := it.Label
	if it.MultiInstance() {
		text = fmt.Sprintf("%s, %d %s", it.Label, len(it.Instances), strings.ToLower(instanceWord(it, true)))
	}
	if it.Quest != "" {
		text += ", " + it.Quest
	}
	if it.LabelOnly {
		s.say(text, ports.PriorityNormal)
		return
	}
	s.say(text+", "+s.describeTarget(s.targetTile(it)), ports.PriorityNormal)
}

func (s *Session) announceInstance() {
	it := s.currentItem()
	if it == nil || len(it.Instances) == 0 {
		return
	}
	idx := s.inst
	if idx < 0 || idx >= len(it.Instances) {
		idx = 0
	}
	r := it.Instances[idx]
	text := fmt.Sprintf("%s, %s %d of %d, %s",
		it.Label, instanceWord(it, false), idx+1, len(it.Instances), r.SizeDescription())
	s.say(text+", "+s.describeTarget(r.Center), ports.PriorityNormal)
}

func instanceWord(it *catalog.Item, plural bool) string {
	word := "Region"
	if it.Segment {
		word = "Segment"
	}
	if plural {
		word += "s"
	}
	return word
}

// describeTarget renders distance and compass direction from the current
// viewpoint to the target tile.
func (s *Session) describeTarget(target world.TileID) string {
	if s.cfg.Graph == nil {
		return ""
	}
	origin := s.origin()
	distance := s.cfg.Graph.Distance(origin, target)
	heading := world.Vec3{}
	facing := false
	if s.cfg.Camera != nil {
		heading = s.cfg.Camera.Heading()
		facing = s.cfg.Camera.FacingMode()
	}
	return s.cfg.Compass.Describe(
		s.cfg.Graph.Position(origin),
		s.cfg.Graph.Position(target),
		distance,
		heading,
		facing,
	)
}
