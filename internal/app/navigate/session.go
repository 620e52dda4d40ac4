package navigate

import (
	"context"

	"worldnav/internal/app/catalog"
	"worldnav/internal/app/cluster"
	"worldnav/internal/app/ports"
	"worldnav/internal/domain/compass"
	"worldnav/internal/domain/world"
)

type Config struct {
	Graph     ports.TileGraph
	Objects   ports.WorldObjectProvider
	Route     ports.RoutePlanner
	Announcer ports.Announcer
	Camera    ports.Camera
	Metrics   ports.NavMetrics
	Compass   compass.Calculator

	// SessionID and Sessions enable optional cursor persistence; a nil
	// repository keeps everything in memory.
	SessionID string
	Sessions  ports.SessionStateRepository

	ClusterRadius     float64
	ClusterMaxVisited int
	StaleDistance     float64
}

// Session owns every piece of mutable navigation state: the four cursor
// indices, the auto-jump flag, the category list and both region caches.
// Calls are not safe for concurrent use; the caller serializes them.
type Session struct {
	cfg     Config
	builder catalog.Builder
	biomes  *cluster.Cache
	roads   *cluster.Cache

	categories []catalog.Category
	built      bool
	active     bool
	cat        int
	sub        int
	item       int
	inst       int
	autoJump   bool
	version    int64
}

func NewSession(cfg Config) *Session {
	if (cfg.Compass == compass.Calculator{}) {
		cfg.Compass = compass.Default()
	}
	clusterer := cluster.Clusterer{
		Graph:      cfg.Graph,
		Radius:     cfg.ClusterRadius,
		MaxVisited: cfg.ClusterMaxVisited,
	}
	biomes := cluster.NewCache("biome", clusterer, func(t world.TileID) []string {
		if cfg.Graph == nil {
			return nil
		}
		if lb := cfg.Graph.BiomeLabel(t); lb != "" {
			return []string{lb}
		}
		return nil
	})
	roads := cluster.NewCache("road", clusterer, func(t world.TileID) []string {
		if cfg.Graph == nil {
			return nil
		}
		return cfg.Graph.RoadLabels(t)
	})
	if cfg.StaleDistance > 0 {
		biomes.StaleDistance = cfg.StaleDistance
		roads.StaleDistance = cfg.StaleDistance
	}
	return &Session{
		cfg:    cfg,
		biomes: biomes,
		roads:  roads,
		builder: catalog.Builder{
			Graph:   cfg.Graph,
			Objects: cfg.Objects,
			Route:   cfg.Route,
			Biomes:  biomes,
			Roads:   roads,
			Metrics: cfg.Metrics,
		},
	}
}

// Start activates the session and restores a persisted cursor when a
// session repository is configured. The category list itself stays lazy
// until the first navigation command.
func (s *Session) Start(ctx context.Context) {
	s.command("start")
	s.active = true
	if s.cfg.Sessions != nil && s.cfg.SessionID != "" {
		if rec, err := s.cfg.Sessions.Get(ctx, s.cfg.SessionID); err == nil {
			s.cat = rec.CategoryIndex
			s.sub = rec.SubcategoryIndex
			s.item = rec.ItemIndex
			s.inst = rec.InstanceIndex
			s.autoJump = rec.AutoJump
			s.version = rec.Version
		}
	}
	s.say("Map navigation ready", ports.PriorityNormal)
}

// Stop deactivates the session without touching persisted state.
func (s *Session) Stop() {
	s.command("stop")
	s.active = false
	s.categories = nil
	s.built = false
}

// Reset returns the cursor and both caches to their initial state. The
// auto-jump flag is an independent toggle and survives.
func (s *Session) Reset(ctx context.Context) {
	s.command("reset")
	s.cat, s.sub, s.item, s.inst = 0, 0, 0, 0
	s.categories = nil
	s.built = false
	s.biomes.Invalidate()
	s.roads.Invalidate()
	s.persist(ctx)
	s.say("Navigation reset", ports.PriorityNormal)
}

func (s *Session) ToggleAutoJump(ctx context.Context) {
	s.command("toggle_autojump")
	s.autoJump = !s.autoJump
	s.persist(ctx)
	if s.autoJump {
		s.say("Auto jump on", ports.PriorityNormal)
	} else {
		s.say("Auto jump off", ports.PriorityNormal)
	}
}

func (s *Session) NextCategory(ctx context.Context)     { s.stepCategory(ctx, "next_category", 1) }
func (s *Session) PreviousCategory(ctx context.Context) { s.stepCategory(ctx, "previous_category", -1) }

// Category steps rebuild the whole list; there is no incremental update.
func (s *Session) stepCategory(ctx context.Context, name string, delta int) {
	s.command(name)
	if !s.requireActive() {
		return
	}
	s.rebuild(ctx)
	if len(s.categories) == 0 {
		s.say("Nothing to navigate", ports.PriorityHigh)
		return
	}
	s.cat = mod(s.cat+delta, len(s.categories))
	s.sub, s.item, s.inst = 0, 0, 0
	s.skipEmptySubcategories()
	s.persist(ctx)
	s.announceCategory()
}

func (s *Session) NextSubcategory(ctx context.Context) { s.stepSubcategory(ctx, "next_subcategory", 1) }

func (s *Session) PreviousSubcategory(ctx context.Context) {
	s.stepSubcategory(ctx, "previous_subcategory", -1)
}

func (s *Session) stepSubcategory(ctx context.Context, name string, delta int) {
	s.command(name)
	if !s.requireActive() {
		return
	}
	s.ensureBuilt(ctx)
	c := s.currentCategory()
	if c == nil {
		s.say("Nothing to navigate", ports.PriorityHigh)
		return
	}
	if len(c.Subcategories) <= 1 {
		s.say("No subcategories", ports.PriorityNormal)
		return
	}
	start := s.sub
	idx := start
	for i := 0; i < len(c.Subcategories); i++ {
		idx = mod(idx+delta, len(c.Subcategories))
		if idx == start {
			break
		}
		if !c.Subcategories[idx].Empty() {
			s.sub = idx
			s.item, s.inst = 0, 0
			s.persist(ctx)
			s.announceSubcategory()
			return
		}
	}
	// full loop without a non-empty landing: stay at the original index
	s.announceSubcategory()
}

func (s *Session) NextItem(ctx context.Context)     { s.stepItem(ctx, "next_item", 1) }
func (s *Session) PreviousItem(ctx context.Context) { s.stepItem(ctx, "previous_item", -1) }

func (s *Session) stepItem(ctx context.Context, name string, delta int) {
	s.command(name)
	if !s.requireActive() {
		return
	}
	s.ensureBuilt(ctx)
	sc := s.currentSubcategory()
	if sc == nil || sc.Empty() {
		s.say("No items", ports.PriorityNormal)
		return
	}
	s.item = mod(s.item+delta, len(sc.Items))
	s.inst = 0
	s.persist(ctx)
	if s.autoJump {
		s.jumpToCurrent()
	} else {
		s.announceItem()
	}
}

func (s *Session) NextInstance(ctx context.Context)     { s.stepInstance(ctx, "next_instance", 1) }
func (s *Session) PreviousInstance(ctx context.Context) { s.stepInstance(ctx, "previous_instance", -1) }

func (s *Session) stepInstance(ctx context.Context, name string, delta int) {
	s.command(name)
	if !s.requireActive() {
		return
	}
	s.ensureBuilt(ctx)
	it := s.currentItem()
	if it == nil {
		s.say("No items", ports.PriorityNormal)
		return
	}
	if !it.MultiInstance() {
		s.say("No instances", ports.PriorityNormal)
		return
	}
	s.inst = mod(s.inst+delta, len(it.Instances))
	s.persist(ctx)
	if s.autoJump {
		s.jumpToCurrent()
	} else {
		s.announceInstance()
	}
}

// JumpToCurrent moves the camera to the resolved target tile and selects
// the underlying object when there is one.
func (s *Session) JumpToCurrent(ctx context.Context) {
	s.command("jump")
	if !s.requireActive() {
		return
	}
	s.ensureBuilt(ctx)
	if s.currentItem() == nil {
		s.say("No items", ports.PriorityNormal)
		return
	}
	s.jumpToCurrent()
}

// ReadDistanceAndDirection is a pure query; it never mutates the cursor.
func (s *Session) ReadDistanceAndDirection(ctx context.Context) {
	s.command("read")
	if !s.requireActive() {
		return
	}
	s.ensureBuilt(ctx)
	it := s.currentItem()
	if it == nil {
		s.say("No items", ports.PriorityNormal)
		return
	}
	if it.LabelOnly {
		s.say(it.Label, ports.PriorityNormal)
		return
	}
	s.say(it.Label+", "+s.describeTarget(s.targetTile(it)), ports.PriorityNormal)
}

// CursorView is the externally visible cursor state.
type CursorView struct {
	Active           bool   `json:"active"`
	AutoJump         bool   `json:"auto_jump"`
	CategoryIndex    int    `json:"category_index"`
	SubcategoryIndex int    `json:"subcategory_index"`
	ItemIndex        int    `json:"item_index"`
	InstanceIndex    int    `json:"instance_index"`
	CategoryName     string `json:"category_name,omitempty"`
	SubcategoryName  string `json:"subcategory_name,omitempty"`
	ItemLabel        string `json:"item_label,omitempty"`
}

func (s *Session) Cursor() CursorView {
	v := CursorView{
		Active:           s.active,
		AutoJump:         s.autoJump,
		CategoryIndex:    s.cat,
		SubcategoryIndex: s.sub,
		ItemIndex:        s.item,
		InstanceIndex:    s.inst,
	}
	if c := s.currentCategory(); c != nil {
		v.CategoryName = c.Name
	}
	if sc := s.currentSubcategory(); sc != nil {
		v.SubcategoryName = sc.Name
	}
	if it := s.currentItem(); it != nil {
		v.ItemLabel = it.Label
	}
	return v
}

func (s *Session) rebuild(ctx context.Context) {
	s.categories = s.builder.Build(ctx, s.origin())
	s.built = true
	s.validate()
}

func (s *Session) ensureBuilt(ctx context.Context) {
	if !s.built {
		s.rebuild(ctx)
	}
}

// validate clamps every index into bounds (resetting to 0 when out) and
// advances the subcategory index past empty subcategories.
func (s *Session) validate() {
	if len(s.categories) == 0 {
		s.cat, s.sub, s.item, s.inst = 0, 0, 0, 0
		return
	}
	if s.cat < 0 || s.cat >= len(s.categories) {
		s.cat = 0
	}
	c := s.categories[s.cat]
	if s.sub < 0 || s.sub >= len(c.Subcategories) {
		s.sub = 0
	}
	s.skipEmptySubcategories()
	sc := s.currentSubcategory()
	if sc == nil || s.item < 0 || s.item >= len(sc.Items) {
		s.item = 0
	}
	it := s.currentItem()
	if it == nil || s.inst < 0 || s.inst >= it.InstanceCount() {
		s.inst = 0
	}
}

func (s *Session) skipEmptySubcategories() {
	c := s.currentCategory()
	if c == nil || len(c.Subcategories) == 0 {
		return
	}
	for i := 0; i < len(c.Subcategories); i++ {
		if !c.Subcategories[s.sub].Empty() {
			return
		}
		s.sub = mod(s.sub+1, len(c.Subcategories))
	}
}

func (s *Session) currentCategory() *catalog.Category {
	if s.cat < 0 || s.cat >= len(s.categories) {
		return nil
	}
	return &s.categories[s.cat]
}

func (s *Session) currentSubcategory() *catalog.Subcategory {
	c := s.currentCategory()
	if c == nil || s.sub < 0 || s.sub >= len(c.Subcategories) {
		return nil
	}
	return &c.Subcategories[s.sub]
}

func (s *Session) currentItem() *catalog.Item {
	sc := s.currentSubcategory()
	if sc == nil || s.item < 0 || s.item >= len(sc.Items) {
		return nil
	}
	return &sc.Items[s.item]
}

func (s *Session) targetTile(it *catalog.Item) world.TileID {
	if len(it.Instances) > 0 {
		idx := s.inst
		if idx < 0 || idx >= len(it.Instances) {
			idx = 0
		}
		return it.Instances[idx].Center
	}
	return it.Tile
}

func (s *Session) jumpToCurrent() {
	it := s.currentItem()
	if it == nil {
		s.say("No items", ports.PriorityNormal)
		return
	}
	if it.LabelOnly {
		// off-surface objects have no jump target
		if s.cfg.Camera != nil && it.ObjectID != "" {
			s.cfg.Camera.Select(it.ObjectID)
		}
		s.say(it.Label, ports.PriorityNormal)
		return
	}
	target := s.targetTile(it)
	if s.cfg.Camera != nil {
		s.cfg.Camera.JumpTo(target)
		if it.ObjectID != "" {
			s.cfg.Camera.Select(it.ObjectID)
		}
	}
	if it.MultiInstance() {
		s.announceInstance()
	} else {
		s.announceItem()
	}
}

func (s *Session) origin() world.TileID {
	if s.cfg.Camera != nil {
		return s.cfg.Camera.CurrentTile()
	}
	return world.TileID{}
}

func (s *Session) requireActive() bool {
	if !s.active {
		s.say("Navigation is not active", ports.PriorityHigh)
		return false
	}
	return true
}

func (s *Session) persist(ctx context.Context) {
	if s.cfg.Sessions == nil || s.cfg.SessionID == "" {
		return
	}
	rec := ports.SessionRecord{
		SessionID:        s.cfg.SessionID,
		CategoryIndex:    s.cat,
		SubcategoryIndex: s.sub,
		ItemIndex:        s.item,
		InstanceIndex:    s.inst,
		AutoJump:         s.autoJump,
		Version:          s.version + 1,
	}
	// conflicts are absorbed: in-memory state stays authoritative
	if err := s.cfg.Sessions.SaveWithVersion(ctx, rec, s.version); err == nil {
		s.version++
	}
}

func (s *Session) say(text string, priority ports.Priority) {
	if s.cfg.Announcer != nil {
		s.cfg.Announcer.Announce(text, priority)
	}
}

func (s *Session) command(name string) {
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RecordCommand(name)
	}
}

func mod(i, n int) int {
	return ((i % n) + n) % n
}
