package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"worldnav/internal/adapter/announce"
	"worldnav/internal/adapter/camera"
	httpadapter "worldnav/internal/adapter/http"
	metricsinmem "worldnav/internal/adapter/metrics/inmemory"
	gormrepo "worldnav/internal/adapter/repo/gorm"
	"worldnav/internal/adapter/repo/memory"
	"worldnav/internal/adapter/route"
	worldruntime "worldnav/internal/adapter/world/runtime"
	"worldnav/internal/app/navigate"
	"worldnav/internal/app/ports"
	"worldnav/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	objects, sessions, chunkStore := buildReposFromEnv()

	graph := worldruntime.NewGraph(worldruntime.Config{
		WorldRadius: intEnv("WORLDNAV_WORLD_RADIUS", 0),
		Store:       chunkStore,
	})
	cam := camera.New(world.TileID{})
	recorder := announce.NewRecorder()
	metrics := metricsinmem.NewRecorder()

	nav := navigate.NewSession(navigate.Config{
		Graph:     graph,
		Objects:   objects,
		Route:     routeFromEnv(),
		Announcer: recorder,
		Camera:    cam,
		Metrics:   metrics,
		SessionID: envOr("WORLDNAV_SESSION_ID", "default"),
		Sessions:  sessions,
	})

	h := &httpadapter.Handler{
		Nav:           nav,
		Announcements: recorder,
		Camera:        cam,
		Graph:         graph,
		Metrics:       metrics,
	}

	addr := envOr("WORLDNAV_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("worldnav server listening on %s", addr)
	s.Spin()
}

// buildReposFromEnv wires postgres when a DSN is configured and falls
// back to the in-memory store otherwise. Both paths end up seeded with
// the demo objects so the API is navigable out of the box.
func buildReposFromEnv() (ports.WorldObjectProvider, ports.SessionStateRepository, worldruntime.ChunkStore) {
	ctx := context.Background()
	dsn := strings.TrimSpace(os.Getenv("WORLDNAV_DB_DSN"))
	if dsn == "" {
		store := memory.NewStore()
		if err := seedObjects(ctx, store.Upsert); err != nil {
			log.Fatalf("seed world objects: %v", err)
		}
		return store, store, store
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if dir := envOr("WORLDNAV_MIGRATIONS_DIR", "migrations"); dir != "" {
		if err := gormrepo.ApplyMigrations(ctx, db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}

	objectRepo := gormrepo.NewWorldObjectRepo(db)
	existing, err := objectRepo.List(ctx)
	if err != nil {
		log.Fatalf("list world objects: %v", err)
	}
	if len(existing) == 0 {
		tx := gormrepo.NewTxManager(db)
		err := tx.RunInTx(ctx, func(ctx context.Context) error {
			return seedObjects(ctx, objectRepo.Upsert)
		})
		if err != nil {
			log.Fatalf("seed world objects: %v", err)
		}
	}

	return objectRepo, gormrepo.NewNavSessionRepo(db), gormrepo.NewWorldChunkRepo(db)
}

func seedObjects(ctx context.Context, upsert func(context.Context, world.Object) error) error {
	demo := []world.Object{
		{ID: "stl-home", Kind: world.ObjectSettlement, Label: "Home Base", Tile: world.TileID{}, Relation: world.RelationPlayer},
		{ID: "stl-harbor", Kind: world.ObjectSettlement, Label: "North Harbor", Tile: world.TileID{X: 4, Y: 18}, Relation: world.RelationNeutral, Faction: "Harbor League"},
		{ID: "stl-keep", Kind: world.ObjectSettlement, Label: "Ridge Keep", Tile: world.TileID{X: -30, Y: 12}, Relation: world.RelationHostile, Faction: "Ridge Clan"},
		{ID: "unit-scout", Kind: world.ObjectMobileUnit, Label: "Scout", Tile: world.TileID{X: 7, Y: -3}, Relation: world.RelationPlayer},
		{ID: "quest-shrine", Kind: world.ObjectQuestSite, Label: "Old Shrine", Tile: world.TileID{X: -12, Y: -9}, Quest: "Restore the shrine"},
		{ID: "poi-spring", Kind: world.ObjectMisc, Label: "Hot Spring", Tile: world.TileID{X: 22, Y: 5}},
		{ID: "sky-beacon", Kind: world.ObjectOffSurface, Label: "Signal Beacon"},
	}
	for _, o := range demo {
		if err := upsert(ctx, o); err != nil {
			return fmt.Errorf("seed object %s: %w", o.ID, err)
		}
	}
	return nil
}

// routeFromEnv parses WORLDNAV_ROUTE, a semicolon-separated list of
// "x,y" waypoints. An empty value leaves the route category inactive.
func routeFromEnv() ports.RoutePlanner {
	raw := strings.TrimSpace(os.Getenv("WORLDNAV_ROUTE"))
	tiles := parseRoute(raw)
	if len(tiles) == 0 {
		return nil
	}
	return route.Static{
		Tiles:          tiles,
		MinutesPerTile: float64(intEnv("WORLDNAV_ROUTE_MINUTES_PER_TILE", 2)),
	}
}

func parseRoute(raw string) []world.TileID {
	if raw == "" {
		return nil
	}
	out := []world.TileID{}
	for _, part := range strings.Split(raw, ";") {
		xy := strings.SplitN(strings.TrimSpace(part), ",", 2)
		if len(xy) != 2 {
			continue
		}
		x, errX := strconv.Atoi(strings.TrimSpace(xy[0]))
		y, errY := strconv.Atoi(strings.TrimSpace(xy[1]))
		if errX != nil || errY != nil {
			continue
		}
		out = append(out, world.TileID{X: x, Y: y})
	}
	return out
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
