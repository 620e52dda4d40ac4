package httpadapter

import (
	"context"
	"encoding/json"
	"testing"

	"worldnav/internal/adapter/announce"
	"worldnav/internal/adapter/camera"
	metricsinmem "worldnav/internal/adapter/metrics/inmemory"
	"worldnav/internal/adapter/repo/memory"
	worldruntime "worldnav/internal/adapter/world/runtime"
	"worldnav/internal/app/navigate"
	"worldnav/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	graph := worldruntime.NewGraph(worldruntime.Config{WorldRadius: 64})
	store := memory.NewStore()
	ctx := context.Background()
	seed := []world.Object{
		{ID: "s1", Kind: world.ObjectSettlement, Label: "Home", Relation: world.RelationPlayer},
		{ID: "s2", Kind: world.ObjectSettlement, Label: "Harbor", Tile: world.TileID{X: 6}, Relation: world.RelationNeutral},
	}
	for _, o := range seed {
		if err := store.Upsert(ctx, o); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rec := announce.NewRecorder()
	cam := camera.New(world.TileID{})
	metrics := metricsinmem.NewRecorder()
	nav := navigate.NewSession(navigate.Config{
		Graph:     graph,
		Objects:   store,
		Announcer: rec,
		Camera:    cam,
		Metrics:   metrics,
		SessionID: "test",
		Sessions:  store,
	})
	return &Handler{
		Nav:           nav,
		Announcements: rec,
		Camera:        cam,
		Graph:         graph,
		Metrics:       metrics,
	}
}

func decodeCommandResponse(t *testing.T, body []byte) commandResponse {
	t.Helper()
	var resp commandResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, body)
	}
	return resp
}

func TestCommandReturnsCursorAndAnnouncements(t *testing.T) {
	h := newTestHandler(t)

	ctx := &app.RequestContext{}
	h.command(h.Nav.Start)(context.Background(), ctx)
	resp := decodeCommandResponse(t, ctx.Response.Body())
	if !resp.Cursor.Active {
		t.Fatal("start must activate the session")
	}
	if len(resp.Announcements) != 1 || resp.Announcements[0].Text != "Map navigation ready" {
		t.Fatalf("announcements: %+v", resp.Announcements)
	}

	ctx = &app.RequestContext{}
	h.command(h.Nav.NextCategory)(context.Background(), ctx)
	resp = decodeCommandResponse(t, ctx.Response.Body())
	if resp.Cursor.CategoryName == "" {
		t.Fatalf("expected a named category, got %+v", resp.Cursor)
	}
	if len(resp.Announcements) == 0 {
		t.Fatal("category step must announce")
	}

	// announcements are drained per response, not accumulated
	ctx = &app.RequestContext{}
	h.cursor(context.Background(), ctx)
	var v navigate.CursorView
	if err := json.Unmarshal(ctx.Response.Body(), &v); err != nil {
		t.Fatalf("decode cursor: %v", err)
	}
	if v.CategoryIndex != resp.Cursor.CategoryIndex {
		t.Fatalf("cursor drifted: %+v vs %+v", v, resp.Cursor)
	}
}

func TestUpdateCameraValidatesTile(t *testing.T) {
	h := newTestHandler(t)

	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"x": 9000, "y": 0}`))
	h.updateCamera(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-bounds tile, got %d", ctx.Response.StatusCode())
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"x": 3, "y": 4, "facing_mode": true}`))
	h.updateCamera(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	if got := h.Camera.CurrentTile(); got != (world.TileID{X: 3, Y: 4}) {
		t.Fatalf("camera tile: %+v", got)
	}
	if !h.Camera.FacingMode() {
		t.Fatal("facing mode not applied")
	}
}

func TestUpdateCameraRejectsInvalidJSON(t *testing.T) {
	h := newTestHandler(t)
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{`))
	h.updateCamera(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusBadRequest {
		t.Fatalf("expected 400, got %d", ctx.Response.StatusCode())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t)
	h.command(h.Nav.Start)(context.Background(), &app.RequestContext{})

	ctx := &app.RequestContext{}
	h.metrics(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
	var snap metricsinmem.Snapshot
	if err := json.Unmarshal(ctx.Response.Body(), &snap); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if snap.Commands["start"] == 0 {
		t.Fatalf("expected a recorded start command, got %+v", snap.Commands)
	}
}

func TestMetricsEndpointWithoutRecorder(t *testing.T) {
	h := newTestHandler(t)
	h.Metrics = nil
	ctx := &app.RequestContext{}
	h.metrics(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusNotFound {
		t.Fatalf("expected 404, got %d", ctx.Response.StatusCode())
	}
}
