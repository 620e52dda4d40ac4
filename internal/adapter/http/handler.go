// Package httpadapter exposes the navigation session over HTTP. Every
// command returns the cursor after the step plus the announcements the
// step produced, so a screen-reader client can speak them in order.
package httpadapter

import (
	"context"
	"encoding/json"
	"sync"

	"worldnav/internal/adapter/announce"
	"worldnav/internal/adapter/camera"
	"worldnav/internal/app/navigate"
	"worldnav/internal/app/ports"
	"worldnav/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type metricsProvider interface {
	SnapshotAny() any
}

// Handler serializes every session command behind one mutex; the session
// itself is not safe for concurrent use.
type Handler struct {
	Nav           *navigate.Session
	Announcements *announce.Recorder
	Camera        *camera.State
	Graph         ports.TileGraph
	Metrics       metricsProvider

	mu sync.Mutex
}

func (h *Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	nav := s.Group("/api/nav")
	nav.POST("/start", h.command(h.Nav.Start))
	nav.POST("/stop", h.command(func(context.Context) { h.Nav.Stop() }))
	nav.POST("/reset", h.command(h.Nav.Reset))
	nav.POST("/autojump/toggle", h.command(h.Nav.ToggleAutoJump))
	nav.POST("/category/next", h.command(h.Nav.NextCategory))
	nav.POST("/category/previous", h.command(h.Nav.PreviousCategory))
	nav.POST("/subcategory/next", h.command(h.Nav.NextSubcategory))
	nav.POST("/subcategory/previous", h.command(h.Nav.PreviousSubcategory))
	nav.POST("/item/next", h.command(h.Nav.NextItem))
	nav.POST("/item/previous", h.command(h.Nav.PreviousItem))
	nav.POST("/instance/next", h.command(h.Nav.NextInstance))
	nav.POST("/instance/previous", h.command(h.Nav.PreviousInstance))
	nav.POST("/jump", h.command(h.Nav.JumpToCurrent))
	nav.POST("/read", h.command(h.Nav.ReadDistanceAndDirection))
	nav.GET("/cursor", h.cursor)

	s.POST("/api/camera", h.updateCamera)
	s.GET("/ops/metrics", h.metrics)
}

type commandResponse struct {
	Cursor        navigate.CursorView `json:"cursor"`
	Announcements []announce.Entry    `json:"announcements"`
}

func (h *Handler) command(fn func(context.Context)) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		h.mu.Lock()
		fn(c)
		resp := commandResponse{Cursor: h.Nav.Cursor()}
		if h.Announcements != nil {
			resp.Announcements = h.Announcements.Drain()
		}
		h.mu.Unlock()
		ctx.JSON(consts.StatusOK, resp)
	}
}

func (h *Handler) cursor(_ context.Context, ctx *app.RequestContext) {
	h.mu.Lock()
	v := h.Nav.Cursor()
	h.mu.Unlock()
	ctx.JSON(consts.StatusOK, v)
}

type cameraRequest struct {
	X       *int        `json:"x,omitempty"`
	Y       *int        `json:"y,omitempty"`
	Heading *world.Vec3 `json:"heading,omitempty"`
	Facing  *bool       `json:"facing_mode,omitempty"`
}

func (h *Handler) updateCamera(_ context.Context, ctx *app.RequestContext) {
	if h.Camera == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "camera not configured")
		return
	}
	var body cameraRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.X != nil && body.Y != nil {
		tile := world.TileID{X: *body.X, Y: *body.Y}
		if h.Graph != nil && !h.Graph.IsValid(tile) {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_tile", "tile out of bounds")
			return
		}
		h.Camera.JumpTo(tile)
	}
	if body.Heading != nil {
		h.Camera.SetHeading(*body.Heading)
	}
	if body.Facing != nil {
		h.Camera.SetFacingMode(*body.Facing)
	}
	ctx.JSON(consts.StatusOK, map[string]any{
		"tile":        h.Camera.CurrentTile(),
		"facing_mode": h.Camera.FacingMode(),
	})
}

func (h *Handler) metrics(_ context.Context, ctx *app.RequestContext) {
	if h.Metrics == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "metrics recorder not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.Metrics.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
