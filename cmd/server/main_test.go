package main

import (
	"testing"

	"worldnav/internal/domain/world"
)

func TestParseRoute(t *testing.T) {
	got := parseRoute("0,0; 12,-3 ;bad; 24,8")
	want := []world.TileID{{X: 0, Y: 0}, {X: 12, Y: -3}, {X: 24, Y: 8}}
	if len(got) != len(want) {
		t.Fatalf("parseRoute: got %+v want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("waypoint %d: got %+v want %+v", i, got[i], want[i])
		}
	}
	if tiles := parseRoute(""); tiles != nil {
		t.Fatalf("empty route must parse to nil, got %+v", tiles)
	}
}

func TestRouteFromEnv(t *testing.T) {
	t.Setenv("WORLDNAV_ROUTE", "")
	if r := routeFromEnv(); r != nil {
		t.Fatalf("empty env must disable the route, got %+v", r)
	}
	t.Setenv("WORLDNAV_ROUTE", "0,0;6,0")
	r := routeFromEnv()
	if r == nil || !r.Active() {
		t.Fatal("expected an active route")
	}
	if wps := r.Waypoints(); len(wps) != 2 || wps[1].Tile != (world.TileID{X: 6}) {
		t.Fatalf("waypoints: %+v", wps)
	}
}

func TestIntEnv(t *testing.T) {
	t.Setenv("WORLDNAV_TEST_INT", "")
	if got := intEnv("WORLDNAV_TEST_INT", 7); got != 7 {
		t.Fatalf("fallback: got %d", got)
	}
	t.Setenv("WORLDNAV_TEST_INT", "42")
	if got := intEnv("WORLDNAV_TEST_INT", 7); got != 42 {
		t.Fatalf("parsed: got %d", got)
	}
	t.Setenv("WORLDNAV_TEST_INT", "nope")
	if got := intEnv("WORLDNAV_TEST_INT", 7); got != 7 {
		t.Fatalf("invalid falls back: got %d", got)
	}
}
