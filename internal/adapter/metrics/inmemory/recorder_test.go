package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordCommand("next_category")
	r.RecordCommand("next_category")
	r.RecordCommand("jump")
	r.RecordRebuild("biome")
	r.RecordCacheHit("road")

	snap := r.Snapshot()
	if snap.Commands["next_category"] != 2 || snap.Commands["jump"] != 1 {
		t.Fatalf("commands: %+v", snap.Commands)
	}
	if snap.Rebuilds["biome"] != 1 || snap.CacheHits["road"] != 1 {
		t.Fatalf("rebuilds/hits: %+v %+v", snap.Rebuilds, snap.CacheHits)
	}

	// snapshots are copies, not views
	snap.Commands["next_category"] = 99
	if got := r.Snapshot().Commands["next_category"]; got != 2 {
		t.Fatalf("snapshot leaked internal state: %d", got)
	}
}
