// Package inmemory counts navigation activity for the ops endpoint.
package inmemory

import (
	"sync"

	"worldnav/internal/app/ports"
)

type Recorder struct {
	mu        sync.Mutex
	commands  map[string]int64
	rebuilds  map[string]int64
	cacheHits map[string]int64
}

var _ ports.NavMetrics = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		commands:  map[string]int64{},
		rebuilds:  map[string]int64{},
		cacheHits: map[string]int64{},
	}
}

func (r *Recorder) RecordCommand(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[name]++
}

func (r *Recorder) RecordRebuild(domain string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rebuilds[domain]++
}

func (r *Recorder) RecordCacheHit(domain string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cacheHits[domain]++
}

type Snapshot struct {
	Commands  map[string]int64 `json:"commands"`
	Rebuilds  map[string]int64 `json:"rebuilds"`
	CacheHits map[string]int64 `json:"cache_hits"`
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		Commands:  copyCounts(r.commands),
		Rebuilds:  copyCounts(r.rebuilds),
		CacheHits: copyCounts(r.cacheHits),
	}
}

// SnapshotAny feeds the ops endpoint without the handler importing the
// concrete snapshot type.
func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

func copyCounts(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
