// Package memory backs every repository port with process-local maps.
// It is the default when no database is configured and doubles as the
// storage for tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"worldnav/internal/app/ports"
	"worldnav/internal/domain/world"
)

type Store struct {
	mu       sync.Mutex
	chunks   map[world.ChunkCoord]world.Chunk
	objects  map[string]world.Object
	sessions map[string]ports.SessionRecord
}

func NewStore() *Store {
	return &Store{
		chunks:   map[world.ChunkCoord]world.Chunk{},
		objects:  map[string]world.Object{},
		sessions: map[string]ports.SessionRecord{},
	}
}

func (s *Store) GetChunk(_ context.Context, coord world.ChunkCoord) (world.Chunk, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chunks[coord]
	return c, ok, nil
}

func (s *Store) SaveChunk(_ context.Context, coord world.ChunkCoord, chunk world.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[coord] = chunk
	return nil
}

func (s *Store) List(_ context.Context) ([]world.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]world.Object, 0, len(s.objects))
	for _, o := range s.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Objects(ctx context.Context) ([]world.Object, error) {
	return s.List(ctx)
}

func (s *Store) Upsert(_ context.Context, obj world.Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[obj.ID] = obj
	return nil
}

func (s *Store) Get(_ context.Context, sessionID string) (ports.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[sessionID]
	if !ok {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (s *Store) SaveWithVersion(_ context.Context, rec ports.SessionRecord, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[rec.SessionID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		s.sessions[rec.SessionID] = rec
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	s.sessions[rec.SessionID] = rec
	return nil
}

var (
	_ ports.WorldObjectRepository  = (*Store)(nil)
	_ ports.WorldObjectProvider    = (*Store)(nil)
	_ ports.SessionStateRepository = (*Store)(nil)
)
