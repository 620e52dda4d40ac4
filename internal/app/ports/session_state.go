package ports

import "context"

// SessionRecord is the persisted shape of a navigation cursor. Version
// implements optimistic concurrency: SaveWithVersion with expectedVersion 0
// creates, any other value must match the stored row.
type SessionRecord struct {
	SessionID        string
	CategoryIndex    int
	SubcategoryIndex int
	ItemIndex        int
	InstanceIndex    int
	AutoJump         bool
	Version          int64
}

type SessionStateRepository interface {
	Get(ctx context.Context, sessionID string) (SessionRecord, error)
	SaveWithVersion(ctx context.Context, rec SessionRecord, expectedVersion int64) error
}
