package ports

import (
	"context"

	"worldnav/internal/domain/world"
)

type WorldObjectProvider interface {
	Objects(ctx context.Context) ([]world.Object, error)
}

type WorldObjectRepository interface {
	List(ctx context.Context) ([]world.Object, error)
	Upsert(ctx context.Context, obj world.Object) error
}
