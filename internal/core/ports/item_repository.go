package ports

import (
	"context"

	"github.com/nimbusworks/user-directory/internal/core/domain"
)

// ItemRepository defines persistence operations for the flat-file item store.
type ItemRepository interface {
	All(ctx context.Context) (map[string]*domain.Item, error)
	Insert(ctx context.Context, item *domain.Item) error
	// Rename updates an item's name, returning domain.ErrItemNotFound when
	// the id is unknown.
	Rename(ctx context.Context, id, name string) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
}
