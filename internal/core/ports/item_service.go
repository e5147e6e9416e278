package ports

import (
	"context"

	"github.com/nimbusworks/user-directory/internal/core/domain"
)

// ItemService defines use-case operations on the items resource.
type ItemService interface {
	ListItems(ctx context.Context) (map[string]*domain.Item, error)
	CreateItem(ctx context.Context, name string) (*domain.Item, error)
	RenameItem(ctx context.Context, id, name string) (*domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
}
