package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nimbusworks/user-directory/internal/core/domain"
	"github.com/nimbusworks/user-directory/internal/core/ports"
)

// ItemService implements the simple items resource on top of the
// flat-file store.
type ItemService struct {
	repo   ports.ItemRepository
	logger zerolog.Logger
}

func NewItemService(repo ports.ItemRepository, logger zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, logger: logger}
}

func (s *ItemService) ListItems(ctx context.Context) (map[string]*domain.Item, error) {
	return s.repo.All(ctx)
}

func (s *ItemService) CreateItem(ctx context.Context, name string) (*domain.Item, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: item_name is required", domain.ErrValidation)
	}

	item := &domain.Item{
		ID:          uuid.NewString(),
		Name:        name,
		CreatedTime: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		s.logger.Error().Err(err).Str("item_name", name).Msg("failed to create item")
		return nil, err
	}

	s.logger.Info().Str("item_id", item.ID).Str("item_name", name).Msg("item created")
	return item, nil
}

func (s *ItemService) RenameItem(ctx context.Context, id, name string) (*domain.Item, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: item_name is required", domain.ErrValidation)
	}

	item, err := s.repo.Rename(ctx, id, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("item_id", id).Str("item_name", name).Msg("item renamed")
	return item, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("item_id", id).Msg("item deleted")
	return nil
}
