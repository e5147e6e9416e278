// Package jsonfile persists items as a single JSON document on disk. It is
// deliberately simple: the whole map is read and rewritten on every
// mutation, and a process-local mutex serialises writers.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nimbusworks/user-directory/internal/core/domain"
)

type ItemRepository struct {
	path string
	mu   sync.Mutex
}

func NewItemRepository(path string) *ItemRepository {
	return &ItemRepository{path: path}
}

type itemDoc struct {
	Name        string    `json:"item_name"`
	CreatedTime time.Time `json:"created_time"`
	UpdatedTime time.Time `json:"updated_time,omitempty"`
}

func (r *ItemRepository) All(_ context.Context) (map[string]*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.read()
	if err != nil {
		return nil, err
	}

	items := make(map[string]*domain.Item, len(docs))
	for id, d := range docs {
		items[id] = &domain.Item{
			ID:          id,
			Name:        d.Name,
			CreatedTime: d.CreatedTime,
			UpdatedTime: d.UpdatedTime,
		}
	}
	return items, nil
}

func (r *ItemRepository) Insert(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.read()
	if err != nil {
		return err
	}
	docs[item.ID] = itemDoc{Name: item.Name, CreatedTime: item.CreatedTime}
	return r.write(docs)
}

func (r *ItemRepository) Rename(_ context.Context, id, name string) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.read()
	if err != nil {
		return nil, err
	}
	doc, ok := docs[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}

	doc.Name = name
	doc.UpdatedTime = time.Now().UTC()
	docs[id] = doc
	if err := r.write(docs); err != nil {
		return nil, err
	}

	return &domain.Item{
		ID:          id,
		Name:        doc.Name,
		CreatedTime: doc.CreatedTime,
		UpdatedTime: doc.UpdatedTime,
	}, nil
}

func (r *ItemRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.read()
	if err != nil {
		return err
	}
	if _, ok := docs[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(docs, id)
	return r.write(docs)
}

// read loads the store. A missing or empty file is an empty store, not an
// error.
func (r *ItemRepository) read() (map[string]itemDoc, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]itemDoc{}, nil
		}
		return nil, fmt.Errorf("read item store: %w", err)
	}
	if len(data) == 0 {
		return map[string]itemDoc{}, nil
	}

	var docs map[string]itemDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode item store: %w", err)
	}
	return docs, nil
}

// write replaces the store atomically: write to a temp file in the same
// directory, then rename over the target.
func (r *ItemRepository) write(docs map[string]itemDoc) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode item store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".items-*.json")
	if err != nil {
		return fmt.Errorf("write item store: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write item store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write item store: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write item store: %w", err)
	}
	return nil
}
