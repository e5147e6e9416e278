package domain

import (
	"errors"
	"time"
)

var ErrItemNotFound = errors.New("item not found")

// Item is a minimal named record kept in the flat-file store.
type Item struct {
	ID          string    `json:"item_id"`
	Name        string    `json:"item_name"`
	CreatedTime time.Time `json:"created_time"`
	UpdatedTime time.Time `json:"updated_time,omitempty"`
}
