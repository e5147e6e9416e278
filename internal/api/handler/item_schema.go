package handler

type createItemRequest struct {
	ItemName string `json:"item_name" validate:"required"`
}

// updateItemRequest uses a pointer so an empty body can be told apart from
// an empty name.
type updateItemRequest struct {
	ItemName *string `json:"item_name" validate:"omitempty,min=1"`
}
