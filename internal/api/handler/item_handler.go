package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nimbusworks/user-directory/internal/core/ports"
)

// ItemHandler handles HTTP requests for the flat-file items resource.
type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// List handles GET /items.
//
// @Summary      List all items
// @Tags         items
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.service.ListItems(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Items fetched successfully", items))
}

// Create handles POST /items.
//
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  createItemRequest  true  "New item"
// @Success      201  {object}  envelope
// @Failure      400  {object}  envelope
// @Router       /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.CreateItem(c.Request().Context(), req.ItemName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ok("Item created successfully", map[string]string{"item_id": item.ID}))
}

// Update handles PATCH /items/:id.
//
// @Summary      Rename an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "Item id"
// @Param        body  body  updateItemRequest  true  "New name"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /items/{id} [patch]
func (h *ItemHandler) Update(c echo.Context) error {
	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.ItemName == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one field must be provided for update")
	}

	if _, err := h.service.RenameItem(c.Request().Context(), c.Param("id"), *req.ItemName); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Item updated successfully", nil))
}

// Delete handles DELETE /items/:id.
//
// @Summary      Delete an item
// @Tags         items
// @Success      204  "No Content"
// @Failure      404  {object}  envelope
// @Param        id  path  string  true  "Item id"
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
