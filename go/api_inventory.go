package logitrackserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	itemhttpmapper "github.com/logitrack/logitrack/internal/domains/inventory/adapters/http/mapper"
	inventoryports "github.com/logitrack/logitrack/internal/domains/inventory/ports"
	apierrors "github.com/logitrack/logitrack/internal/shared/errors"
)

// InventoryAPI wires HTTP transport with the inventory bounded context service.
type InventoryAPI struct {
	service inventoryports.Service
}

// NewInventoryAPI creates an InventoryAPI backed by the provided service.
func NewInventoryAPI(service inventoryports.Service) InventoryAPI {
	return InventoryAPI{service: service}
}

// Get /api/inventory
// Lists every inventory item
func (api *InventoryAPI) ListItems(c *gin.Context) {
	items, err := api.service.ListItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemhttpmapper.FromDomainItems(items))
}

// Post /api/inventory
// Adds an inventory item
func (api *InventoryAPI) AddItem(c *gin.Context) {
	var payload itemhttpmapper.Item
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	item, err := api.service.AddItem(c.Request.Context(), itemhttpmapper.ToAddItemInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/inventory/%d", item.ID))
	c.JSON(http.StatusCreated, itemhttpmapper.FromDomainItem(item))
}

// Get /api/inventory/:itemId
// Finds an inventory item by id
func (api *InventoryAPI) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	item, err := api.service.GetItem(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemhttpmapper.FromDomainItem(item))
}

// Delete /api/inventory/:itemId
// Deletes an inventory item
func (api *InventoryAPI) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	if err := api.service.DeleteItem(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
