// Package handler maps the read API's routes onto the items service.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jaydenyeong/Grocery-Sentinel/internal/service"
)

type ItemHandler struct {
	itemsService *service.ItemsService
}

func NewItemHandler(itemsService *service.ItemsService) *ItemHandler {
	return &ItemHandler{
		itemsService: itemsService,
	}
}

// Health answers the liveness probe.
func (h *ItemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetItems returns a price summary for every tracked item.
func (h *ItemHandler) GetItems(c *gin.Context) {
	items, err := h.itemsService.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetHistory returns one item's full price history. A non-numeric id can
// match no product, so it reads as not found rather than a client error.
func (h *ItemHandler) GetHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Item not found"})
		return
	}

	history, err := h.itemsService.ItemHistory(c.Request.Context(), uint(id))
	if errors.Is(err, service.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}
