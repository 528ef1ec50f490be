package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Spok95/site-inventory/internal/domain/errs"
	"github.com/Spok95/site-inventory/internal/domain/inventory"
	"github.com/Spok95/site-inventory/internal/service"
)

type storageItemHandler struct {
	svc *service.Stock
}

type storageItemRequest struct {
	ConstructionID uuid.UUID       `json:"construction_id" binding:"required"`
	MaterialID     uuid.UUID       `json:"material_id" binding:"required"`
	QuantityValue  decimal.Decimal `json:"quantity_value"`
}

// create adds quantity to the pair's balance, inserting the row when absent.
func (h *storageItemHandler) create(c *gin.Context) {
	var req storageItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.svc.Upsert(c.Request.Context(), req.ConstructionID, req.MaterialID, req.QuantityValue)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toStorageItemDTO(*item))
}

type storageItemBulkRequest struct {
	Items []struct {
		MaterialID    uuid.UUID       `json:"material_id" binding:"required"`
		QuantityValue decimal.Decimal `json:"quantity_value"`
	} `json:"items" binding:"required"`
}

func (h *storageItemHandler) createBulk(c *gin.Context) {
	constructionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return
	}
	var req storageItemBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	items := make([]inventory.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, inventory.Item{
			ConstructionID: constructionID,
			MaterialID:     it.MaterialID,
			Quantity:       it.QuantityValue,
		})
	}
	saved, err := h.svc.UpsertBulk(c.Request.Context(), constructionID, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": toStorageItemDTOs(saved), "total": len(saved)})
}

func (h *storageItemHandler) listByConstruction(c *gin.Context) {
	constructionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return
	}
	limit, offset := parseLimitOffset(c)
	items, err := h.svc.ListByConstruction(c.Request.Context(), constructionID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": toStorageItemDTOs(items),
		"total": len(items),
		"page":  pageOf(limit, offset),
		"size":  limit,
	})
}

func (h *storageItemHandler) listByMaterial(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid material id"))
		return
	}
	limit, offset := parseLimitOffset(c)
	items, err := h.svc.ListByMaterial(c.Request.Context(), materialID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": toStorageItemDTOs(items),
		"total": len(items),
		"page":  pageOf(limit, offset),
		"size":  limit,
	})
}

func (h *storageItemHandler) pairIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	constructionID, err := uuid.Parse(c.Param("construction_id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return uuid.Nil, uuid.Nil, false
	}
	materialID, err := uuid.Parse(c.Param("material_id"))
	if err != nil {
		respondError(c, errs.Validation("invalid material id"))
		return uuid.Nil, uuid.Nil, false
	}
	return constructionID, materialID, true
}

func (h *storageItemHandler) get(c *gin.Context) {
	constructionID, materialID, ok := h.pairIDs(c)
	if !ok {
		return
	}
	item, err := h.svc.Get(c.Request.Context(), constructionID, materialID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStorageItemDTO(*item))
}

type storageItemUpdateRequest struct {
	QuantityValue decimal.Decimal `json:"quantity_value"`
}

// update overwrites the stored quantity rather than adding to it.
func (h *storageItemHandler) update(c *gin.Context) {
	constructionID, materialID, ok := h.pairIDs(c)
	if !ok {
		return
	}
	var req storageItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.svc.SetQuantity(c.Request.Context(), constructionID, materialID, req.QuantityValue)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStorageItemDTO(*item))
}

func (h *storageItemHandler) delete(c *gin.Context) {
	constructionID, materialID, ok := h.pairIDs(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), constructionID, materialID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
