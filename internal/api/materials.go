package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Spok95/site-inventory/internal/domain/errs"
	"github.com/Spok95/site-inventory/internal/domain/materials"
	"github.com/Spok95/site-inventory/internal/service"
)

type materialHandler struct {
	svc *service.Materials
}

type materialRequest struct {
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Unit        string    `json:"unit" binding:"required"`
}

func (r materialRequest) toInput() service.MaterialInput {
	return service.MaterialInput{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Description: r.Description,
		// Free-form labels are accepted and canonicalized at this boundary.
		Unit: materials.NormalizeUnit(r.Unit),
	}
}

func (h *materialHandler) create(c *gin.Context) {
	var req materialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMaterialDTO(*created))
}

type materialBulkRequest struct {
	Materials []materialRequest `json:"materials" binding:"required"`
}

func (h *materialHandler) createBulk(c *gin.Context) {
	var req materialBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	inputs := make([]service.MaterialInput, 0, len(req.Materials))
	for _, m := range req.Materials {
		inputs = append(inputs, m.toInput())
	}
	created, err := h.svc.CreateBulk(c.Request.Context(), inputs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"materials": toMaterialDTOs(created), "total": len(created)})
}

// findOrCreate resolves a material by normalized name, creating it on first
// reference. Idempotent, so repeated calls return the same material.
func (h *materialHandler) findOrCreate(c *gin.Context) {
	var req materialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	m, err := h.svc.FindOrCreateByName(c.Request.Context(), req.Name, req.CategoryID, materials.NormalizeUnit(req.Unit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMaterialDTO(*m))
}

func (h *materialHandler) list(c *gin.Context) {
	limit, offset := parseLimitOffset(c)

	// Optional substring filter on name.
	if q := c.Query("q"); q != "" {
		items, err := h.svc.FilterByName(c.Request.Context(), q, limit, offset)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, materialListDTO{
			Materials: toMaterialDTOs(items),
			Total:     len(items),
			Page:      pageOf(limit, offset),
			Size:      limit,
		})
		return
	}

	items, total, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, materialListDTO{
		Materials: toMaterialDTOs(items),
		Total:     total,
		Page:      pageOf(limit, offset),
		Size:      limit,
	})
}

func (h *materialHandler) search(c *gin.Context) {
	query := c.Query("query")
	page, size := parsePageSize(c)

	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, errs.Validation("invalid category id"))
			return
		}
		categoryID = &id
	}

	results, total, err := h.svc.Search(c.Request.Context(), query, categoryID, page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results": toSuggestionDTOs(results),
		"total":   total,
		"page":    page,
		"size":    size,
	})
}

func (h *materialHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid material id"))
		return
	}
	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMaterialDTO(*m))
}

type materialUpdateRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Unit        *string    `json:"unit"`
}

func (h *materialHandler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid material id"))
		return
	}
	var req materialUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	patch := service.MaterialPatch{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Unit != nil {
		u := materials.NormalizeUnit(*req.Unit)
		patch.Unit = &u
	}
	updated, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMaterialDTO(*updated))
}

func (h *materialHandler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid material id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *materialHandler) listByCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid category id"))
		return
	}
	limit, offset := parseLimitOffset(c)
	items, err := h.svc.ListByCategory(c.Request.Context(), id, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, materialListDTO{
		Materials: toMaterialDTOs(items),
		Total:     len(items),
		Page:      pageOf(limit, offset),
		Size:      limit,
	})
}
