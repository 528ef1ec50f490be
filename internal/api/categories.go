package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Spok95/site-inventory/internal/domain/catalog"
	"github.com/Spok95/site-inventory/internal/domain/errs"
)

type categoryHandler struct {
	repo *catalog.Repo
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *categoryHandler) create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	created, err := h.repo.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryDTO(*created))
}

func (h *categoryHandler) list(c *gin.Context) {
	items, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]categoryDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toCategoryDTO(it))
	}
	c.JSON(http.StatusOK, gin.H{"categories": out, "total": len(out)})
}

func (h *categoryHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid category id"))
		return
	}
	cat, err := h.repo.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if cat == nil {
		respondError(c, errs.NotFound("Category", id.String()))
		return
	}
	c.JSON(http.StatusOK, toCategoryDTO(*cat))
}

func (h *categoryHandler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid category id"))
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	updated, err := h.repo.UpdateCategoryName(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	if updated == nil {
		respondError(c, errs.NotFound("Category", id.String()))
		return
	}
	c.JSON(http.StatusOK, toCategoryDTO(*updated))
}

func (h *categoryHandler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid category id"))
		return
	}
	ok, err := h.repo.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, errs.NotFound("Category", id.String()))
		return
	}
	c.Status(http.StatusNoContent)
}
