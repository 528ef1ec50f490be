package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Spok95/site-inventory/internal/domain/catalog"
	"github.com/Spok95/site-inventory/internal/domain/errs"
)

type storageHandler struct {
	repo *catalog.Repo
}

type storageRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *storageHandler) create(c *gin.Context) {
	constructionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return
	}
	var req storageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	construction, err := h.repo.GetConstructionByID(c.Request.Context(), constructionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if construction == nil {
		respondError(c, errs.NotFound("Construction", constructionID.String()))
		return
	}
	created, err := h.repo.CreateStorage(c.Request.Context(), constructionID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toStorageDTO(*created))
}

func (h *storageHandler) listByConstruction(c *gin.Context) {
	constructionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return
	}
	storages, err := h.repo.ListStoragesByConstruction(c.Request.Context(), constructionID)
	if err != nil {
		respondError(c, err)
		return
	}
	dtos := make([]storageDTO, 0, len(storages))
	for _, s := range storages {
		dtos = append(dtos, toStorageDTO(s))
	}
	c.JSON(http.StatusOK, gin.H{"storages": dtos, "total": len(dtos)})
}

func (h *storageHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid storage id"))
		return
	}
	s, err := h.repo.GetStorageByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if s == nil {
		respondError(c, errs.NotFound("Storage", id.String()))
		return
	}
	c.JSON(http.StatusOK, toStorageDTO(*s))
}

func (h *storageHandler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid storage id"))
		return
	}
	var req storageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	updated, err := h.repo.UpdateStorageName(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	if updated == nil {
		respondError(c, errs.NotFound("Storage", id.String()))
		return
	}
	c.JSON(http.StatusOK, toStorageDTO(*updated))
}

func (h *storageHandler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid storage id"))
		return
	}
	ok, err := h.repo.DeleteStorage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, errs.NotFound("Storage", id.String()))
		return
	}
	c.Status(http.StatusNoContent)
}
