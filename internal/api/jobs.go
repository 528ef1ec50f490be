package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Spok95/site-inventory/internal/domain/errs"
	"github.com/Spok95/site-inventory/internal/domain/jobs"
)

type jobHandler struct {
	repo *jobs.Repo
}

func (h *jobHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid job id"))
		return
	}
	job, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if job == nil {
		respondError(c, errs.NotFound("Job", id.String()))
		return
	}
	c.JSON(http.StatusOK, toJobDTO(*job))
}

func (h *jobHandler) listByConstruction(c *gin.Context) {
	constructionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return
	}
	limit, offset := parseLimitOffset(c)
	items, err := h.repo.ListByConstruction(c.Request.Context(), constructionID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	dtos := make([]jobDTO, 0, len(items))
	for _, j := range items {
		dtos = append(dtos, toJobDTO(j))
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":  dtos,
		"total": len(dtos),
		"page":  pageOf(limit, offset),
		"size":  limit,
	})
}
