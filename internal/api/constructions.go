package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Spok95/site-inventory/internal/domain/catalog"
	"github.com/Spok95/site-inventory/internal/domain/errs"
	"github.com/Spok95/site-inventory/internal/service"
)

type constructionHandler struct {
	repo      *catalog.Repo
	stock     *service.Stock
	materials *service.Materials
}

type constructionRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	StartDate   *time.Time `json:"start_date"`
	Status      string     `json:"status"`
	ImgURL      *string    `json:"img_url"`
}

func (r constructionRequest) toModel() (catalog.Construction, error) {
	status := catalog.StatusActive
	if r.Status != "" {
		status = catalog.ConstructionStatus(r.Status)
		if !catalog.ValidStatus(status) {
			return catalog.Construction{}, errs.Validation("unknown construction status %q", r.Status)
		}
	}
	return catalog.Construction{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		StartDate:   r.StartDate,
		Status:      status,
		ImgURL:      r.ImgURL,
	}, nil
}

func (h *constructionHandler) create(c *gin.Context) {
	var req constructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	model, err := req.toModel()
	if err != nil {
		respondError(c, err)
		return
	}
	created, err := h.repo.CreateConstruction(c.Request.Context(), model)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toConstructionDTO(*created))
}

func (h *constructionHandler) list(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	items, err := h.repo.ListConstructions(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.repo.CountConstructions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	dtos := make([]constructionDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, toConstructionDTO(it))
	}
	c.JSON(http.StatusOK, gin.H{
		"constructions": dtos,
		"total":         total,
		"page":          pageOf(limit, offset),
		"size":          limit,
	})
}

func (h *constructionHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return
	}
	construction, err := h.repo.GetConstructionByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if construction == nil {
		respondError(c, errs.NotFound("Construction", id.String()))
		return
	}
	c.JSON(http.StatusOK, toConstructionDTO(*construction))
}

func (h *constructionHandler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return
	}
	existing, err := h.repo.GetConstructionByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		respondError(c, errs.NotFound("Construction", id.String()))
		return
	}

	var req constructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	model, err := req.toModel()
	if err != nil {
		respondError(c, err)
		return
	}
	model.ID = id
	updated, err := h.repo.UpdateConstruction(c.Request.Context(), model)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toConstructionDTO(*updated))
}

func (h *constructionHandler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return
	}
	ok, err := h.repo.DeleteConstruction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, errs.NotFound("Construction", id.String()))
		return
	}
	c.Status(http.StatusNoContent)
}

// listMaterials lists the catalog materials present on the construction site.
func (h *constructionHandler) listMaterials(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return
	}
	limit, offset := parseLimitOffset(c)
	items, err := h.materials.ListByConstruction(c.Request.Context(), id, limit, offset)
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

// inventory lists storage items joined with material and category details.
func (h *constructionHandler) inventory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return
	}
	rows, err := h.stock.MaterialsByConstruction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]storageItemMaterialDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, storageItemMaterialDTO{
			ConstructionID: row.ConstructionID,
			MaterialID:     row.MaterialID,
			Name:           row.Name,
			Category:       row.Category,
			Description:    row.Description,
			Unit:           row.Unit,
			QuantityValue:  row.Quantity,
			CreatedAt:      row.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": out, "total": len(out)})
}

func (h *constructionHandler) exportInventory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return
	}
	construction, err := h.repo.GetConstructionByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if construction == nil {
		respondError(c, errs.NotFound("Construction", id.String()))
		return
	}
	rows, err := h.stock.MaterialsByConstruction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	data, filename, err := service.BuildInventoryXLSX(construction.Name, rows)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
