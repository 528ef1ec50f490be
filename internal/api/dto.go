package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Spok95/site-inventory/internal/domain/catalog"
	"github.com/Spok95/site-inventory/internal/domain/inventory"
	"github.com/Spok95/site-inventory/internal/domain/jobs"
	"github.com/Spok95/site-inventory/internal/domain/materials"
	"github.com/Spok95/site-inventory/internal/service"
)

type materialDTO struct {
	MaterialID  uuid.UUID `json:"material_id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Unit        string    `json:"unit"`
	CreatedAt   time.Time `json:"created_at"`
}

func toMaterialDTO(m materials.Material) materialDTO {
	return materialDTO{
		MaterialID:  m.ID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		Unit:        string(m.Unit),
		CreatedAt:   m.CreatedAt,
	}
}

func toMaterialDTOs(items []materials.Material) []materialDTO {
	out := make([]materialDTO, 0, len(items))
	for _, m := range items {
		out = append(out, toMaterialDTO(m))
	}
	return out
}

type materialListDTO struct {
	Materials []materialDTO `json:"materials"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	Size      int           `json:"size"`
}

type categoryDTO struct {
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

func toCategoryDTO(c catalog.Category) categoryDTO {
	return categoryDTO{CategoryID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

type constructionDTO struct {
	ConstructionID uuid.UUID  `json:"construction_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Address        string     `json:"address"`
	StartDate      *time.Time `json:"start_date"`
	Status         string     `json:"status"`
	ImgURL         *string    `json:"img_url"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toConstructionDTO(c catalog.Construction) constructionDTO {
	return constructionDTO{
		ConstructionID: c.ID,
		Name:           c.Name,
		Description:    c.Description,
		Address:        c.Address,
		StartDate:      c.StartDate,
		Status:         string(c.Status),
		ImgURL:         c.ImgURL,
		CreatedAt:      c.CreatedAt,
	}
}

type storageDTO struct {
	StorageID      uuid.UUID `json:"storage_id"`
	ConstructionID uuid.UUID `json:"construction_id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
}

func toStorageDTO(s catalog.Storage) storageDTO {
	return storageDTO{StorageID: s.ID, ConstructionID: s.ConstructionID, Name: s.Name, CreatedAt: s.CreatedAt}
}

type storageItemDTO struct {
	ConstructionID uuid.UUID       `json:"construction_id"`
	MaterialID     uuid.UUID       `json:"material_id"`
	QuantityValue  decimal.Decimal `json:"quantity_value"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toStorageItemDTO(it inventory.Item) storageItemDTO {
	return storageItemDTO{
		ConstructionID: it.ConstructionID,
		MaterialID:     it.MaterialID,
		QuantityValue:  it.Quantity,
		CreatedAt:      it.CreatedAt,
	}
}

func toStorageItemDTOs(items []inventory.Item) []storageItemDTO {
	out := make([]storageItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toStorageItemDTO(it))
	}
	return out
}

type storageItemMaterialDTO struct {
	ConstructionID uuid.UUID       `json:"construction_id"`
	MaterialID     uuid.UUID       `json:"material_id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	Unit           string          `json:"unit"`
	QuantityValue  decimal.Decimal `json:"quantity_value"`
	CreatedAt      time.Time       `json:"created_at"`
}

type jobDTO struct {
	JobID          uuid.UUID  `json:"job_id"`
	ConstructionID uuid.UUID  `json:"construction_id"`
	FileName       string     `json:"file_name"`
	Status         string     `json:"status"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

func toJobDTO(j jobs.Job) jobDTO {
	return jobDTO{
		JobID:          j.ID,
		ConstructionID: j.ConstructionID,
		FileName:       j.FileName,
		Status:         string(j.Status),
		ErrorMessage:   j.ErrorMessage,
		CreatedAt:      j.CreatedAt,
		CompletedAt:    j.CompletedAt,
	}
}

type suggestionDTO struct {
	MaterialID      uuid.UUID `json:"material_id"`
	Name            string    `json:"name"`
	Unit            string    `json:"unit"`
	Description     string    `json:"description"`
	SimilarityScore int       `json:"similarity_score"`
}

func toSuggestionDTOs(items []materials.Suggestion) []suggestionDTO {
	out := make([]suggestionDTO, 0, len(items))
	for _, s := range items {
		out = append(out, suggestionDTO{
			MaterialID:      s.MaterialID,
			Name:            s.Name,
			Unit:            string(s.Unit),
			Description:     s.Description,
			SimilarityScore: s.Score,
		})
	}
	return out
}

type reconciledMaterialDTO struct {
	Name               string          `json:"name"`
	Unit               string          `json:"unit"`
	NormalizedUnit     string          `json:"normalized_unit"`
	Quantity           decimal.Decimal `json:"quantity"`
	MaterialID         *uuid.UUID      `json:"material_id"`
	MaterialExists     bool            `json:"material_exists"`
	MaterialUnit       string          `json:"material_unit,omitempty"`
	UnitMatches        bool            `json:"unit_matches"`
	CanUseQuantity     bool            `json:"can_use_quantity"`
	SuggestedMaterials []suggestionDTO `json:"suggested_materials"`
	Error              string          `json:"error,omitempty"`
}

type analysisReportDTO struct {
	JobID          uuid.UUID               `json:"job_id"`
	ConstructionID uuid.UUID               `json:"construction_id"`
	FileName       string                  `json:"file_name"`
	Materials      []reconciledMaterialDTO `json:"materials"`
	RawResponse    string                  `json:"raw_response,omitempty"`
	Error          string                  `json:"error,omitempty"`
}

func toAnalysisReportDTO(r service.AnalysisReport) analysisReportDTO {
	out := analysisReportDTO{
		JobID:          r.JobID,
		ConstructionID: r.ConstructionID,
		FileName:       r.FileName,
		Materials:      make([]reconciledMaterialDTO, 0, len(r.Materials)),
		RawResponse:    r.RawResponse,
		Error:          r.ParseError,
	}
	for _, m := range r.Materials {
		out.Materials = append(out.Materials, reconciledMaterialDTO{
			Name:               m.Name,
			Unit:               m.Unit,
			NormalizedUnit:     string(m.NormalizedUnit),
			Quantity:           m.Quantity,
			MaterialID:         m.MaterialID,
			MaterialExists:     m.MaterialExists,
			MaterialUnit:       string(m.MaterialUnit),
			UnitMatches:        m.UnitMatches,
			CanUseQuantity:     m.CanUseQuantity,
			SuggestedMaterials: toSuggestionDTOs(m.Suggested),
			Error:              m.Error,
		})
	}
	return out
}
