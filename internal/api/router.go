// Package api exposes the inventory over a JSON HTTP API.
package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/site-inventory/internal/domain/catalog"
	"github.com/Spok95/site-inventory/internal/domain/jobs"
	"github.com/Spok95/site-inventory/internal/service"
)

type Deps struct {
	Log       *slog.Logger
	Catalog   *catalog.Repo
	Materials *service.Materials
	Stock     *service.Stock
	Documents *service.Documents
	Jobs      *jobs.Repo

	MaxUploadMB int
}

func NewRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLog(deps.Log))

	categories := &categoryHandler{repo: deps.Catalog}
	mats := &materialHandler{svc: deps.Materials}
	constructions := &constructionHandler{repo: deps.Catalog, stock: deps.Stock, materials: deps.Materials}
	storages := &storageHandler{repo: deps.Catalog}
	items := &storageItemHandler{svc: deps.Stock}
	docs := &documentHandler{svc: deps.Documents, maxUploadMB: deps.MaxUploadMB}
	jobsH := &jobHandler{repo: deps.Jobs}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/categories", categories.create)
		v1.GET("/categories", categories.list)
		v1.GET("/categories/:id", categories.get)
		v1.PUT("/categories/:id", categories.update)
		v1.DELETE("/categories/:id", categories.delete)
		v1.GET("/categories/:id/materials", mats.listByCategory)

		v1.POST("/materials", mats.create)
		v1.POST("/materials/bulk", mats.createBulk)
		v1.POST("/materials/find-or-create", mats.findOrCreate)
		v1.GET("/materials", mats.list)
		v1.GET("/materials/search", mats.search)
		v1.GET("/materials/:id", mats.get)
		v1.PUT("/materials/:id", mats.update)
		v1.DELETE("/materials/:id", mats.delete)

		v1.POST("/constructions", constructions.create)
		v1.GET("/constructions", constructions.list)
		v1.GET("/constructions/:id", constructions.get)
		v1.PUT("/constructions/:id", constructions.update)
		v1.DELETE("/constructions/:id", constructions.delete)
		v1.GET("/constructions/:id/materials", constructions.listMaterials)
		v1.GET("/constructions/:id/inventory", constructions.inventory)
		v1.GET("/constructions/:id/inventory/export", constructions.exportInventory)

		v1.POST("/constructions/:id/storages", storages.create)
		v1.GET("/constructions/:id/storages", storages.listByConstruction)
		v1.GET("/storages/:id", storages.get)
		v1.PUT("/storages/:id", storages.update)
		v1.DELETE("/storages/:id", storages.delete)

		v1.POST("/storage-items", items.create)
		v1.POST("/constructions/:id/storage-items/bulk", items.createBulk)
		v1.GET("/constructions/:id/storage-items", items.listByConstruction)
		v1.GET("/materials/:id/storage-items", items.listByMaterial)
		v1.GET("/storage-items/:construction_id/:material_id", items.get)
		v1.PUT("/storage-items/:construction_id/:material_id", items.update)
		v1.DELETE("/storage-items/:construction_id/:material_id", items.delete)

		v1.POST("/constructions/:id/documents/analyze", docs.analyze)
		v1.GET("/constructions/:id/jobs", jobsH.listByConstruction)
		v1.GET("/jobs/:id", jobsH.get)
	}

	return r
}

func requestLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
