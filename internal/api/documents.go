package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Spok95/site-inventory/internal/domain/errs"
	"github.com/Spok95/site-inventory/internal/service"
)

type documentHandler struct {
	svc         *service.Documents
	maxUploadMB int
}

func (h *documentHandler) analyze(c *gin.Context) {
	constructionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid construction id"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, errs.Validation("file is required"))
		return
	}
	maxBytes := int64(h.maxUploadMB) << 20
	if fileHeader.Size > maxBytes {
		respondError(c, errs.Validation("file exceeds %d MB limit", h.maxUploadMB))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, errs.Validation("cannot read uploaded file"))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		respondError(c, errs.Validation("cannot read uploaded file"))
		return
	}
	if int64(len(content)) > maxBytes {
		respondError(c, errs.Validation("file exceeds %d MB limit", h.maxUploadMB))
		return
	}

	report, err := h.svc.Analyze(c.Request.Context(), constructionID, fileHeader.Filename, content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAnalysisReportDTO(*report))
}
