package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Spok95/site-inventory/internal/domain/catalog"
	"github.com/Spok95/site-inventory/internal/domain/errs"
	"github.com/Spok95/site-inventory/internal/domain/jobs"
	"github.com/Spok95/site-inventory/internal/domain/materials"
	"github.com/Spok95/site-inventory/internal/infra/metrics"
	"github.com/Spok95/site-inventory/internal/vision"
)

type Analyzer interface {
	AnalyzeImage(ctx context.Context, fileName string, content []byte) (*vision.Analysis, error)
}

type MaterialCatalog interface {
	GetByName(ctx context.Context, name string) (*materials.Material, error)
	ListAll(ctx context.Context, limit, offset int) ([]materials.Material, error)
}

type JobRepo interface {
	Create(ctx context.Context, constructionID uuid.UUID, fileName string) (*jobs.Job, error)
	Update(ctx context.Context, j jobs.Job) (*jobs.Job, error)
}

type ConstructionGetter interface {
	GetConstructionByID(ctx context.Context, id uuid.UUID) (*catalog.Construction, error)
}

// ReconciledMaterial is one extracted triple enriched with catalog match
// metadata. Nothing here is committed to storage; the storage-item call does
// that explicitly.
type ReconciledMaterial struct {
	Name           string
	Unit           string // as stated in the document
	NormalizedUnit materials.Unit
	Quantity       decimal.Decimal
	MaterialID     *uuid.UUID
	MaterialExists bool
	MaterialUnit   materials.Unit
	UnitMatches    bool
	CanUseQuantity bool
	Suggested      []materials.Suggestion
	Error          string // set when the lookup for this item failed
}

type AnalysisReport struct {
	JobID          uuid.UUID
	ConstructionID uuid.UUID
	FileName       string
	Materials      []ReconciledMaterial
	RawResponse    string
	ParseError     string
}

// Documents runs the reconciliation pipeline: image -> vision adapter -> raw
// triples -> unit normalization -> per-triple catalog matching.
type Documents struct {
	analyzer Analyzer
	catalog  MaterialCatalog
	jobsRepo JobRepo
	sites    ConstructionGetter
	log      *slog.Logger
	now      func() time.Time
}

func NewDocuments(analyzer Analyzer, cat MaterialCatalog, jobsRepo JobRepo, sites ConstructionGetter, log *slog.Logger) *Documents {
	return &Documents{
		analyzer: analyzer,
		catalog:  cat,
		jobsRepo: jobsRepo,
		sites:    sites,
		log:      log,
		now:      time.Now,
	}
}

func (s *Documents) Analyze(ctx context.Context, constructionID uuid.UUID, fileName string, content []byte) (*AnalysisReport, error) {
	construction, err := s.sites.GetConstructionByID(ctx, constructionID)
	if err != nil {
		return nil, err
	}
	if construction == nil {
		return nil, errs.NotFound("Construction", constructionID.String())
	}

	job, err := s.jobsRepo.Create(ctx, constructionID, fileName)
	if err != nil {
		return nil, err
	}
	if err := job.Start(); err != nil {
		return nil, err
	}
	if _, err := s.jobsRepo.Update(ctx, *job); err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.AnalyzeImage(ctx, fileName, content)
	if err != nil {
		s.failJob(ctx, job, err)
		metrics.DocumentsAnalyzed.WithLabelValues("failed").Inc()
		return nil, err
	}

	report := &AnalysisReport{
		JobID:          job.ID,
		ConstructionID: constructionID,
		FileName:       fileName,
		RawResponse:    analysis.RawResponse,
		ParseError:     analysis.ParseError,
	}

	if analysis.ParseError == "" {
		report.Materials = s.reconcile(ctx, analysis.Materials)
	}

	if err := job.Complete(s.now()); err != nil {
		return nil, err
	}
	if _, err := s.jobsRepo.Update(ctx, *job); err != nil {
		return nil, err
	}
	metrics.DocumentsAnalyzed.WithLabelValues("completed").Inc()
	return report, nil
}

// reconcile classifies every extracted triple. Failures are isolated per item:
// a broken lookup annotates that item instead of aborting the batch.
func (s *Documents) reconcile(ctx context.Context, extracted []vision.ExtractedMaterial) []ReconciledMaterial {
	pool, poolErr := s.catalog.ListAll(ctx, catalogPoolLimit, 0)
	if poolErr != nil {
		s.log.Error("catalog pool load failed", "err", poolErr)
	}

	out := make([]ReconciledMaterial, 0, len(extracted))
	for _, ext := range extracted {
		item := ReconciledMaterial{
			Name:           ext.Name,
			Unit:           ext.Unit,
			NormalizedUnit: materials.NormalizeUnit(ext.Unit),
			Quantity:       ext.Quantity,
		}

		exact, err := s.catalog.GetByName(ctx, ext.Name)
		switch {
		case err != nil:
			item.Error = "material lookup failed: " + err.Error()
			metrics.MaterialMatches.WithLabelValues("error").Inc()
		case exact != nil:
			item.MaterialID = &exact.ID
			item.MaterialExists = true
			item.MaterialUnit = exact.Unit
			// Raw label comparison: "kg" does not equal "kilograms" unless
			// the document already used the canonical value.
			item.UnitMatches = string(exact.Unit) == ext.Unit
			item.CanUseQuantity = item.UnitMatches
			metrics.MaterialMatches.WithLabelValues("exact").Inc()
		case poolErr != nil:
			item.Error = "material lookup failed: " + poolErr.Error()
			metrics.MaterialMatches.WithLabelValues("error").Inc()
		default:
			res := materials.Match(ext.Name, ext.Unit, pool)
			item.Suggested = res.Suggestions
			if len(res.Suggestions) > 0 {
				metrics.MaterialMatches.WithLabelValues("suggested").Inc()
			} else {
				metrics.MaterialMatches.WithLabelValues("none").Inc()
			}
		}
		out = append(out, item)
	}
	return out
}

func (s *Documents) failJob(ctx context.Context, job *jobs.Job, cause error) {
	if err := job.Fail(cause.Error(), s.now()); err != nil {
		s.log.Error("job fail transition rejected", "job_id", job.ID, "err", err)
		return
	}
	if _, err := s.jobsRepo.Update(ctx, *job); err != nil {
		s.log.Error("job update failed", "job_id", job.ID, "err", err)
	}
}
