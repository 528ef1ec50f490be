package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/site-inventory/internal/domain/catalog"
	"github.com/Spok95/site-inventory/internal/domain/errs"
	"github.com/Spok95/site-inventory/internal/domain/jobs"
	"github.com/Spok95/site-inventory/internal/domain/materials"
	"github.com/Spok95/site-inventory/internal/vision"
)

type fakeAnalyzer struct {
	analysis *vision.Analysis
	err      error
}

func (f *fakeAnalyzer) AnalyzeImage(context.Context, string, []byte) (*vision.Analysis, error) {
	return f.analysis, f.err
}

type fakeCatalog struct {
	byName  map[string]*materials.Material
	pool    []materials.Material
	nameErr error
	poolErr error
}

func (f *fakeCatalog) GetByName(_ context.Context, name string) (*materials.Material, error) {
	if f.nameErr != nil {
		return nil, f.nameErr
	}
	return f.byName[name], nil
}

func (f *fakeCatalog) ListAll(context.Context, int, int) ([]materials.Material, error) {
	if f.poolErr != nil {
		return nil, f.poolErr
	}
	return f.pool, nil
}

type fakeJobRepo struct {
	created *jobs.Job
	updates []jobs.Job
}

func (f *fakeJobRepo) Create(_ context.Context, constructionID uuid.UUID, fileName string) (*jobs.Job, error) {
	j := jobs.Job{
		ID:             uuid.New(),
		ConstructionID: constructionID,
		FileName:       fileName,
		Status:         jobs.StatusPending,
		CreatedAt:      time.Now(),
	}
	f.created = &j
	return &j, nil
}

func (f *fakeJobRepo) Update(_ context.Context, j jobs.Job) (*jobs.Job, error) {
	f.updates = append(f.updates, j)
	return &j, nil
}

type fakeSites struct {
	construction *catalog.Construction
}

func (f *fakeSites) GetConstructionByID(context.Context, uuid.UUID) (*catalog.Construction, error) {
	return f.construction, nil
}

func newDocumentsForTest(analyzer Analyzer, cat MaterialCatalog, jobRepo JobRepo, sites ConstructionGetter) *Documents {
	svc := NewDocuments(analyzer, cat, jobRepo, sites, testLogger())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func site() *fakeSites {
	return &fakeSites{construction: &catalog.Construction{ID: uuid.New(), Name: "Osiedle Parkowe"}}
}

func extracted(name, unit string, qty int64) vision.ExtractedMaterial {
	return vision.ExtractedMaterial{Name: name, Unit: unit, Quantity: decimal.NewFromInt(qty)}
}

func TestAnalyzeExactMatch(t *testing.T) {
	cement := materials.Material{ID: uuid.New(), Name: "Cement", Unit: materials.UnitKilograms}
	cat := &fakeCatalog{
		byName: map[string]*materials.Material{"Cement": &cement},
		pool:   []materials.Material{cement},
	}
	analyzer := &fakeAnalyzer{analysis: &vision.Analysis{
		Materials: []vision.ExtractedMaterial{extracted("Cement", "kilograms", 25)},
	}}
	jobRepo := &fakeJobRepo{}
	svc := newDocumentsForTest(analyzer, cat, jobRepo, site())

	report, err := svc.Analyze(context.Background(), uuid.New(), "invoice.jpg", []byte("img"))
	require.NoError(t, err)
	require.Len(t, report.Materials, 1)

	item := report.Materials[0]
	assert.True(t, item.MaterialExists)
	require.NotNil(t, item.MaterialID)
	assert.Equal(t, cement.ID, *item.MaterialID)
	assert.True(t, item.UnitMatches)
	assert.True(t, item.CanUseQuantity)
	assert.Equal(t, materials.UnitKilograms, item.NormalizedUnit)
	assert.Empty(t, item.Suggested)
}

func TestAnalyzeExactMatchUnitMismatch(t *testing.T) {
	cement := materials.Material{ID: uuid.New(), Name: "Cement", Unit: materials.UnitKilograms}
	cat := &fakeCatalog{byName: map[string]*materials.Material{"Cement": &cement}}
	analyzer := &fakeAnalyzer{analysis: &vision.Analysis{
		Materials: []vision.ExtractedMaterial{extracted("Cement", "kg", 25)},
	}}
	svc := newDocumentsForTest(analyzer, cat, &fakeJobRepo{}, site())

	report, err := svc.Analyze(context.Background(), uuid.New(), "invoice.jpg", nil)
	require.NoError(t, err)
	require.Len(t, report.Materials, 1)

	item := report.Materials[0]
	assert.True(t, item.MaterialExists)
	// "kg" versus the canonical "kilograms" is a raw-label mismatch even
	// though both normalize to kilograms.
	assert.False(t, item.UnitMatches)
	assert.False(t, item.CanUseQuantity)
	assert.Equal(t, materials.UnitKilograms, item.NormalizedUnit)
}

func TestAnalyzeSuggestions(t *testing.T) {
	cement := materials.Material{ID: uuid.New(), Name: "Cement", Unit: materials.UnitKilograms}
	cat := &fakeCatalog{
		byName: map[string]*materials.Material{},
		pool:   []materials.Material{cement},
	}
	analyzer := &fakeAnalyzer{analysis: &vision.Analysis{
		Materials: []vision.ExtractedMaterial{extracted("Cement 25kg bag", "kg", 10)},
	}}
	svc := newDocumentsForTest(analyzer, cat, &fakeJobRepo{}, site())

	report, err := svc.Analyze(context.Background(), uuid.New(), "invoice.png", nil)
	require.NoError(t, err)
	require.Len(t, report.Materials, 1)

	item := report.Materials[0]
	assert.False(t, item.MaterialExists)
	assert.Nil(t, item.MaterialID)
	assert.False(t, item.CanUseQuantity)
	require.NotEmpty(t, item.Suggested)
	assert.Equal(t, "Cement", item.Suggested[0].Name)
}

func TestAnalyzePerItemErrorIsolation(t *testing.T) {
	cement := materials.Material{ID: uuid.New(), Name: "Cement", Unit: materials.UnitKilograms}
	cat := &fakeCatalog{
		byName: map[string]*materials.Material{"Cement": &cement},
		pool:   []materials.Material{cement},
	}
	analyzer := &fakeAnalyzer{analysis: &vision.Analysis{
		Materials: []vision.ExtractedMaterial{
			extracted("Cement", "kilograms", 25),
			extracted("Totally unknown thing", "szt", 3),
		},
	}}
	svc := newDocumentsForTest(analyzer, cat, &fakeJobRepo{}, site())

	report, err := svc.Analyze(context.Background(), uuid.New(), "invoice.jpg", nil)
	require.NoError(t, err)
	require.Len(t, report.Materials, 2)

	assert.True(t, report.Materials[0].MaterialExists)
	assert.False(t, report.Materials[1].MaterialExists)
	assert.Equal(t, materials.UnitPieces, report.Materials[1].NormalizedUnit)
}

func TestAnalyzeLookupFailureAnnotatesItem(t *testing.T) {
	cat := &fakeCatalog{nameErr: errors.New("connection reset")}
	analyzer := &fakeAnalyzer{analysis: &vision.Analysis{
		Materials: []vision.ExtractedMaterial{extracted("Cement", "kg", 1)},
	}}
	svc := newDocumentsForTest(analyzer, cat, &fakeJobRepo{}, site())

	report, err := svc.Analyze(context.Background(), uuid.New(), "invoice.jpg", nil)
	require.NoError(t, err, "a broken lookup must not abort the batch")
	require.Len(t, report.Materials, 1)
	assert.Contains(t, report.Materials[0].Error, "material lookup failed")
}

func TestAnalyzeParseErrorSkipsReconciliation(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &vision.Analysis{
		RawResponse: "not json at all",
		ParseError:  "invalid character 'n'",
	}}
	jobRepo := &fakeJobRepo{}
	svc := newDocumentsForTest(analyzer, &fakeCatalog{}, jobRepo, site())

	report, err := svc.Analyze(context.Background(), uuid.New(), "invoice.jpg", nil)
	require.NoError(t, err)
	assert.Empty(t, report.Materials)
	assert.Equal(t, "not json at all", report.RawResponse)
	assert.Equal(t, "invalid character 'n'", report.ParseError)

	// The job still completes: the document was analyzed, just not parseable.
	last := jobRepo.updates[len(jobRepo.updates)-1]
	assert.Equal(t, jobs.StatusCompleted, last.Status)
}

func TestAnalyzeVisionFailureFailsJob(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errs.External("vision analysis", errors.New("timeout"))}
	jobRepo := &fakeJobRepo{}
	svc := newDocumentsForTest(analyzer, &fakeCatalog{}, jobRepo, site())

	_, err := svc.Analyze(context.Background(), uuid.New(), "invoice.jpg", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrExternal))

	require.NotEmpty(t, jobRepo.updates)
	last := jobRepo.updates[len(jobRepo.updates)-1]
	assert.Equal(t, jobs.StatusFailed, last.Status)
	assert.Contains(t, last.ErrorMessage, "timeout")
	assert.NotNil(t, last.CompletedAt)
}

func TestAnalyzeUnknownConstruction(t *testing.T) {
	svc := newDocumentsForTest(&fakeAnalyzer{}, &fakeCatalog{}, &fakeJobRepo{}, &fakeSites{})

	_, err := svc.Analyze(context.Background(), uuid.New(), "invoice.jpg", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestAnalyzeJobLifecycle(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &vision.Analysis{}}
	jobRepo := &fakeJobRepo{}
	svc := newDocumentsForTest(analyzer, &fakeCatalog{}, jobRepo, site())

	report, err := svc.Analyze(context.Background(), uuid.New(), "invoice.jpg", nil)
	require.NoError(t, err)
	assert.Equal(t, jobRepo.created.ID, report.JobID)

	require.Len(t, jobRepo.updates, 2)
	assert.Equal(t, jobs.StatusProcessing, jobRepo.updates[0].Status)
	assert.Equal(t, jobs.StatusCompleted, jobRepo.updates[1].Status)
}
