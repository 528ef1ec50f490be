package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/site-inventory/internal/domain/errs"
)

func testContext(t *testing.T, rawQuery string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c, rec
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{errs.Validation("bad input"), http.StatusBadRequest, "validation_error"},
		{errs.NotFound("Material", "abc"), http.StatusNotFound, "not_found"},
		{errs.Business("already completed"), http.StatusConflict, "business_rule_violation"},
		{errs.External("vision analysis", errors.New("timeout")), http.StatusBadGateway, "external_service_error"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		c, rec := testContext(t, "")
		respondError(c, tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())

		var env errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, tc.code, env.Error.Code)
		assert.NotEmpty(t, env.Error.Message)
	}
}

func TestParseLimitOffset(t *testing.T) {
	cases := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 100, 0},
		{"limit=10&offset=30", 10, 30},
		{"limit=0", 100, 0},
		{"limit=-5", 100, 0},
		{"limit=5000", 100, 0},
		{"limit=1000", 1000, 0},
		{"offset=-1", 100, 0},
		{"limit=abc&offset=xyz", 100, 0},
	}
	for _, tc := range cases {
		c, _ := testContext(t, tc.query)
		limit, offset := parseLimitOffset(c)
		assert.Equal(t, tc.wantLimit, limit, tc.query)
		assert.Equal(t, tc.wantOffset, offset, tc.query)
	}
}

func TestParsePageSize(t *testing.T) {
	cases := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 1, 20},
		{"page=3&size=50", 3, 50},
		{"page=0", 1, 20},
		{"size=500", 1, 20},
		{"size=200", 1, 200},
	}
	for _, tc := range cases {
		c, _ := testContext(t, tc.query)
		page, size := parsePageSize(c)
		assert.Equal(t, tc.wantPage, page, tc.query)
		assert.Equal(t, tc.wantSize, size, tc.query)
	}
}

func TestPageOf(t *testing.T) {
	assert.Equal(t, 1, pageOf(100, 0))
	assert.Equal(t, 2, pageOf(100, 100))
	assert.Equal(t, 3, pageOf(50, 120))
	assert.Equal(t, 1, pageOf(0, 10))
}
