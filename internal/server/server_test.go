package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ModuPlan/internal/engine"
	"github.com/piwi3910/ModuPlan/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	settings := model.DefaultSettings()
	settings.Site = model.Site{Width: 10, Height: 10}
	settings.SearchTimeout = 5
	return New(settings, log.New(io.Discard))
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func testTypes() []model.ModuleType {
	return []model.ModuleType{
		{ID: "a", Label: "Studio", Length: 6, Width: 4},
		{ID: "b", Label: "Square", Length: 4, Width: 4},
	}
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCombinations_ExplicitBand(t *testing.T) {
	lower, upper := 150.0, 350.0
	w := do(t, newTestServer(), http.MethodPost, "/combinations", gin.H{
		"module_types": []model.ModuleType{{ID: "x", Label: "Big", Length: 10, Width: 10}},
		"lower":        lower,
		"upper":        upper,
		"max_modules":  4,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp combinationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Combinations, 2)
	assert.Equal(t, 2, resp.Combinations[0].Modules)
	assert.Equal(t, 3, resp.Combinations[1].Modules)
	assert.Equal(t, 1, resp.Combinations[0].Index)
	assert.Equal(t, 4, resp.Band.MaxModules)
}

func TestCombinations_DerivedBand(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/combinations", gin.H{
		"module_types": testTypes(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp combinationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 60.0, resp.Band.Upper, 1e-9)
	assert.InDelta(t, 51.0, resp.Band.Lower, 1e-9)
	for _, c := range resp.Combinations {
		assert.GreaterOrEqual(t, c.TotalArea, resp.Band.Lower-1e-9)
		assert.LessOrEqual(t, c.TotalArea, resp.Band.Upper+1e-9)
	}
}

func TestCombinations_TimeoutReturnsPartial(t *testing.T) {
	settings := model.DefaultSettings()
	settings.SearchTimeout = 1
	s := New(settings, log.New(io.Discard))

	// Whole-number areas never reach 4800.5, so the search runs until the
	// deadline without recording anything.
	start := time.Now()
	w := do(t, s, http.MethodPost, "/combinations", gin.H{
		"module_types": []model.ModuleType{
			{Label: "A", Length: 1, Width: 1},
			{Label: "B", Length: 1, Width: 2},
			{Label: "C", Length: 2, Width: 2},
			{Label: "D", Length: 1, Width: 3},
			{Label: "E", Length: 3, Width: 3},
		},
		"lower":       4800.5,
		"upper":       4800.5,
		"max_modules": 4000,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Less(t, time.Since(start), 3*time.Second)

	var resp combinationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Partial)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Combinations)
}

func TestCombinations_ExpiredRequestContext(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(gin.H{"module_types": testTypes()}))

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	req := httptest.NewRequest(http.MethodPost, "/combinations", &buf).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp combinationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Partial)
	assert.Empty(t, resp.Combinations)
}

func TestFail_StatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: missing field", errBadRequest), http.StatusBadRequest},
		{fmt.Errorf("pack: %w", engine.ErrNoModules), http.StatusBadRequest},
		{fmt.Errorf("search: %w", context.Canceled), http.StatusServiceUnavailable},
		{fmt.Errorf("search: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	s := newTestServer()
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/combinations", nil)
		s.fail(c, tt.err)
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
		assert.Contains(t, w.Body.String(), tt.err.Error())
	}
}

func TestCombinations_NoTypes(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/combinations", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestCombinations_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/combinations", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArrangements_FromCombination(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/arrangements", gin.H{
		"module_types": testTypes(),
		"combination":  map[int]int{0: 1, 1: 1},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp arrangementsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Partial)
	require.NotEmpty(t, resp.Layouts)
	assert.Equal(t, resp.Count, len(resp.Layouts))
	for _, l := range resp.Layouts {
		assert.Len(t, l.Modules, 2)
		assert.InDelta(t, 40.0, l.Stats.ModuleArea, 1e-9)
	}
}

func TestArrangements_Infeasible(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/arrangements", gin.H{
		"module_types": []model.ModuleType{{Label: "Long", Length: 11, Width: 1}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp arrangementsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.Layouts)
}

func TestArrangements_Preview(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/arrangements", gin.H{
		"module_types": testTypes(),
		"preview":      true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp arrangementsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestArrangements_BadCombinationIndex(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/arrangements", gin.H{
		"module_types": testTypes(),
		"combination":  map[int]int{5: 1},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArrangements_InvalidSite(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/arrangements", gin.H{
		"site":         model.Site{Width: 0, Height: 10},
		"module_types": testTypes(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPerimeter_TwoSquares(t *testing.T) {
	body := `{"layout":[
		[{"x":0,"y":0},{"x":1,"y":0},{"x":1,"y":1},{"x":0,"y":1}],
		[{"x":1,"y":0},{"x":2,"y":0},{"x":2,"y":1},{"x":1,"y":1}]
	]}`
	req := httptest.NewRequest(http.MethodPost, "/perimeter", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp perimeterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Segments, 4)
	assert.InDelta(t, 6.0, resp.Length, 1e-9)
}

func TestPerimeter_Empty(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/perimeter", gin.H{"layout": []interface{}{}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"segments":[],"length":0}`, w.Body.String())
}
