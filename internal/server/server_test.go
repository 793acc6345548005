package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	"github.com/alexisbeaulieu97/gradix/internal/logger"
	"github.com/alexisbeaulieu97/gradix/internal/random"
	"github.com/alexisbeaulieu97/gradix/internal/store"
	"github.com/alexisbeaulieu97/gradix/internal/studio"
)

const redToBlue = `{"name":"RB","angle":90,"useAngle":true,"colorStops":[{"color":"#FF0000","position":0,"opacity":1},{"color":"#0000FF","position":1,"opacity":1}]}`

func newTestRouter(t *testing.T, st store.Store, basePath string) *gin.Engine {
	t.Helper()
	seq := 0
	return NewRouter(st, Options{
		BasePath: basePath,
		Logger:   logger.Nop(),
		Random:   random.DefaultOptions(),
		Studio: []studio.Option{
			studio.WithIDFunc(func() string { seq++; return fmt.Sprintf("id-%d", seq) }),
		},
	})
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGradientLifecycle(t *testing.T) {
	r := newTestRouter(t, store.NewMemory(), "")

	rec := do(r, http.MethodGet, "/gradients", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(r, http.MethodPost, "/gradients", redToBlue)
	require.Equal(t, http.StatusCreated, rec.Code)
	saved := decode[gradient.Gradient](t, rec)
	assert.Equal(t, "id-1", saved.ID)
	assert.Equal(t, "RB", saved.Name)

	rec = do(r, http.MethodGet, "/gradients/id-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, saved, decode[gradient.Gradient](t, rec))

	rec = do(r, http.MethodGet, "/gradients", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]gradient.Gradient](t, rec), 1)

	rec = do(r, http.MethodDelete, "/gradients/id-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Gradient deleted successfully"}`, rec.Body.String())

	rec = do(r, http.MethodDelete, "/gradients/id-1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Gradient not found"}`, rec.Body.String())

	rec = do(r, http.MethodGet, "/gradients/id-1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostKeepsSuppliedID(t *testing.T) {
	r := newTestRouter(t, store.NewMemory(), "")

	body := strings.Replace(redToBlue, `"name":"RB"`, `"id":"mine","name":"RB"`, 1)
	rec := do(r, http.MethodPost, "/gradients", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "mine", decode[gradient.Gradient](t, rec).ID)

	// posting again replaces instead of duplicating
	rec = do(r, http.MethodPost, "/gradients", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(r, http.MethodGet, "/gradients", "")
	assert.Len(t, decode[[]gradient.Gradient](t, rec), 1)
}

func TestPostRejectsInvalidGradients(t *testing.T) {
	r := newTestRouter(t, store.NewMemory(), "")

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"malformed json", `{"colorStops":`, nil},
		{"single stop", `{"angle":90,"colorStops":[{"color":"#FF0000","position":0}]}`, []string{"colorStops"}},
		{"bad color", `{"angle":90,"colorStops":[{"color":"#FF00","position":0},{"color":"#000000","position":1}]}`, []string{"colorStops[0].color"}},
		{"missing position", `{"angle":90,"colorStops":[{"color":"#FF0000"},{"color":"#0000FF","position":1}]}`, []string{"colorStops[0].position"}},
		{"missing angle", `{"colorStops":[{"color":"#FF0000","position":0},{"color":"#0000FF","position":1}]}`, []string{"angle"}},
		{"fractional angle", `{"angle":725.6,"colorStops":[{"color":"#FF0000","position":0},{"color":"#0000FF","position":1}]}`, []string{"angle"}},
		{"position above one", `{"angle":90,"colorStops":[{"color":"#FF0000","position":0},{"color":"#0000FF","position":1.5}]}`, []string{"colorStops[1].position"}},
		{"several violations", `{"angle":90,"colorStops":[{"color":"#FF0000","position":0,"opacity":2},{"color":"#0000FF","position":1.5}]}`, []string{"colorStops[0].opacity", "colorStops[1].position"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/gradients", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			body := decode[errorBody](t, rec)
			assert.Equal(t, "Invalid gradient data", body.Message)
			if tt.fields != nil {
				got := make([]string, 0, len(body.Errors))
				for _, issue := range body.Errors {
					got = append(got, issue.Field)
				}
				assert.ElementsMatch(t, tt.fields, got)
			}
		})
	}

	rec := do(r, http.MethodGet, "/gradients", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestClearGradients(t *testing.T) {
	r := newTestRouter(t, store.NewMemory(), "")

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/gradients", redToBlue).Code)
	}

	rec := do(r, http.MethodDelete, "/gradients", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"All gradients deleted successfully"}`, rec.Body.String())

	rec = do(r, http.MethodGet, "/gradients", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGradientCode(t *testing.T) {
	r := newTestRouter(t, store.NewMemory(), "/api")
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/gradients", redToBlue).Code)

	rec := do(r, http.MethodGet, "/api/gradients/id-1/code", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "linear-gradient(90deg, #FF0000 0%, #0000FF 100%)", rec.Body.String())

	rec = do(r, http.MethodGet, "/api/gradients/id-1/code?format=react-native&locations=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "locations={[0.00, 1.00]}")
	assert.Contains(t, rec.Body.String(), "start={{ x: 0.50, y: 0.00 }}")

	rec = do(r, http.MethodGet, "/api/gradients/id-1/code?colorFormat=rgba", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rgba(255, 0, 0, 1) 0%")

	rec = do(r, http.MethodGet, "/api/gradients/id-1/code?format=svg", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))

	for _, query := range []string{"format=pdf", "colorFormat=hsl", "locations=maybe"} {
		rec = do(r, http.MethodGet, "/api/gradients/id-1/code?"+query, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}

	rec = do(r, http.MethodGet, "/api/gradients/nope/code", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodGet, "/gradients", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "routes live under the base path")
}

func TestRandomGradient(t *testing.T) {
	r := newTestRouter(t, store.NewMemory(), "")

	first := do(r, http.MethodGet, "/random?seed=42", "")
	require.Equal(t, http.StatusOK, first.Code)
	second := do(r, http.MethodGet, "/random?seed=42", "")
	assert.Equal(t, first.Body.String(), second.Body.String())

	g := decode[gradient.Gradient](t, first)
	require.NoError(t, gradient.Validate(g))
	assert.Empty(t, g.ID)

	rec := do(r, http.MethodGet, "/random", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodGet, "/random?seed=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, store.NewMemory(), "/api")
	rec := do(r, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

type brokenStore struct{ store.Store }

func (brokenStore) List() ([]gradient.Gradient, error) { return nil, errors.New("db locked") }
func (brokenStore) Clear() error                       { return errors.New("db locked") }

func TestInternalErrorsHideDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Writer: buf})
	require.NoError(t, err)

	r := NewRouter(brokenStore{store.NewMemory()}, Options{Logger: log})

	rec := do(r, http.MethodGet, "/gradients", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Failed to fetch gradients"}`, rec.Body.String())

	rec = do(r, http.MethodDelete, "/gradients", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db locked")

	assert.Contains(t, buf.String(), "db locked")
}

func TestNormalizeBasePath(t *testing.T) {
	for in, want := range map[string]string{"": "/", "/": "/", "api": "/api", "/api/": "/api", " /v1/api ": "/v1/api"} {
		assert.Equal(t, want, normalizeBasePath(in), in)
	}
}
