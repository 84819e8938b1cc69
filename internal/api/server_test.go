package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/campusfind/internal/config"
	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/finder"
	"github.com/vijay-prabhu/campusfind/internal/match"
)

func setupServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	items, err := database.SampleItems()
	require.NoError(t, err)
	_, err = db.ImportItems(context.Background(), items)
	require.NoError(t, err)

	engine, err := match.NewEngine()
	require.NoError(t, err)

	f := finder.New(db, engine, config.Default().Matching, nil)
	return NewServer(db, f, zap.NewNop()).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

type matchBody struct {
	Item struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"item"`
	Score int `json:"score"`
}

type reportBody struct {
	Item    database.Item `json:"item"`
	Matches []matchBody   `json:"matches"`
}

func matchIDs(matches []matchBody) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Item.ID
	}
	return out
}

func TestHealthz(t *testing.T) {
	h := setupServer(t)

	rr := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "healthy", decode[map[string]string](t, rr)["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	h := setupServer(t)

	do(t, h, http.MethodGet, "/healthz", "")
	rr := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "campusfind_http_requests_total")
}

func TestCreateItem(t *testing.T) {
	h := setupServer(t)

	rr := do(t, h, http.MethodPost, "/api/v1/items", `{
		"kind": "lost",
		"name": "My backpack",
		"description": "navy blue backpack keychain",
		"location": "Library",
		"category": "Bags",
		"color": "Blue",
		"contact": "student@campus.edu"
	}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	body := decode[reportBody](t, rr)
	assert.NotEmpty(t, body.Item.ID)
	assert.Equal(t, database.StatusActive, body.Item.Status)
	require.NotNil(t, body.Item.Contact)
	assert.Equal(t, "student@campus.edu", *body.Item.Contact)
	assert.Nil(t, body.Item.Brand)

	assert.Equal(t, []string{"sample-found-1", "sample-found-4"}, matchIDs(body.Matches))
	assert.Equal(t, 98, body.Matches[0].Score)

	rr = do(t, h, http.MethodGet, "/api/v1/items/"+body.Item.ID, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateItem_NoMatchesIsEmptyList(t *testing.T) {
	h := setupServer(t)

	rr := do(t, h, http.MethodPost, "/api/v1/items", `{"kind":"found","name":"Keys","location":"Gym"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"matches":[]`)
}

func TestCreateItem_Validation(t *testing.T) {
	h := setupServer(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"invalid kind", `{"kind":"stolen","name":"bike"}`, CodeValidationFailed},
		{"missing name", `{"kind":"lost","name":"  "}`, CodeValidationFailed},
		{"malformed body", `{"kind":`, CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/v1/items", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.code, decode[ErrorResponse](t, rr).Code)
		})
	}

	rr := do(t, h, http.MethodGet, "/api/v1/stats", "")
	assert.Equal(t, 8, decode[database.Stats](t, rr).TotalItems)
}

func TestListItems(t *testing.T) {
	h := setupServer(t)

	rr := do(t, h, http.MethodGet, "/api/v1/items?kind=lost", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[struct {
		Items []database.Item `json:"items"`
		Count int             `json:"count"`
	}](t, rr)
	assert.Equal(t, 2, body.Count)
	for _, i := range body.Items {
		assert.Equal(t, match.KindLost, i.Kind)
	}

	rr = do(t, h, http.MethodGet, "/api/v1/items?location=Library&limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"count":2`)

	rr = do(t, h, http.MethodGet, "/api/v1/items?kind=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/v1/items?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/v1/items?category=Nothing", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"items":[]`)
}

func TestGetItem_NotFound(t *testing.T) {
	h := setupServer(t)

	rr := do(t, h, http.MethodGet, "/api/v1/items/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, CodeItemNotFound, decode[ErrorResponse](t, rr).Code)
}

func TestItemMatches(t *testing.T) {
	h := setupServer(t)

	rr := do(t, h, http.MethodGet, "/api/v1/items/sample-lost-8/matches", "")
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode[reportBody](t, rr)
	assert.Equal(t, "Prescription Glasses", body.Item.Name)
	assert.Equal(t, []string{"sample-found-5", "sample-found-2"}, matchIDs(body.Matches))

	rr = do(t, h, http.MethodGet, "/api/v1/items/missing/matches", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateStatus(t *testing.T) {
	h := setupServer(t)

	rr := do(t, h, http.MethodPatch, "/api/v1/items/sample-found-5/status", `{"status":"claimed"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, database.StatusClaimed, decode[database.Item](t, rr).Status)

	// claimed items drop out of matching
	rr = do(t, h, http.MethodGet, "/api/v1/items/sample-lost-8/matches", "")
	assert.Equal(t, []string{"sample-found-2"}, matchIDs(decode[reportBody](t, rr).Matches))

	rr = do(t, h, http.MethodPatch, "/api/v1/items/sample-found-5/status", `{"status":"lost"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPatch, "/api/v1/items/missing/status", `{"status":"closed"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPreviewMatches(t *testing.T) {
	h := setupServer(t)

	rr := do(t, h, http.MethodPost, "/api/v1/matches", `{"item":{"description":"black umbrella"}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[struct {
		Matches []matchBody `json:"matches"`
	}](t, rr)
	assert.Equal(t, []string{"sample-found-5"}, matchIDs(body.Matches))
	assert.Equal(t, 40, body.Matches[0].Score)

	rr = do(t, h, http.MethodPost, "/api/v1/matches", `{"item":{"description":"black umbrella"},"min_score":10}`)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decode[struct {
		Matches []matchBody `json:"matches"`
	}](t, rr)
	assert.Equal(t, []string{"sample-found-5", "sample-found-2"}, matchIDs(body.Matches))

	rr = do(t, h, http.MethodPost, "/api/v1/matches", `{"item":{"description":"black umbrella"},"min_score":10,"top_k":1}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, strings.Count(rr.Body.String(), `"score"`))

	// preview never stores
	rr = do(t, h, http.MethodGet, "/api/v1/stats", "")
	assert.Equal(t, 8, decode[database.Stats](t, rr).TotalItems)
}

func TestPreviewMatches_InvalidKind(t *testing.T) {
	h := setupServer(t)

	rr := do(t, h, http.MethodPost, "/api/v1/matches", `{"item":{"kind":"other","location":"Library"}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStats(t *testing.T) {
	h := setupServer(t)

	rr := do(t, h, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)

	stats := decode[database.Stats](t, rr)
	assert.Equal(t, 8, stats.TotalItems)
	assert.Equal(t, 2, stats.ActiveLost)
	assert.Equal(t, 6, stats.ActiveFound)
}

func TestUnknownRoute(t *testing.T) {
	h := setupServer(t)

	rr := do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestJSONRecoverer(t *testing.T) {
	handler := jsonRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&resp))
	assert.Equal(t, CodeInternalError, resp.Code)
}
