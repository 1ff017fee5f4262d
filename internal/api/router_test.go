package api

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/recipebook/internal/apperror"
)

// doGzipJSON issues a request negotiating gzip, like a browser would.
func doGzipJSON(router http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func gunzipBody(t *testing.T, w *httptest.ResponseRecorder) []byte {
	t.Helper()
	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	reader, err := gzip.NewReader(w.Body)
	require.NoError(t, err, "body must be a complete gzip stream")
	defer reader.Close()
	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	return body
}

// The router runs with no CORS origins configured, the default shape.
// These tests pin the error pipeline end to end under that default with
// a gzip-negotiating client: the envelope must arrive intact inside the
// compressed stream, not as an empty body.

func TestGzipClientReceivesValidationEnvelope(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doGzipJSON(router, http.MethodGet, "/recipes/not-an-object-id")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope struct {
		Error struct {
			Code    string              `json:"code"`
			Details map[string][]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(gunzipBody(t, w), &envelope))
	assert.Equal(t, apperror.CodeValidation, envelope.Error.Code)
	assert.Contains(t, envelope.Error.Details, "id")
}

func TestGzipClientReceivesRouteNotFoundEnvelope(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doGzipJSON(router, http.MethodGet, "/nope")
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(gunzipBody(t, w), &envelope))
	assert.Equal(t, apperror.CodeRouteNotFound, envelope.Error.Code)
	assert.Equal(t, "Route GET /nope not found", envelope.Error.Message)
}

func TestGzipClientReceivesAuthRequiredEnvelope(t *testing.T) {
	router, env := setupTestRouter(t)
	recipe := env.createRecipe(t, nil)

	w := doGzipJSON(router, http.MethodDelete, "/recipes/"+recipe.ID.String())
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(gunzipBody(t, w), &envelope))
	assert.Equal(t, apperror.CodeAuthRequired, envelope.Error.Code)
}

func TestGzipClientReceivesSuccessBody(t *testing.T) {
	router, env := setupTestRouter(t)
	env.createRecipe(t, nil)

	w := doGzipJSON(router, http.MethodGet, "/recipes")
	require.Equal(t, http.StatusOK, w.Code)

	var recipes []json.RawMessage
	require.NoError(t, json.Unmarshal(gunzipBody(t, w), &recipes))
	assert.Len(t, recipes, 1)
}
