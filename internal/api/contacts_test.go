package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prokopsimek/pmcrm/internal/domain"
)

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestContactLifecycle(t *testing.T) {
	env := newTestEnv(t, "contactlife")

	rec := env.do(t, http.MethodPost, "/v1/contacts", map[string]any{
		"firstName": "Dana",
		"lastName":  "Reyes",
		"email":     "dana@acme.test",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = env.get(t, "/v1/contacts/"+created.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPatch, "/v1/contacts/"+created.ID, map[string]any{"title": "CTO"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "CTO", updated.Title)
	assert.Equal(t, "Dana", updated.FirstName)

	rec = env.do(t, http.MethodDelete, "/v1/contacts/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.get(t, "/v1/contacts/"+created.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateContact_RequiresName(t *testing.T) {
	env := newTestEnv(t, "contactname")

	rec := env.do(t, http.MethodPost, "/v1/contacts", map[string]any{"email": "x@y.test"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateNote_ForeignContactIsNotFound(t *testing.T) {
	env := newTestEnv(t, "noteforeign")

	rec := env.do(t, http.MethodPost, "/v1/contacts/nope/notes", map[string]any{"content": "hello"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateNote_AppearsInTimeline(t *testing.T) {
	env := newTestEnv(t, "notetimeline")
	seedContact(t, env, "c-1")

	rec := env.do(t, http.MethodPost, "/v1/contacts/c-1/notes", map[string]any{
		"content": "call back next week",
		"pinned":  true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.get(t, "/v1/contacts/c-1/timeline")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.TimelineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, domain.EventTypeNote, resp.Data[0].Type)
	assert.Equal(t, "call back next week", resp.Data[0].Snippet)
	assert.Equal(t, true, resp.Data[0].Metadata["pinned"])
}

func TestSavedViewLifecycle(t *testing.T) {
	env := newTestEnv(t, "viewlife")

	rec := env.do(t, http.MethodPost, "/v1/views", map[string]any{
		"name":    "Warm leads",
		"filters": map[string]any{"types": []string{"email"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.SavedView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = env.get(t, "/v1/views")
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Data []domain.SavedView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Warm leads", list.Data[0].Name)

	rec = env.do(t, http.MethodDelete, "/v1/views/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
