package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prokopsimek/pmcrm/internal/auth"
	"github.com/prokopsimek/pmcrm/internal/domain"
)

func TestCreateUser_IssuesAPIKey(t *testing.T) {
	env := newTestEnv(t, "usercreate")

	rec := env.do(t, http.MethodPost, "/v1/users", map[string]any{
		"email": "sam@acme.test",
		"name":  "Sam",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		domain.User
		APIKey string `json:"apiKey"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.APIKey)
	assert.Equal(t, env.user.AccountID, created.AccountID)
	assert.Nil(t, created.OnboardedAt)

	// The raw key resolves to the stored user; only its hash is persisted.
	stored, err := env.store.GetUserByAPIKeyHash(context.Background(), auth.HashAPIKey(created.APIKey))
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)
	assert.NotEqual(t, created.APIKey, stored.APIKeyHash)
}

func TestCreateUser_RequiresEmail(t *testing.T) {
	env := newTestEnv(t, "useremail")

	rec := env.do(t, http.MethodPost, "/v1/users", map[string]any{"name": "Sam"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOnboardUser(t *testing.T) {
	env := newTestEnv(t, "useronboard")

	rec := env.do(t, http.MethodPost, "/v1/users", map[string]any{
		"email": "sam@acme.test",
		"name":  "Sam",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = env.do(t, http.MethodPost, "/v1/users/"+created.ID+"/onboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		OnboardedAt string `json:"onboardedAt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.OnboardedAt)
}

func TestOnboardUser_UnknownIsNotFound(t *testing.T) {
	env := newTestEnv(t, "useronboardmissing")

	rec := env.do(t, http.MethodPost, "/v1/users/nope/onboard", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
