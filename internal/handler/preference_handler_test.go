package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferences_GetAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	_, ws := env.login(t, "auth0|alice")

	rec := env.do(t, http.MethodGet, "/api/v1/preferences", "auth0|alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var prefs PreferencesResponse
	decode(t, rec, &prefs)
	assert.False(t, prefs.OnboardingCompleted)
	require.NotNil(t, prefs.CurrentWorkspaceID)
	assert.Equal(t, ws, *prefs.CurrentWorkspaceID)

	rec = env.do(t, http.MethodPut, "/api/v1/preferences", "auth0|alice", `{"onboardingCompleted":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &prefs)
	assert.True(t, prefs.OnboardingCompleted)
	assert.NotNil(t, prefs.CurrentWorkspaceID, "omitted fields are unchanged")

	rec = env.do(t, http.MethodPut, "/api/v1/preferences", "auth0|alice", `{"currentWorkspaceId":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &prefs)
	assert.Nil(t, prefs.CurrentWorkspaceID)
	assert.True(t, prefs.OnboardingCompleted)
}

func TestPreferences_RejectsForeignWorkspace(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "auth0|alice")
	_, bobWS := env.login(t, "auth0|bob")

	rec := env.do(t, http.MethodPut, "/api/v1/preferences", "auth0|alice", `{"currentWorkspaceId":"`+bobWS+`"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/preferences", "auth0|alice", `{"currentWorkspaceId":"nope"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "currentWorkspaceId", decodeProblem(t, rec).Errors[0].Field)
}
