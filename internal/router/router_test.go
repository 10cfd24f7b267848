package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-tasks/internal/config"
	"github.com/yukikurage/workspace-tasks/internal/dto"
	apierrors "github.com/yukikurage/workspace-tasks/internal/errors"
	"github.com/yukikurage/workspace-tasks/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	gin.SetMode(gin.TestMode)

	store, err := NewSessionStore(&config.Config{
		Session: config.SessionConfig{Store: "cookie", Secret: "test-secret"},
	})
	require.NoError(t, err)

	srv := httptest.NewServer(New(Dependencies{
		DB:           testutil.OpenTestDB(t),
		Log:          testutil.QuietLogger(),
		SessionStore: store,
	}))
	t.Cleanup(srv.Close)
	return srv
}

// apiClient is one browser: it keeps its own session cookie.
type apiClient struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, srv *httptest.Server) *apiClient {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &apiClient{t: t, base: srv.URL, http: &http.Client{Jar: jar}}
}

func (c *apiClient) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (c *apiClient) signUpAndLogin(username string) dto.UserDTO {
	c.t.Helper()

	creds := map[string]string{"username": username, "password": username + "-pw"}
	require.Equal(c.t, http.StatusCreated, c.do(http.MethodPost, "/api/auth/register", creds, nil))

	var user dto.UserDTO
	require.Equal(c.t, http.StatusOK, c.do(http.MethodPost, "/api/auth/login", creds, &user))
	return user
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t, srv)

	var body map[string]string
	assert.Equal(t, http.StatusOK, client.do(http.MethodGet, "/health", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t, srv)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/workspaces"},
		{http.MethodPost, "/api/workspaces"},
		{http.MethodGet, "/api/workspaces/1"},
		{http.MethodDelete, "/api/workspaces/1"},
		{http.MethodPost, "/api/workspaces/1/members"},
		{http.MethodGet, "/api/workspaces/1/tasks"},
		{http.MethodPost, "/api/workspaces/1/tasks"},
		{http.MethodGet, "/api/tasks/mine"},
		{http.MethodGet, "/api/tasks/created"},
		{http.MethodPatch, "/api/tasks/1/status"},
		{http.MethodPatch, "/api/tasks/1"},
		{http.MethodDelete, "/api/tasks/1"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			var body apierrors.APIError
			assert.Equal(t, http.StatusUnauthorized, client.do(rt.method, rt.path, nil, &body))
			assert.Equal(t, apierrors.ErrCodeUnauthenticated, body.Code)
		})
	}
}

func TestNonNumericIDs(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t, srv)
	client.signUpAndLogin("alice")

	assert.Equal(t, http.StatusBadRequest, client.do(http.MethodGet, "/api/workspaces/abc", nil, nil))
	assert.Equal(t, http.StatusBadRequest, client.do(http.MethodDelete, "/api/tasks/abc", nil, nil))
	assert.Equal(t, http.StatusBadRequest,
		client.do(http.MethodPatch, "/api/tasks/abc/status", map[string]string{"status": "DONE"}, nil))
}

func TestLogoutEndsSession(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t, srv)
	alice := client.signUpAndLogin("alice")

	var me dto.UserDTO
	require.Equal(t, http.StatusOK, client.do(http.MethodGet, "/api/auth/me", nil, &me))
	assert.Equal(t, alice.ID, me.ID)

	require.Equal(t, http.StatusOK, client.do(http.MethodPost, "/api/auth/logout", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, client.do(http.MethodGet, "/api/auth/me", nil, nil))
}

func TestAliceAndBobScenario(t *testing.T) {
	srv := newTestServer(t)
	alice := newClient(t, srv)
	bob := newClient(t, srv)

	alice.signUpAndLogin("alice")
	bobUser := bob.signUpAndLogin("bob")

	// alice creates a workspace and becomes its admin.
	var ws dto.WorkspaceWithRoleDTO
	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, "/api/workspaces", map[string]string{"name": "Eng"}, &ws))
	require.Equal(t, "admin", string(ws.Role))
	wsPath := fmt.Sprintf("/api/workspaces/%d", ws.ID)

	// bob cannot see it yet.
	assert.Equal(t, http.StatusForbidden, bob.do(http.MethodGet, wsPath, nil, nil))

	var added dto.AddMemberResponse
	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, wsPath+"/members", map[string]string{"username": "bob"}, &added))
	assert.True(t, added.Added)
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, wsPath+"/members", map[string]string{"username": "bob"}, &added))
	assert.False(t, added.Added)

	var task dto.TaskDTO
	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, wsPath+"/tasks", map[string]interface{}{
		"title":       "Fix bug",
		"assigned_to": bobUser.ID,
	}, &task))
	assert.Equal(t, "TODO", string(task.Status))
	taskPath := fmt.Sprintf("/api/tasks/%d", task.ID)

	var mine struct {
		Tasks []dto.TaskDTO `json:"tasks"`
	}
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, "/api/tasks/mine", nil, &mine))
	require.Len(t, mine.Tasks, 1)
	assert.Equal(t, task.ID, mine.Tasks[0].ID)

	var updated dto.TaskDTO
	require.Equal(t, http.StatusOK, bob.do(http.MethodPatch, taskPath+"/status", map[string]string{"status": "IN_PROGRESS"}, &updated))
	assert.Equal(t, "IN_PROGRESS", string(updated.Status))
	assert.Equal(t, http.StatusBadRequest, bob.do(http.MethodPatch, taskPath+"/status", map[string]string{"status": "BOGUS"}, nil))

	// bob is a plain member.
	assert.Equal(t, http.StatusForbidden, bob.do(http.MethodPost, wsPath+"/tasks", map[string]string{"title": "Mine"}, nil))
	assert.Equal(t, http.StatusForbidden, bob.do(http.MethodDelete, taskPath, nil, nil))
	assert.Equal(t, http.StatusForbidden, bob.do(http.MethodDelete, wsPath, nil, nil))
	assert.Equal(t, http.StatusForbidden, bob.do(http.MethodPatch, taskPath, map[string]string{"title": "Hijack"}, nil))

	var dashboard dto.WorkspaceDetailDTO
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, wsPath, nil, &dashboard))
	assert.Equal(t, "member", string(dashboard.YourRole))
	assert.Len(t, dashboard.Members, 2)

	require.Equal(t, http.StatusOK, alice.do(http.MethodDelete, wsPath, nil, nil))

	assert.Equal(t, http.StatusNotFound, alice.do(http.MethodGet, wsPath, nil, nil))
	assert.Equal(t, http.StatusNotFound, bob.do(http.MethodPatch, taskPath+"/status", map[string]string{"status": "DONE"}, nil))
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, "/api/tasks/mine", nil, &mine))
	assert.Empty(t, mine.Tasks)
}

func TestNewSessionStore_Unsupported(t *testing.T) {
	_, err := NewSessionStore(&config.Config{
		Session: config.SessionConfig{Store: "memcached", Secret: "s"},
	})
	assert.Error(t, err)
}
