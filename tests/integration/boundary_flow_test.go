//go:build integration
// +build integration

package integration

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderguard/renderguard/internal/infrastructure/config"
	"github.com/renderguard/renderguard/internal/infrastructure/logging"
	"github.com/renderguard/renderguard/internal/server"
)

const seededBlueprint = `
app:
  id: dashboard
  name: Dashboard
ui:
  title: Dashboard
  components:
    - text#welcome:
        content: Welcome
    - flaky#widget:
        source: feed
`

func newIntegrationServer(t *testing.T, mode config.Mode) *server.Server {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dashboard.bp"), []byte(seededBlueprint), 0o644))

	cfg := config.Default()
	cfg.Mode = mode
	cfg.Blueprint.Dir = dir
	cfg.RateLimit.Enabled = false

	srv, err := server.New(cfg, logging.NewNop())
	require.NoError(t, err)
	return srv
}

func TestFaultEpisodeLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping boundary integration test")
	}

	srv := newIntegrationServer(t, config.ModeDevelopment)

	// The seeded blueprint uses a component type the engine does not know,
	// so the very first render faults and the recovery surface replaces
	// the whole subtree.
	apps := srv.Manager().List()
	require.Len(t, apps, 1)
	id := apps[0].ID

	t.Run("fault replaces protected subtree", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/apps/"+id+"/render", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Oops! Something went wrong")
		assert.NotContains(t, body, "Welcome", "faulted boundary must not leak the protected tree")
	})

	t.Run("reset re-arms and refaults on the same defect", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/apps/"+id+"/reset", nil))
		require.Equal(t, http.StatusOK, w.Code)

		inst, ok := srv.Manager().Get(id)
		require.True(t, ok)
		assert.Equal(t, "healthy", inst.Boundary)

		w = httptest.NewRecorder()
		srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/apps/"+id+"/render", nil))
		assert.Contains(t, w.Body.String(), "Oops! Something went wrong")
	})

	t.Run("reload rebuilds the instance", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/apps/"+id+"/reload", nil))
		require.Equal(t, http.StatusOK, w.Code)

		inst, ok := srv.Manager().Get(id)
		require.True(t, ok)
		assert.Equal(t, "healthy", inst.Boundary)
		assert.Equal(t, 1, inst.Reloads)
	})
}

func TestProductionDisclosurePolicy(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping boundary integration test")
	}

	srv := newIntegrationServer(t, config.ModeProduction)
	apps := srv.Manager().List()
	require.Len(t, apps, 1)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/apps/"+apps[0].ID+"/render", nil))

	body := w.Body.String()
	assert.Contains(t, body, "Oops! Something went wrong")
	assert.False(t, strings.Contains(body, "flaky"),
		"production output must not name the failing component")
	assert.False(t, strings.Contains(body, "unknown component"),
		"production output must not carry diagnostics")
}
