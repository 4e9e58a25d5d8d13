package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminGuardRejectsMissingToken(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	rec := doJSON(t, router, http.MethodPost, "/tags", "", map[string]string{"name": "Clima"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeMap(t, rec)
	assert.Contains(t, body["error"], "admin token")
}

func TestAdminGuardRejectsWrongToken(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	rec := doJSON(t, router, http.MethodPost, "/tags", "not-the-token", map[string]string{"name": "Clima"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// An unset expected token must lock every guarded endpoint, not open them.
func TestAdminGuardRejectsEverythingWhenUnconfigured(t *testing.T) {
	cfg := testConfig()
	cfg.AdminToken = ""
	router, _ := newTestRouter(t, cfg)

	rec := doJSON(t, router, http.MethodPost, "/tags", "", map[string]string{"name": "Clima"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/tags", "anything", map[string]string{"name": "Clima"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminGuardAcceptsExactToken(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	rec := doJSON(t, router, http.MethodPost, "/tags", testAdminToken, map[string]string{"name": "Clima"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestReadsStayPublic(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	for _, path := range []string{"/posts", "/tags", "/health"} {
		rec := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
