package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTagViaAPI(t *testing.T, router http.Handler, name string) map[string]any {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/tags", testAdminToken, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeMap(t, rec)
}

func TestCreateTagDerivesSlug(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	tag := createTagViaAPI(t, router, "Respuesta a Desastres")
	assert.Equal(t, "Respuesta a Desastres", tag["name"])
	assert.Equal(t, "respuesta-a-desastres", tag["slug"])
	assert.NotEmpty(t, tag["id"])
}

func TestCreateTagRejectsShortName(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	rec := doJSON(t, router, http.MethodPost, "/tags", testAdminToken, map[string]string{"name": " a "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name", decodeMap(t, rec)["field"])
}

func TestCreateDuplicateTagNameConflicts(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	createTagViaAPI(t, router, "Clima")

	rec := doJSON(t, router, http.MethodPost, "/tags", testAdminToken, map[string]string{"name": "Clima"})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestListTagsOrdersByName(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	createTagViaAPI(t, router, "Defensa")
	createTagViaAPI(t, router, "Agricultura")

	rec := doJSON(t, router, http.MethodGet, "/tags", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	tags := decodeList(t, rec)
	require.Len(t, tags, 2)
	assert.Equal(t, "Agricultura", tags[0]["name"])
	assert.Equal(t, "Defensa", tags[1]["name"])
}

func TestGetMissingTagReturnsNull(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	rec := doJSON(t, router, http.MethodGet, "/tags/3f0e6a1c-9f2d-4b43-8a56-111111111111", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())
}

func TestGetTagRejectsMalformedID(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	rec := doJSON(t, router, http.MethodGet, "/tags/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTagRenameRederivesSlug(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	tag := createTagViaAPI(t, router, "Clima")
	path := fmt.Sprintf("/tags/%s", tag["id"])

	rec := doJSON(t, router, http.MethodPatch, path, testAdminToken, map[string]string{"name": "Clima Extremo"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeMap(t, rec)
	assert.Equal(t, "Clima Extremo", updated["name"])
	assert.Equal(t, "clima-extremo", updated["slug"])
}

func TestUpdateTagUnchangedNameKeepsSlug(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	tag := createTagViaAPI(t, router, "Clima")
	path := fmt.Sprintf("/tags/%s", tag["id"])

	// Resolving against itself must not append a numeric suffix
	rec := doJSON(t, router, http.MethodPatch, path, testAdminToken, map[string]string{"name": "Clima"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "clima", decodeMap(t, rec)["slug"])
}

func TestUpdateMissingTagIsNotFound(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	rec := doJSON(t, router, http.MethodPatch, "/tags/3f0e6a1c-9f2d-4b43-8a56-111111111111", testAdminToken,
		map[string]string{"name": "Clima"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTag(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	tag := createTagViaAPI(t, router, "Clima")
	path := fmt.Sprintf("/tags/%s", tag["id"])

	rec := doJSON(t, router, http.MethodDelete, path, testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true}, decodeMap(t, rec))

	rec = doJSON(t, router, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())
}

func TestDeleteMissingTagIsNotFound(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	rec := doJSON(t, router, http.MethodDelete, "/tags/3f0e6a1c-9f2d-4b43-8a56-111111111111", testAdminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
