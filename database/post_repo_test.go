package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satelitear/backend/models"
)

func mustAddTag(t *testing.T, db Database, name, slug string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, Slug: slug}
	require.NoError(t, db.TagRepo().Add(&tag))
	return tag
}

func mustAddPost(t *testing.T, db Database, post models.Post) models.Post {
	t.Helper()
	require.NoError(t, db.PostRepo().Add(&post))
	return post
}

func TestFindAllFilters(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	agro := mustAddTag(t, db, "Agricultura", "agriculture")
	clima := mustAddTag(t, db, "Clima", "climate")

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	matching := mustAddPost(t, db, models.Post{
		Title:     "Sequía NASA",
		Slug:      "sequia-nasa",
		Content:   "análisis de sequía",
		Status:    models.StatusDraft,
		EventDate: base,
		CreatedAt: base,
		Tags:      []models.Tag{agro},
	})
	mustAddPost(t, db, models.Post{
		// matches status and search but carries no tags
		Title:     "Otro reporte NASA",
		Slug:      "otro-reporte-nasa",
		Content:   "contenido",
		Status:    models.StatusDraft,
		EventDate: base,
		CreatedAt: base.Add(time.Hour),
	})
	mustAddPost(t, db, models.Post{
		// matches tag and search but is published
		Title:     "Publicado NASA",
		Slug:      "publicado-nasa",
		Content:   "contenido",
		Status:    models.StatusPublished,
		EventDate: base,
		CreatedAt: base.Add(2 * time.Hour),
		Tags:      []models.Tag{clima},
	})

	draft := models.StatusDraft
	posts, err := repo.FindAll(PostFilter{
		Status: &draft,
		TagIDs: []uuid.UUID{agro.ID, clima.ID},
		Search: "nasa",
	})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, matching.ID, posts[0].ID)
	require.Len(t, posts[0].Tags, 1)
	assert.Equal(t, "Agricultura", posts[0].Tags[0].Name)
}

func TestFindAllSearchIsCaseInsensitiveOverTitleAndContent(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	inTitle := mustAddPost(t, db, models.Post{
		Title: "Informe NASA", Slug: "informe-nasa", Content: "sin mención",
		Status: models.StatusDraft, EventDate: base, CreatedAt: base,
	})
	inContent := mustAddPost(t, db, models.Post{
		Title: "Informe mensual", Slug: "informe-mensual", Content: "datos de nasa",
		Status: models.StatusDraft, EventDate: base, CreatedAt: base.Add(time.Hour),
	})
	mustAddPost(t, db, models.Post{
		Title: "Sin relación", Slug: "sin-relacion", Content: "nada",
		Status: models.StatusDraft, EventDate: base, CreatedAt: base.Add(2 * time.Hour),
	})

	posts, err := repo.FindAll(PostFilter{Search: "NaSa"})
	require.NoError(t, err)
	require.Len(t, posts, 2)

	ids := []uuid.UUID{posts[0].ID, posts[1].ID}
	assert.Contains(t, ids, inTitle.ID)
	assert.Contains(t, ids, inContent.ID)
}

func TestFindAllSearchMatchesWildcardsLiterally(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	literal := mustAddPost(t, db, models.Post{
		Title: "Cobertura 100% lograda", Slug: "cobertura-100-lograda", Content: "c",
		Status: models.StatusDraft, EventDate: base, CreatedAt: base,
	})
	mustAddPost(t, db, models.Post{
		Title: "Cobertura 1009 lograda", Slug: "cobertura-1009-lograda", Content: "c",
		Status: models.StatusDraft, EventDate: base, CreatedAt: base.Add(time.Hour),
	})
	underscore := mustAddPost(t, db, models.Post{
		Title: "Serie a_b", Slug: "serie-a-b", Content: "c",
		Status: models.StatusDraft, EventDate: base, CreatedAt: base.Add(2 * time.Hour),
	})
	mustAddPost(t, db, models.Post{
		Title: "Serie axb", Slug: "serie-axb", Content: "c",
		Status: models.StatusDraft, EventDate: base, CreatedAt: base.Add(3 * time.Hour),
	})

	posts, err := repo.FindAll(PostFilter{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, literal.ID, posts[0].ID)

	posts, err = repo.FindAll(PostFilter{Search: "a_b"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, underscore.ID, posts[0].ID)
}

func TestFindAllOrdersNewestFirst(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	older := mustAddPost(t, db, models.Post{
		Title: "Viejo", Slug: "viejo", Content: "c",
		Status: models.StatusDraft, EventDate: base, CreatedAt: base,
	})
	newer := mustAddPost(t, db, models.Post{
		Title: "Nuevo", Slug: "nuevo", Content: "c",
		Status: models.StatusDraft, EventDate: base, CreatedAt: base.Add(time.Hour),
	})

	posts, err := repo.FindAll(PostFilter{})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)
}

func TestFindByIDMissingReturnsNil(t *testing.T) {
	db := newTestDatabase(t)

	post, err := db.PostRepo().FindByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestExistsWithSlug(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	post := mustAddPost(t, db, models.Post{
		Title: "Uno", Slug: "uno", Content: "c",
		Status: models.StatusDraft, EventDate: base,
	})

	taken, err := repo.ExistsWithSlug("uno", nil)
	require.NoError(t, err)
	assert.True(t, taken)

	// The record under update does not count against itself
	taken, err = repo.ExistsWithSlug("uno", &post.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.ExistsWithSlug("libre", nil)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUpdateReplacesTagSet(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	a := mustAddTag(t, db, "A tag", "a-tag")
	b := mustAddTag(t, db, "B tag", "b-tag")
	c := mustAddTag(t, db, "C tag", "c-tag")

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	post := mustAddPost(t, db, models.Post{
		Title: "Con tags", Slug: "con-tags", Content: "c",
		Status: models.StatusDraft, EventDate: base,
		Tags: []models.Tag{a, b},
	})

	require.NoError(t, repo.Update(&post, &[]models.Tag{c}))

	reloaded, err := repo.FindByID(post.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Tags, 1)
	assert.Equal(t, c.ID, reloaded.Tags[0].ID)

	// A nil set leaves the associations untouched
	post.Content = "actualizado"
	require.NoError(t, repo.Update(&post, nil))

	reloaded, err = repo.FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "actualizado", reloaded.Content)
	require.Len(t, reloaded.Tags, 1)
	assert.Equal(t, c.ID, reloaded.Tags[0].ID)

	// An empty set clears every association
	require.NoError(t, repo.Update(&post, &[]models.Tag{}))

	reloaded, err = repo.FindByID(post.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Tags)
}

func TestDeleteRemovesPost(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	tag := mustAddTag(t, db, "Etiqueta", "etiqueta")
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	post := mustAddPost(t, db, models.Post{
		Title: "Borrable", Slug: "borrable", Content: "c",
		Status: models.StatusDraft, EventDate: base,
		Tags: []models.Tag{tag},
	})

	require.NoError(t, repo.Delete(post.ID))

	found, err := repo.FindByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// The tag itself survives the post deletion
	remaining, err := db.TagRepo().FindByID(tag.ID)
	require.NoError(t, err)
	assert.NotNil(t, remaining)
}

func TestSlugUniqueIndexIsTheBackstop(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mustAddPost(t, db, models.Post{
		Title: "Uno", Slug: "repetido", Content: "c",
		Status: models.StatusDraft, EventDate: base,
	})

	dup := models.Post{
		Title: "Dos", Slug: "repetido", Content: "c",
		Status: models.StatusDraft, EventDate: base,
	}
	assert.Error(t, repo.Add(&dup))
}
