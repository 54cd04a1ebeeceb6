package genre_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revio-app/revio/internal/catalog/genre"
	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/dberr"
)

// fakeRepository is an in-memory genre store keyed by slug.
type fakeRepository struct {
	genres map[string]*genre.Genre
	nextID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{genres: make(map[string]*genre.Genre)}
}

func (r *fakeRepository) List(_ context.Context, search string, limit, offset int) ([]*genre.Genre, int, error) {
	var all []*genre.Genre
	for _, g := range r.genres {
		all = append(all, g)
	}
	return all, len(all), nil
}

func (r *fakeRepository) FindBySlug(_ context.Context, slug string) (*genre.Genre, error) {
	if g, ok := r.genres[slug]; ok {
		return g, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepository) Create(_ context.Context, g *genre.Genre) error {
	for _, existing := range r.genres {
		if existing.Name == g.Name {
			return &pgconn.PgError{Code: "23505", ConstraintName: "genre_name_key"}
		}
	}
	if _, exists := r.genres[g.Slug]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "genre_slug_key"}
	}
	r.nextID++
	g.ID = r.nextID
	r.genres[g.Slug] = g
	return nil
}

func (r *fakeRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := r.genres[slug]; !ok {
		return apperr.NotFound("Genre")
	}
	delete(r.genres, slug)
	return nil
}

func newTestService(repo genre.Repository) *genre.Service {
	return genre.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateGenre_AutoSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	g := &genre.Genre{Name: "Rock & Roll"}
	require.NoError(t, service.CreateGenre(context.Background(), g))

	assert.Equal(t, "rock-roll", g.Slug)
	assert.NotZero(t, g.ID)
}

func TestCreateGenre_DuplicateName(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	require.NoError(t, service.CreateGenre(context.Background(), &genre.Genre{Name: "Drama", Slug: "drama"}))

	// A distinct slug must not smuggle in a duplicate name.
	err := service.CreateGenre(context.Background(), &genre.Genre{Name: "Drama", Slug: "drama-2"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, genre.FieldName, ae.Details[0].Field)
}

func TestCreateGenre_DuplicateSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	require.NoError(t, service.CreateGenre(context.Background(), &genre.Genre{Name: "Drama", Slug: "drama"}))

	err := service.CreateGenre(context.Background(), &genre.Genre{Name: "Melodrama", Slug: "drama"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, genre.FieldSlug, ae.Details[0].Field)
}

func TestDeleteGenre(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	require.NoError(t, service.CreateGenre(context.Background(), &genre.Genre{Name: "Drama", Slug: "drama"}))
	require.NoError(t, service.DeleteGenre(context.Background(), "drama"))

	err := service.DeleteGenre(context.Background(), "drama")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
