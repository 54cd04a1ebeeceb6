package category_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revio-app/revio/internal/catalog/category"
	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/dberr"
)

// fakeRepository is an in-memory category store keyed by slug.
type fakeRepository struct {
	categories map[string]*category.Category
	nextID     int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{categories: make(map[string]*category.Category)}
}

func (r *fakeRepository) List(_ context.Context, search string, limit, offset int) ([]*category.Category, int, error) {
	var all []*category.Category
	for _, c := range r.categories {
		all = append(all, c)
	}
	return all, len(all), nil
}

func (r *fakeRepository) FindBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := r.categories[slug]; ok {
		return c, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepository) Create(_ context.Context, c *category.Category) error {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return &pgconn.PgError{Code: "23505", ConstraintName: "category_name_key"}
		}
	}
	if _, exists := r.categories[c.Slug]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "category_slug_key"}
	}
	r.nextID++
	c.ID = r.nextID
	r.categories[c.Slug] = c
	return nil
}

func (r *fakeRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := r.categories[slug]; !ok {
		return apperr.NotFound("Category")
	}
	delete(r.categories, slug)
	return nil
}

func newTestService(repo category.Repository) *category.Service {
	return category.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateCategory_AutoSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	c := &category.Category{Name: "Science Fiction"}
	require.NoError(t, service.CreateCategory(context.Background(), c))

	assert.Equal(t, "science-fiction", c.Slug)
	assert.NotZero(t, c.ID)
}

func TestCreateCategory_ExplicitSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	c := &category.Category{Name: "Science Fiction", Slug: "sci-fi"}
	require.NoError(t, service.CreateCategory(context.Background(), c))
	assert.Equal(t, "sci-fi", c.Slug)
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	require.NoError(t, service.CreateCategory(context.Background(), &category.Category{Name: "Books", Slug: "books"}))

	err := service.CreateCategory(context.Background(), &category.Category{Name: "Other Books", Slug: "books"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, category.FieldSlug, ae.Details[0].Field)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	require.NoError(t, service.CreateCategory(context.Background(), &category.Category{Name: "Films", Slug: "films"}))

	// A distinct slug must not smuggle in a duplicate name.
	err := service.CreateCategory(context.Background(), &category.Category{Name: "Films", Slug: "films-2"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, category.FieldName, ae.Details[0].Field)
}

func TestCreateCategory_Invalid(t *testing.T) {
	service := newTestService(newFakeRepository())

	tests := []struct {
		name string
		c    *category.Category
	}{
		{"empty_name", &category.Category{Name: "", Slug: "x"}},
		{"bad_slug", &category.Category{Name: "Books", Slug: "Not A Slug"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CreateCategory(context.Background(), tt.c)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

func TestDeleteCategory(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	require.NoError(t, service.CreateCategory(context.Background(), &category.Category{Name: "Books", Slug: "books"}))
	require.NoError(t, service.DeleteCategory(context.Background(), "books"))

	err := service.DeleteCategory(context.Background(), "books")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
