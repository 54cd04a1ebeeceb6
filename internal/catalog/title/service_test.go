package title_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revio-app/revio/internal/catalog/category"
	"github.com/revio-app/revio/internal/catalog/genre"
	"github.com/revio-app/revio/internal/catalog/title"
	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/dberr"
	"github.com/revio-app/revio/pkg/pointer"
)

// # Test Fakes

type fakeTitleRepository struct {
	titles map[int]*title.Title
	nextID int
}

func newFakeTitleRepository() *fakeTitleRepository {
	return &fakeTitleRepository{titles: make(map[int]*title.Title)}
}

func (r *fakeTitleRepository) List(_ context.Context, filter title.Filter, limit, offset int) ([]*title.Title, int, error) {
	var all []*title.Title
	for _, t := range r.titles {
		all = append(all, t)
	}
	return all, len(all), nil
}

func (r *fakeTitleRepository) FindByID(_ context.Context, id int) (*title.Title, error) {
	if t, ok := r.titles[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeTitleRepository) Create(_ context.Context, t *title.Title) error {
	for _, existing := range r.titles {
		if existing.Name == t.Name && existing.Year == t.Year {
			return &pgconn.PgError{Code: "23505", ConstraintName: "title_name_year_key"}
		}
	}
	r.nextID++
	t.ID = r.nextID
	copied := *t
	r.titles[t.ID] = &copied
	return nil
}

func (r *fakeTitleRepository) Update(_ context.Context, t *title.Title) error {
	if _, ok := r.titles[t.ID]; !ok {
		return dberr.ErrNotFound
	}
	copied := *t
	r.titles[t.ID] = &copied
	return nil
}

func (r *fakeTitleRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.titles[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(r.titles, id)
	return nil
}

type fakeCategoryRepository struct {
	bySlug map[string]*category.Category
}

func (r *fakeCategoryRepository) List(_ context.Context, search string, limit, offset int) ([]*category.Category, int, error) {
	return nil, 0, nil
}

func (r *fakeCategoryRepository) FindBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := r.bySlug[slug]; ok {
		return c, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeCategoryRepository) Create(_ context.Context, c *category.Category) error { return nil }
func (r *fakeCategoryRepository) DeleteBySlug(_ context.Context, slug string) error    { return nil }

type fakeGenreRepository struct {
	bySlug map[string]*genre.Genre
}

func (r *fakeGenreRepository) List(_ context.Context, search string, limit, offset int) ([]*genre.Genre, int, error) {
	return nil, 0, nil
}

func (r *fakeGenreRepository) FindBySlug(_ context.Context, slug string) (*genre.Genre, error) {
	if g, ok := r.bySlug[slug]; ok {
		return g, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeGenreRepository) Create(_ context.Context, g *genre.Genre) error    { return nil }
func (r *fakeGenreRepository) DeleteBySlug(_ context.Context, slug string) error { return nil }

// fakeCache counts hits and invalidations.
type fakeCache struct {
	entries       map[int]*title.Title
	hits          int
	invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int]*title.Title)}
}

func (c *fakeCache) Get(_ context.Context, id int) (*title.Title, error) {
	if t, ok := c.entries[id]; ok {
		c.hits++
		return t, nil
	}
	return nil, nil
}

func (c *fakeCache) Set(_ context.Context, t *title.Title) error {
	c.entries[t.ID] = t
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, id int) error {
	c.invalidations++
	delete(c.entries, id)
	return nil
}

func newTestService(repo *fakeTitleRepository, cache *fakeCache) *title.Service {
	categories := &fakeCategoryRepository{bySlug: map[string]*category.Category{
		"sci-fi": {ID: 1, Name: "Science Fiction", Slug: "sci-fi"},
	}}
	genres := &fakeGenreRepository{bySlug: map[string]*genre.Genre{
		"sf":    {ID: 1, Name: "SF", Slug: "sf"},
		"drama": {ID: 2, Name: "Drama", Slug: "drama"},
	}}
	return title.NewService(repo, categories, genres, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// # Create

func TestCreateTitle(t *testing.T) {
	repo := newFakeTitleRepository()
	service := newTestService(repo, newFakeCache())

	created, err := service.CreateTitle(context.Background(), title.CreateInput{
		Name:     "Dune",
		Year:     1965,
		Category: "sci-fi",
		Genre:    []string{"sf", "drama"},
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Nil(t, created.Rating, "a fresh title has no rating")
	require.NotNil(t, created.Category)
	assert.Equal(t, "sci-fi", created.Category.Slug)
	assert.Len(t, created.Genres, 2)
}

func TestCreateTitle_UnknownSlugs(t *testing.T) {
	service := newTestService(newFakeTitleRepository(), newFakeCache())

	tests := []struct {
		name  string
		input title.CreateInput
	}{
		{"unknown_category", title.CreateInput{Name: "Dune", Year: 1965, Category: "fantasy"}},
		{"unknown_genre", title.CreateInput{Name: "Dune", Year: 1965, Category: "sci-fi", Genre: []string{"nope"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateTitle(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

func TestCreateTitle_YearBounds(t *testing.T) {
	service := newTestService(newFakeTitleRepository(), newFakeCache())

	tests := []struct {
		name    string
		year    int
		isValid bool
	}{
		{"ancient", -3000, true},
		{"modern", 2024, true},
		{"upper_bound", 2050, true},
		{"too_old", -3001, false},
		{"future", 2051, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateTitle(context.Background(), title.CreateInput{
				Name: "Year Probe " + tt.name, Year: tt.year, Category: "sci-fi",
			})
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			}
		})
	}
}

func TestCreateTitle_DuplicateNameYear(t *testing.T) {
	service := newTestService(newFakeTitleRepository(), newFakeCache())

	input := title.CreateInput{Name: "Dune", Year: 1965, Category: "sci-fi"}
	_, err := service.CreateTitle(context.Background(), input)
	require.NoError(t, err)

	_, err = service.CreateTitle(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

// # Read

func TestGetTitle_ReadThroughCache(t *testing.T) {
	repo := newFakeTitleRepository()
	cache := newFakeCache()
	service := newTestService(repo, cache)

	created, err := service.CreateTitle(context.Background(), title.CreateInput{
		Name: "Dune", Year: 1965, Category: "sci-fi",
	})
	require.NoError(t, err)

	// First read fills the cache, second read hits it.
	first, err := service.GetTitle(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits)

	second, err := service.GetTitle(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetTitle_Unknown(t *testing.T) {
	service := newTestService(newFakeTitleRepository(), newFakeCache())

	_, err := service.GetTitle(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Update / Delete

func TestUpdateTitle_PartialAndInvalidate(t *testing.T) {
	repo := newFakeTitleRepository()
	cache := newFakeCache()
	service := newTestService(repo, cache)

	created, err := service.CreateTitle(context.Background(), title.CreateInput{
		Name: "Dune", Year: 1965, Category: "sci-fi", Genre: []string{"sf"},
	})
	require.NoError(t, err)

	updated, err := service.UpdateTitle(context.Background(), created.ID, title.UpdateInput{
		Year:  pointer.To(1966),
		Genre: &[]string{"drama"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Dune", updated.Name)
	assert.Equal(t, 1966, updated.Year)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "drama", updated.Genres[0].Slug)
	assert.Equal(t, 1, cache.invalidations)
}

func TestDeleteTitle(t *testing.T) {
	repo := newFakeTitleRepository()
	cache := newFakeCache()
	service := newTestService(repo, cache)

	created, err := service.CreateTitle(context.Background(), title.CreateInput{
		Name: "Dune", Year: 1965, Category: "sci-fi",
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteTitle(context.Background(), created.ID))
	assert.Equal(t, 1, cache.invalidations)

	err = service.DeleteTitle(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
