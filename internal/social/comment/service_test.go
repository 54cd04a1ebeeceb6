package comment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revio-app/revio/internal/platform/apperr"
	"github.com/revio-app/revio/internal/platform/dberr"
	"github.com/revio-app/revio/internal/platform/sec"
	"github.com/revio-app/revio/internal/social/comment"
	"github.com/revio-app/revio/pkg/pointer"
)

// fakeRepository is an in-memory comment store with one known
// (title, review) pair.
type fakeRepository struct {
	knownTitleID  int
	knownReviewID string
	comments      map[string]*comment.Comment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		knownTitleID:  1,
		knownReviewID: "rev-1",
		comments:      make(map[string]*comment.Comment),
	}
}

func (r *fakeRepository) ReviewExists(_ context.Context, titleID int, reviewID string) (bool, error) {
	return titleID == r.knownTitleID && reviewID == r.knownReviewID, nil
}

func (r *fakeRepository) ListByReview(_ context.Context, reviewID string, limit, offset int) ([]*comment.Comment, int, error) {
	var matches []*comment.Comment
	for _, c := range r.comments {
		if c.ReviewID == reviewID {
			matches = append(matches, c)
		}
	}
	return matches, len(matches), nil
}

func (r *fakeRepository) FindByID(_ context.Context, reviewID, commentID string) (*comment.Comment, error) {
	if c, ok := r.comments[commentID]; ok && c.ReviewID == reviewID {
		copied := *c
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	copied := *c
	r.comments[c.ID] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, c *comment.Comment) error {
	copied := *c
	r.comments[c.ID] = &copied
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, reviewID, commentID string) error {
	delete(r.comments, commentID)
	return nil
}

func newTestService(repo *fakeRepository) *comment.Service {
	return comment.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateComment(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreateComment(context.Background(), 1, "rev-1", "author-a", comment.Input{
		Text: "agreed on every point",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "rev-1", created.ReviewID)
	assert.Equal(t, "author-a", created.AuthorID)
}

func TestCreateComment_UnknownParent(t *testing.T) {
	service := newTestService(newFakeRepository())

	tests := []struct {
		name     string
		titleID  int
		reviewID string
	}{
		{"unknown_review", 1, "rev-404"},
		{"review_under_wrong_title", 2, "rev-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateComment(context.Background(), tt.titleID, tt.reviewID, "author-a", comment.Input{Text: "x"})
			require.Error(t, err)
			assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
		})
	}
}

func TestCreateComment_EmptyText(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.CreateComment(context.Background(), 1, "rev-1", "author-a", comment.Input{Text: "  "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestUpdateComment_Ownership(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreateComment(context.Background(), 1, "rev-1", "author-a", comment.Input{Text: "x"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		claims  *sec.AuthClaims
		allowed bool
	}{
		{"author", &sec.AuthClaims{UserID: "author-a", Role: "user"}, true},
		{"stranger", &sec.AuthClaims{UserID: "author-b", Role: "user"}, false},
		{"moderator", &sec.AuthClaims{UserID: "mod-1", Role: "moderator"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.UpdateComment(context.Background(), 1, "rev-1", created.ID, tt.claims, comment.UpdateInput{Text: pointer.To("edited")})
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
			}
		})
	}
}

func TestUpdateComment_Partial(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreateComment(context.Background(), 1, "rev-1", "author-a", comment.Input{Text: "original"})
	require.NoError(t, err)

	author := &sec.AuthClaims{UserID: "author-a", Role: "user"}

	// An empty patch keeps the text.
	updated, err := service.UpdateComment(context.Background(), 1, "rev-1", created.ID, author, comment.UpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Text)

	// A blank text is still rejected.
	_, err = service.UpdateComment(context.Background(), 1, "rev-1", created.ID, author, comment.UpdateInput{Text: pointer.To(" ")})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestDeleteComment(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreateComment(context.Background(), 1, "rev-1", "author-a", comment.Input{Text: "x"})
	require.NoError(t, err)

	// A stranger is refused, the author succeeds.
	err = service.DeleteComment(context.Background(), 1, "rev-1", created.ID, &sec.AuthClaims{UserID: "author-b", Role: "user"})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	err = service.DeleteComment(context.Background(), 1, "rev-1", created.ID, &sec.AuthClaims{UserID: "author-a", Role: "user"})
	require.NoError(t, err)
	assert.Empty(t, repo.comments)
}
