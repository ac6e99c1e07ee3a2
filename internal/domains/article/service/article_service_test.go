package service

import (
	"context"
	"strings"
	"testing"

	"conduit-backend/internal/domains/article"
	"conduit-backend/internal/infrastructure/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository keeps articles in memory, keyed by slug. Favorites are
// a set of (user, article) pairs, mirroring the primary key the real
// table enforces.
type fakeRepository struct {
	bySlug    map[string]*article.Article
	favorites map[[2]uuid.UUID]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		bySlug:    make(map[string]*article.Article),
		favorites: make(map[[2]uuid.UUID]bool),
	}
}

func (f *fakeRepository) Create(_ context.Context, entity *article.Article) (*article.Article, error) {
	f.bySlug[entity.Slug] = entity
	return entity, nil
}

func (f *fakeRepository) GetBySlug(_ context.Context, slug string, viewerID uuid.UUID) (*article.Article, error) {
	a, ok := f.bySlug[slug]
	if !ok {
		return nil, article.ErrArticleNotFound
	}

	count := 0
	favorited := false
	for pair := range f.favorites {
		if pair[1] == a.ID {
			count++
			if pair[0] == viewerID {
				favorited = true
			}
		}
	}
	a.FavoritesCount = &count
	a.Favorited = &favorited

	return a, nil
}

func (f *fakeRepository) List(_ context.Context, _ *article.ArticleFilter, _ uuid.UUID) ([]*article.Article, int, error) {
	var out []*article.Article
	for _, a := range f.bySlug {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (f *fakeRepository) Feed(_ context.Context, _ uuid.UUID, _, _ int) ([]*article.Article, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) Update(_ context.Context, entity *article.Article) (*article.Article, error) {
	if _, ok := f.bySlug[entity.Slug]; !ok {
		return nil, article.ErrArticleNotFound
	}
	f.bySlug[entity.Slug] = entity
	return entity, nil
}

func (f *fakeRepository) Delete(_ context.Context, id uuid.UUID) error {
	for slug, a := range f.bySlug {
		if a.ID == id {
			delete(f.bySlug, slug)
			return nil
		}
	}
	return article.ErrArticleNotFound
}

// Favorite mirrors the real repository's ON CONFLICT DO NOTHING: a
// duplicate pair is absorbed, never an error.
func (f *fakeRepository) Favorite(_ context.Context, articleID, userID uuid.UUID) error {
	f.favorites[[2]uuid.UUID{userID, articleID}] = true
	return nil
}

func (f *fakeRepository) Unfavorite(_ context.Context, articleID, userID uuid.UUID) error {
	delete(f.favorites, [2]uuid.UUID{userID, articleID})
	return nil
}

// fakeEnqueuer records enqueued payloads.
type fakeEnqueuer struct {
	notified []queue.ArticleNotifyPayload
}

func (f *fakeEnqueuer) EnqueueArticleNotify(_ context.Context, payload queue.ArticleNotifyPayload) error {
	f.notified = append(f.notified, payload)
	return nil
}

func (f *fakeEnqueuer) Close() error { return nil }

const slugMaxLen = 100

func TestCreate_AssignsSlugAndNotifies(t *testing.T) {
	repo := newFakeRepository()
	enqueuer := &fakeEnqueuer{}
	svc := NewArticleService(repo, enqueuer, nil, slugMaxLen)

	authorID := uuid.New()
	resp, err := svc.Create(context.Background(), authorID, &article.CreateArticleRequest{
		Title: "How To Train Your Gopher",
		Body:  "body",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Slug, "how-to-train-your-gopher-"))
	assert.LessOrEqual(t, len(resp.Slug), slugMaxLen)

	require.Len(t, enqueuer.notified, 1)
	assert.Equal(t, resp.Slug, enqueuer.notified[0].Slug)
	assert.Equal(t, authorID, enqueuer.notified[0].AuthorID)
}

func TestCreate_WorksWithoutQueue(t *testing.T) {
	svc := NewArticleService(newFakeRepository(), nil, nil, slugMaxLen)

	_, err := svc.Create(context.Background(), uuid.New(), &article.CreateArticleRequest{
		Title: "No Queue Attached",
		Body:  "body",
	})
	assert.NoError(t, err)
}

func TestCreate_RejectsInvalidRequest(t *testing.T) {
	svc := NewArticleService(newFakeRepository(), nil, nil, slugMaxLen)

	_, err := svc.Create(context.Background(), uuid.New(), &article.CreateArticleRequest{
		Title: "",
		Body:  "body",
	})
	assert.Error(t, err)
}

func TestUpdate_KeepsSlugWhenTitleChanges(t *testing.T) {
	repo := newFakeRepository()
	svc := NewArticleService(repo, nil, nil, slugMaxLen)

	authorID := uuid.New()
	created, err := svc.Create(context.Background(), authorID, &article.CreateArticleRequest{
		Title: "First Title",
		Body:  "body",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.Slug, authorID, &article.UpdateArticleRequest{
		Title: "Second Title Entirely",
		Body:  "new body",
	})
	require.NoError(t, err)

	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, "Second Title Entirely", updated.Title)
}

func TestUpdate_RejectsNonAuthor(t *testing.T) {
	repo := newFakeRepository()
	svc := NewArticleService(repo, nil, nil, slugMaxLen)

	created, err := svc.Create(context.Background(), uuid.New(), &article.CreateArticleRequest{
		Title: "Owned Article",
		Body:  "body",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.Slug, uuid.New(), &article.UpdateArticleRequest{
		Title: "Hijacked",
		Body:  "body",
	})
	assert.ErrorIs(t, err, article.ErrNotArticleAuthor)
}

func TestDelete_RejectsNonAuthor(t *testing.T) {
	repo := newFakeRepository()
	svc := NewArticleService(repo, nil, nil, slugMaxLen)

	authorID := uuid.New()
	created, err := svc.Create(context.Background(), authorID, &article.CreateArticleRequest{
		Title: "To Be Deleted",
		Body:  "body",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.Slug, uuid.New())
	assert.ErrorIs(t, err, article.ErrNotArticleAuthor)

	// The rightful author still can.
	require.NoError(t, svc.Delete(context.Background(), created.Slug, authorID))

	_, err = svc.GetBySlug(context.Background(), created.Slug, uuid.Nil)
	assert.ErrorIs(t, err, article.ErrArticleNotFound)
}

func TestFavorite_Idempotent(t *testing.T) {
	repo := newFakeRepository()
	svc := NewArticleService(repo, nil, nil, slugMaxLen)

	created, err := svc.Create(context.Background(), uuid.New(), &article.CreateArticleRequest{
		Title: "Well Liked",
		Body:  "body",
	})
	require.NoError(t, err)

	userID := uuid.New()

	first, err := svc.Favorite(context.Background(), created.Slug, userID)
	require.NoError(t, err)
	assert.True(t, first.Favorited)
	assert.Equal(t, 1, first.FavoritesCount)

	// Favoriting again succeeds and still counts once.
	second, err := svc.Favorite(context.Background(), created.Slug, userID)
	require.NoError(t, err)
	assert.True(t, second.Favorited)
	assert.Equal(t, 1, second.FavoritesCount)
	assert.Len(t, repo.favorites, 1)
}

func TestUnfavorite_RemovesFavorite(t *testing.T) {
	repo := newFakeRepository()
	svc := NewArticleService(repo, nil, nil, slugMaxLen)

	created, err := svc.Create(context.Background(), uuid.New(), &article.CreateArticleRequest{
		Title: "Briefly Liked",
		Body:  "body",
	})
	require.NoError(t, err)

	userID := uuid.New()
	_, err = svc.Favorite(context.Background(), created.Slug, userID)
	require.NoError(t, err)

	resp, err := svc.Unfavorite(context.Background(), created.Slug, userID)
	require.NoError(t, err)
	assert.False(t, resp.Favorited)
	assert.Equal(t, 0, resp.FavoritesCount)
	assert.Empty(t, repo.favorites)
}

func TestGetBySlug_NotFound(t *testing.T) {
	svc := NewArticleService(newFakeRepository(), nil, nil, slugMaxLen)

	_, err := svc.GetBySlug(context.Background(), "no-such-slug", uuid.Nil)
	assert.ErrorIs(t, err, article.ErrArticleNotFound)
}

func TestTwoArticlesSameTitleGetDistinctSlugs(t *testing.T) {
	repo := newFakeRepository()
	svc := NewArticleService(repo, nil, nil, slugMaxLen)

	authorID := uuid.New()
	first, err := svc.Create(context.Background(), authorID, &article.CreateArticleRequest{
		Title: "Duplicate Title",
		Body:  "body",
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), authorID, &article.CreateArticleRequest{
		Title: "Duplicate Title",
		Body:  "body",
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.Slug, second.Slug)
}
