package article

import (
	"strings"
	"testing"

	"conduit-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArticle_DerivesSlugFromTitle(t *testing.T) {
	a, err := NewArticle("Making Slugs By Hand", "desc", "body", uuid.New(), nil, 100)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a.Slug, "making-slugs-by-hand-"))
	assert.True(t, strings.HasSuffix(a.Slug, a.UUIDToken.String()))
	assert.LessOrEqual(t, len(a.Slug), 100)
	assert.NotEqual(t, uuid.Nil, a.UUIDToken)
}

func TestNewArticle_TruncatesLongTitle(t *testing.T) {
	title := strings.Repeat("word ", 19) + "word" // 99 chars, within the title limit

	maxLen := 50
	a, err := NewArticle(title, "", "body", uuid.New(), nil, maxLen)
	require.NoError(t, err)

	assert.Len(t, a.Slug, maxLen)
	assert.True(t, strings.HasSuffix(a.Slug, "-"+a.UUIDToken.String()))
}

func TestNewArticle_SymbolOnlyTitleStillGetsIdentifier(t *testing.T) {
	a, err := NewArticle("!!!", "", "body", uuid.New(), nil, 100)
	require.NoError(t, err)

	assert.Equal(t, "-"+a.UUIDToken.String(), a.Slug)
}

func TestNewArticle_Validation(t *testing.T) {
	authorID := uuid.New()

	_, err := NewArticle("", "", "body", authorID, nil, 100)
	assert.Error(t, err)

	_, err = NewArticle("title", "", "", authorID, nil, 100)
	assert.Error(t, err)

	_, err = NewArticle("title", "", "body", uuid.Nil, nil, 100)
	assert.Error(t, err)

	tooMany := make([]string, MaxTags+1)
	for i := range tooMany {
		tooMany[i] = "tag"
	}
	_, err = NewArticle("title", "", "body", authorID, tooMany, 100)
	assert.Error(t, err)
}

func TestUpdate_KeepsSlugAndToken(t *testing.T) {
	a, err := NewArticle("Original Title", "", "body", uuid.New(), nil, 100)
	require.NoError(t, err)

	slug := a.Slug
	token := a.UUIDToken

	require.NoError(t, a.Update("A Completely Different Title", "new desc", "new body", []string{"go"}))

	assert.Equal(t, slug, a.Slug)
	assert.Equal(t, token, a.UUIDToken)
	assert.Equal(t, "A Completely Different Title", a.Title)
}

func TestNewArticle_NormalizesTags(t *testing.T) {
	a, err := NewArticle("title", "", "body", uuid.New(), []string{"Go Lang", "go-lang", "", "  ", "Databases"}, 100)
	require.NoError(t, err)

	assert.Equal(t, []string{"go-lang", "databases"}, []string(a.TagList))
}

func TestNewArticle_SlugIsURLSafe(t *testing.T) {
	a, err := NewArticle("Ça c'est l'été!", "", "body", uuid.New(), nil, 100)
	require.NoError(t, err)

	for _, r := range a.Slug {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		assert.True(t, valid, "unexpected rune %q in slug %q", r, a.Slug)
	}
}

func TestNewArticle_MinimumSlugLength(t *testing.T) {
	// Smallest workable bound: token plus separator plus one character.
	maxLen := utils.UUIDTokenLength + 2

	a, err := NewArticle("Some Title", "", "body", uuid.New(), nil, maxLen)
	require.NoError(t, err)

	assert.Len(t, a.Slug, maxLen)
	assert.Equal(t, "s-"+a.UUIDToken.String(), a.Slug)
}

func TestArticleFilter_Normalize(t *testing.T) {
	f := &ArticleFilter{}
	f.Normalize()
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 0, f.Offset)

	f = &ArticleFilter{Limit: 500, Offset: -3}
	f.Normalize()
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 0, f.Offset)
}
