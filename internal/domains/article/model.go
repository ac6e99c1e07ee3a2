package article

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"conduit-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Article is the content entity.
//
// Two fields carry the URL identity:
//
//   - UUIDToken: random, assigned exactly once at creation, never
//     changed. It is the collision-breaker for the slug.
//   - Slug: the persisted URL path segment, derived from the first
//     title and the token. Assigned once, immutable afterwards, so
//     published links keep working when the title is edited.
type Article struct {
	ID        uuid.UUID
	Slug      string
	UUIDToken uuid.UUID

	Title       string
	Description string
	Body        string

	AuthorID uuid.UUID
	TagList  pq.StringArray

	CreatedAt time.Time
	UpdatedAt time.Time

	// Runtime metadata, populated by the repository per query.
	FavoritesCount *int
	Favorited      *bool
	AuthorUsername *string
	AuthorBio      *string
	AuthorImage    *string
}

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 300
	MaxTagLength         = 50
	MaxTags              = 10
)

// NewArticle creates an article and derives its URL identity. This
// factory is the single generation hook: the token and slug are set
// here, before first persistence, and Update never touches them.
func NewArticle(title, description, body string, authorID uuid.UUID, tagList []string, slugMaxLen int) (*Article, error) {
	if err := validateContent(title, description, body, tagList); err != nil {
		return nil, err
	}
	if authorID == uuid.Nil {
		return nil, errors.New("article author is required")
	}

	token := uuid.New()
	slug := utils.SlugUUID("", title, token.String(), slugMaxLen)

	now := time.Now()
	return &Article{
		ID:          uuid.New(),
		Slug:        slug,
		UUIDToken:   token,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Body:        body,
		AuthorID:    authorID,
		TagList:     normalizeTags(tagList),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update applies content edits. The slug and token are deliberately
// left alone: re-deriving them would break every published link.
func (a *Article) Update(title, description, body string, tagList []string) error {
	if err := validateContent(title, description, body, tagList); err != nil {
		return err
	}

	a.Title = strings.TrimSpace(title)
	a.Description = strings.TrimSpace(description)
	a.Body = body
	a.TagList = normalizeTags(tagList)
	a.UpdatedAt = time.Now()

	return nil
}

func validateContent(title, description, body string, tagList []string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("article title cannot be empty")
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("article title must not exceed %d characters (got %d)", MaxTitleLength, len(title))
	}
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("article description must not exceed %d characters (got %d)", MaxDescriptionLength, len(description))
	}
	if strings.TrimSpace(body) == "" {
		return errors.New("article body cannot be empty")
	}
	if len(tagList) > MaxTags {
		return fmt.Errorf("article must not have more than %d tags (got %d)", MaxTags, len(tagList))
	}
	for _, tag := range tagList {
		if len(tag) > MaxTagLength {
			return fmt.Errorf("tag %q exceeds %d characters", tag, MaxTagLength)
		}
	}

	return nil
}

// normalizeTags slugifies each tag and drops empties and duplicates,
// preserving first-seen order.
func normalizeTags(tagList []string) pq.StringArray {
	seen := make(map[string]bool, len(tagList))
	normalized := make(pq.StringArray, 0, len(tagList))

	for _, tag := range tagList {
		t := utils.GenerateSlug(tag)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		normalized = append(normalized, t)
	}

	return normalized
}

// ArticleFilter narrows List queries.
type ArticleFilter struct {
	// Tag keeps only articles carrying this tag.
	Tag string

	// Author keeps only articles written by this username.
	Author string

	// FavoritedBy keeps only articles favorited by this username.
	FavoritedBy string

	Limit  int // default 20, max 100
	Offset int
}

// Normalize applies pagination defaults and caps.
func (f *ArticleFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
