package comment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxBodyLength = 5000

// Comment belongs to one article and one author.
type Comment struct {
	ID        uuid.UUID
	ArticleID uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Runtime metadata, populated by the repository per query.
	AuthorUsername *string
	AuthorBio      *string
	AuthorImage    *string
}

func NewComment(articleID, authorID uuid.UUID, body string) (*Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, errors.New("comment body cannot be empty")
	}
	if len(body) > MaxBodyLength {
		return nil, fmt.Errorf("comment body must not exceed %d characters (got %d)", MaxBodyLength, len(body))
	}
	if articleID == uuid.Nil {
		return nil, errors.New("comment article is required")
	}
	if authorID == uuid.Nil {
		return nil, errors.New("comment author is required")
	}

	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		ArticleID: articleID,
		AuthorID:  authorID,
		Body:      strings.TrimSpace(body),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
