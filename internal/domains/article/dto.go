package article

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// REQUEST DTOs
// ========================================

type CreateArticleRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Body        string   `json:"body" binding:"required"`
	TagList     []string `json:"tag_list"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&r.Description, validation.Length(0, MaxDescriptionLength)),
		validation.Field(&r.Body, validation.Required.Error("body is required")),
		validation.Field(&r.TagList, validation.Length(0, MaxTags)),
	)
}

type UpdateArticleRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Body        string   `json:"body" binding:"required"`
	TagList     []string `json:"tag_list"`
}

func (r UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&r.Description, validation.Length(0, MaxDescriptionLength)),
		validation.Field(&r.Body, validation.Required.Error("body is required")),
		validation.Field(&r.TagList, validation.Length(0, MaxTags)),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

// AuthorDTO is the embedded public profile of the article's author.
type AuthorDTO struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

type ArticleResponse struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tag_list"`
	FavoritesCount int       `json:"favorites_count"`
	Favorited      bool      `json:"favorited"`
	Author         AuthorDTO `json:"author"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ArticleListResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"articles_count"`
}

func ToArticleResponse(a *Article) ArticleResponse {
	resp := ArticleResponse{
		Slug:        a.Slug,
		Title:       a.Title,
		Description: a.Description,
		Body:        a.Body,
		TagList:     a.TagList,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	if resp.TagList == nil {
		resp.TagList = []string{}
	}
	if a.FavoritesCount != nil {
		resp.FavoritesCount = *a.FavoritesCount
	}
	if a.Favorited != nil {
		resp.Favorited = *a.Favorited
	}
	if a.AuthorUsername != nil {
		resp.Author.Username = *a.AuthorUsername
	}
	if a.AuthorBio != nil {
		resp.Author.Bio = *a.AuthorBio
	}
	if a.AuthorImage != nil {
		resp.Author.Image = *a.AuthorImage
	}

	return resp
}

func ToArticleListResponse(articles []*Article, total int) ArticleListResponse {
	resp := ArticleListResponse{
		Articles: make([]ArticleResponse, 0, len(articles)),
		Total:    total,
	}

	for _, a := range articles {
		resp.Articles = append(resp.Articles, ToArticleResponse(a))
	}

	return resp
}
