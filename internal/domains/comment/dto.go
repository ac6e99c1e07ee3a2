package comment

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Body,
			validation.Required.Error("body is required"),
			validation.Length(1, MaxBodyLength),
		),
	)
}

// AuthorDTO is the embedded public profile of the comment's author.
type AuthorDTO struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	Body      string    `json:"body"`
	Author    AuthorDTO `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}

func ToCommentResponse(cm *Comment) CommentResponse {
	resp := CommentResponse{
		ID:        cm.ID,
		Body:      cm.Body,
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}

	if cm.AuthorUsername != nil {
		resp.Author.Username = *cm.AuthorUsername
	}
	if cm.AuthorBio != nil {
		resp.Author.Bio = *cm.AuthorBio
	}
	if cm.AuthorImage != nil {
		resp.Author.Image = *cm.AuthorImage
	}

	return resp
}

func ToCommentListResponse(comments []*Comment) CommentListResponse {
	resp := CommentListResponse{
		Comments: make([]CommentResponse, 0, len(comments)),
	}

	for _, cm := range comments {
		resp.Comments = append(resp.Comments, ToCommentResponse(cm))
	}

	return resp
}
