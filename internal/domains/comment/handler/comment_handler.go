package handler

import (
	"net/http"

	"conduit-backend/internal/domains/comment"
	"conduit-backend/internal/shared/middleware"
	"conduit-backend/internal/shared/response"
	"conduit-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(svc comment.Service) *CommentHandler {
	return &CommentHandler{service: svc}
}

// ========== COMMENT: POST /v1/articles/:slug/comments ==========
func (h *CommentHandler) Create(c *gin.Context) {
	authorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req comment.CreateCommentRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.Param("slug"), authorID, &req)
	if err != nil {
		response.ErrorResponse(c, comment.GetHTTPStatusCode(err), "CREATE_COMMENT_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ========== COMMENT: GET /v1/articles/:slug/comments ==========
func (h *CommentHandler) List(c *gin.Context) {
	resp, err := h.service.ListByArticle(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.ErrorResponse(c, comment.GetHTTPStatusCode(err), "LIST_COMMENTS_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== COMMENT: DELETE /v1/articles/:slug/comments/:id ==========
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	commentID := utils.ParseStringToUUID(c.Param("id"))
	if commentID == uuid.Nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("slug"), commentID, userID); err != nil {
		response.ErrorResponse(c, comment.GetHTTPStatusCode(err), "DELETE_COMMENT_FAILED", err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
