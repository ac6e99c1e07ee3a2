package handler

import (
	"net/http"
	"strconv"

	"conduit-backend/internal/domains/article"
	"conduit-backend/internal/shared/middleware"
	"conduit-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	service article.Service
}

func NewArticleHandler(svc article.Service) *ArticleHandler {
	return &ArticleHandler{service: svc}
}

// ========== ARTICLE: POST /v1/articles ==========
func (h *ArticleHandler) Create(c *gin.Context) {
	authorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req article.CreateArticleRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), authorID, &req)
	if err != nil {
		response.ErrorResponse(c, article.GetHTTPStatusCode(err), "CREATE_ARTICLE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ========== ARTICLE: GET /v1/articles ==========
func (h *ArticleHandler) List(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)

	filter := &article.ArticleFilter{
		Tag:         c.Query("tag"),
		Author:      c.Query("author"),
		FavoritedBy: c.Query("favorited"),
		Limit:       intQuery(c, "limit"),
		Offset:      intQuery(c, "offset"),
	}

	resp, err := h.service.List(c.Request.Context(), filter, viewerID)
	if err != nil {
		response.ErrorResponse(c, article.GetHTTPStatusCode(err), "LIST_ARTICLES_FAILED", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp, &response.Meta{
		Limit:  filter.Limit,
		Offset: filter.Offset,
		Total:  resp.Total,
	})
}

// ========== ARTICLE: GET /v1/articles/feed ==========
func (h *ArticleHandler) Feed(c *gin.Context) {
	viewerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	limit := intQuery(c, "limit")
	offset := intQuery(c, "offset")

	resp, err := h.service.Feed(c.Request.Context(), viewerID, limit, offset)
	if err != nil {
		response.ErrorResponse(c, article.GetHTTPStatusCode(err), "FEED_FAILED", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp, &response.Meta{
		Limit:  limit,
		Offset: offset,
		Total:  resp.Total,
	})
}

// ========== ARTICLE: GET /v1/articles/:slug ==========
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)

	resp, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"), viewerID)
	if err != nil {
		response.ErrorResponse(c, article.GetHTTPStatusCode(err), "GET_ARTICLE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== ARTICLE: PUT /v1/articles/:slug ==========
func (h *ArticleHandler) Update(c *gin.Context) {
	authorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req article.UpdateArticleRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("slug"), authorID, &req)
	if err != nil {
		response.ErrorResponse(c, article.GetHTTPStatusCode(err), "UPDATE_ARTICLE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== ARTICLE: DELETE /v1/articles/:slug ==========
func (h *ArticleHandler) Delete(c *gin.Context) {
	authorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("slug"), authorID); err != nil {
		response.ErrorResponse(c, article.GetHTTPStatusCode(err), "DELETE_ARTICLE_FAILED", err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// ========== ARTICLE: POST /v1/articles/:slug/favorite ==========
func (h *ArticleHandler) Favorite(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.service.Favorite(c.Request.Context(), c.Param("slug"), userID)
	if err != nil {
		response.ErrorResponse(c, article.GetHTTPStatusCode(err), "FAVORITE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== ARTICLE: DELETE /v1/articles/:slug/favorite ==========
func (h *ArticleHandler) Unfavorite(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.service.Unfavorite(c.Request.Context(), c.Param("slug"), userID)
	if err != nil {
		response.ErrorResponse(c, article.GetHTTPStatusCode(err), "UNFAVORITE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// intQuery parses an integer query parameter, 0 when absent or invalid.
func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
