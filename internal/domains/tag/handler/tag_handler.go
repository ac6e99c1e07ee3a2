package handler

import (
	"net/http"

	"conduit-backend/internal/domains/tag"
	"conduit-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	service tag.Service
}

func NewTagHandler(svc tag.Service) *TagHandler {
	return &TagHandler{service: svc}
}

// Tag reads have no caller-addressable entity, so any failure here is a
// server-side one.

// ========== TAG: GET /v1/tags ==========
func (h *TagHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, "LIST_TAGS_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== TAG: GET /v1/tags/popular ==========
func (h *TagHandler) Popular(c *gin.Context) {
	resp, err := h.service.Popular(c.Request.Context())
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, "POPULAR_TAGS_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}
