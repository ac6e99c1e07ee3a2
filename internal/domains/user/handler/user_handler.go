package handler

import (
	"net/http"

	"conduit-backend/internal/domains/user"
	"conduit-backend/internal/shared/middleware"
	"conduit-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{service: svc}
}

// ========== AUTH: POST /v1/auth/register ==========
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "REGISTER_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ========== AUTH: POST /v1/auth/login ==========
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "LOGIN_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== AUTH: POST /v1/auth/refresh ==========
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req user.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "REFRESH_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== USER: GET /v1/user ==========
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "GET_USER_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== USER: PUT /v1/user ==========
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req user.UpdateSettingsRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdateSettings(c.Request.Context(), userID, &req)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "UPDATE_SETTINGS_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== PROFILE: GET /v1/profiles/:username ==========
func (h *UserHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.BadRequest(c, "username is required")
		return
	}

	// Anonymous viewers get following=false.
	viewerID, _ := middleware.CurrentUserID(c)

	resp, err := h.service.GetProfile(c.Request.Context(), username, viewerID)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "GET_PROFILE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== PROFILE: POST /v1/profiles/:username/follow ==========
func (h *UserHandler) Follow(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.service.Follow(c.Request.Context(), userID, c.Param("username"))
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "FOLLOW_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== PROFILE: DELETE /v1/profiles/:username/follow ==========
func (h *UserHandler) Unfollow(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.service.Unfollow(c.Request.Context(), userID, c.Param("username"))
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "UNFOLLOW_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}
