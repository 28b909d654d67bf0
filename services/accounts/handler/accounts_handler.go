package handler

import (
	"context"
	"net/http"

	"casse-auctions/internal/biddingerrors"
	model "casse-auctions/internal/models"
	"casse-auctions/internal/session"
	"casse-auctions/services/helpers"
	"casse-auctions/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=accounts_handler.go -destination=mock_accounts_handler.go -package=handler

type AccountsServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (model.User, error)
	Login(ctx context.Context, email, password string) (session.Session, model.User, error)
	Logout(ctx context.Context, token string) error
	GetUser(ctx context.Context, userID string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	SetStatus(ctx context.Context, userID string, status model.Status) (model.User, error)
	SetRole(ctx context.Context, userID string, role model.Role) (model.User, error)
}

// CookieOptions controls the session cookie
type CookieOptions struct {
	Name   string
	Secure bool
}

type AccountsHandler struct {
	service AccountsServiceInterface
	cookie  CookieOptions
}

func NewAccountsHandler(service AccountsServiceInterface, cookie CookieOptions) *AccountsHandler {
	return &AccountsHandler{service: service, cookie: cookie}
}

// RegisterHandler handles POST /auth/register
func (h *AccountsHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		helpers.RespondError(c, "RegisterHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, user, "account created, awaiting approval")
	helpers.LogSuccess("RegisterHandler", "account created", map[string]any{"user_id": user.ID})
}

// LoginHandler handles POST /auth/login
func (h *AccountsHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	sess, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		helpers.RespondError(c, "LoginHandler", err, nil)
		return
	}

	maxAge := int(sess.ExpiresAt.Sub(sess.CreatedAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, sess.Token, maxAge, "/", "", h.cookie.Secure, true)

	utils.JSONResponse(c, http.StatusOK, user.Identity(), "logged in successfully")
	helpers.LogSuccess("LoginHandler", "logged in", map[string]any{"user_id": user.ID})
}

// LogoutHandler handles POST /auth/logout
func (h *AccountsHandler) LogoutHandler(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			helpers.RespondError(c, "LogoutHandler", err, nil)
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	utils.JSONResponse(c, http.StatusOK, gin.H{"success": true}, "logged out successfully")
}

// MeHandler handles GET /auth/me
func (h *AccountsHandler) MeHandler(c *gin.Context) {
	caller := helpers.CurrentIdentity(c)
	if caller == nil {
		helpers.RespondError(c, "MeHandler", biddingerrors.ErrUnauthorized, nil)
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), caller.ID)
	if err != nil {
		helpers.RespondError(c, "MeHandler", err, map[string]any{"user_id": caller.ID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, user, "user retrieved successfully")
}

// ListUsersHandler handles GET /users (admin)
func (h *AccountsHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ListUsersHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, users, "users retrieved successfully")
}

// SetStatusHandler handles PUT /users/:user_id/status (admin)
func (h *AccountsHandler) SetStatusHandler(c *gin.Context) {
	userID := c.Param("user_id")

	var req helpers.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetStatusHandler", err)
		return
	}

	user, err := h.service.SetStatus(c.Request.Context(), userID, req.Status)
	if err != nil {
		helpers.RespondError(c, "SetStatusHandler", err, map[string]any{"user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, user, "status updated successfully")
	helpers.LogSuccess("SetStatusHandler", "status updated", map[string]any{"user_id": userID, "status": user.Status})
}

// SetRoleHandler handles PUT /users/:user_id/role (admin)
func (h *AccountsHandler) SetRoleHandler(c *gin.Context) {
	userID := c.Param("user_id")

	var req helpers.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetRoleHandler", err)
		return
	}

	user, err := h.service.SetRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		helpers.RespondError(c, "SetRoleHandler", err, map[string]any{"user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, user, "role updated successfully")
	helpers.LogSuccess("SetRoleHandler", "role updated", map[string]any{"user_id": userID, "role": user.Role})
}
