package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"casse-auctions/internal/biddingerrors"
	model "casse-auctions/internal/models"
	"casse-auctions/internal/session"
	"casse-auctions/services/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const cookieName = "casse_session"

var (
	adminCaller = model.Identity{ID: "admin1", Name: "Marie Admin", Role: model.RoleAdmin, Status: model.StatusApproved}

	pendingUser = model.User{
		ID:        "user1",
		Name:      "Jean Dupont",
		Email:     "jean@casse.fr",
		Role:      model.RoleStaff,
		Status:    model.StatusPending,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
)

func newAccountsRouter(identity *model.Identity, service AccountsServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAccountsHandler(service, CookieOptions{Name: cookieName})

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if identity != nil {
			helpers.SetIdentity(c, *identity)
		}
		c.Next()
	})
	router.POST("/auth/register", h.RegisterHandler)
	router.POST("/auth/login", h.LoginHandler)
	router.POST("/auth/logout", h.LogoutHandler)
	router.GET("/auth/me", h.MeHandler)
	router.GET("/users", h.ListUsersHandler)
	router.PUT("/users/:user_id/status", h.SetStatusHandler)
	router.PUT("/users/:user_id/role", h.SetRoleHandler)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, url string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", cookieName)
	return nil
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func(mockService *MockAccountsServiceInterface)
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:        "success",
			requestBody: map[string]any{"name": "Jean Dupont", "email": "jean@casse.fr", "password": "motdepasse"},
			mockSetup: func(mockService *MockAccountsServiceInterface) {
				mockService.EXPECT().
					Register(gomock.Any(), "Jean Dupont", "jean@casse.fr", "motdepasse").
					Return(pendingUser, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "account created, awaiting approval",
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func(*MockAccountsServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   helpers.CodeInvalidRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "malformed_email",
			requestBody:    map[string]any{"name": "Jean Dupont", "email": "jean", "password": "motdepasse"},
			mockSetup:      func(*MockAccountsServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   helpers.CodeInvalidRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "short_password",
			requestBody:    map[string]any{"name": "Jean Dupont", "email": "jean@casse.fr", "password": "court"},
			mockSetup:      func(*MockAccountsServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   helpers.CodeInvalidRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "email_taken",
			requestBody: map[string]any{"name": "Jean Dupont", "email": "jean@casse.fr", "password": "motdepasse"},
			mockSetup: func(mockService *MockAccountsServiceInterface) {
				mockService.EXPECT().
					Register(gomock.Any(), "Jean Dupont", "jean@casse.fr", "motdepasse").
					Return(model.User{}, biddingerrors.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   helpers.CodeEmailTaken,
			expectedMsg:    "email already registered",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := NewMockAccountsServiceInterface(ctrl)
			tc.mockSetup(mockService)
			router := newAccountsRouter(nil, mockService)

			w, resp := doRequest(t, router, http.MethodPost, "/auth/register", tc.requestBody)

			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if tc.expectedCode != "" {
				require.Equal(t, tc.expectedCode, resp["code"])
				return
			}
			data := resp["data"].(map[string]any)
			require.Equal(t, "user1", data["id"])
			require.Equal(t, "pending", data["status"])
			require.NotContains(t, data, "PasswordHash")
		})
	}
}

func TestLoginHandler(t *testing.T) {
	created := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	sess := session.Session{Token: "tok-123", UserID: "user1", CreatedAt: created, ExpiresAt: created.Add(24 * time.Hour)}
	approved := pendingUser
	approved.Status = model.StatusApproved

	t.Run("success_sets_session_cookie", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := NewMockAccountsServiceInterface(ctrl)
		mockService.EXPECT().Login(gomock.Any(), "jean@casse.fr", "motdepasse").Return(sess, approved, nil)
		router := newAccountsRouter(nil, mockService)

		w, resp := doRequest(t, router, http.MethodPost, "/auth/login", map[string]any{"email": "jean@casse.fr", "password": "motdepasse"})

		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, "user1", data["id"])
		require.Equal(t, "approved", data["status"])

		cookie := sessionCookie(t, w)
		require.Equal(t, "tok-123", cookie.Value)
		require.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)
		require.Equal(t, "/", cookie.Path)
		require.True(t, cookie.HttpOnly)
		require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	})

	t.Run("pending_account_may_log_in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := NewMockAccountsServiceInterface(ctrl)
		mockService.EXPECT().Login(gomock.Any(), "jean@casse.fr", "motdepasse").Return(sess, pendingUser, nil)
		router := newAccountsRouter(nil, mockService)

		w, resp := doRequest(t, router, http.MethodPost, "/auth/login", map[string]any{"email": "jean@casse.fr", "password": "motdepasse"})

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "pending", resp["data"].(map[string]any)["status"])
		require.Equal(t, "tok-123", sessionCookie(t, w).Value)
	})

	t.Run("invalid_credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := NewMockAccountsServiceInterface(ctrl)
		mockService.EXPECT().Login(gomock.Any(), "jean@casse.fr", "mauvais").Return(session.Session{}, model.User{}, biddingerrors.ErrInvalidCredentials)
		router := newAccountsRouter(nil, mockService)

		w, resp := doRequest(t, router, http.MethodPost, "/auth/login", map[string]any{"email": "jean@casse.fr", "password": "mauvais"})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, helpers.CodeInvalidCredentials, resp["code"])
		require.Empty(t, w.Result().Cookies())
	})

	t.Run("missing_password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router := newAccountsRouter(nil, NewMockAccountsServiceInterface(ctrl))

		w, resp := doRequest(t, router, http.MethodPost, "/auth/login", map[string]any{"email": "jean@casse.fr"})

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, helpers.CodeInvalidRequest, resp["code"])
	})
}

func TestLogoutHandler(t *testing.T) {
	t.Run("clears_cookie_and_deletes_session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := NewMockAccountsServiceInterface(ctrl)
		mockService.EXPECT().Logout(gomock.Any(), "tok-123").Return(nil)
		router := newAccountsRouter(nil, mockService)

		w, resp := doRequest(t, router, http.MethodPost, "/auth/logout", nil, &http.Cookie{Name: cookieName, Value: "tok-123"})

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, true, resp["data"].(map[string]any)["success"])
		cookie := sessionCookie(t, w)
		require.Empty(t, cookie.Value)
		require.Negative(t, cookie.MaxAge)
	})

	t.Run("without_cookie_still_clears", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router := newAccountsRouter(nil, NewMockAccountsServiceInterface(ctrl))

		w, _ := doRequest(t, router, http.MethodPost, "/auth/logout", nil)

		require.Equal(t, http.StatusOK, w.Code)
		require.Negative(t, sessionCookie(t, w).MaxAge)
	})

	t.Run("store_failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := NewMockAccountsServiceInterface(ctrl)
		mockService.EXPECT().Logout(gomock.Any(), "tok-123").Return(errors.New("bolt closed"))
		router := newAccountsRouter(nil, mockService)

		w, resp := doRequest(t, router, http.MethodPost, "/auth/logout", nil, &http.Cookie{Name: cookieName, Value: "tok-123"})

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, helpers.CodeInternal, resp["code"])
	})
}

func TestMeHandler(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router := newAccountsRouter(nil, NewMockAccountsServiceInterface(ctrl))

		w, resp := doRequest(t, router, http.MethodGet, "/auth/me", nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, helpers.CodeUnauthorized, resp["code"])
	})

	t.Run("returns_current_user", func(t *testing.T) {
		caller := pendingUser.Identity()
		ctrl := gomock.NewController(t)
		mockService := NewMockAccountsServiceInterface(ctrl)
		mockService.EXPECT().GetUser(gomock.Any(), "user1").Return(pendingUser, nil)
		router := newAccountsRouter(&caller, mockService)

		w, resp := doRequest(t, router, http.MethodGet, "/auth/me", nil)

		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, "jean@casse.fr", data["email"])
		require.Equal(t, "Staff", data["role"])
	})
}

func TestAdminUserHandlers(t *testing.T) {
	approved := pendingUser
	approved.Status = model.StatusApproved
	promoted := approved
	promoted.Role = model.RoleAdmin

	tests := []struct {
		name           string
		method         string
		url            string
		requestBody    any
		mockSetup      func(mockService *MockAccountsServiceInterface)
		expectedStatus int
		expectedCode   string
		validate       func(t *testing.T, data any)
	}{
		{
			name:   "list_users",
			method: http.MethodGet,
			url:    "/users",
			mockSetup: func(mockService *MockAccountsServiceInterface) {
				mockService.EXPECT().ListUsers(gomock.Any()).Return([]model.User{pendingUser}, nil)
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, data any) {
				require.Len(t, data.([]any), 1)
			},
		},
		{
			name:        "approve_user",
			method:      http.MethodPut,
			url:         "/users/user1/status",
			requestBody: map[string]any{"status": "approved"},
			mockSetup: func(mockService *MockAccountsServiceInterface) {
				mockService.EXPECT().SetStatus(gomock.Any(), "user1", model.StatusApproved).Return(approved, nil)
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, data any) {
				require.Equal(t, "approved", data.(map[string]any)["status"])
			},
		},
		{
			name:           "unknown_status_value",
			method:         http.MethodPut,
			url:            "/users/user1/status",
			requestBody:    map[string]any{"status": "banned"},
			mockSetup:      func(*MockAccountsServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   helpers.CodeInvalidRequest,
		},
		{
			name:        "status_of_unknown_user",
			method:      http.MethodPut,
			url:         "/users/ghost/status",
			requestBody: map[string]any{"status": "pending"},
			mockSetup: func(mockService *MockAccountsServiceInterface) {
				mockService.EXPECT().SetStatus(gomock.Any(), "ghost", model.StatusPending).Return(model.User{}, biddingerrors.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   helpers.CodeNotFound,
		},
		{
			name:        "promote_user",
			method:      http.MethodPut,
			url:         "/users/user1/role",
			requestBody: map[string]any{"role": "Admin"},
			mockSetup: func(mockService *MockAccountsServiceInterface) {
				mockService.EXPECT().SetRole(gomock.Any(), "user1", model.RoleAdmin).Return(promoted, nil)
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, data any) {
				require.Equal(t, "Admin", data.(map[string]any)["role"])
			},
		},
		{
			name:           "role_must_be_known",
			method:         http.MethodPut,
			url:            "/users/user1/role",
			requestBody:    map[string]any{"role": "admin"},
			mockSetup:      func(*MockAccountsServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   helpers.CodeInvalidRequest,
		},
		{
			name:        "role_of_unknown_user",
			method:      http.MethodPut,
			url:         "/users/ghost/role",
			requestBody: map[string]any{"role": "Staff"},
			mockSetup: func(mockService *MockAccountsServiceInterface) {
				mockService.EXPECT().SetRole(gomock.Any(), "ghost", model.RoleStaff).Return(model.User{}, biddingerrors.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   helpers.CodeNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := NewMockAccountsServiceInterface(ctrl)
			tc.mockSetup(mockService)
			router := newAccountsRouter(&adminCaller, mockService)

			w, resp := doRequest(t, router, tc.method, tc.url, tc.requestBody)

			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedCode != "" {
				require.Equal(t, tc.expectedCode, resp["code"])
			}
			if tc.validate != nil {
				tc.validate(t, resp["data"])
			}
		})
	}
}
