package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/backend"
	"github.com/freya-systems/freya-dashboard/internal/i18n"
)

const (
	errorValueInvalidJSON        = "invalid_json"
	errorValueMissingCredentials = "missing_credentials"
	errorValueLoginFailed        = "login_failed"
	errorValueUnknownLocale      = "unknown_locale"

	logMessageLoginFailed = "login_failed"
	logFieldUsername      = "username"
)

// AuthHandlers serves login, logout and session introspection.
type AuthHandlers struct {
	client   *backend.Client
	sessions *SessionManager
	logger   *zap.Logger
}

// NewAuthHandlers builds the authentication handler set.
func NewAuthHandlers(client *backend.Client, sessions *SessionManager, logger *zap.Logger) *AuthHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandlers{client: client, sessions: sessions, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates against the upstream backend and establishes the cookie session.
func (h *AuthHandlers) Login(context *gin.Context) {
	var payload loginRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}

	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || payload.Password == "" {
		context.JSON(400, gin.H{"error": errorValueMissingCredentials})
		return
	}

	authenticated, loginErr := h.client.Login(context.Request.Context(), payload.Username, payload.Password)
	if loginErr != nil {
		h.logger.Warn(logMessageLoginFailed,
			zap.String(logFieldUsername, payload.Username),
			zap.Error(loginErr))
		status := http.StatusUnauthorized
		var apiErr *backend.APIError
		if errors.As(loginErr, &apiErr) && apiErr.StatusCode >= 500 {
			status = http.StatusBadGateway
		}
		context.JSON(status, gin.H{"error": errorValueLoginFailed})
		return
	}

	if saveErr := h.sessions.Establish(context, authenticated); saveErr != nil {
		h.logger.Warn(logMessageSaveSession, zap.Error(saveErr))
		context.JSON(500, gin.H{"error": "session_failed"})
		return
	}

	context.JSON(200, authenticated)
}

// CurrentSession reports the session attached to the request, guest when absent.
func (h *AuthHandlers) CurrentSession(context *gin.Context) {
	context.JSON(200, h.sessions.Current(context))
}

// Logout clears the session and redirects to the login page.
func (h *AuthHandlers) Logout(context *gin.Context) {
	h.sessions.Clear(context)
	context.Redirect(http.StatusFound, LoginPath)
}

type localeRequest struct {
	Locale string `json:"locale"`
}

// SetLocale stores the chosen display language for subsequent page renders.
func (h *AuthHandlers) SetLocale(context *gin.Context) {
	var payload localeRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}

	if !i18n.SupportedLocale(payload.Locale) {
		context.JSON(400, gin.H{"error": errorValueUnknownLocale})
		return
	}

	if saveErr := h.sessions.SetLocale(context, i18n.NormalizeLocale(payload.Locale)); saveErr != nil {
		h.logger.Warn(logMessageSaveSession, zap.Error(saveErr))
		context.JSON(500, gin.H{"error": "session_failed"})
		return
	}
	context.JSON(200, gin.H{"locale": i18n.NormalizeLocale(payload.Locale)})
}
