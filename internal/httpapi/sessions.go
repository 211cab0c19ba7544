package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/access"
	"github.com/freya-systems/freya-dashboard/internal/model"
)

const (
	sessionCookieName    = "freya_session"
	sessionKeyUsername   = "username"
	sessionKeyRole       = "role"
	sessionKeyDBName     = "dbName"
	sessionKeyLocale     = "locale"
	sessionMaxAgeSeconds = 12 * 60 * 60

	contextKeySession = "freya.session"

	// LoginPath is where unauthenticated browser requests are redirected.
	LoginPath = "/login"

	errorValueUnauthorized = "unauthorized"
	errorValueForbidden    = "forbidden"

	logMessageSaveSession = "save_session"
)

// SessionManager reads and writes the authenticated session cookie.
type SessionManager struct {
	store  *sessions.CookieStore
	logger *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager with the given secret.
func NewSessionManager(secret string, logger *zap.Logger) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAgeSeconds,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{store: store, logger: logger}
}

// Current reads the session from the request. Missing or malformed cookie
// values degrade to an unauthenticated guest session, never an error.
func (manager *SessionManager) Current(context *gin.Context) model.Session {
	cookieSession, _ := manager.store.Get(context.Request, sessionCookieName)
	current := model.Session{
		Username: stringSessionValue(cookieSession.Values[sessionKeyUsername]),
		Role:     stringSessionValue(cookieSession.Values[sessionKeyRole]),
		DBName:   stringSessionValue(cookieSession.Values[sessionKeyDBName]),
	}
	return current.Normalized()
}

// Establish stores the authenticated session in the response cookie.
func (manager *SessionManager) Establish(context *gin.Context, authenticated model.Session) error {
	cookieSession, _ := manager.store.Get(context.Request, sessionCookieName)
	cookieSession.Values[sessionKeyUsername] = authenticated.Username
	cookieSession.Values[sessionKeyRole] = authenticated.Role
	cookieSession.Values[sessionKeyDBName] = authenticated.DBName
	return cookieSession.Save(context.Request, context.Writer)
}

// Clear removes the session cookie.
func (manager *SessionManager) Clear(context *gin.Context) {
	cookieSession, _ := manager.store.Get(context.Request, sessionCookieName)
	cookieSession.Options.MaxAge = -1
	if saveErr := cookieSession.Save(context.Request, context.Writer); saveErr != nil {
		manager.logger.Warn(logMessageSaveSession, zap.Error(saveErr))
	}
}

// Locale returns the stored display locale, or empty when none was chosen.
func (manager *SessionManager) Locale(context *gin.Context) string {
	cookieSession, _ := manager.store.Get(context.Request, sessionCookieName)
	return stringSessionValue(cookieSession.Values[sessionKeyLocale])
}

// SetLocale stores the chosen display locale alongside the session.
func (manager *SessionManager) SetLocale(context *gin.Context, locale string) error {
	cookieSession, _ := manager.store.Get(context.Request, sessionCookieName)
	cookieSession.Values[sessionKeyLocale] = locale
	return cookieSession.Save(context.Request, context.Writer)
}

// RequireSessionWeb redirects unauthenticated browser requests to the login page.
func (manager *SessionManager) RequireSessionWeb() gin.HandlerFunc {
	return func(context *gin.Context) {
		current := manager.Current(context)
		if !current.IsAuthenticated() {
			context.Redirect(http.StatusFound, LoginPath)
			context.Abort()
			return
		}
		context.Set(contextKeySession, current)
		context.Next()
	}
}

// RequireSessionJSON rejects unauthenticated API requests with 401.
func (manager *SessionManager) RequireSessionJSON() gin.HandlerFunc {
	return func(context *gin.Context) {
		current := manager.Current(context)
		if !current.IsAuthenticated() {
			context.AbortWithStatusJSON(401, gin.H{"error": errorValueUnauthorized})
			return
		}
		context.Set(contextKeySession, current)
		context.Next()
	}
}

// RequireEditorJSON rejects sessions whose role cannot mutate records.
func (manager *SessionManager) RequireEditorJSON() gin.HandlerFunc {
	return func(context *gin.Context) {
		current := CurrentSession(context)
		if !access.CanEditRecords(current.Role) {
			context.AbortWithStatusJSON(403, gin.H{"error": errorValueForbidden})
			return
		}
		context.Next()
	}
}

// RequireUserManagerJSON rejects sessions whose role cannot manage users.
func (manager *SessionManager) RequireUserManagerJSON() gin.HandlerFunc {
	return func(context *gin.Context) {
		current := CurrentSession(context)
		if !access.CanManageUsers(current.Role) {
			context.AbortWithStatusJSON(403, gin.H{"error": errorValueForbidden})
			return
		}
		context.Next()
	}
}

// CurrentSession returns the session stored by the session middleware. The
// zero guest session is returned when no middleware ran.
func CurrentSession(context *gin.Context) model.Session {
	stored, exists := context.Get(contextKeySession)
	if !exists {
		return model.Session{Role: model.RoleGuest}
	}
	current, ok := stored.(model.Session)
	if !ok {
		return model.Session{Role: model.RoleGuest}
	}
	return current
}

func stringSessionValue(value any) string {
	text, _ := value.(string)
	return text
}
