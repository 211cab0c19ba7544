package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

func sessionTestRouter(manager *SessionManager) *gin.Engine {
	router := gin.New()
	router.POST("/establish", func(context *gin.Context) {
		_ = manager.Establish(context, adminSession())
		context.Status(http.StatusOK)
	})
	router.GET("/whoami", func(context *gin.Context) {
		context.JSON(http.StatusOK, manager.Current(context))
	})
	router.GET("/page", manager.RequireSessionWeb(), func(context *gin.Context) {
		context.String(http.StatusOK, CurrentSession(context).Username)
	})
	router.GET("/api/resource", manager.RequireSessionJSON(), func(context *gin.Context) {
		context.JSON(http.StatusOK, CurrentSession(context))
	})
	return router
}

func establishedCookies(t *testing.T, router *gin.Engine) []*http.Cookie {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/establish", nil)
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestSessionCookieRoundtrip(t *testing.T) {
	manager := NewSessionManager("test-session-secret", zap.NewNop())
	router := sessionTestRouter(manager)
	cookies := establishedCookies(t, router)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	require.Equal(t, "tanaka", body["username"])
	require.Equal(t, model.RoleAdmin, body["role"])
	require.Equal(t, "tenant_a", body["dbName"])
}

func TestMissingCookieDegradesToGuest(t *testing.T) {
	manager := NewSessionManager("test-session-secret", zap.NewNop())
	router := sessionTestRouter(manager)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	require.Equal(t, model.RoleGuest, body["role"])
	require.Equal(t, "", body["username"])
}

func TestTamperedCookieDegradesToGuest(t *testing.T) {
	manager := NewSessionManager("test-session-secret", zap.NewNop())
	router := sessionTestRouter(manager)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "not-a-valid-session"})
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, model.RoleGuest, decodeBody(t, recorder)["role"])
}

func TestRequireSessionWebRedirectsAnonymousToLogin(t *testing.T) {
	manager := NewSessionManager("test-session-secret", zap.NewNop())
	router := sessionTestRouter(manager)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/page", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusFound, recorder.Code)
	require.Equal(t, LoginPath, recorder.Header().Get("Location"))
}

func TestRequireSessionWebPassesAuthenticated(t *testing.T) {
	manager := NewSessionManager("test-session-secret", zap.NewNop())
	router := sessionTestRouter(manager)
	cookies := establishedCookies(t, router)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/page", nil)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "tanaka", recorder.Body.String())
}

func TestRequireSessionJSONRejectsAnonymous(t *testing.T) {
	manager := NewSessionManager("test-session-secret", zap.NewNop())
	router := sessionTestRouter(manager)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/resource", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.Equal(t, "unauthorized", decodeBody(t, recorder)["error"])
}

func TestLocaleStoredAlongsideSession(t *testing.T) {
	manager := NewSessionManager("test-session-secret", zap.NewNop())
	router := gin.New()
	router.POST("/locale", func(context *gin.Context) {
		_ = manager.SetLocale(context, "ja")
		context.Status(http.StatusOK)
	})
	router.GET("/locale", func(context *gin.Context) {
		context.String(http.StatusOK, manager.Locale(context))
	})

	setRecorder := httptest.NewRecorder()
	setRequest := httptest.NewRequest(http.MethodPost, "/locale", nil)
	router.ServeHTTP(setRecorder, setRequest)
	require.Equal(t, http.StatusOK, setRecorder.Code)

	getRecorder := httptest.NewRecorder()
	getRequest := httptest.NewRequest(http.MethodGet, "/locale", nil)
	for _, cookie := range setRecorder.Result().Cookies() {
		getRequest.AddCookie(cookie)
	}
	router.ServeHTTP(getRecorder, getRequest)
	require.Equal(t, "ja", getRecorder.Body.String())
}

func TestCurrentSessionWithoutMiddlewareIsGuest(t *testing.T) {
	context, _ := gin.CreateTestContext(httptest.NewRecorder())
	current := CurrentSession(context)
	require.Equal(t, model.RoleGuest, current.Role)
	require.False(t, current.IsAuthenticated())
}
