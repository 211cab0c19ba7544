package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/backend"
	"github.com/freya-systems/freya-dashboard/internal/export"
	"github.com/freya-systems/freya-dashboard/internal/model"
)

// upstreamStub stands in for the Freya backend during handler tests.
type upstreamStub struct {
	mutex           sync.Mutex
	requestsByPath  map[string][]map[string]any
	responsesByPath map[string]any
	statusByPath    map[string]int
	server          *httptest.Server
}

func newUpstreamStub(t *testing.T) *upstreamStub {
	stub := &upstreamStub{
		requestsByPath:  map[string][]map[string]any{},
		responsesByPath: map[string]any{},
		statusByPath:    map[string]int{},
	}
	stub.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(request.Body).Decode(&payload)

		stub.mutex.Lock()
		stub.requestsByPath[request.URL.Path] = append(stub.requestsByPath[request.URL.Path], payload)
		response, hasResponse := stub.responsesByPath[request.URL.Path]
		status := stub.statusByPath[request.URL.Path]
		stub.mutex.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		if status != 0 {
			writer.WriteHeader(status)
		}
		if hasResponse {
			_ = json.NewEncoder(writer).Encode(response)
			return
		}
		_, _ = writer.Write([]byte("{}"))
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (stub *upstreamStub) respond(path string, response any) {
	stub.mutex.Lock()
	defer stub.mutex.Unlock()
	stub.responsesByPath[path] = response
}

func (stub *upstreamStub) respondStatus(path string, status int, response any) {
	stub.mutex.Lock()
	defer stub.mutex.Unlock()
	stub.statusByPath[path] = status
	stub.responsesByPath[path] = response
}

func (stub *upstreamStub) requests(path string) []map[string]any {
	stub.mutex.Lock()
	defer stub.mutex.Unlock()
	return stub.requestsByPath[path]
}

func (stub *upstreamStub) requestCount(path string) int {
	return len(stub.requests(path))
}

type handlerHarness struct {
	stub     *upstreamStub
	client   *backend.Client
	sessions *SessionManager
	router   *gin.Engine
}

// sessionInjector seeds the request context with a fixed session, standing in
// for the cookie middleware.
func sessionInjector(session model.Session) gin.HandlerFunc {
	return func(context *gin.Context) {
		context.Set(contextKeySession, session.Normalized())
		context.Next()
	}
}

func newHandlerHarness(t *testing.T, session model.Session) *handlerHarness {
	stub := newUpstreamStub(t)
	client, clientErr := backend.NewClient(backend.Config{BaseURL: stub.server.URL}, zap.NewNop())
	require.NoError(t, clientErr)

	sessions := NewSessionManager("test-session-secret", zap.NewNop())

	router := gin.New()
	router.Use(sessionInjector(session))

	masterHandlers := NewMasterHandlers(client, zap.NewNop())
	logHandlers := NewLogHandlers(client, export.NewPDFWriter("", zap.NewNop()), zap.NewNop())
	userHandlers := NewUserHandlers(client, zap.NewNop())

	router.POST("/api/master/list", masterHandlers.List)
	router.POST("/api/master/insert", sessions.RequireEditorJSON(), masterHandlers.Insert)
	router.POST("/api/master/update", sessions.RequireEditorJSON(), masterHandlers.Update)
	router.POST("/api/master/bulk-delete", sessions.RequireEditorJSON(), masterHandlers.BulkDelete)
	router.POST("/api/master/record-history", masterHandlers.RecordHistory)
	router.POST("/api/master/import", sessions.RequireEditorJSON(), masterHandlers.ImportCSV)
	router.POST("/api/logs/list", logHandlers.List)
	router.POST("/api/logs/actions", logHandlers.Actions)
	router.POST("/api/logs/export", logHandlers.Export)
	router.POST("/api/users/list", sessions.RequireUserManagerJSON(), userHandlers.List)
	router.POST("/api/users/create", sessions.RequireUserManagerJSON(), userHandlers.Create)
	router.POST("/api/users/update", sessions.RequireUserManagerJSON(), userHandlers.Update)
	router.POST("/api/users/delete", sessions.RequireUserManagerJSON(), userHandlers.Delete)
	router.POST("/api/users/reset-password", sessions.RequireUserManagerJSON(), userHandlers.ResetPassword)

	return &handlerHarness{stub: stub, client: client, sessions: sessions, router: router}
}

func (harness *handlerHarness) postJSON(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
	body, marshalErr := json.Marshal(payload)
	require.NoError(t, marshalErr)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	harness.router.ServeHTTP(recorder, request)
	return recorder
}

func (harness *handlerHarness) postFile(t *testing.T, path string, fieldName string, fileName string, contents []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	formWriter := multipart.NewWriter(&body)
	filePart, partErr := formWriter.CreateFormFile(fieldName, fileName)
	require.NoError(t, partErr)
	_, writeErr := filePart.Write(contents)
	require.NoError(t, writeErr)
	require.NoError(t, formWriter.Close())

	request := httptest.NewRequest(http.MethodPost, path, &body)
	request.Header.Set("Content-Type", formWriter.FormDataContentType())
	recorder := httptest.NewRecorder()
	harness.router.ServeHTTP(recorder, request)
	return recorder
}

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	body, marshalErr := json.Marshal(payload)
	require.NoError(t, marshalErr)
	return bytes.NewReader(body)
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return decoded
}

func adminSession() model.Session {
	return model.Session{Username: "tanaka", Role: model.RoleAdmin, DBName: "tenant_a"}
}

func supervisorSession() model.Session {
	return model.Session{Username: "sato", Role: model.RoleSupervisor, DBName: "tenant_a"}
}
