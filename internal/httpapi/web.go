package httpapi

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/access"
	"github.com/freya-systems/freya-dashboard/internal/i18n"
)

const (
	loginTemplateName = "login"
	shellTemplateName = "shell"

	htmlContentType = "text/html; charset=utf-8"

	brandLabel = "Freya"

	loginFormElementID      = "login-form"
	usernameInputElementID  = "login-username"
	passwordInputElementID  = "login-password"
	loginStatusElementID    = "login-status"
	sidebarElementID        = "app-sidebar"
	pageContainerElementID  = "app-page"
	clientConfigElementID   = "client-config"
	defaultPageRedirectPath = "/app/" + access.PageDashboard

	translationKeyLogin        = "login"
	translationKeyUsername     = "username"
	translationKeyPassword     = "password"
	translationKeyLogout       = "logout"
	translationKeyPageNotFound = "pageNotFound"
)

type loginTemplateData struct {
	Locale                string
	PageTitle             string
	HeadingLabel          string
	LoginFormID           string
	UsernameInputID       string
	UsernameLabel         string
	PasswordInputID       string
	PasswordLabel         string
	LoginStatusID         string
	SubmitLabel           string
	ClientConfigElementID string
	ClientConfigJSON      template.JS
}

type shellTemplateData struct {
	Locale                 string
	PageTitle              string
	BrandLabel             string
	ActivePage             string
	Navigation             []NavigationEntry
	LogoutPath             string
	LogoutLabel            string
	SidebarElementID       string
	PageContainerElementID string
	ClientConfigElementID  string
	ClientConfigJSON       template.JS
	UnknownPage            bool
	UnknownPageMessage     string
}

type shellClientConfig struct {
	APIPaths     map[string]string `json:"api_paths"`
	ElementIDs   map[string]string `json:"element_ids"`
	ActivePage   string            `json:"active_page"`
	Locale       string            `json:"locale"`
	Translations map[string]string `json:"translations"`
}

// WebHandlers serves the login page and the authenticated application shell.
type WebHandlers struct {
	logger        *zap.Logger
	sessions      *SessionManager
	loginTemplate *template.Template
	shellTemplate *template.Template
}

// NewWebHandlers compiles the page templates.
func NewWebHandlers(logger *zap.Logger, sessions *SessionManager) *WebHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebHandlers{
		logger:        logger,
		sessions:      sessions,
		loginTemplate: template.Must(template.New(loginTemplateName).Parse(loginTemplateHTML)),
		shellTemplate: template.Must(template.New(shellTemplateName).Parse(shellTemplateHTML)),
	}
}

// RenderLogin serves the login page. Authenticated sessions are sent to the dashboard.
func (h *WebHandlers) RenderLogin(context *gin.Context) {
	if h.sessions.Current(context).IsAuthenticated() {
		context.Redirect(http.StatusFound, defaultPageRedirectPath)
		return
	}

	translator := i18n.NewTranslator(h.sessions.Locale(context))
	configJSON := h.clientConfigJSON(shellClientConfig{
		APIPaths: map[string]string{
			"session": "/api/session",
		},
		ElementIDs: map[string]string{
			"loginForm":   loginFormElementID,
			"username":    usernameInputElementID,
			"password":    passwordInputElementID,
			"loginStatus": loginStatusElementID,
		},
		Locale:       translator.Locale(),
		Translations: translator.Catalog(),
	})

	data := loginTemplateData{
		Locale:                translator.Locale(),
		PageTitle:             brandLabel,
		HeadingLabel:          translator.T(translationKeyLogin),
		LoginFormID:           loginFormElementID,
		UsernameInputID:       usernameInputElementID,
		UsernameLabel:         translator.T(translationKeyUsername),
		PasswordInputID:       passwordInputElementID,
		PasswordLabel:         translator.T(translationKeyPassword),
		LoginStatusID:         loginStatusElementID,
		SubmitLabel:           translator.T(translationKeyLogin),
		ClientConfigElementID: clientConfigElementID,
		ClientConfigJSON:      configJSON,
	}
	h.render(context, h.loginTemplate, data)
}

// RenderApp serves the application shell with the requested page activated.
// Unknown page identifiers render a localized notice naming the identifier.
func (h *WebHandlers) RenderApp(context *gin.Context) {
	currentSession := CurrentSession(context)
	translator := i18n.NewTranslator(h.sessions.Locale(context))
	requestedPage := context.Param("page")

	allowedPages := access.AllowedPages(currentSession.Role)
	navigation := make([]NavigationEntry, 0, len(allowedPages))
	for _, page := range allowedPages {
		navigation = append(navigation, NavigationEntry{
			Page:      page,
			Label:     translator.T(page),
			IconClass: access.IconClass(page),
			Path:      "/app/" + page,
		})
	}

	knownPage := requestedPage == access.PageDashboard ||
		requestedPage == access.PageUserManagement ||
		requestedPage == access.PageMasterDB ||
		requestedPage == access.PageSubmittedDB

	configJSON := h.clientConfigJSON(shellClientConfig{
		APIPaths: map[string]string{
			"navigation":           "/api/navigation",
			"masterList":           "/api/master/list",
			"masterInsert":         "/api/master/insert",
			"masterUpdate":         "/api/master/update",
			"masterBulkDelete":     "/api/master/bulk-delete",
			"masterImport":         "/api/master/import",
			"masterImage":          "/api/master/image",
			"masterHistory":        "/api/master/history",
			"masterRecordHistory":  "/api/master/record-history",
			"logsList":             "/api/logs/list",
			"logsActions":          "/api/logs/actions",
			"logsExport":           "/api/logs/export",
			"usersList":            "/api/users/list",
			"usersCreate":          "/api/users/create",
			"usersUpdate":          "/api/users/update",
			"usersDelete":          "/api/users/delete",
			"usersResetPassword":   "/api/users/reset-password",
			"dashboardPreferences": "/api/dashboard/preferences",
			"dashboardFields":      "/api/dashboard/fields",
			"dashboardOverview":    "/api/dashboard/overview",
			"locale":               "/api/locale",
		},
		ElementIDs: map[string]string{
			"sidebar":       sidebarElementID,
			"pageContainer": pageContainerElementID,
		},
		ActivePage:   requestedPage,
		Locale:       translator.Locale(),
		Translations: translator.Catalog(),
	})

	data := shellTemplateData{
		Locale:                 translator.Locale(),
		PageTitle:              fmt.Sprintf("%s - %s", brandLabel, translator.T(requestedPage)),
		BrandLabel:             brandLabel,
		ActivePage:             requestedPage,
		Navigation:             navigation,
		LogoutPath:             "/logout",
		LogoutLabel:            translator.T(translationKeyLogout),
		SidebarElementID:       sidebarElementID,
		PageContainerElementID: pageContainerElementID,
		ClientConfigElementID:  clientConfigElementID,
		ClientConfigJSON:       configJSON,
		UnknownPage:            !knownPage,
		UnknownPageMessage:     fmt.Sprintf("%s: %s", translator.T(translationKeyPageNotFound), requestedPage),
	}
	h.render(context, h.shellTemplate, data)
}

// RedirectToDefaultPage sends authenticated root requests to the dashboard page.
func (h *WebHandlers) RedirectToDefaultPage(context *gin.Context) {
	context.Redirect(http.StatusFound, defaultPageRedirectPath)
}

func (h *WebHandlers) clientConfigJSON(config shellClientConfig) template.JS {
	encoded, marshalErr := json.Marshal(config)
	if marshalErr != nil {
		h.logger.Warn("marshal_client_config", zap.Error(marshalErr))
		return template.JS("{}")
	}
	return template.JS(encoded)
}

func (h *WebHandlers) render(context *gin.Context, compiled *template.Template, data any) {
	context.Writer.Header().Set("Content-Type", htmlContentType)
	context.Status(http.StatusOK)
	if renderErr := compiled.Execute(context.Writer, data); renderErr != nil {
		h.logger.Warn("render_template", zap.Error(renderErr))
	}
}
