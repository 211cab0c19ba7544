package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/freya-systems/freya-dashboard/internal/access"
	"github.com/freya-systems/freya-dashboard/internal/i18n"
)

// NavigationEntry is one sidebar item the session's role may open.
type NavigationEntry struct {
	Page      string `json:"page"`
	Label     string `json:"label"`
	IconClass string `json:"iconClass"`
	Path      string `json:"path"`
}

// NavigationHandlers serves the role-gated sidebar contents.
type NavigationHandlers struct {
	sessions *SessionManager
}

// NewNavigationHandlers builds the navigation handler set.
func NewNavigationHandlers(sessions *SessionManager) *NavigationHandlers {
	return &NavigationHandlers{sessions: sessions}
}

// List responds with the ordered navigation entries for the session role.
// Pages outside the role's allow-list are absent from the payload entirely.
func (h *NavigationHandlers) List(context *gin.Context) {
	current := CurrentSession(context)
	translator := i18n.NewTranslator(h.sessions.Locale(context))

	allowedPages := access.AllowedPages(current.Role)
	entries := make([]NavigationEntry, 0, len(allowedPages))
	for _, page := range allowedPages {
		entries = append(entries, NavigationEntry{
			Page:      page,
			Label:     translator.T(page),
			IconClass: access.IconClass(page),
			Path:      "/app/" + page,
		})
	}
	context.JSON(200, gin.H{"entries": entries})
}
