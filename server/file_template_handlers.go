package server

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/jrsteele09/go-module-portal/auth"
	"github.com/jrsteele09/go-module-portal/modules"
	"github.com/jrsteele09/go-module-portal/sessions"
	"github.com/jrsteele09/go-module-portal/users"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	contentTypeHTML = "text/html; charset=utf-8"
	layoutTemplate  = "layout.html"
)

// Pages rendered inside the layout, besides the module pages
var pageTemplates = []string{"login.html", "dashboard.html", "admin.html", "edit_user.html"}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a page together with the shared layout
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(layoutTemplate).ParseFS(TemplateFilesFS(), layoutTemplate, name)
}

func parsePages() (map[string]*template.Template, error) {
	names := append([]string(nil), pageTemplates...)
	for _, m := range modules.All() {
		names = append(names, m.Template)
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// PageData is handed to every template
type PageData struct {
	AppName string
	Title   string
	Session *sessions.Session
	Flashes []FlashMessage
	Nav     []modules.Module // Modules the session may open

	// Login
	Username string

	// Admin screens
	Users      []*users.User
	EditUser   *users.User
	AllModules []modules.Module
	Roles      []users.RoleType
}

// render executes a page and writes it with status. Pending flash messages
// are consumed.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, status int, data PageData) {
	tmpl, ok := s.pages[page]
	if !ok {
		log.Error().Str("page", page).Msg("Unknown page template")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}

	session := SessionFromContext(r.Context())
	data.AppName = s.config.GetAppName()
	data.Session = session
	data.Nav = permittedModules(session)
	data.Flashes = append(s.popFlashes(w, r), data.Flashes...)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		log.Err(err).Str("page", page).Msg("Failed to render template")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// permittedModules lists the modules session may open, in table order
func permittedModules(session *sessions.Session) []modules.Module {
	if session == nil {
		return nil
	}
	var permitted []modules.Module
	for _, m := range modules.All() {
		if auth.Evaluate(session, auth.RequireModule(m.ID)).Allowed {
			permitted = append(permitted, m)
		}
	}
	return permitted
}
