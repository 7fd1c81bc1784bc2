package server

import (
	"net/http"

	"github.com/jrsteele09/go-module-portal/modules"
)

// DashboardHandler renders the landing page of a logged in user
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, "dashboard.html", http.StatusOK, PageData{Title: "Dashboard"})
	}
}

// ModulePageHandler renders the page of one gated module
func (s *Server) ModulePageHandler(m modules.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, m.Template, http.StatusOK, PageData{Title: m.Title})
	}
}
