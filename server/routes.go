package server

import (
	"net/http"

	"github.com/jrsteele09/go-module-portal/auth"
	"github.com/jrsteele09/go-module-portal/modules"
	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteIndex, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare(s.LoadSession)...))

	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.HTMLMiddleWare(s.LoadSession, s.Require(auth.RequireAuthenticated()))...))

	// Admin routes
	adminOnly := s.HTMLMiddleWare(s.LoadSession, s.Require(auth.RequireAdmin()))
	s.RegisterRouteHandler("GET "+RouteAdmin, ChainMiddleware(s.AdminUsersListHandler(), adminOnly...))
	s.RegisterRouteHandler("POST "+RouteAdmin, ChainMiddleware(s.AdminCreateUserHandler(), adminOnly...))
	s.RegisterRouteHandler("GET "+RouteEditUser, ChainMiddleware(s.AdminEditUserPageHandler(), adminOnly...))
	s.RegisterRouteHandler("POST "+RouteEditUser, ChainMiddleware(s.AdminEditUserSubmitHandler(), adminOnly...))
	s.RegisterRouteHandler("POST "+RouteDeleteUser, ChainMiddleware(s.AdminDeleteUserHandler(), adminOnly...))

	// Module pages, one route per entry in the module table
	for _, m := range modules.All() {
		s.RegisterRouteHandler("GET /"+m.ID, ChainMiddleware(s.ModulePageHandler(m), s.HTMLMiddleWare(s.LoadSession, s.Require(auth.RequireModule(m.ID)))...))
	}

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare(s.CacheMiddleware)...))

	if s.config.GetMetricsEnabled() {
		s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())
	}
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := r.PathValue("file")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError("GET", filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(method, path, error string) {
	errorString := Red + error + ResetColor
	log.Warn().Msgf("[%-19s] %s %s", colouredMethod(method), path, errorString)
}
