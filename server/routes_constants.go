package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex      = "/{$}"
	RouteLogin      = "/login"
	RouteLogout     = "/logout"
	RouteDashboard  = "/dashboard"
	RouteAdmin      = "/admin"
	RouteEditUser   = "/edit_user/{key}"
	RouteDeleteUser = "/delete_user/{key}"
	RouteMetrics    = "/metrics"

	// Static Asset Routes (patterns)
	RouteStatic = "/static/{file...}"
)
