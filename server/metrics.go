package server

import (
	"net/http"

	"github.com/jrsteele09/go-module-portal/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeError   = "error"
	outcomeAllow   = "allow"
	outcomeDeny    = "deny"

	operationCreate = "create"
	operationUpdate = "update"
	operationDelete = "delete"
)

// portalMetrics lives on its own registry so several servers (tests) can
// coexist in one process.
type portalMetrics struct {
	registry       *prometheus.Registry
	loginAttempts  *prometheus.CounterVec
	authzDecisions *prometheus.CounterVec
	accountChanges *prometheus.CounterVec
}

func newPortalMetrics() *portalMetrics {
	m := &portalMetrics{
		registry: prometheus.NewRegistry(),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_login_attempts_total",
			Help: "Login form submissions by outcome.",
		}, []string{"outcome"}),
		authzDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_authorization_decisions_total",
			Help: "Authorization decisions by requirement kind and outcome.",
		}, []string{"requirement", "outcome"}),
		accountChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_account_changes_total",
			Help: "Successful account changes made from the admin screens.",
		}, []string{"operation"}),
	}
	m.registry.MustRegister(m.loginAttempts, m.authzDecisions, m.accountChanges)
	return m
}

func (m *portalMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *portalMetrics) loginAttempt(outcome string) {
	m.loginAttempts.WithLabelValues(outcome).Inc()
}

func (m *portalMetrics) authorizationDecision(req auth.Requirement, d auth.Decision) {
	outcome := outcomeAllow
	if !d.Allowed {
		outcome = outcomeDeny
	}
	m.authzDecisions.WithLabelValues(req.Kind.String(), outcome).Inc()
}

func (m *portalMetrics) accountChange(operation string) {
	m.accountChanges.WithLabelValues(operation).Inc()
}
