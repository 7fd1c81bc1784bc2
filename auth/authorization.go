package auth

import (
	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/jrsteele09/go-module-portal/sessions"
)

// RequirementKind is the shape of an access requirement attached to a route.
type RequirementKind int

const (
	AuthenticatedOnly RequirementKind = iota // Any logged in session
	ModuleGated                              // Admin, or the module is in the session's set
	AdminOnly                                // Admin role only
)

func (k RequirementKind) String() string {
	switch k {
	case AuthenticatedOnly:
		return "authenticated"
	case ModuleGated:
		return "module"
	case AdminOnly:
		return "admin"
	default:
		return "unknown"
	}
}

// Requirement is what a resource demands of the requesting session.
type Requirement struct {
	Kind   RequirementKind
	Module string // Only set for ModuleGated
}

func RequireAuthenticated() Requirement {
	return Requirement{Kind: AuthenticatedOnly}
}

func RequireModule(moduleID string) Requirement {
	return Requirement{Kind: ModuleGated, Module: moduleID}
}

func RequireAdmin() Requirement {
	return Requirement{Kind: AdminOnly}
}

// RedirectTarget names where a denied request is sent.
type RedirectTarget int

const (
	TargetNone RedirectTarget = iota
	TargetLogin
	TargetDashboard
)

// Decision is the outcome of Evaluate. A denied decision with an empty
// Message is a silent redirect.
type Decision struct {
	Allowed  bool
	Redirect RedirectTarget
	Message  string
	Reason   error
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(target RedirectTarget, message string, reason error) Decision {
	return Decision{Redirect: target, Message: message, Reason: reason}
}

// Evaluate decides whether session satisfies req. A nil session is an
// anonymous visitor. Anonymous visitors to admin pages get the same message
// and dashboard redirect as logged in non-admins.
func Evaluate(session *sessions.Session, req Requirement) Decision {
	if session == nil {
		if req.Kind == AdminOnly {
			return deny(TargetDashboard, AdminAccessDeniedMsg, apperrors.ErrAccessDenied)
		}
		return deny(TargetLogin, "", apperrors.ErrNotAuthenticated)
	}

	switch req.Kind {
	case AuthenticatedOnly:
		return allow()
	case ModuleGated:
		if session.IsAdmin() || session.HasModule(req.Module) {
			return allow()
		}
		return deny(TargetDashboard, ModuleAccessDeniedMsg, apperrors.ErrAccessDenied)
	case AdminOnly:
		if session.IsAdmin() {
			return allow()
		}
		return deny(TargetDashboard, AdminAccessDeniedMsg, apperrors.ErrAccessDenied)
	default:
		return deny(TargetDashboard, AdminAccessDeniedMsg, apperrors.ErrAccessDenied)
	}
}
