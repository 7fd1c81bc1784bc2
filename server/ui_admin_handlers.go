package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-module-portal/accounts"
	"github.com/jrsteele09/go-module-portal/auth"
	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/jrsteele09/go-module-portal/modules"
	"github.com/jrsteele09/go-module-portal/users"
	"github.com/rs/zerolog/log"
)

const (
	userNotFoundMsg = "User not found."
	userDeletedMsg  = "User deleted successfully."
)

var roles = []users.RoleType{users.RoleAdmin, users.RoleStandard}

// AdminUsersListHandler lists all users with the create form
func (s *Server) AdminUsersListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.accounts.List(r.Context(), SessionFromContext(r.Context()))
		if err != nil {
			s.handleAccountError(w, r, err, RouteAdmin)
			return
		}
		s.render(w, r, "admin.html", http.StatusOK, PageData{
			Title:      "Admin",
			Users:      list,
			AllModules: modules.All(),
			Roles:      roles,
		})
	}
}

// AdminCreateUserHandler processes the create user form (POST /admin)
func (s *Server) AdminCreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := accountForm(w, r)
		if !ok {
			return
		}

		if _, err := s.accounts.Create(r.Context(), SessionFromContext(r.Context()), in); err != nil {
			s.handleAccountError(w, r, err, RouteAdmin)
			return
		}

		s.metrics.accountChange(operationCreate)
		log.Info().Str("username", in.Username).Str("role", string(in.Role)).Msg("User created")
		s.flash(w, r, FlashSuccess, fmt.Sprintf("User '%s' created successfully!", in.Username))
		redirectSuccess(w, r, RouteAdmin)
	}
}

// AdminEditUserPageHandler shows the edit form (GET /edit_user/{key})
func (s *Server) AdminEditUserPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userKey(w, r)
		if !ok {
			return
		}

		user, err := s.accounts.Get(r.Context(), SessionFromContext(r.Context()), id)
		if err != nil {
			s.handleAccountError(w, r, err, RouteAdmin)
			return
		}
		s.render(w, r, "edit_user.html", http.StatusOK, PageData{
			Title:      "Edit user",
			EditUser:   user,
			AllModules: modules.All(),
			Roles:      roles,
		})
	}
}

// AdminEditUserSubmitHandler applies the edit form (POST /edit_user/{key})
func (s *Server) AdminEditUserSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userKey(w, r)
		if !ok {
			return
		}
		in, ok := accountForm(w, r)
		if !ok {
			return
		}

		if err := s.accounts.Update(r.Context(), SessionFromContext(r.Context()), id, in); err != nil {
			s.handleAccountError(w, r, err, editUserPath(id))
			return
		}

		s.metrics.accountChange(operationUpdate)
		log.Info().Int64("user_id", id).Str("username", in.Username).Msg("User updated")
		s.flash(w, r, FlashSuccess, fmt.Sprintf("User '%s' updated successfully!", in.Username))
		redirectSuccess(w, r, RouteAdmin)
	}
}

// AdminDeleteUserHandler deletes a user (POST /delete_user/{key})
func (s *Server) AdminDeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userKey(w, r)
		if !ok {
			return
		}

		if err := s.accounts.Delete(r.Context(), SessionFromContext(r.Context()), id); err != nil {
			s.handleAccountError(w, r, err, RouteAdmin)
			return
		}

		s.metrics.accountChange(operationDelete)
		log.Info().Int64("user_id", id).Msg("User deleted")
		s.flash(w, r, FlashSuccess, userDeletedMsg)
		redirectSuccess(w, r, RouteAdmin)
	}
}

// handleAccountError turns an account service error into a flash and a
// redirect. Anything unexpected is a 500.
func (s *Server) handleAccountError(w http.ResponseWriter, r *http.Request, err error, back string) {
	var validationErr *apperrors.ValidationError
	switch {
	case apperrors.As(err, &validationErr):
		s.flash(w, r, FlashDanger, validationErr.Message)
		redirectSuccess(w, r, back)
	case apperrors.Is(err, apperrors.ErrUserNotFound):
		s.flash(w, r, FlashDanger, userNotFoundMsg)
		redirectSuccess(w, r, RouteAdmin)
	case apperrors.Is(err, apperrors.ErrAccessDenied), apperrors.Is(err, apperrors.ErrNotAuthenticated):
		s.flash(w, r, FlashDanger, auth.AdminAccessDeniedMsg)
		redirectSuccess(w, r, RouteDashboard)
	default:
		log.Err(err).Str("path", r.URL.Path).Msg("Account operation failed")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
	}
}

// accountForm reads the create/edit form fields
func accountForm(w http.ResponseWriter, r *http.Request) (accounts.AccountInput, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return accounts.AccountInput{}, false
	}
	return accounts.AccountInput{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Role:     users.RoleType(r.PostFormValue("role")),
		Modules:  r.PostForm["modules"],
	}, true
}

// userKey parses the {key} path segment; anything but an integer is a 404
func userKey(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("key"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

func editUserPath(id int64) string {
	return fmt.Sprintf("/edit_user/%d", id)
}
