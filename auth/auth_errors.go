package auth

// Messages shown to the user. Credential failures never say which field was wrong.
const (
	InvalidCredentialsMsg = "Invalid username or password"
	AdminAccessDeniedMsg  = "Access denied. You must be an admin to view this page."
	ModuleAccessDeniedMsg = "You do not have access to this module."
)
