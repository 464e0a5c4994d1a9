package domain

import "errors"

// Sentinel errors returned by store operations. Every public operation fails
// with exactly one of these; callers translate them for their surface.
var (
	ErrUnauthorized       = errors.New("actor lacks required permission")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrArticleNotFound    = errors.New("article not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrTagExists          = errors.New("tag already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrProtectedRole      = errors.New("role is protected and cannot be removed")
	ErrValidation         = errors.New("validation failed")
)

// IsNotFound reports whether err is any of the per-collection not-found
// sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrArticleNotFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrTagNotFound) ||
		errors.Is(err, ErrRoleNotFound)
}
