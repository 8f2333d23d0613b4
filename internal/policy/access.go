package policy

import (
	apperrors "noticeboard/internal/errors"
	"noticeboard/internal/model"
)

// IsAdmin reports whether user is present and holds the admin role.
func IsAdmin(user *model.User) bool {
	return user != nil && user.Role == model.RoleAdmin
}

// IsOwner reports whether user is present and wrote post.
func IsOwner(user *model.User, post *model.Post) bool {
	return user != nil && post != nil && post.AuthorID == user.ID
}

// CanModify reports whether user may edit or delete post.
func CanModify(user *model.User, post *model.Post) bool {
	return IsAdmin(user) || IsOwner(user, post)
}

// CheckDetailAccess decides whether user may open post. The checks run in a
// fixed order and the first match wins.
func CheckDetailAccess(user *model.User, post *model.Post) error {
	switch {
	case Classify(post.Category) == ClassDetailOnly:
		return nil
	case user == nil:
		return apperrors.ErrUnauthorized
	case IsAdmin(user):
		return nil
	case IsOwner(user, post):
		return nil
	default:
		return apperrors.ErrForbidden
	}
}
