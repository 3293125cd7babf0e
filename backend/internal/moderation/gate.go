// Package moderation holds the owner-or-admin rules for destructive operations.
package moderation

import "github.com/desichan/desichan/shared/domain"

// CanDelete reports whether actor may delete content written by author.
// actor is nil when the acting identity could not be resolved; author is nil when the content has no recorded author.
// An unresolved actor is always denied, even against authorless content.
func CanDelete(actor *domain.User, author *domain.UserId) bool {
	if actor == nil {
		return false
	}
	if actor.Admin {
		return true
	}
	return author != nil && *author == actor.Id
}

// CanResolve reports whether actor may resolve reports. Only admins may.
func CanResolve(actor *domain.User) bool {
	return CanModerate(actor)
}

// CanModerate guards the moderator views: the report queue and the site-wide content listings.
func CanModerate(actor *domain.User) bool {
	return actor != nil && actor.Admin
}
