package domain

type (
	UserId   = int64
	Username = string
	Password = string

	BoardSlug = string

	PostId    = int64
	PostTitle = string

	CommentId = int64
	Text      = string

	ReportId = int64
)

// AnonymousName is shown for authors whose user record cannot be resolved.
const AnonymousName = "Anonymous"

// UnknownReporterName is shown for reporters whose user record cannot be resolved.
const UnknownReporterName = "Unknown"
