package domain

import (
	"fmt"
	"time"
)

type ContentKind string

const (
	ContentPost    ContentKind = "Post"
	ContentComment ContentKind = "Comment"
)

func (k ContentKind) Valid() bool {
	return k == ContentPost || k == ContentComment
}

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
)

func (s ReportStatus) Valid() bool {
	return s == ReportPending || s == ReportResolved
}

// ReportTarget is the reported content: a post or a comment by id. It is not a foreign key,
// the content may be deleted after the report is filed.
type ReportTarget struct {
	Kind ContentKind `json:"kind"`
	Id   int64       `json:"id"`
}

type ReportCreationData struct {
	Target   ReportTarget
	Reporter UserId
	Reason   Text
}

type Report struct {
	Id         ReportId     `json:"id"`
	Target     ReportTarget `json:"target"`
	ReporterId UserId       `json:"reporter_id"`
	Reason     Text         `json:"reason"`
	Status     ReportStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	ResolvedAt *time.Time   `json:"resolved_at,omitempty"`
	ResolvedBy *UserId      `json:"resolved_by,omitempty"`
}

// ReportView is a report resolved for the moderator queue.
type ReportView struct {
	Report
	ReporterName Username `json:"reporter_name"`
	// Link is empty when the target no longer exists.
	Link         string `json:"link"`
	TargetExists bool   `json:"target_exists"`
}

func PostLink(id PostId) string {
	return fmt.Sprintf("/posts/%d", id)
}

func CommentLink(postId PostId, id CommentId) string {
	return fmt.Sprintf("/posts/%d#comment-%d", postId, id)
}
