package service

import (
	"context"

	"github.com/desichan/desichan/backend/internal/moderation"
	"github.com/desichan/desichan/backend/internal/utils"
	"github.com/desichan/desichan/shared/domain"
	"github.com/desichan/desichan/shared/errors"
	"github.com/desichan/desichan/shared/logger"
)

type ReportService interface {
	File(ctx context.Context, data domain.ReportCreationData) (domain.ReportId, error)
	Pending(ctx context.Context, actor domain.UserId) ([]*domain.ReportView, error)
	// List returns reports with the given status, or all reports when status is nil.
	List(ctx context.Context, actor domain.UserId, status *domain.ReportStatus) ([]*domain.ReportView, error)
	Resolve(ctx context.Context, actor domain.UserId, id domain.ReportId) error
}

type Report struct {
	storage   ReportStorage
	validator ReportValidator
	posts     PostLookup
	comments  CommentLookup
	users     UserDirectory
}

type ReportStorage interface {
	CreateReport(ctx context.Context, data domain.ReportCreationData) (domain.ReportId, error)
	// Reports lists newest first; nil status means every report.
	Reports(ctx context.Context, status *domain.ReportStatus) ([]*domain.Report, error)
	// ResolveReport moves a pending report to resolved and reports whether it did. Already resolved
	// reports are left untouched without error; NotFound when the id does not exist.
	ResolveReport(ctx context.Context, id domain.ReportId, by domain.UserId) (bool, error)
}

type CommentLookup interface {
	GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error)
}

type ReportValidator interface {
	Reason(reason string) error
}

func NewReport(storage ReportStorage, validator ReportValidator, posts PostLookup, comments CommentLookup, users UserDirectory) *Report {
	return &Report{
		storage:   storage,
		validator: validator,
		posts:     posts,
		comments:  comments,
		users:     users,
	}
}

// File records a pending report. The target is not checked: reports may outlive their content anyway.
func (r *Report) File(ctx context.Context, data domain.ReportCreationData) (domain.ReportId, error) {
	if !data.Target.Kind.Valid() {
		return 0, errors.Validation("Content type must be Post or Comment")
	}
	if data.Target.Id <= 0 {
		return 0, errors.Validation("Content id is required")
	}
	data.Reason = utils.SanitizeText(data.Reason)
	if err := r.validator.Reason(data.Reason); err != nil {
		return 0, err
	}
	if _, err := requireActor(ctx, r.users, data.Reporter); err != nil {
		return 0, err
	}

	id, err := r.storage.CreateReport(ctx, data)
	if err != nil {
		return 0, err
	}

	reportsFiled.Inc()
	logger.Log.Info("report filed", "report_id", id, "kind", data.Target.Kind, "target", data.Target.Id, "reporter", data.Reporter)
	return id, nil
}

func (r *Report) Pending(ctx context.Context, actorId domain.UserId) ([]*domain.ReportView, error) {
	status := domain.ReportPending
	return r.List(ctx, actorId, &status)
}

func (r *Report) List(ctx context.Context, actorId domain.UserId, status *domain.ReportStatus) ([]*domain.ReportView, error) {
	if err := r.authorize(ctx, actorId, "list_reports"); err != nil {
		return nil, err
	}
	if status != nil && !status.Valid() {
		return nil, errors.Validation("Status must be pending or resolved")
	}

	reports, err := r.storage.Reports(ctx, status)
	if err != nil {
		return nil, err
	}
	views := make([]*domain.ReportView, 0, len(reports))
	for _, report := range reports {
		view, err := r.view(ctx, report)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (r *Report) Resolve(ctx context.Context, actorId domain.UserId, id domain.ReportId) error {
	if err := r.authorize(ctx, actorId, "resolve_report"); err != nil {
		return err
	}
	changed, err := r.storage.ResolveReport(ctx, id, actorId)
	if err != nil {
		return err
	}
	if !changed {
		logger.Log.Debug("report already resolved", "report_id", id, "actor", actorId)
		return nil
	}
	reportsResolved.Inc()
	logger.Log.Info("report resolved", "report_id", id, "actor", actorId)
	return nil
}

func (r *Report) authorize(ctx context.Context, actorId domain.UserId, action string) error {
	actor, err := resolveActor(ctx, r.users, actorId)
	if err != nil {
		return err
	}
	if !moderation.CanResolve(actor) {
		moderationDenied.WithLabelValues(action).Inc()
		return errors.Authorization("Access denied. Only for admin")
	}
	return nil
}

// view resolves the reporter name and the link to the reported content at read time.
func (r *Report) view(ctx context.Context, report *domain.Report) (*domain.ReportView, error) {
	view := &domain.ReportView{Report: *report, ReporterName: domain.UnknownReporterName}

	reporter, err := resolveActor(ctx, r.users, report.ReporterId)
	if err != nil {
		return nil, err
	}
	if reporter != nil {
		view.ReporterName = reporter.Username
	}

	switch report.Target.Kind {
	case domain.ContentPost:
		post, err := r.posts.GetPost(ctx, report.Target.Id)
		if err != nil && !errors.IsNotFound(err) {
			return nil, err
		}
		if post != nil {
			view.Link = domain.PostLink(post.Id)
			view.TargetExists = true
		}
	case domain.ContentComment:
		comment, err := r.comments.GetComment(ctx, report.Target.Id)
		if err != nil && !errors.IsNotFound(err) {
			return nil, err
		}
		if comment != nil {
			view.Link = domain.CommentLink(comment.PostId, comment.Id)
			view.TargetExists = true
		}
	}
	return view, nil
}
