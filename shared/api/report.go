package api

import "github.com/desichan/desichan/shared/domain"

type CreateReportRequest struct {
	ContentId   int64              `json:"content_id" validate:"required"`
	ContentType domain.ContentKind `json:"content_type" validate:"required,oneof=Post Comment"`
	Reason      string             `json:"reason" validate:"required"`
}

type ReportListResponse struct {
	Reports []*domain.ReportView `json:"reports"`
}
