package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desichan/desichan/shared/domain"
	internal_errors "github.com/desichan/desichan/shared/errors"
)

const reportColumns = "id, target_kind, target_id, reporter_id, reason, status, created_at, resolved_at, resolved_by"

func (s *Storage) CreateReport(ctx context.Context, data domain.ReportCreationData) (domain.ReportId, error) {
	var id domain.ReportId
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO reports(target_kind, target_id, reporter_id, reason)
		VALUES($1, $2, $3, $4) RETURNING id`,
		string(data.Target.Kind), data.Target.Id, data.Reporter, data.Reason,
	).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert report: %w", err)
	}
	return id, nil
}

func (s *Storage) Reports(ctx context.Context, status *domain.ReportStatus) ([]*domain.Report, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status == nil {
		rows, err = s.db.QueryContext(ctx, "SELECT "+reportColumns+" FROM reports ORDER BY created_at DESC, id DESC")
	} else {
		rows, err = s.db.QueryContext(ctx,
			"SELECT "+reportColumns+" FROM reports WHERE status = $1 ORDER BY created_at DESC, id DESC",
			string(*status))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.Report, 0)
	for rows.Next() {
		var (
			r          domain.Report
			kind       string
			st         string
			resolvedAt sql.NullTime
			resolvedBy sql.NullInt64
		)
		if err := rows.Scan(&r.Id, &kind, &r.Target.Id, &r.ReporterId, &r.Reason, &st, &r.CreatedAt, &resolvedAt, &resolvedBy); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		r.Target.Kind = domain.ContentKind(kind)
		r.Status = domain.ReportStatus(st)
		r.CreatedAt = r.CreatedAt.UTC()
		if resolvedAt.Valid {
			t := resolvedAt.Time.UTC()
			r.ResolvedAt = &t
		}
		r.ResolvedBy = idPtr(resolvedBy)
		reports = append(reports, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}

// ResolveReport only touches pending rows, so resolving twice keeps the first resolver and timestamp.
// changed is false when the report was already resolved.
func (s *Storage) ResolveReport(ctx context.Context, id domain.ReportId, by domain.UserId) (changed bool, err error) {
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE reports SET status = 'resolved', resolved_at = NOW(), resolved_by = $2 WHERE id = $1 AND status = 'pending'",
			id, by)
		if err != nil {
			return fmt.Errorf("failed to resolve report: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows: %w", err)
		}
		if n > 0 {
			changed = true
			return nil
		}

		var exists bool
		if err := tx.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM reports WHERE id = $1)", id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check report: %w", err)
		}
		if !exists {
			return internal_errors.NotFound("Report not found")
		}
		return nil
	})
	return changed, err
}
