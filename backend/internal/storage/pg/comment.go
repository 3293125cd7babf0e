package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desichan/desichan/shared/domain"
	internal_errors "github.com/desichan/desichan/shared/errors"
	sharedpg "github.com/desichan/desichan/shared/storage/pg"
)

const commentSelect = `
	SELECT c.id, c.post_id, c.parent_id, c.content, c.media_url, c.media_kind, c.author_id, u.username, c.created_at
	FROM %s c LEFT JOIN users u ON u.id = c.author_id`

func commentQuery(from, rest string) string {
	return fmt.Sprintf(commentSelect, from) + " " + rest
}

func (s *Storage) CreateComment(ctx context.Context, data domain.CommentCreationData) (domain.CommentId, error) {
	url, kind := mediaColumns(data.Media)
	var id domain.CommentId
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments(post_id, parent_id, content, media_url, media_kind, author_id)
		VALUES($1, $2, $3, $4, $5, $6) RETURNING id`,
		data.PostId, nullableId(data.ParentId), data.Content, url, kind, data.Author,
	).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert comment: %w", err)
	}
	return id, nil
}

func (s *Storage) GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	return scanCommentRow(s.db.QueryRowContext(ctx, commentQuery("comments", "WHERE c.id = $1"), id))
}

func (s *Storage) DeleteComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	query := "WITH deleted AS (DELETE FROM comments WHERE id = $1 RETURNING *) " + commentQuery("deleted", "")
	return scanCommentRow(s.db.QueryRowContext(ctx, query, id))
}

// PostComments returns the comments in the order the thread builder expects.
func (s *Storage) PostComments(ctx context.Context, postId domain.PostId) ([]*domain.Comment, error) {
	return queryComments(ctx, s.db, commentQuery("comments", "WHERE c.post_id = $1 ORDER BY c.created_at, c.id"), postId)
}

func (s *Storage) AllComments(ctx context.Context) ([]*domain.Comment, error) {
	return queryComments(ctx, s.db, commentQuery("comments", "ORDER BY c.created_at DESC, c.id DESC"))
}

func (s *Storage) CommentsByAuthor(ctx context.Context, userId domain.UserId, limit int) ([]*domain.Comment, error) {
	return queryComments(ctx, s.db,
		commentQuery("comments", "WHERE c.author_id = $1 ORDER BY c.created_at DESC, c.id DESC LIMIT $2"),
		userId, limit)
}

func queryComments(ctx context.Context, q sharedpg.Querier, query string, args ...any) ([]*domain.Comment, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}

func scanCommentRow(row *sql.Row) (*domain.Comment, error) {
	c, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Comment not found")
		}
		return nil, fmt.Errorf("failed to query comment: %w", err)
	}
	return c, nil
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var (
		c         domain.Comment
		parentId  sql.NullInt64
		mediaURL  sql.NullString
		mediaKind sql.NullString
		authorId  sql.NullInt64
		author    sql.NullString
	)
	if err := row.Scan(&c.Id, &c.PostId, &parentId, &c.Content, &mediaURL, &mediaKind, &authorId, &author, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.ParentId = idPtr(parentId)
	c.Media = mediaFrom(mediaURL, mediaKind)
	c.AuthorId = idPtr(authorId)
	c.AuthorName = authorName(author)
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}
