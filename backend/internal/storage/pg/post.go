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

// postSelect reads posts with the author name joined in; p is either the posts table or a CTE of the same shape.
const postSelect = `
	SELECT p.id, p.title, p.content, p.media_url, p.media_kind, p.board, p.author_id, u.username, p.created_at
	FROM %s p LEFT JOIN users u ON u.id = p.author_id`

func postQuery(from, rest string) string {
	return fmt.Sprintf(postSelect, from) + " " + rest
}

func (s *Storage) CreatePost(ctx context.Context, data domain.PostCreationData) (domain.PostId, error) {
	url, kind := mediaColumns(data.Media)
	var id domain.PostId
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts(title, content, media_url, media_kind, board, author_id)
		VALUES($1, $2, $3, $4, $5, $6) RETURNING id`,
		data.Title, data.Content, url, kind, data.Board, data.Author,
	).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

func (s *Storage) GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	return scanPostRow(s.db.QueryRowContext(ctx, postQuery("posts", "WHERE p.id = $1"), id))
}

// DeletePost deletes and returns the row in one statement, so of two concurrent deletes only one sees it.
func (s *Storage) DeletePost(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	query := "WITH deleted AS (DELETE FROM posts WHERE id = $1 RETURNING *) " + postQuery("deleted", "")
	return scanPostRow(s.db.QueryRowContext(ctx, query, id))
}

func (s *Storage) BoardPosts(ctx context.Context, slug domain.BoardSlug, limit, offset int) ([]*domain.Post, int, error) {
	var posts []*domain.Post
	var total int
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts WHERE board = $1", slug).Scan(&total); err != nil {
			return fmt.Errorf("failed to count board posts: %w", err)
		}
		var err error
		posts, err = queryPosts(ctx, tx,
			postQuery("posts", "WHERE p.board = $1 ORDER BY p.created_at DESC, p.id DESC LIMIT $2 OFFSET $3"),
			slug, limit, offset)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// SearchPosts matches query as a literal case-insensitive substring of title or content.
func (s *Storage) SearchPosts(ctx context.Context, query string, limit int) ([]*domain.Post, error) {
	pattern := "%" + sharedpg.EscapeLike(query) + "%"
	return queryPosts(ctx, s.db,
		postQuery("posts", `WHERE p.title ILIKE $1 ESCAPE '\' OR p.content ILIKE $1 ESCAPE '\'
			ORDER BY p.created_at DESC, p.id DESC LIMIT $2`),
		pattern, limit)
}

func (s *Storage) AllPosts(ctx context.Context) ([]*domain.Post, error) {
	return queryPosts(ctx, s.db, postQuery("posts", "ORDER BY p.created_at DESC, p.id DESC"))
}

func (s *Storage) PostsByAuthor(ctx context.Context, userId domain.UserId, limit int) ([]*domain.Post, error) {
	return queryPosts(ctx, s.db,
		postQuery("posts", "WHERE p.author_id = $1 ORDER BY p.created_at DESC, p.id DESC LIMIT $2"),
		userId, limit)
}

func queryPosts(ctx context.Context, q sharedpg.Querier, query string, args ...any) ([]*domain.Post, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

func scanPostRow(row *sql.Row) (*domain.Post, error) {
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Post not found")
		}
		return nil, fmt.Errorf("failed to query post: %w", err)
	}
	return post, nil
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var (
		p         domain.Post
		mediaURL  sql.NullString
		mediaKind sql.NullString
		authorId  sql.NullInt64
		author    sql.NullString
	)
	if err := row.Scan(&p.Id, &p.Title, &p.Content, &mediaURL, &mediaKind, &p.Board, &authorId, &author, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Media = mediaFrom(mediaURL, mediaKind)
	p.AuthorId = idPtr(authorId)
	p.AuthorName = authorName(author)
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func mediaColumns(m *domain.Media) (url, kind sql.NullString) {
	if m == nil {
		return
	}
	return sql.NullString{String: m.URL, Valid: true}, sql.NullString{String: string(m.Kind), Valid: true}
}

func mediaFrom(url, kind sql.NullString) *domain.Media {
	if !url.Valid {
		return nil
	}
	return &domain.Media{URL: url.String, Kind: domain.MediaKind(kind.String)}
}

func authorName(name sql.NullString) domain.Username {
	if !name.Valid {
		return domain.AnonymousName
	}
	return name.String
}
