package domain

import (
	"fmt"
	"time"
)

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	Title   PostTitle
	Content Text
	Board   BoardSlug
	Author  UserId
	Media   *Media
}

type Post struct {
	Id       PostId    `json:"id"`
	Title    PostTitle `json:"title"`
	Content  Text      `json:"content"`
	Media    *Media    `json:"media,omitempty"`
	Board    BoardSlug `json:"board"`
	AuthorId *UserId   `json:"author_id"`
	// AuthorName is resolved at read time; AnonymousName when the author record is gone.
	AuthorName Username  `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type PostPage struct {
	Board      Board   `json:"board"`
	Posts      []*Post `json:"posts"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
}

// for debug
func (p *Post) String() string {
	return fmt.Sprintf("[id:%d, board:%s, title:%s, author:%v, created:%s]", p.Id, p.Board, p.Title, p.AuthorName, p.CreatedAt.Format(time.StampMilli))
}
