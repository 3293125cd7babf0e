package domain

import (
	"fmt"
	"time"
)

type CommentCreationData struct {
	PostId   PostId
	ParentId *CommentId
	Author   UserId
	Content  Text
	Media    *Media
}

type Comment struct {
	Id       CommentId  `json:"id"`
	PostId   PostId     `json:"post_id"`
	ParentId *CommentId `json:"parent_id"`
	Content  Text       `json:"content"`
	Media    *Media     `json:"media,omitempty"`
	AuthorId *UserId    `json:"author_id"`
	// AuthorName is resolved at read time; AnonymousName when the author record is gone.
	AuthorName Username  `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// for debug
func (c *Comment) String() string {
	parent := "nil"
	if c.ParentId != nil {
		parent = fmt.Sprint(*c.ParentId)
	}
	return fmt.Sprintf("[id:%d, post:%d, parent:%s, author:%v, created:%s]", c.Id, c.PostId, parent, c.AuthorName, c.CreatedAt.Format(time.StampMilli))
}
