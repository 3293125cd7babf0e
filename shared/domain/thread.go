package domain

// ThreadNode is one comment with its direct replies in creation order.
type ThreadNode struct {
	Comment *Comment      `json:"comment"`
	Replies []*ThreadNode `json:"replies"`
}

// ThreadEntry is one step of the depth-first render order.
type ThreadEntry struct {
	Comment *Comment `json:"comment"`
	Depth   int      `json:"depth"`
	// Parent is set only when the comment is attached under another comment of the thread.
	Parent *CommentId `json:"parent,omitempty"`
}

// Thread is the comment forest of one post.
type Thread struct {
	PostId PostId        `json:"post_id"`
	Roots  []*ThreadNode `json:"roots"`
	Order  []ThreadEntry `json:"order"`
}
