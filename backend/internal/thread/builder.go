// Package thread rebuilds the reply forest of a post from its flat comment list.
package thread

import (
	"sort"

	"github.com/desichan/desichan/shared/domain"
)

// Build turns the comments of one post into a forest and its depth-first render order.
//
// A comment is attached under its parent only when the parent is part of the same input;
// a null, dangling or foreign parent makes it a root. Roots and siblings keep creation order
// (ties by input position). Build never fails and does not modify its input.
func Build(postId domain.PostId, comments []*domain.Comment) *domain.Thread {
	sorted := make([]*domain.Comment, 0, len(comments))
	for _, c := range comments {
		if c != nil {
			sorted = append(sorted, c)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	nodes := make([]*domain.ThreadNode, len(sorted))
	index := make(map[domain.CommentId]int, len(sorted))
	for i, c := range sorted {
		nodes[i] = &domain.ThreadNode{Comment: c, Replies: []*domain.ThreadNode{}}
		if _, dup := index[c.Id]; !dup {
			index[c.Id] = i
		}
	}

	parentOf := make([]int, len(sorted))
	var roots []*domain.ThreadNode
	for i, c := range sorted {
		parentOf[i] = -1
		if c.ParentId != nil && *c.ParentId != c.Id {
			if p, ok := index[*c.ParentId]; ok && p != i {
				parentOf[i] = p
				nodes[p].Replies = append(nodes[p].Replies, nodes[i])
				continue
			}
		}
		roots = append(roots, nodes[i])
	}

	visited := make([]bool, len(sorted))
	position := make(map[*domain.ThreadNode]int, len(sorted))
	for i, n := range nodes {
		position[n] = i
	}
	order := make([]domain.ThreadEntry, 0, len(sorted))
	order = walk(roots, visited, position, order)

	// Parent links that loop back on themselves never reach a root. Corrupted data only,
	// but rendering must still show every comment: cut the loop and promote the node.
	promoted := false
	for i := range sorted {
		if visited[i] {
			continue
		}
		if p := parentOf[i]; p >= 0 {
			nodes[p].Replies = removeNode(nodes[p].Replies, nodes[i])
			parentOf[i] = -1
		}
		roots = insertRoot(roots, nodes[i], position)
		walk([]*domain.ThreadNode{nodes[i]}, visited, position, nil)
		promoted = true
	}
	if promoted {
		clear(visited)
		order = walk(roots, visited, position, order[:0])
	}

	if roots == nil {
		roots = []*domain.ThreadNode{}
	}
	return &domain.Thread{PostId: postId, Roots: roots, Order: order}
}

// Flatten lists the comments of a forest in render order.
func Flatten(roots []*domain.ThreadNode) []*domain.Comment {
	entries := walk(roots, nil, nil, nil)
	comments := make([]*domain.Comment, len(entries))
	for i, e := range entries {
		comments[i] = e.Comment
	}
	return comments
}

type frame struct {
	node   *domain.ThreadNode
	depth  int
	parent *domain.CommentId
}

// walk is a pre-order traversal with an explicit stack, so deep reply chains cannot exhaust the call stack.
// visited and position may be nil when the forest is known to be acyclic.
func walk(roots []*domain.ThreadNode, visited []bool, position map[*domain.ThreadNode]int, out []domain.ThreadEntry) []domain.ThreadEntry {
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{roots[i], 0, nil})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited != nil {
			i := position[f.node]
			if visited[i] {
				continue
			}
			visited[i] = true
		}
		out = append(out, domain.ThreadEntry{Comment: f.node.Comment, Depth: f.depth, Parent: f.parent})
		id := f.node.Comment.Id
		for i := len(f.node.Replies) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.Replies[i], f.depth + 1, &id})
		}
	}
	return out
}

func removeNode(list []*domain.ThreadNode, n *domain.ThreadNode) []*domain.ThreadNode {
	for i, x := range list {
		if x == n {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// insertRoot keeps roots in input order.
func insertRoot(roots []*domain.ThreadNode, n *domain.ThreadNode, position map[*domain.ThreadNode]int) []*domain.ThreadNode {
	at := sort.Search(len(roots), func(i int) bool { return position[roots[i]] > position[n] })
	roots = append(roots, nil)
	copy(roots[at+1:], roots[at:])
	roots[at] = n
	return roots
}
