package service

import (
	"github.com/desichan/desichan/shared/domain"
	"github.com/desichan/desichan/shared/errors"
)

// to mock service in tests
type BoardService interface {
	List() []domain.Board
	Get(slug domain.BoardSlug) (*domain.Board, error)
	Exists(slug domain.BoardSlug) bool
}

// Board is the static boards catalog loaded from config.
type Board struct {
	boards []domain.Board
	bySlug map[domain.BoardSlug]int
}

func NewBoard(boards []domain.Board) *Board {
	b := &Board{
		boards: append([]domain.Board(nil), boards...),
		bySlug: make(map[domain.BoardSlug]int, len(boards)),
	}
	for i, board := range b.boards {
		if _, dup := b.bySlug[board.Slug]; !dup {
			b.bySlug[board.Slug] = i
		}
	}
	return b
}

func (b *Board) List() []domain.Board {
	return append([]domain.Board(nil), b.boards...)
}

func (b *Board) Get(slug domain.BoardSlug) (*domain.Board, error) {
	i, ok := b.bySlug[slug]
	if !ok {
		return nil, errors.NotFound("Board not found")
	}
	board := b.boards[i]
	return &board, nil
}

func (b *Board) Exists(slug domain.BoardSlug) bool {
	_, ok := b.bySlug[slug]
	return ok
}
