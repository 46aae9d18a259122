package service

import (
	"context"
	"errors"

	"dnd_quest_board/internal/model"
)

var (
	ErrQuestNotFound = errors.New("quest not found")
)

type QuestServiceI interface {
	ListQuests(ctx context.Context) ([]*model.Quest, error)
	GetQuest(ctx context.Context, id int64) (*model.Quest, error)
	CreateQuest(ctx context.Context, quest *model.Quest) (*model.Quest, error)
	UpdateQuest(ctx context.Context, id int64, patch model.QuestPatch) (*model.Quest, error)
	DeleteQuest(ctx context.Context, id int64) error
}

// QuestRepository is implemented by every storage backend.
type QuestRepository interface {
	ListQuests(ctx context.Context) ([]*model.Quest, error)
	GetQuest(ctx context.Context, id int64) (*model.Quest, error)
	CreateQuest(ctx context.Context, quest *model.Quest) (*model.Quest, error)
	UpdateQuest(ctx context.Context, id int64, patch model.QuestPatch) (*model.Quest, error)
	DeleteQuest(ctx context.Context, id int64) error
}
