package service

import (
	"context"
	"errors"
	"fmt"

	"dnd_quest_board/internal/model"
	"dnd_quest_board/internal/repository"
)

type QuestService struct {
	repo QuestRepository
}

func NewQuestService(repo QuestRepository) *QuestService {
	return &QuestService{
		repo: repo,
	}
}

func (s *QuestService) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	quests, err := s.repo.ListQuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}
	if quests == nil {
		quests = []*model.Quest{}
	}
	return quests, nil
}

func (s *QuestService) GetQuest(ctx context.Context, id int64) (*model.Quest, error) {
	quest, err := s.repo.GetQuest(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}
	return quest, nil
}

func (s *QuestService) CreateQuest(ctx context.Context, quest *model.Quest) (*model.Quest, error) {
	created, err := s.repo.CreateQuest(ctx, quest)
	if err != nil {
		return nil, fmt.Errorf("failed to create quest: %w", err)
	}
	return created, nil
}

func (s *QuestService) UpdateQuest(ctx context.Context, id int64, patch model.QuestPatch) (*model.Quest, error) {
	quest, err := s.repo.UpdateQuest(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to update quest: %w", err)
	}
	return quest, nil
}

func (s *QuestService) DeleteQuest(ctx context.Context, id int64) error {
	err := s.repo.DeleteQuest(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuestNotFound
		}
		return fmt.Errorf("failed to delete quest: %w", err)
	}
	return nil
}
