package mocks

import (
	"context"

	"dnd_quest_board/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockQuestRepository stands in for storage in service tests.
type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	args := m.Called(ctx)
	quests, _ := args.Get(0).([]*model.Quest)
	return quests, args.Error(1)
}

func (m *MockQuestRepository) GetQuest(ctx context.Context, id int64) (*model.Quest, error) {
	args := m.Called(ctx, id)
	quest, _ := args.Get(0).(*model.Quest)
	return quest, args.Error(1)
}

func (m *MockQuestRepository) CreateQuest(ctx context.Context, quest *model.Quest) (*model.Quest, error) {
	args := m.Called(ctx, quest)
	created, _ := args.Get(0).(*model.Quest)
	return created, args.Error(1)
}

func (m *MockQuestRepository) UpdateQuest(ctx context.Context, id int64, patch model.QuestPatch) (*model.Quest, error) {
	args := m.Called(ctx, id, patch)
	quest, _ := args.Get(0).(*model.Quest)
	return quest, args.Error(1)
}

func (m *MockQuestRepository) DeleteQuest(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockQuestService stands in for the service layer in handler tests.
type MockQuestService struct {
	mock.Mock
}

func (m *MockQuestService) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	args := m.Called(ctx)
	quests, _ := args.Get(0).([]*model.Quest)
	return quests, args.Error(1)
}

func (m *MockQuestService) GetQuest(ctx context.Context, id int64) (*model.Quest, error) {
	args := m.Called(ctx, id)
	quest, _ := args.Get(0).(*model.Quest)
	return quest, args.Error(1)
}

func (m *MockQuestService) CreateQuest(ctx context.Context, quest *model.Quest) (*model.Quest, error) {
	args := m.Called(ctx, quest)
	created, _ := args.Get(0).(*model.Quest)
	return created, args.Error(1)
}

func (m *MockQuestService) UpdateQuest(ctx context.Context, id int64, patch model.QuestPatch) (*model.Quest, error) {
	args := m.Called(ctx, id, patch)
	quest, _ := args.Get(0).(*model.Quest)
	return quest, args.Error(1)
}

func (m *MockQuestService) DeleteQuest(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
