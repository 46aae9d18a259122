package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dnd_quest_board/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	repo, err := New(Config{Driver: DriverSQLite3, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func newQuest(title string) *model.Quest {
	return &model.Quest{
		Title:       title,
		QuestType:   "combat",
		Description: "Clear the cave",
		Reward:      "100 gold",
		Creator:     "Alice",
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }

func countQuests(t *testing.T, repo *Repository) int {
	t.Helper()
	var n int
	require.NoError(t, repo.db.Get(&n, "SELECT COUNT(*) FROM quests"))
	return n
}

func TestRepository_EnsureSchemaIsIdempotent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateQuest(ctx, newQuest("Slay the dragon"))
	require.NoError(t, err)

	require.NoError(t, repo.EnsureSchema(ctx))
	assert.Equal(t, 1, countQuests(t, repo))
}

func TestRepository_CreateQuest(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Minute)
	created, err := repo.CreateQuest(ctx, newQuest("Slay the dragon"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Slay the dragon", created.Title)
	assert.Equal(t, "combat", created.QuestType)
	assert.Equal(t, "Clear the cave", created.Description)
	assert.Equal(t, "100 gold", created.Reward)
	assert.Equal(t, "Alice", created.Creator)
	assert.False(t, created.Completed)
	require.NotNil(t, created.CreatedAt)
	assert.True(t, created.CreatedAt.After(before))

	second, err := repo.CreateQuest(ctx, newQuest("Rescue the cat"))
	require.NoError(t, err)
	assert.Greater(t, second.ID, created.ID)
}

func TestRepository_CreateQuestIgnoresClientManagedFields(t *testing.T) {
	repo := setupTestRepo(t)

	past := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	q := newQuest("Sneaky")
	q.ID = 42
	q.Completed = true
	q.CreatedAt = &past

	created, err := repo.CreateQuest(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.Completed)
	require.NotNil(t, created.CreatedAt)
	assert.NotEqual(t, past, *created.CreatedAt)
}

func TestRepository_ListQuestsNewestFirst(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	empty, err := repo.ListQuests(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	const n = 5
	for i := 0; i < n; i++ {
		_, err := repo.CreateQuest(ctx, newQuest(fmt.Sprintf("quest %d", i)))
		require.NoError(t, err)
	}

	quests, err := repo.ListQuests(ctx)
	require.NoError(t, err)
	require.Len(t, quests, n)

	assert.Equal(t, "quest 4", quests[0].Title)
	for i := 1; i < len(quests); i++ {
		assert.False(t, quests[i].CreatedAt.After(*quests[i-1].CreatedAt))
		assert.Less(t, quests[i].ID, quests[i-1].ID)
	}
}

func TestRepository_UpdateQuest(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		patch model.QuestPatch
		check func(t *testing.T, before, after *model.Quest)
	}{
		{
			name:  "only completed",
			patch: model.QuestPatch{Completed: boolPtr(true)},
			check: func(t *testing.T, before, after *model.Quest) {
				assert.True(t, after.Completed)
				assert.Equal(t, before.Title, after.Title)
				assert.Equal(t, before.QuestType, after.QuestType)
				assert.Equal(t, before.Description, after.Description)
				assert.Equal(t, before.Reward, after.Reward)
				assert.Equal(t, before.Creator, after.Creator)
			},
		},
		{
			name: "several text fields",
			patch: model.QuestPatch{
				Title:  strPtr("Slay two dragons"),
				Reward: strPtr("200 gold"),
			},
			check: func(t *testing.T, before, after *model.Quest) {
				assert.Equal(t, "Slay two dragons", after.Title)
				assert.Equal(t, "200 gold", after.Reward)
				assert.Equal(t, before.Description, after.Description)
				assert.Equal(t, before.Creator, after.Creator)
				assert.False(t, after.Completed)
			},
		},
		{
			name:  "empty patch returns current record",
			patch: model.QuestPatch{},
			check: func(t *testing.T, before, after *model.Quest) {
				assert.Equal(t, before, after)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := setupTestRepo(t)

			before, err := repo.CreateQuest(ctx, newQuest("Slay the dragon"))
			require.NoError(t, err)

			after, err := repo.UpdateQuest(ctx, before.ID, tt.patch)
			require.NoError(t, err)

			assert.Equal(t, before.ID, after.ID)
			assert.Equal(t, before.CreatedAt, after.CreatedAt)
			tt.check(t, before, after)

			stored, err := repo.GetQuest(ctx, before.ID)
			require.NoError(t, err)
			assert.Equal(t, after, stored)
		})
	}
}

func TestRepository_UpdateQuestNotFound(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	existing, err := repo.CreateQuest(ctx, newQuest("Slay the dragon"))
	require.NoError(t, err)

	_, err = repo.UpdateQuest(ctx, 999, model.QuestPatch{Completed: boolPtr(true)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.UpdateQuest(ctx, 999, model.QuestPatch{})
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := repo.GetQuest(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing, stored)
}

func TestRepository_DeleteQuest(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	q, err := repo.CreateQuest(ctx, newQuest("Slay the dragon"))
	require.NoError(t, err)

	assert.ErrorIs(t, repo.DeleteQuest(ctx, q.ID+1), ErrNotFound)
	assert.Equal(t, 1, countQuests(t, repo))

	require.NoError(t, repo.DeleteQuest(ctx, q.ID))
	assert.Equal(t, 0, countQuests(t, repo))

	assert.ErrorIs(t, repo.DeleteQuest(ctx, q.ID), ErrNotFound)
	_, err = repo.GetQuest(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	next, err := repo.CreateQuest(ctx, newQuest("Another"))
	require.NoError(t, err)
	assert.Greater(t, next.ID, q.ID)
}

func TestRepository_NullColumnsFromExistingStore(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.db.Exec(`INSERT INTO quests (title, quest_type, description, reward, creator, completed, created_at)
VALUES ('t', 'q', 'd', 'r', 'c', NULL, NULL)`)
	require.NoError(t, err)

	quests, err := repo.ListQuests(context.Background())
	require.NoError(t, err)
	require.Len(t, quests, 1)
	assert.False(t, quests[0].Completed)
	assert.Nil(t, quests[0].CreatedAt)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(Config{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestConfig_DataSourceName(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "host fields",
			cfg: Config{
				Host:     "db",
				Port:     "5432",
				User:     "postgres",
				Password: "p@ss",
				Name:     "dnd_quests",
			},
			want: "postgresql://postgres:p%40ss@db:5432/dnd_quests?sslmode=disable",
		},
		{
			name: "url wins over host fields",
			cfg:  Config{URL: "postgresql://u:p@remote/db", Host: "db"},
			want: "postgresql://u:p@remote/db",
		},
		{
			name: "postgres scheme normalized",
			cfg:  Config{Driver: DriverPq, URL: "postgres://u:p@remote/db"},
			want: "postgresql://u:p@remote/db",
		},
		{
			name: "sqlite path",
			cfg:  Config{Driver: DriverSQLite3, Path: "quests.db", Host: "ignored"},
			want: "quests.db",
		},
		{
			name: "sqlite default",
			cfg:  Config{Driver: "sqlite"},
			want: ":memory:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DataSourceName())
		})
	}
}

func TestNullTimestamp_Scan(t *testing.T) {
	want := time.Date(2024, 5, 6, 7, 8, 9, 123000000, time.UTC)

	tests := []struct {
		name  string
		src   any
		valid bool
	}{
		{name: "time", src: want, valid: true},
		{name: "sqlite text", src: "2024-05-06 07:08:09.123", valid: true},
		{name: "bytes", src: []byte("2024-05-06 07:08:09.123"), valid: true},
		{name: "rfc3339", src: "2024-05-06T07:08:09.123Z", valid: true},
		{name: "null", src: nil, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts nullTimestamp
			require.NoError(t, ts.Scan(tt.src))
			assert.Equal(t, tt.valid, ts.Valid)
			if tt.valid {
				assert.True(t, want.Equal(ts.Time))
				require.NotNil(t, ts.ptr())
			} else {
				assert.Nil(t, ts.ptr())
			}
		})
	}

	var ts nullTimestamp
	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(42))
}
