package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dnd_quest_board/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const questsTable = "quests"

var questColumns = []string{
	"id",
	"title",
	"quest_type",
	"description",
	"reward",
	"creator",
	"completed",
	"created_at",
}

type quest struct {
	ID          int64         `db:"id"`
	Title       string        `db:"title"`
	QuestType   string        `db:"quest_type"`
	Description string        `db:"description"`
	Reward      string        `db:"reward"`
	Creator     string        `db:"creator"`
	Completed   sql.NullBool  `db:"completed"`
	CreatedAt   nullTimestamp `db:"created_at"`
}

func (q *quest) toModel() *model.Quest {
	return &model.Quest{
		ID:          q.ID,
		Title:       q.Title,
		QuestType:   q.QuestType,
		Description: q.Description,
		Reward:      q.Reward,
		Creator:     q.Creator,
		Completed:   q.Completed.Valid && q.Completed.Bool,
		CreatedAt:   q.CreatedAt.ptr(),
	}
}

func (r *Repository) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	query, args, err := squirrel.
		Select(questColumns...).
		From(questsTable).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(r.dialect.placeholder).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []quest
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}

	quests := make([]*model.Quest, len(rows))
	for i := range rows {
		quests[i] = rows[i].toModel()
	}

	return quests, nil
}

func (r *Repository) GetQuest(ctx context.Context, id int64) (*model.Quest, error) {
	row, err := r.getQuest(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// CreateQuest inserts the caller-supplied fields only; id, completed and
// created_at come from the column defaults.
func (r *Repository) CreateQuest(ctx context.Context, q *model.Quest) (*model.Quest, error) {
	query, args, err := squirrel.
		Insert(questsTable).
		Columns("title", "quest_type", "description", "reward", "creator").
		Values(q.Title, q.QuestType, q.Description, q.Reward, q.Creator).
		Suffix(returningColumns()).
		PlaceholderFormat(r.dialect.placeholder).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest insert query: %w", err)
	}

	var row quest
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert quest: %w", err)
	}

	return row.toModel(), nil
}

func (r *Repository) UpdateQuest(ctx context.Context, id int64, patch model.QuestPatch) (*model.Quest, error) {
	var updated *quest

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		current, err := r.getQuest(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch.IsEmpty() {
			updated = current
			return nil
		}

		query, args, err := squirrel.
			Update(questsTable).
			SetMap(patchColumns(patch)).
			Where(squirrel.Eq{"id": id}).
			Suffix(returningColumns()).
			PlaceholderFormat(r.dialect.placeholder).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build quest update query: %w", err)
		}

		var row quest
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			return fmt.Errorf("failed to update quest: %w", err)
		}
		updated = &row

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated.toModel(), nil
}

func (r *Repository) DeleteQuest(ctx context.Context, id int64) error {
	query, args, err := squirrel.
		Delete(questsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(r.dialect.placeholder).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete quest: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) getQuest(ctx context.Context, q sqlx.QueryerContext, id int64) (*quest, error) {
	query, args, err := squirrel.
		Select(questColumns...).
		From(questsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(r.dialect.placeholder).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row quest
	err = sqlx.GetContext(ctx, q, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	return &row, nil
}

func patchColumns(p model.QuestPatch) map[string]interface{} {
	set := make(map[string]interface{})
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.QuestType != nil {
		set["quest_type"] = *p.QuestType
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Reward != nil {
		set["reward"] = *p.Reward
	}
	if p.Creator != nil {
		set["creator"] = *p.Creator
	}
	if p.Completed != nil {
		set["completed"] = *p.Completed
	}
	return set
}

func returningColumns() string {
	return "RETURNING " + strings.Join(questColumns, ", ")
}
