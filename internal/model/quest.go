package model

import "time"

type Quest struct {
	ID          int64
	Title       string
	QuestType   string
	Description string
	Reward      string
	Creator     string
	Completed   bool
	CreatedAt   *time.Time
}

// QuestPatch carries a partial update. A nil field is left untouched.
type QuestPatch struct {
	Title       *string
	QuestType   *string
	Description *string
	Reward      *string
	Creator     *string
	Completed   *bool
}

func (p QuestPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.QuestType == nil &&
		p.Description == nil &&
		p.Reward == nil &&
		p.Creator == nil &&
		p.Completed == nil
}
