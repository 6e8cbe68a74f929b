package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// BaseXP returns the XP a task of this difficulty grants on completion.
func (d Difficulty) BaseXP() (int, bool) {
	switch d {
	case DifficultyEasy:
		return 10, true
	case DifficultyMedium:
		return 30, true
	case DifficultyHard:
		return 50, true
	}
	return 0, false
}

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	// TaskMissed is reserved; nothing in this service sets it.
	TaskMissed TaskStatus = "missed"
)

type Task struct {
	ID          string     `bson:"_id" json:"id"`
	UserID      string     `bson:"user_id" json:"userId"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Difficulty  Difficulty `bson:"difficulty" json:"difficulty"`
	BaseXP      int        `bson:"base_xp" json:"baseXp"`
	Status      TaskStatus `bson:"status" json:"status"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}

// TaskInput is the editable part of a task.
type TaskInput struct {
	Title       string     `json:"title" validate:"required,max=120"`
	Description string     `json:"description" validate:"max=1000"`
	Difficulty  Difficulty `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
}

// Completion describes the outcome of completing a task.
type Completion struct {
	TaskID   string   `json:"taskId"`
	Applied  bool     `json:"applied"`
	XPGained int      `json:"xpGained"`
	LevelsUp int      `json:"levelsUp"`
	Before   Progress `json:"before"`
	After    Progress `json:"after"`
}
