package models

import "time"

// XPEvent is one entry of the XP ledger, written when a task is completed.
type XPEvent struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	TaskID    string    `bson:"task_id" json:"taskId"`
	XPGained  int       `bson:"xp_gained" json:"xpGained"`
	Level     int       `bson:"level" json:"level"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// DailyXP is the XP earned on one calendar day (UTC).
type DailyXP struct {
	Date string `json:"date"`
	XP   int    `json:"xp"`
}

// LeaderboardEntry ranks the caller among their friends.
type LeaderboardEntry struct {
	Rank int        `json:"rank"`
	User PublicUser `json:"user"`
	You  bool       `json:"you"`
}
