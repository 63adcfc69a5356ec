package models

import "time"

// HistoryEntry is a viewed issue plus the moment it was last opened.
type HistoryEntry struct {
	IssueSnapshot `bson:",inline"`
	ViewedAt      time.Time `json:"viewed_at" bson:"viewed_at"`
}
