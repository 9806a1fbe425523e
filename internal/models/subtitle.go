package models

import "gorm.io/gorm"

// SubtitleDocument is a cached, generated subtitle document. Cached
// documents let a repeat request for the same source skip recognition
// entirely. Live job state is never persisted; only finished documents
// are.
type SubtitleDocument struct {
	gorm.Model
	Fingerprint  string  `json:"fingerprint" gorm:"uniqueIndex;not null"` // source identity (video ID or upload digest)
	Language     string  `json:"language" gorm:"index"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`       // full SRT document
	Filename     string  `json:"filename"`      // suggested output filename
	Source       string  `json:"source"`        // "youtube" or "upload"
	SegmentCount int     `json:"segment_count"` // number of subtitle blocks
	Duration     float64 `json:"duration"`      // media duration in seconds
	Placeholder  bool    `json:"placeholder"`   // true when no speech was detected
}

// TableName specifies the table name for GORM
func (SubtitleDocument) TableName() string {
	return "subtitle_documents"
}
