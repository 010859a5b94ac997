package models

import (
	"fmt"
	"time"
)

// Track is one entry in the trivia catalog. Title and Artist are the answers
// to most question types, so they must never be copied into anything a client
// sees before the reveal.
type Track struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title  string `gorm:"index;not null;uniqueIndex:idx_title_artist" json:"title"`
	Artist string `gorm:"index;not null;uniqueIndex:idx_title_artist" json:"artist"`
	Album  string `json:"album"`
	Year   int    `gorm:"index" json:"year"`
	Genre  string `gorm:"index" json:"genre"`
	Decade string `gorm:"index;size:8" json:"decade"` // e.g., "80s"

	// Difficulty drives session filtering: "easy", "medium", "hard"
	Difficulty string `gorm:"size:16;default:'medium'" json:"difficulty"`
	DurationMs int    `json:"duration_ms"`

	// Pre-authored trivia content. Optional: tracks without it simply never
	// produce "lyrics" or "challenge" questions.
	LyricsFragment string `gorm:"type:text" json:"lyrics_fragment,omitempty"`
	LyricsAnswer   string `json:"lyrics_answer,omitempty"`
	ChallengeText  string `gorm:"type:text" json:"challenge_text,omitempty"`
	ChallengeType  string `gorm:"size:32" json:"challenge_type,omitempty"`
}

// HasLyrics reports whether the track can back a "lyrics" question.
func (t *Track) HasLyrics() bool {
	return t.LyricsFragment != "" && t.LyricsAnswer != ""
}

// HasChallenge reports whether the track can back a "challenge" question.
func (t *Track) HasChallenge() bool {
	return t.ChallengeText != ""
}

// DecadeFromYear converts 1987 -> "80s". Years before 1900 or unset years
// yield an empty decade so the track simply never matches a decade filter.
func DecadeFromYear(year int) string {
	if year < 1900 {
		return ""
	}
	return fmt.Sprintf("%02ds", (year/10*10)%100)
}
