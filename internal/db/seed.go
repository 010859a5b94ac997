package database

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Michaellinaresxk/hitback-server/internal/models"
)

// SeedDemoTracks populates an empty catalog with a small starter set so the
// game is playable out of the box. Existing rows are left untouched.
func SeedDemoTracks(db *gorm.DB) {
	tracks := []models.Track{
		// --- 70s ---
		{
			Title: "Dancing Queen", Artist: "ABBA", Album: "Arrival",
			Year: 1976, Decade: "70s", Genre: "Pop", Difficulty: "easy",
			DurationMs:     230000,
			LyricsFragment: "You can dance, you can jive, having the time of your...",
			LyricsAnswer:   "life",
		},
		{
			Title: "Superstition", Artist: "Stevie Wonder", Album: "Talking Book",
			Year: 1972, Decade: "70s", Genre: "Funk", Difficulty: "medium",
			DurationMs: 266000,
		},
		{
			Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera",
			Year: 1975, Decade: "70s", Genre: "Rock", Difficulty: "easy",
			DurationMs:    354000,
			ChallengeText: "Air-guitar the solo for ten seconds without laughing",
			ChallengeType: "performance",
		},

		// --- 80s ---
		{
			Title: "Billie Jean", Artist: "Michael Jackson", Album: "Thriller",
			Year: 1983, Decade: "80s", Genre: "Pop", Difficulty: "easy",
			DurationMs:     294000,
			LyricsFragment: "Billie Jean is not my lover, she's just a girl who claims that I am the...",
			LyricsAnswer:   "one",
		},
		{
			Title: "Sweet Child O' Mine", Artist: "Guns N' Roses", Album: "Appetite for Destruction",
			Year: 1987, Decade: "80s", Genre: "Rock", Difficulty: "medium",
			DurationMs: 356000,
		},
		{
			Title: "Blue Monday", Artist: "New Order", Album: "Power, Corruption & Lies",
			Year: 1983, Decade: "80s", Genre: "Electronic", Difficulty: "hard",
			DurationMs: 445000,
		},

		// --- 90s ---
		{
			Title: "Smells Like Teen Spirit", Artist: "Nirvana", Album: "Nevermind",
			Year: 1991, Decade: "90s", Genre: "Rock", Difficulty: "easy",
			DurationMs: 301000,
		},
		{
			Title: "Waterfalls", Artist: "TLC", Album: "CrazySexyCool",
			Year: 1994, Decade: "90s", Genre: "R&B", Difficulty: "medium",
			DurationMs:    279000,
			ChallengeText: "Name two other songs from this album",
			ChallengeType: "knowledge",
		},
		{
			Title: "Wannabe", Artist: "Spice Girls", Album: "Spice",
			Year: 1996, Decade: "90s", Genre: "Pop", Difficulty: "easy",
			DurationMs:     173000,
			LyricsFragment: "If you wanna be my lover, you gotta get with my...",
			LyricsAnswer:   "friends",
		},

		// --- 00s ---
		{
			Title: "Crazy in Love", Artist: "Beyoncé feat. Jay-Z", Album: "Dangerously in Love",
			Year: 2003, Decade: "00s", Genre: "R&B", Difficulty: "easy",
			DurationMs: 235000,
		},
		{
			Title: "Seven Nation Army", Artist: "The White Stripes", Album: "Elephant",
			Year: 2003, Decade: "00s", Genre: "Rock", Difficulty: "medium",
			DurationMs: 231000,
		},
		{
			Title: "Hey Ya!", Artist: "OutKast", Album: "Speakerboxxx/The Love Below",
			Year: 2003, Decade: "00s", Genre: "Hip-Hop", Difficulty: "easy",
			DurationMs:     235000,
			LyricsFragment: "Shake it like a Polaroid...",
			LyricsAnswer:   "picture",
		},
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tracks)
	if result.Error != nil {
		log.Printf("⚠️ Error seeding demo tracks: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("🎵 Seeded %d demo tracks", result.RowsAffected)
	}
}
