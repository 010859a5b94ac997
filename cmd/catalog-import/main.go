package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm/clause"

	"github.com/Michaellinaresxk/hitback-server/internal/config"
	database "github.com/Michaellinaresxk/hitback-server/internal/db"
	"github.com/Michaellinaresxk/hitback-server/internal/models"
	"github.com/Michaellinaresxk/hitback-server/internal/utils"
)

// sidecar is the optional pre-authored trivia file next to an audio file:
// "song.mp3" + "song.trivia.yaml".
type sidecar struct {
	Difficulty string `yaml:"difficulty"`
	Lyrics     struct {
		Fragment string `yaml:"fragment"`
		Answer   string `yaml:"answer"`
	} `yaml:"lyrics"`
	Challenge struct {
		Text string `yaml:"text"`
		Type string `yaml:"type"`
	} `yaml:"challenge"`
}

var audioExts = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".ogg":  true,
}

func main() {
	dir := flag.String("dir", "./music", "directory of audio files to import")
	flag.Parse()

	log.SetFlags(log.LstdFlags)
	log.Printf("Importing catalog from %s ...", *dir)

	cfg := config.Load()
	db := database.New(cfg)
	db.AutoMigrate()

	imported, skipped := 0, 0
	err := filepath.WalkDir(*dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if !audioExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		track, err := readTrack(path)
		if err != nil {
			log.Printf("⚠️ Skipping %s: %v", filepath.Base(path), err)
			skipped++
			return nil
		}

		// Upsert on (title, artist) so re-running the import refreshes rows.
		result := db.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}, {Name: "artist"}},
			UpdateAll: true,
		}).Create(track)
		if result.Error != nil {
			log.Printf("⚠️ Failed to store %s: %v", filepath.Base(path), result.Error)
			skipped++
			return nil
		}

		imported++
		return nil
	})
	if err != nil {
		log.Fatalf("❌ Import failed: %v", err)
	}

	log.Printf("✅ Done: %d imported, %d skipped", imported, skipped)
}

// readTrack builds a catalog row from the file's tags plus its optional
// trivia sidecar.
func readTrack(path string) (*models.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	track := &models.Track{}

	meta, err := tag.ReadFrom(f)
	if err == nil {
		track.Title = strings.TrimSpace(meta.Title())
		track.Artist = strings.TrimSpace(meta.Artist())
		track.Album = strings.TrimSpace(meta.Album())
		track.Genre = strings.TrimSpace(meta.Genre())
		track.Year = meta.Year()
	}

	// Untagged files still import: the cleaned filename stands in for the
	// title so the row can be fixed up later.
	if track.Title == "" {
		track.Title = utils.CleanFilename(filepath.Base(path))
	}
	if track.Artist == "" {
		track.Artist = "Unknown Artist"
	}
	track.Decade = models.DecadeFromYear(track.Year)

	if sc := readSidecar(path); sc != nil {
		if sc.Difficulty != "" {
			track.Difficulty = strings.ToLower(sc.Difficulty)
		}
		track.LyricsFragment = sc.Lyrics.Fragment
		track.LyricsAnswer = sc.Lyrics.Answer
		track.ChallengeText = sc.Challenge.Text
		track.ChallengeType = sc.Challenge.Type
	}

	return track, nil
}

func readSidecar(audioPath string) *sidecar {
	ext := filepath.Ext(audioPath)
	path := strings.TrimSuffix(audioPath, ext) + ".trivia.yaml"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var sc sidecar
	if err := yaml.Unmarshal(data, &sc); err != nil {
		log.Printf("⚠️ Bad trivia sidecar %s: %v", filepath.Base(path), err)
		return nil
	}
	return &sc
}
