// Package catalog holds the read-only, in-memory track corpus sessions draw
// from. It is loaded once at startup; reloading is rejected while any game is
// in progress so no session ends up referencing stale track ids.
package catalog

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/Michaellinaresxk/hitback-server/internal/models"
)

type Catalog struct {
	mu     sync.RWMutex
	tracks []models.Track
	byID   map[uint]*models.Track
}

// Load reads every track from the database into memory.
func Load(db *gorm.DB) (*Catalog, error) {
	c := &Catalog{}
	if err := c.load(db); err != nil {
		return nil, err
	}
	log.Printf("🎵 Catalog loaded: %d tracks", c.Size())
	return c, nil
}

func (c *Catalog) load(db *gorm.DB) error {
	var tracks []models.Track
	if err := db.Order("id").Find(&tracks).Error; err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	byID := make(map[uint]*models.Track, len(tracks))
	for i := range tracks {
		byID[tracks[i].ID] = &tracks[i]
	}

	c.mu.Lock()
	c.tracks = tracks
	c.byID = byID
	c.mu.Unlock()
	return nil
}

// Reload re-reads the catalog. The busy check keeps track ids stable under
// running games: a reload mid-session is rejected outright.
func (c *Catalog) Reload(db *gorm.DB, busy func() bool) error {
	if busy != nil && busy() {
		return fmt.Errorf("catalog reload rejected: games in progress")
	}
	return c.load(db)
}

// All returns the full track list. Callers must not mutate it.
func (c *Catalog) All() []models.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tracks
}

// ByID looks up one track.
func (c *Catalog) ByID(id uint) (*models.Track, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.byID[id]
	return t, ok
}

// Size returns the number of catalog tracks.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tracks)
}

// Genres lists the distinct genres in the catalog, sorted.
func (c *Catalog) Genres() []string {
	return c.distinct(func(t *models.Track) string { return t.Genre })
}

// Decades lists the distinct decades in the catalog, sorted.
func (c *Catalog) Decades() []string {
	return c.distinct(func(t *models.Track) string { return t.Decade })
}

func (c *Catalog) distinct(field func(*models.Track) string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for i := range c.tracks {
		v := strings.TrimSpace(field(&c.tracks[i]))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
