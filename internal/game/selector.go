package game

import (
	"math/rand"
	"strings"

	"github.com/Michaellinaresxk/hitback-server/internal/models"
)

// Catalog is the read-only track source the engine draws from.
type Catalog interface {
	All() []models.Track
	ByID(id uint) (*models.Track, bool)
	Size() int
}

// anyFilter marks a filter as disabled.
const anyFilter = "ANY"

func isAny(v string) bool {
	return v == "" || strings.EqualFold(v, anyFilter)
}

func listIsAny(vs []string) bool {
	if len(vs) == 0 {
		return true
	}
	for _, v := range vs {
		if isAny(v) {
			return true
		}
	}
	return false
}

func containsFold(vs []string, v string) bool {
	for _, s := range vs {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}

func matchDifficulty(t *models.Track, difficulty string) bool {
	return isAny(difficulty) || strings.EqualFold(t.Difficulty, difficulty)
}

func matchGenre(t *models.Track, genres []string) bool {
	return listIsAny(genres) || containsFold(genres, t.Genre)
}

func matchDecade(t *models.Track, decades []string) bool {
	return listIsAny(decades) || containsFold(decades, t.Decade)
}

func filterTracks(pool []models.Track, keep func(*models.Track) bool) []models.Track {
	var out []models.Track
	for i := range pool {
		if keep(&pool[i]) {
			out = append(out, pool[i])
		}
	}
	return out
}

// selectTrack picks the session's next track and marks it used. The tiers
// guarantee forward progress: a session with impossible filters still gets a
// track rather than a stalled game. Callers must hold s.mu.
func selectTrack(cat Catalog, s *Session) (*models.Track, *Error) {
	all := cat.All()
	if len(all) == 0 {
		return nil, notFoundErr("track catalog is empty")
	}

	// 1. Unused pool; a full wrap resets the session's exclusions.
	unused := filterTracks(all, func(t *models.Track) bool {
		return !s.usedTrackIDs[t.ID]
	})
	if len(unused) == 0 {
		s.usedTrackIDs = make(map[uint]bool)
		unused = all
	}

	cfg := s.Config

	// 2-4. Full filter set over the unused pool.
	pool := filterTracks(unused, func(t *models.Track) bool {
		return matchDifficulty(t, cfg.Difficulty) &&
			matchGenre(t, cfg.Genres) &&
			matchDecade(t, cfg.Decades)
	})

	// 5. Progressive fallback tiers.
	if len(pool) == 0 {
		pool = filterTracks(unused, func(t *models.Track) bool {
			return matchDifficulty(t, cfg.Difficulty)
		})
	}
	if len(pool) == 0 {
		pool = filterTracks(unused, func(t *models.Track) bool {
			return matchGenre(t, cfg.Genres)
		})
	}
	if len(pool) == 0 {
		pool = unused
	}
	if len(pool) == 0 {
		// Last resort: ignore usage entirely. Never blocks.
		pool = all
	}

	// 6. Uniform draw, marked used before the caller can suspend.
	track := pool[rand.Intn(len(pool))]
	s.usedTrackIDs[track.ID] = true
	return &track, nil
}
