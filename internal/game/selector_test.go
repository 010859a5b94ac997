package game

import (
	"testing"

	"github.com/Michaellinaresxk/hitback-server/internal/models"
)

// stubCatalog is an in-memory Catalog for engine tests.
type stubCatalog struct {
	tracks []models.Track
}

func (c *stubCatalog) All() []models.Track { return c.tracks }
func (c *stubCatalog) Size() int           { return len(c.tracks) }
func (c *stubCatalog) ByID(id uint) (*models.Track, bool) {
	for i := range c.tracks {
		if c.tracks[i].ID == id {
			return &c.tracks[i], true
		}
	}
	return nil, false
}

func testTracks() []models.Track {
	return []models.Track{
		{ID: 1, Title: "One", Artist: "A", Genre: "Rock", Decade: "80s", Difficulty: "easy"},
		{ID: 2, Title: "Two", Artist: "B", Genre: "Rock", Decade: "90s", Difficulty: "medium"},
		{ID: 3, Title: "Three", Artist: "C", Genre: "Pop", Decade: "80s", Difficulty: "easy"},
		{ID: 4, Title: "Four", Artist: "D", Genre: "Pop", Decade: "00s", Difficulty: "hard"},
	}
}

func testSession(cfg Config) *Session {
	return &Session{
		ID:           "TEST01",
		Status:       StatusPlaying,
		Config:       cfg,
		usedTrackIDs: make(map[uint]bool),
	}
}

func TestSelectTrackHonorsFilters(t *testing.T) {
	cat := &stubCatalog{tracks: testTracks()}
	s := testSession(Config{Genres: []string{"Pop"}, Decades: []string{"80s"}})

	// Only track 3 is Pop + 80s
	track, gerr := selectTrack(cat, s)
	if gerr != nil {
		t.Fatalf("selectTrack failed: %v", gerr)
	}
	if track.ID != 3 {
		t.Errorf("selected track %d, want 3", track.ID)
	}
	if !s.usedTrackIDs[3] {
		t.Error("selected track was not marked used")
	}
}

func TestSelectTrackCaseInsensitiveFilters(t *testing.T) {
	cat := &stubCatalog{tracks: testTracks()}
	s := testSession(Config{Genres: []string{"pop"}, Difficulty: "HARD"})

	track, gerr := selectTrack(cat, s)
	if gerr != nil {
		t.Fatalf("selectTrack failed: %v", gerr)
	}
	if track.ID != 4 {
		t.Errorf("selected track %d, want 4", track.ID)
	}
}

func TestSelectTrackAvoidsRepeats(t *testing.T) {
	cat := &stubCatalog{tracks: testTracks()}
	s := testSession(Config{})

	seen := make(map[uint]bool)
	for i := 0; i < len(cat.tracks); i++ {
		track, gerr := selectTrack(cat, s)
		if gerr != nil {
			t.Fatalf("selection %d failed: %v", i, gerr)
		}
		if seen[track.ID] {
			t.Fatalf("track %d repeated before the pool wrapped", track.ID)
		}
		seen[track.ID] = true
	}
}

func TestSelectTrackWrapsWhenExhausted(t *testing.T) {
	cat := &stubCatalog{tracks: testTracks()}
	s := testSession(Config{})

	// 1. Exhaust the catalog
	for i := 0; i < len(cat.tracks); i++ {
		if _, gerr := selectTrack(cat, s); gerr != nil {
			t.Fatalf("selection %d failed: %v", i, gerr)
		}
	}

	// 2. The next call must wrap instead of erroring
	track, gerr := selectTrack(cat, s)
	if gerr != nil {
		t.Fatalf("post-exhaustion selection failed: %v", gerr)
	}

	// 3. After the wrap the used set restarts from the fresh pick
	if len(s.usedTrackIDs) != 1 || !s.usedTrackIDs[track.ID] {
		t.Errorf("used set after wrap = %v, want just {%d}", s.usedTrackIDs, track.ID)
	}
}

func TestSelectTrackFallbackTiers(t *testing.T) {
	cat := &stubCatalog{tracks: testTracks()}

	// 1. Unsatisfiable genre+decade combo falls back to difficulty-only
	s := testSession(Config{Genres: []string{"Rock"}, Decades: []string{"00s"}, Difficulty: "easy"})
	track, gerr := selectTrack(cat, s)
	if gerr != nil {
		t.Fatalf("selectTrack failed: %v", gerr)
	}
	if track.Difficulty != "easy" {
		t.Errorf("fallback ignored difficulty tier, got track %d (%s)", track.ID, track.Difficulty)
	}

	// 2. Completely unsatisfiable filters still select some unused track
	s = testSession(Config{Genres: []string{"Jazz"}, Decades: []string{"50s"}, Difficulty: "extreme"})
	if _, gerr := selectTrack(cat, s); gerr != nil {
		t.Fatalf("last-resort fallback still failed: %v", gerr)
	}
}

func TestSelectTrackEmptyCatalog(t *testing.T) {
	cat := &stubCatalog{}
	s := testSession(Config{})

	_, gerr := selectTrack(cat, s)
	if gerr == nil {
		t.Fatal("expected error on empty catalog")
	}
	if gerr.Code != CodeNotFound {
		t.Errorf("error code = %s, want %s", gerr.Code, CodeNotFound)
	}
}
