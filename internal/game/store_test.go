package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Michaellinaresxk/hitback-server/internal/models"
)

func newTestStore(tracks []models.Track, resolve ResolverFunc) *Store {
	return NewStore(&stubCatalog{tracks: tracks}, resolve, 100*time.Millisecond)
}

// startedSession creates and starts a two-player game, returning the store,
// the session id, and the players in join order.
func startedSession(t *testing.T, cfg Config, tracks []models.Track) (*Store, string, []PlayerView) {
	t.Helper()

	store := newTestStore(tracks, nil)
	view, gerr := store.CreateSession(cfg, []string{"A", "B"})
	if gerr != nil {
		t.Fatalf("CreateSession failed: %v", gerr)
	}
	if _, gerr := store.StartGame(view.ID); gerr != nil {
		t.Fatalf("StartGame failed: %v", gerr)
	}
	return store, view.ID, view.Players
}

func TestCreateSessionValidation(t *testing.T) {
	store := newTestStore(testTracks(), nil)

	tests := []struct {
		name    string
		players []string
	}{
		{"Empty List", nil},
		{"Blank Name", []string{"A", "  "}},
		{"Too Many Players", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, gerr := store.CreateSession(Config{}, tt.players)
			if gerr == nil {
				t.Fatal("expected validation error")
			}
			if gerr.Code != CodeValidation {
				t.Errorf("code = %s, want %s", gerr.Code, CodeValidation)
			}
		})
	}
}

func TestCreateSessionDefaults(t *testing.T) {
	store := newTestStore(testTracks(), nil)

	view, gerr := store.CreateSession(Config{}, []string{"A"})
	if gerr != nil {
		t.Fatalf("CreateSession failed: %v", gerr)
	}

	if view.Status != StatusCreated {
		t.Errorf("status = %s, want created", view.Status)
	}
	if view.Config.TargetScore != 10 {
		t.Errorf("default target score = %d, want 10", view.Config.TargetScore)
	}
	p := view.Players[0]
	if len(p.AvailableTokens) != len(InitialTokens) {
		t.Errorf("initial tokens = %v, want %v", p.AvailableTokens, InitialTokens)
	}
}

func TestStartGameTransitions(t *testing.T) {
	store := newTestStore(testTracks(), nil)
	view, _ := store.CreateSession(Config{}, []string{"A"})

	// created -> playing
	started, gerr := store.StartGame(view.ID)
	if gerr != nil {
		t.Fatalf("StartGame failed: %v", gerr)
	}
	if started.Status != StatusPlaying {
		t.Errorf("status = %s, want playing", started.Status)
	}

	// playing -> playing is a state error
	if _, gerr := store.StartGame(view.ID); gerr == nil || gerr.Code != CodeState {
		t.Errorf("double start: got %v, want STATE error", gerr)
	}

	// paused -> playing
	if _, gerr := store.PauseGame(view.ID); gerr != nil {
		t.Fatalf("PauseGame failed: %v", gerr)
	}
	resumed, gerr := store.StartGame(view.ID)
	if gerr != nil {
		t.Fatalf("resume failed: %v", gerr)
	}
	if resumed.Status != StatusPlaying {
		t.Errorf("resumed status = %s, want playing", resumed.Status)
	}
}

func TestNextRoundNumbersAndState(t *testing.T) {
	store, id, _ := startedSession(t, Config{}, testTracks())
	ctx := context.Background()

	round, gerr := store.NextRound(ctx, id, "")
	if gerr != nil {
		t.Fatalf("NextRound failed: %v", gerr)
	}
	if round.Number != 1 {
		t.Errorf("first round number = %d, want 1", round.Number)
	}

	// A second NextRound while the round is open is rejected
	if _, gerr := store.NextRound(ctx, id, ""); gerr == nil || gerr.Code != CodeState {
		t.Errorf("open-round NextRound: got %v, want STATE error", gerr)
	}

	// After the reveal the counter moves strictly forward
	if _, gerr := store.RevealAnswer(id, ""); gerr != nil {
		t.Fatalf("RevealAnswer failed: %v", gerr)
	}
	view, _ := store.GetStatus(id)
	if view.CurrentRound != nil {
		t.Error("current round should be nil after reveal")
	}

	round, gerr = store.NextRound(ctx, id, "")
	if gerr != nil {
		t.Fatalf("second NextRound failed: %v", gerr)
	}
	if round.Number != 2 {
		t.Errorf("second round number = %d, want 2", round.Number)
	}
}

func TestNextRoundAbsorbsResolverFailure(t *testing.T) {
	failing := func(ctx context.Context, title, artist string) (*AudioInfo, error) {
		return nil, errors.New("itunes is down")
	}
	store := NewStore(&stubCatalog{tracks: testTracks()}, failing, 100*time.Millisecond)
	view, _ := store.CreateSession(Config{}, []string{"A"})
	store.StartGame(view.ID)

	round, gerr := store.NextRound(context.Background(), view.ID, "")
	if gerr != nil {
		t.Fatalf("round must not fail on resolver error: %v", gerr)
	}
	if round.Audio != nil {
		t.Errorf("audio = %+v, want nil", round.Audio)
	}
}

func TestNextRoundBoundsSlowResolver(t *testing.T) {
	slow := func(ctx context.Context, title, artist string) (*AudioInfo, error) {
		<-ctx.Done() // hang until the store's timeout fires
		return nil, ctx.Err()
	}
	store := NewStore(&stubCatalog{tracks: testTracks()}, slow, 50*time.Millisecond)
	view, _ := store.CreateSession(Config{}, []string{"A"})
	store.StartGame(view.ID)

	start := time.Now()
	round, gerr := store.NextRound(context.Background(), view.ID, "")
	if gerr != nil {
		t.Fatalf("round must not fail on resolver timeout: %v", gerr)
	}
	if round.Audio != nil {
		t.Error("timed-out lookup should leave the round without audio")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("NextRound blocked for %v despite the timeout", elapsed)
	}
}

func TestPlaceBetTokenLedger(t *testing.T) {
	store, id, players := startedSession(t, Config{}, testTracks())
	ctx := context.Background()
	a := players[0]

	store.NextRound(ctx, id, QuestionSong)

	// 1. Spending a held token shrinks the set
	result, gerr := store.PlaceBet(id, a.ID, 2)
	if gerr != nil {
		t.Fatalf("PlaceBet failed: %v", gerr)
	}
	if fmt.Sprint(result.AvailableTokens) != "[1 3]" {
		t.Errorf("tokens after bet = %v, want [1 3]", result.AvailableTokens)
	}

	// 2. A second bet in the same round is rejected
	if _, gerr := store.PlaceBet(id, a.ID, 1); gerr == nil || gerr.Code != CodeState {
		t.Errorf("double bet: got %v, want STATE error", gerr)
	}

	// 3. Tokens stay spent across rounds, win or lose
	store.RevealAnswer(id, "")
	store.NextRound(ctx, id, QuestionSong)
	result, gerr = store.PlaceBet(id, a.ID, 2)
	if gerr == nil {
		t.Fatal("re-spending token 2 should fail")
	}
	if gerr.Code != CodeInvalidToken {
		t.Errorf("code = %s, want %s", gerr.Code, CodeInvalidToken)
	}
	// The failed bet reports the unchanged token set for UI resync
	if fmt.Sprint(result.AvailableTokens) != "[1 3]" {
		t.Errorf("tokens after failed bet = %v, want [1 3]", result.AvailableTokens)
	}

	// 4. The failed bet left no trace on the round either
	view, _ := store.GetStatus(id)
	if len(view.CurrentRound.Bets) != 0 {
		t.Errorf("round bets = %v, want empty", view.CurrentRound.Bets)
	}
}

func TestPlaceBetRequiresOpenRound(t *testing.T) {
	store, id, players := startedSession(t, Config{}, testTracks())

	_, gerr := store.PlaceBet(id, players[0].ID, 1)
	if gerr == nil || gerr.Code != CodeState {
		t.Errorf("bet without round: got %v, want STATE error", gerr)
	}
}

func TestRevealWithoutWinner(t *testing.T) {
	store, id, players := startedSession(t, Config{}, testTracks())
	ctx := context.Background()

	store.NextRound(ctx, id, QuestionSong)
	store.PlaceBet(id, players[0].ID, 1)

	result, gerr := store.RevealAnswer(id, "")
	if gerr != nil {
		t.Fatalf("RevealAnswer failed: %v", gerr)
	}

	// 1. Nobody scored, but history still advanced
	for _, p := range result.Scoreboard {
		if p.Score != 0 {
			t.Errorf("player %s score = %d, want 0", p.Name, p.Score)
		}
	}
	if result.Round.WinnerID != "" || result.Round.Award != 0 {
		t.Errorf("history entry = %+v, want unanswered", result.Round)
	}

	// 2. The bettor's token stays gone
	view, _ := store.GetStatus(id)
	if fmt.Sprint(view.Players[0].AvailableTokens) != "[2 3]" {
		t.Errorf("tokens = %v, want [2 3]", view.Players[0].AvailableTokens)
	}

	// 3. The reveal still returned the full scoreboard
	if len(result.Scoreboard) != 2 {
		t.Errorf("scoreboard size = %d, want 2", len(result.Scoreboard))
	}
}

// The two-round scenario from the game design: token bonuses stack on base
// points, and crossing the target ends the game.
func TestFullGameScenario(t *testing.T) {
	store, id, players := startedSession(t, Config{TargetScore: 3}, testTracks())
	ctx := context.Background()
	a := players[0]

	// Round 1: "song" question, base 1. A bets token 1 and wins.
	store.NextRound(ctx, id, QuestionSong)
	if _, gerr := store.PlaceBet(id, a.ID, 1); gerr != nil {
		t.Fatalf("bet failed: %v", gerr)
	}
	result, gerr := store.RevealAnswer(id, a.ID)
	if gerr != nil {
		t.Fatalf("reveal failed: %v", gerr)
	}
	if result.Round.Award != 2 {
		t.Errorf("round 1 award = %d, want 2 (1 base + 1 token)", result.Round.Award)
	}
	if result.Scoreboard[0].Score != 2 {
		t.Errorf("A score = %d, want 2", result.Scoreboard[0].Score)
	}
	if fmt.Sprint(result.Scoreboard[0].AvailableTokens) != "[2 3]" {
		t.Errorf("A tokens = %v, want [2 3]", result.Scoreboard[0].AvailableTokens)
	}
	if result.GameOver {
		t.Fatal("game must not end before the target is reached")
	}

	// Round 2: "artist" question, base 2. A bets token 2 and wins: award 4,
	// score 6 crosses the target.
	store.NextRound(ctx, id, QuestionArtist)
	store.PlaceBet(id, a.ID, 2)
	result, gerr = store.RevealAnswer(id, a.ID)
	if gerr != nil {
		t.Fatalf("reveal failed: %v", gerr)
	}
	if result.Round.Award != 4 {
		t.Errorf("round 2 award = %d, want 4 (2 base + 2 token)", result.Round.Award)
	}
	if !result.GameOver {
		t.Fatal("game should be over at score 6 >= 3")
	}
	if result.GameWinner == nil || result.GameWinner.ID != a.ID {
		t.Errorf("game winner = %+v, want player A", result.GameWinner)
	}

	view, _ := store.GetStatus(id)
	if view.Status != StatusFinished {
		t.Errorf("session status = %s, want finished", view.Status)
	}
	if view.Players[0].Stats.Correct != 2 || view.Players[0].Stats.TokensSpent != 2 {
		t.Errorf("A stats = %+v, want 2 correct / 2 tokens spent", view.Players[0].Stats)
	}
}

func TestCatalogExhaustionWrapsInsteadOfFailing(t *testing.T) {
	tracks := testTracks()
	store, id, _ := startedSession(t, Config{}, tracks)
	ctx := context.Background()

	seen := make(map[uint]bool)
	for i := 0; i < len(tracks); i++ {
		round, gerr := store.NextRound(ctx, id, "")
		if gerr != nil {
			t.Fatalf("round %d failed: %v", i+1, gerr)
		}
		if seen[round.TrackID] {
			t.Fatalf("track %d repeated before exhaustion", round.TrackID)
		}
		seen[round.TrackID] = true
		store.RevealAnswer(id, "")
	}

	// The (N+1)-th round must succeed via wrap-around
	round, gerr := store.NextRound(ctx, id, "")
	if gerr != nil {
		t.Fatalf("post-exhaustion round failed: %v", gerr)
	}
	if !seen[round.TrackID] {
		t.Errorf("wrap produced unknown track %d", round.TrackID)
	}
}

// The answer must never appear in any client-facing projection while the
// round is open.
func TestSessionViewNeverLeaksAnswer(t *testing.T) {
	tracks := []models.Track{
		{ID: 1, Title: "Bohemian Rhapsody", Artist: "Queen", Genre: "Rock", Decade: "70s", Difficulty: "easy"},
	}
	store, id, _ := startedSession(t, Config{}, tracks)
	store.NextRound(context.Background(), id, QuestionSong)

	for _, view := range []any{mustStatus(t, store, id), store.GetAllSessions()} {
		payload, err := json.Marshal(view)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		for _, secret := range []string{"Bohemian", "Queen"} {
			if strings.Contains(string(payload), secret) {
				t.Errorf("session view leaks %q: %s", secret, payload)
			}
		}
	}

	// After the reveal, the answer is released deliberately
	result, _ := store.RevealAnswer(id, "")
	if result.Answer.Title != "Bohemian Rhapsody" || result.Answer.Artist != "Queen" {
		t.Errorf("reveal answer = %+v, want the track", result.Answer)
	}
}

func mustStatus(t *testing.T, store *Store, id string) *SessionView {
	t.Helper()
	view, gerr := store.GetStatus(id)
	if gerr != nil {
		t.Fatalf("GetStatus failed: %v", gerr)
	}
	return view
}

// Concurrent NextRound calls on one session must serialize: exactly one
// opens the round, the rest observe it as already open.
func TestConcurrentNextRoundSerializes(t *testing.T) {
	store, id, _ := startedSession(t, Config{}, testTracks())
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]*Error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = store.NextRound(ctx, id, "")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, gerr := range errs {
		if gerr == nil {
			succeeded++
		} else if gerr.Code != CodeState {
			t.Errorf("unexpected error code %s", gerr.Code)
		}
	}
	if succeeded != 1 {
		t.Errorf("%d NextRound calls succeeded, want exactly 1", succeeded)
	}

	view := mustStatus(t, store, id)
	if view.RoundCounter != 1 {
		t.Errorf("round counter = %d, want 1", view.RoundCounter)
	}
}

// Bets racing a reveal must never land on a closed round, and the token
// ledger invariant (initial set == available + spent) must survive the race.
func TestConcurrentBetAndReveal(t *testing.T) {
	store, id, players := startedSession(t, Config{TargetScore: 1000}, testTracks())
	ctx := context.Background()

	for roundNo := 0; roundNo < 3; roundNo++ {
		if _, gerr := store.NextRound(ctx, id, QuestionSong); gerr != nil {
			t.Fatalf("NextRound failed: %v", gerr)
		}

		var wg sync.WaitGroup
		for _, p := range players {
			wg.Add(1)
			go func(playerID string) {
				defer wg.Done()
				store.PlaceBet(id, playerID, roundNo+1)
			}(p.ID)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.RevealAnswer(id, "")
		}()
		wg.Wait()

		// Close the round if the bets won the race
		store.RevealAnswer(id, "")
	}

	view := mustStatus(t, store, id)
	for _, p := range view.Players {
		if len(p.AvailableTokens)+p.Stats.TokensSpent != len(InitialTokens) {
			t.Errorf("player %s ledger broken: available %v, spent %d",
				p.Name, p.AvailableTokens, p.Stats.TokensSpent)
		}
	}
}

func TestDeleteAndCleanup(t *testing.T) {
	store := newTestStore(testTracks(), nil)

	view, _ := store.CreateSession(Config{}, []string{"A"})
	if gerr := store.DeleteSession(view.ID); gerr != nil {
		t.Fatalf("DeleteSession failed: %v", gerr)
	}
	if _, gerr := store.GetStatus(view.ID); gerr == nil || gerr.Code != CodeNotFound {
		t.Errorf("deleted session lookup: got %v, want NOT_FOUND", gerr)
	}

	// Cleanup only sweeps idle sessions
	old, _ := store.CreateSession(Config{}, []string{"A"})
	fresh, _ := store.CreateSession(Config{}, []string{"B"})

	s, _ := store.get(old.ID)
	s.mu.Lock()
	s.lastActivity = time.Now().Add(-3 * time.Hour)
	s.mu.Unlock()

	if removed := store.CleanupOldSessions(2 * time.Hour); removed != 1 {
		t.Errorf("cleanup removed %d sessions, want 1", removed)
	}
	if _, gerr := store.GetStatus(fresh.ID); gerr != nil {
		t.Errorf("fresh session swept: %v", gerr)
	}
}

func TestValidateAnswerEndToEnd(t *testing.T) {
	tracks := []models.Track{
		{ID: 1, Title: "México", Artist: "Timbiriche", Genre: "Pop", Decade: "80s", Difficulty: "easy"},
	}
	store, id, _ := startedSession(t, Config{}, tracks)
	store.NextRound(context.Background(), id, QuestionSong)

	check, gerr := store.ValidateAnswer(id, "mexico")
	if gerr != nil {
		t.Fatalf("ValidateAnswer failed: %v", gerr)
	}
	if !check.Correct {
		t.Error("'mexico' should match 'México'")
	}

	check, _ = store.ValidateAnswer(id, "guadalajara")
	if check.Correct {
		t.Error("wrong answer accepted")
	}
}
