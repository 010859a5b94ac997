// Package game is the session/round engine behind the trivia party game:
// session lifecycle, track selection with anti-repetition, question
// generation, the spend-once token ledger, and scoring with win detection.
package game

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Michaellinaresxk/hitback-server/internal/utils"
)

// ResolverFunc looks up a playable preview for a track. It is best-effort:
// errors and timeouts mean the round plays without audio.
type ResolverFunc func(ctx context.Context, title, artist string) (*AudioInfo, error)

// Store owns every live session and is the only way to mutate one. Each
// session carries its own mutex; NextRound, PlaceBet and RevealAnswer all run
// under it, so two concurrent NextRound calls can never double-select a track
// or corrupt round numbering, and a bet can never land after a concurrent
// reveal has closed the round.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	catalog        Catalog
	resolve        ResolverFunc
	resolveTimeout time.Duration
}

// NewStore builds a session store over the given catalog. resolve may be nil
// to disable audio lookups entirely.
func NewStore(cat Catalog, resolve ResolverFunc, resolveTimeout time.Duration) *Store {
	if resolveTimeout <= 0 {
		resolveTimeout = 4 * time.Second
	}
	return &Store{
		sessions:       make(map[string]*Session),
		catalog:        cat,
		resolve:        resolve,
		resolveTimeout: resolveTimeout,
	}
}

func (st *Store) get(id string) (*Session, *Error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return nil, notFoundErr("session %s not found", id)
	}
	return s, nil
}

// CreateSession validates the player list and builds a fresh session. Every
// player starts with an identical copy of the initial token set.
func (st *Store) CreateSession(cfg Config, playerNames []string) (*SessionView, *Error) {
	var names []string
	for _, n := range playerNames {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, validationErr("player names must not be blank")
		}
		names = append(names, n)
	}
	if len(names) == 0 {
		return nil, validationErr("at least one player is required")
	}
	if len(names) > MaxPlayers {
		return nil, validationErr("at most %d players are supported", MaxPlayers)
	}

	if cfg.TargetScore <= 0 {
		cfg.TargetScore = 10
	}
	if cfg.TimeLimitSeconds <= 0 {
		cfg.TimeLimitSeconds = 30
	}

	players := make([]*Player, len(names))
	for i, name := range names {
		tokens := make([]int, len(InitialTokens))
		copy(tokens, InitialTokens)
		players[i] = &Player{
			ID:              utils.NewPlayerID(),
			Name:            name,
			AvailableTokens: tokens,
		}
	}

	now := time.Now()
	s := &Session{
		Status:       StatusCreated,
		Config:       cfg,
		Players:      players,
		usedTrackIDs: make(map[uint]bool),
		CreatedAt:    now,
		lastActivity: now,
	}

	st.mu.Lock()
	for {
		code := utils.NewSessionCode()
		if _, taken := st.sessions[code]; !taken {
			s.ID = code
			break
		}
	}
	st.sessions[s.ID] = s
	st.mu.Unlock()

	sessionsCreated.Inc()
	log.Printf("🎉 Session %s created with %d players", s.ID, len(players))

	s.mu.Lock()
	defer s.mu.Unlock()
	return viewOfSession(s), nil
}

// StartGame moves a created or paused session into play.
func (st *Store) StartGame(id string) (*SessionView, *Error) {
	s, gerr := st.get(id)
	if gerr != nil {
		return nil, gerr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.Status {
	case StatusCreated, StatusPaused:
		s.Status = StatusPlaying
		if s.StartedAt.IsZero() {
			s.StartedAt = time.Now()
		}
		s.touch()
		return viewOfSession(s), nil
	case StatusPlaying:
		return nil, stateErr("session %s is already playing", s.ID)
	default:
		return nil, stateErr("session %s is finished", s.ID)
	}
}

// PauseGame suspends play between rounds.
func (st *Store) PauseGame(id string) (*SessionView, *Error) {
	s, gerr := st.get(id)
	if gerr != nil {
		return nil, gerr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status != StatusPlaying {
		return nil, stateErr("session %s is %s, not playing", s.ID, s.Status)
	}
	if s.Current != nil {
		return nil, stateErr("reveal the open round before pausing")
	}
	s.Status = StatusPaused
	s.touch()
	return viewOfSession(s), nil
}

func knownType(t QuestionType) bool {
	switch t {
	case QuestionSong, QuestionArtist, QuestionDecade, QuestionYear, QuestionLyrics, QuestionChallenge:
		return true
	}
	return false
}

// NextRound selects the next track, generates its question, and resolves the
// audio preview. The whole operation, audio lookup included, runs under the
// session lock: selection and the used-track marking commit atomically with
// the new round.
func (st *Store) NextRound(ctx context.Context, id string, forced QuestionType) (*RoundView, *Error) {
	s, gerr := st.get(id)
	if gerr != nil {
		return nil, gerr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status != StatusPlaying {
		return nil, stateErr("session %s is %s, not playing", s.ID, s.Status)
	}
	if s.Current != nil {
		return nil, stateErr("round %d is still open", s.Current.Number)
	}
	if forced != "" && !knownType(forced) {
		return nil, validationErr("unknown question type %q", forced)
	}

	track, gerr := selectTrack(st.catalog, s)
	if gerr != nil {
		return nil, gerr
	}

	qType := forced
	if qType == "" {
		qType = randomType(track)
	}
	question, key := generateQuestion(track, qType, s.Config.Difficulty)

	s.RoundCounter++
	round := &Round{
		Number:   s.RoundCounter,
		TrackID:  track.ID,
		Genre:    track.Genre,
		Decade:   track.Decade,
		Question: question,
		Bets:     make(map[string]int),
		answer:   key,
	}

	// Best-effort preview lookup. Failures and timeouts never fail the round.
	if st.resolve != nil {
		rctx, cancel := context.WithTimeout(ctx, st.resolveTimeout)
		audio, err := st.resolve(rctx, track.Title, track.Artist)
		cancel()
		if err != nil {
			audioResolveFailures.Inc()
			log.Printf("⚠️ Audio lookup failed for session %s round %d: %v", s.ID, round.Number, err)
		} else {
			round.Audio = audio
		}
	}

	s.Current = round
	s.touch()
	roundsStarted.Inc()
	return viewOfRound(round), nil
}

// BetResult reports the player's token set after a bet attempt. On failure
// the set is unchanged, which lets a client resynchronize its UI.
type BetResult struct {
	PlayerID        string `json:"player_id"`
	RoundNumber     int    `json:"round_number,omitempty"`
	TokenSpent      int    `json:"token_spent,omitempty"`
	AvailableTokens []int  `json:"available_tokens"`
}

// PlaceBet wagers one of the player's remaining tokens on the open round.
func (st *Store) PlaceBet(id, playerID string, token int) (*BetResult, *Error) {
	s, gerr := st.get(id)
	if gerr != nil {
		return nil, gerr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, gerr := placeBet(s, playerID, token)
	if gerr != nil {
		if p == nil {
			return nil, gerr
		}
		// Hand back the untouched token set alongside the error.
		return &BetResult{PlayerID: p.ID, AvailableTokens: viewOfPlayer(p).AvailableTokens}, gerr
	}

	s.touch()
	betsPlaced.Inc()
	return &BetResult{
		PlayerID:        p.ID,
		RoundNumber:     s.Current.Number,
		TokenSpent:      token,
		AvailableTokens: viewOfPlayer(p).AvailableTokens,
	}, nil
}

// RevealAnswer closes the open round, awarding points to the winner if one
// was declared. An empty winnerID records the round as unanswered.
func (st *Store) RevealAnswer(id, winnerID string) (*RevealResult, *Error) {
	s, gerr := st.get(id)
	if gerr != nil {
		return nil, gerr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, gerr := revealAnswer(s, winnerID)
	if gerr != nil {
		return nil, gerr
	}
	s.touch()

	if result.GameOver {
		log.Printf("🏆 Session %s finished, winner: %s", s.ID, result.GameWinner.Name)
	}
	return result, nil
}

// AnswerCheck reports whether a shouted answer counts as correct under the
// lenient matching policy.
type AnswerCheck struct {
	Correct bool `json:"correct"`
}

// ValidateAnswer checks free-form input against the open round's answer.
// It never mutates state; scoring stays with the moderator's reveal call.
func (st *Store) ValidateAnswer(id, input string) (*AnswerCheck, *Error) {
	s, gerr := st.get(id)
	if gerr != nil {
		return nil, gerr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Current == nil {
		return nil, stateErr("no active round")
	}
	return &AnswerCheck{Correct: matchAnswer(input, s.Current.answer)}, nil
}

// GetStatus returns the client-safe projection of one session.
func (st *Store) GetStatus(id string) (*SessionView, *Error) {
	s, gerr := st.get(id)
	if gerr != nil {
		return nil, gerr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return viewOfSession(s), nil
}

// GetAllSessions lists every live session, answers stripped.
func (st *Store) GetAllSessions() []*SessionView {
	st.mu.RLock()
	sessions := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		sessions = append(sessions, s)
	}
	st.mu.RUnlock()

	views := make([]*SessionView, 0, len(sessions))
	for _, s := range sessions {
		s.mu.Lock()
		views = append(views, viewOfSession(s))
		s.mu.Unlock()
	}
	return views
}

// DeleteSession removes a session outright.
func (st *Store) DeleteSession(id string) *Error {
	key := strings.ToUpper(strings.TrimSpace(id))

	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[key]; !ok {
		return notFoundErr("session %s not found", id)
	}
	delete(st.sessions, key)
	return nil
}

// CleanupOldSessions sweeps sessions with no activity for maxAge and returns
// how many were removed.
func (st *Store) CleanupOldSessions(maxAge time.Duration) int {
	now := time.Now()

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastActivity) > maxAge
		s.mu.Unlock()
		if idle {
			delete(st.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		sessionsSwept.Add(float64(removed))
		log.Printf("🧹 Swept %d idle sessions", removed)
	}
	return removed
}

// AnyPlaying reports whether any session is mid-game. The catalog uses it to
// refuse reloads that would invalidate in-flight track references.
func (st *Store) AnyPlaying() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()

	for _, s := range st.sessions {
		s.mu.Lock()
		playing := s.Status == StatusPlaying
		s.mu.Unlock()
		if playing {
			return true
		}
	}
	return false
}

// StartCleanupLoop sweeps idle sessions on a ticker until ctx is cancelled.
func (st *Store) StartCleanupLoop(ctx context.Context, interval, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st.CleanupOldSessions(maxAge)
			}
		}
	}()
}
