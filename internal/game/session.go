package game

import (
	"sync"
	"time"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusCreated  Status = "created"
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

// InitialTokens is the one-time betting budget every player starts with.
// Spending a value is permanent; it never comes back, win or lose.
var InitialTokens = []int{1, 2, 3}

// MaxPlayers caps the party size.
const MaxPlayers = 8

// Config is the per-session game setup. Empty filter slices mean "any".
type Config struct {
	Genres           []string `json:"genres"`
	Decades          []string `json:"decades"`
	Difficulty       string   `json:"difficulty"`
	TargetScore      int      `json:"target_score"`
	TimeLimitSeconds int      `json:"time_limit_seconds"`
}

// PlayerStats are the running per-player counters.
type PlayerStats struct {
	Correct     int `json:"correct"`
	Incorrect   int `json:"incorrect"`
	TokensSpent int `json:"tokens_spent"`
}

// Player is one participant. Score never decreases; AvailableTokens only
// shrinks from the initial set.
type Player struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Score           int         `json:"score"`
	AvailableTokens []int       `json:"available_tokens"`
	Stats           PlayerStats `json:"stats"`
}

// QuestionType enumerates the kinds of questions a round can ask.
type QuestionType string

const (
	QuestionSong      QuestionType = "song"
	QuestionArtist    QuestionType = "artist"
	QuestionDecade    QuestionType = "decade"
	QuestionYear      QuestionType = "year"
	QuestionLyrics    QuestionType = "lyrics"
	QuestionChallenge QuestionType = "challenge"
)

// Question is the player-visible part of a round's trivia.
type Question struct {
	Type   QuestionType `json:"type"`
	Text   string       `json:"text"`
	Points int          `json:"points"`
	Hints  []string     `json:"hints,omitempty"`
}

// AudioInfo is the resolved preview payload, already answer-free.
type AudioInfo struct {
	PreviewURL      string `json:"preview_url"`
	DurationSeconds int    `json:"duration_seconds"`
	CoverArtURL     string `json:"cover_art_url"`
	SourceLink      string `json:"source_link"`
}

// answerKey holds everything that would give the round away. It lives only
// inside the engine and is stripped from every view until the reveal.
type answerKey struct {
	Answer   string
	Accepted []string
	Title    string
	Artist   string
}

// Round is one open select/ask/bet/reveal cycle. Only public track fields are
// kept on it directly; the answer sits in the unexported key.
type Round struct {
	Number   int            `json:"number"`
	TrackID  uint           `json:"track_id"`
	Genre    string         `json:"genre"`
	Decade   string         `json:"decade"`
	Audio    *AudioInfo     `json:"audio,omitempty"`
	Question Question       `json:"question"`
	Bets     map[string]int `json:"bets"`

	answer answerKey
}

// HistoryEntry records one finished round.
type HistoryEntry struct {
	RoundNumber  int          `json:"round_number"`
	TrackID      uint         `json:"track_id"`
	QuestionType QuestionType `json:"question_type"`
	WinnerID     string       `json:"winner_id,omitempty"`
	Award        int          `json:"award"`
	Timestamp    time.Time    `json:"timestamp"`
}

// Session is one complete game instance. All mutation happens inside the
// Store while holding mu, which serializes nextRound/placeBet/reveal on this
// session (including the audio lookup inside nextRound).
type Session struct {
	ID           string
	Status       Status
	Config       Config
	Players      []*Player
	RoundCounter int
	Current      *Round
	History      []HistoryEntry
	CreatedAt    time.Time
	StartedAt    time.Time

	usedTrackIDs map[uint]bool
	lastActivity time.Time
	mu           sync.Mutex
}

func (s *Session) touch() {
	s.lastActivity = time.Now()
}

func (s *Session) player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// --- Views: client-facing projections with the answer record stripped ---

// PlayerView mirrors Player; it exists so the scoreboard type is explicit.
type PlayerView struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Score           int         `json:"score"`
	AvailableTokens []int       `json:"available_tokens"`
	Stats           PlayerStats `json:"stats"`
}

// RoundView is a Round without its answer key.
type RoundView struct {
	Number   int            `json:"number"`
	TrackID  uint           `json:"track_id"`
	Genre    string         `json:"genre"`
	Decade   string         `json:"decade"`
	Audio    *AudioInfo     `json:"audio,omitempty"`
	Question Question       `json:"question"`
	Bets     map[string]int `json:"bets"`
}

// SessionView is the read-only projection returned to clients.
type SessionView struct {
	ID           string         `json:"id"`
	Status       Status         `json:"status"`
	Config       Config         `json:"config"`
	Players      []PlayerView   `json:"players"`
	RoundCounter int            `json:"round_counter"`
	CurrentRound *RoundView     `json:"current_round,omitempty"`
	History      []HistoryEntry `json:"history"`
	CreatedAt    time.Time      `json:"created_at"`
	StartedAt    time.Time      `json:"started_at,omitempty"`
}

func viewOfPlayer(p *Player) PlayerView {
	tokens := make([]int, len(p.AvailableTokens))
	copy(tokens, p.AvailableTokens)
	return PlayerView{
		ID:              p.ID,
		Name:            p.Name,
		Score:           p.Score,
		AvailableTokens: tokens,
		Stats:           p.Stats,
	}
}

func viewOfRound(r *Round) *RoundView {
	if r == nil {
		return nil
	}
	bets := make(map[string]int, len(r.Bets))
	for k, v := range r.Bets {
		bets[k] = v
	}
	return &RoundView{
		Number:   r.Number,
		TrackID:  r.TrackID,
		Genre:    r.Genre,
		Decade:   r.Decade,
		Audio:    r.Audio,
		Question: r.Question,
		Bets:     bets,
	}
}

// viewOfSession copies everything a client may see. Callers must hold s.mu.
func viewOfSession(s *Session) *SessionView {
	players := make([]PlayerView, len(s.Players))
	for i, p := range s.Players {
		players[i] = viewOfPlayer(p)
	}
	history := make([]HistoryEntry, len(s.History))
	copy(history, s.History)

	return &SessionView{
		ID:           s.ID,
		Status:       s.Status,
		Config:       s.Config,
		Players:      players,
		RoundCounter: s.RoundCounter,
		CurrentRound: viewOfRound(s.Current),
		History:      history,
		CreatedAt:    s.CreatedAt,
		StartedAt:    s.StartedAt,
	}
}
