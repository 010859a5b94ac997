package game

import "time"

// RevealedAnswer is the answer record, released only at reveal time.
type RevealedAnswer struct {
	Answer string `json:"answer"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// RevealResult is everything a client needs after a reveal: the closed round,
// the answer, and the full scoreboard so the client state machine never
// stalls even on a winnerless round.
type RevealResult struct {
	Round      HistoryEntry   `json:"round"`
	Answer     RevealedAnswer `json:"answer"`
	Scoreboard []PlayerView   `json:"scoreboard"`
	GameOver   bool           `json:"game_over"`
	GameWinner *PlayerView    `json:"game_winner,omitempty"`
}

// revealAnswer closes the open round. An empty winnerID records the round as
// unanswered: nobody scores, spent tokens stay spent. Callers must hold s.mu.
func revealAnswer(s *Session, winnerID string) (*RevealResult, *Error) {
	if s.Status != StatusPlaying {
		return nil, stateErr("session %s is %s, not playing", s.ID, s.Status)
	}
	round := s.Current
	if round == nil {
		return nil, stateErr("no active round to reveal")
	}

	award := 0
	var winner *Player
	if winnerID != "" {
		winner = s.player(winnerID)
		if winner == nil {
			return nil, notFoundErr("player %s not in session %s", winnerID, s.ID)
		}

		// Base points were difficulty-scaled at generation; the bet value is
		// the only bonus applied here.
		award = round.Question.Points + round.Bets[winnerID]
		winner.Score += award
		winner.Stats.Correct++
	}

	// Losing bettors keep their loss; the only penalty is the gone token.
	for playerID := range round.Bets {
		if playerID == winnerID {
			continue
		}
		if p := s.player(playerID); p != nil {
			p.Stats.Incorrect++
		}
	}

	entry := HistoryEntry{
		RoundNumber:  round.Number,
		TrackID:      round.TrackID,
		QuestionType: round.Question.Type,
		WinnerID:     winnerID,
		Award:        award,
		Timestamp:    time.Now(),
	}
	s.History = append(s.History, entry)
	s.Current = nil

	result := &RevealResult{
		Round: entry,
		Answer: RevealedAnswer{
			Answer: round.answer.Answer,
			Title:  round.answer.Title,
			Artist: round.answer.Artist,
		},
		Scoreboard: make([]PlayerView, len(s.Players)),
	}
	for i, p := range s.Players {
		result.Scoreboard[i] = viewOfPlayer(p)
	}

	// Win check: first player in join order to reach the target takes the
	// game, even if a later player crossed it in the same reveal.
	for _, p := range s.Players {
		if p.Score >= s.Config.TargetScore {
			s.Status = StatusFinished
			result.GameOver = true
			v := viewOfPlayer(p)
			result.GameWinner = &v
			break
		}
	}

	return result, nil
}
