package game

// hasToken reports whether the player still holds the given token value.
func hasToken(p *Player, token int) bool {
	for _, t := range p.AvailableTokens {
		if t == token {
			return true
		}
	}
	return false
}

// spendToken permanently removes one token value from the player's set.
// Returns false without mutating anything if the value is not held.
func spendToken(p *Player, token int) bool {
	for i, t := range p.AvailableTokens {
		if t == token {
			p.AvailableTokens = append(p.AvailableTokens[:i], p.AvailableTokens[i+1:]...)
			p.Stats.TokensSpent++
			return true
		}
	}
	return false
}

// placeBet records a wager on the open round. The token leaves the player's
// set immediately and is never refunded, regardless of the round outcome.
// Callers must hold s.mu.
func placeBet(s *Session, playerID string, token int) (*Player, *Error) {
	if s.Status != StatusPlaying {
		return nil, stateErr("session %s is %s, not playing", s.ID, s.Status)
	}
	if s.Current == nil {
		return nil, stateErr("no active round to bet on")
	}

	p := s.player(playerID)
	if p == nil {
		return nil, notFoundErr("player %s not in session %s", playerID, s.ID)
	}

	if _, already := s.Current.Bets[playerID]; already {
		return p, stateErr("player %s already bet this round", p.Name)
	}
	if !hasToken(p, token) {
		return p, invalidTokenErr("token %d is not available for player %s", token, p.Name)
	}

	spendToken(p, token)
	s.Current.Bets[playerID] = token
	return p, nil
}
