package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Michaellinaresxk/hitback-server/internal/game"
)

// respond wraps every payload in the {success, data} envelope the clients
// drive their state machines off.
func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondErr(c *gin.Context, gerr *game.Error) {
	c.JSON(gerr.Code.HTTPStatus(), gin.H{"success": false, "error": gerr})
}

// respondErrWith includes partial data next to the error, used by failed bets
// so the client can resync its token UI.
func respondErrWith(c *gin.Context, gerr *game.Error, data any) {
	c.JSON(gerr.Code.HTTPStatus(), gin.H{"success": false, "error": gerr, "data": data})
}

func bindErr(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   gin.H{"code": game.CodeValidation, "message": err.Error()},
	})
}

// CreateSession sets up a new game for the given players.
func (s *Server) CreateSession(c *gin.Context) {
	var input struct {
		Players []string    `json:"players" binding:"required"`
		Config  game.Config `json:"config"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindErr(c, err)
		return
	}

	view, gerr := s.store.CreateSession(input.Config, input.Players)
	if gerr != nil {
		respondErr(c, gerr)
		return
	}
	respond(c, http.StatusCreated, view)
}

// GetSessions lists all live sessions.
func (s *Server) GetSessions(c *gin.Context) {
	respond(c, http.StatusOK, s.store.GetAllSessions())
}

// GetSession returns one session's client-safe status.
func (s *Server) GetSession(c *gin.Context) {
	view, gerr := s.store.GetStatus(c.Param("id"))
	if gerr != nil {
		respondErr(c, gerr)
		return
	}
	respond(c, http.StatusOK, view)
}

// DeleteSession removes a session.
func (s *Server) DeleteSession(c *gin.Context) {
	if gerr := s.store.DeleteSession(c.Param("id")); gerr != nil {
		respondErr(c, gerr)
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": true})
}

// StartGame transitions the session into play.
func (s *Server) StartGame(c *gin.Context) {
	view, gerr := s.store.StartGame(c.Param("id"))
	if gerr != nil {
		respondErr(c, gerr)
		return
	}
	respond(c, http.StatusOK, view)
}

// PauseGame suspends play between rounds.
func (s *Server) PauseGame(c *gin.Context) {
	view, gerr := s.store.PauseGame(c.Param("id"))
	if gerr != nil {
		respondErr(c, gerr)
		return
	}
	respond(c, http.StatusOK, view)
}

// NextRound starts the next round, optionally forcing a question type.
func (s *Server) NextRound(c *gin.Context) {
	var input struct {
		QuestionType string `json:"question_type"`
	}
	// Body is optional; an empty one means "random type".
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			bindErr(c, err)
			return
		}
	}

	round, gerr := s.store.NextRound(c.Request.Context(), c.Param("id"), game.QuestionType(input.QuestionType))
	if gerr != nil {
		respondErr(c, gerr)
		return
	}
	respond(c, http.StatusCreated, round)
}

// PlaceBet wagers one of the player's remaining tokens on the open round.
func (s *Server) PlaceBet(c *gin.Context) {
	var input struct {
		PlayerID string `json:"player_id" binding:"required"`
		Token    int    `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindErr(c, err)
		return
	}

	result, gerr := s.store.PlaceBet(c.Param("id"), input.PlayerID, input.Token)
	if gerr != nil {
		slog.Warn("bet rejected",
			"session", c.Param("id"),
			"player", input.PlayerID,
			"code", gerr.Code,
		)
		if result != nil {
			respondErrWith(c, gerr, result)
			return
		}
		respondErr(c, gerr)
		return
	}
	respond(c, http.StatusOK, result)
}

// RevealAnswer closes the round; winner_id may be omitted for an unanswered
// round.
func (s *Server) RevealAnswer(c *gin.Context) {
	var input struct {
		WinnerID string `json:"winner_id"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			bindErr(c, err)
			return
		}
	}

	result, gerr := s.store.RevealAnswer(c.Param("id"), input.WinnerID)
	if gerr != nil {
		respondErr(c, gerr)
		return
	}
	respond(c, http.StatusOK, result)
}

// ValidateAnswer checks a free-form answer against the open round.
func (s *Server) ValidateAnswer(c *gin.Context) {
	var input struct {
		Answer string `json:"answer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindErr(c, err)
		return
	}

	check, gerr := s.store.ValidateAnswer(c.Param("id"), input.Answer)
	if gerr != nil {
		respondErr(c, gerr)
		return
	}
	respond(c, http.StatusOK, check)
}

// GetCatalogInfo exposes the filter values the catalog can satisfy, so the
// session setup UI only offers genres and decades that exist.
func (s *Server) GetCatalogInfo(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{
		"size":    s.catalog.Size(),
		"genres":  s.catalog.Genres(),
		"decades": s.catalog.Decades(),
	})
}

// ReloadCatalog re-reads tracks from the database. Rejected while any game
// is in progress so sessions never reference stale track ids.
func (s *Server) ReloadCatalog(c *gin.Context) {
	if err := s.catalog.Reload(s.db.DB, s.store.AnyPlaying); err != nil {
		slog.Error("catalog reload failed", "error", err)
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   gin.H{"code": game.CodeState, "message": err.Error()},
		})
		return
	}
	respond(c, http.StatusOK, gin.H{"size": s.catalog.Size()})
}
