package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Michaellinaresxk/hitback-server/internal/models"
)

// Fixed relative weights for the question-type draw.
var typeWeights = []struct {
	qType  QuestionType
	weight int
}{
	{QuestionSong, 25},
	{QuestionArtist, 30},
	{QuestionDecade, 20},
	{QuestionYear, 10},
	{QuestionLyrics, 10},
	{QuestionChallenge, 5},
}

var basePoints = map[QuestionType]int{
	QuestionSong:      1,
	QuestionArtist:    2,
	QuestionDecade:    2,
	QuestionYear:      3,
	QuestionLyrics:    3,
	QuestionChallenge: 4,
}

// availableTypes lists the question types a track can back. The auto types
// are always possible; lyrics/challenge need pre-authored content.
func availableTypes(t *models.Track) []QuestionType {
	types := []QuestionType{QuestionSong, QuestionArtist, QuestionDecade, QuestionYear}
	if t.HasLyrics() {
		types = append(types, QuestionLyrics)
	}
	if t.HasChallenge() {
		types = append(types, QuestionChallenge)
	}
	return types
}

// randomType draws a question type over the track's available types using a
// cumulative-weight table and a single uniform roll.
func randomType(t *models.Track) QuestionType {
	available := availableTypes(t)

	cumulative := make([]int, len(available))
	total := 0
	for i, qt := range available {
		for _, tw := range typeWeights {
			if tw.qType == qt {
				total += tw.weight
				break
			}
		}
		cumulative[i] = total
	}

	roll := rand.Intn(total)
	for i, c := range cumulative {
		if roll < c {
			return available[i]
		}
	}
	return available[len(available)-1]
}

// questionPoints scales the type's base value by session difficulty at
// generation time; the reveal never re-scales.
func questionPoints(qType QuestionType, difficulty string) int {
	points := basePoints[qType]
	if strings.EqualFold(difficulty, "hard") {
		points *= 2
	}
	return points
}

// generateQuestion builds the full question plus its private answer key for
// a track. Stored types missing their content fall back to an auto type
// instead of failing.
func generateQuestion(t *models.Track, qType QuestionType, difficulty string) (Question, answerKey) {
	// Graceful fallback for stored types the track cannot back.
	if qType == QuestionLyrics && !t.HasLyrics() {
		qType = QuestionSong
	}
	if qType == QuestionChallenge && !t.HasChallenge() {
		qType = QuestionArtist
	}

	q := Question{
		Type:   qType,
		Points: questionPoints(qType, difficulty),
	}
	key := answerKey{Title: t.Title, Artist: t.Artist}

	// Hints must stay answer-free: genre and decade only, never title/artist.
	switch qType {
	case QuestionSong:
		q.Text = "What is the title of this song?"
		q.Hints = hintList("Genre: "+t.Genre, "Decade: "+t.Decade)
		key.Answer = t.Title
	case QuestionArtist:
		q.Text = "Who performs this track?"
		q.Hints = hintList("Genre: "+t.Genre, "Decade: "+t.Decade)
		key.Answer = t.Artist
	case QuestionDecade:
		q.Text = "Which decade is this track from?"
		q.Hints = hintList("Genre: " + t.Genre)
		key.Answer = t.Decade
	case QuestionYear:
		q.Text = "In which year was this track released?"
		q.Hints = hintList("Decade: " + t.Decade)
		key.Answer = fmt.Sprintf("%d", t.Year)
	case QuestionLyrics:
		q.Text = fmt.Sprintf("Complete the lyric: \"%s\"", t.LyricsFragment)
		q.Hints = hintList("Genre: "+t.Genre, "Decade: "+t.Decade)
		key.Answer = t.LyricsAnswer
	case QuestionChallenge:
		q.Text = t.ChallengeText
		// Challenges are moderator-judged; the key carries the track as the
		// reveal reference.
		key.Answer = fmt.Sprintf("%s by %s", t.Title, t.Artist)
	}

	key.Accepted = acceptableAnswers(key.Answer)
	return q, key
}

func hintList(hints ...string) []string {
	var out []string
	for _, h := range hints {
		// Skip hints whose track field was empty ("Genre: ").
		if !strings.HasSuffix(h, ": ") {
			out = append(out, h)
		}
	}
	return out
}
