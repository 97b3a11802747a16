// Package textclass scores comment threads for sentiment and emotion. The
// scoring is pure CPU work; callers dispatch it through Pool so it never
// stalls goroutines doing network I/O.
package textclass

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jonreiter/govader"
)

// Result is the classification of one comment thread.
type Result struct {
	Compound float64 // average per-comment VADER compound in [-1, 1]
	Label    string  // "Positive" | "Negative" | "Neutral"
	Emotion  string  // dominant discrete emotion, "neutral" if no signal
}

type Classifier struct {
	vader *govader.SentimentIntensityAnalyzer
}

func NewClassifier() *Classifier {
	return &Classifier{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Classify averages per-comment polarity and tallies emotion categories over
// the combined text. Zero comments yields (0, Neutral, neutral).
func (c *Classifier) Classify(comments []string) Result {
	var sum float64
	for _, comment := range comments {
		sum += c.vader.PolarityScores(comment).Compound
	}

	avg := 0.0
	if len(comments) > 0 {
		avg = sum / float64(len(comments))
	}

	return Result{
		Compound: avg,
		Label:    PolarityLabel(avg),
		Emotion:  DominantEmotion(strings.Join(comments, " ")),
	}
}

// PolarityLabel maps an average compound score to the three-way label.
func PolarityLabel(avg float64) string {
	switch {
	case avg > 0.1:
		return "Positive"
	case avg < -0.1:
		return "Negative"
	default:
		return "Neutral"
	}
}

// DominantEmotion returns the highest-scoring discrete emotion category for
// the text. The two pure-valence categories are not part of the lexicon here
// since the compound score already covers them. Ties break alphabetically so
// the result is deterministic.
func DominantEmotion(text string) string {
	scores := map[string]int{}
	for _, token := range tokenize(text) {
		for _, emotion := range emotionLexicon[token] {
			scores[emotion]++
		}
	}
	if len(scores) == 0 {
		return "neutral"
	}

	emotions := make([]string, 0, len(scores))
	for e := range scores {
		emotions = append(emotions, e)
	}
	sort.Strings(emotions)

	best := emotions[0]
	for _, e := range emotions[1:] {
		if scores[e] > scores[best] {
			best = e
		}
	}
	return best
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
