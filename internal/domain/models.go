package domain

import (
	"math"
	"math/big"
	"strconv"
)

// SearchResultItem is one record returned by the search backend.
// Items are read-only view models; the widget never builds or keeps them.
type SearchResultItem struct {
	Title   string   `json:"title"`
	Link    string   `json:"link"`
	Snippet string   `json:"snippet"`
	Score   *float64 `json:"score,omitempty"` // nil when the backend omits it
}

// ScoreClass classifies a relevance score by its sign
type ScoreClass string

const (
	ScorePositive ScoreClass = "positive"
	ScoreNegative ScoreClass = "negative"
	ScoreNeutral  ScoreClass = "neutral"
)

// ScoreValue returns the item's score, treating an absent score as zero
func (i SearchResultItem) ScoreValue() float64 {
	if i.Score == nil {
		return 0
	}
	return *i.Score
}

// HasScore reports whether the backend sent a score for this item
func (i SearchResultItem) HasScore() bool {
	return i.Score != nil
}

// ScoreClass returns the badge class for the item's score
func (i SearchResultItem) ScoreClass() ScoreClass {
	return ClassifyScore(i.ScoreValue())
}

// ClassifyScore maps a score to positive, negative or neutral
func ClassifyScore(score float64) ScoreClass {
	switch {
	case score > 0:
		return ScorePositive
	case score < 0:
		return ScoreNegative
	default:
		return ScoreNeutral
	}
}

// ScoreBadge is the label every view shows for a score
func ScoreBadge(score float64) string {
	return "Score: " + FormatScore(score)
}

// FormatScore writes score with one decimal. A value exactly halfway
// between two tenths rounds away from zero, so 0.25 is "0.3".
func FormatScore(score float64) string {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return strconv.FormatFloat(score, 'f', 1, 64)
	}
	abs := math.Abs(score)
	if halfTenth(abs) {
		abs = math.Nextafter(abs, math.Inf(1))
	}
	s := strconv.FormatFloat(abs, 'f', 1, 64)
	if score < 0 {
		return "-" + s
	}
	return s
}

// halfTenth reports whether x*20 is an odd integer, computed exactly
func halfTenth(x float64) bool {
	f := new(big.Float).SetPrec(128).SetFloat64(x)
	f.Mul(f, big.NewFloat(20))
	if !f.IsInt() {
		return false
	}
	n, _ := f.Int(nil)
	return n.Bit(0) == 1
}
