package leaderboard

import (
	"cmp"
	"slices"
	"time"
)

// DefaultMaxEntries is how many scores a leaderboard keeps.
const DefaultMaxEntries = 10

// Score is one finished game.
type Score struct {
	Player    string `json:"player,omitempty"`
	Level     int    `json:"level"`
	ShotsUsed int    `json:"shots_used"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
}

// NewScore stamps a score with the current date.
func NewScore(player string, level, shotsUsed int) Score {
	now := time.Now()
	return Score{
		Player:    player,
		Level:     level,
		ShotsUsed: shotsUsed,
		Date:      now.Format("2006-01-02"),
		Timestamp: now.UnixMilli(),
	}
}

// Efficiency is shots used per level reached.
func (s Score) Efficiency() float64 {
	if s.Level <= 0 {
		return float64(s.ShotsUsed)
	}
	return float64(s.ShotsUsed) / float64(s.Level)
}

// Better reports whether a ranks above b: higher level first, then fewer shots.
func Better(a, b Score) bool {
	if a.Level != b.Level {
		return a.Level > b.Level
	}
	return a.ShotsUsed < b.ShotsUsed
}

func compare(a, b Score) int {
	if a.Level != b.Level {
		return cmp.Compare(b.Level, a.Level)
	}
	return cmp.Compare(a.ShotsUsed, b.ShotsUsed)
}

// SortScores orders scores best first. Equal scores keep their order.
func SortScores(scores []Score) {
	slices.SortStableFunc(scores, compare)
}

// Truncate returns at most max scores.
func Truncate(scores []Score, max int) []Score {
	if max >= 0 && len(scores) > max {
		return scores[:max]
	}
	return scores
}

// Insert adds s to a sorted board and trims it to max entries.
func Insert(scores []Score, s Score, max int) []Score {
	out := append(slices.Clone(scores), s)
	SortScores(out)
	return Truncate(out, max)
}

// Rank is the 1-based position a (level, shots) result would take: one plus
// the number of entries strictly better than it.
func Rank(scores []Score, level, shotsUsed int) int {
	candidate := Score{Level: level, ShotsUsed: shotsUsed}
	rank := 1
	for _, s := range scores {
		if Better(s, candidate) {
			rank++
		}
	}
	return rank
}

// IsHighScore reports whether a result would make a board of max entries.
// scores must be sorted best first.
func IsHighScore(scores []Score, level, shotsUsed, max int) bool {
	if len(scores) < max {
		return true
	}
	if len(scores) == 0 {
		return false
	}
	return Better(Score{Level: level, ShotsUsed: shotsUsed}, scores[len(scores)-1])
}
