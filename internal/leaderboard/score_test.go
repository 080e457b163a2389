package leaderboard

import (
	"reflect"
	"testing"
)

func sc(level, shots int) Score {
	return Score{Level: level, ShotsUsed: shots}
}

func TestSortScores(t *testing.T) {
	scores := []Score{sc(2, 10), sc(5, 30), sc(2, 4), sc(5, 12), sc(1, 1)}
	SortScores(scores)
	want := []Score{sc(5, 12), sc(5, 30), sc(2, 4), sc(2, 10), sc(1, 1)}
	if !reflect.DeepEqual(scores, want) {
		t.Fatalf("sorted = %v, want %v", scores, want)
	}
}

func TestSortIsStableForTies(t *testing.T) {
	a := Score{Level: 3, ShotsUsed: 9, Player: "first"}
	b := Score{Level: 3, ShotsUsed: 9, Player: "second"}
	scores := []Score{a, b}
	SortScores(scores)
	if scores[0].Player != "first" {
		t.Fatalf("tie reordered: %v", scores)
	}
}

func TestRankCountsStrictlyBetter(t *testing.T) {
	board := []Score{sc(5, 12), sc(5, 30), sc(2, 4)}
	tests := []struct {
		level, shots, want int
	}{
		{6, 100, 1},
		{5, 12, 1},
		{5, 13, 2},
		{5, 30, 2},
		{2, 4, 3},
		{1, 0, 4},
	}
	for _, tt := range tests {
		if got := Rank(board, tt.level, tt.shots); got != tt.want {
			t.Errorf("Rank(%d, %d) = %d, want %d", tt.level, tt.shots, got, tt.want)
		}
	}
}

func TestIsHighScore(t *testing.T) {
	full := []Score{sc(5, 10), sc(4, 10), sc(3, 10)}
	tests := []struct {
		name         string
		board        []Score
		level, shots int
		max          int
		want         bool
	}{
		{"not full", full, 1, 99, 4, true},
		{"beats worst level", full, 4, 50, 3, true},
		{"same level fewer shots", full, 3, 9, 3, true},
		{"same as worst", full, 3, 10, 3, false},
		{"worse than worst", full, 2, 1, 3, false},
		{"zero max", nil, 9, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHighScore(tt.board, tt.level, tt.shots, tt.max); got != tt.want {
				t.Fatalf("IsHighScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsertTrims(t *testing.T) {
	var board []Score
	for i := 1; i <= 12; i++ {
		board = Insert(board, sc(i, i), 10)
	}
	if len(board) != 10 {
		t.Fatalf("len = %d, want 10", len(board))
	}
	if board[0].Level != 12 || board[9].Level != 3 {
		t.Fatalf("board = %v", board)
	}
}

func TestEfficiency(t *testing.T) {
	if got := sc(4, 10).Efficiency(); got != 2.5 {
		t.Errorf("efficiency = %v, want 2.5", got)
	}
	if got := sc(0, 7).Efficiency(); got != 7 {
		t.Errorf("efficiency at level 0 = %v, want 7", got)
	}
}
