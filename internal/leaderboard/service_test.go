package leaderboard

import (
	"context"
	"errors"
	"testing"
)

func TestServiceSubmit(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(3), 3)

	res, err := svc.Submit(ctx, Score{Level: 2, ShotsUsed: 8})
	if err != nil {
		t.Fatal(err)
	}
	if res.Rank != 1 || !res.HighScore || res.Score.Timestamp == 0 || res.Score.Date == "" {
		t.Fatalf("first result = %+v", res)
	}

	svc.Submit(ctx, Score{Level: 5, ShotsUsed: 20})
	svc.Submit(ctx, Score{Level: 3, ShotsUsed: 10})

	res, err = svc.Submit(ctx, Score{Level: 1, ShotsUsed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.HighScore || res.Rank != 4 {
		t.Fatalf("low result = %+v, want rank 4 and not high score", res)
	}

	top, _ := svc.Top(ctx, 0)
	if len(top) != 3 || top[0].Level != 5 {
		t.Fatalf("top = %v", top)
	}
}

func TestServiceRejectsInvalidScore(t *testing.T) {
	svc := NewService(NewMemoryStore(10), 10)
	for _, s := range []Score{{Level: 0, ShotsUsed: 1}, {Level: 2, ShotsUsed: -1}} {
		if _, err := svc.Submit(context.Background(), s); !errors.Is(err, ErrInvalidScore) {
			t.Errorf("Submit(%+v) err = %v, want ErrInvalidScore", s, err)
		}
	}
}

func TestServiceTopClampsLimit(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(5), 5)
	for i := 1; i <= 5; i++ {
		svc.Submit(ctx, Score{Level: i, ShotsUsed: i})
	}
	tests := []struct{ limit, want int }{{-1, 5}, {2, 2}, {50, 5}}
	for _, tt := range tests {
		top, err := svc.Top(ctx, tt.limit)
		if err != nil || len(top) != tt.want {
			t.Errorf("Top(%d) = %d scores, %v; want %d", tt.limit, len(top), err, tt.want)
		}
	}
}

func TestServiceEmptyTopIsNotNil(t *testing.T) {
	top, err := NewService(NewMemoryStore(5), 5).Top(context.Background(), 5)
	if err != nil || top == nil {
		t.Fatalf("empty top = %#v, %v", top, err)
	}
}
