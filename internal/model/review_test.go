package model

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestWeekStartIsMonday(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{day(2024, 3, 11), day(2024, 3, 11)},
		{day(2024, 3, 13), day(2024, 3, 11)},
		{time.Date(2024, 3, 17, 23, 59, 0, 0, time.Local), day(2024, 3, 11)},
		{day(2024, 3, 18), day(2024, 3, 18)},
		{day(2024, 1, 3), day(2024, 1, 1)},
		{day(2023, 1, 1), day(2022, 12, 26)},
	}
	for _, tc := range cases {
		got := WeekStart(tc.in)
		if !got.Equal(tc.want) {
			t.Fatalf("WeekStart(%s) = %s, want %s", tc.in.Format(time.DateOnly), got.Format(time.DateOnly), tc.want.Format(time.DateOnly))
		}
	}
}

func TestReviewsUpsertReplaces(t *testing.T) {
	var reviews Reviews
	reviews.Upsert(NewWeeklyReview(day(2024, 3, 12), ReviewFields{Wins: "first"}))
	reviews.Upsert(NewWeeklyReview(day(2024, 3, 4), ReviewFields{Wins: "older"}))
	reviews.Upsert(NewWeeklyReview(day(2024, 3, 15), ReviewFields{Wins: "second", Priorities: "ship"}))

	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	got, ok := reviews.Get(day(2024, 3, 11))
	if !ok {
		t.Fatal("expected review for week of 2024-03-11")
	}
	if got.Wins != "second" || got.Priorities != "ship" || got.Struggles != "" {
		t.Fatalf("unexpected review after upsert: %+v", got)
	}
	count := 0
	for _, r := range reviews.All() {
		if r.Key() == "2024-03-11" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one record for key, got %d", count)
	}
}

func TestReviewsHistoryMostRecentFirst(t *testing.T) {
	reviews := Reviews{
		NewWeeklyReview(day(2024, 3, 4), ReviewFields{}),
		NewWeeklyReview(day(2024, 3, 18), ReviewFields{}),
		NewWeeklyReview(day(2024, 2, 26), ReviewFields{}),
	}
	history := reviews.History()
	keys := []string{history[0].Key(), history[1].Key(), history[2].Key()}
	want := []string{"2024-03-18", "2024-03-04", "2024-02-26"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("unexpected history order: %v", keys)
		}
	}
	if reviews[0].Key() != "2024-03-04" {
		t.Fatal("History must not reorder the stored slice")
	}
}
