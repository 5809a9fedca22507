package settlement

import (
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
)

var t0 = time.Date(2026, 1, 29, 16, 0, 0, 0, time.UTC)

func vote(id, user, matchID, player string, offset time.Duration) prediction.Prediction {
	return prediction.Prediction{
		ID:              id,
		UserName:        user,
		MatchID:         matchID,
		PredictedPlayer: player,
		SubmittedAt:     t0.Add(offset),
	}
}

func published(id string, number int, mom string) match.Match {
	return match.Match{ID: id, Number: number, Status: match.StatusFinished, ManOfTheMatch: mom}
}

func TestSettle_FirstEntryWins(t *testing.T) {
	t.Parallel()

	preds := []prediction.Prediction{
		vote("p2", "ann", "M", "Y", 2*time.Minute),
		vote("p1", "ann", "M", "X", time.Minute),
	}

	result := Settle(published("M", 1, "X"), preds)
	if len(result.Counted) != 1 || result.Counted[0].PredictedPlayer != "X" {
		t.Fatalf("expected the earliest vote to count, got %+v", result.Counted)
	}
	if len(result.Duplicates) != 1 || result.Duplicates[0].ID != "p2" {
		t.Fatalf("expected p2 as duplicate, got %+v", result.Duplicates)
	}
	if len(result.Winners) != 1 || result.Share != PrizePool {
		t.Fatalf("expected a single winner taking the pool, got %+v", result)
	}

	// The later vote matching the result must not win.
	lose := Settle(published("M", 1, "Y"), preds)
	if lose.State != StateNoWinners || len(lose.Winners) != 0 {
		t.Fatalf("duplicate vote must not win, got %+v", lose)
	}
}

func TestDedupe_NormalizedKeyAndTieBreak(t *testing.T) {
	t.Parallel()

	preds := []prediction.Prediction{
		vote("b", "  ANN ", "M", "Y", 0),
		vote("a", "ann", "M", "X", 0),
		vote("c", "Ann Lee", "M", "X", 0),
		vote("d", "ann  lee", "M", "X", time.Second),
	}

	counted, duplicates := Dedupe(preds)
	ids := make([]string, 0, len(counted))
	for _, item := range counted {
		ids = append(ids, item.ID)
	}
	if fmt.Sprint(ids) != "[a c d]" {
		t.Fatalf("unexpected counted ids: %v", ids)
	}
	if len(duplicates) != 1 || duplicates[0].ID != "b" {
		t.Fatalf("unexpected duplicates: %+v", duplicates)
	}
}

func TestSettle_FloorDivision(t *testing.T) {
	t.Parallel()

	preds := []prediction.Prediction{
		vote("1", "a", "M", "X", 0),
		vote("2", "b", "M", "X", time.Second),
		vote("3", "c", "M", "X", 2*time.Second),
		vote("4", "d", "M", "Z", 3*time.Second),
	}

	result := Settle(published("M", 1, "X"), preds)
	if result.State != StateSettled {
		t.Fatalf("expected settled, got %s", result.State)
	}
	if result.Share != 333 || result.TotalDistributed != 999 {
		t.Fatalf("expected 333 each and 999 in total, got %d and %d", result.Share, result.TotalDistributed)
	}
	if got := result.WinnerNames(); fmt.Sprint(got) != "[a b c]" {
		t.Fatalf("unexpected winners: %v", got)
	}
}

func TestSettle_NotPublished(t *testing.T) {
	t.Parallel()

	m := published("M", 1, "")
	result := Settle(m, []prediction.Prediction{vote("1", "a", "M", "X", 0)})
	if result.State != StateNotSettled {
		t.Fatalf("expected not settled, got %s", result.State)
	}
	if result.Winners != nil || result.Share != 0 {
		t.Fatalf("unsettled result must be empty, got %+v", result)
	}
}

func TestSettle_RefereeDecisionHasNoWinners(t *testing.T) {
	t.Parallel()

	preds := []prediction.Prediction{
		vote("1", "a", "M", "X", 0),
		vote("2", "b", "M", "Referee decision", 0),
		vote("3", "c", "M", "", 0),
	}
	result := Settle(published("M", 1, match.RefereeDecision), preds)
	if result.State != StateNoWinners || result.TotalDistributed != 0 {
		t.Fatalf("referee decision must yield no winners, got %+v", result)
	}
}

func TestSettle_UnknownPlayerStillCompared(t *testing.T) {
	t.Parallel()

	preds := []prediction.Prediction{
		vote("1", "a", "M", "Not In Any Squad", 0),
		vote("2", "b", "OTHER", "Not In Any Squad", 0),
	}
	result := Settle(published("M", 1, "Not In Any Squad"), preds)
	if len(result.Winners) != 1 || result.Winners[0].ID != "1" {
		t.Fatalf("expected prediction 1 to win, got %+v", result.Winners)
	}
}

func TestLeaderboard(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		published("m2", 2, "Y"),
		published("m1", 1, "X"),
		published("m3", 3, ""),
		published("m4", 4, match.RefereeDecision),
	}
	preds := []prediction.Prediction{
		vote("1", "Bob", "m1", "X", 0),
		vote("2", "ann", "m1", "X", time.Second),
		vote("3", "ANN ", "m2", "Y", 0),
		vote("4", "cid", "m2", "Y", time.Second),
		vote("5", "cid", "m3", "Z", 0),
		vote("6", "dan", "m4", "X", 0),
	}

	got := Leaderboard(matches, preds)
	want := []LeaderboardEntry{
		{Rank: 1, UserKey: "ann", UserName: "ann", Coins: 1000, Wins: 2},
		{Rank: 2, UserKey: "bob", UserName: "Bob", Coins: 500, Wins: 1},
		{Rank: 3, UserKey: "cid", UserName: "cid", Coins: 500, Wins: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}
