package settlement

import (
	"sort"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
)

// Dedupe keeps the earliest prediction of every fan. Fans are grouped by
// prediction.NormalizeUserKey; equal timestamps fall back to the smaller ID.
// Both outputs are ordered by submission time.
func Dedupe(items []prediction.Prediction) (counted, duplicates []prediction.Prediction) {
	ordered := make([]prediction.Prediction, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.Before(b.SubmittedAt)
		}
		return a.ID < b.ID
	})

	counted = make([]prediction.Prediction, 0, len(ordered))
	duplicates = make([]prediction.Prediction, 0)
	seen := make(map[string]struct{}, len(ordered))
	for _, item := range ordered {
		key := item.UserKey()
		if _, ok := seen[key]; ok {
			duplicates = append(duplicates, item)
			continue
		}
		seen[key] = struct{}{}
		counted = append(counted, item)
	}
	return counted, duplicates
}

// Settle resolves the winners of m. Predictions for other matches are ignored.
// Winners are counted predictions whose player equals the published man of the
// match exactly.
func Settle(m match.Match, items []prediction.Prediction) Result {
	out := Result{
		MatchID:       m.ID,
		MatchNumber:   m.Number,
		ManOfTheMatch: m.ManOfTheMatch,
		State:         StateNotSettled,
	}
	if !m.IsPublished() {
		return out
	}

	out.Counted, out.Duplicates = Dedupe(prediction.ForMatch(items, m.ID))
	out.Winners = make([]prediction.Prediction, 0)
	for _, item := range out.Counted {
		if item.PredictedPlayer == m.ManOfTheMatch {
			out.Winners = append(out.Winners, item)
		}
	}

	if len(out.Winners) == 0 {
		out.State = StateNoWinners
		return out
	}
	out.State = StateSettled
	out.Share = PrizePool / len(out.Winners)
	out.TotalDistributed = out.Share * len(out.Winners)
	return out
}

// Leaderboard sums the coins and wins of every fan across published matches.
// Matches are settled in match number order; that order also breaks ties
// between fans with equal coins. The first seen name is used for display.
func Leaderboard(matches []match.Match, items []prediction.Prediction) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0)
	index := make(map[string]int)
	for _, item := range match.SortedByNumber(matches) {
		if !item.IsPublished() {
			continue
		}
		result := Settle(item, items)
		for _, winner := range result.Winners {
			key := winner.UserKey()
			i, ok := index[key]
			if !ok {
				i = len(entries)
				index[key] = i
				entries = append(entries, LeaderboardEntry{UserKey: key, UserName: winner.UserName})
			}
			entries[i].Coins += result.Share
			entries[i].Wins++
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Coins > entries[j].Coins
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
