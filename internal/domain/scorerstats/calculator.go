package scorerstats

import (
	"math"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/domain/team"
)

type playerKey struct {
	player string
	team   string
}

// Compute derives every scorer statistic from finished matches, the final included.
func Compute(teams []team.Team, matches []match.Match) Stats {
	return Stats{
		TopScorers:  TopScorers(matches),
		TopAssists:  TopAssists(matches),
		CleanSheets: CleanSheets(teams, matches),
		HatTricks:   HatTricks(matches),
	}
}

// TopScorers returns the ten best scorers. Own goals are skipped. Matches are
// visited by match number, which decides the order among equal tallies.
func TopScorers(matches []match.Match) []Scorer {
	counts := newTally[playerKey, Scorer]()
	for _, item := range match.Finished(matches) {
		for _, goal := range item.Goals {
			if goal.IsOwnGoal() || goal.Player == "" {
				continue
			}
			entry := counts.at(playerKey{player: goal.Player, team: goal.Team}, func() Scorer {
				return Scorer{Player: goal.Player, Team: goal.Team}
			})
			entry.Goals++
		}
	}

	return limit(counts.sorted(func(s Scorer) int { return s.Goals }), TopScorersLimit)
}

// TopAssists returns every assisting player ordered by assists.
func TopAssists(matches []match.Match) []Assister {
	counts := newTally[string, Assister]()
	for _, item := range match.Finished(matches) {
		for _, goal := range item.Goals {
			if goal.Assist == "" {
				continue
			}
			entry := counts.at(goal.Assist, func() Assister {
				return Assister{Player: goal.Assist}
			})
			entry.Assists++
		}
	}

	return counts.sorted(func(a Assister) int { return a.Assists })
}

// CleanSheets credits a team for every finished match in which its opponent
// did not score. A goalless draw credits both sides.
func CleanSheets(teams []team.Team, matches []match.Match) []CleanSheet {
	counts := newTally[string, CleanSheet]()
	for _, item := range teams {
		counts.at(item.ID, func() CleanSheet { return CleanSheet{TeamID: item.ID} })
	}

	for _, item := range match.Finished(matches) {
		home, away := item.DerivedScore()
		if away == 0 {
			if i, ok := counts.index[item.Home]; ok {
				counts.items[i].CleanSheets++
			}
		}
		if home == 0 {
			if i, ok := counts.index[item.Away]; ok {
				counts.items[i].CleanSheets++
			}
		}
	}

	return counts.sorted(func(c CleanSheet) int { return c.CleanSheets })
}

// HatTricks lists every player with three or more goals in a single finished
// match. Own goals never count.
func HatTricks(matches []match.Match) []HatTrick {
	out := make([]HatTrick, 0)
	for _, item := range match.Finished(matches) {
		perMatch := newTally[playerKey, HatTrick]()
		for _, goal := range item.Goals {
			if goal.IsOwnGoal() || goal.Player == "" {
				continue
			}
			entry := perMatch.at(playerKey{player: goal.Player, team: goal.Team}, func() HatTrick {
				return HatTrick{Player: goal.Player, Team: goal.Team, MatchNumber: item.Number}
			})
			entry.Goals++
		}
		for _, entry := range perMatch.items {
			if entry.Goals >= HatTrickGoals {
				out = append(out, entry)
			}
		}
	}
	return out
}

// Summarize returns tournament totals over finished matches. The average is
// rounded to one decimal. Referee decisions are not counted as awards.
func Summarize(matches []match.Match) Summary {
	finished := match.Finished(matches)
	awards := newTally[string, MoMCount]()
	totalGoals := 0
	for _, item := range finished {
		home, away := item.DerivedScore()
		totalGoals += home + away
		if !item.IsPublished() || item.ManOfTheMatch == match.RefereeDecision {
			continue
		}
		entry := awards.at(item.ManOfTheMatch, func() MoMCount {
			return MoMCount{Player: item.ManOfTheMatch}
		})
		entry.Awards++
	}

	out := Summary{
		TotalGoals:    totalGoals,
		TotalMatches:  len(finished),
		ManOfTheMatch: awards.sorted(func(m MoMCount) int { return m.Awards }),
	}
	if out.TotalMatches > 0 {
		out.AverageGoals = math.Round(float64(totalGoals)/float64(out.TotalMatches)*10) / 10
	}
	return out
}

// FanFavourites counts every vote per predicted player, duplicates included,
// and returns the ten most voted players.
func FanFavourites(predictions []prediction.Prediction) []FanVote {
	return limit(countVotes(predictions), FanFavouritesLimit)
}

// VoteCounts returns the raw votes per player for one match.
func VoteCounts(predictions []prediction.Prediction, matchID string) []FanVote {
	return countVotes(prediction.ForMatch(predictions, matchID))
}

func countVotes(predictions []prediction.Prediction) []FanVote {
	votes := newTally[string, FanVote]()
	for _, item := range predictions {
		if item.PredictedPlayer == "" {
			continue
		}
		entry := votes.at(item.PredictedPlayer, func() FanVote {
			return FanVote{Player: item.PredictedPlayer, Team: item.PredictedTeam}
		})
		entry.Votes++
	}
	return votes.sorted(func(v FanVote) int { return v.Votes })
}
