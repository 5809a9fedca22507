package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
)

func TestStatsService_Overview(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repos := newTestRepos(t)
	matches := NewMatchService(repos.teams, repos.matches, logging.NewNop())

	play := func(matchID string, goals ...AddGoalInput) {
		t.Helper()
		if _, err := matches.UpdateStatus(ctx, matchID, match.StatusLive); err != nil {
			t.Fatalf("kick off %s: %v", matchID, err)
		}
		for _, goal := range goals {
			goal.MatchID = matchID
			if _, err := matches.AddGoal(ctx, goal); err != nil {
				t.Fatalf("goal in %s: %v", matchID, err)
			}
		}
		if _, err := matches.UpdateStatus(ctx, matchID, match.StatusFinished); err != nil {
			t.Fatalf("finish %s: %v", matchID, err)
		}
	}

	// match-1: feel-united 3-0 dhurandhars
	play("match-1",
		AddGoalInput{TeamID: "feel-united", Player: "Ninad", Assist: "Umair"},
		AddGoalInput{TeamID: "feel-united", Player: "Ninad"},
		AddGoalInput{TeamID: "feel-united", Player: "Ninad", Assist: "Umair"},
	)
	// match-2: userflow 1-1 goaldiggers, one of them an own goal
	play("match-2",
		AddGoalInput{TeamID: "userflow", Player: "Kushal"},
		AddGoalInput{TeamID: "goaldiggers", Player: match.OwnGoal},
	)

	svc := NewStatsService(repos.teams, repos.matches, repos.predictions)
	got, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if len(got.Standings) != 4 || got.Standings[0].TeamID != "feel-united" || got.Standings[0].Points != 3 {
		t.Fatalf("unexpected standings: %+v", got.Standings)
	}
	if got.Standings[3].TeamID != "dhurandhars" || got.Standings[3].GoalDifference != -3 {
		t.Fatalf("unexpected bottom row: %+v", got.Standings[3])
	}

	if len(got.Stats.TopScorers) != 2 || got.Stats.TopScorers[0].Player != "Ninad" || got.Stats.TopScorers[0].Goals != 3 {
		t.Fatalf("unexpected top scorers: %+v", got.Stats.TopScorers)
	}
	if len(got.Stats.TopAssists) != 1 || got.Stats.TopAssists[0].Assists != 2 {
		t.Fatalf("unexpected top assists: %+v", got.Stats.TopAssists)
	}
	if len(got.Stats.HatTricks) != 1 || got.Stats.HatTricks[0].MatchNumber != 1 {
		t.Fatalf("unexpected hat tricks: %+v", got.Stats.HatTricks)
	}

	if got.Summary.TotalGoals != 5 || got.Summary.TotalMatches != 2 || got.Summary.AverageGoals != 2.5 {
		t.Fatalf("unexpected summary: %+v", got.Summary)
	}
}

func TestStatsService_FanFavourites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repos := newTestRepos(t)
	seedVotes(t, repos,
		prediction.Prediction{ID: "p1", UserName: "Ana", MatchID: "match-1", PredictedPlayer: "Ninad", PredictedTeam: "feel-united"},
		prediction.Prediction{ID: "p2", UserName: "Budi", MatchID: "match-5", PredictedPlayer: "Ninad", PredictedTeam: "feel-united"},
		prediction.Prediction{ID: "p3", UserName: "Citra", MatchID: "match-1", PredictedPlayer: "Raghu", PredictedTeam: "dhurandhars"},
	)

	svc := NewStatsService(repos.teams, repos.matches, repos.predictions)
	got, err := svc.FanFavourites(ctx)
	if err != nil {
		t.Fatalf("fan favourites: %v", err)
	}
	if len(got) != 2 || got[0].Player != "Ninad" || got[0].Votes != 2 {
		t.Fatalf("unexpected fan favourites: %+v", got)
	}
}
