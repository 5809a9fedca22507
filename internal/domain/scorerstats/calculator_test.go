package scorerstats

import (
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/domain/team"
)

func finished(number int, home, away string, goals ...match.Goal) match.Match {
	return match.Match{
		ID:     fmt.Sprintf("match-%d", number),
		Number: number,
		Home:   home,
		Away:   away,
		Status: match.StatusFinished,
		Goals:  goals,
	}
}

func goal(player, teamID string) match.Goal {
	return match.Goal{Player: player, Team: teamID}
}

func assisted(player, teamID, assist string) match.Goal {
	return match.Goal{Player: player, Team: teamID, Assist: assist}
}

func TestHatTrickScenario(t *testing.T) {
	t.Parallel()

	m7 := finished(7, "T1", "T2", goal("A", "T1"), goal("A", "T1"), goal("A", "T1"))

	hatTricks := HatTricks([]match.Match{m7})
	if len(hatTricks) != 1 {
		t.Fatalf("expected one hat-trick, got %+v", hatTricks)
	}
	if got := hatTricks[0]; got.Player != "A" || got.Goals != 3 || got.MatchNumber != 7 {
		t.Fatalf("unexpected hat-trick: %+v", got)
	}

	scorers := TopScorers([]match.Match{m7})
	if len(scorers) != 1 {
		t.Fatalf("expected a single scorer, got %+v", scorers)
	}
	if got := scorers[0]; got != (Scorer{Player: "A", Team: "T1", Goals: 3}) {
		t.Fatalf("unexpected scorer: %+v", got)
	}
}

func TestOwnGoals_CountForTeamButNotForPlayers(t *testing.T) {
	t.Parallel()

	m := finished(1, "x", "y",
		goal(match.OwnGoal, "x"),
		goal(match.OwnGoal, "x"),
		goal(match.OwnGoal, "x"),
		goal("B", "y"),
	)

	home, away := m.DerivedScore()
	if home != 3 || away != 1 {
		t.Fatalf("own goals must count toward the team score, got %d-%d", home, away)
	}
	for _, s := range TopScorers([]match.Match{m}) {
		if s.Player == match.OwnGoal {
			t.Fatalf("own goal listed as scorer: %+v", s)
		}
	}
	if got := HatTricks([]match.Match{m}); len(got) != 0 {
		t.Fatalf("own goals must not form a hat-trick: %+v", got)
	}
	if got := CleanSheets([]team.Team{{ID: "x"}, {ID: "y"}}, []match.Match{m}); got[0].CleanSheets != 0 || got[1].CleanSheets != 0 {
		t.Fatalf("no clean sheet expected: %+v", got)
	}
}

func TestTopScorers_SplitByTeamStableAndCapped(t *testing.T) {
	t.Parallel()

	var matches []match.Match
	// Listed out of number order on purpose: encounter order follows match number.
	matches = append(matches, finished(2, "b", "a", goal("Late", "b")))
	matches = append(matches, finished(1, "a", "b", goal("Early", "a"), goal("Same", "a"), goal("Same", "b")))
	for i := 0; i < 12; i++ {
		matches = append(matches, finished(10+i, "c", "d", goal(fmt.Sprintf("P%02d", i), "c")))
	}
	notFinished := finished(3, "a", "b", goal("Ghost", "a"), goal("Ghost", "a"))
	notFinished.Status = match.StatusLive
	matches = append(matches, notFinished)

	got := TopScorers(matches)
	if len(got) != TopScorersLimit {
		t.Fatalf("expected %d scorers, got %d", TopScorersLimit, len(got))
	}
	want := []Scorer{
		{Player: "Early", Team: "a", Goals: 1},
		{Player: "Same", Team: "a", Goals: 1},
		{Player: "Same", Team: "b", Goals: 1},
		{Player: "Late", Team: "b", Goals: 1},
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("scorer %d: got %+v want %+v", i, got[i], w)
		}
	}
	for _, s := range got {
		if s.Player == "Ghost" {
			t.Fatalf("live match goals must be skipped")
		}
	}
}

func TestTopAssists_FullListByName(t *testing.T) {
	t.Parallel()

	var goals []match.Goal
	for i := 0; i < 12; i++ {
		goals = append(goals, assisted("S", "a", fmt.Sprintf("A%02d", i)))
	}
	goals = append(goals, assisted("S", "a", "A05"), assisted("T", "b", "A05"), goal("U", "a"))

	got := TopAssists([]match.Match{finished(1, "a", "b", goals...)})
	if len(got) != 12 {
		t.Fatalf("expected the full list of 12 assisters, got %d", len(got))
	}
	if got[0] != (Assister{Player: "A05", Assists: 3}) {
		t.Fatalf("unexpected leader: %+v", got[0])
	}
	if got[1].Player != "A00" {
		t.Fatalf("ties must keep encounter order, got %+v", got[1])
	}
}

func TestCleanSheets(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	goalless := finished(1, "a", "b")
	goalless.ScoreHome = 4
	final := finished(2, "c", "a", goal("X", "c"))
	final.IsFinal = true
	upcoming := finished(3, "b", "c")
	upcoming.Status = match.StatusUpcoming

	got := CleanSheets(teams, []match.Match{goalless, final, upcoming})
	want := map[string]int{"a": 1, "b": 1, "c": 1}
	if len(got) != 3 {
		t.Fatalf("expected a row per team, got %+v", got)
	}
	for _, row := range got {
		if row.CleanSheets != want[row.TeamID] {
			t.Fatalf("unexpected clean sheets for %s: %d", row.TeamID, row.CleanSheets)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	m1 := finished(1, "a", "b", goal("A", "a"), goal("B", "b"), goal("A", "a"))
	m1.ManOfTheMatch = "A"
	m2 := finished(2, "a", "c")
	m2.ManOfTheMatch = match.RefereeDecision
	m3 := finished(3, "b", "c", goal("C", "c"), goal("C", "c"), goal("C", "c"), goal("A", "b"))
	m3.ManOfTheMatch = "A"

	got := Summarize([]match.Match{m1, m2, m3})
	if got.TotalGoals != 7 || got.TotalMatches != 3 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.AverageGoals != 2.3 {
		t.Fatalf("expected average 2.3, got %v", got.AverageGoals)
	}
	if len(got.ManOfTheMatch) != 1 || got.ManOfTheMatch[0] != (MoMCount{Player: "A", Awards: 2}) {
		t.Fatalf("unexpected awards: %+v", got.ManOfTheMatch)
	}

	if empty := Summarize(nil); empty.AverageGoals != 0 || empty.TotalMatches != 0 {
		t.Fatalf("unexpected empty summary: %+v", empty)
	}
}

func TestFanFavouritesAndVoteCounts(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 29, 10, 0, 0, 0, time.UTC)
	preds := []prediction.Prediction{
		{ID: "1", UserName: "ann", MatchID: "m1", PredictedPlayer: "Ninad", PredictedTeam: "feel-united", SubmittedAt: now},
		{ID: "2", UserName: "ann", MatchID: "m1", PredictedPlayer: "Ninad", PredictedTeam: "feel-united", SubmittedAt: now.Add(time.Minute)},
		{ID: "3", UserName: "bob", MatchID: "m1", PredictedPlayer: "Raghu", PredictedTeam: "dhurandhars", SubmittedAt: now},
		{ID: "4", UserName: "cid", MatchID: "m2", PredictedPlayer: "Raghu", PredictedTeam: "dhurandhars", SubmittedAt: now},
		{ID: "5", UserName: "dan", MatchID: "m2", PredictedPlayer: "Raghu", PredictedTeam: "dhurandhars", SubmittedAt: now},
	}

	fav := FanFavourites(preds)
	if len(fav) != 2 || fav[0] != (FanVote{Player: "Raghu", Team: "dhurandhars", Votes: 3}) || fav[1].Votes != 2 {
		t.Fatalf("unexpected favourites: %+v", fav)
	}

	m1 := VoteCounts(preds, "m1")
	if len(m1) != 2 || m1[0].Player != "Ninad" || m1[0].Votes != 2 || m1[1].Votes != 1 {
		t.Fatalf("unexpected vote counts: %+v", m1)
	}
}

func TestCompute_IsDeterministic(t *testing.T) {
	t.Parallel()

	teams := team.Tournament()
	matches := []match.Match{
		finished(1, "feel-united", "dhurandhars", assisted("Ninad", "feel-united", "Umair"), goal("Raghu", "dhurandhars")),
		finished(2, "userflow", "goaldiggers", goal("Kushal", "userflow")),
	}

	first := Compute(teams, matches)
	second := Compute(teams, matches)
	if fmt.Sprintf("%+v", first) != fmt.Sprintf("%+v", second) {
		t.Fatalf("repeated computation differs:\n%+v\n%+v", first, second)
	}
	if len(first.CleanSheets) != len(teams) {
		t.Fatalf("expected a clean sheet row per team, got %d", len(first.CleanSheets))
	}
}
