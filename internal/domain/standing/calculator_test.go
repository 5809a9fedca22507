package standing

import (
	"testing"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/team"
)

func goals(teamID string, n int) []match.Goal {
	out := make([]match.Goal, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, match.Goal{Player: "p-" + teamID, Team: teamID})
	}
	return out
}

func result(id string, number int, home, away string, homeGoals, awayGoals int) match.Match {
	return match.Match{
		ID:     id,
		Number: number,
		Home:   home,
		Away:   away,
		Status: match.StatusFinished,
		Goals:  append(goals(home, homeGoals), goals(away, awayGoals)...),
	}
}

func rowByTeam(t *testing.T, rows []Row, teamID string) Row {
	t.Helper()
	for _, row := range rows {
		if row.TeamID == teamID {
			return row
		}
	}
	t.Fatalf("row for %s not found", teamID)
	return Row{}
}

func TestCalculate_WinAndReturnLegDraw(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{ID: "x"}, {ID: "y"}}
	matches := []match.Match{
		result("m1", 1, "x", "y", 2, 0),
		result("m2", 2, "y", "x", 1, 1),
	}

	rows := Calculate(teams, matches)
	x := rowByTeam(t, rows, "x")
	want := Row{TeamID: "x", Position: 1, Played: 2, Won: 1, Drawn: 1, Lost: 0, GoalsFor: 3, GoalsAgainst: 1, GoalDifference: 2, Points: 4}
	if x != want {
		t.Fatalf("unexpected x row: got %+v want %+v", x, want)
	}
	y := rowByTeam(t, rows, "y")
	if y.Points != 1 || y.Lost != 1 || y.Drawn != 1 || y.GoalDifference != -2 || y.Position != 2 {
		t.Fatalf("unexpected y row: %+v", y)
	}
}

func TestCalculate_FiltersAndTolerance(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	final := result("f", 13, "a", "b", 5, 0)
	final.IsFinal = true
	live := result("l", 3, "a", "c", 3, 0)
	live.Status = match.StatusLive
	unknown := result("u", 4, "a", "ghost", 4, 0)
	stale := result("s", 5, "b", "c", 1, 0)
	stale.ScoreHome, stale.ScoreAway = 0, 7

	rows := Calculate(teams, []match.Match{final, live, unknown, stale})
	if len(rows) != 3 {
		t.Fatalf("expected every team in the table, got %d rows", len(rows))
	}
	a := rowByTeam(t, rows, "a")
	if a.Played != 0 || a.Points != 0 {
		t.Fatalf("final, live and unknown-team matches must be skipped: %+v", a)
	}
	b := rowByTeam(t, rows, "b")
	if b.Won != 1 || b.GoalsFor != 1 || b.GoalsAgainst != 0 {
		t.Fatalf("stored scores must be ignored: %+v", b)
	}
}

func TestCalculate_OrderingAndTieAmbiguity(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	matches := []match.Match{
		result("m1", 1, "a", "b", 1, 1),
		result("m2", 2, "c", "d", 1, 1),
		result("m3", 3, "d", "b", 2, 0),
		result("m4", 4, "a", "c", 3, 1),
	}

	rows := Calculate(teams, matches)
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.Points < cur.Points {
			t.Fatalf("rows not ordered by points: %+v", rows)
		}
		if prev.Points == cur.Points && prev.GoalDifference < cur.GoalDifference {
			t.Fatalf("rows not ordered by goal difference: %+v", rows)
		}
		if prev.Points == cur.Points && prev.GoalDifference == cur.GoalDifference && prev.GoalsFor < cur.GoalsFor {
			t.Fatalf("rows not ordered by goals for: %+v", rows)
		}
		if cur.Position != i+1 {
			t.Fatalf("unexpected position %d at index %d", cur.Position, i)
		}
	}

	// Equal on points, goal difference and goals for: no further tie-break,
	// the rows keep the order of the team list.
	tied := Calculate([]team.Team{{ID: "q"}, {ID: "p"}}, []match.Match{result("m", 1, "p", "q", 0, 0)})
	if tied[0].TeamID != "q" || tied[1].TeamID != "p" {
		t.Fatalf("tied rows should keep team order, got %+v", tied)
	}
}

func TestCalculate_PointsConservation(t *testing.T) {
	t.Parallel()

	teams := team.Tournament()
	var matches []match.Match
	decisive, draws := 0, 0
	for i, item := range match.Schedule() {
		if item.IsFinal {
			final := result(item.ID, item.Number, "feel-united", "userflow", 4, 0)
			final.IsFinal = true
			matches = append(matches, final)
			continue
		}
		h, a := i%3, (i+1)%2
		if h == a {
			draws++
		} else {
			decisive++
		}
		matches = append(matches, result(item.ID, item.Number, item.Home, item.Away, h, a))
	}

	total := 0
	for _, row := range Calculate(teams, matches) {
		total += row.Points
	}
	if want := 3*decisive + 2*draws; total != want {
		t.Fatalf("expected %d points in total, got %d", want, total)
	}
}

func TestCalculate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		result("m2", 2, "a", "b", 1, 0),
		result("m1", 1, "b", "a", 0, 2),
	}
	_ = Calculate([]team.Team{{ID: "a"}, {ID: "b"}}, matches)
	if matches[0].ID != "m2" || matches[1].ID != "m1" {
		t.Fatalf("input order changed: %+v", matches)
	}
}
