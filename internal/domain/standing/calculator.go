package standing

import (
	"sort"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/team"
)

// Calculate builds the league table from finished group matches.
//
// The final is excluded. Scores come from the goal log. Every team in teams
// gets a row even without matches played. A match naming a team outside teams
// is skipped. Rows are ordered by points, goal difference and goals for, all
// descending; rows equal on all three keep the order of teams.
func Calculate(teams []team.Team, matches []match.Match) []Row {
	rows := make([]Row, len(teams))
	index := make(map[string]int, len(teams))
	for i, item := range teams {
		rows[i] = Row{TeamID: item.ID}
		index[item.ID] = i
	}

	for _, item := range match.SortedByNumber(matches) {
		if !item.IsFinished() || item.IsFinal {
			continue
		}
		homeIdx, okHome := index[item.Home]
		awayIdx, okAway := index[item.Away]
		if !okHome || !okAway || homeIdx == awayIdx {
			continue
		}

		homeGoals, awayGoals := item.DerivedScore()
		applyResult(&rows[homeIdx], homeGoals, awayGoals)
		applyResult(&rows[awayIdx], awayGoals, homeGoals)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
	for i := range rows {
		rows[i].Position = i + 1
	}

	return rows
}

func applyResult(row *Row, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst

	switch {
	case scored > conceded:
		row.Won++
		row.Points += PointsWin
	case scored == conceded:
		row.Drawn++
		row.Points += PointsDraw
	default:
		row.Lost++
	}
}
