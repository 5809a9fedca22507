package standing

// Row is a derived league table row for one team.
type Row struct {
	TeamID         string
	Position       int
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

const (
	PointsWin  = 3
	PointsDraw = 1
)
