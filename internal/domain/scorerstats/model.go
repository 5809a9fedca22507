package scorerstats

const (
	TopScorersLimit    = 10
	FanFavouritesLimit = 10
	HatTrickGoals      = 3
)

// Scorer is a goal tally keyed by player name and team. The same name on two
// teams yields two scorers.
type Scorer struct {
	Player string
	Team   string
	Goals  int
}

// Assister is an assist tally keyed by player name only.
type Assister struct {
	Player  string
	Assists int
}

type CleanSheet struct {
	TeamID      string
	CleanSheets int
}

// HatTrick records a player scoring at least three times in one match.
type HatTrick struct {
	Player      string
	Team        string
	Goals       int
	MatchNumber int
}

// Stats bundles the scorer statistics derived from one match snapshot.
type Stats struct {
	TopScorers  []Scorer
	TopAssists  []Assister
	CleanSheets []CleanSheet
	HatTricks   []HatTrick
}

type MoMCount struct {
	Player string
	Awards int
}

// Summary is the tournament-wide roll-up shown on the trophy screen.
type Summary struct {
	TotalGoals    int
	TotalMatches  int
	AverageGoals  float64
	ManOfTheMatch []MoMCount
}

// FanVote is the raw number of votes a player received across all matches.
// Duplicate votes are counted.
type FanVote struct {
	Player string
	Team   string
	Votes  int
}
