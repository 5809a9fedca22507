package settlement

import "github.com/riskibarqy/republic-cup/internal/domain/prediction"

// PrizePool is split evenly between a match's winners. The integer division
// remainder is never paid out.
const PrizePool = 1000

type State string

const (
	// StateNotSettled means no man of the match has been published yet.
	StateNotSettled State = "not_settled"
	// StateNoWinners means the result is published but nobody predicted it.
	StateNoWinners State = "no_winners"
	StateSettled   State = "settled"
)

// Result is the settlement of one match.
type Result struct {
	MatchID          string
	MatchNumber      int
	ManOfTheMatch    string
	State            State
	Counted          []prediction.Prediction
	Duplicates       []prediction.Prediction
	Winners          []prediction.Prediction
	Share            int
	TotalDistributed int
}

// WinnerNames returns the display names of the winners in settlement order.
func (r Result) WinnerNames() []string {
	out := make([]string, 0, len(r.Winners))
	for _, item := range r.Winners {
		out = append(out, item.UserName)
	}
	return out
}

// LeaderboardEntry aggregates a fan's winnings across published matches.
type LeaderboardEntry struct {
	Rank     int
	UserKey  string
	UserName string
	Coins    int
	Wins     int
}
