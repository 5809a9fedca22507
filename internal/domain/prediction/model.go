package prediction

import (
	"strings"
	"time"
)

// MaxUserNameLength bounds the display name a fan may submit.
const MaxUserNameLength = 30

// Prediction is one fan vote for a match's man of the match.
// A fan may vote more than once per match; only the earliest vote is settled.
type Prediction struct {
	ID              string
	UserName        string
	MatchID         string
	MatchNumber     int
	PredictedPlayer string
	PredictedTeam   string
	SubmittedAt     time.Time
}

// NormalizeUserKey is the identity used to group votes of the same fan.
// Case is folded and surrounding whitespace is trimmed. Inner whitespace is kept.
func NormalizeUserKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (p Prediction) UserKey() string {
	return NormalizeUserKey(p.UserName)
}

// ForMatch returns the predictions targeting matchID, preserving input order.
func ForMatch(items []Prediction, matchID string) []Prediction {
	out := make([]Prediction, 0, len(items))
	for _, item := range items {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	return out
}
