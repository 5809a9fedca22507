package postgres

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/lib/pq"
	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/domain/team"
)

type teamTableModel struct {
	ID        string         `db:"id"`
	Position  int            `db:"position"`
	Name      string         `db:"name"`
	Short     string         `db:"short"`
	Players   pq.StringArray `db:"players"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:      m.ID,
		Name:    m.Name,
		Short:   m.Short,
		Players: []string(m.Players),
	}
}

type goalModel struct {
	Player    string    `json:"player"`
	Team      string    `json:"team"`
	Assist    string    `json:"assist,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}

// goalLog is the JSONB goals column.
type goalLog []goalModel

func (g goalLog) Value() (driver.Value, error) {
	if g == nil {
		g = goalLog{}
	}
	raw, err := sonic.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("marshal goal log: %w", err)
	}
	return raw, nil
}

func (g *goalLog) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*g = goalLog{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan goal log: unsupported type %T", src)
	}

	var out goalLog
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan goal log: %w", err)
	}
	*g = out
	return nil
}

type matchTableModel struct {
	ID                string         `db:"id"`
	MatchNumber       int            `db:"match_number"`
	HomeTeam          string         `db:"home_team"`
	AwayTeam          string         `db:"away_team"`
	MatchDate         string         `db:"match_date"`
	MatchTime         string         `db:"match_time"`
	Status            string         `db:"status"`
	ScoreHome         int            `db:"score_home"`
	ScoreAway         int            `db:"score_away"`
	Goals             goalLog        `db:"goals"`
	IsFinal           bool           `db:"is_final"`
	ManOfTheMatch     string         `db:"man_of_the_match"`
	MoMWinners        pq.StringArray `db:"mom_winners"`
	PredictionsLocked bool           `db:"predictions_locked"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func newMatchTableModel(item match.Match) matchTableModel {
	goals := make(goalLog, 0, len(item.Goals))
	for _, goal := range item.Goals {
		goals = append(goals, goalModel{
			Player:    goal.Player,
			Team:      goal.Team,
			Assist:    goal.Assist,
			CreatedAt: goal.CreatedAt,
		})
	}
	winners := pq.StringArray(item.MoMWinners)
	if winners == nil {
		winners = pq.StringArray{}
	}
	return matchTableModel{
		ID:                item.ID,
		MatchNumber:       item.Number,
		HomeTeam:          item.Home,
		AwayTeam:          item.Away,
		MatchDate:         item.Date,
		MatchTime:         item.Time,
		Status:            item.Status,
		ScoreHome:         item.ScoreHome,
		ScoreAway:         item.ScoreAway,
		Goals:             goals,
		IsFinal:           item.IsFinal,
		ManOfTheMatch:     item.ManOfTheMatch,
		MoMWinners:        winners,
		PredictionsLocked: item.PredictionsLocked,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

func (m matchTableModel) toDomain() match.Match {
	goals := make([]match.Goal, 0, len(m.Goals))
	for _, goal := range m.Goals {
		goals = append(goals, match.Goal{
			Player:    goal.Player,
			Team:      goal.Team,
			Assist:    goal.Assist,
			CreatedAt: goal.CreatedAt,
		})
	}
	var winners []string
	if len(m.MoMWinners) > 0 {
		winners = []string(m.MoMWinners)
	}
	return match.Match{
		ID:                m.ID,
		Number:            m.MatchNumber,
		Home:              m.HomeTeam,
		Away:              m.AwayTeam,
		Date:              m.MatchDate,
		Time:              m.MatchTime,
		Status:            m.Status,
		ScoreHome:         m.ScoreHome,
		ScoreAway:         m.ScoreAway,
		Goals:             goals,
		IsFinal:           m.IsFinal,
		ManOfTheMatch:     m.ManOfTheMatch,
		MoMWinners:        winners,
		PredictionsLocked: m.PredictionsLocked,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

type predictionTableModel struct {
	ID              string    `db:"id"`
	UserName        string    `db:"user_name"`
	UserKey         string    `db:"user_key"`
	MatchID         string    `db:"match_id"`
	MatchNumber     int       `db:"match_number"`
	PredictedPlayer string    `db:"predicted_player"`
	PredictedTeam   string    `db:"predicted_team"`
	SubmittedAt     time.Time `db:"submitted_at"`
}

func newPredictionTableModel(item prediction.Prediction) predictionTableModel {
	return predictionTableModel{
		ID:              item.ID,
		UserName:        item.UserName,
		UserKey:         item.UserKey(),
		MatchID:         item.MatchID,
		MatchNumber:     item.MatchNumber,
		PredictedPlayer: item.PredictedPlayer,
		PredictedTeam:   item.PredictedTeam,
		SubmittedAt:     item.SubmittedAt,
	}
}

func (m predictionTableModel) toDomain() prediction.Prediction {
	return prediction.Prediction{
		ID:              m.ID,
		UserName:        m.UserName,
		MatchID:         m.MatchID,
		MatchNumber:     m.MatchNumber,
		PredictedPlayer: m.PredictedPlayer,
		PredictedTeam:   m.PredictedTeam,
		SubmittedAt:     m.SubmittedAt,
	}
}
