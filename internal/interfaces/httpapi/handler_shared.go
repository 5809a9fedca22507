package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/domain/scorerstats"
	"github.com/riskibarqy/republic-cup/internal/domain/settlement"
	"github.com/riskibarqy/republic-cup/internal/domain/standing"
	"github.com/riskibarqy/republic-cup/internal/domain/team"
	"github.com/riskibarqy/republic-cup/internal/usecase"
)

type updateMatchStatusRequest struct {
	Status string `json:"status" validate:"required,max=20"`
}

type assignMatchTeamsRequest struct {
	HomeTeam string `json:"homeTeam" validate:"required,max=64"`
	AwayTeam string `json:"awayTeam" validate:"required,max=64,nefield=HomeTeam"`
}

type addGoalRequest struct {
	Team   string `json:"team" validate:"required,max=64"`
	Player string `json:"player" validate:"required,max=100"`
	Assist string `json:"assist" validate:"omitempty,max=100"`
}

type publishManOfTheMatchRequest struct {
	Player string `json:"player" validate:"required,max=100"`
}

type predictionsLockRequest struct {
	Locked *bool `json:"locked" validate:"required"`
}

type submitPredictionRequest struct {
	UserName        string `json:"userName" validate:"required,max=64"`
	MatchID         string `json:"matchId" validate:"required,max=64"`
	PredictedPlayer string `json:"predictedPlayer" validate:"required,max=100"`
}

type adminLoginRequest struct {
	PIN string `json:"pin" validate:"required"`
}

type teamDTO struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Short   string   `json:"short"`
	Players []string `json:"players"`
}

type goalDTO struct {
	Player    string `json:"player"`
	Team      string `json:"team"`
	Assist    string `json:"assist,omitempty"`
	OwnGoal   bool   `json:"ownGoal"`
	Timestamp string `json:"timestamp,omitempty"`
}

type matchDTO struct {
	ID                string    `json:"id"`
	MatchNumber       int       `json:"matchNumber"`
	HomeTeam          string    `json:"homeTeam"`
	AwayTeam          string    `json:"awayTeam"`
	Date              string    `json:"date"`
	Time              string    `json:"time"`
	Status            string    `json:"status"`
	ScoreHome         int       `json:"scoreHome"`
	ScoreAway         int       `json:"scoreAway"`
	Goals             []goalDTO `json:"goals"`
	IsFinal           bool      `json:"isFinal"`
	ManOfTheMatch     string    `json:"manOfTheMatch,omitempty"`
	MoMWinners        []string  `json:"momWinners"`
	PredictionsLocked bool      `json:"predictionsLocked"`
	UpdatedAt         string    `json:"updatedAt,omitempty"`
}

type standingDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

type scorerDTO struct {
	Player string `json:"player"`
	Team   string `json:"team"`
	Goals  int    `json:"goals"`
}

type assisterDTO struct {
	Player  string `json:"player"`
	Assists int    `json:"assists"`
}

type cleanSheetDTO struct {
	TeamID      string `json:"teamId"`
	CleanSheets int    `json:"cleanSheets"`
}

type hatTrickDTO struct {
	Player      string `json:"player"`
	Team        string `json:"team"`
	Goals       int    `json:"goals"`
	MatchNumber int    `json:"matchNumber"`
}

type scorerStatsDTO struct {
	TopScorers  []scorerDTO     `json:"topScorers"`
	TopAssists  []assisterDTO   `json:"topAssists"`
	CleanSheets []cleanSheetDTO `json:"cleanSheets"`
	HatTricks   []hatTrickDTO   `json:"hatTricks"`
}

type momCountDTO struct {
	Player string `json:"player"`
	Awards int    `json:"awards"`
}

type summaryDTO struct {
	TotalGoals    int           `json:"totalGoals"`
	TotalMatches  int           `json:"totalMatches"`
	AverageGoals  float64       `json:"averageGoals"`
	ManOfTheMatch []momCountDTO `json:"manOfTheMatch"`
}

type overviewDTO struct {
	Standings []standingDTO  `json:"standings"`
	Stats     scorerStatsDTO `json:"stats"`
	Summary   summaryDTO     `json:"summary"`
}

type fanVoteDTO struct {
	Player string `json:"player"`
	Team   string `json:"team"`
	Votes  int    `json:"votes"`
}

type predictionDTO struct {
	ID              string `json:"id"`
	UserName        string `json:"userName"`
	MatchID         string `json:"matchId"`
	MatchNumber     int    `json:"matchNumber"`
	PredictedPlayer string `json:"predictedPlayer"`
	PredictedTeam   string `json:"predictedTeam"`
	Timestamp       string `json:"timestamp"`
	Duplicate       bool   `json:"duplicate,omitempty"`
}

type matchPredictionsDTO struct {
	MatchID     string          `json:"matchId"`
	Predictions []predictionDTO `json:"predictions"`
	VoteCounts  []fanVoteDTO    `json:"voteCounts"`
}

type settlementDTO struct {
	MatchID          string   `json:"matchId"`
	MatchNumber      int      `json:"matchNumber"`
	ManOfTheMatch    string   `json:"manOfTheMatch,omitempty"`
	State            string   `json:"state"`
	CountedVotes     int      `json:"countedVotes"`
	DuplicateVotes   int      `json:"duplicateVotes"`
	Winners          []string `json:"winners"`
	Share            int      `json:"share"`
	TotalDistributed int      `json:"totalDistributed"`
}

type leaderboardEntryDTO struct {
	Rank     int    `json:"rank"`
	UserName string `json:"userName"`
	Coins    int    `json:"coins"`
	Wins     int    `json:"wins"`
}

type adminSessionDTO struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

type backupDTO struct {
	Name        string `json:"name"`
	Matches     int    `json:"matches"`
	Predictions int    `json:"predictions"`
	Uploaded    bool   `json:"uploaded"`
}

func teamToDTO(v team.Team) teamDTO {
	players := make([]string, len(v.Players))
	copy(players, v.Players)
	return teamDTO{
		ID:      v.ID,
		Name:    v.Name,
		Short:   v.Short,
		Players: players,
	}
}

// matchToDTO reports scores derived from the goal log rather than the stored
// counters.
func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	_, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	home, away := v.DerivedScore()
	goals := make([]goalDTO, 0, len(v.Goals))
	for _, g := range v.Goals {
		goals = append(goals, goalDTO{
			Player:    g.Player,
			Team:      g.Team,
			Assist:    g.Assist,
			OwnGoal:   g.IsOwnGoal(),
			Timestamp: formatTime(g.CreatedAt),
		})
	}
	winners := make([]string, len(v.MoMWinners))
	copy(winners, v.MoMWinners)

	return matchDTO{
		ID:                v.ID,
		MatchNumber:       v.Number,
		HomeTeam:          v.Home,
		AwayTeam:          v.Away,
		Date:              v.Date,
		Time:              v.Time,
		Status:            v.Status,
		ScoreHome:         home,
		ScoreAway:         away,
		Goals:             goals,
		IsFinal:           v.IsFinal,
		ManOfTheMatch:     v.ManOfTheMatch,
		MoMWinners:        winners,
		PredictionsLocked: v.PredictionsLocked,
		UpdatedAt:         formatTime(v.UpdatedAt),
	}
}

func matchesToDTO(ctx context.Context, items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(ctx, item))
	}
	return out
}

func standingsToDTO(rows []standing.Row, teamNameByID map[string]string) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingDTO{
			Position:       row.Position,
			TeamID:         row.TeamID,
			TeamName:       teamNameByID[row.TeamID],
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}
	return out
}

func scorerStatsToDTO(stats scorerstats.Stats) scorerStatsDTO {
	out := scorerStatsDTO{
		TopScorers:  make([]scorerDTO, 0, len(stats.TopScorers)),
		TopAssists:  make([]assisterDTO, 0, len(stats.TopAssists)),
		CleanSheets: make([]cleanSheetDTO, 0, len(stats.CleanSheets)),
		HatTricks:   make([]hatTrickDTO, 0, len(stats.HatTricks)),
	}
	for _, item := range stats.TopScorers {
		out.TopScorers = append(out.TopScorers, scorerDTO(item))
	}
	for _, item := range stats.TopAssists {
		out.TopAssists = append(out.TopAssists, assisterDTO(item))
	}
	for _, item := range stats.CleanSheets {
		out.CleanSheets = append(out.CleanSheets, cleanSheetDTO(item))
	}
	for _, item := range stats.HatTricks {
		out.HatTricks = append(out.HatTricks, hatTrickDTO(item))
	}
	return out
}

func summaryToDTO(summary scorerstats.Summary) summaryDTO {
	mom := make([]momCountDTO, 0, len(summary.ManOfTheMatch))
	for _, item := range summary.ManOfTheMatch {
		mom = append(mom, momCountDTO(item))
	}
	return summaryDTO{
		TotalGoals:    summary.TotalGoals,
		TotalMatches:  summary.TotalMatches,
		AverageGoals:  summary.AverageGoals,
		ManOfTheMatch: mom,
	}
}

func fanVotesToDTO(items []scorerstats.FanVote) []fanVoteDTO {
	out := make([]fanVoteDTO, 0, len(items))
	for _, item := range items {
		out = append(out, fanVoteDTO(item))
	}
	return out
}

func predictionToDTO(v prediction.Prediction, duplicate bool) predictionDTO {
	return predictionDTO{
		ID:              v.ID,
		UserName:        v.UserName,
		MatchID:         v.MatchID,
		MatchNumber:     v.MatchNumber,
		PredictedPlayer: v.PredictedPlayer,
		PredictedTeam:   v.PredictedTeam,
		Timestamp:       formatTime(v.SubmittedAt),
		Duplicate:       duplicate,
	}
}

func matchPredictionsToDTO(v usecase.MatchPredictions) matchPredictionsDTO {
	items := make([]predictionDTO, 0, len(v.Entries))
	for _, entry := range v.Entries {
		items = append(items, predictionToDTO(entry.Prediction, entry.Duplicate))
	}
	return matchPredictionsDTO{
		MatchID:     v.MatchID,
		Predictions: items,
		VoteCounts:  fanVotesToDTO(v.VoteCounts),
	}
}

func settlementToDTO(v settlement.Result) settlementDTO {
	return settlementDTO{
		MatchID:          v.MatchID,
		MatchNumber:      v.MatchNumber,
		ManOfTheMatch:    v.ManOfTheMatch,
		State:            string(v.State),
		CountedVotes:     len(v.Counted),
		DuplicateVotes:   len(v.Duplicates),
		Winners:          v.WinnerNames(),
		Share:            v.Share,
		TotalDistributed: v.TotalDistributed,
	}
}

func leaderboardEntryToDTO(v settlement.LeaderboardEntry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Rank:     v.Rank,
		UserName: v.UserName,
		Coins:    v.Coins,
		Wins:     v.Wins,
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
